package ai

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/mutabaa-labs/mutabaa-core/internal/core/domain"
)

// newOllamaEmbedStub serves /api/embed with fixed embeddings and records the
// last request body.
func newOllamaEmbedStub(t *testing.T, embeddings [][]float32) (*httptest.Server, *ollamaEmbedRequest) {
	t.Helper()
	var mu sync.Mutex
	lastReq := &ollamaEmbedRequest{}
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("expected POST, got %s", r.Method)
		}
		if r.URL.Path != "/api/embed" {
			t.Errorf("expected /api/embed, got %s", r.URL.Path)
		}
		var req ollamaEmbedRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Errorf("failed to decode request: %v", err)
		}
		mu.Lock()
		*lastReq = req
		mu.Unlock()
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(ollamaEmbedResponse{Embeddings: embeddings})
	}))
	return server, lastReq
}

func TestNewOllamaEmbedding_Defaults(t *testing.T) {
	svc := NewOllamaEmbedding("", "", 0)

	emb := svc.(*OllamaEmbedding)
	if emb.host != "http://localhost:11434" {
		t.Errorf("expected default host, got %s", emb.host)
	}
	if emb.model != DefaultOllamaModel {
		t.Errorf("expected default model %s, got %s", DefaultOllamaModel, emb.model)
	}
	if svc.Dimensions() != 0 {
		t.Errorf("expected dimensions 0 before first call, got %d", svc.Dimensions())
	}
}

func TestOllamaEmbedding_Embed_EmptyInput(t *testing.T) {
	svc := NewOllamaEmbedding("http://localhost:11434", "", 0)

	result, err := svc.Embed(context.Background(), []string{})
	if err != nil {
		t.Errorf("unexpected error for empty input: %v", err)
	}
	if result != nil {
		t.Error("expected nil result for empty input")
	}
}

func TestOllamaEmbedding_Embed_Success(t *testing.T) {
	server, lastReq := newOllamaEmbedStub(t, [][]float32{
		{0.1, 0.2, 0.3},
		{0.4, 0.5, 0.6},
	})
	defer server.Close()

	svc := NewOllamaEmbedding(server.URL, "paraphrase-multilingual", time.Second)

	result, err := svc.Embed(context.Background(), []string{"تم صب الخرسانة", "Concrete poured"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(result) != 2 {
		t.Fatalf("expected 2 embeddings, got %d", len(result))
	}
	if result[0][0] != 0.1 || result[1][0] != 0.4 {
		t.Error("embeddings not in input order")
	}
	if len(lastReq.Input) != 2 || lastReq.Input[0] != "تم صب الخرسانة" {
		t.Errorf("request input order lost: %v", lastReq.Input)
	}
	if lastReq.Model != "paraphrase-multilingual" {
		t.Errorf("request model = %s", lastReq.Model)
	}
	if svc.Dimensions() != 3 {
		t.Errorf("expected dimensions 3 after first call, got %d", svc.Dimensions())
	}
}

func TestOllamaEmbedding_Embed_Concurrent(t *testing.T) {
	server, _ := newOllamaEmbedStub(t, [][]float32{{0.1, 0.2, 0.3}})
	defer server.Close()

	svc := NewOllamaEmbedding(server.URL, "", time.Second)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := svc.Embed(context.Background(), []string{"تحديث"}); err != nil {
				t.Errorf("concurrent Embed failed: %v", err)
			}
		}()
	}
	wg.Wait()

	if svc.Dimensions() != 3 {
		t.Errorf("expected dimensions 3, got %d", svc.Dimensions())
	}
}

func TestOllamaEmbedding_Embed_CountMismatch(t *testing.T) {
	server, _ := newOllamaEmbedStub(t, [][]float32{{0.1, 0.2, 0.3}})
	defer server.Close()

	svc := NewOllamaEmbedding(server.URL, "", time.Second)

	_, err := svc.Embed(context.Background(), []string{"one", "two"})
	if !errors.Is(err, domain.ErrModelUnavailable) {
		t.Errorf("want ErrModelUnavailable for count mismatch, got %v", err)
	}
}

func TestOllamaEmbedding_Embed_BackendError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(ollamaEmbedResponse{Error: "model not found"})
	}))
	defer server.Close()

	svc := NewOllamaEmbedding(server.URL, "", time.Second)

	_, err := svc.Embed(context.Background(), []string{"test"})
	if !errors.Is(err, domain.ErrModelUnavailable) {
		t.Errorf("want ErrModelUnavailable for backend error, got %v", err)
	}
}

func TestOllamaEmbedding_Embed_ServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	svc := NewOllamaEmbedding(server.URL, "", time.Second)

	_, err := svc.Embed(context.Background(), []string{"test"})
	if !errors.Is(err, domain.ErrModelUnavailable) {
		t.Errorf("want ErrModelUnavailable for server error, got %v", err)
	}
}

func TestOllamaEmbedding_Embed_Unreachable(t *testing.T) {
	svc := NewOllamaEmbedding("http://localhost:99999", "", time.Second)

	_, err := svc.Embed(context.Background(), []string{"test"})
	if !errors.Is(err, domain.ErrModelUnavailable) {
		t.Errorf("want ErrModelUnavailable for unreachable backend, got %v", err)
	}
}

func TestOllamaEmbedding_EmbedQuery_Success(t *testing.T) {
	server, _ := newOllamaEmbedStub(t, [][]float32{{0.1, 0.2, 0.3}})
	defer server.Close()

	svc := NewOllamaEmbedding(server.URL, "", time.Second)

	result, err := svc.EmbedQuery(context.Background(), "آخر تحديث")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(result) != 3 {
		t.Errorf("expected 3 dimensions, got %d", len(result))
	}
}

func TestOllamaEmbedding_HealthCheck(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/tags" {
			t.Errorf("expected /api/tags, got %s", r.URL.Path)
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	svc := NewOllamaEmbedding(server.URL, "", time.Second)

	if err := svc.HealthCheck(context.Background()); err != nil {
		t.Errorf("expected no error from health check, got %v", err)
	}
}

func TestOllamaEmbedding_HealthCheck_Down(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer server.Close()

	svc := NewOllamaEmbedding(server.URL, "", time.Second)

	if err := svc.HealthCheck(context.Background()); !errors.Is(err, domain.ErrModelUnavailable) {
		t.Errorf("want ErrModelUnavailable, got %v", err)
	}
}

func TestOllamaEmbedding_Close(t *testing.T) {
	svc := NewOllamaEmbedding("http://localhost:11434", "", 0)

	if err := svc.Close(); err != nil {
		t.Errorf("expected no error from Close, got %v", err)
	}
}
