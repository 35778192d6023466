package fsstore

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/mutabaa-labs/mutabaa-core/internal/core/domain"
	"github.com/mutabaa-labs/mutabaa-core/internal/core/ports/driven"
	"github.com/mutabaa-labs/mutabaa-core/internal/vectorindex"
)

func testSnapshot(t *testing.T) *driven.IndexSnapshot {
	t.Helper()
	idx, err := vectorindex.Build([][]float32{{1, 0}, {0, 1}})
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	return &driven.IndexSnapshot{
		Entries: []domain.Entry{
			{ProjectID: "airport", Text: "تم صب الخرسانة", Timestamp: "2024-01-01T09:00:00"},
			{ProjectID: "airport", Text: "تم تأجيل التسليم", Timestamp: "2024-02-01T09:00:00"},
		},
		Index:        idx,
		BuildVersion: 42,
	}
}

func TestIndexStore_SaveAndLoad(t *testing.T) {
	store, err := NewIndexStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewIndexStore failed: %v", err)
	}
	ctx := context.Background()

	if err := store.Save(ctx, "airport", testSnapshot(t)); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	snap, err := store.Load(ctx, "airport")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if len(snap.Entries) != 2 {
		t.Errorf("got %d entries, want 2", len(snap.Entries))
	}
	if snap.Index.Len() != 2 {
		t.Errorf("got %d vectors, want 2", snap.Index.Len())
	}
	if snap.BuildVersion != 42 {
		t.Errorf("build version = %d, want 42", snap.BuildVersion)
	}

	// Entries and vectors stay positionally aligned through the round trip.
	hits, err := snap.Index.Search([]float32{1, 0}, 1)
	if err != nil {
		t.Fatalf("Search failed: %v", err)
	}
	if snap.Entries[hits[0].Position].Text != "تم صب الخرسانة" {
		t.Errorf("position mapping broken: %+v", hits)
	}
}

func TestIndexStore_LoadMissing(t *testing.T) {
	store, _ := NewIndexStore(t.TempDir())

	_, err := store.Load(context.Background(), "missing")
	if !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("want ErrNotFound, got %v", err)
	}
}

func TestIndexStore_LoadRequiresBothFiles(t *testing.T) {
	dir := t.TempDir()
	store, _ := NewIndexStore(dir)
	ctx := context.Background()

	if err := store.Save(ctx, "airport", testSnapshot(t)); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	// A lone blob without the entries JSON is treated as no snapshot.
	if err := os.Remove(filepath.Join(dir, "index_airport.json")); err != nil {
		t.Fatalf("remove entries file: %v", err)
	}
	if _, err := store.Load(ctx, "airport"); !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("want ErrNotFound with entries file gone, got %v", err)
	}
}

func TestIndexStore_LoadCorruptBlob(t *testing.T) {
	dir := t.TempDir()
	store, _ := NewIndexStore(dir)
	ctx := context.Background()

	if err := store.Save(ctx, "airport", testSnapshot(t)); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	if err := os.WriteFile(filepath.Join(dir, "index_airport.idx"), []byte("garbage"), 0o644); err != nil {
		t.Fatalf("corrupt blob: %v", err)
	}

	if _, err := store.Load(ctx, "airport"); !errors.Is(err, domain.ErrStorage) {
		t.Errorf("want ErrStorage, got %v", err)
	}
}

func TestIndexStore_SaveReplacesWholesale(t *testing.T) {
	store, _ := NewIndexStore(t.TempDir())
	ctx := context.Background()

	if err := store.Save(ctx, "airport", testSnapshot(t)); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	idx, _ := vectorindex.Build([][]float32{{5, 5}})
	replacement := &driven.IndexSnapshot{
		Entries:      []domain.Entry{{ProjectID: "airport", Text: "only one", Timestamp: "2024-03-01T09:00:00"}},
		Index:        idx,
		BuildVersion: 43,
	}
	if err := store.Save(ctx, "airport", replacement); err != nil {
		t.Fatalf("second Save failed: %v", err)
	}

	snap, err := store.Load(ctx, "airport")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if len(snap.Entries) != 1 || snap.BuildVersion != 43 {
		t.Errorf("old snapshot leaked through: %+v", snap)
	}
}

func TestIndexStore_SaveRejectsNilIndex(t *testing.T) {
	store, _ := NewIndexStore(t.TempDir())

	err := store.Save(context.Background(), "airport", &driven.IndexSnapshot{})
	if !errors.Is(err, domain.ErrInvalidInput) {
		t.Errorf("want ErrInvalidInput, got %v", err)
	}
}
