package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/mutabaa-labs/mutabaa-core/internal/core/domain"
)

// ErrorResponse represents an API error response
// @Description API error response
type ErrorResponse struct {
	Error string `json:"error" example:"invalid request body"`
}

// StatusResponse represents a simple status response
// @Description Simple status response
type StatusResponse struct {
	Status string `json:"status" example:"ok"`
}

// VersionResponse represents the API version response
// @Description API version response
type VersionResponse struct {
	Version string `json:"version" example:"1.0.0"`
}

// AskRequest is a free-form assistant query
// @Description Free-form assistant query
type AskRequest struct {
	Query string `json:"query" example:"ما آخر تحديث لمشروع المطار؟"`
}

// SearchRequest is a semantic search request for one project
// @Description Semantic search request
type SearchRequest struct {
	Query string `json:"query" example:"هل تم التسليم؟"`
	TopK  int    `json:"top_k,omitempty" example:"3"`
}

// SearchResponse carries ranked semantic search hits
// @Description Ranked search hits; score is squared-L2 distance, lower is closer
type SearchResponse struct {
	Results []domain.RankedEntry `json:"results"`
}

// ImportRequest is a batch of entries to merge into a project log
// @Description Batch entry import
type ImportRequest struct {
	Entries []domain.Entry `json:"entries"`
}

// ImportResponse reports how many entries survived deduplication
// @Description Import result
type ImportResponse struct {
	Kept int `json:"kept"`
}

// ReindexResponse reports how many entries were indexed
// @Description Reindex result
type ReindexResponse struct {
	Indexed int `json:"indexed"`
}

// Health endpoints

// handleHealth godoc
// @Summary      Health check
// @Description  Returns the health status of the API
// @Tags         Health
// @Produce      json
// @Success      200  {object}  StatusResponse
// @Router       /health [get]
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// handleReady godoc
// @Summary      Readiness check
// @Description  Returns the readiness status of the API (checks backing stores and the embedding model)
// @Tags         Health
// @Produce      json
// @Success      200  {object}  StatusResponse
// @Failure      503  {object}  ErrorResponse  "A dependency is unavailable"
// @Router       /ready [get]
func (s *Server) handleReady(w http.ResponseWriter, r *http.Request) {
	for _, p := range s.pingers {
		if p == nil {
			continue
		}
		if err := p.Ping(r.Context()); err != nil {
			writeError(w, http.StatusServiceUnavailable, "not ready")
			return
		}
	}
	if embedding := s.services.EmbeddingService(); embedding != nil {
		if err := embedding.HealthCheck(r.Context()); err != nil {
			writeError(w, http.StatusServiceUnavailable, "embedding model unavailable")
			return
		}
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ready"})
}

// handleVersion godoc
// @Summary      Get API version
// @Description  Returns the current API version
// @Tags         Health
// @Produce      json
// @Success      200  {object}  VersionResponse
// @Router       /version [get]
func (s *Server) handleVersion(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"version": s.version})
}

// Auth endpoints

// handleLogin godoc
// @Summary      Admin login
// @Description  Authenticate with the admin password to receive a JWT token
// @Tags         Authentication
// @Accept       json
// @Produce      json
// @Param        request  body      domain.LoginRequest  true  "Login credentials"
// @Success      200      {object}  domain.LoginResponse
// @Failure      400      {object}  ErrorResponse  "Invalid request body"
// @Failure      401      {object}  ErrorResponse  "Invalid credentials"
// @Failure      500      {object}  ErrorResponse  "Internal server error"
// @Router       /auth/login [post]
func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req domain.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	resp, err := s.authService.Login(r.Context(), req)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidCredentials) {
			writeError(w, http.StatusUnauthorized, "invalid credentials")
		} else {
			writeError(w, http.StatusInternalServerError, "authentication failed")
		}
		return
	}

	writeJSON(w, http.StatusOK, resp)
}

// Assistant endpoint

// handleAsk godoc
// @Summary      Ask the assistant
// @Description  Routes a free-form Arabic or English query: resolves the project by name, classifies intent, and answers with the latest entry or a semantic search digest
// @Tags         Assistant
// @Accept       json
// @Produce      json
// @Param        request  body      AskRequest  true  "Query"
// @Success      200      {object}  domain.Answer
// @Failure      400      {object}  ErrorResponse  "Empty query"
// @Failure      404      {object}  ErrorResponse  "No project matched or project has no entries"
// @Failure      503      {object}  ErrorResponse  "Embedding model unavailable"
// @Router       /ask [post]
func (s *Server) handleAsk(w http.ResponseWriter, r *http.Request) {
	var req AskRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	answer, err := s.assistantService.Ask(r.Context(), req.Query)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, answer)
}

// Search endpoint

// handleSearch godoc
// @Summary      Semantic search
// @Description  Searches one project's indexed entries by meaning; scores are squared-L2 distances, lower is closer
// @Tags         Search
// @Accept       json
// @Produce      json
// @Param        id       path      string         true  "Project ID"
// @Param        request  body      SearchRequest  true  "Search query"
// @Success      200      {object}  SearchResponse
// @Failure      400      {object}  ErrorResponse  "Empty query"
// @Failure      503      {object}  ErrorResponse  "Embedding model unavailable"
// @Router       /projects/{id}/search [post]
func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	projectID := r.PathValue("id")

	var req SearchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	results, err := s.searchService.Search(r.Context(), req.Query, projectID, req.TopK)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, SearchResponse{Results: results})
}

// Ingestion endpoints

// handleAddEntry godoc
// @Summary      Add an entry
// @Description  Appends one text update to a project's log. Timestamp defaults to ingestion time. The entry is not searchable until the next reindex.
// @Tags         Entries
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id       path      string        true  "Project ID"
// @Param        request  body      domain.Entry  true  "Entry"
// @Success      201      {object}  domain.Entry
// @Failure      400      {object}  ErrorResponse  "Empty text"
// @Failure      401      {object}  ErrorResponse  "Unauthorized"
// @Router       /projects/{id}/entries [post]
func (s *Server) handleAddEntry(w http.ResponseWriter, r *http.Request) {
	projectID := r.PathValue("id")

	var entry domain.Entry
	if err := json.NewDecoder(r.Body).Decode(&entry); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	entry.ProjectID = projectID

	stored, err := s.ingestService.AddEntry(r.Context(), entry)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, stored)
}

// handleImport godoc
// @Summary      Import entries
// @Description  Merges a batch of entries into a project's log, dropping duplicates by normalized text, then rebuilds the index
// @Tags         Entries
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id       path      string         true  "Project ID"
// @Param        request  body      ImportRequest  true  "Entries to merge"
// @Success      200      {object}  ImportResponse
// @Failure      400      {object}  ErrorResponse  "No valid entries"
// @Failure      401      {object}  ErrorResponse  "Unauthorized"
// @Failure      503      {object}  ErrorResponse  "Embedding model unavailable"
// @Router       /projects/{id}/import [post]
func (s *Server) handleImport(w http.ResponseWriter, r *http.Request) {
	projectID := r.PathValue("id")

	var req ImportRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	kept, err := s.ingestService.Import(r.Context(), projectID, req.Entries)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, ImportResponse{Kept: kept})
}

// Indexing endpoints

// handleReindex godoc
// @Summary      Rebuild one project's index
// @Description  Re-embeds every entry in the project's log and replaces the index snapshot wholesale
// @Tags         Indexing
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Project ID"
// @Success      200  {object}  ReindexResponse
// @Failure      401  {object}  ErrorResponse  "Unauthorized"
// @Failure      404  {object}  ErrorResponse  "Project has no entry log"
// @Failure      409  {object}  ErrorResponse  "Another rebuild is in progress"
// @Failure      503  {object}  ErrorResponse  "Embedding model unavailable"
// @Router       /projects/{id}/reindex [post]
func (s *Server) handleReindex(w http.ResponseWriter, r *http.Request) {
	projectID := r.PathValue("id")

	indexed, err := s.indexerService.Rebuild(r.Context(), projectID)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, ReindexResponse{Indexed: indexed})
}

// handleReindexAll godoc
// @Summary      Rebuild every project's index
// @Description  Rebuilds the index of every project that has a non-empty entry log
// @Tags         Indexing
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  StatusResponse
// @Failure      401  {object}  ErrorResponse  "Unauthorized"
// @Failure      503  {object}  ErrorResponse  "Embedding model unavailable"
// @Router       /reindex [post]
func (s *Server) handleReindexAll(w http.ResponseWriter, r *http.Request) {
	if err := s.indexerService.RebuildAll(r.Context()); err != nil {
		writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// writeDomainError maps domain sentinels to HTTP status codes.
func writeDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrInvalidInput):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, domain.ErrNotFound):
		writeError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, domain.ErrNoEntries):
		writeError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, domain.ErrModelUnavailable):
		writeError(w, http.StatusServiceUnavailable, "embedding model unavailable")
	case errors.Is(err, domain.ErrBuildInProgress):
		writeError(w, http.StatusConflict, "index build already in progress")
	default:
		writeError(w, http.StatusInternalServerError, "internal server error")
	}
}

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}
