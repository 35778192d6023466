package http

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/mutabaa-labs/mutabaa-core/internal/core/ports/driving"
	"github.com/mutabaa-labs/mutabaa-core/internal/runtime"
)

// Pinger is a simple health check interface
type Pinger interface {
	Ping(ctx context.Context) error
}

// Server represents the HTTP server
type Server struct {
	httpServer *http.Server
	router     *http.ServeMux
	version    string

	// Services
	authService      driving.AuthService
	searchService    driving.SearchService
	assistantService driving.AssistantService
	ingestService    driving.IngestService
	indexerService   driving.IndexerService
	services         *runtime.Services

	// Infrastructure health checks (entries may be nil)
	pingers []Pinger
}

// Config holds server configuration
type Config struct {
	Host    string
	Port    int
	Version string

	// AllowedIPs restricts clients by IP. Empty means everyone.
	AllowedIPs []string
}

// DefaultConfig returns sensible defaults
func DefaultConfig() Config {
	return Config{
		Host:    "0.0.0.0",
		Port:    8080,
		Version: "dev",
	}
}

// NewServer creates a new HTTP server
func NewServer(
	cfg Config,
	authService driving.AuthService,
	searchService driving.SearchService,
	assistantService driving.AssistantService,
	ingestService driving.IngestService,
	indexerService driving.IndexerService,
	services *runtime.Services,
	pingers ...Pinger,
) *Server {
	s := &Server{
		router:           http.NewServeMux(),
		version:          cfg.Version,
		authService:      authService,
		searchService:    searchService,
		assistantService: assistantService,
		ingestService:    ingestService,
		indexerService:   indexerService,
		services:         services,
		pingers:          pingers,
	}

	s.setupRoutes()

	var handler http.Handler = s.router
	handler = NewAllowlistMiddleware(cfg.AllowedIPs).Handler(handler)
	handler = NewLoggingMiddleware().Handler(handler)
	handler = NewRecoveryMiddleware().Handler(handler)

	s.httpServer = &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		Handler:      handler,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	return s
}

// setupRoutes configures all HTTP routes
func (s *Server) setupRoutes() {
	authMiddleware := NewAuthMiddleware(s.authService)

	// Health endpoints (no auth)
	s.router.HandleFunc("GET /health", s.handleHealth)
	s.router.HandleFunc("GET /ready", s.handleReady)
	s.router.HandleFunc("GET /version", s.handleVersion)

	// Auth endpoints (public)
	s.router.HandleFunc("POST /api/v1/auth/login", s.handleLogin)

	// Query endpoints (public)
	s.router.HandleFunc("POST /api/v1/ask", s.handleAsk)
	s.router.HandleFunc("POST /api/v1/projects/{id}/search", s.handleSearch)

	// Ingestion endpoints (admin-only)
	s.router.Handle("POST /api/v1/projects/{id}/entries",
		authMiddleware.Authenticate(
			authMiddleware.RequireAdmin(http.HandlerFunc(s.handleAddEntry))))
	s.router.Handle("POST /api/v1/projects/{id}/import",
		authMiddleware.Authenticate(
			authMiddleware.RequireAdmin(http.HandlerFunc(s.handleImport))))

	// Indexing endpoints (admin-only)
	s.router.Handle("POST /api/v1/projects/{id}/reindex",
		authMiddleware.Authenticate(
			authMiddleware.RequireAdmin(http.HandlerFunc(s.handleReindex))))
	s.router.Handle("POST /api/v1/reindex",
		authMiddleware.Authenticate(
			authMiddleware.RequireAdmin(http.HandlerFunc(s.handleReindexAll))))
}

// Start starts the HTTP server with graceful shutdown
func (s *Server) Start() error {
	// Channel to listen for OS signals
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	// Start server in goroutine
	go func() {
		log.Printf("Starting server on %s", s.httpServer.Addr)
		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server error: %v", err)
		}
	}()

	// Wait for shutdown signal
	<-stop
	log.Println("Shutting down server...")

	// Create shutdown context with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	// Attempt graceful shutdown
	if err := s.httpServer.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}

	log.Println("Server stopped")
	return nil
}

// Stop stops the server
func (s *Server) Stop(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}
