package main

// @title           Mutabaa Core API
// @version         1.0
// @description     Semantic search over per-project logs of short Arabic and English status updates.

// @contact.name   Mutabaa Labs
// @contact.url    https://github.com/mutabaa-labs/mutabaa-core/issues

// @host      localhost:8080
// @BasePath  /api/v1
// @schemes   http https

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description JWT Bearer token. Format: "Bearer {token}"

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"

	"github.com/mutabaa-labs/mutabaa-core/internal/adapters/driven/ai"
	"github.com/mutabaa-labs/mutabaa-core/internal/adapters/driven/auth"
	"github.com/mutabaa-labs/mutabaa-core/internal/adapters/driven/fsstore"
	"github.com/mutabaa-labs/mutabaa-core/internal/adapters/driven/postgres"
	"github.com/mutabaa-labs/mutabaa-core/internal/adapters/driven/redisstore"
	"github.com/mutabaa-labs/mutabaa-core/internal/adapters/driving/http"
	"github.com/mutabaa-labs/mutabaa-core/internal/core/domain"
	"github.com/mutabaa-labs/mutabaa-core/internal/core/ports/driven"
	"github.com/mutabaa-labs/mutabaa-core/internal/core/services"
	"github.com/mutabaa-labs/mutabaa-core/internal/runtime"
)

var version = "dev"

func main() {
	// Optional .env for local development
	_ = godotenv.Load()

	// Run mode from environment (RUN_MODE) or command line arg
	mode := getEnv("RUN_MODE", "api")
	if len(os.Args) > 1 {
		mode = os.Args[1]
	}

	log.Printf("mutabaa-core %s starting in %s mode", version, mode)

	// Configuration from environment
	jwtSecret := getEnv("JWT_SECRET", "development-secret-change-in-production")
	port := getEnvInt("PORT", 8080)
	dataDir := getEnv("DATA_DIR", "data")
	databaseURL := getEnv("DATABASE_URL", "")
	redisURL := getEnv("REDIS_URL", "")
	adminPasswordHash := getEnv("ADMIN_PASSWORD_HASH", "")
	allowedIPs := splitList(getEnv("ALLOWED_IPS", ""))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// ===== Entry + project stores (PostgreSQL if configured, else files) =====
	var (
		entryStore   driven.EntryStore
		projectStore driven.ProjectStore
		pingers      []http.Pinger
	)
	if databaseURL != "" {
		log.Println("Connecting to PostgreSQL...")
		db, err := postgres.Connect(ctx, postgres.Config{
			URL:             databaseURL,
			MaxOpenConns:    getEnvInt("DB_MAX_OPEN_CONNS", 25),
			MaxIdleConns:    getEnvInt("DB_MAX_IDLE_CONNS", 5),
			ConnMaxLifetime: time.Duration(getEnvInt("DB_CONN_MAX_LIFETIME_SEC", 300)) * time.Second,
			ConnMaxIdleTime: time.Duration(getEnvInt("DB_CONN_MAX_IDLE_SEC", 60)) * time.Second,
		})
		if err != nil {
			log.Fatalf("Failed to connect to database: %v", err)
		}
		defer db.Close()
		if err := db.InitSchema(ctx); err != nil {
			log.Fatalf("Failed to initialize schema: %v", err)
		}
		entryStore = postgres.NewEntryStore(db)
		projectStore = postgres.NewProjectStore(db)
		pingers = append(pingers, db)
		log.Println("Using PostgreSQL entry store")
	} else {
		fsEntries, err := fsstore.NewEntryStore(dataDir)
		if err != nil {
			log.Fatalf("Failed to create entry store: %v", err)
		}
		fsProjects, err := fsstore.NewProjectStore(dataDir)
		if err != nil {
			log.Fatalf("Failed to create project store: %v", err)
		}
		entryStore = fsEntries
		projectStore = fsProjects
		log.Printf("Using filesystem entry store in %s", dataDir)

		// Optional registry bootstrap; an existing projects.json wins.
		if seedPath := getEnv("PROJECTS_SEED", ""); seedPath != "" {
			seed, err := loadProjectSeed(seedPath)
			if err != nil {
				log.Fatalf("Failed to load project seed: %v", err)
			}
			if err := fsProjects.Seed(seed); err != nil {
				log.Fatalf("Failed to seed project registry: %v", err)
			}
			log.Printf("Seeded project registry from %s", seedPath)
		}
	}

	// ===== Index store + project lock (Redis if configured, else files) =====
	var (
		indexStore  driven.IndexStore
		projectLock driven.ProjectLock
	)
	if redisURL != "" {
		log.Println("Connecting to Redis...")
		opts, err := redis.ParseURL(redisURL)
		if err != nil {
			log.Fatalf("Failed to parse Redis URL: %v", err)
		}
		redisClient := redis.NewClient(opts)
		if err := redisClient.Ping(ctx).Err(); err != nil {
			log.Fatalf("Failed to connect to Redis: %v", err)
		}
		defer redisClient.Close()
		redisIndex := redisstore.NewIndexStore(redisClient)
		indexStore = redisIndex
		projectLock = redisstore.NewLock(redisClient)
		pingers = append(pingers, redisIndex)
		log.Println("Using Redis index store")
	} else {
		fsIndex, err := fsstore.NewIndexStore(dataDir)
		if err != nil {
			log.Fatalf("Failed to create index store: %v", err)
		}
		indexStore = fsIndex
		log.Printf("Using filesystem index store in %s", dataDir)
	}

	// ===== AI services =====
	runtimeServices := runtime.NewServices()
	defer runtimeServices.Close()

	embeddingCfg := ai.Config{
		Provider: getEnv("EMBEDDING_PROVIDER", ai.ProviderOllama),
		APIKey:   getEnv("EMBEDDING_API_KEY", ""),
		Model:    getEnv("EMBEDDING_MODEL", ""),
		BaseURL:  getEnv("EMBEDDING_BASE_URL", getEnv("OLLAMA_HOST", "")),
	}
	embeddingService, err := ai.NewEmbeddingService(embeddingCfg)
	if err != nil {
		log.Fatalf("Failed to create embedding service: %v", err)
	}
	runtimeServices.SetEmbeddingService(embeddingService)

	llmCfg := ai.Config{
		Provider: getEnv("LLM_PROVIDER", ai.ProviderOllama),
		APIKey:   getEnv("LLM_API_KEY", ""),
		Model:    getEnv("LLM_MODEL", ""),
		BaseURL:  getEnv("LLM_BASE_URL", getEnv("OLLAMA_HOST", "")),
	}
	if getEnvBool("LLM_ENABLED", true) {
		llmService, err := ai.NewLLMService(llmCfg)
		if err != nil {
			log.Fatalf("Failed to create LLM service: %v", err)
		}
		runtimeServices.SetLLMService(llmService)
	}

	// ===== Core services =====
	logger := slog.Default()
	authAdapter := auth.NewAdapter(jwtSecret)
	tokenTTL := time.Duration(getEnvInt("TOKEN_TTL_HOURS", 24)) * time.Hour

	authService := services.NewAuthService(authAdapter, adminPasswordHash, tokenTTL)
	searchService := services.NewSearchService(indexStore, runtimeServices, logger)
	indexerService := services.NewIndexerService(entryStore, indexStore, projectLock, runtimeServices, logger)
	ingestService := services.NewIngestService(entryStore, indexerService, logger)
	assistantService := services.NewAssistantService(projectStore, entryStore, searchService, runtimeServices, logger)

	switch mode {
	case "api":
		cfg := http.Config{
			Host:       getEnv("HOST", "0.0.0.0"),
			Port:       port,
			Version:    version,
			AllowedIPs: allowedIPs,
		}
		server := http.NewServer(
			cfg,
			authService,
			searchService,
			assistantService,
			ingestService,
			indexerService,
			runtimeServices,
			pingers...,
		)
		log.Printf("API server starting on :%d", port)
		if err := server.Start(); err != nil {
			log.Fatalf("Server error: %v", err)
		}

	case "reindex":
		// One-shot reindex: a project ID argument rebuilds one project,
		// otherwise every project with entries is rebuilt.
		if len(os.Args) > 2 {
			projectID := os.Args[2]
			count, err := indexerService.Rebuild(ctx, projectID)
			if err != nil {
				log.Fatalf("Reindex of %s failed: %v", projectID, err)
			}
			log.Printf("Reindexed %s: %d entries", projectID, count)
		} else {
			if err := indexerService.RebuildAll(ctx); err != nil {
				log.Fatalf("Reindex failed: %v", err)
			}
			log.Println("Reindexed all projects")
		}

	default:
		log.Fatalf("Unknown mode: %s (use: api or reindex)", mode)
	}
}

// Helper functions

func loadProjectSeed(path string) ([]domain.Project, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var projects []domain.Project
	if err := json.Unmarshal(data, &projects); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return projects, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		var result int
		if _, err := fmt.Sscanf(value, "%d", &result); err == nil {
			return result
		}
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		return value == "true" || value == "1" || value == "yes"
	}
	return defaultValue
}

func splitList(value string) []string {
	if value == "" {
		return nil
	}
	parts := strings.Split(value, ",")
	out := parts[:0]
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
