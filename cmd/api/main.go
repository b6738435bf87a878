// Package main provides the entrypoint for the Kyubii API server.
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"

	"github.com/kyubii/kyubii-api/internal/api"
	"github.com/kyubii/kyubii-api/internal/auth"
	"github.com/kyubii/kyubii-api/internal/catalog"
	"github.com/kyubii/kyubii-api/internal/database"
	"github.com/kyubii/kyubii-api/internal/planner"
	"github.com/kyubii/kyubii-api/internal/provider/resilience"
	"github.com/kyubii/kyubii-api/internal/routing"
	"github.com/kyubii/kyubii-api/internal/routing/osrm"
	"github.com/kyubii/kyubii-api/internal/telemetry"
	"github.com/kyubii/kyubii-api/internal/worker"
)

// Version and BuildTime are set at compile time via ldflags.
var (
	Version   = "dev"
	BuildTime = "unknown"
)

func main() {
	const serviceName = "kyubii-api"

	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()

	// Setup structured logging
	log := zerolog.New(os.Stdout).
		With().
		Timestamp().
		Str("service", serviceName).
		Str("version", Version).
		Logger()

	log.Info().
		Str("build_time", BuildTime).
		Msg("starting Kyubii API")

	// Get configuration from environment
	port := envOrDefault("APP_PORT", "8080")
	env := envOrDefault("APP_ENV", "development")
	otlpEndpoint := envOrDefault("OTEL_EXPORTER_OTLP_ENDPOINT", "localhost:4317")

	// Initialize OpenTelemetry
	ctx := context.Background()
	telemetryEnabled := os.Getenv("OTEL_ENABLED") == "true"

	tp, err := telemetry.Init(ctx, telemetry.Config{
		ServiceName:    serviceName,
		ServiceVersion: Version,
		Environment:    env,
		OTLPEndpoint:   otlpEndpoint,
		Enabled:        telemetryEnabled,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize telemetry")
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if shutdownErr := tp.Shutdown(shutdownCtx); shutdownErr != nil {
			log.Error().Err(shutdownErr).Msg("failed to shutdown telemetry")
		}
	}()

	if telemetryEnabled {
		log.Info().
			Str("otlp_endpoint", otlpEndpoint).
			Msg("OpenTelemetry initialized")
	}

	// Catalog: Postgres when enabled, otherwise the seeded in-memory catalog.
	var repo catalog.Repository
	if os.Getenv("DB_ENABLED") == "true" {
		dbConfig := database.ConfigFromEnv()
		pool, err := database.Connect(ctx, dbConfig)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to connect to database")
		}
		defer pool.Close()
		log.Info().
			Str("host", dbConfig.Host).
			Int("port", dbConfig.Port).
			Str("database", dbConfig.Database).
			Msg("database connected")
		repo = catalog.NewPostgresRepository(pool)
	} else {
		repo = catalog.NewMemoryRepository()
		log.Info().Msg("using in-memory catalog")
	}

	// Route cache: Redis when configured, otherwise in-process.
	var store routing.Store
	if addr := os.Getenv("REDIS_ADDR"); addr != "" {
		redisStore := routing.NewRedisStore(routing.RedisStoreConfig{
			Addr:     addr,
			Password: os.Getenv("REDIS_PASSWORD"),
			DB:       envInt("REDIS_DB", 0),
			TTL:      envDuration("ROUTE_CACHE_TTL", 24*time.Hour),
		})
		if err := redisStore.Ping(ctx); err != nil {
			log.Fatal().Err(err).Str("addr", addr).Msg("failed to connect to redis")
		}
		defer redisStore.Close()
		log.Info().Str("addr", addr).Msg("redis route cache connected")
		store = redisStore
	} else {
		store = routing.NewMemoryStore()
		log.Info().Msg("using in-memory route cache")
	}

	// Initialize routing provider and resolver
	registry := resilience.NewRegistry()
	provider := osrm.NewClient(osrm.ClientConfig{
		BaseURL:  os.Getenv("OSRM_BASE_URL"),
		Registry: registry,
		Logger:   log,
	})
	resolver := routing.NewResolver(routing.ResolverConfig{
		Provider: provider,
		Store:    store,
		Logger:   log,
	})
	log.Info().Str("provider", provider.Name()).Msg("route resolver initialized")

	// Initialize ops auth service (get signing key from environment)
	jwtSigningKey := os.Getenv("JWT_SIGNING_KEY")
	if jwtSigningKey == "" {
		jwtSigningKey = "local-dev-signing-key-change-in-production"
		log.Warn().Msg("using default JWT signing key - not secure for production")
	}

	authService := auth.NewService(auth.ServiceConfig{
		SigningKey: jwtSigningKey,
		Issuer:     envOrDefault("JWT_ISSUER", "https://api.kyubii.jp"),
		Audience:   envOrDefault("JWT_AUDIENCE", "kyubii-api"),
	})
	log.Info().Msg("auth service initialized")

	// Initialize trip planner
	plannerService := planner.NewService(planner.ServiceConfig{
		Catalog: repo,
		Logger:  log,
	})
	log.Info().Msg("planner service initialized")

	// Prewarmer backs the admin prewarm endpoint
	prewarmer := worker.NewPrewarmer(worker.PrewarmerConfig{
		Catalog:  repo,
		Resolver: resolver,
		Logger:   log,
	})

	// Create router with configuration
	router := api.NewRouter(api.RouterConfig{
		Version:     Version,
		BuildTime:   BuildTime,
		Logger:      log,
		Catalog:     repo,
		Planner:     plannerService,
		Resolver:    resolver,
		Prewarmer:   prewarmer,
		AuthService: authService,
		Registry:    registry,
	})

	// Create HTTP server
	server := &http.Server{
		Addr:         ":" + port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in goroutine
	go func() {
		log.Info().
			Str("addr", server.Addr).
			Msg("server listening")

		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server error")
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down server")

	// Graceful shutdown with timeout
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("server forced to shutdown")
		os.Exit(1)
	}

	log.Info().Msg("server stopped")
}

func envOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}

func envDuration(key string, fallback time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return fallback
	}
	return d
}
