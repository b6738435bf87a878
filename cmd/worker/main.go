// Package main provides the entrypoint for the Kyubii prewarm worker. It
// consumes route_prewarm jobs from Pub/Sub and warms the shared route cache
// before the tourist day starts.
package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"

	"github.com/kyubii/kyubii-api/internal/catalog"
	"github.com/kyubii/kyubii-api/internal/provider/resilience"
	"github.com/kyubii/kyubii-api/internal/routing"
	"github.com/kyubii/kyubii-api/internal/routing/osrm"
	"github.com/kyubii/kyubii-api/internal/worker"
)

// Version and BuildTime are set at compile time via ldflags.
var (
	Version   = "dev"
	BuildTime = "unknown"
)

func main() {
	const serviceName = "kyubii-worker"

	_ = godotenv.Load()

	log := zerolog.New(os.Stdout).
		With().
		Timestamp().
		Str("service", serviceName).
		Str("version", Version).
		Logger()

	log.Info().
		Str("build_time", BuildTime).
		Msg("starting Kyubii prewarm worker")

	// Worker also exposes a health endpoint for Cloud Run.
	port := os.Getenv("APP_PORT")
	if port == "" {
		port = "8080"
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// The worker shares the route cache with the API through Redis. A
	// memory store would warm a cache nobody reads.
	redisAddr := os.Getenv("REDIS_ADDR")
	if redisAddr == "" {
		redisAddr = "localhost:6379"
	}
	store := routing.NewRedisStore(routing.RedisStoreConfig{
		Addr:     redisAddr,
		Password: os.Getenv("REDIS_PASSWORD"),
		TTL:      24 * time.Hour,
	})
	if err := store.Ping(ctx); err != nil {
		log.Fatal().Err(err).Str("addr", redisAddr).Msg("failed to connect to redis")
	}
	defer store.Close()

	provider := osrm.NewClient(osrm.ClientConfig{
		BaseURL:  os.Getenv("OSRM_BASE_URL"),
		Registry: resilience.NewRegistry(),
		Logger:   log,
	})
	resolver := routing.NewResolver(routing.ResolverConfig{
		Provider: provider,
		Store:    store,
		Logger:   log,
	})

	prewarmer := worker.NewPrewarmer(worker.PrewarmerConfig{
		Catalog:  catalog.NewMemoryRepository(),
		Resolver: resolver,
		Logger:   log,
	})

	projectID := os.Getenv("PUBSUB_PROJECT_ID")
	subscription := os.Getenv("PUBSUB_SUBSCRIPTION")
	if subscription == "" {
		subscription = "route-prewarm-jobs"
	}
	if projectID == "" {
		log.Fatal().Msg("PUBSUB_PROJECT_ID is required")
	}

	handler, err := worker.NewPubSubHandler(ctx, worker.PubSubConfig{
		ProjectID:        projectID,
		SubscriptionName: subscription,
		Prewarmer:        prewarmer,
		Logger:           log,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("failed to create pubsub handler")
	}
	defer handler.Close()

	// Health check server
	mux := http.NewServeMux()
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		fmt.Fprintf(w, `{"status":"healthy","version":"%s"}`, Version)
	})

	server := &http.Server{
		Addr:         ":" + port,
		Handler:      mux,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
	}

	go func() {
		log.Info().Str("addr", server.Addr).Msg("health check server listening")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error().Err(err).Msg("health server error")
		}
	}()

	// Receive blocks until the context is cancelled.
	go func() {
		log.Info().
			Str("subscription", subscription).
			Msg("worker listening for prewarm jobs")
		if err := handler.Start(ctx); err != nil {
			log.Error().Err(err).Msg("pubsub receive stopped")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down worker")
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("health server forced to shutdown")
	}

	log.Info().Msg("worker stopped")
}
