package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"

	"github.com/riyazmd/unified-event-analytics/internal/cache"
	"github.com/riyazmd/unified-event-analytics/internal/config"
	"github.com/riyazmd/unified-event-analytics/internal/httpserver"
	"github.com/riyazmd/unified-event-analytics/internal/ratelimit"
	"github.com/riyazmd/unified-event-analytics/internal/store"
)

// main boots the service: config → DB → schema → cache → HTTP server.
func main() {
	// Local dev convenience; absent .env is not an error.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	// Connect to durable storage (Postgres) using a connection pool.
	db, err := store.NewPostgresStore(cfg.DBURL)
	if err != nil {
		log.Fatal(err)
	}
	defer db.Close()

	// Ensure required tables/indexes exist so `docker compose up --build` is enough.
	if err := db.EnsureSchema(); err != nil {
		log.Fatal(err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Cache layer: Redis when configured, in-process map otherwise.
	var summaryCache cache.Cache
	if cfg.RedisAddr != "" {
		rdb := redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		defer func() { _ = rdb.Close() }()

		pingCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
		_, err := rdb.Ping(pingCtx).Result()
		cancel()
		if err != nil {
			log.Fatalf("redis ping error: %v", err)
		}

		summaryCache = cache.NewRedis(rdb)
		log.Printf("cache: redis at %s", cfg.RedisAddr)
	} else {
		mem := cache.NewMemory()
		mem.StartJanitor(ctx)
		summaryCache = mem
		log.Println("cache: in-memory")
	}

	var limiter *ratelimit.Store
	if cfg.RateRPS > 0 {
		limiter = ratelimit.NewStore(cfg.RateRPS, cfg.RateBurst)
		limiter.StartJanitor(ctx)
	}

	router := httpserver.NewRouter(cfg, db, summaryCache, limiter)

	srv := &http.Server{
		Addr:              cfg.ListenAddr,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       90 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	log.Printf("server started on %s", cfg.ListenAddr)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatal(err)
	}
}
