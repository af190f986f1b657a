package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"booklist/internal/catalog"
	"booklist/internal/config"
	"booklist/internal/fetchlog"
	"booklist/internal/httpx"
	"booklist/internal/platform/cache"
	"booklist/internal/platform/logger"
	"booklist/internal/platform/openlibrary"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
)

func main() {
	config.LoadEnvFiles()
	cfg := config.Load()
	log := logger.New(cfg.App.Environment, cfg.App.LogLevel)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var source catalog.Source = openlibrary.NewClient(openlibrary.Options{
		BaseURL:    cfg.OpenLibrary.BaseURL,
		UserAgent:  cfg.OpenLibrary.UserAgent,
		RPS:        cfg.OpenLibrary.RPS,
		MaxRetries: cfg.OpenLibrary.MaxRetries,
		Timeout:    cfg.OpenLibrary.Timeout,
	})

	if cfg.Redis.Addr != "" {
		redisCache := cache.NewRedisCache(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
		defer redisCache.Close()
		if err := redisCache.Ping(ctx); err != nil {
			log.Warn().Err(err).Str("addr", cfg.Redis.Addr).Msg("redis unavailable, subject cache disabled")
		} else {
			source = catalog.NewCachedSource(source, redisCache, cfg.Redis.TTL, log)
			log.Info().Str("addr", cfg.Redis.Addr).Msg("subject cache enabled")
		}
	}

	var runs fetchlog.Repository = fetchlog.Nop{}
	if cfg.Database.DSN != "" {
		if pool := openDB(ctx, cfg.Database.DSN, log); pool != nil {
			defer pool.Close()
			runs = fetchlog.NewPostgresRepo(pool, cfg.Database.Timeout)
		}
	}

	loader := catalog.NewLoader(source, runs, catalog.Config{
		Subject: cfg.OpenLibrary.Subject,
		Limit:   cfg.OpenLibrary.Limit,
	}, log)
	loader.Start(ctx)

	handler := catalog.NewHTTPHandler(loader, log)
	limiter := httpx.NewRateLimitMiddleware(ctx, cfg.HTTP.RateLimitRPS, cfg.HTTP.RateLimitBurst)

	httpServer := &http.Server{
		Addr:         cfg.HTTP.Addr,
		Handler:      newRouter(handler, limiter, cfg.HTTP, log),
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			log.Error().Err(err).Msg("server shutdown")
		}
	}()

	log.Info().Str("addr", cfg.HTTP.Addr).Msg("starting server")
	if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatal().Err(err).Msg("server error")
	}
	log.Info().Msg("server stopped")
}

func newRouter(h *catalog.HTTPHandler, limiter *httpx.RateLimitMiddleware, cfg config.HTTPConfig, log zerolog.Logger) http.Handler {
	router := http.NewServeMux()

	router.HandleFunc("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	router.HandleFunc("GET /readyz", h.Ready)

	books := httpx.Chain(http.HandlerFunc(h.List),
		httpx.CORSMiddleware(cfg.AllowedOrigins),
		limiter.Middleware,
	)
	router.Handle("GET /v1/books", books)
	router.Handle("OPTIONS /v1/books", books)
	router.Handle("GET /{$}", limiter.Middleware(http.HandlerFunc(h.Page)))

	return httpx.Chain(router,
		httpx.RequestIDMiddleware,
		httpx.AccessLogMiddleware(log),
		httpx.RecoveryMiddleware(log),
		httpx.SecurityHeadersMiddleware(cfg.EnableHSTS),
	)
}

// openDB connects the optional fetch-run log. A database that cannot be reached
// only disables the log.
func openDB(ctx context.Context, dsn string, log zerolog.Logger) *pgxpool.Pool {
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		log.Warn().Err(err).Msg("cannot create db pool, fetch runs will not be recorded")
		return nil
	}
	pingCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	if err := pool.Ping(pingCtx); err != nil {
		pool.Close()
		log.Warn().Err(err).Str("dsn", config.RedactDSN(dsn)).Msg("cannot ping database, fetch runs will not be recorded")
		return nil
	}
	log.Info().Msg("database connection OK")
	return pool
}
