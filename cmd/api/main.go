package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"bookcatalog/internal/catalog"
	"bookcatalog/internal/httpx"
	"bookcatalog/internal/shape"

	"github.com/jackc/pgx/v5/pgxpool"
)

func main() {
	loadEnvFiles()
	cfg := loadConfig()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	var (
		repo   catalog.Repository
		dbPool *pgxpool.Pool
	)
	switch cfg.store {
	case storePostgres:
		dbPool = mustOpenDB(ctx, cfg.dsn)
		defer dbPool.Close()
		repo = catalog.NewPostgresRepo(dbPool)
	case storeMemory:
		repo = catalog.NewMemoryRepo()
	default:
		log.Fatalf("unknown CATALOG_STORE %q (want %s or %s)", cfg.store, storeMemory, storePostgres)
	}

	rateLimiter := httpx.NewRateLimitMiddleware(cfg.rateLimitRPS, cfg.rateLimitBurst)
	defer rateLimiter.Stop()

	router := newRouter(catalog.NewService(repo), dbPool)
	handler := chain(router,
		httpx.RequestIDMiddleware,
		httpx.AccessLogMiddleware,
		httpx.RecoveryMiddleware,
		httpx.SecurityHeadersMiddleware(cfg.enableHSTS),
		httpx.CORSMiddleware(cfg.allowedOrigins),
		httpx.RequestSizeLimitMiddleware(cfg.maxBodyBytes),
		rateLimiter.Middleware,
	)

	httpServer := &http.Server{
		Addr:         cfg.addr,
		Handler:      handler,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			log.Printf("server shutdown error: %v", err)
		}
	}()

	log.Printf("Starting server on %s store=%s", cfg.addr, cfg.store)
	if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatalf("server error: %v", err)
	}
}

// pinger is satisfied by *pgxpool.Pool.
type pinger interface {
	Ping(ctx context.Context) error
}

func newRouter(svc *catalog.Service, db *pgxpool.Pool) *http.ServeMux {
	var p pinger
	if db != nil {
		p = db
	}
	return newRouterWithPinger(svc, p)
}

func newRouterWithPinger(svc *catalog.Service, db pinger) *http.ServeMux {
	router := http.NewServeMux()

	router.HandleFunc("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		httpx.Text(w, http.StatusOK, "ok")
	})
	router.HandleFunc("GET /readyz", func(w http.ResponseWriter, r *http.Request) {
		if db != nil {
			ctx, cancel := context.WithTimeout(r.Context(), 500*time.Millisecond)
			defer cancel()
			if err := db.Ping(ctx); err != nil {
				http.Error(w, "db not ready", http.StatusServiceUnavailable)
				return
			}
		}
		httpx.Text(w, http.StatusOK, "ready")
	})

	catalog.NewHTTPHandler(svc).Register(router)
	shape.NewHTTPHandler().Register(router)
	return router
}

// chain applies middleware so the first one listed is the outermost.
func chain(h http.Handler, mws ...func(http.Handler) http.Handler) http.Handler {
	for i := len(mws) - 1; i >= 0; i-- {
		h = mws[i](h)
	}
	return h
}

func mustOpenDB(ctx context.Context, dsn string) *pgxpool.Pool {
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		log.Fatalf("cannot create db pool: %v", err)
	}
	pingCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	if err := pool.Ping(pingCtx); err != nil {
		pool.Close()
		log.Fatalf("cannot ping database (%s): %v", redactDSN(dsn), err)
	}
	log.Println("database connection OK")
	return pool
}
