package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Mooujj/quiz-hub/internal/catalog"
	"github.com/Mooujj/quiz-hub/internal/config"
	"github.com/Mooujj/quiz-hub/internal/database"
	"github.com/Mooujj/quiz-hub/internal/handler"
	"github.com/Mooujj/quiz-hub/internal/logger"
	"github.com/Mooujj/quiz-hub/internal/middleware"
	"github.com/Mooujj/quiz-hub/internal/quiz"
	"github.com/Mooujj/quiz-hub/internal/router"
	"github.com/Mooujj/quiz-hub/internal/service"
	"github.com/Mooujj/quiz-hub/internal/store"
	"github.com/Mooujj/quiz-hub/internal/validator"
	"github.com/Mooujj/quiz-hub/internal/worker"
	"github.com/rs/zerolog"
)

func main() {
	// ─── Load Configuration ────────────────────────────────────────────
	cfg := config.Load()

	// ─── Initialize Logger ─────────────────────────────────────────────
	log := logger.Setup(cfg.LogLevel, cfg.LogFormat)
	log.Info().
		Str("port", cfg.ServerPort).
		Str("mode", cfg.GinMode).
		Str("catalog_source", cfg.CatalogSource).
		Str("session_store", cfg.SessionStore).
		Msg("Starting Quiz Hub")

	// ─── Initialize Validator ──────────────────────────────────────────
	validator.Setup()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// ─── Load Quiz Catalog ─────────────────────────────────────────────
	// Loaded once. On failure the server still starts and answers every
	// quiz route with CATALOG_UNAVAILABLE.
	cat, loadErr := loadCatalog(ctx, cfg, log)
	if loadErr != nil {
		log.Error().Err(loadErr).Msg("Quiz catalog unavailable")
	} else {
		log.Info().Int("quizzes", cat.Len()).Msg("Quiz catalog loaded")
	}

	// ─── Session Store & Start Limiter ─────────────────────────────────
	var (
		sessions     store.SessionStore
		startLimiter middleware.Limiter
	)
	switch cfg.SessionStore {
	case config.SessionStoreRedis:
		rdb, err := database.NewRedisClient(ctx, cfg, log)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to connect to Redis")
		}
		defer rdb.Close()
		sessions = store.NewRedisStore(rdb, cfg.SessionTTL)
		startLimiter = middleware.NewRedisRateLimiter(rdb, cfg.StartRateLimit, time.Minute)
	case config.SessionStoreMemory:
		memStore := store.NewMemoryStore(cfg.SessionTTL)
		if cfg.SessionTTL > 0 {
			go worker.NewSessionSweeper(memStore, time.Minute, log).Start(ctx)
		}
		sessions = memStore
		limiter := middleware.NewRateLimiter(cfg.StartRateLimit, time.Minute)
		go limiter.RunCleanup(ctx)
		startLimiter = limiter
	default:
		log.Fatal().Str("session_store", cfg.SessionStore).Msg("Unknown session store")
	}

	// ─── Initialize Services ──────────────────────────────────────────
	engine := quiz.NewEngine(log)
	quizService := service.NewQuizService(cat, loadErr, sessions, engine, log)
	tokenService := service.NewTokenService(cfg)

	// ─── Initialize Handlers ──────────────────────────────────────────
	handlers := &router.Handlers{
		Catalog: handler.NewCatalogHandler(quizService, tokenService, log),
		Session: handler.NewSessionHandler(quizService, log),
		WS:      handler.NewWSHandler(quizService, log, cfg.AllowedOrigins),
		System:  handler.NewSystemHandler(quizService, cfg.SessionStore),
	}

	// ─── Setup Router ──────────────────────────────────────────────────
	r := router.SetupRouter(router.Deps{
		Tokens:       tokenService,
		Catalog:      quizService,
		StartLimiter: startLimiter,
		Log:          log,
	}, handlers, cfg)

	// ─── Create HTTP Server ────────────────────────────────────────────
	srv := &http.Server{
		Addr:              ":" + cfg.ServerPort,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	// ─── Start Server in Goroutine ─────────────────────────────────────
	go func() {
		log.Info().Str("addr", ":"+cfg.ServerPort).Msg("Server listening")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("Server error")
		}
	}()

	// ─── Graceful Shutdown ─────────────────────────────────────────────
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit

	log.Info().Str("signal", sig.String()).Msg("Shutting down gracefully...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("HTTP server shutdown error")
	}

	log.Info().Msg("Shutdown complete")
}

// loadCatalog runs the configured loader once, bounded by CATALOG_TIMEOUT.
func loadCatalog(ctx context.Context, cfg *config.Config, log zerolog.Logger) (*catalog.Catalog, error) {
	ctx, cancel := context.WithTimeout(ctx, cfg.CatalogTimeout)
	defer cancel()

	loader, closeFn, err := catalog.LoaderFromConfig(ctx, cfg, log)
	if err != nil {
		return nil, &catalog.LoadError{Source: cfg.CatalogSource, Err: err}
	}
	defer closeFn()

	return catalog.Load(ctx, loader)
}

// init sets zerolog global defaults before main runs.
func init() {
	zerolog.TimeFieldFormat = time.RFC3339
}
