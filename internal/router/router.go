package router

import (
	"time"

	"github.com/Mooujj/quiz-hub/internal/config"
	"github.com/Mooujj/quiz-hub/internal/handler"
	"github.com/Mooujj/quiz-hub/internal/middleware"
	"github.com/Mooujj/quiz-hub/internal/response"
	"github.com/Mooujj/quiz-hub/internal/service"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// Handlers groups all handler instances for route setup.
type Handlers struct {
	Catalog *handler.CatalogHandler
	Session *handler.SessionHandler
	WS      *handler.WSHandler
	System  *handler.SystemHandler
}

// Deps are the shared services the middlewares need.
type Deps struct {
	Tokens       *service.TokenService
	Catalog      middleware.CatalogChecker
	StartLimiter middleware.Limiter
	Log          zerolog.Logger
}

// SetupRouter configures all Gin route groups with appropriate middlewares.
func SetupRouter(deps Deps, handlers *Handlers, cfg *config.Config) *gin.Engine {
	gin.SetMode(cfg.GinMode)
	router := gin.New()
	router.Use(gin.Recovery())
	if cfg.GinMode != gin.TestMode {
		router.Use(gin.Logger())
	}

	// ─── CORS ──────────────────────────────────────────────────────────
	// If AllowedOrigins is set in config, restrict to that list;
	// otherwise allow all (*) so dev works without extra config.
	corsConfig := cors.DefaultConfig()
	if len(cfg.AllowedOrigins) > 0 {
		corsConfig.AllowOrigins = cfg.AllowedOrigins
	} else {
		corsConfig.AllowAllOrigins = true
	}
	corsConfig.AllowMethods = []string{"GET", "POST", "DELETE", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "Authorization", "X-Request-ID"}
	corsConfig.ExposeHeaders = []string{"X-Request-ID"}
	corsConfig.MaxAge = 12 * time.Hour
	router.Use(cors.New(corsConfig))

	// Apply request ID middleware globally so every response includes metadata.
	router.Use(response.RequestIDMiddleware())
	router.Use(middleware.Brotli(middleware.DefaultBrotliMinLength))

	router.GET("/health", handlers.System.Health)

	requireCatalog := middleware.RequireCatalog(deps.Catalog)

	// ─── 1. Catalog Group (Public) ─────────────────────────────────────
	quizzes := router.Group("/api/v1/quizzes")
	quizzes.Use(requireCatalog)
	{
		quizzes.GET("", middleware.CacheControl(60), handlers.Catalog.ListQuizzes)
		quizzes.POST("/:quiz_id/sessions",
			middleware.RateLimit(deps.StartLimiter, deps.Log),
			middleware.OptionalSession(deps.Tokens),
			middleware.NoStore(),
			handlers.Catalog.StartSession,
		)
	}

	// ─── 2. Session Group (Session Token) ──────────────────────────────
	session := router.Group("/api/v1/session")
	session.Use(requireCatalog, middleware.RequireSession(deps.Tokens), middleware.NoStore())
	{
		session.GET("", handlers.Session.GetSession)
		session.POST("/events", handlers.Session.PostEvent)
		session.GET("/results", handlers.Session.GetResults)
		session.POST("/retry", handlers.Session.RetryQuiz)
		session.DELETE("", handlers.Session.EndSession)
	}

	// ─── 3. WebSocket Group (Token Query Param) ────────────────────────
	ws := router.Group("/ws/v1")
	ws.Use(requireCatalog, middleware.RequireSession(deps.Tokens))
	{
		ws.GET("/session", handlers.WS.SessionStream)
	}

	return router
}
