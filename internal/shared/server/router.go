package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	googleauth "automation-coach/internal/auth"
	"automation-coach/internal/catalog"
	"automation-coach/internal/comments"
	"automation-coach/internal/shared/config"
	"automation-coach/internal/shared/metrics"
	"automation-coach/internal/shared/server/middleware"
	"automation-coach/internal/shared/server/respond"
	"automation-coach/internal/shared/telemetry"
	"automation-coach/internal/tasks"
)

// RouterDeps holds the handlers mounted by NewRouter. Nil handlers are skipped.
type RouterDeps struct {
	Config         config.Config
	CatalogHandler *catalog.Handler
	TaskHandler    *tasks.Handler
	CommentHandler *comments.Handler
	GoogleAuth     *googleauth.GoogleService
	// Ready reports whether backing stores are reachable. Nil means always ready.
	Ready func(*gin.Context) error
}

// NewRouter constructs the Gin engine with middleware and routes registered.
func NewRouter(deps RouterDeps) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()

	rules, err := middleware.ParseRateLimitRules(deps.Config.RateLimitRules)
	if err != nil {
		telemetry.Warn("router.rate_limit_rules_invalid", map[string]any{"error": err.Error()})
		rules = middleware.DefaultRateLimitRules()
	}

	r.Use(
		middleware.RequestID(),
		middleware.Logging(),
		middleware.Recovery(),
		middleware.CORS(deps.Config.CORSAllowOrigin),
		middleware.Auth(),
	)

	r.GET("/metrics", metrics.Handler())

	api := r.Group("/api/v1")
	api.GET("/health", func(c *gin.Context) {
		respond.JSON(c, http.StatusOK, gin.H{"ok": true})
	})
	api.GET("/ready", func(c *gin.Context) {
		if deps.Ready != nil {
			if err := deps.Ready(c); err != nil {
				respond.Error(c, http.StatusServiceUnavailable, "not_ready", err.Error(), nil)
				return
			}
		}
		respond.JSON(c, http.StatusOK, gin.H{"ok": true})
	})

	api.Use(middleware.RateLimit(middleware.RateLimitConfig{
		Rules:    rules,
		GroupFor: middleware.GroupForRoute,
	}))

	if deps.GoogleAuth != nil {
		deps.GoogleAuth.RegisterRoutes(api)
	}
	registerMeRoutes(api)
	if deps.CatalogHandler != nil {
		deps.CatalogHandler.RegisterRoutes(api)
	}
	if deps.TaskHandler != nil {
		deps.TaskHandler.RegisterRoutes(api)
	}

	admin := api.Group("/admin", middleware.RequireCoach())
	if deps.TaskHandler != nil {
		deps.TaskHandler.RegisterCoachRoutes(admin)
	}
	if deps.CommentHandler != nil {
		deps.CommentHandler.RegisterRoutes(admin)
	}

	return r
}

// Addr normalizes the listen address.
func Addr(port string) string {
	if port == "" {
		return ":8080"
	}
	if port[0] == ':' {
		return port
	}
	return ":" + port
}
