package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"resumegen/internal/credentials"
	"resumegen/internal/generateddocs"
	"resumegen/internal/generation"
	"resumegen/internal/shared/config"
	"resumegen/internal/shared/metrics"
	"resumegen/internal/shared/server/middleware"
	"resumegen/internal/shared/server/respond"
)

// RouterDeps are the handlers and shared services the router mounts.
type RouterDeps struct {
	Config     config.Config
	Metrics    *metrics.Recorder
	Verifier   *credentials.Verifier
	Generation *generation.Handler
	// History is nil when no object store is configured.
	History *generateddocs.Handler
}

// NewRouter constructs the Gin engine with middleware and routes registered.
func NewRouter(deps RouterDeps) *gin.Engine {
	if deps.Config.IsDevLike() {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.HandleMethodNotAllowed = true

	r.Use(
		middleware.RequestID(),
		middleware.Logging(),
		middleware.Recovery(),
		middleware.Metrics(deps.Metrics),
		middleware.CORS(deps.Config.CORSAllowOrigin),
		middleware.RateLimit(rateLimitConfig(deps.Config)),
	)
	r.NoRoute(func(c *gin.Context) {
		respond.Error(c, http.StatusNotFound, "not_found", "Not found", nil)
	})
	r.NoMethod(func(c *gin.Context) {
		respond.Error(c, http.StatusMethodNotAllowed, "method_not_allowed", "Method not allowed", nil)
	})

	r.GET("/metrics", deps.Metrics.Handler())

	api := r.Group("/api/v1")
	api.GET("/health", func(c *gin.Context) {
		respond.OK(c, gin.H{"ok": true})
	})

	if deps.Generation != nil {
		deps.Generation.RegisterRoutes(r)
	}
	if deps.History != nil && deps.Verifier != nil {
		history := api.Group("", credentials.RequireMasterPassword(deps.Verifier))
		deps.History.RegisterRoutes(history)
	}

	return r
}

func rateLimitConfig(cfg config.Config) middleware.RateLimitConfig {
	rules := map[string]middleware.RateLimitRule{}
	if cfg.RateLimitRPS > 0 && cfg.RateLimitBurst > 0 {
		rules[middleware.GenerateRateLimitGroup] = middleware.RateLimitRule{
			Rate:  cfg.RateLimitRPS,
			Burst: cfg.RateLimitBurst,
		}
	}
	return middleware.RateLimitConfig{
		Rules: rules,
		GroupFor: func(c *gin.Context) string {
			if c.Request.Method == http.MethodPost && isGenerateRoute(c.FullPath()) {
				return middleware.GenerateRateLimitGroup
			}
			return ""
		},
	}
}

func isGenerateRoute(path string) bool {
	switch path {
	case "/api/generateResume", "/api/generateCoverLetter",
		"/api/v1/generate/resume", "/api/v1/generate/cover-letter":
		return true
	default:
		return false
	}
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
