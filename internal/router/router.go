// Package router defines how HTTP routes are registered for the API.
package router

import (
	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"

	"github.com/honeyflow/hive-api/internal/auth"
	"github.com/honeyflow/hive-api/internal/config"
	"github.com/honeyflow/hive-api/internal/handler"
	"github.com/honeyflow/hive-api/internal/middleware"
)

// Deps collects everything route registration needs. Rdb may be nil, in
// which case caching and rate limiting degrade to pass-throughs.
type Deps struct {
	Auth      *handler.AuthHandler
	Hives     *handler.HiveHandler
	External  *handler.ExternalHandler
	Extractor *auth.Extractor
	Rdb       *redis.Client
	CacheCfg  config.CacheConfig
	RateCfg   config.RateLimitConfig
}

// RegisterRoutes wires up the full HTTP surface. Identity resolution runs
// on every request but never rejects by itself: the hive handlers decide
// 401 versus 400 themselves so an unparseable id is reported before auth.
// /v1/me and the external proxies are hard-gated instead.
func RegisterRoutes(e *echo.Echo, d Deps) {
	e.Use(middleware.ResolveIdentity(d.Extractor))
	e.Use(middleware.NewTokenBucket(d.RateCfg, d.Rdb))

	e.GET("/healthz", handler.Health)

	v1 := e.Group("/v1")

	// Authentication endpoints; no session required.
	ag := v1.Group("/auth")
	ag.POST("/register", d.Auth.Register)
	ag.POST("/login", d.Auth.Login)

	v1.GET("/me", d.Auth.Me, middleware.RequireIdentity())

	// Hive collection and single-resource endpoints. Authorization is
	// enforced per-operation inside the handlers (ownership or ADMIN).
	v1.GET("/hives", d.Hives.List)
	v1.POST("/hives", d.Hives.Create)
	v1.GET("/hives/:id", d.Hives.Get)
	v1.PUT("/hives/:id", d.Hives.Update)
	v1.DELETE("/hives/:id", d.Hives.Delete)

	// External lookup proxies: authenticated, and cached since upstream
	// responses are identical for every caller.
	xg := v1.Group("/external", middleware.RequireIdentity(),
		middleware.NewRedisCache(d.CacheCfg, d.Rdb))
	xg.GET("/geocode", d.External.Geocode)
	xg.GET("/weather", d.External.Weather)
}
