package http

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/gofiber/fiber/v2/middleware/timeout"
	"github.com/gofiber/websocket/v2"
	"github.com/samirrijal/venuehub/internal/pkg/metrics"
)

// SetupRoutes registers all REST, GraphQL, and WebSocket routes.
func SetupRoutes(app *fiber.App, deps *Dependencies) {
	// Prometheus metrics
	app.Use(metrics.Middleware())
	app.Get("/metrics", metrics.Handler())

	app.Use(compress.New(compress.Config{
		Level: compress.LevelBestSpeed,
	}))

	app.Use(requestid.New())
	app.Use(RequestIDLogMiddleware())
	app.Use(AccessLogMiddleware())

	// 120 requests per minute per IP
	app.Use(limiter.New(limiter.Config{
		Max:        120,
		Expiration: 1 * time.Minute,
		KeyGenerator: func(c *fiber.Ctx) string {
			return c.IP()
		},
		LimitReached: func(c *fiber.Ctx) error {
			return c.Status(429).JSON(fiber.Map{
				"error":   "rate limit exceeded",
				"message": "too many requests, please try again later",
			})
		},
	}))

	// Security headers + API version
	app.Use(func(c *fiber.Ctx) error {
		c.Set("X-Content-Type-Options", "nosniff")
		c.Set("X-Frame-Options", "DENY")
		c.Set("Referrer-Policy", "strict-origin-when-cross-origin")
		c.Set("X-API-Version", "1.0.0")
		return c.Next()
	})

	app.Use(ETagMiddleware())
	app.Use(CachingMiddleware())

	app.Use(DeprecationMiddleware([]DeprecatedRoute{
		{Path: "/v1/appconfig", SunsetDate: time.Date(2027, 1, 1, 0, 0, 0, 0, time.UTC), Alternative: "/v1/config"},
	}))

	// Health & readiness (no timeout)
	app.Get("/v1/health", HealthHandler(deps))
	app.Get("/v1/ready", ReadyHandler(deps))

	// REST API v1 with a 15s per-request timeout. Fixed paths come before /:id.
	v1 := app.Group("/v1")
	v1.Get("/venues", timeout.NewWithContext(ListVenuesHandler(deps), 15*time.Second))
	v1.Get("/venues/current", CurrentVenueHandler(deps))
	v1.Get("/venues/init", InitVenueHandler(deps))
	v1.Get("/venues/:id", timeout.NewWithContext(GetVenueHandler(deps), 15*time.Second))
	v1.Post("/venues/:id/activate", timeout.NewWithContext(ActivateVenueHandler(deps), 15*time.Second))
	v1.Get("/buildings/:id", timeout.NewWithContext(GetBuildingHandler(deps), 15*time.Second))
	v1.Get("/config", AppConfigHandler(deps))
	v1.Post("/config/reload", timeout.NewWithContext(ReloadAppConfigHandler(deps), 15*time.Second))

	// Old singular path kept until the sunset date.
	v1.Get("/appconfig", AppConfigHandler(deps))

	app.Post("/graphql", GraphQLHandler(deps))

	SetupDocs(app)

	app.Use("/ws", func(c *fiber.Ctx) error {
		if websocket.IsWebSocketUpgrade(c) {
			return c.Next()
		}
		return fiber.ErrUpgradeRequired
	})
	app.Get("/ws", websocket.New(WebSocketHandler(deps)))
}
