package http

import (
	"strings"

	"github.com/gofiber/fiber/v2"
)

// CachingMiddleware sets default Cache-Control headers on GET responses
// unless the handler already set one.
func CachingMiddleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		err := c.Next()

		if c.Method() != fiber.MethodGet {
			return err
		}
		if existing := c.GetRespHeader(fiber.HeaderCacheControl); existing != "" {
			return err
		}

		path := c.Path()
		var ttl string

		switch {
		case path == "/v1/health" || path == "/v1/ready":
			ttl = "public, max-age=10"
		case path == "/metrics" || path == "/ws":
			ttl = "no-cache"
		case path == "/v1/venues/current" || path == "/v1/venues/init":
			// Changes on every activation
			ttl = "no-cache"
		case path == "/v1/config" || path == "/v1/appconfig":
			ttl = "private, max-age=30"
		case strings.HasPrefix(path, "/v1/venues/") || strings.HasPrefix(path, "/v1/buildings/"):
			ttl = "public, max-age=600"
		case path == "/v1/venues":
			ttl = "public, max-age=300"
		case strings.HasPrefix(path, "/v1/"):
			ttl = "public, max-age=300"
		}

		if ttl != "" {
			c.Set(fiber.HeaderCacheControl, ttl)
		}
		return err
	}
}
