package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	fibercors "github.com/gofiber/fiber/v2/middleware/cors"

	"github.com/seu-repo/tradeinsight/pkg/config"
)

// Fallbacks used for any CORS field left empty in config. The API only
// exposes GET, POST and DELETE routes.
var (
	corsOrigins       = []string{"*"}
	corsMethods       = []string{fiber.MethodGet, fiber.MethodPost, fiber.MethodDelete, fiber.MethodOptions}
	corsHeaders       = []string{fiber.HeaderOrigin, fiber.HeaderContentType, fiber.HeaderAccept, fiber.HeaderAuthorization, fiber.HeaderXRequestID}
	corsExposeHeaders = []string{fiber.HeaderContentLength, fiber.HeaderContentDisposition}
)

const corsMaxAge = 86400

// NewCORS creates a CORS middleware from application config.
// Credentials are only honored for an explicit origin list.
func NewCORS(cfg config.CORSConfig) fiber.Handler {
	origins := joinOr(cfg.AllowedOrigins, corsOrigins)

	maxAge := corsMaxAge
	if cfg.MaxAge > 0 {
		maxAge = cfg.MaxAge
	}

	return fibercors.New(fibercors.Config{
		AllowOrigins:     origins,
		AllowMethods:     joinOr(cfg.AllowedMethods, corsMethods),
		AllowHeaders:     joinOr(cfg.AllowedHeaders, corsHeaders),
		ExposeHeaders:    joinOr(cfg.ExposeHeaders, corsExposeHeaders),
		AllowCredentials: cfg.Credentials && origins != "*",
		MaxAge:           maxAge,
	})
}

func joinOr(values, fallback []string) string {
	if len(values) == 0 {
		values = fallback
	}
	return strings.Join(values, ",")
}
