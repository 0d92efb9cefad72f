package router

import (
	"github.com/gofiber/fiber/v3"
	recoverer "github.com/gofiber/fiber/v3/middleware/recover"

	"github.com/byunchangill/youtube-hot-finder/internal/handler"
	"github.com/byunchangill/youtube-hot-finder/internal/middleware"
)

// Handlers holds all handler instances needed by the router.
type Handlers struct {
	Search  *handler.SearchHandler
	Video   *handler.VideoHandler
	Channel *handler.ChannelHandler
	Key     *handler.KeyHandler
	Health  *handler.HealthHandler
}

// Setup configures the middleware stack and all API routes on the given Fiber app.
func Setup(app *fiber.App, h *Handlers, corsOrigins string) {
	// Middleware stack (order matters)
	app.Use(recoverer.New())
	app.Use(middleware.NewRequestLogger())
	app.Use(middleware.NewCORS(corsOrigins))
	app.Use(handler.MetricsMiddleware())

	// Probes and metrics (before API group)
	app.Get("/health/live", h.Health.Live)
	app.Get("/health/ready", h.Health.Ready)
	app.Get("/metrics", handler.MetricsHandler())

	searchLimit := middleware.NewSearchRateLimiter().Handler()
	detailLimit := middleware.NewDetailRateLimiter().Handler()
	adminLimit := middleware.NewAdminRateLimiter().Handler()

	api := app.Group("/api")

	// Search routes (quota-heavy, tightest limit)
	api.Post("/search/channel", h.Search.SearchChannel, searchLimit)
	api.Post("/search/keyword", h.Search.SearchKeyword, searchLimit)
	api.Post("/suggestions", h.Search.Suggestions, searchLimit)
	api.Get("/stats", h.Search.Stats, detailLimit)
	api.Get("/validate-key", h.Search.ValidateKey, adminLimit)

	// Video routes
	api.Get("/trending", h.Video.Trending, detailLimit)
	api.Post("/popular", h.Video.Popular, searchLimit)
	api.Get("/videos/:videoId", h.Video.GetByID, detailLimit)

	// Channel routes
	api.Get("/channels/:channelId", h.Channel.GetByID, detailLimit)

	// Credential pool admin routes
	keys := api.Group("/keys", adminLimit)
	keys.Post("/", h.Key.Create)
	keys.Get("/", h.Key.List)
	keys.Get("/usage", h.Key.Usage)
	keys.Get("/status", h.Key.Status)
	keys.Post("/reset", h.Key.Reset)
	keys.Delete("/:id", h.Key.Delete)
}
