package routes

import (
	"strconv"
	"time"

	"github.com/fluswork/flus-backend/internal/config"
	"github.com/fluswork/flus-backend/internal/features"
	"github.com/fluswork/flus-backend/internal/handlers"
	"github.com/fluswork/flus-backend/internal/metrics"
	"github.com/fluswork/flus-backend/internal/middleware"
	"github.com/fluswork/flus-backend/internal/realtime"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"gorm.io/gorm"
)

type Deps struct {
	Auth    *handlers.AuthHandler
	Health  *handlers.HealthHandler
	Legal   *handlers.LegalHandler
	Meta    *handlers.MetaHandler
	Address *handlers.AddressHandler

	Sessions  middleware.SessionResolver
	Hub       *realtime.Hub
	Collector *metrics.Collector
	Registry  *prometheus.Registry
	Features  []features.Feature
}

func Setup(app *fiber.App, cfg *config.Config, db *gorm.DB, deps Deps) {
	api := app.Group("/api")

	// General API rate limiter: 60 req/min per IP
	api.Use(limiter.New(limiter.Config{
		Max:               60,
		Expiration:        1 * time.Minute,
		LimiterMiddleware: limiter.SlidingWindow{},
		KeyGenerator:      func(c *fiber.Ctx) string { return c.IP() },
	}))

	if deps.Collector != nil {
		api.Use(func(c *fiber.Ctx) error {
			err := c.Next()
			deps.Collector.RecordHTTPStatus(strconv.Itoa(c.Response().StatusCode()))
			return err
		})
	}

	// Public surface
	api.Get("/health", deps.Health.Check)
	api.Get("/meta", deps.Meta.Get)
	api.Get("/legal/privacy", deps.Legal.PrivacyPolicy)
	api.Get("/legal/terms", deps.Legal.TermsOfService)
	api.Get("/addresses/search", deps.Address.Search)

	// Auth, with a stricter limit: 10 req/min per IP
	auth := api.Group("/auth")
	auth.Use(limiter.New(limiter.Config{
		Max:               10,
		Expiration:        1 * time.Minute,
		LimiterMiddleware: limiter.SlidingWindow{},
		KeyGenerator:      func(c *fiber.Ctx) string { return c.IP() },
	}))
	auth.Post("/register", deps.Auth.Register)
	auth.Post("/login", deps.Auth.Login)

	sessionProtected := middleware.SessionProtected(cfg, deps.Sessions)

	api.Post("/auth/logout", sessionProtected, deps.Auth.Logout)
	api.Get("/auth/me", sessionProtected, deps.Auth.Me)

	// Realtime push channel
	app.Use("/ws", sessionProtected, realtime.Upgrade)
	app.Get("/ws", sessionProtected, realtime.Handler(deps.Hub))

	// Prometheus scrape endpoint, outside the /api limiter
	if deps.Registry != nil {
		app.Get("/metrics", adaptor.HTTPHandler(promhttp.HandlerFor(deps.Registry, promhttp.HandlerOpts{})))
	}

	// Uploaded photos are served statically
	app.Static("/uploads", cfg.UploadDir)

	admin := api.Group("/admin", sessionProtected, middleware.AdminRequired(db, cfg))

	protected := api.Group("/", sessionProtected)
	for _, f := range deps.Features {
		f.RegisterRoutes(protected, db, cfg)
		if af, ok := f.(features.AdminFeature); ok {
			af.RegisterAdminRoutes(admin, db, cfg)
		}
	}
}
