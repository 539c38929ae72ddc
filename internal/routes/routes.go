package routes

import (
	"errors"
	"log"

	sentryfiber "github.com/getsentry/sentry-go/fiber"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"gorm.io/gorm"

	"github.com/venividilaundry/veni-vidi-laundry/internal/config"
	"github.com/venividilaundry/veni-vidi-laundry/internal/handlers"
	"github.com/venividilaundry/veni-vidi-laundry/internal/middleware"
	"github.com/venividilaundry/veni-vidi-laundry/internal/models"
	"github.com/venividilaundry/veni-vidi-laundry/internal/postcode"
	"github.com/venividilaundry/veni-vidi-laundry/internal/pricing"
)

// NewApp builds the Fiber application with middleware and all routes wired.
func NewApp(db *gorm.DB, cfg *config.Config) (*fiber.App, error) {
	matcher, err := loadMatcher(db)
	if err != nil {
		return nil, err
	}

	app := fiber.New(fiber.Config{
		AppName:      "Veni Vidi Laundry API",
		ErrorHandler: errorHandler,
	})

	app.Use(recover.New())
	app.Use(logger.New())
	app.Use(cors.New())

	if cfg.SentryDSN != "" {
		app.Use(sentryfiber.New(sentryfiber.Options{Repanic: true}))
	}

	Register(app, db, cfg, matcher)
	return app, nil
}

// Register wires up all HTTP routes.
func Register(app *fiber.App, db *gorm.DB, cfg *config.Config, matcher *postcode.Matcher) {
	plans := pricing.DefaultPlanCatalog()

	authHandler := handlers.NewAuthHandler(db, cfg, matcher)
	orderHandler := handlers.NewOrderHandler(db)
	subscriptionHandler := handlers.NewSubscriptionHandler(db, plans)
	adminHandler := handlers.NewAdminHandler(db, plans)

	api := app.Group("/api")

	api.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "OK", "message": "Veni Vidi Laundry API is running"})
	})

	// Auth routes
	auth := api.Group("/auth")
	auth.Post("/register", authHandler.Register)
	auth.Post("/login", authHandler.Login)
	auth.Post("/check-postcode", authHandler.CheckPostcode)

	// Public catalogs
	api.Get("/orders/pricing", orderHandler.ListPricing)
	api.Get("/subscriptions/pricing", subscriptionHandler.ListPricing)

	// Protected routes
	protected := api.Group("", middleware.AuthRequired(cfg))

	protected.Post("/orders/quote", orderHandler.Quote)
	protected.Post("/orders", orderHandler.CreateOrder)
	protected.Get("/orders", orderHandler.ListOrders)
	protected.Get("/orders/:id", orderHandler.GetOrder)
	protected.Put("/orders/:id/status", orderHandler.UpdateStatus)

	protected.Post("/subscriptions", subscriptionHandler.CreateSubscription)
	protected.Get("/subscriptions", subscriptionHandler.ListSubscriptions)
	protected.Put("/subscriptions/:id/cancel", subscriptionHandler.CancelSubscription)

	// Admin routes
	admin := api.Group("/admin", middleware.AuthRequired(cfg), middleware.AdminRequired())
	admin.Get("/orders", adminHandler.ListAllOrders)
	admin.Put("/orders/:id/status", adminHandler.UpdateOrderStatus)
	admin.Get("/subscriptions", adminHandler.ListAllSubscriptions)
	admin.Get("/dashboard", adminHandler.DashboardStats)
	admin.Get("/customers", adminHandler.ListCustomers)
}

// loadMatcher reads the active service-area rules once; the matcher is
// read-only for the life of the process.
func loadMatcher(db *gorm.DB) (*postcode.Matcher, error) {
	var ruleRows []models.ServiceAreaRule
	if err := db.Where("active = ?", true).Find(&ruleRows).Error; err != nil {
		return nil, err
	}

	rules := make([]postcode.Rule, len(ruleRows))
	for i, row := range ruleRows {
		rules[i] = postcode.Rule{Prefix: row.PostcodePrefix, AreaName: row.AreaName}
	}

	return postcode.NewMatcher(rules), nil
}

// errorHandler maps expected fiber errors to their status and everything else
// to a logged 500.
func errorHandler(c *fiber.Ctx, err error) error {
	var fiberErr *fiber.Error
	if errors.As(err, &fiberErr) {
		return c.Status(fiberErr.Code).JSON(fiber.Map{"error": fiberErr.Message})
	}

	log.Printf("unhandled error on %s %s: %v", c.Method(), c.Path(), err)
	if hub := sentryfiber.GetHubFromContext(c); hub != nil {
		hub.CaptureException(err)
	}

	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal server error"})
}
