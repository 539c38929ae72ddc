package main

import (
	"log"
	"time"

	"github.com/getsentry/sentry-go"

	"github.com/venividilaundry/veni-vidi-laundry/internal/config"
	"github.com/venividilaundry/veni-vidi-laundry/internal/database"
	"github.com/venividilaundry/veni-vidi-laundry/internal/routes"
)

func main() {
	cfg := config.Load()
	db := database.Connect(cfg.DatabaseURL)

	if cfg.SentryDSN != "" {
		if err := sentry.Init(sentry.ClientOptions{
			Dsn:              cfg.SentryDSN,
			TracesSampleRate: 0.1,
		}); err != nil {
			log.Printf("sentry init failed: %v", err)
		} else {
			defer sentry.Flush(2 * time.Second)
		}
	}

	app, err := routes.NewApp(db, cfg)
	if err != nil {
		log.Fatalf("failed to build app: %v", err)
	}

	log.Printf("Starting server on :%s", cfg.AppPort)
	if err := app.Listen(":" + cfg.AppPort); err != nil {
		log.Fatalf("fiber.Listen error: %v", err)
	}
}
