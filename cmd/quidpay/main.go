package main

import (
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/monitor"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/quidpay/quidpay/internal/pkg/cache"
	"github.com/quidpay/quidpay/internal/pkg/config"
	"github.com/quidpay/quidpay/internal/pkg/database"
	"github.com/quidpay/quidpay/internal/pkg/env"
	"github.com/quidpay/quidpay/internal/pkg/metrics/counter"
	"github.com/quidpay/quidpay/internal/pkg/router"
)

const counterFlushInterval = 30 * time.Second

func main() {
	app, cfg := NewApplication()

	if cache.Enabled() {
		go flushCounters()
	}

	err := app.Listen(fmt.Sprintf("%s:%s", cfg.App.Host, cfg.App.Port))
	log.Fatal(err)
}

// flushCounters periodically drains pending Redis view counters to the database.
func flushCounters() {
	ticker := time.NewTicker(counterFlushInterval)
	defer ticker.Stop()
	for range ticker.C {
		if err := counter.FlushAll(); err != nil {
			log.Printf("counter flush error: %v", err)
		}
	}
}

func NewApplication() (*fiber.App, *config.Config) {
	env.SetupEnvFile()

	cfg, err := config.Load()
	if err != nil {
		var misconfig *config.MisconfigurationError
		if errors.As(err, &misconfig) {
			// Run degraded rather than refusing to start: the components
			// holding an empty credential fail closed per request.
			log.Printf("WARNING: %v", misconfig)
		} else {
			log.Fatalf("failed to load configuration: %v", err)
		}
	}

	database.SetupDatabase(cfg.Database)
	cache.SetupCache(cfg.Cache)

	app := fiber.New(fiber.Config{
		AppName: "Quidpay",
	})
	app.Use(recover.New(), logger.New())
	app.Get("/metrics", monitor.New())

	router.InstallRouter(app, cfg, database.GetDB())

	return app, cfg
}
