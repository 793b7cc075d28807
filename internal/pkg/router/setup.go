package router

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/quidpay/quidpay/internal/pkg/config"
)

type Router interface {
	InstallRouter(app *fiber.App)
}

// InstallRouter wires every route group onto the app. Configuration and the
// database handle come in from main; nothing below reads ambient state.
func InstallRouter(app *fiber.App, cfg *config.Config, db *gorm.DB) {
	setup(app, NewHttpRouter(cfg, db), NewApiRouter())
}

func setup(app *fiber.App, router ...Router) {
	for _, r := range router {
		r.InstallRouter(app)
	}
}
