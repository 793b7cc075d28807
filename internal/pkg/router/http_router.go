package router

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/quidpay/quidpay/app/controllers"
	"github.com/quidpay/quidpay/app/repository"
	"github.com/quidpay/quidpay/internal/pkg/config"
	"github.com/quidpay/quidpay/internal/pkg/middleware"
	"github.com/quidpay/quidpay/internal/pkg/payments"
	"github.com/quidpay/quidpay/internal/pkg/token"
)

type HttpRouter struct {
	cfg *config.Config
	db  *gorm.DB
}

func NewHttpRouter(cfg *config.Config, db *gorm.DB) *HttpRouter {
	return &HttpRouter{cfg: cfg, db: db}
}

func (h *HttpRouter) InstallRouter(app *fiber.App) {
	repos := repository.NewFactory(h.db).GetRepositories()
	tokens := token.NewManager(h.cfg.Auth)

	authController := controllers.NewAuthController(repos.User, tokens)
	productController := controllers.NewProductController(repos.Product)
	transactionController := controllers.NewTransactionController(repos.Transaction)

	paymentService := payments.NewServiceFromDB(h.db, h.cfg.Stripe)
	paymentController := controllers.NewPaymentController(paymentService)

	requireAuth := middleware.RequireAuth(repos.User, tokens)

	app.Get("/", controllers.HandleWelcome)

	// Authentication
	app.Post("/register", authController.HandleRegister)
	app.Post("/login", authController.HandleLogin)
	app.Get("/users/me", requireAuth, authController.HandleMe)

	// Catalog
	app.Post("/products", productController.HandleCreate)
	app.Get("/products", productController.HandleList)
	app.Get("/products/:id", productController.HandleGet)

	// Transactions
	app.Post("/transactions", transactionController.HandleCreate)
	app.Get("/transactions/:user_id", transactionController.HandleList)

	// Payments: intent creation is user-facing, the webhook authenticates
	// itself through its signature
	app.Post("/payments/initiate", requireAuth, paymentController.HandleInitiate)
	app.Post("/webhooks/stripe", paymentController.HandleStripeWebhook)
}
