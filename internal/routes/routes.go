package routes

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/example/ayuhealth/internal/catalog"
	"github.com/example/ayuhealth/internal/config"
	"github.com/example/ayuhealth/internal/handlers"
	"github.com/example/ayuhealth/internal/middleware"
	"github.com/example/ayuhealth/internal/services"
)

// Register wires up all HTTP routes.
func Register(app *fiber.App, db *gorm.DB, cfg *config.Config) {
	mailer := services.NewMailer(cfg.SMTPHost, cfg.SMTPPort, cfg.EmailUser, cfg.EmailPass)
	whatsapp := services.NewWhatsAppService(cfg.TwilioAccountSID, cfg.TwilioAuthToken, cfg.WhatsAppFrom, cfg.WhatsAppTo)
	captcha := services.NewCaptchaService(cfg.RecaptchaSecret, cfg.DisableCaptcha)
	notifier := services.NewNotifier(db, mailer, whatsapp, cfg.ShopName, cfg.ShopWebsite)
	orderService := services.NewOrderService(db, notifier, cfg.OwnerEmail, cfg.OrderWindow)

	authHandler := handlers.NewAuthHandler(db, cfg, mailer, captcha)
	productHandler := handlers.NewProductHandler(catalog.Load())
	reviewHandler := handlers.NewReviewHandler(db)
	orderHandler := handlers.NewOrderHandler(db, orderService)
	adminHandler := handlers.NewAdminHandler(db, orderService)

	// Email links land outside the /api prefix.
	app.Get("/verify_email/:token", authHandler.VerifyEmail)
	app.Post("/reset-password/:token", authHandler.ResetPassword)

	api := app.Group("/api")

	// Auth routes
	auth := api.Group("/auth")
	auth.Post("/signup", authHandler.Signup)
	auth.Post("/login", authHandler.Login)
	auth.Post("/forgot-password", authHandler.ForgotPassword)
	auth.Post("/admin/login", authHandler.AdminLogin)

	// Catalog
	products := api.Group("/products")
	products.Get("/", productHandler.ListProducts)
	products.Get("/:id", productHandler.GetProduct)

	// Reviews: reads are public, writes need a customer session.
	api.Get("/reviews/:productId", reviewHandler.ListReviews)
	api.Post("/reviews/:productId", middleware.CustomerAuth(cfg), reviewHandler.CreateReview)

	// Admin routes: one gate for everything, transitions included.
	admin := api.Group("/admin", middleware.AdminAuth(cfg))
	admin.Get("/dashboard", adminHandler.DashboardStats)
	admin.Get("/orders", adminHandler.ListOrders)
	admin.Post("/orders/:id/confirm", adminHandler.ConfirmOrder)
	admin.Post("/orders/:id/cancel", adminHandler.CancelOrder)
	admin.Post("/orders/:id/complete", adminHandler.CompleteOrder)
	admin.Post("/orders/:id/pending", adminHandler.PendingOrder)
	admin.Get("/notifications", adminHandler.ListNotifications)
	admin.Post("/notifications/:id/read", adminHandler.MarkNotificationRead)

	// Customer routes. The bare-prefix group attaches its middleware to the
	// whole /api path, so it has to come last.
	protected := api.Group("", middleware.CustomerAuth(cfg))
	protected.Post("/orders", orderHandler.CreateOrder)
	protected.Get("/orders", orderHandler.ListOrders)
}
