package main

import (
	"log"
	"os"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	fiberLogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/joho/godotenv"

	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/memorabox/memorabox-backend/internal/config"
	"github.com/memorabox/memorabox-backend/internal/handler"
	"github.com/memorabox/memorabox-backend/internal/middleware"
	"github.com/memorabox/memorabox-backend/internal/realtime"
	"github.com/memorabox/memorabox-backend/internal/repository"
	"github.com/memorabox/memorabox-backend/internal/service"
	"github.com/memorabox/memorabox-backend/pkg/database"
	"github.com/memorabox/memorabox-backend/pkg/email"
	"github.com/memorabox/memorabox-backend/pkg/logger"
	"github.com/memorabox/memorabox-backend/pkg/payment"
	"github.com/memorabox/memorabox-backend/pkg/qrcode"
	"github.com/memorabox/memorabox-backend/pkg/storage"
	"github.com/memorabox/memorabox-backend/pkg/utils"
)

func main() {
	// Load .env
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	// Logger
	zapLogger := logger.New()
	defer zapLogger.Sync()

	// Config'i yükle
	cfg := config.LoadConfig()

	// Initialize database (migrations dahil)
	db := database.NewDatabase()

	// Repositories
	userRepo := repository.NewUserRepository(db)
	eventRepo := repository.NewEventRepository(db)
	mediaRepo := repository.NewMediaRepository(db)
	messageRepo := repository.NewMessageRepository(db)
	giftRepo := repository.NewGiftRepository(db)

	// Storage service
	r2Storage, err := storage.NewCloudflareStorage(cfg)
	if err != nil {
		log.Fatal("Failed to initialize R2 storage:", err)
	}

	// Email service
	emailService := email.NewEmailService()

	// Canlı akış hub'ı
	hub := realtime.NewHub()
	go hub.Run()
	defer hub.Stop()

	// Stripe service
	stripeService := payment.NewStripeService(
		cfg.Stripe.SecretKey,
		cfg.Stripe.SuccessURL,
		cfg.Stripe.CancelURL,
	)

	// QR service
	qrService := qrcode.NewQRService(cfg.FrontendURL + "/e/")

	// Services
	authService := service.NewAuthService(userRepo, emailService)
	userService := service.NewUserService(userRepo)
	eventService := service.NewEventService(eventRepo, mediaRepo, r2Storage)
	uploadService := service.NewUploadService(eventRepo, mediaRepo, messageRepo, r2Storage, hub)
	feedService := service.NewFeedService(eventRepo, mediaRepo, messageRepo)
	giftService := service.NewGiftService(giftRepo, eventRepo, stripeService)

	// Validator'ı önce tanımla
	validator := utils.NewValidator()

	// Handlers
	authHandler := handler.NewAuthHandler(authService, validator)
	userHandler := handler.NewUserHandler(userService, validator)
	eventHandler := handler.NewEventHandler(eventService, qrService, validator)
	guestHandler := handler.NewGuestHandler(uploadService, eventService, validator)
	mediaHandler := handler.NewMediaHandler(uploadService)
	feedHandler := handler.NewFeedHandler(feedService, hub)
	giftHandler := handler.NewGiftHandler(giftService, validator)

	// Router
	app := fiber.New(fiber.Config{
		BodyLimit: 110 * 1024 * 1024, // Video yüklemeleri için
	})

	// Global middleware'ler önce tanımlanmalı. Ödeme callback'i kendi
	// permissive CORS'unu kullanır, global konfigürasyon onu atlar.
	app.Use(cors.New(cors.Config{
		Next: func(c *fiber.Ctx) bool {
			return strings.HasPrefix(c.Path(), "/api/payments")
		},
		AllowOrigins:     "https://memorabox.co, https://www.memorabox.co, http://localhost:5173",
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization",
		AllowMethods:     "GET, POST, PUT, PATCH, DELETE",
		AllowCredentials: true,
	}))
	app.Use(fiberLogger.New())
	app.Use(limiter.New(limiter.Config{
		Max:        20,
		Expiration: 1 * time.Minute,
		KeyGenerator: func(c *fiber.Ctx) string {
			return c.IP()
		},
	}))

	api := app.Group("/api")

	// Public routes
	auth := api.Group("/auth")
	auth.Post("/register", authHandler.Register)
	auth.Post("/login", authHandler.Login)
	auth.Post("/forgot-password", authHandler.ForgotPassword)
	auth.Post("/reset-password", authHandler.ResetPassword)

	// Misafir yüzeyi (paylaşım kodu ile, auth yok)
	guest := api.Group("/guest/events/:url")
	guest.Get("/", guestHandler.GetEvent)
	guest.Post("/media", guestHandler.UploadMedia)
	guest.Post("/messages", guestHandler.CreateMessage)
	guest.Get("/feed", feedHandler.GetSnapshot)
	guest.Use("/feed/live", feedHandler.UpgradeRequired)
	guest.Get("/feed/live", feedHandler.LiveFeed())
	guest.Post("/gifts/checkout", giftHandler.CreateCheckout)

	// Ödeme doğrulama callback'i - dış sağlayıcı çağırır, CORS permissive
	payments := api.Group("/payments", cors.New(cors.Config{
		AllowOrigins: "*",
		AllowHeaders: "Origin, Content-Type, Accept",
		AllowMethods: "POST, OPTIONS",
	}))
	payments.Post("/verify", giftHandler.VerifyPayment)

	// Protected routes
	api.Use(middleware.AuthMiddleware())
	{
		user := api.Group("/user")
		user.Get("/profile", userHandler.GetMyProfile)
		user.Put("/profile", userHandler.UpdateProfile)
		user.Post("/change-password", userHandler.ChangePassword)

		events := api.Group("/events")
		events.Post("/", eventHandler.CreateEvent)
		events.Get("/", eventHandler.GetUserEvents)
		events.Get("/:id", eventHandler.GetEvent)
		events.Put("/:id", eventHandler.UpdateEvent)
		events.Patch("/:id/settings", eventHandler.UpdateSettings)
		events.Delete("/:id", eventHandler.DeleteEvent)
		events.Get("/:id/verify-deleted", eventHandler.VerifyDeleted)
		events.Get("/:id/qr", eventHandler.GetEventQR)
		events.Get("/:id/media", mediaHandler.GetEventMedia)
		events.Get("/:id/messages", mediaHandler.GetEventMessages)
		events.Get("/:id/gifts", giftHandler.GetEventGifts)

		// Moderasyon route'ları
		api.Delete("/media/:id", mediaHandler.DeleteMedia)
		api.Delete("/messages/:id", mediaHandler.DeleteMessage)
	}

	// Start server
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	log.Fatal(app.Listen(":" + port))
}
