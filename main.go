package main

import (
	"context"
	"ecommerce/config"
	cartController "ecommerce/controllers/cart"
	categoryController "ecommerce/controllers/category"
	orderController "ecommerce/controllers/order"
	productController "ecommerce/controllers/product"
	reviewController "ecommerce/controllers/review"
	userController "ecommerce/controllers/user"
	"ecommerce/database"
	applogger "ecommerce/logger"
	"ecommerce/metrics"
	"ecommerce/middleware"
	"ecommerce/routers/cartRoutes"
	"ecommerce/routers/categoryRoutes"
	"ecommerce/routers/orderRoutes"
	"ecommerce/routers/productRoutes"
	"ecommerce/routers/reviewRoutes"
	"ecommerce/routers/userRoutes"
	cartService "ecommerce/services/cart"
	categoryService "ecommerce/services/category"
	orderService "ecommerce/services/order"
	productService "ecommerce/services/product"
	reviewService "ecommerce/services/review"
	userService "ecommerce/services/user"
	"ecommerce/utils"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func main() {
	cfg := config.LoadConfig()
	log := applogger.New("ecommerce", cfg.LogLevel, cfg.LogFormat)
	defer log.Sync()

	db := database.ConnectDb(cfg, log)
	m := metrics.New()

	app := setupApp(cfg, db, log, m)

	scheduler, err := utils.InitializeRatingScheduler(db, log, cfg.RatingReconcileSpec)
	if err != nil {
		log.Fatal("Invalid RATING_RECONCILE_SPEC", zap.Error(err))
	}

	go func() {
		log.Info("Server is running", zap.String("port", cfg.Port), zap.String("env", cfg.AppEnv))
		if err := app.Listen(":" + cfg.Port); err != nil {
			log.Fatal("Server stopped", zap.Error(err))
		}
	}()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	<-ctx.Done()

	log.Info("Shutting down")
	if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
		log.Error("Server shutdown failed", zap.Error(err))
	}
	scheduler.Stop()
	if sqlDB, err := db.DB(); err == nil {
		_ = sqlDB.Close()
	}
}

// setupApp builds the Fiber app with its middleware chain and every route table.
func setupApp(cfg *config.Config, db *gorm.DB, log *zap.Logger, m *metrics.Metrics) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:      "ecommerce",
		ErrorHandler: middleware.ErrorHandler(log),
	})

	app.Use(recover.New())
	app.Use(requestid.New(requestid.Config{Generator: uuid.NewString}))
	app.Use(cors.New(cors.Config{
		AllowOrigins: cfg.CORSOrigins,
		AllowMethods: "GET,POST,PUT,DELETE",
		AllowHeaders: "Content-Type,Authorization",
	}))
	app.Use(logger.New(logger.Config{
		Format: "[${time}] ${locals:requestid} ${ip} ${method} ${path} ${status} ${latency}\n",
	}))
	app.Use(m.Middleware())

	app.Get("/", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"message": "E-commerce API is running"})
	})
	app.Get("/metrics", m.Handler())

	gate := middleware.NewAuthGate(db, cfg.JWTKey)
	webhook := utils.NewOrderWebhook(cfg.OrderWebhookURL, time.Duration(cfg.OrderWebhookTimeout)*time.Second, log)
	mailer := utils.NewOrderMailer(db, log, cfg.EmailSender, cfg.Password, cfg.SMTPHost, cfg.SMTPPort)

	userRoutes.SetupUserRoutes(app, userController.New(
		userService.NewService(db, log, cfg.SaltRound, cfg.JWTKey, time.Duration(cfg.JWTTTLMinutes)*time.Minute),
	), gate)
	categoryRoutes.SetupCategoryRoutes(app, categoryController.New(categoryService.NewService(db, log)), gate)
	productRoutes.SetupProductRoutes(app, productController.New(productService.NewService(db, log)), gate)
	reviewRoutes.SetupReviewRoutes(app, reviewController.New(reviewService.NewService(db, log, m)), gate)
	cartRoutes.SetupCartRoutes(app, cartController.New(cartService.NewService(db, log)), gate)
	orderRoutes.SetupOrderRoutes(app, orderController.New(orderService.NewService(db, log, m, webhook, mailer)), gate)

	return app
}
