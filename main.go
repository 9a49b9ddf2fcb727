package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/Ananth-NQI/govjobs-backend/database"
	"github.com/Ananth-NQI/govjobs-backend/internal/config"
	"github.com/Ananth-NQI/govjobs-backend/internal/handlers"
	"github.com/Ananth-NQI/govjobs-backend/internal/routes"
	"github.com/Ananth-NQI/govjobs-backend/internal/services"
	"github.com/Ananth-NQI/govjobs-backend/internal/storage"
)

const version = "1.0.0"

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load configuration:", err)
	}

	logger, err := newLogger(cfg)
	if err != nil {
		log.Fatal("Failed to initialize logger:", err)
	}
	defer logger.Sync() //nolint:errcheck

	// Initialize storage
	var store storage.Store
	if cfg.StorageDriver == config.StorageMemory {
		logger.Warn("using in-memory storage (not for production!)")
		store = storage.NewMemoryStore()
	} else {
		db, err := database.Connect(cfg.Database, logger)
		if err != nil {
			logger.Fatal("database connection failed", zap.Error(err))
		}
		if cfg.AutoMigrate {
			logger.Info("running database migrations")
			if err := database.Migrate(db); err != nil {
				logger.Fatal("failed to migrate database", zap.Error(err))
			}
		}
		store = storage.NewDatabaseStore(db)
		defer func() {
			if sqlDB, err := db.DB(); err == nil {
				_ = sqlDB.Close()
			}
		}()
	}

	// OTP delivery: Twilio when configured, plus the demo mailbox in demo mode
	var senders services.FanoutSender
	var notifier services.Notifier

	twilioSender, err := services.NewTwilioSender(cfg.Twilio, logger)
	if err != nil {
		logger.Warn("twilio not configured, SMS delivery disabled", zap.Error(err))
	} else {
		senders = append(senders, twilioSender)
		notifier = twilioSender
	}

	var mailbox services.Mailbox
	if cfg.DemoMode {
		mailbox = newMailbox(cfg, logger)
		senders = append(senders, mailbox)
	}
	defer closeMailbox(mailbox)

	var otpSender services.OTPSender
	if len(senders) > 0 {
		otpSender = senders
	} else {
		logger.Warn("no OTP delivery channel configured; codes will not be delivered")
	}

	otpService := services.NewOTPService(store, otpSender, cfg.OTPTTL, logger)
	authService := services.NewAuthService(store, otpService, logger)
	sessions := services.NewSessionManager(cfg.SessionSecret, cfg.SessionTTL, cfg.AdminPhone)
	catalog := services.NewCatalogService(store, logger)
	applications := services.NewApplicationService(store, catalog, logger)
	payments := services.NewPaymentService(store, notifier, logger)
	admin := services.NewAdminService(store, catalog, logger)

	// Create fiber app
	app := fiber.New(fiber.Config{
		AppName:      "Government Jobs Portal v" + version,
		BodyLimit:    cfg.BodyLimitMB * 1024 * 1024,
		ErrorHandler: handlers.ErrorHandler(logger),
	})

	// Middleware
	app.Use(fiberlogger.New(fiberlogger.Config{
		Format: "[${time}] ${status} - ${latency} ${method} ${path}\n",
	}))
	app.Use(recover.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.CORSOrigins,
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization",
		AllowMethods:     "GET, POST, PUT, PATCH, DELETE, OPTIONS",
		AllowCredentials: cfg.CORSOrigins != "*",
	}))

	routes.SetupRoutes(app, routes.Handlers{
		Health:       handlers.NewHealthHandler(version, cfg.Environment, store, twilioSender != nil, cfg.DemoMode),
		Auth:         handlers.NewAuthHandler(authService, sessions, mailbox, handlers.CookieConfig{Name: cfg.SessionCookie, Secure: cfg.CookieSecure}, cfg.DemoMode),
		Jobs:         handlers.NewJobHandler(catalog),
		Applications: handlers.NewApplicationHandler(applications),
		Payments:     handlers.NewPaymentHandler(payments),
		Admin:        handlers.NewAdminHandler(admin),
	}, sessions, cfg.SessionCookie)

	// Handle graceful shutdown
	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-c
		logger.Info("gracefully shutting down")
		if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
			logger.Error("shutdown failed", zap.Error(err))
		}
	}()

	logger.Info("government jobs portal starting",
		zap.String("port", cfg.Port),
		zap.String("environment", cfg.Environment),
		zap.String("storage", store.Name()),
		zap.Bool("sms", twilioSender != nil),
		zap.Bool("demo_mode", cfg.DemoMode))

	if err := app.Listen(":" + cfg.Port); err != nil {
		logger.Error("server stopped", zap.Error(err))
	}
}

func newLogger(cfg *config.Config) (*zap.Logger, error) {
	if cfg.IsProduction() {
		return zap.NewProduction()
	}
	return zap.NewDevelopment()
}

// newMailbox prefers redis so demo codes survive restarts and are shared across instances.
func newMailbox(cfg *config.Config, logger *zap.Logger) services.Mailbox {
	if cfg.RedisAddr == "" {
		logger.Info("demo OTP mailbox kept in memory")
		return services.NewMemoryMailbox(cfg.OTPTTL)
	}

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       0,
	})
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		logger.Warn("redis unreachable, demo OTP mailbox kept in memory", zap.String("addr", cfg.RedisAddr), zap.Error(err))
		_ = client.Close()
		return services.NewMemoryMailbox(cfg.OTPTTL)
	}
	logger.Info("demo OTP mailbox backed by redis", zap.String("addr", cfg.RedisAddr))
	return services.NewRedisMailbox(client, cfg.OTPTTL)
}

func closeMailbox(m services.Mailbox) {
	if r, ok := m.(*services.RedisMailbox); ok {
		_ = r.Close()
	}
}
