package main

import (
	"context"
	"log"
	"os"

	"github.com/getsentry/sentry-go"
	"github.com/gofiber/fiber/v2"

	"capturehub/config"
	controller "capturehub/controllers"
	"capturehub/middleware"
	"capturehub/routes"
	"capturehub/utils"
	"capturehub/worker"
)

func main() {
	logger := log.New(os.Stdout, "CAPTURE: ", log.Ldate|log.Ltime|log.Lshortfile)

	if err := config.LoadConfig(); err != nil {
		logger.Fatalf("Failed to load configuration: %v", err)
	}

	if config.AppConfig.SentryDSN != "" {
		if err := sentry.Init(sentry.ClientOptions{
			Dsn:         config.AppConfig.SentryDSN,
			Environment: config.AppConfig.Environment,
		}); err != nil {
			logger.Printf("Sentry initialization failed: %v", err)
		}
	}

	if err := config.ConnectDB(); err != nil {
		logger.Fatalf("Failed to connect to database: %v", err)
	}

	app := fiber.New()

	app.Use(middleware.CORS())

	// Shared mailer and the websocket fan-out hub
	mailer := utils.NewMailer(config.AppConfig)
	hub := controller.NewNotificationHub()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	reminderWorker := worker.NewReminderWorker(config.DB, mailer, log.New(os.Stdout, "REMINDER: ", log.LstdFlags))
	reminderWorker.Notify = hub.Broadcast
	go reminderWorker.Start(ctx)

	digestWorker := worker.NewDigestWorker(config.DB, mailer, log.New(os.Stdout, "DIGEST: ", log.LstdFlags), config.AppConfig.DigestHour)
	go digestWorker.Start(ctx)

	routes.SetupRoutes(app, config.DB, hub)

	logger.Printf("🚀 Server starting on port %s", config.AppConfig.ServerPort)
	if err := app.Listen(":" + config.AppConfig.ServerPort); err != nil {
		logger.Fatalf("Failed to start server: %v", err)
	}
}
