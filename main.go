package main

import (
	"context"
	"encoding/json"
	"os"
	"os/signal"
	"syscall"
	"time"

	"recipebox/internal/config"
	"recipebox/internal/database"
	"recipebox/internal/logging"
	"recipebox/internal/server"
	"recipebox/internal/services"
	"recipebox/pkg/rabbitmq"
	"recipebox/pkg/sessionstore"

	"github.com/gofiber/fiber/v2"
	"github.com/streadway/amqp"
)

func main() {
	// --- Configuration ---
	cfg, err := config.Load()
	if err != nil {
		logging.Fatal().Err(err).Msg("failed to load configuration")
	}
	logging.Init(logging.Config{Level: cfg.LogLevel, Format: cfg.LogFormat})

	app, cleanup, err := buildApp(cfg)
	if err != nil {
		logging.Fatal().Err(err).Msg("failed to build application")
	}
	defer cleanup()

	if cfg.Seed {
		ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
		if err := services.Seed(ctx, app.Store, app.Auth, app.Recipes, app.Social); err != nil {
			logging.Error().Err(err).Msg("failed to seed database")
		}
		cancel()
	}

	// --- Start HTTP Server ---
	logging.Info().Str("port", cfg.AppPort).Msg("starting server")

	// Graceful shutdown handling
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		if err := app.Listen(cfg.AppPort); err != nil {
			logging.Fatal().Err(err).Msg("server failed to start")
		}
	}()

	// Wait for interrupt signal to gracefully shut down the server
	<-quit
	logging.Info().Msg("shutting down server")

	if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
		logging.Error().Err(err).Msg("error during Fiber shutdown")
	}
	logging.Info().Msg("server gracefully stopped")
}

// buildApp opens the database and the optional Redis and RabbitMQ backends
// and assembles the application. cleanup releases them in reverse order.
func buildApp(cfg *config.Config) (*server.App, func(), error) {
	var closers []func()
	cleanup := func() {
		for i := len(closers) - 1; i >= 0; i-- {
			closers[i]()
		}
	}

	// --- Initialize Database ---
	db, err := database.Open(cfg.Database)
	if err != nil {
		return nil, func() {}, err
	}
	closers = append(closers, func() { database.Close(db) })
	if err := database.Migrate(db); err != nil {
		cleanup()
		return nil, func() {}, err
	}

	// --- Session Storage ---
	var sessionStorage fiber.Storage
	if cfg.RedisURL != "" {
		redisStorage, err := sessionstore.NewRedisStorage(cfg.RedisURL)
		if err != nil {
			cleanup()
			return nil, func() {}, err
		}
		closers = append(closers, func() {
			if err := redisStorage.Close(); err != nil {
				logging.Error().Err(err).Msg("failed to close Redis session storage")
			}
		})
		sessionStorage = redisStorage
	}

	// --- Initialize RabbitMQ Client ---
	var publisher services.EventPublisher
	if cfg.RabbitMQURL != "" {
		mqClient, err := rabbitmq.NewClient(rabbitmq.Config{URL: cfg.RabbitMQURL})
		if err != nil {
			cleanup()
			return nil, func() {}, err
		}
		closers = append(closers, func() {
			if err := mqClient.Close(); err != nil {
				logging.Error().Err(err).Msg("failed to close RabbitMQ client")
			}
		})
		if err := mqClient.Consume(logNotificationEvent); err != nil {
			logging.Error().Err(err).Msg("failed to start RabbitMQ consumer")
		}
		publisher = mqClient
	} else {
		logging.Info().Msg("RABBITMQ_URL not set, notification events are disabled")
	}

	app := server.New(server.Options{
		DB:           db,
		JWTSecret:    cfg.Session.Secret,
		SessionTTL:   cfg.Session.TTL,
		CookieSecure: cfg.Session.CookieSecure,
		SessionStore: sessionStorage,
		Publisher:    publisher,
		CORSOrigins:  cfg.CORSOrigins,
	})
	return app, cleanup, nil
}

// logNotificationEvent is the consumer of notification events.
func logNotificationEvent(msg amqp.Delivery) error {
	var event services.NotificationEvent
	if err := json.Unmarshal(msg.Body, &event); err != nil {
		return err
	}
	logging.Info().
		Str("type", string(event.Type)).
		Uint("notification_id", event.NotificationID).
		Uint("recipient_id", event.RecipientID).
		Uint("actor_id", event.ActorID).
		Msg("notification event received")
	return nil
}
