package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"storefront/internal/config"
	"storefront/internal/database"
	"storefront/internal/events"
	"storefront/internal/logger"
	"storefront/internal/server"

	"go.uber.org/zap"
)

const migrationsDir = "migrations"

func main() {
	cfg := config.Load()

	log, err := logger.New(cfg.Server.Env)
	if err != nil {
		panic(err)
	}
	defer log.Sync()

	log.Info("Starting storefront API",
		zap.String("env", cfg.Server.Env),
		zap.String("port", cfg.Server.Port),
	)

	db, err := database.New(cfg.Database)
	if err != nil {
		log.Fatal("Failed to open database", zap.Error(err))
	}
	defer db.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	health := db.Health(ctx)
	if health["status"] != "up" {
		cancel()
		log.Fatal("Database is unreachable", zap.String("error", health["error"]))
	}

	if err := db.Migrate(migrationsDir, log); err != nil {
		cancel()
		log.Fatal("Failed to run migrations", zap.Error(err))
	}

	caps, err := database.DetectCapabilities(ctx, db.DB(), log)
	if err != nil {
		cancel()
		log.Fatal("Failed to detect schema capabilities", zap.Error(err))
	}

	if cfg.Server.Env != "production" {
		if err := db.Seed(ctx, log); err != nil {
			cancel()
			log.Fatal("Failed to seed catalog", zap.Error(err))
		}
	}
	cancel()

	var publisher events.Publisher
	if cfg.AMQP.URL != "" {
		amqpPublisher, err := events.NewAMQPPublisher(cfg.AMQP.URL, log)
		if err != nil {
			log.Warn("Order events disabled, broker unreachable", zap.Error(err))
		} else {
			publisher = amqpPublisher
			defer amqpPublisher.Close()
		}
	}

	srv := server.New(cfg, log, db, caps, publisher)

	shutdownCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	serverErr := make(chan error, 1)
	go func() {
		serverErr <- srv.Start()
	}()

	select {
	case err := <-serverErr:
		if err != nil {
			log.Fatal("Server failed", zap.Error(err))
		}
	case <-shutdownCtx.Done():
		log.Info("Shutdown signal received")

		ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()

		if err := srv.Shutdown(ctx); err != nil {
			log.Error("Graceful shutdown failed", zap.Error(err))
		} else {
			log.Info("Server stopped")
		}
	}
}
