package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/AR-Raju/online-nursery-server/internal/config"
	"github.com/AR-Raju/online-nursery-server/internal/handlers"
	"github.com/AR-Raju/online-nursery-server/internal/repository"
	"github.com/AR-Raju/online-nursery-server/internal/service"
	"github.com/AR-Raju/online-nursery-server/internal/telemetry"
	"github.com/AR-Raju/online-nursery-server/internal/upload"
)

const serviceName = "nursery-api"

func main() {
	cfg := config.Load()

	ctx := context.Background()
	metrics, metricsHandler, shutdownTelemetry, err := telemetry.Init(ctx, serviceName)
	if err != nil {
		slog.Error("failed to initialize telemetry", "error", err)
		os.Exit(1)
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdownTelemetry(shutdownCtx); err != nil {
			slog.Error("failed to shutdown telemetry", "error", err)
		}
	}()

	mongoClient, err := repository.Connect(repository.MongoConfig{
		URI:     cfg.MongoURI,
		DBName:  cfg.MongoDBName,
		Timeout: cfg.MongoTimeout,
	})
	if err != nil {
		slog.Error("failed to connect to mongodb", "error", err)
		os.Exit(1)
	}
	defer func() {
		disconnectCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := mongoClient.Disconnect(disconnectCtx); err != nil {
			slog.Error("failed to disconnect mongodb client", "error", err)
		}
	}()

	db := mongoClient.Database(cfg.MongoDBName)
	productStore := repository.NewMongoProductStore(db)
	categoryStore := repository.NewMongoCategoryStore(db)
	orderStore := repository.NewMongoOrderStore(db)

	uploader := upload.NewClient(cfg.ImageHostURL, cfg.ImageHostKey)
	orderService := service.NewOrderService(productStore, orderStore, metrics)

	router := handlers.NewRouter(serviceName,
		handlers.NewProductHandler(productStore, uploader),
		handlers.NewCategoryHandler(categoryStore, uploader),
		handlers.NewOrderHandler(orderService),
		metricsHandler,
	)

	server := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	go func() {
		slog.Info("starting storefront API", "addr", server.Addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("server exited", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit
	slog.Info("shutting down", "signal", sig.String())

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		slog.Error("graceful shutdown failed", "error", err)
	}
	slog.Info("server exiting")
}
