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

	"github.com/tiongMax/stocktracker/internal/config"
	"github.com/tiongMax/stocktracker/internal/quote"
	"github.com/tiongMax/stocktracker/internal/server"
	"github.com/tiongMax/stocktracker/internal/store"
	"github.com/tiongMax/stocktracker/pkg/logger"
)

func main() {
	// 1. Configuration
	cfg, err := config.Load()
	if err != nil {
		slog.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}

	logger.Init(cfg.App.Env)

	// 2. Connect to MongoDB
	slog.Info("Connecting to MongoDB...")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	client, err := store.Connect(ctx, cfg.Mongo.URI)
	cancel()
	if err != nil {
		slog.Error("Failed to connect to MongoDB", "error", err)
		os.Exit(1)
	}
	slog.Info("Connected to MongoDB")

	stocks := store.New(client, cfg.Mongo.Database, cfg.Mongo.Collection)
	if err := stocks.EnsureIndexes(context.Background()); err != nil {
		slog.Error("Failed to ensure indexes", "error", err)
		os.Exit(1)
	}

	// 3. Quote service client
	fetcher := quote.NewFetcher(cfg.Quote.URL, cfg.Quote.APIKey)

	// 4. Set up router and server
	handler := server.NewHandler(stocks, fetcher)
	router := server.NewRouter(handler, cfg.Static.Dir)

	srv := &http.Server{
		Addr:    ":" + cfg.App.Port,
		Handler: router,
	}

	// 5. Start server in goroutine
	go func() {
		slog.Info("Stock tracker listening", "port", cfg.App.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("Failed to start server", "error", err)
			os.Exit(1)
		}
	}()

	// 6. Wait for shutdown signal
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	sig := <-stop
	slog.Info("Shutdown signal received", "signal", sig.String())

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("Server shutdown failed", "error", err)
	}
	if err := client.Disconnect(shutdownCtx); err != nil {
		slog.Error("MongoDB disconnect failed", "error", err)
	}
	slog.Info("Stock tracker stopped")
}
