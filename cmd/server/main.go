package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"github.com/selivandex/stock-forecaster/internal/adapters/config"
	"github.com/selivandex/stock-forecaster/internal/adapters/news"
	"github.com/selivandex/stock-forecaster/internal/adapters/price"
	"github.com/selivandex/stock-forecaster/internal/predictor"
	"github.com/selivandex/stock-forecaster/internal/sentiment"
	"github.com/selivandex/stock-forecaster/internal/server"
	"github.com/selivandex/stock-forecaster/pkg/logger"
)

func main() {
	// Setup signal handling
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-sigChan
		fmt.Println("\nReceived interrupt signal, shutting down...")
		cancel()
	}()

	// Run application
	if err := run(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	// Initialize logger
	if err := logger.Init(cfg.Logging.Level, cfg.Logging.File); err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	defer logger.Sync()

	logger.Info("Stock Forecast Service starting...",
		zap.Int("port", cfg.Server.Port),
		zap.Int("default_horizon_days", cfg.Forecast.DefaultHorizonDays),
	)

	// Price history source
	priceProvider := price.NewYahooProvider()
	logger.Info("price provider initialized", zap.String("provider", priceProvider.GetName()))

	// News source with keyword sentiment scoring
	sentimentAnalyzer := sentiment.NewAnalyzer()
	newsProvider := news.NewStaticProvider(nil)
	logger.Info("news provider initialized", zap.String("provider", newsProvider.GetName()))

	// Forecasting service
	service := predictor.NewService(cfg, priceProvider, newsProvider, sentimentAnalyzer.AnalyzeSentiment)

	// HTTP API
	srv := server.New(cfg, service)

	errChan := make(chan error, 1)
	go func() {
		if err := srv.Start(fmt.Sprintf(":%d", cfg.Server.Port)); err != nil && err != http.ErrServerClosed {
			errChan <- err
		}
	}()

	logger.Info("HTTP server listening", zap.Int("port", cfg.Server.Port))

	select {
	case err := <-errChan:
		return fmt.Errorf("server error: %w", err)
	case <-ctx.Done():
	}

	logger.Info("shutting down gracefully...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}

	return nil
}
