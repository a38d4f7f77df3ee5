package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os/signal"
	"syscall"

	"github.com/Aidin1998/marketgw/api"
	"github.com/Aidin1998/marketgw/common/otel"
	"github.com/Aidin1998/marketgw/internal/coingecko"
	"github.com/Aidin1998/marketgw/internal/config"
	"github.com/Aidin1998/marketgw/internal/identities"
	"github.com/Aidin1998/marketgw/internal/marketfeeds"
	"github.com/Aidin1998/marketgw/pkg/logger"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

func main() {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found, using environment variables")
	}

	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Create logger
	zapLogger, err := logger.NewLogger(cfg.LogLevel, cfg.App.Environment)
	if err != nil {
		log.Fatalf("Failed to create logger: %v", err)
	}
	defer zapLogger.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	shutdownTelemetry, err := otel.Setup(ctx, otel.Config{
		ServiceName:    "marketgw",
		ServiceVersion: cfg.App.Version,
		Environment:    cfg.App.Environment,
		Tracing:        cfg.Tracing.Enabled,
		Metrics:        cfg.Tracing.Enabled,
	})
	if err != nil {
		zapLogger.Fatal("Failed to set up telemetry", zap.Error(err))
	}

	// Create services
	upstream := coingecko.NewClient(coingecko.Config{
		BaseURL:      cfg.CoinGecko.BaseURL,
		APIKeyHeader: cfg.CoinGecko.APIKeyHeaderName,
		APIKey:       cfg.CoinGecko.APIKey,
		Timeout:      cfg.CoinGecko.Timeout,
		PingTimeout:  cfg.CoinGecko.PingTimeout,
	}, zapLogger)

	identitiesSvc, err := identities.NewService(zapLogger, identities.Config{
		Username:  cfg.Auth.Username,
		Password:  cfg.Auth.Password,
		Secret:    cfg.JWT.Secret,
		Algorithm: cfg.JWT.Algorithm,
		TTL:       cfg.TokenTTL(),
	})
	if err != nil {
		zapLogger.Fatal("Failed to create identities service", zap.Error(err))
	}

	marketfeedsSvc := marketfeeds.NewService(zapLogger, upstream)

	gin.SetMode(api.GinMode(cfg.App.Environment))
	apiServer := api.NewServer(zapLogger, identitiesSvc, marketfeedsSvc, upstream, api.Options{
		ServiceName:    "marketgw-api",
		AllowedOrigins: cfg.Server.AllowedOrigins,
		Version:        cfg.VersionInfo(),
	})

	httpServer := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      apiServer.Router(),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	// Start server in a goroutine
	serverErr := make(chan error, 1)
	go func() {
		zapLogger.Info("Starting API server",
			zap.String("addr", httpServer.Addr),
			zap.String("version", cfg.App.Version),
		)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	// Wait for interrupt or server failure
	select {
	case <-ctx.Done():
	case err := <-serverErr:
		zapLogger.Error("API server failed", zap.Error(err))
	}
	zapLogger.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		zapLogger.Error("Failed to shut down API server", zap.Error(err))
	}
	if err := shutdownTelemetry(shutdownCtx); err != nil {
		zapLogger.Error("Failed to flush telemetry", zap.Error(err))
	}

	zapLogger.Info("Server exited properly")
}
