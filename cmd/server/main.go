package main

import (
	"context"
	"log/slog"
	"net"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/lnpoker/lnpoker/internal/api"
	"github.com/lnpoker/lnpoker/internal/factory"
	"github.com/lnpoker/lnpoker/internal/gateway/lightspark"
	"github.com/lnpoker/lnpoker/internal/services/auth"
	"github.com/lnpoker/lnpoker/internal/services/gamestore"
	redisstorage "github.com/lnpoker/lnpoker/internal/storage/redis"
)

func main() {
	// Set up logging with JSON output
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	// Build factory config from environment
	cfg := factory.Config{
		Logger:      logger,
		StorageType: os.Getenv("STORAGE_TYPE"),
	}

	// Configure Redis if storage type is redis
	if cfg.StorageType == factory.StorageTypeRedis {
		redisURL := os.Getenv("REDIS_URL")
		if redisURL == "" {
			logger.Error("REDIS_URL required when STORAGE_TYPE=redis")
			os.Exit(1)
		}
		redisCfg := redisstorage.DefaultConfig()
		redisCfg.URL = redisURL
		cfg.RedisConfig = &redisCfg
	}

	// Configure the Lightspark gateway if credentials are provided
	if baseURL := os.Getenv("LNGATEWAY_BASE_URL"); baseURL != "" {
		lsCfg := lightspark.DefaultConfig()
		lsCfg.BaseURL = baseURL
		lsCfg.APITokenClientID = os.Getenv("LNGATEWAY_CLIENT_ID")
		lsCfg.APITokenSecret = os.Getenv("LNGATEWAY_CLIENT_SECRET")
		cfg.GatewayType = factory.GatewayTypeLightspark
		cfg.LightsparkConfig = &lsCfg
	} else {
		logger.Warn("LNGATEWAY_BASE_URL not set, using fake invoice gateway")
	}

	if retries := os.Getenv("LNGATEWAY_RETRIES"); retries != "" {
		n, err := strconv.ParseUint(retries, 10, 64)
		if err != nil {
			logger.Error("invalid LNGATEWAY_RETRIES", slog.String("value", retries))
			os.Exit(1)
		}
		cfg.GatewayRetries = n
	}

	if ttl := os.Getenv("RESERVATION_TTL"); ttl != "" {
		d, err := time.ParseDuration(ttl)
		if err != nil {
			logger.Error("invalid RESERVATION_TTL", slog.String("value", ttl))
			os.Exit(1)
		}
		cfg.GameStoreConfig = gamestore.Config{ReservationTTL: d}
	}

	if ttl := os.Getenv("SESSION_TTL"); ttl != "" {
		d, err := time.ParseDuration(ttl)
		if err != nil {
			logger.Error("invalid SESSION_TTL", slog.String("value", ttl))
			os.Exit(1)
		}
		cfg.AuthConfig = auth.Config{SessionDuration: d}
	}

	// Create application factory
	app, err := factory.New(cfg)
	if err != nil {
		logger.Error("failed to create application", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// Create API router
	router := api.NewRouter(api.RouterConfig{
		Logger:              logger,
		AuthService:         app.AuthService,
		GameStore:           app.GameStore,
		AdmissionController: app.AdmissionController,
	})

	// Create server
	serverConfig := api.DefaultServerConfig()
	if addr := os.Getenv("LNPOKER_ADDR"); addr != "" {
		host, portStr, err := net.SplitHostPort(addr)
		if err != nil {
			logger.Error("invalid LNPOKER_ADDR", slog.String("value", addr))
			os.Exit(1)
		}
		port, err := strconv.Atoi(portStr)
		if err != nil {
			logger.Error("invalid LNPOKER_ADDR port", slog.String("value", portStr))
			os.Exit(1)
		}
		serverConfig.Host = host
		serverConfig.Port = port
	}
	server := api.NewServer(router, serverConfig, logger)

	// Handle graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh
		logger.Info("shutdown signal received")
		cancel()
	}()

	// Start the expired reservation sweeper
	app.AdmissionController.Start(ctx)
	defer app.AdmissionController.Stop()

	// Start server in goroutine
	errCh := make(chan error, 1)
	go func() {
		errCh <- server.Start()
	}()

	logger.Info("server started", slog.String("addr", server.Addr()))

	// Wait for shutdown or error
	select {
	case err := <-errCh:
		if err != nil {
			logger.Error("server error", slog.String("error", err.Error()))
			os.Exit(1)
		}
	case <-ctx.Done():
		if err := server.Shutdown(context.Background()); err != nil {
			logger.Error("shutdown error", slog.String("error", err.Error()))
			os.Exit(1)
		}
	}

	logger.Info("server stopped")
}
