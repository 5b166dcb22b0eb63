package factory

import (
	"errors"
	"io"
	"log/slog"

	"github.com/lnpoker/lnpoker/internal/dependencies/clock"
	"github.com/lnpoker/lnpoker/internal/dependencies/random"
	"github.com/lnpoker/lnpoker/internal/gateway"
	"github.com/lnpoker/lnpoker/internal/gateway/fakegateway"
	"github.com/lnpoker/lnpoker/internal/gateway/lightspark"
	"github.com/lnpoker/lnpoker/internal/services/admission"
	"github.com/lnpoker/lnpoker/internal/services/auth"
	"github.com/lnpoker/lnpoker/internal/services/gamestore"
	"github.com/lnpoker/lnpoker/internal/storage"
	"github.com/lnpoker/lnpoker/internal/storage/memory"
	redisstorage "github.com/lnpoker/lnpoker/internal/storage/redis"
)

// Storage type constants
const (
	StorageTypeMemory = "memory"
	StorageTypeRedis  = "redis"
)

// Gateway type constants
const (
	GatewayTypeFake       = "fake"
	GatewayTypeLightspark = "lightspark"
)

// App contains all wired application components
type App struct {
	// Storage
	Storage storage.Storage

	// External dependencies
	Clock   clock.Clock
	Random  random.Random
	Gateway gateway.Gateway

	// Services
	AuthService         *auth.Service
	GameStore           *gamestore.Controller
	AdmissionController *admission.Controller
}

// Config holds configuration for the application factory
type Config struct {
	// Logger is the application logger (optional)
	// If nil, a no-op logger is used
	Logger *slog.Logger
	// StorageType selects the storage backend ("memory" or "redis")
	// If empty, defaults to "memory"
	StorageType string
	// RedisConfig holds Redis connection settings (required if StorageType is "redis")
	RedisConfig *redisstorage.Config
	// GatewayType selects the invoice gateway ("fake" or "lightspark")
	// If empty, defaults to "fake"
	GatewayType string
	// LightsparkConfig holds gateway connection settings (required if GatewayType is "lightspark")
	LightsparkConfig *lightspark.Config
	// GatewayRetries enables the retrying gateway decorator when > 0
	GatewayRetries uint64
	// AuthConfig holds configuration for the auth service (optional)
	AuthConfig auth.Config
	// GameStoreConfig holds configuration for the game store (optional)
	GameStoreConfig gamestore.Config
	// AdmissionConfig holds configuration for the admission controller (optional)
	AdmissionConfig admission.Config
}

// New creates a new application with all dependencies wired
func New(cfg Config) (*App, error) {
	// Use no-op logger if not provided
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.NewJSONHandler(io.Discard, nil))
	}

	// Create storage based on type
	var store storage.Storage
	storageType := cfg.StorageType
	if storageType == "" {
		storageType = StorageTypeMemory
	}

	switch storageType {
	case StorageTypeMemory:
		store = memory.New()
	case StorageTypeRedis:
		if cfg.RedisConfig == nil {
			return nil, errors.New("RedisConfig required when StorageType is redis")
		}
		redisStore, err := redisstorage.New(*cfg.RedisConfig)
		if err != nil {
			return nil, err
		}
		store = redisStore
	default:
		return nil, errors.New("invalid StorageType: must be 'memory' or 'redis'")
	}

	// Create invoice gateway based on type
	var gw gateway.Gateway
	gatewayType := cfg.GatewayType
	if gatewayType == "" {
		gatewayType = GatewayTypeFake
	}

	switch gatewayType {
	case GatewayTypeFake:
		gw = fakegateway.New()
	case GatewayTypeLightspark:
		if cfg.LightsparkConfig == nil {
			return nil, errors.New("LightsparkConfig required when GatewayType is lightspark")
		}
		gw = lightspark.New(*cfg.LightsparkConfig)
	default:
		return nil, errors.New("invalid GatewayType: must be 'fake' or 'lightspark'")
	}

	if cfg.GatewayRetries > 0 {
		gw = gateway.NewRetryingGateway(gw, cfg.GatewayRetries, logger)
	}

	// Create external dependencies
	clk := clock.New()
	rnd := random.New()

	return newWithDependencies(store, clk, rnd, gw, cfg, logger), nil
}

// newWithDependencies creates an App with the given dependencies (useful for testing)
func newWithDependencies(
	store storage.Storage,
	clk clock.Clock,
	rnd random.Random,
	gw gateway.Gateway,
	cfg Config,
	logger *slog.Logger,
) *App {
	gameStore := gamestore.NewController(store, clk, rnd, cfg.GameStoreConfig, logger)
	admissionController := admission.NewController(gameStore, gw, clk, cfg.AdmissionConfig, logger)
	authService := auth.New(store, clk, cfg.AuthConfig)

	return &App{
		Storage:             store,
		Clock:               clk,
		Random:              rnd,
		Gateway:             gw,
		AuthService:         authService,
		GameStore:           gameStore,
		AdmissionController: admissionController,
	}
}
