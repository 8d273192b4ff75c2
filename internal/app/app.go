// Package app wires FundTrack's configuration, storage, clients, and services
package app

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/priyanshps/fundtrack/internal/clients/navfeed"
	"github.com/priyanshps/fundtrack/internal/common"
	"github.com/priyanshps/fundtrack/internal/interfaces"
	"github.com/priyanshps/fundtrack/internal/services/fund"
	"github.com/priyanshps/fundtrack/internal/services/portfolio"
	"github.com/priyanshps/fundtrack/internal/storage"
)

// App holds all initialized services, clients, and storage. The refresh cache
// and scheduler are constructed here and injected into the portfolio service,
// so their lifetime is owned by the process entry point rather than package
// state.
type App struct {
	Config           *common.Config
	Logger           *common.Logger
	Storage          interfaces.StorageManager
	NAVClient        interfaces.NAVFeedClient
	PortfolioService interfaces.PortfolioService
	FundService      interfaces.FundService
	Cache            *portfolio.ResultCache
	Scheduler        *portfolio.Scheduler
	StartupTime      time.Time
}

// getBinaryDir returns the directory containing the executable.
func getBinaryDir() string {
	exe, err := os.Executable()
	if err != nil {
		return "."
	}
	return filepath.Dir(exe)
}

// NewApp initializes configuration, storage, clients, and services.
// configPath may be empty, in which case the default resolution logic is used.
func NewApp(configPath string) (*App, error) {
	startupStart := time.Now()

	// Load version from .version file (fallback if ldflags not set)
	common.LoadVersionFromFile()

	// Load configuration - check provided path, FUNDTRACK_CONFIG, then binary dir, then fallback
	if configPath == "" {
		configPath = os.Getenv("FUNDTRACK_CONFIG")
	}
	if configPath == "" {
		configPath = filepath.Join(getBinaryDir(), "fundtrack.toml")
		if _, err := os.Stat(configPath); os.IsNotExist(err) {
			configPath = "config/fundtrack.toml" // fallback for development
		}
	}

	config, err := common.LoadConfig(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	logger := common.NewLoggerFromConfig(config.Logging)

	storageManager, err := storage.NewStorageManager(logger, config)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize storage: %w", err)
	}

	if config.Clients.NAVFeed.APIKey == "" {
		logger.Warn().Msg("NAV feed API key not configured - price refresh will be unavailable")
	}

	navClient := navfeed.NewClient(config.Clients.NAVFeed.APIKey,
		navfeed.WithBaseURL(config.Clients.NAVFeed.BaseURL),
		navfeed.WithAPIHost(config.Clients.NAVFeed.APIHost),
		navfeed.WithLogger(logger),
		navfeed.WithRateLimit(config.Clients.NAVFeed.RateLimit),
		navfeed.WithTimeout(config.Clients.NAVFeed.GetTimeout()),
	)

	cache := portfolio.NewResultCache(config.Cache.GetTTL())
	scheduler := portfolio.NewScheduler(config.Scheduler.GetInterval(), config.Scheduler.GetIdleTimeout(), logger)

	portfolioService := portfolio.NewService(storageManager, navClient, cache, scheduler, logger)
	fundService := fund.NewService(navClient, logger)

	a := &App{
		Config:           config,
		Logger:           logger,
		Storage:          storageManager,
		NAVClient:        navClient,
		PortfolioService: portfolioService,
		FundService:      fundService,
		Cache:            cache,
		Scheduler:        scheduler,
		StartupTime:      startupStart,
	}

	logger.Info().Dur("startup", time.Since(startupStart)).Msg("App initialized")

	return a, nil
}

// Close releases all resources held by the App.
// Shutdown order: stop scheduler, close storage.
func (a *App) Close() {
	if a.Scheduler != nil {
		a.Scheduler.Stop()
	}
	if a.Storage != nil {
		a.Storage.Close()
		a.Storage = nil
	}
}
