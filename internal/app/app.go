package app

import (
	"fmt"
	"strings"

	"github.com/bobmcallan/sharedash/internal/common"
	"github.com/bobmcallan/sharedash/internal/config"
	"github.com/bobmcallan/sharedash/internal/dashboard"
	"github.com/bobmcallan/sharedash/internal/handlers"
	"github.com/bobmcallan/sharedash/internal/mcp"
	"github.com/bobmcallan/sharedash/internal/predictions"
	"github.com/bobmcallan/sharedash/internal/prices"
	"github.com/bobmcallan/sharedash/internal/report"
	"github.com/bobmcallan/sharedash/internal/tickers"
)

// App holds all application components and dependencies.
type App struct {
	Config  *config.Config
	Logger  *common.Logger
	Service *dashboard.Service

	// HTTP handlers
	PageHandler    *handlers.PageHandler
	APIHandler     *handlers.APIHandler
	HealthHandler  *handlers.HealthHandler
	VersionHandler *handlers.VersionHandler
	MCPHandler     *mcp.Handler
}

// New initializes the application with all dependencies.
func New(cfg *config.Config, logger *common.Logger) (*App, error) {
	a := &App{
		Config: cfg,
		Logger: logger,
	}

	// Validate environment setting
	env := strings.ToLower(strings.TrimSpace(cfg.Environment))
	if cfg.IsDevMode() {
		logger.Warn().Msg("RUNNING IN DEV MODE")
	} else if env != "prod" && env != "" {
		logger.Warn().
			Str("environment", cfg.Environment).
			Msg("unrecognized environment value, defaulting to prod behavior")
	}

	if err := a.initService(); err != nil {
		return nil, err
	}
	a.initHandlers()

	st := a.Service.Status()
	logger.Info().
		Str("predictions_file", cfg.Data.PredictionsFile).
		Bool("predictions_found", st.PredictionsFound).
		Int("prediction_rows", st.PredictionRows).
		Str("prices_dir", cfg.Data.PricesDir).
		Int("price_files", st.PriceFiles).
		Str("reports_dir", cfg.Data.ReportsDir).
		Str("latest_report", st.LatestReport).
		Msg("application initialization complete")

	return a, nil
}

// initService builds the loaders and the dashboard service.
func (a *App) initService() error {
	cfg := a.Config

	names, err := tickers.Load(cfg.Data.TickersFile)
	if err != nil {
		return fmt.Errorf("failed to load ticker names: %w", err)
	}
	a.Logger.Debug().Int("tickers", names.Len()).Str("file", cfg.Data.TickersFile).Msg("ticker directory loaded")

	a.Service = dashboard.NewService(
		predictions.NewLoader(cfg.Data.PredictionsFile, cfg.Cache.MaxEntries, a.Logger),
		prices.NewLoader(cfg.Data.PricesDir, cfg.Data.IncludeParquet, cfg.Cache.MaxEntries, a.Logger),
		report.NewLoader(cfg.Data.ReportsDir, cfg.Cache.MaxEntries, a.Logger),
		names,
		dashboard.Options{
			HorizonDays:   cfg.Dashboard.HorizonDays,
			DefaultPreset: cfg.Preset(),
		},
		a.Logger,
	)
	return nil
}

// initHandlers initializes all HTTP handlers.
func (a *App) initHandlers() {
	base := a.Config.FilterDefaults()

	a.PageHandler = handlers.NewPageHandler(a.Logger, a.Config.IsDevMode(), a.Service, base)
	a.APIHandler = handlers.NewAPIHandler(a.Logger, a.Service, base)
	a.HealthHandler = handlers.NewHealthHandler(a.Logger, a.Service)
	a.VersionHandler = handlers.NewVersionHandler(a.Logger)

	if a.Config.MCP.Enabled {
		a.MCPHandler = mcp.NewHandler(a.Service, base, a.Logger)
	}

	a.Logger.Debug().Msg("HTTP handlers initialized")
}

// Close closes all application resources.
func (a *App) Close() error {
	return nil
}
