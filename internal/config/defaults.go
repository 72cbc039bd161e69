package config

// NewDefaultConfig creates a configuration with default values.
func NewDefaultConfig() *Config {
	return &Config{
		Environment: "prod",
		Server: ServerConfig{
			Port:      4241,
			Host:      "localhost",
			RateLimit: 0,
			RateBurst: 20,
		},
		Data: DataConfig{
			PredictionsFile: "results_stock_prediction.json",
			PricesDir:       "data/prices",
			ReportsDir:      "reports",
		},
		Dashboard: DashboardConfig{
			DefaultSort:   "prob_desc",
			DefaultLimit:  "10",
			HorizonDays:   5,
			DefaultPreset: "1M",
		},
		Cache: CacheConfig{
			MaxEntries: 256,
		},
		MCP: MCPConfig{
			Enabled: true,
		},
		Logging: LoggingConfig{
			Level:      "info",
			Outputs:    []string{"console"},
			FilePath:   "logs/sharedash.log",
			MaxSizeMB:  10,
			MaxBackups: 5,
		},
	}
}
