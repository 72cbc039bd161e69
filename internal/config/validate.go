package config

import (
	"fmt"
	"strings"

	"github.com/bobmcallan/sharedash/internal/models"
	"github.com/bobmcallan/sharedash/internal/prices"
)

var logLevels = []string{"trace", "debug", "info", "warn", "error", "fatal", "panic", "disabled"}

// Validate returns a list of configuration problems. An empty list means the
// configuration is usable.
func (c *Config) Validate() []string {
	var issues []string

	if c.Server.Port < 1 || c.Server.Port > 65535 {
		issues = append(issues, fmt.Sprintf("server.port must be between 1 and 65535 (got %d)", c.Server.Port))
	}
	if c.Server.RateLimit < 0 {
		issues = append(issues, "server.rate_limit must not be negative")
	}
	if c.Server.RateLimit > 0 && c.Server.RateBurst < 1 {
		issues = append(issues, "server.rate_burst must be at least 1 when rate limiting is enabled")
	}
	if strings.TrimSpace(c.Data.PredictionsFile) == "" {
		issues = append(issues, "data.predictions_file is required")
	}
	if strings.TrimSpace(c.Data.PricesDir) == "" {
		issues = append(issues, "data.prices_dir is required")
	}
	if strings.TrimSpace(c.Data.ReportsDir) == "" {
		issues = append(issues, "data.reports_dir is required")
	}
	if !validSort(c.Dashboard.DefaultSort) {
		issues = append(issues, fmt.Sprintf("dashboard.default_sort must be one of prob_desc, prob_asc, ticker (got %q)", c.Dashboard.DefaultSort))
	}
	if _, ok := models.ParseLimit(c.Dashboard.DefaultLimit); !ok {
		issues = append(issues, fmt.Sprintf("dashboard.default_limit must be a positive number or \"all\" (got %q)", c.Dashboard.DefaultLimit))
	}
	if c.Dashboard.HorizonDays < 1 {
		issues = append(issues, "dashboard.horizon_days must be at least 1")
	}
	if _, ok := prices.ParsePreset(c.Dashboard.DefaultPreset); !ok {
		issues = append(issues, fmt.Sprintf("dashboard.default_preset must be one of 1M, 3M, 6M, YTD, 1Y, 3Y, 5Y, Max (got %q)", c.Dashboard.DefaultPreset))
	}
	if c.Cache.MaxEntries < 0 {
		issues = append(issues, "cache.max_entries must not be negative")
	}
	if !validLevel(c.Logging.Level) {
		issues = append(issues, fmt.Sprintf("logging.level %q is not a known level", c.Logging.Level))
	}

	return issues
}

func validSort(s string) bool {
	for _, k := range models.SortKeys {
		if string(k) == s {
			return true
		}
	}
	return false
}

func validLevel(level string) bool {
	level = strings.ToLower(strings.TrimSpace(level))
	for _, l := range logLevels {
		if l == level {
			return true
		}
	}
	return false
}

// FilterDefaults returns the sidebar selections shown on first load.
func (c *Config) FilterDefaults() models.FilterSpec {
	spec := models.DefaultFilterSpec()
	if validSort(c.Dashboard.DefaultSort) {
		spec.Sort = models.SortKey(c.Dashboard.DefaultSort)
	}
	if l, ok := models.ParseLimit(c.Dashboard.DefaultLimit); ok {
		spec.Limit = l
	}
	return spec
}

// Preset returns the configured default chart timeframe.
func (c *Config) Preset() prices.Preset {
	if p, ok := prices.ParsePreset(c.Dashboard.DefaultPreset); ok {
		return p
	}
	return prices.DefaultPreset
}

// BaseURL returns the address the server listens on.
func (c *Config) BaseURL() string {
	return fmt.Sprintf("http://%s:%d", c.Server.Host, c.Server.Port)
}
