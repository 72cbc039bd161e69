package report

import (
	"fmt"
	"os"

	"github.com/bobmcallan/sharedash/internal/cache"
	"github.com/bobmcallan/sharedash/internal/common"
	"github.com/bobmcallan/sharedash/internal/models"
)

// Report is a parsed report together with its source text.
type Report struct {
	File    models.ReportFile    `json:"file"`
	Raw     string               `json:"-"`
	Metrics models.ReportMetrics `json:"metrics"`
	Issues  []Issue              `json:"issues"`
}

// Loader finds and parses the latest report in a directory.
type Loader struct {
	dir    string
	cache  *cache.FileCache[*Report]
	logger *common.Logger
}

// NewLoader creates a Loader for the reports directory dir.
func NewLoader(dir string, maxEntries int, logger *common.Logger) *Loader {
	return &Loader{
		dir:    dir,
		cache:  cache.New[*Report](maxEntries),
		logger: logger,
	}
}

// Dir returns the reports directory.
func (l *Loader) Dir() string {
	return l.dir
}

// Latest returns the most recent report. ErrNoReportDir and ErrNoReports
// are returned unwrapped so callers can show a notice.
func (l *Loader) Latest() (*Report, error) {
	file, err := FindLatest(l.dir)
	if err != nil {
		return nil, err
	}

	return l.cache.Get(file.Path, func(path string) (*Report, error) {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read report %s: %w", file.Name, err)
		}
		raw := string(data)
		metrics := Parse(raw)
		rep := &Report{
			File:    file,
			Raw:     raw,
			Metrics: metrics,
			Issues:  Validate(metrics.ClassTable),
		}
		l.logger.Info().
			Str("report", file.Name).
			Bool("class_table", metrics.ClassTable != nil).
			Int("scalars", len(metrics.Scalars)).
			Int("features", len(metrics.FeatureImportances)).
			Int("issues", len(rep.Issues)).
			Msg("classification report loaded")
		return rep, nil
	})
}
