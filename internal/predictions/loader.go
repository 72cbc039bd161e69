package predictions

import (
	"github.com/bobmcallan/sharedash/internal/cache"
	"github.com/bobmcallan/sharedash/internal/common"
	"github.com/bobmcallan/sharedash/internal/models"
)

// Loader reads the configured predictions file through a parsed-file cache.
type Loader struct {
	path   string
	cache  *cache.FileCache[[]models.PredictionRecord]
	logger *common.Logger
}

// NewLoader creates a Loader for the predictions file at path.
func NewLoader(path string, maxEntries int, logger *common.Logger) *Loader {
	return &Loader{
		path:   path,
		cache:  cache.New[[]models.PredictionRecord](maxEntries),
		logger: logger,
	}
}

// Path returns the predictions file the loader reads.
func (l *Loader) Path() string {
	return l.path
}

// Records returns the parsed table. Callers must not modify the returned slice.
func (l *Loader) Records() ([]models.PredictionRecord, error) {
	return l.cache.Get(l.path, func(path string) ([]models.PredictionRecord, error) {
		records, err := Load(path)
		if err != nil {
			l.logger.Error().Str("path", path).Str("error", err.Error()).Msg("failed to load predictions")
			return nil, err
		}
		l.logger.Info().Str("path", path).Int("records", len(records)).Msg("predictions loaded")
		return records, nil
	})
}
