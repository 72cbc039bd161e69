package prices

import (
	"fmt"

	"github.com/bobmcallan/sharedash/internal/cache"
	"github.com/bobmcallan/sharedash/internal/common"
	"github.com/bobmcallan/sharedash/internal/models"
)

// Loader resolves tickers to price files and reads them through a parsed-file cache.
type Loader struct {
	dir            string
	includeParquet bool
	cache          *cache.FileCache[*models.PriceSeries]
	logger         *common.Logger
}

// NewLoader creates a Loader over the price directory dir.
func NewLoader(dir string, includeParquet bool, maxEntries int, logger *common.Logger) *Loader {
	return &Loader{
		dir:            dir,
		includeParquet: includeParquet,
		cache:          cache.New[*models.PriceSeries](maxEntries),
		logger:         logger,
	}
}

// Dir returns the price directory.
func (l *Loader) Dir() string {
	return l.dir
}

// Index scans the price directory. The scan is repeated on every call so
// files added while the server runs are picked up.
func (l *Loader) Index() (*Index, error) {
	idx, err := BuildIndex(l.dir, l.includeParquet)
	if err != nil {
		l.logger.Warn().Str("dir", l.dir).Str("error", err.Error()).Msg("failed to index price files")
	}
	return idx, err
}

// Series returns the price history for ticker. It returns ErrNoPriceFile when
// no file matches. The returned series may be empty.
func (l *Loader) Series(ticker string) (*models.PriceSeries, error) {
	idx, err := l.Index()
	if err != nil {
		return nil, err
	}
	path, ok := idx.Resolve(ticker)
	if !ok {
		return nil, fmt.Errorf("%s: %w", ticker, ErrNoPriceFile)
	}
	return l.File(path)
}

// File reads the price file at path.
func (l *Loader) File(path string) (*models.PriceSeries, error) {
	return l.cache.Get(path, func(p string) (*models.PriceSeries, error) {
		series, err := Load(p)
		if err != nil {
			l.logger.Error().Str("path", p).Str("error", err.Error()).Msg("failed to load price file")
			return nil, err
		}
		l.logger.Debug().Str("path", p).Int("bars", len(series.Bars)).Msg("price file loaded")
		return series, nil
	})
}
