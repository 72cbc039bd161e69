package prices

import (
	"path/filepath"
	"strings"

	"github.com/bobmcallan/sharedash/internal/models"
)

// Load reads a price file, choosing the reader by file extension.
func Load(path string) (*models.PriceSeries, error) {
	if strings.EqualFold(filepath.Ext(path), ".parquet") {
		return LoadParquet(path)
	}
	return LoadCSV(path)
}
