package prices

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// ErrNoPriceFile is returned when no price file matches a ticker.
var ErrNoPriceFile = errors.New("no price file for ticker")

// Index maps normalized ticker keys to price file paths.
type Index struct {
	dir   string
	paths map[string]string
	files int
}

// BuildIndex scans dir for price files. CSV files are registered first, in
// directory order, then Parquet files when includeParquet is set. The first
// file registered under a key keeps it.
// A missing directory yields an empty index.
func BuildIndex(dir string, includeParquet bool) (*Index, error) {
	idx := &Index{dir: dir, paths: make(map[string]string)}

	info, err := os.Stat(dir)
	if err != nil || !info.IsDir() {
		if err == nil || errors.Is(err, os.ErrNotExist) {
			return idx, nil
		}
		return idx, fmt.Errorf("stat prices dir: %w", err)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return idx, fmt.Errorf("read prices dir: %w", err)
	}

	exts := []string{".csv"}
	if includeParquet {
		exts = append(exts, ".parquet")
	}
	for _, ext := range exts {
		for _, e := range entries {
			if e.IsDir() || !strings.HasSuffix(strings.ToLower(e.Name()), ext) {
				continue
			}
			idx.register(e.Name(), filepath.Join(dir, e.Name()))
		}
	}
	return idx, nil
}

// register adds the key variants of a price file name.
func (idx *Index) register(name, path string) {
	stem := strings.TrimSuffix(name, filepath.Ext(name))
	prefix, _, _ := strings.Cut(stem, "_")

	keys := []string{
		stem,
		prefix,
		strings.ReplaceAll(prefix, "-", "_"),
		strings.ReplaceAll(prefix, "-", ""),
		strings.ReplaceAll(prefix, ".", "-"),
		strings.ReplaceAll(prefix, ".", ""),
	}
	for _, k := range keys {
		k = strings.ToLower(k)
		if _, taken := idx.paths[k]; !taken {
			idx.paths[k] = path
		}
	}
	idx.files++
}

// Resolve returns the price file for ticker, trying the ticker as given and
// with common separator substitutions.
func (idx *Index) Resolve(ticker string) (string, bool) {
	candidates := []string{
		ticker,
		strings.ReplaceAll(ticker, "-", "_"),
		strings.ReplaceAll(ticker, "-", ""),
		strings.ReplaceAll(ticker, ".", "-"),
		strings.ReplaceAll(ticker, ".", ""),
	}
	for _, c := range candidates {
		if p, ok := idx.paths[strings.ToLower(c)]; ok {
			return p, true
		}
	}
	return "", false
}

// Dir returns the scanned directory.
func (idx *Index) Dir() string {
	return idx.dir
}

// Files returns the number of price files registered.
func (idx *Index) Files() int {
	return idx.files
}
