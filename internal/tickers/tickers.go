// Package tickers maps ticker symbols to company display names.
package tickers

import (
	_ "embed"
	"fmt"
	"os"
	"sort"

	"gopkg.in/yaml.v3"
)

//go:embed tickers.yaml
var defaultYAML []byte

// file is the YAML layout of a ticker directory.
type file struct {
	Tickers map[string]string `yaml:"tickers"`
}

// Directory is an immutable ticker to company name mapping.
type Directory struct {
	names map[string]string
}

// Default returns the built-in directory.
func Default() *Directory {
	d, err := Parse(defaultYAML)
	if err != nil {
		panic(fmt.Sprintf("tickers: embedded directory is invalid: %v", err))
	}
	return d
}

// Load reads a directory from a YAML file. An empty path returns the built-in directory.
func Load(path string) (*Directory, error) {
	if path == "" {
		return Default(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read tickers file: %w", err)
	}
	d, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("parse tickers file %s: %w", path, err)
	}
	return d, nil
}

// Parse decodes a YAML ticker directory.
func Parse(data []byte) (*Directory, error) {
	var f file
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, err
	}
	names := make(map[string]string, len(f.Tickers))
	for k, v := range f.Tickers {
		names[k] = v
	}
	return &Directory{names: names}, nil
}

// Name returns the company name for ticker, or the ticker itself when unknown.
func (d *Directory) Name(ticker string) string {
	if d != nil {
		if n, ok := d.names[ticker]; ok && n != "" {
			return n
		}
	}
	return ticker
}

// Len returns the number of known tickers.
func (d *Directory) Len() int {
	if d == nil {
		return 0
	}
	return len(d.names)
}

// Tickers returns the known tickers in ascending order.
func (d *Directory) Tickers() []string {
	if d == nil {
		return nil
	}
	out := make([]string, 0, len(d.names))
	for k := range d.names {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
