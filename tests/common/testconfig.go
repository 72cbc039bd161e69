package common

import (
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/pelletier/go-toml/v2"
)

// TestURLEnv points the UI suite at an already running dashboard.
const TestURLEnv = "SHAREDASH_TEST_URL"

type TestConfig struct {
	Results struct {
		Dir string `toml:"dir"`
	} `toml:"results"`
	Server struct {
		URL string `toml:"url"`
	} `toml:"server"`
	Browser struct {
		Headless    bool `toml:"headless"`
		TimeoutSecs int  `toml:"timeout_seconds"`
	} `toml:"browser"`
}

var (
	globalConfig     *TestConfig
	globalConfigOnce sync.Once
	resultsDir       string
	resultsDirOnce   sync.Once
	urlMu            sync.RWMutex
	activeURL        string
)

func LoadTestConfig() *TestConfig {
	globalConfigOnce.Do(func() {
		globalConfig = &TestConfig{}
		globalConfig.Results.Dir = "tests/results"
		globalConfig.Server.URL = "http://localhost:4241"
		globalConfig.Browser.Headless = true
		globalConfig.Browser.TimeoutSecs = 30

		for _, path := range []string{
			"test_config.toml",
			filepath.Join(FindProjectRoot(), "tests", "ui", "test_config.toml"),
		} {
			data, err := os.ReadFile(path)
			if err != nil {
				continue
			}
			if err := toml.Unmarshal(data, globalConfig); err == nil {
				return
			}
		}
	})
	return globalConfig
}

// FindProjectRoot walks up from the working directory to the go.mod.
func FindProjectRoot() string {
	dir, err := os.Getwd()
	if err != nil {
		return "."
	}
	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "."
		}
		dir = parent
	}
}

// GetResultsDir returns a per-run directory for screenshots and logs.
func GetResultsDir() string {
	resultsDirOnce.Do(func() {
		base := LoadTestConfig().Results.Dir
		if !filepath.IsAbs(base) {
			base = filepath.Join(FindProjectRoot(), base)
		}
		resultsDir = filepath.Join(base, time.Now().Format("2006-01-02-15-04-05"))
		os.MkdirAll(resultsDir, 0755)
	})
	return resultsDir
}

func GetScreenshotDir(subdir string) string {
	dir := filepath.Join(GetResultsDir(), subdir)
	os.MkdirAll(dir, 0755)
	return dir
}

// SetTestURL records the URL of a dashboard started by the suite.
func SetTestURL(url string) {
	urlMu.Lock()
	defer urlMu.Unlock()
	activeURL = url
}

// GetTestURL resolves the dashboard URL: env override, started container, config.
func GetTestURL() string {
	if url := os.Getenv(TestURLEnv); url != "" {
		return url
	}
	urlMu.RLock()
	defer urlMu.RUnlock()
	if activeURL != "" {
		return activeURL
	}
	return LoadTestConfig().Server.URL
}

func writeFile(path string, data []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}
