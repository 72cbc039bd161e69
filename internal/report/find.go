package report

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"time"

	"github.com/bobmcallan/sharedash/internal/models"
)

var (
	// ErrNoReportDir is returned when the reports directory does not exist.
	ErrNoReportDir = errors.New("reports directory not found")
	// ErrNoReports is returned when the reports directory holds no report files.
	ErrNoReports = errors.New("no classification report files found")
)

var reportNameRe = regexp.MustCompile(`^Klassifikationsreport_(\d{8}_\d{6})\.txt$`)

const reportTimeLayout = "20060102_150405"

// FindLatest returns the report in dir with the most recent filename timestamp.
func FindLatest(dir string) (models.ReportFile, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return models.ReportFile{}, ErrNoReportDir
		}
		return models.ReportFile{}, fmt.Errorf("read reports dir: %w", err)
	}

	var latest models.ReportFile
	found := false
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		m := reportNameRe.FindStringSubmatch(e.Name())
		if m == nil {
			continue
		}
		ts, err := time.Parse(reportTimeLayout, m[1])
		if err != nil {
			continue
		}
		if !found || !ts.Before(latest.Timestamp) {
			latest = models.ReportFile{
				Name:      e.Name(),
				Path:      filepath.Join(dir, e.Name()),
				Timestamp: ts,
			}
			found = true
		}
	}

	if !found {
		return models.ReportFile{}, ErrNoReports
	}
	return latest, nil
}
