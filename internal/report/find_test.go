package report

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func touch(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestFindLatest_PicksNewestTimestamp(t *testing.T) {
	dir := t.TempDir()
	touch(t, dir, "Klassifikationsreport_20240101_120000.txt", "old")
	newest := touch(t, dir, "Klassifikationsreport_20240315_080000.txt", "new")
	touch(t, dir, "Klassifikationsreport_20240301_235959.txt", "mid")
	touch(t, dir, "Klassifikationsreport_20249999_000000.txt", "bad date")
	touch(t, dir, "Klassifikationsreport_20250101_000000.txt.bak", "wrong ext")
	touch(t, dir, "other_20260101_000000.txt", "wrong prefix")

	f, err := FindLatest(dir)
	require.NoError(t, err)
	assert.Equal(t, "Klassifikationsreport_20240315_080000.txt", f.Name)
	assert.Equal(t, newest, f.Path)
	assert.Equal(t, time.Date(2024, 3, 15, 8, 0, 0, 0, time.UTC), f.Timestamp)
}

func TestFindLatest_MissingDir(t *testing.T) {
	_, err := FindLatest(filepath.Join(t.TempDir(), "reports"))
	assert.ErrorIs(t, err, ErrNoReportDir)
}

func TestFindLatest_NoCandidates(t *testing.T) {
	dir := t.TempDir()
	touch(t, dir, "readme.txt", "x")
	require.NoError(t, os.Mkdir(filepath.Join(dir, "Klassifikationsreport_20240101_000000.txt"), 0755))

	_, err := FindLatest(dir)
	assert.ErrorIs(t, err, ErrNoReports)
}
