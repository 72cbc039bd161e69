package prices

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolve_PrefixBeforeUnderscore(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "AAPL_US.csv", "Date,Close\n")

	idx, err := BuildIndex(dir, false)
	require.NoError(t, err)

	got, ok := idx.Resolve("AAPL")
	assert.True(t, ok)
	assert.Equal(t, path, got)

	got, ok = idx.Resolve("aapl")
	assert.True(t, ok)
	assert.Equal(t, path, got)

	_, ok = idx.Resolve("ZZZZ")
	assert.False(t, ok)
}

func TestResolve_SeparatorVariants(t *testing.T) {
	dir := t.TempDir()
	brk := writeFile(t, dir, "BRK_A.csv", "Date,Close\n")
	bf := writeFile(t, dir, "BF.B_US.csv", "Date,Close\n")

	idx, err := BuildIndex(dir, false)
	require.NoError(t, err)

	got, ok := idx.Resolve("BRK-A")
	assert.True(t, ok, "hyphen should map to underscore stem")
	assert.Equal(t, brk, got)

	got, ok = idx.Resolve("BF-B")
	assert.True(t, ok, "dot in file prefix should register hyphen variant")
	assert.Equal(t, bf, got)

	got, ok = idx.Resolve("BFB")
	assert.True(t, ok)
	assert.Equal(t, bf, got)
}

func TestBuildIndex_FirstRegistrationWins(t *testing.T) {
	dir := t.TempDir()
	first := writeFile(t, dir, "AAPL_NASDAQ.csv", "Date,Close\n")
	writeFile(t, dir, "AAPL_US.csv", "Date,Close\n")

	idx, err := BuildIndex(dir, false)
	require.NoError(t, err)

	got, _ := idx.Resolve("AAPL")
	assert.Equal(t, first, got)
	assert.Equal(t, 2, idx.Files())
}

func TestBuildIndex_CaseInsensitiveExtensionAndSkipsOthers(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "MSFT.CSV", "Date,Close\n")
	writeFile(t, dir, "notes.txt", "x")
	require.NoError(t, os.Mkdir(filepath.Join(dir, "sub.csv"), 0755))

	idx, err := BuildIndex(dir, false)
	require.NoError(t, err)

	_, ok := idx.Resolve("msft")
	assert.True(t, ok)
	_, ok = idx.Resolve("notes")
	assert.False(t, ok)
	assert.Equal(t, 1, idx.Files())
}

func TestBuildIndex_ParquetRegisteredAfterCSV(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "AAPL.parquet", "")
	csvPath := writeFile(t, dir, "AAPL_US.csv", "Date,Close\n")
	pqOnly := writeFile(t, dir, "TSLA.parquet", "")

	idx, err := BuildIndex(dir, true)
	require.NoError(t, err)

	got, _ := idx.Resolve("AAPL")
	assert.Equal(t, csvPath, got)
	got, ok := idx.Resolve("TSLA")
	assert.True(t, ok)
	assert.Equal(t, pqOnly, got)

	idx, err = BuildIndex(dir, false)
	require.NoError(t, err)
	_, ok = idx.Resolve("TSLA")
	assert.False(t, ok)
}

func TestBuildIndex_MissingDirIsEmpty(t *testing.T) {
	idx, err := BuildIndex(filepath.Join(t.TempDir(), "nope"), false)
	require.NoError(t, err)
	assert.Equal(t, 0, idx.Files())
	_, ok := idx.Resolve("AAPL")
	assert.False(t, ok)
}
