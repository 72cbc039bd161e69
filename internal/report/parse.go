// Package report parses the plain-text classification reports written by the training pipeline.
package report

import (
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/bobmcallan/sharedash/internal/models"
)

var (
	tableHeaderRe = regexp.MustCompile(`\bprecision\s+recall\s+f1-score\s+support\b`)

	scalarPatterns = []struct {
		name string
		re   *regexp.Regexp
	}{
		{models.MetricROCAUC, regexp.MustCompile(`ROC-AUC:\s*([0-9]*\.?[0-9]+)`)},
		{models.MetricAccuracy, regexp.MustCompile(`Accuracy\s*:\s*([0-9]*\.?[0-9]+)`)},
		{models.MetricPrecision, regexp.MustCompile(`Precision:\s*([0-9]*\.?[0-9]+)`)},
		{models.MetricRecall, regexp.MustCompile(`Recall\s*: *([0-9]*\.?[0-9]+)`)},
	}
)

const (
	tableEndPrefix       = "ROC-AUC:"
	importanceHeader     = "Feature Importances"
	importanceStopPrefix = "dtype:"
)

// Parse extracts the class metrics table, the scalar metrics and the feature
// importances from report text. Sections that are absent are left empty.
func Parse(text string) models.ReportMetrics {
	lines := splitLines(text)
	return models.ReportMetrics{
		ClassTable:         parseClassTable(lines),
		Scalars:            parseScalars(text),
		FeatureImportances: parseImportances(lines),
	}
}

func splitLines(text string) []string {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.ReplaceAll(text, "\r", "\n")
	lines := strings.Split(text, "\n")
	if n := len(lines); n > 0 && lines[n-1] == "" {
		lines = lines[:n-1]
	}
	return lines
}

// parseClassTable reads the block from the metrics header up to the ROC-AUC line.
func parseClassTable(lines []string) *models.ClassTable {
	start := -1
	for i, ln := range lines {
		if tableHeaderRe.MatchString(ln) {
			start = i
			break
		}
	}
	if start < 0 {
		return nil
	}

	var block []string
	for _, ln := range lines[start:] {
		if strings.HasPrefix(ln, tableEndPrefix) {
			break
		}
		block = append(block, ln)
	}
	return parseFixedWidth(block)
}

// parseFixedWidth splits a whitespace-aligned table into columns. A column is
// a run of character positions that is non-blank in at least one line; the
// first non-blank line holds the column names.
func parseFixedWidth(block []string) *models.ClassTable {
	var rows [][]rune
	width := 0
	for _, ln := range block {
		if strings.TrimSpace(ln) == "" {
			continue
		}
		r := []rune(strings.ReplaceAll(ln, "\t", " "))
		rows = append(rows, r)
		if len(r) > width {
			width = len(r)
		}
	}
	if len(rows) == 0 {
		return nil
	}

	used := make([]bool, width)
	for _, r := range rows {
		for i, c := range r {
			if c != ' ' {
				used[i] = true
			}
		}
	}

	type span struct{ start, end int }
	var spans []span
	for i := 0; i < width; {
		if !used[i] {
			i++
			continue
		}
		j := i
		for j < width && used[j] {
			j++
		}
		spans = append(spans, span{i, j})
		i = j
	}

	cells := func(r []rune) []string {
		out := make([]string, len(spans))
		for k, s := range spans {
			if s.start >= len(r) {
				continue
			}
			end := s.end
			if end > len(r) {
				end = len(r)
			}
			out[k] = strings.TrimSpace(string(r[s.start:end]))
		}
		return out
	}

	table := &models.ClassTable{Columns: columnNames(cells(rows[0]))}
	for _, r := range rows[1:] {
		row := cells(r)
		empty := true
		for _, c := range row {
			if c != "" {
				empty = false
				break
			}
		}
		if !empty {
			table.Rows = append(table.Rows, row)
		}
	}
	return table
}

// columnNames fills blank header cells with "Unnamed: <index>" and suffixes
// repeated names with ".1", ".2" and so on.
func columnNames(header []string) []string {
	names := make([]string, len(header))
	seen := make(map[string]int, len(header))
	for i, h := range header {
		if h == "" {
			h = "Unnamed: " + strconv.Itoa(i)
		}
		if n := seen[h]; n > 0 {
			seen[h] = n + 1
			h = h + "." + strconv.Itoa(n)
		} else {
			seen[h] = 1
		}
		names[i] = h
	}
	return names
}

// parseScalars returns the first match of each scalar metric, in a fixed order.
func parseScalars(text string) []models.ScalarMetric {
	var out []models.ScalarMetric
	for _, p := range scalarPatterns {
		m := p.re.FindStringSubmatch(text)
		if m == nil {
			continue
		}
		v, err := strconv.ParseFloat(m[1], 64)
		if err != nil {
			continue
		}
		out = append(out, models.ScalarMetric{Name: p.name, Value: v})
	}
	return out
}

// parseImportances reads "name ... count" lines following the first
// Feature Importances header until a blank or dtype line.
func parseImportances(lines []string) []models.FeatureImportance {
	start := -1
	for i, ln := range lines {
		if strings.Contains(ln, importanceHeader) {
			start = i
			break
		}
	}
	if start < 0 {
		return nil
	}

	var out []models.FeatureImportance
	for _, raw := range lines[start+1:] {
		ln := strings.TrimSpace(raw)
		if ln == "" || strings.HasPrefix(ln, importanceStopPrefix) {
			break
		}
		parts := strings.Fields(ln)
		if len(parts) < 2 || !isDigits(parts[len(parts)-1]) {
			continue
		}
		n, err := strconv.Atoi(parts[len(parts)-1])
		if err != nil {
			continue
		}
		out = append(out, models.FeatureImportance{
			Feature:    strings.Join(parts[:len(parts)-1], " "),
			Importance: n,
		})
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Importance > out[j].Importance
	})
	return out
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, c := range s {
		if c < '0' || c > '9' {
			return false
		}
	}
	return true
}
