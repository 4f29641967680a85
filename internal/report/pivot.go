package report

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"crossbench/internal/benchmark"
)

// Pivot lays the aggregates out one line per operation, with a column per
// (measure, label) pair. Labels are ordered alphabetically.
func Pivot(c *benchmark.Comparison) [][]string {
	labels := []string{c.LabelA, c.LabelB}
	sort.Strings(labels)

	means := make(map[string]map[string]benchmark.Aggregate, len(c.Rows))
	for _, a := range c.Aggregates {
		if means[a.Operation] == nil {
			means[a.Operation] = make(map[string]benchmark.Aggregate, 2)
		}
		means[a.Operation][a.Language] = a
	}

	records := [][]string{
		{"", "execution_time", "execution_time", "memory_used", "memory_used"},
		{"language", labels[0], labels[1], labels[0], labels[1]},
		{"operation", "", "", "", ""},
	}
	for _, r := range c.Rows {
		byLabel := means[r.Operation]
		records = append(records, []string{
			r.Operation,
			formatMean(byLabel[labels[0]].ExecutionTime),
			formatMean(byLabel[labels[1]].ExecutionTime),
			formatMean(byLabel[labels[0]].MemoryUsed),
			formatMean(byLabel[labels[1]].MemoryUsed),
		})
	}
	return records
}

func formatMean(v float64) string {
	s := strconv.FormatFloat(v, 'f', -1, 64)
	if strings.Contains(s, ".") {
		return s
	}
	return s + ".0"
}

// WritePivot writes Pivot to path, replacing any previous file.
func WritePivot(path string, c *benchmark.Comparison) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.WriteAll(Pivot(c)); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return f.Close()
}
