// Package report renders a comparison as a console table, a summary, a pivot
// CSV and a two-panel bar chart.
package report

import (
	"errors"
	"fmt"
	"io"
	"os"

	"crossbench/internal/benchmark"
	"crossbench/internal/telemetry"
)

// Reporter writes the comparison artefacts and prints the report.
type Reporter struct {
	out       io.Writer
	tablePath string
	chartPath string
}

func New(out io.Writer, tablePath, chartPath string) *Reporter {
	if out == nil {
		out = io.Discard
	}
	return &Reporter{out: out, tablePath: tablePath, chartPath: chartPath}
}

// Report overwrites the pivot table and chart, then prints the detailed table
// and the overall summary. A comparison without common operations produces no
// chart, and any chart left from an earlier comparison is removed.
func (r *Reporter) Report(c *benchmark.Comparison) error {
	if err := WritePivot(r.tablePath, c); err != nil {
		return err
	}

	if err := WriteChart(r.chartPath, c); err != nil {
		if !errors.Is(err, ErrNothingToPlot) {
			return err
		}
		telemetry.LogInfo("skipping chart", "reason", err.Error(), "path", r.chartPath)
		if err := os.Remove(r.chartPath); err != nil && !errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("failed to remove stale chart %s: %w", r.chartPath, err)
		}
	}

	fmt.Fprintln(r.out, "\nDetailed Performance Comparison:")
	fmt.Fprintln(r.out, RenderTable(c))
	WriteSummary(r.out, c)
	return nil
}

// TablePath is where the pivot table is written.
func (r *Reporter) TablePath() string { return r.tablePath }

// ChartPath is where the chart is written.
func (r *Reporter) ChartPath() string { return r.chartPath }
