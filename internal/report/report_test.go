package report

import (
	"bytes"
	"encoding/csv"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"crossbench/internal/benchmark"
)

func sampleComparison(t *testing.T) *benchmark.Comparison {
	t.Helper()
	goRun := benchmark.Run{Language: "Go", Samples: []benchmark.Sample{
		{Operation: "Query", Language: "Go", ExecutionTime: 1.0, MemoryUsed: 50},
		{Operation: "Extract", Language: "Go", ExecutionTime: 0.5, MemoryUsed: 100},
	}}
	pyRun := benchmark.Run{Language: "Python", Samples: []benchmark.Sample{
		{Operation: "Query", Language: "Python", ExecutionTime: 2.0, MemoryUsed: 100},
		{Operation: "Extract", Language: "Python", ExecutionTime: 0.5, MemoryUsed: 50},
	}}
	c, err := benchmark.Compare(goRun, pyRun)
	require.NoError(t, err)
	return c
}

func TestRenderTable(t *testing.T) {
	out := RenderTable(sampleComparison(t))

	for _, header := range Headers("Go", "Python") {
		assert.Contains(t, out, header)
	}
	assert.Contains(t, out, "Go Time (s)")
	assert.Contains(t, out, "Python Memory (KB)")
	assert.Contains(t, out, "1.000")
	assert.Contains(t, out, "100.00")

	extract := strings.Index(out, "Extract")
	query := strings.Index(out, "Query")
	overall := strings.Index(out, "Overall")
	require.True(t, extract > 0 && query > 0 && overall > 0)
	assert.Less(t, extract, query)
	assert.Less(t, query, overall, "Overall row comes last")
}

func TestCells(t *testing.T) {
	row := benchmark.Row{
		Operation: "X", TimeA: 2, TimeB: 1, SpeedVerdict: "Python is 2.0× faster",
		MemoryA: 100, MemoryB: 50, MemoryVerdict: "Python uses 50.0% less",
	}
	assert.Equal(t, []string{"X", "2.000", "1.000", "Python is 2.0× faster", "100.00", "50.00", "Python uses 50.0% less"}, Cells(row))
}

func TestWriteSummary(t *testing.T) {
	var buf bytes.Buffer
	WriteSummary(&buf, sampleComparison(t))

	assert.Equal(t, "\nOverall Performance Summary:\n"+
		"Speed: Go is 1.7× faster\n"+
		"Memory: same memory usage\n", buf.String())
}

func TestPivot(t *testing.T) {
	records := Pivot(sampleComparison(t))

	assert.Equal(t, [][]string{
		{"", "execution_time", "execution_time", "memory_used", "memory_used"},
		{"language", "Go", "Python", "Go", "Python"},
		{"operation", "", "", "", ""},
		{"Extract", "0.5", "0.5", "100.0", "50.0"},
		{"Query", "1.0", "2.0", "50.0", "100.0"},
	}, records)
}

func TestPivot_LabelsSorted(t *testing.T) {
	c := sampleComparison(t)
	c.LabelA, c.LabelB = "Python", "Go"
	records := Pivot(c)
	assert.Equal(t, []string{"language", "Go", "Python", "Go", "Python"}, records[1])
}

func TestWritePivot(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out", "performance_comparison.csv")
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte("stale\n"), 0644))

	require.NoError(t, WritePivot(path, sampleComparison(t)))

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()
	r := csv.NewReader(f)
	r.FieldsPerRecord = -1
	records, err := r.ReadAll()
	require.NoError(t, err)
	assert.Len(t, records, 5)
	assert.Equal(t, "Query", records[4][0])
}

func TestWriteChart(t *testing.T) {
	path := filepath.Join(t.TempDir(), "performance_comparison.png")
	require.NoError(t, WriteChart(path, sampleComparison(t)))

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()
	cfg, err := png.DecodeConfig(f)
	require.NoError(t, err)
	assert.Greater(t, cfg.Width, cfg.Height, "panels sit side by side")
}

func TestPanels(t *testing.T) {
	timePlot, memPlot, err := Panels(sampleComparison(t))
	require.NoError(t, err)
	assert.Equal(t, TimeTitle, timePlot.Title.Text)
	assert.Equal(t, MemoryTitle, memPlot.Title.Text)

	_, _, err = Panels(&benchmark.Comparison{LabelA: "Go", LabelB: "Python"})
	assert.ErrorIs(t, err, ErrNothingToPlot)
}

func TestReporter_Report(t *testing.T) {
	dir := t.TempDir()
	var buf bytes.Buffer
	r := New(&buf, filepath.Join(dir, "cmp.csv"), filepath.Join(dir, "cmp.png"))

	require.NoError(t, r.Report(sampleComparison(t)))

	assert.FileExists(t, r.TablePath())
	assert.FileExists(t, r.ChartPath())
	out := buf.String()
	assert.True(t, strings.HasPrefix(out, "\nDetailed Performance Comparison:\n"))
	assert.Contains(t, out, "Overall Performance Summary:")
}

func TestReporter_ReportWithoutCommonOperations(t *testing.T) {
	dir := t.TempDir()
	c, err := benchmark.Compare(
		benchmark.Run{Language: "Go", Samples: []benchmark.Sample{{Operation: "A", Language: "Go", ExecutionTime: 1}}},
		benchmark.Run{Language: "Python", Samples: []benchmark.Sample{{Operation: "B", Language: "Python", ExecutionTime: 1}}},
	)
	require.NoError(t, err)

	chart := filepath.Join(dir, "cmp.png")
	require.NoError(t, os.WriteFile(chart, []byte("stale"), 0644))

	r := New(nil, filepath.Join(dir, "cmp.csv"), chart)
	require.NoError(t, r.Report(c))
	assert.FileExists(t, r.TablePath())
	assert.NoFileExists(t, chart)
}

func TestReporter_UnwritablePath(t *testing.T) {
	dir := t.TempDir()
	blocker := filepath.Join(dir, "file")
	require.NoError(t, os.WriteFile(blocker, nil, 0644))

	r := New(nil, filepath.Join(blocker, "cmp.csv"), filepath.Join(dir, "cmp.png"))
	assert.Error(t, r.Report(sampleComparison(t)))
}
