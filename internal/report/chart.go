package report

import (
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/text"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"

	"crossbench/internal/benchmark"
)

// Chart panel titles.
const (
	TimeTitle   = "Execution Time Comparison (seconds)"
	MemoryTitle = "Memory Usage Comparison (KB)"
)

// ErrNothingToPlot is returned when the comparison has no operations.
var ErrNothingToPlot = errors.New("no operations to plot")

const (
	chartWidth  = 15 * vg.Inch
	chartHeight = 6 * vg.Inch
	barWidth    = 12 * vg.Point
)

// Panels builds the time and memory panels, one bar group per operation and
// one colour per label.
func Panels(c *benchmark.Comparison) (*plot.Plot, *plot.Plot, error) {
	if len(c.Rows) == 0 {
		return nil, nil, ErrNothingToPlot
	}

	ops := make([]string, len(c.Rows))
	timeA := make(plotter.Values, len(c.Rows))
	timeB := make(plotter.Values, len(c.Rows))
	memA := make(plotter.Values, len(c.Rows))
	memB := make(plotter.Values, len(c.Rows))
	for i, r := range c.Rows {
		ops[i] = r.Operation
		timeA[i], timeB[i] = r.TimeA, r.TimeB
		memA[i], memB[i] = r.MemoryA, r.MemoryB
	}

	timePlot, err := groupedBars(TimeTitle, "Seconds", ops, c.LabelA, c.LabelB, timeA, timeB)
	if err != nil {
		return nil, nil, err
	}
	memPlot, err := groupedBars(MemoryTitle, "Kilobytes", ops, c.LabelA, c.LabelB, memA, memB)
	if err != nil {
		return nil, nil, err
	}
	return timePlot, memPlot, nil
}

func groupedBars(title, ylabel string, ops []string, labelA, labelB string, a, b plotter.Values) (*plot.Plot, error) {
	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = "operation"
	p.Y.Label.Text = ylabel
	p.Y.Min = 0
	p.Legend.Top = true

	for i, series := range []struct {
		label  string
		values plotter.Values
	}{{labelA, a}, {labelB, b}} {
		bars, err := plotter.NewBarChart(series.values, barWidth)
		if err != nil {
			return nil, fmt.Errorf("failed to build %s bars: %w", series.label, err)
		}
		bars.LineStyle.Width = vg.Length(0)
		bars.Color = plotutil.Color(i)
		bars.Offset = vg.Length(2*i-1) * barWidth / 2
		p.Add(bars)
		p.Legend.Add(series.label, bars)
	}

	p.NominalX(ops...)
	p.X.Tick.Label.Rotation = math.Pi / 4
	p.X.Tick.Label.XAlign = text.XRight
	p.X.Tick.Label.YAlign = text.YCenter
	return p, nil
}

// WriteChart renders both panels side by side into a PNG at path, replacing
// any previous file.
func WriteChart(path string, c *benchmark.Comparison) error {
	timePlot, memPlot, err := Panels(c)
	if err != nil {
		return err
	}

	img := vgimg.New(chartWidth, chartHeight)
	dc := draw.New(img)
	tiles := draw.Tiles{
		Rows:      1,
		Cols:      2,
		PadX:      vg.Centimeter,
		PadTop:    vg.Millimeter * 5,
		PadBottom: vg.Millimeter * 5,
		PadLeft:   vg.Millimeter * 5,
		PadRight:  vg.Millimeter * 5,
	}
	canvases := plot.Align([][]*plot.Plot{{timePlot, memPlot}}, tiles, dc)
	timePlot.Draw(canvases[0][0])
	memPlot.Draw(canvases[0][1])

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

	png := vgimg.PngCanvas{Canvas: img}
	if _, err := png.WriteTo(f); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return f.Close()
}
