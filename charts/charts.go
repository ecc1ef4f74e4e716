// Package charts renders evaluator output as PNG charts.
package charts

import (
	"bytes"
	"context"
	"fmt"
	"io"

	"github.com/jbeshir/expertise-predictor/data"
	"github.com/jbeshir/expertise-predictor/evaluator"
	"github.com/pkg/errors"
	chart "github.com/wcharczuk/go-chart"
	"github.com/wcharczuk/go-chart/drawing"
)

const (
	DefaultWidth  = 800
	DefaultHeight = 400
)

var ErrNoData = errors.New("charts: nothing to plot")

// Incorrect stretches are drawn in this fully transparent colour, leaving a
// gap in the row.
var transparent = drawing.Color{R: 0, G: 0, B: 255, A: 0}

type FileStore interface {
	Save(ctx context.Context, path string, content []byte) error
}

// Size is the pixel size charts are rendered at.
type Size struct {
	Width  int `yaml:"width"`
	Height int `yaml:"height"`
}

func DefaultSize() Size {
	return Size{Width: DefaultWidth, Height: DefaultHeight}
}

func title(session *data.Session, extra string) string {
	return fmt.Sprintf("%s (%s, %s%s)", session.ModelID, session.SampleClass(), session.TaskName, extra)
}

func unitRange() *chart.ContinuousRange {
	return &chart.ContinuousRange{Min: 0, Max: 1}
}

// AccuracyChart plots one line per window size of the share of each window
// matching the session's expected class over relative modeling time.
func AccuracyChart(session *data.Session, curves []evaluator.Curve, size Size) (*chart.Chart, error) {
	var series []chart.Series
	for i, c := range curves {
		if len(c.Points) == 0 {
			continue
		}
		xs := make([]float64, len(c.Points))
		ys := make([]float64, len(c.Points))
		for j, p := range c.Points {
			xs[j] = p.Time
			ys[j] = p.Ratio
		}
		series = append(series, chart.ContinuousSeries{
			Name:    fmt.Sprintf("Window size %d", c.WindowSize),
			XValues: xs,
			YValues: ys,
			Style: chart.Style{
				Show:        true,
				StrokeColor: chart.GetAlternateColor(i),
				StrokeWidth: 3,
			},
		})
	}
	if len(series) == 0 {
		return nil, ErrNoData
	}

	graph := &chart.Chart{
		Title:      title(session, ""),
		TitleStyle: chart.StyleShow(),
		Width:      size.Width,
		Height:     size.Height,
		XAxis: chart.XAxis{
			Name:      "Relative time (% modeling session)",
			NameStyle: chart.StyleShow(),
			Style:     chart.StyleShow(),
			Range:     unitRange(),
		},
		YAxis: chart.YAxis{
			Name:      "Correctness ratio",
			NameStyle: chart.StyleShow(),
			Style:     chart.StyleShow(),
			Range:     unitRange(),
		},
		Series: series,
	}
	graph.Elements = []chart.Renderable{
		chart.Legend(graph),
	}

	return graph, nil
}

// CorrectnessChart lays each window size's intervals end to end along a
// relative time axis, one row per window size. Correct stretches are drawn in
// the window size's colour, incorrect ones are left transparent.
func CorrectnessChart(session *data.Session, intervals []evaluator.Interval, windowSizes []int, minSupport float64, size Size) (*chart.Chart, error) {
	if len(intervals) == 0 {
		return nil, ErrNoData
	}

	rows := len(windowSizes)
	ticks := make([]chart.Tick, 0, rows)
	for i, ws := range windowSizes {
		ticks = append(ticks, chart.Tick{Value: rowCenter(i), Label: fmt.Sprintf("ws = %d", ws)})
	}

	starts := make([]float64, rows)
	var series []chart.Series
	for _, iv := range intervals {
		if iv.WindowIndex < 0 || iv.WindowIndex >= rows {
			return nil, errors.Errorf("interval for window index %d outside %d rows", iv.WindowIndex, rows)
		}

		start := starts[iv.WindowIndex]
		end := start + iv.Duration
		starts[iv.WindowIndex] = end

		color := transparent
		if iv.SegmentCorrect() {
			color = chart.GetAlternateColor(iv.WindowIndex)
		}
		y := rowCenter(iv.WindowIndex)
		series = append(series, chart.ContinuousSeries{
			Name:    fmt.Sprintf("%d-%d", iv.WindowSize, iv.Index),
			XValues: []float64{start, end},
			YValues: []float64{y, y},
			Style: chart.Style{
				Show:        true,
				StrokeColor: color,
				StrokeWidth: barWidth(size, rows),
			},
		})
	}

	graph := &chart.Chart{
		Title:      title(session, fmt.Sprintf(", min support = %g", minSupport)),
		TitleStyle: chart.StyleShow(),
		Width:      size.Width,
		Height:     size.Height,
		XAxis: chart.XAxis{
			Name:      "Relative time (% modeling session)",
			NameStyle: chart.StyleShow(),
			Style:     chart.StyleShow(),
			Range:     unitRange(),
		},
		YAxis: chart.YAxis{
			Style: chart.StyleShow(),
			Range: &chart.ContinuousRange{Min: 0, Max: float64(rows)},
			Ticks: ticks,
		},
		Series: series,
	}

	return graph, nil
}

func rowCenter(i int) float64 {
	return float64(i) + 0.5
}

// barWidth makes each row's stroke fill about half its share of the plot.
func barWidth(size Size, rows int) float64 {
	if rows == 0 {
		return 1
	}
	return float64(size.Height) / float64(rows) / 3
}

func WritePNG(w io.Writer, graph *chart.Chart) error {
	if err := graph.Render(chart.PNG, w); err != nil {
		return errors.Wrap(err, "couldn't render chart")
	}
	return nil
}

// Export renders graph and saves it at path.
func Export(ctx context.Context, fs FileStore, path string, graph *chart.Chart) error {
	var buf bytes.Buffer
	if err := WritePNG(&buf, graph); err != nil {
		return err
	}
	return fs.Save(ctx, path, buf.Bytes())
}
