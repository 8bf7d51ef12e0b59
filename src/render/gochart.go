package render

import (
	"bytes"
	"fmt"
	"image"
	"image/png"
	"io"

	chart "github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"github.com/iafilius/benchplot/src/figure"
)

// GoChart renders each chart with go-chart and stacks the two PNGs on one canvas.
type GoChart struct {
	// trace, when set, is called once per drawn primitive ("bar", "label").
	trace func(kind string)
}

func (g *GoChart) Name() string      { return "gochart" }
func (g *GoChart) Formats() []Format { return []Format{PNG} }

func (g *GoChart) Render(fig figure.Figure, format Format, w io.Writer) error {
	if err := CheckFormat(g, format); err != nil {
		return err
	}
	topH, bottomH, captionH := chartHeights(fig)
	top, err := g.renderChart(g.runtimeChart(fig.Runtime, fig.Width, topH))
	if err != nil {
		return fmt.Errorf("runtime chart: %w", err)
	}
	bottom, err := g.renderChart(g.speedupChart(fig.Speedup, fig.Width, bottomH))
	if err != nil {
		return fmt.Errorf("speedup chart: %w", err)
	}
	img := stackVertical(fig.Width, []image.Image{top, bottom})
	if captionH > 0 {
		img = appendCaption(img, fig.Caption, captionH)
	}
	if err := png.Encode(w, img); err != nil {
		return fmt.Errorf("png encode: %w", err)
	}
	return nil
}

func (g *GoChart) renderChart(ch chart.Chart) (image.Image, error) {
	var buf bytes.Buffer
	if err := ch.Render(chart.PNG, &buf); err != nil {
		return nil, err
	}
	img, err := png.Decode(&buf)
	if err != nil {
		return nil, fmt.Errorf("decode: %w", err)
	}
	return img, nil
}

func toDrawing(c interface{ RGBA() (r, g, b, a uint32) }) drawing.Color {
	r, gg, b, a := c.RGBA()
	return drawing.Color{R: uint8(r >> 8), G: uint8(gg >> 8), B: uint8(b >> 8), A: uint8(a >> 8)}
}

func chartTicks(ts []figure.Tick) []chart.Tick {
	out := make([]chart.Tick, len(ts))
	for i, t := range ts {
		out[i] = chart.Tick{Value: t.Value, Label: t.Label}
	}
	return out
}

var gridStyle = chart.Style{
	StrokeColor:     drawing.Color{R: 0xcc, G: 0xcc, B: 0xcc, A: 0xb3},
	StrokeWidth:     1,
	StrokeDashArray: []float64{5, 5},
}

func chartPadding() chart.Style {
	return chart.Style{Padding: chart.Box{Top: 40, Left: 16, Right: 16, Bottom: 16}}
}

func (g *GoChart) runtimeChart(bc figure.BarChart, width, height int) chart.Chart {
	series := make([]chart.Series, 0, len(bc.Series))
	for i, s := range bc.Series {
		col := toDrawing(seriesColor(i))
		series = append(series, barSeries{
			Name:  s.Name,
			Bars:  s.Bars,
			Style: chart.Style{FillColor: col, StrokeColor: col, StrokeWidth: 1},
			trace: g.trace,
		})
	}
	ch := chart.Chart{
		Title:      bc.Title,
		Width:      width,
		Height:     height,
		Background: chartPadding(),
		XAxis: chart.XAxis{
			Name:           bc.XLabel,
			Ticks:          chartTicks(bc.XTicks),
			Range:          &chart.ContinuousRange{Min: bc.X.Min, Max: bc.X.Max},
			GridMajorStyle: gridStyle,
		},
		YAxis: chart.YAxis{
			Name:           bc.YLabel,
			Ticks:          chartTicks(bc.YTicks),
			Range:          &chart.ContinuousRange{Min: bc.Y.Min, Max: bc.Y.Max},
			GridMajorStyle: gridStyle,
		},
		Series: series,
	}
	ch.Elements = []chart.Renderable{chart.Legend(&ch)}
	return ch
}

func (g *GoChart) speedupChart(lc figure.LineChart, width, height int) chart.Chart {
	xs := make([]float64, len(lc.Points))
	ys := make([]float64, len(lc.Points))
	for i, p := range lc.Points {
		xs[i], ys[i] = p.X, p.Y
	}
	col := toDrawing(speedupColor)
	return chart.Chart{
		Title:      lc.Title,
		Width:      width,
		Height:     height,
		Background: chartPadding(),
		XAxis: chart.XAxis{
			Name:           lc.XLabel,
			Ticks:          chartTicks(lc.XTicks),
			Range:          &chart.ContinuousRange{Min: lc.X.Min, Max: lc.X.Max},
			GridMajorStyle: gridStyle,
		},
		YAxis: chart.YAxis{
			Name:           lc.YLabel,
			Ticks:          chartTicks(lc.YTicks),
			Range:          &chart.ContinuousRange{Min: lc.Y.Min, Max: lc.Y.Max},
			GridMajorStyle: gridStyle,
		},
		Series: []chart.Series{
			chart.ContinuousSeries{
				Name:    "Speedup",
				XValues: xs,
				YValues: ys,
				Style: chart.Style{
					StrokeColor: col,
					StrokeWidth: 2,
					DotColor:    col,
					DotWidth:    5,
				},
			},
			labelSeries{
				Name:   "Speedup labels",
				Labels: lc.Annotations,
				Style:  chart.Style{FontSize: 10, FontColor: chart.ColorBlack},
				trace:  g.trace,
			},
		},
	}
}
