package render

import (
	"fmt"
	"io"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/text"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"
	"gonum.org/v1/plot/vg/vgsvg"

	"github.com/iafilius/benchplot/src/figure"
)

// gonumDPI maps figure pixels to vg lengths: 1000px is 10in.
const gonumDPI = 100

// Gonum renders both charts onto one gonum/plot canvas using plot.Align.
type Gonum struct{}

func (g *Gonum) Name() string      { return "gonum" }
func (g *Gonum) Formats() []Format { return []Format{PNG, SVG} }

func px(n int) vg.Length { return vg.Length(n) * vg.Inch / gonumDPI }

func (g *Gonum) Render(fig figure.Figure, format Format, w io.Writer) error {
	if err := CheckFormat(g, format); err != nil {
		return err
	}
	_, _, captionH := chartHeights(fig)
	top, bars, err := g.runtimePlot(fig.Runtime)
	if err != nil {
		return fmt.Errorf("runtime chart: %w", err)
	}
	bottom, err := g.speedupPlot(fig.Speedup)
	if err != nil {
		return fmt.Errorf("speedup chart: %w", err)
	}

	width, height := px(fig.Width), px(fig.Height)
	var c vg.CanvasSizer
	var png *vgimg.Canvas
	var svg *vgsvg.Canvas
	switch format {
	case SVG:
		svg = vgsvg.New(width, height)
		c = svg
	default:
		png = vgimg.NewWith(vgimg.UseWH(width, height), vgimg.UseDPI(gonumDPI))
		c = png
	}
	dc := draw.New(c)
	chartsArea := draw.Crop(dc, 0, 0, px(captionH), 0)
	tiles := draw.Tiles{
		Rows:      2,
		Cols:      1,
		PadX:      vg.Millimeter,
		PadY:      vg.Points(18),
		PadTop:    vg.Points(8),
		PadBottom: vg.Points(8),
		PadLeft:   vg.Points(8),
		PadRight:  vg.Points(12),
	}
	canvases := plot.Align([][]*plot.Plot{{top}, {bottom}}, tiles, chartsArea)
	sizeBars(bars, fig.Runtime, top.DataCanvas(canvases[0][0]))
	top.Draw(canvases[0][0])
	bottom.Draw(canvases[1][0])
	if captionH > 0 {
		sty := top.X.Label.TextStyle
		sty.XAlign = text.XLeft
		sty.YAlign = text.YCenter
		dc.FillText(sty, vg.Point{X: px(8), Y: px(captionH) / 2}, fig.Caption)
	}

	if svg != nil {
		if _, err := svg.WriteTo(w); err != nil {
			return fmt.Errorf("svg encode: %w", err)
		}
		return nil
	}
	if _, err := (vgimg.PngCanvas{Canvas: png}).WriteTo(w); err != nil {
		return fmt.Errorf("png encode: %w", err)
	}
	return nil
}

func plotTicks(ts []figure.Tick) plot.ConstantTicks {
	out := make(plot.ConstantTicks, len(ts))
	for i, t := range ts {
		out[i] = plot.Tick{Value: t.Value, Label: t.Label}
	}
	return out
}

func newPlot(title, xLabel, yLabel string) *plot.Plot {
	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = xLabel
	p.Y.Label.Text = yLabel
	grid := plotter.NewGrid()
	grid.Vertical.Dashes = []vg.Length{vg.Points(4), vg.Points(4)}
	grid.Horizontal.Dashes = []vg.Length{vg.Points(4), vg.Points(4)}
	p.Add(grid)
	return p
}

// provisionalBarWidth keeps every bar inside the X range until sizeBars runs,
// so the glyph boxes do not pad the data area.
const provisionalBarWidth = vg.Length(1)

// runtimePlot adds one plotter.BarChart per method. Bar centres come from the
// layout. gonum widths are canvas lengths, so the returned bars are sized by
// sizeBars once the data area is known. bars[i] belongs to the i-th non-empty
// series.
func (g *Gonum) runtimePlot(bc figure.BarChart) (*plot.Plot, []*plotter.BarChart, error) {
	p := newPlot(bc.Title, bc.XLabel, bc.YLabel)
	p.X.Min, p.X.Max = bc.X.Min, bc.X.Max
	p.Y.Min, p.Y.Max = bc.Y.Min, bc.Y.Max
	p.X.Tick.Marker = plotTicks(bc.XTicks)
	p.Y.Tick.Marker = plotTicks(bc.YTicks)
	p.Legend.Top = true
	p.Legend.Left = true

	var bars []*plotter.BarChart
	for i, s := range bc.Series {
		if len(s.Bars) == 0 {
			continue
		}
		values := make(plotter.Values, len(s.Bars))
		for j, b := range s.Bars {
			values[j] = b.Value
		}
		bar, err := plotter.NewBarChart(values, provisionalBarWidth)
		if err != nil {
			return nil, nil, fmt.Errorf("bars %s: %w", s.Name, err)
		}
		first := s.Bars[0]
		bar.XMin = first.X + first.Width/2
		bar.Color = seriesColor(i)
		bar.LineStyle.Width = vg.Length(0)
		p.Add(bar)
		p.Legend.Add(s.Name, bar)
		bars = append(bars, bar)
	}
	return p, bars, nil
}

// sizeBars converts each series' bar width from group units to a canvas
// length using the width of the aligned data area.
func sizeBars(bars []*plotter.BarChart, bc figure.BarChart, data draw.Canvas) {
	span := bc.X.Max - bc.X.Min
	if span <= 0 {
		return
	}
	unit := (data.Max.X - data.Min.X) / vg.Length(span)
	i := 0
	for _, s := range bc.Series {
		if len(s.Bars) == 0 {
			continue
		}
		if i >= len(bars) {
			return
		}
		bars[i].Width = unit * vg.Length(s.Bars[0].Width)
		i++
	}
}

func (g *Gonum) speedupPlot(lc figure.LineChart) (*plot.Plot, error) {
	p := newPlot(lc.Title, lc.XLabel, lc.YLabel)
	p.X.Min, p.X.Max = lc.X.Min, lc.X.Max
	p.Y.Min, p.Y.Max = lc.Y.Min, lc.Y.Max
	p.X.Tick.Marker = plotTicks(lc.XTicks)
	p.Y.Tick.Marker = plotTicks(lc.YTicks)

	xys := make(plotter.XYs, len(lc.Points))
	for i, pt := range lc.Points {
		xys[i].X, xys[i].Y = pt.X, pt.Y
	}
	line, points, err := plotter.NewLinePoints(xys)
	if err != nil {
		return nil, fmt.Errorf("speedup line: %w", err)
	}
	line.Color = speedupColor
	line.Width = vg.Points(2)
	points.Shape = draw.CircleGlyph{}
	points.Color = speedupColor
	points.Radius = vg.Points(3)
	p.Add(line, points)

	labels := plotter.XYLabels{XYs: make(plotter.XYs, len(lc.Annotations)), Labels: make([]string, len(lc.Annotations))}
	offset := 0
	for i, a := range lc.Annotations {
		labels.XYs[i].X, labels.XYs[i].Y = a.X, a.Y
		labels.Labels[i] = a.Label
		offset = a.OffsetPx
	}
	lbl, err := plotter.NewLabels(labels)
	if err != nil {
		return nil, fmt.Errorf("speedup labels: %w", err)
	}
	for i := range lbl.TextStyle {
		lbl.TextStyle[i].XAlign = text.XCenter
		lbl.TextStyle[i].YAlign = text.YBottom
	}
	lbl.Offset = vg.Point{Y: px(offset)}
	p.Add(lbl)
	return p, nil
}
