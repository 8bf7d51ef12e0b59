package render

import (
	"errors"

	chart "github.com/wcharczuk/go-chart/v2"

	"github.com/iafilius/benchplot/src/figure"
)

// barSeries draws one rectangle per bar. go-chart has no grouped bar chart, so
// the group offsets come from the figure layout and each method is a series.
type barSeries struct {
	Name  string
	Bars  []figure.Bar
	Style chart.Style
	trace func(string)
}

func (bs barSeries) GetName() string           { return bs.Name }
func (bs barSeries) GetYAxis() chart.YAxisType { return chart.YAxisPrimary }
func (bs barSeries) GetStyle() chart.Style     { return bs.Style }
func (bs barSeries) Validate() error {
	for _, b := range bs.Bars {
		if b.Width <= 0 {
			return errors.New("bar series: bar width must be positive")
		}
	}
	return nil
}

func (bs barSeries) Render(r chart.Renderer, canvasBox chart.Box, xrange, yrange chart.Range, defaults chart.Style) {
	style := bs.Style.InheritFrom(defaults)
	for _, b := range bs.Bars {
		left := canvasBox.Left + xrange.Translate(b.X)
		right := canvasBox.Left + xrange.Translate(b.X+b.Width)
		top := canvasBox.Bottom - yrange.Translate(b.Value)
		if right <= left {
			right = left + 1
		}
		chart.Draw.Box(r, chart.Box{Top: top, Left: left, Right: right, Bottom: canvasBox.Bottom}, style)
		if bs.trace != nil {
			bs.trace("bar")
		}
	}
}

// labelSeries writes each annotation centred above its point.
type labelSeries struct {
	Name   string
	Labels []figure.Annotation
	Style  chart.Style
	trace  func(string)
}

func (ls labelSeries) GetName() string           { return ls.Name }
func (ls labelSeries) GetStyle() chart.Style      { return ls.Style }
func (ls labelSeries) GetYAxis() chart.YAxisType { return chart.YAxisPrimary }
func (ls labelSeries) Validate() error           { return nil }

func (ls labelSeries) Render(r chart.Renderer, canvasBox chart.Box, xrange, yrange chart.Range, defaults chart.Style) {
	style := ls.Style.InheritFrom(defaults)
	style.GetTextOptions().WriteToRenderer(r)
	defer r.ResetStyle()
	for _, a := range ls.Labels {
		x := canvasBox.Left + xrange.Translate(a.X)
		y := canvasBox.Bottom - yrange.Translate(a.Y) - a.OffsetPx
		tb := r.MeasureText(a.Label)
		r.Text(a.Label, x-tb.Width()/2, y)
		if ls.trace != nil {
			ls.trace("label")
		}
	}
}
