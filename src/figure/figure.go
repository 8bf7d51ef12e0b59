// Package figure lays out the two benchmark charts independently of any chart
// library. Backends in package render draw a Figure; they do not decide where
// bars, ticks or labels go.
package figure

import (
	"math"
	"strconv"

	"github.com/iafilius/benchplot/src/bench"
)

// Fixed chart texts.
const (
	RuntimeTitle  = "Runtime Comparison (CUDA vs OMP) (Lower is better)"
	RuntimeXLabel = "Num Bodies"
	RuntimeYLabel = "Time (seconds)"
	SpeedupTitle  = "CUDA Speedup over CPU (Higher is better)"
	SpeedupXLabel = "Num Bodies"
	SpeedupYLabel = "Speedup Factor (x)"
)

const (
	// BarWidth is the width of one bar in group units; groups sit one unit apart.
	BarWidth = 0.3
	// maxGroupWidth bounds the total width of a group so neighbouring groups never touch.
	maxGroupWidth = 0.9
	// AnnotationOffsetPx is how far above its point a speedup label is drawn.
	AnnotationOffsetPx = 10

	DefaultWidth  = 1000
	DefaultHeight = 1200

	yTickCount = 6
)

// Bar is one runtime bar in data coordinates. X is the left edge.
type Bar struct {
	SizeIndex int
	X         float64
	Width     float64
	Value     float64
}

// BarSeries holds the bars of one method, one per problem size.
type BarSeries struct {
	Name string
	Bars []Bar
}

// Range is a closed axis interval.
type Range struct {
	Min, Max float64
}

// BarChart is the runtime comparison chart.
type BarChart struct {
	Title  string
	XLabel string
	YLabel string
	Series []BarSeries
	XTicks []Tick
	YTicks []Tick
	X      Range
	Y      Range
}

// BarCount returns the number of bar primitives.
func (c BarChart) BarCount() int {
	n := 0
	for _, s := range c.Series {
		n += len(s.Bars)
	}
	return n
}

// Point is a vertex of the speedup line.
type Point struct {
	X, Y float64
}

// Annotation is a text label drawn OffsetPx pixels above (X, Y), horizontally centred.
type Annotation struct {
	X, Y     float64
	Label    string
	OffsetPx int
}

// LineChart is the speedup chart.
type LineChart struct {
	Title       string
	XLabel      string
	YLabel      string
	Points      []Point
	Annotations []Annotation
	XTicks      []Tick
	YTicks      []Tick
	X           Range
	Y           Range
}

// Figure is the complete two-chart layout: Runtime stacked above Speedup.
type Figure struct {
	Width   int
	Height  int
	Caption string
	Runtime BarChart
	Speedup LineChart
}

// Options tune the canvas; zero values select the defaults.
type Options struct {
	Width   int
	Height  int
	Caption string
}

// Build lays out both charts for a validated report.
func Build(rep *bench.Report, opts Options) Figure {
	w, h := opts.Width, opts.Height
	if w <= 0 {
		w = DefaultWidth
	}
	if h <= 0 {
		h = DefaultHeight
	}
	return Figure{
		Width:   w,
		Height:  h,
		Caption: opts.Caption,
		Runtime: BuildRuntime(rep),
		Speedup: BuildSpeedup(rep),
	}
}

// barWidthFor returns the fixed bar width, narrowed only when m bars would overflow a group.
func barWidthFor(m int) float64 {
	if m > 0 && float64(m)*BarWidth > maxGroupWidth {
		return maxGroupWidth / float64(m)
	}
	return BarWidth
}

// BuildRuntime places one bar per (method, size). Group i spans from x=i; the
// method with index k is offset by k*width. Ticks sit under the group centres.
func BuildRuntime(rep *bench.Report) BarChart {
	m := len(rep.Runtime)
	n := len(rep.Sizes)
	width := barWidthFor(m)

	ch := BarChart{
		Title:  RuntimeTitle,
		XLabel: RuntimeXLabel,
		YLabel: RuntimeYLabel,
		Series: make([]BarSeries, 0, m),
		XTicks: make([]Tick, 0, n),
	}
	maxY := 0.0
	for k, s := range rep.Runtime {
		bs := BarSeries{Name: s.Method, Bars: make([]Bar, 0, n)}
		for i, v := range s.Values {
			bs.Bars = append(bs.Bars, Bar{
				SizeIndex: i,
				X:         float64(i) + float64(k)*width,
				Width:     width,
				Value:     v,
			})
			maxY = math.Max(maxY, v)
		}
		ch.Series = append(ch.Series, bs)
	}
	groupWidth := float64(max(m, 1)) * width
	for i, size := range rep.Sizes {
		ch.XTicks = append(ch.XTicks, Tick{Value: float64(i) + groupWidth/2, Label: strconv.Itoa(size)})
	}
	// Half a gap of padding either side of the outer groups.
	gap := 1 - groupWidth
	ch.X = Range{Min: -gap / 2, Max: float64(n-1) + groupWidth + gap/2}
	ch.Y = Range{Min: 0, Max: zeroBasedMax(maxY)}
	ch.YTicks = niceTicks(ch.Y.Min, ch.Y.Max, yTickCount)
	return ch
}

// BuildSpeedup places one vertex per size at its true X value, with exactly one
// tick per size and one annotation per vertex.
func BuildSpeedup(rep *bench.Report) LineChart {
	n := len(rep.Sizes)
	ch := LineChart{
		Title:       SpeedupTitle,
		XLabel:      SpeedupXLabel,
		YLabel:      SpeedupYLabel,
		Points:      make([]Point, 0, n),
		Annotations: make([]Annotation, 0, n),
		XTicks:      make([]Tick, 0, n),
	}
	maxY := 0.0
	for i, size := range rep.Sizes {
		x := float64(size)
		y := rep.Speedup[i]
		ch.Points = append(ch.Points, Point{X: x, Y: y})
		ch.Annotations = append(ch.Annotations, Annotation{X: x, Y: y, Label: bench.FormatSpeedup(y), OffsetPx: AnnotationOffsetPx})
		ch.XTicks = append(ch.XTicks, Tick{Value: x, Label: strconv.Itoa(size)})
		maxY = math.Max(maxY, y)
	}
	ch.X = paddedRange(float64(rep.Sizes[0]), float64(rep.Sizes[n-1]))
	minY := 0.0
	for _, p := range ch.Points {
		minY = math.Min(minY, p.Y)
	}
	if minY < 0 {
		lo, hi := niceAxisBounds(minY, maxY)
		ch.Y = Range{Min: lo, Max: hi}
	} else {
		ch.Y = Range{Min: 0, Max: zeroBasedMax(maxY)}
	}
	ch.YTicks = niceTicks(ch.Y.Min, ch.Y.Max, yTickCount)
	return ch
}

// paddedRange widens [lo,hi] by 5% of the span, or by 10% of the value when the
// span is empty, so the outer points and their labels stay inside the plot.
func paddedRange(lo, hi float64) Range {
	span := hi - lo
	pad := span * 0.05
	if span <= 0 {
		pad = math.Max(1, math.Abs(lo)*0.1)
	}
	return Range{Min: lo - pad, Max: hi + pad}
}
