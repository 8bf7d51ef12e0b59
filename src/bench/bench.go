// Package bench loads the benchmark CSV written by the timing harness and
// validates it into a typed Report.
//
// Expected shape:
//
//	Method,1000,5000,10000
//	OMP (CPU),2.1,48.0,190.3
//	CUDA (GPU),0.2,1.9,6.8
//	CUDA Speedup,10.5,25.3,28.0
//
// The speedup row may appear anywhere; the harness writes rows in map order.
package bench

import (
	"fmt"
	"strings"
)

const (
	// MethodColumn is the required header of the label column.
	MethodColumn = "Method"
	// SpeedupMarker labels the derived ratio row.
	SpeedupMarker = "CUDA Speedup"
)

// RuntimeSeries holds the measured durations (seconds) of one method, one per size.
type RuntimeSeries struct {
	Method string
	Values []float64
}

// Report is a validated benchmark table.
type Report struct {
	// Sizes are the problem sizes in header order; strictly ascending.
	Sizes []int
	// Runtime rows in source order, excluding the speedup row.
	Runtime []RuntimeSeries
	// Speedup ratios aligned with Sizes.
	Speedup []float64
}

// Methods returns the runtime method names in row order.
func (r *Report) Methods() []string {
	out := make([]string, len(r.Runtime))
	for i, s := range r.Runtime {
		out[i] = s.Method
	}
	return out
}

// SummaryLines renders one human readable line per size, in the same spirit as the
// harness console output ("Cuda Speedup: 10.5x").
func (r *Report) SummaryLines() []string {
	lines := make([]string, 0, len(r.Sizes))
	for i, n := range r.Sizes {
		var b strings.Builder
		fmt.Fprintf(&b, "size=%d", n)
		for _, s := range r.Runtime {
			fmt.Fprintf(&b, " %s=%.3fs", s.Method, s.Values[i])
		}
		fmt.Fprintf(&b, " speedup=%s", FormatSpeedup(r.Speedup[i]))
		lines = append(lines, b.String())
	}
	return lines
}

// FormatSpeedup formats a ratio with two decimals and an "x" suffix (7.5 -> "7.50x").
func FormatSpeedup(v float64) string {
	return fmt.Sprintf("%.2fx", v)
}
