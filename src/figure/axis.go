package figure

import (
	"fmt"
	"math"
)

// Tick is an axis tick at Value with a rendered Label.
type Tick struct {
	Value float64
	Label string
}

// niceAxisBounds expands [min,max] by a small margin and rounds to "nice" numbers for readability.
func niceAxisBounds(min, max float64) (float64, float64) {
	if math.IsNaN(min) || math.IsNaN(max) {
		return min, max
	}
	if max <= min {
		max = min + 1
	}
	span := max - min
	// 5% margin on both sides
	pad := span * 0.05
	if pad <= 0 {
		pad = 1
	}
	a := min - pad
	b := max + pad
	// round to nearest "nice" increments based on span order of magnitude
	mag := math.Pow(10, math.Floor(math.Log10(span)))
	if !math.IsInf(mag, 0) && mag > 0 {
		a = math.Floor(a/mag) * mag
		b = math.Ceil(b/mag) * mag
	}
	return a, b
}

// zeroBasedMax returns a nice upper bound for an axis anchored at zero.
func zeroBasedMax(maxY float64) float64 {
	if maxY <= 0 {
		maxY = 1
	}
	_, nMax := niceAxisBounds(0, maxY)
	return nMax
}

// niceTicks generates up to n desired tick marks between [min, max] using nice increments.
// Ticks never fall outside [min, max].
func niceTicks(min, max float64, n int) []Tick {
	if n < 2 || math.IsNaN(min) || math.IsNaN(max) {
		return nil
	}
	if max <= min {
		max = min + 1
	}
	span := max - min
	// Preferred tick steps: 1, 2, 2.5, 5, 10 ... scaled by power of 10
	mag := math.Pow(10, math.Floor(math.Log10(span/float64(n-1))))
	candidates := []float64{1, 2, 2.5, 5, 10}
	bestStep := mag
	bestScore := math.MaxFloat64
	for _, c := range candidates {
		step := c * mag
		count := math.Ceil(span / step)
		if count < 2 {
			count = 2
		}
		score := math.Abs(count - float64(n))
		if score < bestScore {
			bestScore = score
			bestStep = step
		}
	}
	start := math.Ceil(min/bestStep) * bestStep
	ticks := []Tick{}
	for i := 0; ; i++ {
		v := start + float64(i)*bestStep
		if v > max+bestStep*1e-9 || len(ticks) > n+2 {
			break
		}
		// snap away float noise like 0.30000000000000004
		v = math.Round(v/bestStep) * bestStep
		ticks = append(ticks, Tick{Value: v, Label: formatTick(v)})
	}
	return ticks
}

func formatTick(v float64) string {
	if v == 0 {
		return "0"
	}
	av := math.Abs(v)
	switch {
	case av >= 100:
		return fmt.Sprintf("%.0f", v)
	case av >= 10:
		return fmt.Sprintf("%.1f", v)
	default:
		return fmt.Sprintf("%.2f", v)
	}
}
