package quality

import "math"

// unCap bounds each normalized component of the combined index
const unCap = 2.0

// UNIndex combines the Whipple, Myers and Bachi indices into one score.
// Each input is normalized as min(v/100, 2) and the three are averaged, ×100.
// NaN if any input is NaN.
func UNIndex(whipple, myers, bachi float64) float64 {
	if math.IsNaN(whipple) || math.IsNaN(myers) || math.IsNaN(bachi) {
		return math.NaN()
	}

	sum := normalizeComponent(whipple) + normalizeComponent(myers) + normalizeComponent(bachi)
	return sum / 3 * 100
}

func normalizeComponent(v float64) float64 {
	return math.Min(v/100, unCap)
}
