package quality

import (
	"math"
	"strconv"
	"strings"

	"demoqual/domain/demography"
	"demoqual/domain/quality"
)

// LeadingDigit returns the first significant decimal digit of x (1..9).
// ok is false for zero, NaN and infinities.
func LeadingDigit(x float64) (digit int, ok bool) {
	if x == 0 || math.IsNaN(x) || math.IsInf(x, 0) {
		return 0, false
	}

	s := strconv.FormatFloat(math.Abs(x), 'f', -1, 64)
	s = strings.TrimLeft(s, "0.")
	if s == "" {
		return 0, false
	}

	d := int(s[0] - '0')
	if d < 1 || d > 9 {
		return 0, false
	}
	return d, true
}

// terminalDigit returns age mod 10 for whole-number ages
func terminalDigit(age float64) (int, bool) {
	m := math.Mod(age, 10)
	if m != math.Trunc(m) {
		return 0, false
	}
	return int(m), true
}

// TerminalDigits sums population per terminal age digit inside [minAge, maxAge]
func TerminalDigits(series demography.AgeSeries, minAge, maxAge float64) quality.DigitDistribution {
	var dist quality.DigitDistribution
	for i := 0; i < series.Len(); i++ {
		age, pop := series.At(i)
		if age < minAge || age > maxAge {
			continue
		}
		if d, ok := terminalDigit(age); ok {
			dist[d] += pop
		}
	}
	return dist
}

// LeadingDigitCounts histograms the leading digits of the observations.
// Index 0 holds digit 1. Zero, NaN and infinite values are skipped.
func LeadingDigitCounts(observations []float64) (counts [9]int, n int) {
	for _, v := range observations {
		d, ok := LeadingDigit(v)
		if !ok {
			continue
		}
		counts[d-1]++
		n++
	}
	return counts, n
}
