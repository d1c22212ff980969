package quality

import (
	"math"

	"demoqual/domain/demography"
)

// Standard age bands for the heaping indices
const (
	DefaultWhippleMinAge = 23.0
	DefaultWhippleMaxAge = 62.0

	MyersMinAge = 10.0
	MyersMaxAge = 89.0

	BachiMinAge = 20.0
	BachiMaxAge = 89.0
)

// Whipple measures heaping on terminal digits 0 and 5 inside [minAge, maxAge].
// A population with every age ending in 0 or 5 scores exactly 100.
// Returns NaN when the band holds no population.
func Whipple(series demography.AgeSeries, minAge, maxAge float64) float64 {
	heaped := 0.0
	total := 0.0
	for i := 0; i < series.Len(); i++ {
		age, pop := series.At(i)
		if age < minAge || age > maxAge {
			continue
		}
		total += pop
		if m := math.Mod(age, 10); m == 0 || m == 5 {
			heaped += pop
		}
	}

	if total <= 0 {
		return math.NaN()
	}
	return heaped / total * 100
}

// Myers measures preference across all ten terminal digits over ages 10..89.
// Each digit is paired with its successor, and the pair sums are compared to
// their mean. A flat terminal-digit distribution scores 0.
// Returns NaN when the band holds no population.
func Myers(series demography.AgeSeries) float64 {
	s := TerminalDigits(series, MyersMinAge, MyersMaxAge)
	total := s.Sum()
	if total <= 0 {
		return math.NaN()
	}

	// The ten pair sums add up to 2·total, so their mean is total/5.
	centre := 2 * total / 10
	deviation := 0.0
	for i := 0; i < 10; i++ {
		pair := s[i] + s[(i+1)%10]
		deviation += math.Abs(pair - centre)
	}

	return deviation / (2 * total) * 100
}

// Bachi is the root of the summed squared relative deviations of terminal-digit
// shares from 10%, over ages 20..89. Returns NaN when the band holds no population.
func Bachi(series demography.AgeSeries) float64 {
	s := TerminalDigits(series, BachiMinAge, BachiMaxAge)
	if s.Sum() <= 0 {
		return math.NaN()
	}

	sumSq := 0.0
	for _, p := range s.Percentages() {
		d := (p - 10) / 10
		sumSq += d * d
	}
	return math.Sqrt(sumSq) * 100
}

// bandPopulation sums the population of ages inside [minAge, maxAge]
func bandPopulation(series demography.AgeSeries, minAge, maxAge float64) float64 {
	total := 0.0
	for i := 0; i < series.Len(); i++ {
		age, pop := series.At(i)
		if age >= minAge && age <= maxAge {
			total += pop
		}
	}
	return total
}
