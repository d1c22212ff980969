package quality

import (
	"math"

	"demoqual/domain/demography"
	"demoqual/domain/quality"
)

// BenfordProbability is the expected share of leading digit d under Benford's law
func BenfordProbability(d int) float64 {
	if d < 1 || d > 9 {
		return 0
	}
	return math.Log10(1 + 1/float64(d))
}

// BenfordTest runs a chi-square goodness-of-fit test of the observations'
// leading digits against Benford's law with 8 degrees of freedom.
func BenfordTest(observations []float64) quality.BenfordResult {
	return benfordTest(NewDistributions(), observations)
}

func benfordTest(dists *Distributions, observations []float64) quality.BenfordResult {
	counts, n := LeadingDigitCounts(observations)
	result := quality.BenfordResult{
		Observed:         counts,
		N:                n,
		DegreesOfFreedom: quality.BenfordDegreesOfFreedom,
	}
	if n == 0 {
		result.ChiSquare = math.NaN()
		result.PValue = math.NaN()
		return result
	}

	chiSq := 0.0
	for i, observed := range counts {
		expected := BenfordProbability(i+1) * float64(n)
		result.Expected[i] = expected
		diff := float64(observed) - expected
		chiSq += diff * diff / expected
	}

	result.ChiSquare = chiSq
	result.PValue = dists.ChiSquarePValue(chiSq, quality.BenfordDegreesOfFreedom)
	return result
}

// BenfordObservations concatenates the male, female and total columns
func BenfordObservations(t *demography.Table) []float64 {
	obs := make([]float64, 0, 3*t.Len())
	obs = append(obs, t.Male...)
	obs = append(obs, t.Female...)
	obs = append(obs, t.Total()...)
	return obs
}
