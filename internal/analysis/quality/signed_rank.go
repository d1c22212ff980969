package quality

import (
	"math"
	"sort"

	"demoqual/domain/quality"
)

// minSignedRankPairs is the smallest sample the signed-rank test accepts
const minSignedRankPairs = 3

// PairedSignificanceTest runs a two-sided Wilcoxon signed-rank test of raw
// against smoothed. Pairs with a NaN or infinity on either side are dropped,
// as are zero differences. The statistic is min(W+, W-).
//
// Degenerate inputs never panic; they yield the undefined result shape with a
// Reason naming the condition.
func PairedSignificanceTest(raw, smoothed []float64, alpha float64) quality.SignificanceTestResult {
	return pairedSignificanceTest(NewDistributions(), raw, smoothed, alpha)
}

func pairedSignificanceTest(dists *Distributions, raw, smoothed []float64, alpha float64) quality.SignificanceTestResult {
	if len(raw) != len(smoothed) {
		return quality.UndefinedSignificance(quality.ReasonLengthMismatch)
	}

	valid := 0
	diffs := make([]float64, 0, len(raw))
	for i := range raw {
		if !isFinite(raw[i]) || !isFinite(smoothed[i]) {
			continue
		}
		valid++
		if d := raw[i] - smoothed[i]; d != 0 {
			diffs = append(diffs, d)
		}
	}
	if valid < minSignedRankPairs {
		return quality.UndefinedSignificance(quality.ReasonInsufficientPairs)
	}
	if len(diffs) < minSignedRankPairs {
		res := quality.UndefinedSignificance(quality.ReasonZeroDifferences)
		res.N = len(diffs)
		return res
	}

	n := len(diffs)
	ranks, tieTerm := absRanks(diffs)

	wPlus, wMinus := 0.0, 0.0
	for i, d := range diffs {
		if d > 0 {
			wPlus += ranks[i]
		} else {
			wMinus += ranks[i]
		}
	}
	statistic := math.Min(wPlus, wMinus)

	result := quality.SignificanceTestResult{Statistic: statistic, N: n}
	if n <= exactSignedRankLimit && tieTerm == 0 {
		result.PValue = dists.SignedRankExactPValue(statistic, n)
		result.Method = quality.MethodExact
	} else {
		p, ok := dists.SignedRankNormalPValue(statistic, n, tieTerm)
		if !ok {
			res := quality.UndefinedSignificance(quality.ReasonDegenerateVariance)
			res.N = n
			return res
		}
		result.PValue = p
		result.Method = quality.MethodNormal
	}
	result.Significant = result.PValue < alpha
	return result
}

func isFinite(x float64) bool {
	return !math.IsNaN(x) && !math.IsInf(x, 0)
}

// absRanks assigns average ranks (1-based) to |d| and returns Σ(t³−t) over
// tied groups
func absRanks(diffs []float64) (ranks []float64, tieTerm float64) {
	n := len(diffs)
	idx := make([]int, n)
	for i := range idx {
		idx[i] = i
	}
	sort.SliceStable(idx, func(a, b int) bool {
		return math.Abs(diffs[idx[a]]) < math.Abs(diffs[idx[b]])
	})

	ranks = make([]float64, n)
	for i := 0; i < n; {
		j := i
		for j+1 < n && math.Abs(diffs[idx[j+1]]) == math.Abs(diffs[idx[i]]) {
			j++
		}
		avg := float64(i+j)/2 + 1
		for k := i; k <= j; k++ {
			ranks[idx[k]] = avg
		}
		if t := float64(j - i + 1); t > 1 {
			tieTerm += t*t*t - t
		}
		i = j + 1
	}
	return ranks, tieTerm
}
