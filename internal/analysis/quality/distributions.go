package quality

import (
	"math"

	"gonum.org/v1/gonum/stat/distuv"
)

// exactSignedRankLimit is the largest untied sample for which the signed-rank
// null distribution is enumerated instead of approximated
const exactSignedRankLimit = 50

// Distributions provides the reference distributions used by the quality tests
type Distributions struct{}

// NewDistributions creates a new distributions utility
func NewDistributions() *Distributions {
	return &Distributions{}
}

// ChiSquarePValue computes the upper-tail p-value for a chi-square statistic
func (d *Distributions) ChiSquarePValue(chiSquare float64, degreesOfFreedom int) float64 {
	if degreesOfFreedom <= 0 || math.IsNaN(chiSquare) {
		return math.NaN()
	}
	if chiSquare <= 0 {
		return 1.0
	}

	chiDist := distuv.ChiSquared{K: float64(degreesOfFreedom)}
	return chiDist.Survival(chiSquare)
}

// NormalTwoSidedPValue computes 2·P(Z > |z|) for a standard normal Z
func (d *Distributions) NormalTwoSidedPValue(z float64) float64 {
	if math.IsNaN(z) {
		return math.NaN()
	}
	p := 2 * distuv.UnitNormal.Survival(math.Abs(z))
	if p > 1.0 {
		p = 1.0
	}
	return p
}

// SignedRankNormalPValue approximates the two-sided p-value of a signed-rank
// statistic. tieTerm is Σ(t³−t) over groups of tied absolute differences.
// ok is false when the null variance collapses to zero.
func (d *Distributions) SignedRankNormalPValue(statistic float64, n int, tieTerm float64) (p float64, ok bool) {
	nf := float64(n)
	mean := nf * (nf + 1) / 4.0
	variance := nf*(nf+1)*(2*nf+1)/24.0 - tieTerm/48.0
	if variance <= 0 || math.IsNaN(variance) {
		return math.NaN(), false
	}

	z := (statistic - mean) / math.Sqrt(variance)
	return d.NormalTwoSidedPValue(z), true
}

// SignedRankExactPValue computes the exact two-sided p-value of a signed-rank
// statistic for n untied, non-zero differences.
func (d *Distributions) SignedRankExactPValue(statistic float64, n int) float64 {
	if n <= 0 {
		return 1.0
	}

	// W is integer-valued without ties; round for float representation.
	wObs := int(math.Round(statistic))
	if wObs < 0 {
		wObs = 0
	}

	totalRankSum := n * (n + 1) / 2
	if wObs > totalRankSum {
		wObs = totalRankSum
	}

	// The null distribution is symmetric: P(W <= w) with w = min(W+, W-), doubled.
	w := wObs
	if totalRankSum-wObs < w {
		w = totalRankSum - wObs
	}

	// dp[s] = number of sign assignments producing W+ = s.
	dp := make([]uint64, totalRankSum+1)
	dp[0] = 1
	for r := 1; r <= n; r++ {
		for s := totalRankSum; s >= r; s-- {
			dp[s] += dp[s-r]
		}
	}

	totalOutcomes := math.Ldexp(1, n) // 2^n
	var cum uint64
	for s := 0; s <= w; s++ {
		cum += dp[s]
	}

	pTwoSide := 2 * float64(cum) / totalOutcomes
	if pTwoSide > 1.0 {
		pTwoSide = 1.0
	}
	return pTwoSide
}
