package quality

import (
	"math"
)

// IndexKind identifies a quality indicator
type IndexKind string

const (
	KindWhipple IndexKind = "whipple"
	KindMyers   IndexKind = "myers"
	KindBachi   IndexKind = "bachi"
	KindUN      IndexKind = "un"
	KindBenford IndexKind = "benford"
)

// Label is a categorical quality verdict
type Label string

const (
	LabelUndefined Label = "Undefined"

	LabelExcellent  Label = "Excellent"
	LabelGood       Label = "Good"
	LabelAcceptable Label = "Acceptable"
	LabelPoor       Label = "Poor"
	LabelVeryPoor   Label = "Very poor"

	LabelVeryHighQuality   Label = "Very high quality"
	LabelGoodQuality       Label = "Good quality"
	LabelAcceptableQuality Label = "Acceptable quality"
	LabelPoorQuality       Label = "Poor quality"

	LabelConformant    Label = "Conformant"
	LabelNonConformant Label = "Non-conformant"

	LabelInsufficient Label = "Insufficient"
)

// QualityIndex is a named scalar result. Value is NaN when undefined.
type QualityIndex struct {
	Kind       IndexKind `json:"kind"`
	Value      float64   `json:"value"`
	SampleSize int       `json:"sample_size"`
	Label      Label     `json:"label"`
}

// IsDefined reports whether the index carries a usable value
func (q QualityIndex) IsDefined() bool {
	return !math.IsNaN(q.Value) && !math.IsInf(q.Value, 0)
}

// DigitDistribution holds the population per terminal digit 0..9
type DigitDistribution [10]float64

// Sum returns the population across all digits
func (d DigitDistribution) Sum() float64 {
	s := 0.0
	for _, v := range d {
		s += v
	}
	return s
}

// Percentages converts counts to shares of 100. All zeros when the sum is zero.
func (d DigitDistribution) Percentages() [10]float64 {
	var out [10]float64
	total := d.Sum()
	if total <= 0 {
		return out
	}
	for i, v := range d {
		out[i] = v / total * 100
	}
	return out
}

// TestMethod names how a p-value was derived
type TestMethod string

const (
	MethodExact  TestMethod = "exact"
	MethodNormal TestMethod = "normal"
	MethodNone   TestMethod = ""
)

// UndefinedReason enumerates the recoverable conditions that yield an
// undefined significance result
type UndefinedReason string

const (
	ReasonNone               UndefinedReason = ""
	ReasonLengthMismatch     UndefinedReason = "length_mismatch"
	ReasonInsufficientPairs  UndefinedReason = "insufficient_pairs"
	ReasonZeroDifferences    UndefinedReason = "zero_differences"
	ReasonDegenerateVariance UndefinedReason = "degenerate_variance"
)

// SignificanceTestResult is the outcome of the paired signed-rank test
type SignificanceTestResult struct {
	Statistic   float64         `json:"statistic"`
	PValue      float64         `json:"p_value"`
	Significant bool            `json:"significant"`
	N           int             `json:"n"`
	Method      TestMethod      `json:"method,omitempty"`
	Reason      UndefinedReason `json:"reason,omitempty"`
}

// UndefinedSignificance builds the undefined result shape for a reason
func UndefinedSignificance(reason UndefinedReason) SignificanceTestResult {
	return SignificanceTestResult{
		Statistic:   math.NaN(),
		PValue:      math.NaN(),
		Significant: false,
		Reason:      reason,
	}
}

// IsDefined reports whether a p-value was computed
func (r SignificanceTestResult) IsDefined() bool {
	return r.Reason == ReasonNone && !math.IsNaN(r.PValue)
}

// BenfordDegreesOfFreedom is fixed by the nine leading-digit cells
const BenfordDegreesOfFreedom = 8

// BenfordResult is the chi-square goodness-of-fit outcome for leading digits
type BenfordResult struct {
	ChiSquare        float64    `json:"chi_square"`
	PValue           float64    `json:"p_value"`
	Observed         [9]int     `json:"observed"`
	Expected         [9]float64 `json:"expected"`
	N                int        `json:"n"`
	DegreesOfFreedom int        `json:"degrees_of_freedom"`
}

// IsDefined reports whether the test had any observations
func (r BenfordResult) IsDefined() bool {
	return r.N > 0 && !math.IsNaN(r.PValue)
}

// ObservedFrequencies returns the observed share per digit 1..9
func (r BenfordResult) ObservedFrequencies() [9]float64 {
	var out [9]float64
	if r.N == 0 {
		return out
	}
	for i, c := range r.Observed {
		out[i] = float64(c) / float64(r.N)
	}
	return out
}

// Thresholds carries the configurable "good" cut-offs for classification
type Thresholds struct {
	WhippleGood  float64 `json:"whipple_good" yaml:"whipple_good" validate:"gte=90,lte=120"`
	MyersGood    float64 `json:"myers_good" yaml:"myers_good" validate:"gte=1,lte=10"`
	BachiGood    float64 `json:"bachi_good" yaml:"bachi_good" validate:"gte=1,lte=10"`
	BenfordAlpha float64 `json:"benford_alpha" yaml:"benford_alpha" validate:"gte=0.01,lte=0.1"`
}

// DefaultThresholds returns the standard cut-offs
func DefaultThresholds() Thresholds {
	return Thresholds{
		WhippleGood:  105,
		MyersGood:    2,
		BachiGood:    3,
		BenfordAlpha: 0.05,
	}
}

// Good returns the configured good threshold for an index kind
func (t Thresholds) Good(kind IndexKind) float64 {
	switch kind {
	case KindWhipple:
		return t.WhippleGood
	case KindMyers:
		return t.MyersGood
	case KindBachi:
		return t.BachiGood
	case KindBenford:
		return t.BenfordAlpha
	}
	return math.NaN()
}

// Score is the consolidated 0..7 quality score
type Score struct {
	Benford int   `json:"benford"`
	Whipple int   `json:"whipple"`
	Myers   int   `json:"myers"`
	Bachi   int   `json:"bachi"`
	Total   int   `json:"total"`
	Max     int   `json:"max"`
	Label   Label `json:"label"`
}

// MaxScore is the best attainable consolidated score
const MaxScore = 7
