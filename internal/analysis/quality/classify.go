package quality

import (
	"math"

	"demoqual/domain/quality"
)

// Fixed Whipple cut-offs above the configurable good threshold
const (
	whippleGoodCeiling       = 110.0
	whippleAcceptableCeiling = 125.0
	whipplePoorCeiling       = 175.0
)

// Fixed cut-offs for the combined index
const (
	unVeryHighCeiling   = 1.5
	unGoodCeiling       = 2.5
	unAcceptableCeiling = 5.0
)

// ClassifyQuality maps an index value to its quality label. good is the
// configurable "good" threshold; it is ignored for the combined index, whose
// cut-offs are fixed. For Benford, value is the p-value and good is α.
func ClassifyQuality(value float64, kind quality.IndexKind, good float64) quality.Label {
	if math.IsNaN(value) {
		return quality.LabelUndefined
	}

	switch kind {
	case quality.KindWhipple:
		switch {
		case value < good:
			return quality.LabelExcellent
		case value < whippleGoodCeiling:
			return quality.LabelGood
		case value < whippleAcceptableCeiling:
			return quality.LabelAcceptable
		case value < whipplePoorCeiling:
			return quality.LabelPoor
		default:
			return quality.LabelVeryPoor
		}

	case quality.KindUN:
		switch {
		case value < unVeryHighCeiling:
			return quality.LabelVeryHighQuality
		case value < unGoodCeiling:
			return quality.LabelGoodQuality
		case value < unAcceptableCeiling:
			return quality.LabelAcceptableQuality
		default:
			return quality.LabelPoorQuality
		}

	case quality.KindBenford:
		return ClassifyBenford(value, good)

	case quality.KindMyers, quality.KindBachi:
		switch {
		case value < good:
			return quality.LabelExcellent
		case value < 2*good:
			return quality.LabelGood
		case value < 3*good:
			return quality.LabelAcceptable
		default:
			return quality.LabelPoor
		}
	}

	return quality.LabelUndefined
}

// ClassifyBenford labels a Benford p-value against the conformity level α
func ClassifyBenford(pValue, alpha float64) quality.Label {
	if math.IsNaN(pValue) {
		return quality.LabelUndefined
	}
	if pValue >= alpha {
		return quality.LabelConformant
	}
	return quality.LabelNonConformant
}

// ScoreInputs are the total-population results the consolidated score reads
type ScoreInputs struct {
	BenfordPValue float64
	Whipple       float64
	Myers         float64
	Bachi         float64
}

// ComputeScore awards up to 7 points: 1 for Benford conformity and up to 2
// for each heaping index. Undefined indices earn nothing.
func ComputeScore(in ScoreInputs, t quality.Thresholds) quality.Score {
	s := quality.Score{Max: quality.MaxScore}

	if !math.IsNaN(in.BenfordPValue) && in.BenfordPValue >= t.BenfordAlpha {
		s.Benford = 1
	}

	switch {
	case math.IsNaN(in.Whipple):
	case in.Whipple < t.WhippleGood:
		s.Whipple = 2
	case in.Whipple < whippleGoodCeiling:
		s.Whipple = 1
	}

	s.Myers = tieredPoints(in.Myers, t.MyersGood)
	s.Bachi = tieredPoints(in.Bachi, t.BachiGood)

	s.Total = s.Benford + s.Whipple + s.Myers + s.Bachi
	s.Label = scoreLabel(s.Total)
	return s
}

func tieredPoints(value, good float64) int {
	switch {
	case math.IsNaN(value):
		return 0
	case value < good:
		return 2
	case value < 2*good:
		return 1
	}
	return 0
}

func scoreLabel(total int) quality.Label {
	switch {
	case total >= 6:
		return quality.LabelExcellent
	case total >= 4:
		return quality.LabelGood
	case total >= 2:
		return quality.LabelAcceptable
	}
	return quality.LabelInsufficient
}
