package quality

import (
	"encoding/json"
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"

	"demoqual/domain/core"
	"demoqual/domain/demography"
	"demoqual/domain/quality"
)

// Params holds every user-adjustable analysis setting. It is passed by value;
// nothing retains it between calls.
type Params struct {
	WhippleMinAge  float64            `json:"whipple_min_age" yaml:"whipple_min_age" validate:"gte=20,lte=30"`
	WhippleMaxAge  float64            `json:"whipple_max_age" yaml:"whipple_max_age" validate:"gte=55,lte=70"`
	Thresholds     quality.Thresholds `json:"thresholds" yaml:"thresholds"`
	SmoothingAlpha float64            `json:"smoothing_alpha" yaml:"smoothing_alpha" validate:"gte=0.01,lte=0.1"`
	PyramidWidth   int                `json:"pyramid_width" yaml:"pyramid_width" validate:"oneof=1 5 10"`
	PyramidMaxAge  int                `json:"pyramid_max_age" yaml:"pyramid_max_age" validate:"gte=50,lte=110"`
	RatioWindow    int                `json:"ratio_window" yaml:"ratio_window" validate:"gte=1,lte=10"`
}

// DefaultParams returns the standard analysis settings
func DefaultParams() Params {
	return Params{
		WhippleMinAge:  DefaultWhippleMinAge,
		WhippleMaxAge:  DefaultWhippleMaxAge,
		Thresholds:     quality.DefaultThresholds(),
		SmoothingAlpha: 0.05,
		PyramidWidth:   DefaultPyramidWidth,
		PyramidMaxAge:  DefaultPyramidMaxAge,
		RatioWindow:    DefaultRatioWindow,
	}
}

// Fingerprint hashes the parameter set
func (p Params) Fingerprint() core.Hash {
	return core.ComputeParamsHash(map[string]interface{}{
		"whipple_min_age": p.WhippleMinAge,
		"whipple_max_age": p.WhippleMaxAge,
		"whipple_good":    p.Thresholds.WhippleGood,
		"myers_good":      p.Thresholds.MyersGood,
		"bachi_good":      p.Thresholds.BachiGood,
		"benford_alpha":   p.Thresholds.BenfordAlpha,
		"smoothing_alpha": p.SmoothingAlpha,
		"pyramid_width":   p.PyramidWidth,
		"pyramid_max_age": p.PyramidMaxAge,
		"ratio_window":    p.RatioWindow,
	})
}

// GroupReport holds every per-series result for one population group
type GroupReport struct {
	Group          demography.Group               `json:"group"`
	Population     float64                        `json:"population"`
	Whipple        quality.QualityIndex           `json:"whipple"`
	Myers          quality.QualityIndex           `json:"myers"`
	Bachi          quality.QualityIndex           `json:"bachi"`
	UN             quality.QualityIndex           `json:"un"`
	TerminalDigits quality.DigitDistribution      `json:"terminal_digits"`
	DigitPercent   [10]float64                    `json:"digit_percent"`
	MovingAverage  []float64                      `json:"moving_average"`
	Smoothing      quality.SignificanceTestResult `json:"smoothing_test"`
}

// Report is the complete analysis of one table under one parameter set
type Report struct {
	ID          core.ReportID  `json:"id,omitempty"`
	GeneratedAt core.Timestamp `json:"generated_at,omitempty"`
	Fingerprint core.Hash      `json:"fingerprint"`
	Params      Params         `json:"params"`

	Ages             []float64 `json:"ages"`
	Male             []float64 `json:"male"`
	Female           []float64 `json:"female"`
	Total            []float64 `json:"total"`
	TotalPopulation  float64   `json:"total_population"`
	MalePopulation   float64   `json:"male_population"`
	FemalePopulation float64   `json:"female_population"`
	MalePercent      float64   `json:"male_percent"`
	FemalePercent    float64   `json:"female_percent"`

	Groups       []GroupReport         `json:"groups"`
	Benford      quality.BenfordResult `json:"benford"`
	BenfordLabel quality.Label         `json:"benford_label"`
	SexRatio     SexRatioSummary       `json:"sex_ratio"`
	PerAgeRatio  []float64             `json:"-"`
	Pyramid      []PyramidBand         `json:"pyramid"`
	Score        quality.Score         `json:"score"`
}

// Group returns the report for a population group
func (r *Report) Group(g demography.Group) (*GroupReport, error) {
	for i := range r.Groups {
		if r.Groups[i].Group == g {
			return &r.Groups[i], nil
		}
	}
	return nil, fmt.Errorf("%w: %q", core.ErrGroupNotFound, g)
}

// MarshalJSON keeps the per-age sex ratio out of the payload; the summary
// already carries the defined points.
func (r Report) MarshalJSON() ([]byte, error) {
	type alias Report
	var generatedAt *core.Timestamp
	if !r.GeneratedAt.IsZero() {
		generatedAt = &r.GeneratedAt
	}
	return json.Marshal(struct {
		alias
		GeneratedAt *core.Timestamp `json:"generated_at,omitempty"`
	}{alias: alias(r), GeneratedAt: generatedAt})
}

// Analyzer runs every quality indicator over a table
type Analyzer struct {
	distributions *Distributions
}

// NewAnalyzer creates a new analyzer
func NewAnalyzer() *Analyzer {
	return &Analyzer{distributions: NewDistributions()}
}

// Analyze validates the table and computes the full report. The result is a
// pure function of table and params; ID and GeneratedAt are left for the
// caller to stamp.
func (a *Analyzer) Analyze(t *demography.Table, p Params) (*Report, error) {
	if err := t.Validate(); err != nil {
		return nil, err
	}
	if p.WhippleMinAge > p.WhippleMaxAge {
		return nil, fmt.Errorf("%w: whipple band [%v, %v] is empty", core.ErrInvalidParams, p.WhippleMinAge, p.WhippleMaxAge)
	}

	total := t.Total()
	report := &Report{
		Fingerprint:      core.Combine(t.Fingerprint(), p.Fingerprint()),
		Params:           p,
		Ages:             append([]float64(nil), t.Ages...),
		Male:             append([]float64(nil), t.Male...),
		Female:           append([]float64(nil), t.Female...),
		Total:            total,
		MalePopulation:   floats.Sum(t.Male),
		FemalePopulation: floats.Sum(t.Female),
		TotalPopulation:  floats.Sum(total),
	}
	if report.TotalPopulation > 0 {
		report.MalePercent = report.MalePopulation / report.TotalPopulation * 100
		report.FemalePercent = report.FemalePopulation / report.TotalPopulation * 100
	}

	for _, g := range demography.Groups {
		gr, err := a.analyzeGroup(t, g, p)
		if err != nil {
			return nil, err
		}
		report.Groups = append(report.Groups, gr)
	}

	report.Benford = benfordTest(a.distributions, BenfordObservations(t))
	report.BenfordLabel = ClassifyBenford(report.Benford.PValue, p.Thresholds.BenfordAlpha)

	report.PerAgeRatio = SexRatio(t.Male, t.Female)
	report.SexRatio = SummarizeSexRatio(t.Ages, t.Male, t.Female, p.RatioWindow)
	report.Pyramid = Pyramid(t, p.PyramidWidth, p.PyramidMaxAge)

	totalGroup, _ := report.Group(demography.GroupTotal)
	report.Score = ComputeScore(ScoreInputs{
		BenfordPValue: report.Benford.PValue,
		Whipple:       totalGroup.Whipple.Value,
		Myers:         totalGroup.Myers.Value,
		Bachi:         totalGroup.Bachi.Value,
	}, p.Thresholds)

	return report, nil
}

func (a *Analyzer) analyzeGroup(t *demography.Table, g demography.Group, p Params) (GroupReport, error) {
	series, err := t.Series(g)
	if err != nil {
		return GroupReport{}, err
	}
	th := p.Thresholds

	whipple := Whipple(series, p.WhippleMinAge, p.WhippleMaxAge)
	myers := Myers(series)
	bachi := Bachi(series)
	un := UNIndex(whipple, myers, bachi)

	digits := TerminalDigits(series, 0, math.Inf(1))
	pops := series.Populations()
	ma := MovingAverage2(pops)

	return GroupReport{
		Group:      g,
		Population: series.Total(),
		Whipple: quality.QualityIndex{
			Kind:       quality.KindWhipple,
			Value:      whipple,
			SampleSize: int(bandPopulation(series, p.WhippleMinAge, p.WhippleMaxAge)),
			Label:      ClassifyQuality(whipple, quality.KindWhipple, th.Good(quality.KindWhipple)),
		},
		Myers: quality.QualityIndex{
			Kind:       quality.KindMyers,
			Value:      myers,
			SampleSize: int(bandPopulation(series, MyersMinAge, MyersMaxAge)),
			Label:      ClassifyQuality(myers, quality.KindMyers, th.Good(quality.KindMyers)),
		},
		Bachi: quality.QualityIndex{
			Kind:       quality.KindBachi,
			Value:      bachi,
			SampleSize: int(bandPopulation(series, BachiMinAge, BachiMaxAge)),
			Label:      ClassifyQuality(bachi, quality.KindBachi, th.Good(quality.KindBachi)),
		},
		UN: quality.QualityIndex{
			Kind:       quality.KindUN,
			Value:      un,
			SampleSize: int(series.Total()),
			Label:      ClassifyQuality(un, quality.KindUN, 0),
		},
		TerminalDigits: digits,
		DigitPercent:   digits.Percentages(),
		MovingAverage:  ma,
		Smoothing:      pairedSignificanceTest(a.distributions, pops, ma, p.SmoothingAlpha),
	}, nil
}
