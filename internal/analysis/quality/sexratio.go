package quality

import (
	"encoding/json"
	"math"

	"github.com/montanaflynn/stats"
)

// Sex-ratio smoothing window bounds
const (
	DefaultRatioWindow = 3
	MinRatioWindow     = 1
	MaxRatioWindow     = 10
)

// z95 is the two-sided 95% normal quantile used for the ratio band
const z95 = 1.96

// SexRatio returns male/female × 100 per age, NaN where female is zero
func SexRatio(male, female []float64) []float64 {
	n := len(male)
	if len(female) < n {
		n = len(female)
	}
	out := make([]float64, n)
	for i := 0; i < n; i++ {
		if female[i] > 0 {
			out[i] = male[i] / female[i] * 100
		} else {
			out[i] = math.NaN()
		}
	}
	return out
}

// GlobalSexRatio returns total male / total female × 100, NaN without females
func GlobalSexRatio(male, female []float64) float64 {
	m, f := 0.0, 0.0
	for _, v := range male {
		m += v
	}
	for _, v := range female {
		f += v
	}
	if f <= 0 {
		return math.NaN()
	}
	return m / f * 100
}

// RatioPoint is one defined sex-ratio observation
type RatioPoint struct {
	Age   float64 `json:"age"`
	Ratio float64 `json:"ratio"`
	Lower float64 `json:"lower"`
	Upper float64 `json:"upper"`
}

// SmoothedPoint is one value of the smoothed sex-ratio curve
type SmoothedPoint struct {
	Age   float64 `json:"age"`
	Ratio float64 `json:"ratio"`
}

// SexRatioSummary describes the per-age sex ratio curve
type SexRatioSummary struct {
	Global        float64         `json:"global"`
	Points        []RatioPoint    `json:"points"`
	UndefinedAges []float64       `json:"undefined_ages"`
	Smoothed      []SmoothedPoint `json:"smoothed"`
	Window        int             `json:"window"`
	N             int             `json:"n"`
	Mean          float64         `json:"mean"`
	Median        float64         `json:"median"`
	Min           float64         `json:"min"`
	Max           float64         `json:"max"`
	StdDev        float64         `json:"std_dev"`
}

// SummarizeSexRatio computes the per-age ratios, their summary statistics, a
// 95% band around each value and the window-smoothed curve. Ages with no
// females are listed in UndefinedAges and excluded from the statistics.
func SummarizeSexRatio(ages, male, female []float64, window int) SexRatioSummary {
	ratios := SexRatio(male, female)
	summary := SexRatioSummary{
		Global:        GlobalSexRatio(male, female),
		Window:        window,
		Points:        []RatioPoint{},
		UndefinedAges: []float64{},
		Smoothed:      []SmoothedPoint{},
	}

	validAges := make([]float64, 0, len(ratios))
	valid := make([]float64, 0, len(ratios))
	for i, r := range ratios {
		if math.IsNaN(r) {
			summary.UndefinedAges = append(summary.UndefinedAges, ages[i])
			continue
		}
		validAges = append(validAges, ages[i])
		valid = append(valid, r)
	}

	summary.N = len(valid)
	if summary.N == 0 {
		return summary
	}

	summary.Mean, _ = stats.Mean(valid)
	summary.Median, _ = stats.Median(valid)
	summary.Min, _ = stats.Min(valid)
	summary.Max, _ = stats.Max(valid)
	summary.StdDev, _ = stats.StandardDeviationPopulation(valid)

	se := 0.0
	if summary.N > 1 {
		se = summary.StdDev / math.Sqrt(float64(summary.N))
	}
	for i, r := range valid {
		summary.Points = append(summary.Points, RatioPoint{
			Age:   validAges[i],
			Ratio: r,
			Lower: r - z95*se,
			Upper: r + z95*se,
		})
	}

	smoothed := MovingWindow(valid, window)
	offset := 0
	if window > 1 {
		offset = (window - 1) / 2
	}
	for i, r := range smoothed {
		summary.Smoothed = append(summary.Smoothed, SmoothedPoint{Age: validAges[i+offset], Ratio: r})
	}

	return summary
}

// MarshalJSON writes a NaN global ratio as null
func (s SexRatioSummary) MarshalJSON() ([]byte, error) {
	type alias SexRatioSummary
	return json.Marshal(struct {
		alias
		Global *float64 `json:"global"`
	}{alias: alias(s), Global: nullable(s.Global)})
}

func nullable(v float64) *float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return nil
	}
	return &v
}
