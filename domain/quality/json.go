package quality

import (
	"encoding/json"
	"math"
)

// Undefined values are NaN in memory and null on the wire.

func nullable(v float64) *float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return nil
	}
	return &v
}

// MarshalJSON writes an undefined value as null
func (q QualityIndex) MarshalJSON() ([]byte, error) {
	type alias QualityIndex
	return json.Marshal(struct {
		alias
		Value *float64 `json:"value"`
	}{alias: alias(q), Value: nullable(q.Value)})
}

// MarshalJSON writes an undefined statistic or p-value as null
func (r SignificanceTestResult) MarshalJSON() ([]byte, error) {
	type alias SignificanceTestResult
	return json.Marshal(struct {
		alias
		Statistic *float64 `json:"statistic"`
		PValue    *float64 `json:"p_value"`
	}{alias: alias(r), Statistic: nullable(r.Statistic), PValue: nullable(r.PValue)})
}

// MarshalJSON writes an undefined statistic or p-value as null
func (r BenfordResult) MarshalJSON() ([]byte, error) {
	type alias BenfordResult
	return json.Marshal(struct {
		alias
		ChiSquare *float64 `json:"chi_square"`
		PValue    *float64 `json:"p_value"`
	}{alias: alias(r), ChiSquare: nullable(r.ChiSquare), PValue: nullable(r.PValue)})
}
