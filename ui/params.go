package ui

import (
	"fmt"
	"net/url"
	"strconv"

	"demoqual/internal/analysis/quality"
	"demoqual/internal/errors"
)

// paramsFromQuery overlays query-string values on base. Bounds are checked
// later by the service with the configuration rules.
func paramsFromQuery(base quality.Params, q url.Values) (quality.Params, error) {
	p := base
	floats := map[string]*float64{
		"whipple_min_age": &p.WhippleMinAge,
		"whipple_max_age": &p.WhippleMaxAge,
		"whipple_good":    &p.Thresholds.WhippleGood,
		"myers_good":      &p.Thresholds.MyersGood,
		"bachi_good":      &p.Thresholds.BachiGood,
		"benford_alpha":   &p.Thresholds.BenfordAlpha,
		"smoothing_alpha": &p.SmoothingAlpha,
	}
	ints := map[string]*int{
		"pyramid_width":   &p.PyramidWidth,
		"pyramid_max_age": &p.PyramidMaxAge,
		"ratio_window":    &p.RatioWindow,
	}

	for name, dst := range floats {
		raw := q.Get(name)
		if raw == "" {
			continue
		}
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return base, errors.InvalidInput(fmt.Sprintf("%s: %q is not a number", name, raw))
		}
		*dst = v
	}
	for name, dst := range ints {
		raw := q.Get(name)
		if raw == "" {
			continue
		}
		v, err := strconv.Atoi(raw)
		if err != nil {
			return base, errors.InvalidInput(fmt.Sprintf("%s: %q is not an integer", name, raw))
		}
		*dst = v
	}
	return p, nil
}
