package main

import (
	"github.com/spf13/cobra"

	"demoqual/internal/analysis/quality"
)

// analysisFlags override the configured analysis parameters when set
type analysisFlags struct {
	whippleMinAge  float64
	whippleMaxAge  float64
	whippleGood    float64
	myersGood      float64
	bachiGood      float64
	benfordAlpha   float64
	smoothingAlpha float64
	pyramidWidth   int
	pyramidMaxAge  int
	ratioWindow    int
}

func (f *analysisFlags) register(cmd *cobra.Command) {
	d := quality.DefaultParams()
	flags := cmd.PersistentFlags()
	flags.Float64Var(&f.whippleMinAge, "whipple-min-age", d.WhippleMinAge, "lower bound of the Whipple age band (20-30)")
	flags.Float64Var(&f.whippleMaxAge, "whipple-max-age", d.WhippleMaxAge, "upper bound of the Whipple age band (55-70)")
	flags.Float64Var(&f.whippleGood, "whipple-good", d.Thresholds.WhippleGood, "Whipple value below which quality is excellent (90-120)")
	flags.Float64Var(&f.myersGood, "myers-good", d.Thresholds.MyersGood, "Myers good threshold (1-10)")
	flags.Float64Var(&f.bachiGood, "bachi-good", d.Thresholds.BachiGood, "Bachi good threshold (1-10)")
	flags.Float64Var(&f.benfordAlpha, "benford-alpha", d.Thresholds.BenfordAlpha, "Benford conformity level (0.01-0.10)")
	flags.Float64Var(&f.smoothingAlpha, "smoothing-alpha", d.SmoothingAlpha, "signed-rank significance level (0.01-0.10)")
	flags.IntVar(&f.pyramidWidth, "pyramid-width", d.PyramidWidth, "age pyramid band width (1, 5 or 10)")
	flags.IntVar(&f.pyramidMaxAge, "pyramid-max-age", d.PyramidMaxAge, "age pyramid upper age (50-110)")
	flags.IntVar(&f.ratioWindow, "ratio-window", d.RatioWindow, "sex-ratio smoothing window (1-10)")
}

// apply copies only the flags the user set, so config and env values survive
func (f *analysisFlags) apply(cmd *cobra.Command, p *quality.Params) {
	changed := cmd.Flags().Changed
	if changed("whipple-min-age") {
		p.WhippleMinAge = f.whippleMinAge
	}
	if changed("whipple-max-age") {
		p.WhippleMaxAge = f.whippleMaxAge
	}
	if changed("whipple-good") {
		p.Thresholds.WhippleGood = f.whippleGood
	}
	if changed("myers-good") {
		p.Thresholds.MyersGood = f.myersGood
	}
	if changed("bachi-good") {
		p.Thresholds.BachiGood = f.bachiGood
	}
	if changed("benford-alpha") {
		p.Thresholds.BenfordAlpha = f.benfordAlpha
	}
	if changed("smoothing-alpha") {
		p.SmoothingAlpha = f.smoothingAlpha
	}
	if changed("pyramid-width") {
		p.PyramidWidth = f.pyramidWidth
	}
	if changed("pyramid-max-age") {
		p.PyramidMaxAge = f.pyramidMaxAge
	}
	if changed("ratio-window") {
		p.RatioWindow = f.ratioWindow
	}
}
