// Package docs holds the reference text describing each indicator.
package docs

import (
	_ "embed"
	"strings"
)

//go:embed formulas.md
var formulasMarkdown string

// Formula is one row of the formulas reference
type Formula struct {
	Indicator      string
	Expression     string
	AgeBand        string
	Interpretation string
}

// Formulas lists every indicator in report order
var Formulas = []Formula{
	{
		Indicator:      "Whipple",
		Expression:     "P(ages ending in 0 or 5) / P(band) × 100",
		AgeBand:        "23-62 (adjustable 20-30 / 55-70)",
		Interpretation: "100 when every age ends in 0 or 5; lower is better",
	},
	{
		Indicator:      "Myers",
		Expression:     "Σ|T_i − mean(T)| / (2·ΣS) × 100 with T_i = S_i + S_(i+1 mod 10)",
		AgeBand:        "10-89",
		Interpretation: "0 for a flat terminal-digit distribution",
	},
	{
		Indicator:      "Bachi",
		Expression:     "√Σ((p_i − 10)/10)² × 100 with p_i the share of digit i",
		AgeBand:        "20-89",
		Interpretation: "0 for a flat terminal-digit distribution",
	},
	{
		Indicator:      "UN index",
		Expression:     "mean(min(v/100, 2)) × 100 over Whipple, Myers, Bachi",
		AgeBand:        "as each component",
		Interpretation: "undefined when any component is undefined",
	},
	{
		Indicator:      "Benford",
		Expression:     "χ² = Σ(O_d − E_d)²/E_d with E_d = N·log10(1 + 1/d), 8 df",
		AgeBand:        "all counts (male, female, total)",
		Interpretation: "conformant when p ≥ α",
	},
	{
		Indicator:      "Moving average",
		Expression:     "m_0 = x_0, m_i = (x_(i−1) + x_i)/2",
		AgeBand:        "all ages",
		Interpretation: "raw vs smoothed compared with the Wilcoxon signed-rank test",
	},
	{
		Indicator:      "Sex ratio",
		Expression:     "male / female × 100",
		AgeBand:        "per age and overall",
		Interpretation: "undefined where the female count is zero",
	},
}

// Markdown returns the formulas reference page source
func Markdown() string {
	return formulasMarkdown
}

// Title returns the first heading of the reference page
func Title() string {
	for _, line := range strings.Split(formulasMarkdown, "\n") {
		if strings.HasPrefix(line, "# ") {
			return strings.TrimPrefix(line, "# ")
		}
	}
	return "Formulas"
}
