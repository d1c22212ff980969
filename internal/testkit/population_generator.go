package testkit

import (
	"math"
	"math/rand"

	"demoqual/domain/core"
	"demoqual/domain/demography"
)

// PopulationGeneratorConfig configures the synthetic age/sex table generator
type PopulationGeneratorConfig struct {
	MaxAge      int     `json:"max_age"`
	BirthCohort float64 `json:"birth_cohort"` // population at age 0 (per sex)
	DecayRate   float64 `json:"decay_rate"`   // exponential attrition per year of age
	Heaping     float64 `json:"heaping"`      // share of each non-0/5 age shifted to the nearest 0/5 age
	SexRatio    float64 `json:"sex_ratio"`    // males per 100 females
	Noise       float64 `json:"noise"`        // relative multiplicative noise
	Seed        int64   `json:"seed"`
}

// DefaultPopulationConfig returns a smooth, unheaped population
func DefaultPopulationConfig() PopulationGeneratorConfig {
	return PopulationGeneratorConfig{
		MaxAge:      100,
		BirthCohort: 5000,
		DecayRate:   0.03,
		Heaping:     0,
		SexRatio:    102,
		Noise:       0,
		Seed:        42,
	}
}

// PopulationGenerator builds deterministic synthetic tables
type PopulationGenerator struct {
	config PopulationGeneratorConfig
	rng    *rand.Rand
}

// NewPopulationGenerator creates a new generator
func NewPopulationGenerator(config PopulationGeneratorConfig) *PopulationGenerator {
	return &PopulationGenerator{
		config: config,
		rng:    rand.New(rand.NewSource(config.Seed)),
	}
}

// Generate produces a table for ages 0..MaxAge
func (g *PopulationGenerator) Generate() (*demography.Table, error) {
	n := g.config.MaxAge + 1
	ages := make([]float64, n)
	female := make([]float64, n)
	for a := 0; a < n; a++ {
		ages[a] = float64(a)
		base := g.config.BirthCohort * math.Exp(-g.config.DecayRate*float64(a))
		if g.config.Noise > 0 {
			base *= 1 + g.config.Noise*(2*g.rng.Float64()-1)
		}
		female[a] = math.Round(base)
	}

	female = g.heap(female)
	male := make([]float64, n)
	for a := range female {
		male[a] = math.Round(female[a] * g.config.SexRatio / 100)
	}

	return demography.NewTable(core.TableID("synthetic"), ages, male, female)
}

// heap moves a share of every age's population onto the nearest age ending in 0 or 5
func (g *PopulationGenerator) heap(pops []float64) []float64 {
	out := make([]float64, len(pops))
	copy(out, pops)
	if g.config.Heaping <= 0 {
		return out
	}

	for a := range pops {
		if a%5 == 0 {
			continue
		}
		target := int(math.Round(float64(a)/5) * 5)
		if target >= len(pops) {
			target = len(pops) - 1 - (len(pops)-1)%5
		}
		moved := math.Round(pops[a] * g.config.Heaping)
		out[a] -= moved
		out[target] += moved
	}
	return out
}
