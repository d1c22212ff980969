package testkit

import (
	"math"

	"demoqual/domain/core"
	"demoqual/domain/demography"
	"demoqual/internal/dataset"
)

// FlatSeries returns ages minAge..maxAge with the same population at every age,
// so every terminal digit carries the same weight when the span covers whole decades.
func FlatSeries(minAge, maxAge int, perAge float64) demography.AgeSeries {
	ages := make([]float64, 0, maxAge-minAge+1)
	pops := make([]float64, 0, maxAge-minAge+1)
	for a := minAge; a <= maxAge; a++ {
		ages = append(ages, float64(a))
		pops = append(pops, perAge)
	}
	s, err := demography.NewAgeSeries(ages, pops)
	if err != nil {
		panic(err)
	}
	return s
}

// HeapedSeries returns ages minAge..maxAge with population only at ages ending in 0 or 5
func HeapedSeries(minAge, maxAge int, perAge float64) demography.AgeSeries {
	ages := make([]float64, 0, maxAge-minAge+1)
	pops := make([]float64, 0, maxAge-minAge+1)
	for a := minAge; a <= maxAge; a++ {
		ages = append(ages, float64(a))
		if a%5 == 0 {
			pops = append(pops, perAge)
		} else {
			pops = append(pops, 0)
		}
	}
	s, err := demography.NewAgeSeries(ages, pops)
	if err != nil {
		panic(err)
	}
	return s
}

// BenfordObservations returns n values whose leading digits follow Benford's
// law as closely as integer counts allow
func BenfordObservations(n int) []float64 {
	obs := make([]float64, 0, n)
	for d := 1; d <= 9; d++ {
		count := int(math.Round(math.Log10(1+1/float64(d)) * float64(n)))
		for i := 0; i < count; i++ {
			// Vary the magnitude, keep the leading digit.
			obs = append(obs, float64(d)*math.Pow(10, float64(i%4)))
		}
	}
	return obs
}

// UniformLeadingObservations returns n values spread evenly over leading digits 1..9
func UniformLeadingObservations(n int) []float64 {
	obs := make([]float64, n)
	for i := range obs {
		obs[i] = float64(i%9 + 1)
	}
	return obs
}

// ConstantTable returns a table with identical male and female counts at every age
func ConstantTable(maxAge int, perAge float64) *demography.Table {
	ages := make([]float64, maxAge+1)
	male := make([]float64, maxAge+1)
	female := make([]float64, maxAge+1)
	for a := range ages {
		ages[a] = float64(a)
		male[a] = perAge
		female[a] = perAge
	}
	return &demography.Table{ID: core.TableID("constant"), Ages: ages, Male: male, Female: female}
}

// ReferenceTable exposes the built-in census table to tests
func ReferenceTable() *demography.Table {
	return dataset.ReferenceTable()
}
