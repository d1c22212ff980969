package quality

import (
	"fmt"

	"gonum.org/v1/gonum/floats"

	"demoqual/domain/demography"
)

// Age pyramid defaults and bounds
const (
	DefaultPyramidWidth  = 5
	DefaultPyramidMaxAge = 100
	MinPyramidMaxAge     = 50
	MaxPyramidMaxAge     = 110
)

// PyramidBand aggregates male and female counts over [Start, End)
type PyramidBand struct {
	Label         string  `json:"label"`
	Start         int     `json:"start"`
	End           int     `json:"end"`
	Male          float64 `json:"male"`
	Female        float64 `json:"female"`
	MalePercent   float64 `json:"male_percent"`
	FemalePercent float64 `json:"female_percent"`
}

// Pyramid groups the table into bands of the given width starting at age 0,
// covering every band that starts below maxAge. Percentages are relative to
// each sex's total over the bands.
func Pyramid(t *demography.Table, width, maxAge int) []PyramidBand {
	if width <= 0 || maxAge <= 0 {
		return []PyramidBand{}
	}

	bands := make([]PyramidBand, 0, maxAge/width+1)
	for start := 0; start < maxAge; start += width {
		end := start + width
		band := PyramidBand{
			Label: fmt.Sprintf("%d-%d", start, end-1),
			Start: start,
			End:   end,
		}
		for i, age := range t.Ages {
			if age >= float64(start) && age < float64(end) {
				band.Male += t.Male[i]
				band.Female += t.Female[i]
			}
		}
		bands = append(bands, band)
	}

	males := make([]float64, len(bands))
	females := make([]float64, len(bands))
	for i, b := range bands {
		males[i] = b.Male
		females[i] = b.Female
	}
	totalMale := floats.Sum(males)
	totalFemale := floats.Sum(females)

	for i := range bands {
		if totalMale > 0 {
			bands[i].MalePercent = bands[i].Male / totalMale * 100
		}
		if totalFemale > 0 {
			bands[i].FemalePercent = bands[i].Female / totalFemale * 100
		}
	}
	return bands
}
