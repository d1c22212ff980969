package dataset

import (
	"context"

	"demoqual/domain/core"
	"demoqual/domain/demography"
)

// ReferenceTableID identifies the built-in census table
const ReferenceTableID core.TableID = "reference"

// referenceAges skips 104..106, which the source census does not report
func referenceAges() []float64 {
	ages := make([]float64, 0, 108)
	for a := 0; a <= 103; a++ {
		ages = append(ages, float64(a))
	}
	return append(ages, 107, 108, 109, 110)
}

func referenceMale() []float64 {
	return []float64{
		2637, 2258, 2575, 2830, 2884, 2856, 2940, 3028, 3199, 2582,
		3323, 2474, 3064, 2955, 2650, 3020, 2395, 2408, 2631, 2047,
		2793, 1552, 2106, 1821, 1690, 2174, 1509, 1402, 1534, 1097,
		2276, 923, 1455, 1208, 1129, 1691, 1135, 1119, 1129, 825,
		1532, 717, 1073, 747, 662, 1131, 681, 674, 690, 520,
		1066, 439, 626, 512, 473, 568, 431, 443, 410, 344,
		709, 303, 475, 394, 300, 403, 281, 272, 242, 195,
		445, 183, 254, 163, 135, 171, 100, 120, 98, 49,
		151, 52, 85, 55, 40, 38, 33, 29, 19, 19,
		34, 8, 18, 12, 9, 12, 10, 5, 3, 43,
		6, 1, 1, 0, 1, 1, 1, 1,
	}
}

func referenceFemale() []float64 {
	return []float64{
		2552, 2136, 2381, 2735, 2651, 2674, 2692, 2802, 2707, 2234,
		2984, 2083, 2727, 2518, 2432, 2604, 2372, 2257, 2575, 2106,
		2908, 1629, 2275, 1911, 1842, 2422, 1602, 1514, 1604, 1158,
		2441, 965, 1372, 1316, 1090, 1863, 1181, 1125, 1042, 914,
		1579, 653, 999, 734, 636, 1009, 618, 685, 681, 591,
		1125, 535, 656, 533, 465, 641, 450, 434, 406, 323,
		817, 376, 506, 370, 290, 423, 271, 252, 251, 212,
		512, 205, 267, 149, 98, 189, 101, 129, 88, 65,
		200, 73, 89, 56, 42, 59, 19, 25, 24, 27,
		54, 11, 26, 10, 8, 10, 4, 5, 6, 23,
		7, 0, 3, 2, 1, 0, 0, 1,
	}
}

// ReferenceTable returns a fresh copy of the built-in census table
func ReferenceTable() *demography.Table {
	return &demography.Table{
		ID:     ReferenceTableID,
		Ages:   referenceAges(),
		Male:   referenceMale(),
		Female: referenceFemale(),
	}
}

// ReferenceProvider serves the built-in table
type ReferenceProvider struct{}

// NewReferenceProvider creates a provider for the built-in table
func NewReferenceProvider() *ReferenceProvider {
	return &ReferenceProvider{}
}

// LoadTable returns a fresh copy of the built-in table
func (p *ReferenceProvider) LoadTable(ctx context.Context) (*demography.Table, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return ReferenceTable(), nil
}

// Name describes the source for logs and report metadata
func (p *ReferenceProvider) Name() string {
	return "built-in reference table"
}
