package demography

import (
	"fmt"
	"math"

	"demoqual/domain/core"
)

// Group names one of the population series carried by a Table
type Group string

const (
	GroupMale   Group = "male"
	GroupFemale Group = "female"
	GroupTotal  Group = "total"
)

// Groups lists every group in report order
var Groups = []Group{GroupMale, GroupFemale, GroupTotal}

// ParseGroup parses a group name
func ParseGroup(s string) (Group, error) {
	switch Group(s) {
	case GroupMale, GroupFemale, GroupTotal:
		return Group(s), nil
	}
	return "", fmt.Errorf("%w: %q", core.ErrGroupNotFound, s)
}

// AgeSeries is an ordered, immutable sequence of (age, population) pairs.
// INVARIANTS:
// - ages strictly increasing
// - populations finite and non-negative
type AgeSeries struct {
	ages []float64
	pops []float64
}

// NewAgeSeries validates and copies the given columns
func NewAgeSeries(ages, pops []float64) (AgeSeries, error) {
	if len(ages) != len(pops) {
		return AgeSeries{}, core.NewTableError(core.ErrLengthMismatch, "ages=%d populations=%d", len(ages), len(pops))
	}
	if err := validateAges(ages); err != nil {
		return AgeSeries{}, err
	}
	if err := validateCounts("population", pops); err != nil {
		return AgeSeries{}, err
	}
	return AgeSeries{ages: clone(ages), pops: clone(pops)}, nil
}

// Len returns the number of entries
func (s AgeSeries) Len() int { return len(s.ages) }

// At returns the i-th (age, population) pair
func (s AgeSeries) At(i int) (age, pop float64) { return s.ages[i], s.pops[i] }

// Ages returns a copy of the age column
func (s AgeSeries) Ages() []float64 { return clone(s.ages) }

// Populations returns a copy of the population column
func (s AgeSeries) Populations() []float64 { return clone(s.pops) }

// Total returns the population summed over all ages
func (s AgeSeries) Total() float64 {
	sum := 0.0
	for _, p := range s.pops {
		sum += p
	}
	return sum
}

// Table is the age-by-sex population table every analysis runs on
type Table struct {
	ID     core.TableID `json:"id,omitempty"`
	Ages   []float64    `json:"ages"`
	Male   []float64    `json:"male"`
	Female []float64    `json:"female"`
}

// NewTable builds and validates a table
func NewTable(id core.TableID, ages, male, female []float64) (*Table, error) {
	t := &Table{ID: id, Ages: clone(ages), Male: clone(male), Female: clone(female)}
	if err := t.Validate(); err != nil {
		return nil, err
	}
	return t, nil
}

// Validate checks column lengths, age ordering and count signs
func (t *Table) Validate() error {
	if t == nil {
		return core.ErrTableNotFound
	}
	if len(t.Ages) == 0 {
		return core.NewTableError(core.ErrInsufficientData, "table has no rows")
	}
	if len(t.Male) != len(t.Ages) || len(t.Female) != len(t.Ages) {
		return core.NewTableError(core.ErrLengthMismatch, "ages=%d male=%d female=%d", len(t.Ages), len(t.Male), len(t.Female))
	}
	if err := validateAges(t.Ages); err != nil {
		return err
	}
	if err := validateCounts("male", t.Male); err != nil {
		return err
	}
	return validateCounts("female", t.Female)
}

// Len returns the number of age rows
func (t *Table) Len() int { return len(t.Ages) }

// Total returns the element-wise male+female column
func (t *Table) Total() []float64 {
	total := make([]float64, len(t.Ages))
	for i := range total {
		total[i] = t.Male[i] + t.Female[i]
	}
	return total
}

// Column returns a copy of the population column for a group
func (t *Table) Column(g Group) ([]float64, error) {
	switch g {
	case GroupMale:
		return clone(t.Male), nil
	case GroupFemale:
		return clone(t.Female), nil
	case GroupTotal:
		return t.Total(), nil
	}
	return nil, fmt.Errorf("%w: %q", core.ErrGroupNotFound, g)
}

// Series returns the AgeSeries for a group
func (t *Table) Series(g Group) (AgeSeries, error) {
	col, err := t.Column(g)
	if err != nil {
		return AgeSeries{}, err
	}
	return NewAgeSeries(t.Ages, col)
}

// Fingerprint hashes the table contents
func (t *Table) Fingerprint() core.Hash {
	return core.ComputeColumnsHash(map[string][]float64{
		"age":    t.Ages,
		"male":   t.Male,
		"female": t.Female,
	})
}

func validateAges(ages []float64) error {
	for i, a := range ages {
		if math.IsNaN(a) || math.IsInf(a, 0) || a < 0 {
			return core.NewTableError(core.ErrInvalidTable, "age at row %d is %v", i, a)
		}
		if i > 0 && a <= ages[i-1] {
			return core.NewTableError(core.ErrUnorderedAges, "age %v at row %d follows %v", a, i, ages[i-1])
		}
	}
	return nil
}

func validateCounts(name string, counts []float64) error {
	for i, c := range counts {
		if math.IsNaN(c) || math.IsInf(c, 0) || c < 0 {
			return core.NewTableError(core.ErrNegativeCount, "%s at row %d is %v", name, i, c)
		}
	}
	return nil
}

func clone(in []float64) []float64 {
	out := make([]float64, len(in))
	copy(out, in)
	return out
}
