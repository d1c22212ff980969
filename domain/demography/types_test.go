package demography

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"demoqual/domain/core"
)

func TestNewAgeSeries(t *testing.T) {
	s, err := NewAgeSeries([]float64{0, 1, 2}, []float64{5, 0, 7})
	require.NoError(t, err)
	assert.Equal(t, 3, s.Len())
	assert.Equal(t, 12.0, s.Total())

	age, pop := s.At(2)
	assert.Equal(t, 2.0, age)
	assert.Equal(t, 7.0, pop)

	pops := s.Populations()
	pops[0] = 99
	_, pop = s.At(0)
	assert.Equal(t, 5.0, pop, "accessors return copies")
}

func TestNewAgeSeries_Invalid(t *testing.T) {
	tests := []struct {
		name   string
		ages   []float64
		pops   []float64
		target error
	}{
		{"length", []float64{0, 1}, []float64{1}, core.ErrLengthMismatch},
		{"duplicate age", []float64{0, 0}, []float64{1, 1}, core.ErrUnorderedAges},
		{"decreasing", []float64{2, 1}, []float64{1, 1}, core.ErrUnorderedAges},
		{"negative count", []float64{0, 1}, []float64{1, -1}, core.ErrNegativeCount},
		{"nan count", []float64{0, 1}, []float64{1, math.NaN()}, core.ErrNegativeCount},
		{"negative age", []float64{-1, 1}, []float64{1, 1}, core.ErrInvalidTable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewAgeSeries(tt.ages, tt.pops)
			require.Error(t, err)
			assert.True(t, errors.Is(err, tt.target))
			assert.True(t, errors.Is(err, core.ErrInvalidTable))
		})
	}
}

func TestTable(t *testing.T) {
	table, err := NewTable("t", []float64{0, 1}, []float64{3, 4}, []float64{1, 2})
	require.NoError(t, err)

	assert.Equal(t, []float64{4, 6}, table.Total())

	total, err := table.Series(GroupTotal)
	require.NoError(t, err)
	assert.Equal(t, 10.0, total.Total())

	_, err = table.Column(Group("other"))
	assert.True(t, errors.Is(err, core.ErrGroupNotFound))
	assert.True(t, core.IsNotFoundError(err))

	other, err := NewTable("u", []float64{0, 1}, []float64{3, 4}, []float64{1, 2})
	require.NoError(t, err)
	assert.True(t, table.Fingerprint().Equals(other.Fingerprint()))
}

func TestTable_Validate(t *testing.T) {
	var nilTable *Table
	assert.True(t, errors.Is(nilTable.Validate(), core.ErrTableNotFound))

	empty := &Table{}
	assert.True(t, errors.Is(empty.Validate(), core.ErrInsufficientData))
}

func TestParseGroup(t *testing.T) {
	for _, g := range Groups {
		parsed, err := ParseGroup(string(g))
		require.NoError(t, err)
		assert.Equal(t, g, parsed)
	}
	_, err := ParseGroup("children")
	assert.True(t, errors.Is(err, core.ErrGroupNotFound))
}
