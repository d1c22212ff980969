package quality

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"demoqual/domain/demography"
	"demoqual/internal/testkit"
)

func TestLeadingDigit(t *testing.T) {
	tests := []struct {
		name  string
		in    float64
		digit int
		ok    bool
	}{
		{"zero", 0, 0, false},
		{"negative zero", math.Copysign(0, -1), 0, false},
		{"nan", math.NaN(), 0, false},
		{"inf", math.Inf(1), 0, false},
		{"negative inf", math.Inf(-1), 0, false},
		{"negative", -523, 5, true},
		{"single digit", 7, 7, true},
		{"small fraction", 0.0042, 4, true},
		{"large", 9.1e12, 9, true},
		{"tiny", 3e-9, 3, true},
		{"one", 1, 1, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d, ok := LeadingDigit(tt.in)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.digit, d)
		})
	}
}

func TestTerminalDigits_Reference(t *testing.T) {
	table := testkit.ReferenceTable()
	series, err := table.Series(demography.GroupTotal)
	require.NoError(t, err)

	dist := TerminalDigits(series, 0, math.Inf(1))
	want := [10]float64{30153, 17576, 23033, 21031, 19526, 23958, 18825, 18730, 19340, 15375}
	assert.Equal(t, want, [10]float64(dist))
	assert.Equal(t, 207547.0, dist.Sum())
}

func TestTerminalDigits_Band(t *testing.T) {
	series := testkit.FlatSeries(0, 29, 10)

	dist := TerminalDigits(series, 10, 19)
	for d := 0; d < 10; d++ {
		assert.Equal(t, 10.0, dist[d], "digit %d", d)
	}

	pct := dist.Percentages()
	for d := 0; d < 10; d++ {
		assert.InDelta(t, 10.0, pct[d], 1e-12)
	}
}

func TestLeadingDigitCounts_SkipsUndefined(t *testing.T) {
	counts, n := LeadingDigitCounts([]float64{0, 1, 19, 250, math.NaN(), -3, math.Inf(1)})
	assert.Equal(t, 4, n)
	assert.Equal(t, [9]int{2, 1, 1, 0, 0, 0, 0, 0, 0}, counts)
}
