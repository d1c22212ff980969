package quality

import (
	"encoding/json"
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"demoqual/domain/core"
	"demoqual/domain/demography"
	"demoqual/domain/quality"
	"demoqual/internal/testkit"
)

func TestAnalyzer_ReferenceReport(t *testing.T) {
	report, err := NewAnalyzer().Analyze(testkit.ReferenceTable(), DefaultParams())
	require.NoError(t, err)

	assert.Equal(t, 105042.0, report.MalePopulation)
	assert.Equal(t, 102505.0, report.FemalePopulation)
	assert.Equal(t, 207547.0, report.TotalPopulation)
	assert.InDelta(t, 100.0, report.MalePercent+report.FemalePercent, 1e-9)
	require.Len(t, report.Groups, 3)

	for group, want := range referenceGolden {
		gr, err := report.Group(group)
		require.NoError(t, err)
		assert.InDelta(t, want.whipple, gr.Whipple.Value, goldenTolerance)
		assert.InDelta(t, want.myers, gr.Myers.Value, goldenTolerance)
		assert.InDelta(t, want.bachi, gr.Bachi.Value, goldenTolerance)
		assert.InDelta(t, want.un, gr.UN.Value, goldenTolerance)
		assert.Equal(t, quality.LabelExcellent, gr.Whipple.Label)
		assert.Len(t, gr.MovingAverage, 108)
		assert.True(t, gr.Smoothing.IsDefined())
	}

	total, err := report.Group(demography.GroupTotal)
	require.NoError(t, err)
	assert.Equal(t, [10]float64{30153, 17576, 23033, 21031, 19526, 23958, 18825, 18730, 19340, 15375}, [10]float64(total.TerminalDigits))

	assert.Equal(t, quality.LabelNonConformant, report.BenfordLabel)
	assert.Equal(t, 2, report.Score.Total)
	assert.Equal(t, 2, report.Score.Whipple)
	assert.Equal(t, quality.LabelAcceptable, report.Score.Label)
	assert.Len(t, report.Pyramid, 20)
	assert.Len(t, report.PerAgeRatio, 108)
}

func TestAnalyzer_Deterministic(t *testing.T) {
	a := NewAnalyzer()
	first, err := a.Analyze(testkit.ReferenceTable(), DefaultParams())
	require.NoError(t, err)
	second, err := a.Analyze(testkit.ReferenceTable(), DefaultParams())
	require.NoError(t, err)

	assert.True(t, first.Fingerprint.Equals(second.Fingerprint))

	firstJSON, err := json.Marshal(first)
	require.NoError(t, err)
	secondJSON, err := json.Marshal(second)
	require.NoError(t, err)
	assert.JSONEq(t, string(firstJSON), string(secondJSON))

	params := DefaultParams()
	params.WhippleMinAge = 25
	third, err := a.Analyze(testkit.ReferenceTable(), params)
	require.NoError(t, err)
	assert.False(t, first.Fingerprint.Equals(third.Fingerprint))
}

func TestAnalyzer_DoesNotMutateTable(t *testing.T) {
	table := testkit.ReferenceTable()
	before := table.Fingerprint()

	report, err := NewAnalyzer().Analyze(table, DefaultParams())
	require.NoError(t, err)
	report.Male[0] = -1

	assert.True(t, before.Equals(table.Fingerprint()))
}

func TestAnalyzer_Errors(t *testing.T) {
	a := NewAnalyzer()

	_, err := a.Analyze(nil, DefaultParams())
	assert.True(t, errors.Is(err, core.ErrTableNotFound))

	bad := &demography.Table{Ages: []float64{0, 1}, Male: []float64{1}, Female: []float64{1, 2}}
	_, err = a.Analyze(bad, DefaultParams())
	assert.True(t, errors.Is(err, core.ErrLengthMismatch))
	assert.True(t, errors.Is(err, core.ErrInvalidTable))

	params := DefaultParams()
	params.WhippleMinAge, params.WhippleMaxAge = 30, 20
	_, err = a.Analyze(testkit.ReferenceTable(), params)
	assert.True(t, errors.Is(err, core.ErrInvalidParams))
}

func TestAnalyzer_EmptyPopulationEncodesNulls(t *testing.T) {
	report, err := NewAnalyzer().Analyze(testkit.ConstantTable(99, 0), DefaultParams())
	require.NoError(t, err)

	total, err := report.Group(demography.GroupTotal)
	require.NoError(t, err)
	assert.True(t, math.IsNaN(total.Whipple.Value))
	assert.True(t, math.IsNaN(total.UN.Value))
	assert.Equal(t, quality.LabelUndefined, total.Whipple.Label)
	assert.Equal(t, quality.ReasonZeroDifferences, total.Smoothing.Reason)
	assert.Equal(t, quality.LabelUndefined, report.BenfordLabel)
	assert.Equal(t, quality.LabelInsufficient, report.Score.Label)

	raw, err := json.Marshal(report)
	require.NoError(t, err)
	assert.Contains(t, string(raw), `"value":null`)
	assert.NotContains(t, string(raw), "generated_at")
}

func TestAnalyzer_HeapingLowersScore(t *testing.T) {
	smooth := testkit.ConstantTable(99, 1000)
	heaped := &demography.Table{ID: "heaped"}
	for a := 0; a <= 99; a++ {
		heaped.Ages = append(heaped.Ages, float64(a))
		pop := 0.0
		if a%5 == 0 {
			pop = 1000
		}
		heaped.Male = append(heaped.Male, pop)
		heaped.Female = append(heaped.Female, pop)
	}

	a := NewAnalyzer()
	smoothReport, err := a.Analyze(smooth, DefaultParams())
	require.NoError(t, err)
	heapedReport, err := a.Analyze(heaped, DefaultParams())
	require.NoError(t, err)

	assert.Greater(t, smoothReport.Score.Myers, heapedReport.Score.Myers)
	assert.Greater(t, smoothReport.Score.Bachi, heapedReport.Score.Bachi)
}

func TestParams_DefaultsMatchThresholds(t *testing.T) {
	p := DefaultParams()
	assert.Equal(t, DefaultWhippleMinAge, p.WhippleMinAge)
	assert.Equal(t, DefaultWhippleMaxAge, p.WhippleMaxAge)
	assert.Equal(t, quality.DefaultThresholds(), p.Thresholds)
	assert.False(t, p.Fingerprint().IsEmpty())
}
