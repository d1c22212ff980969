package quality

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMovingAverage2(t *testing.T) {
	tests := []struct {
		name string
		in   []float64
		want []float64
	}{
		{"empty", []float64{}, []float64{}},
		{"nil", nil, []float64{}},
		{"single", []float64{7}, []float64{7}},
		{"pair", []float64{2, 4}, []float64{2, 3}},
		{"series", []float64{10, 20, 10, 0}, []float64{10, 15, 15, 5}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, MovingAverage2(tt.in))
		})
	}
}

func TestMovingAverage2_DoesNotMutateInput(t *testing.T) {
	in := []float64{1, 3, 5}
	_ = MovingAverage2(in)
	assert.Equal(t, []float64{1, 3, 5}, in)
}

func TestMovingWindow(t *testing.T) {
	in := []float64{1, 2, 3, 4, 5}

	assert.Equal(t, []float64{2, 3, 4}, MovingWindow(in, 3))
	assert.Equal(t, []float64{1.5, 2.5, 3.5, 4.5}, MovingWindow(in, 2))
	assert.Equal(t, []float64{3}, MovingWindow(in, 5))
	assert.Equal(t, []float64{}, MovingWindow(in, 6))

	cp := MovingWindow(in, 1)
	assert.Equal(t, in, cp)
	cp[0] = 99
	assert.Equal(t, 1.0, in[0])
}

func TestMovingAverage2_TwiceIdempotentOnlyWhenConstant(t *testing.T) {
	constant := []float64{4, 4, 4, 4}
	once := MovingAverage2(constant)
	assert.Equal(t, constant, once)
	assert.Equal(t, once, MovingAverage2(once))

	varying := []float64{0, 2, 4}
	once = MovingAverage2(varying)
	twice := MovingAverage2(once)
	assert.Equal(t, []float64{0, 1, 3}, once)
	assert.Equal(t, []float64{0, 0.5, 2}, twice)
	assert.NotEqual(t, once, twice)
}
