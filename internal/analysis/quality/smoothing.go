package quality

// MovingAverage2 returns the 2-term moving average of series. The first
// element is copied; each later element is the mean of itself and its
// predecessor. The output has the input's length.
func MovingAverage2(series []float64) []float64 {
	out := make([]float64, len(series))
	if len(series) == 0 {
		return out
	}

	out[0] = series[0]
	for i := 1; i < len(series); i++ {
		out[i] = (series[i-1] + series[i]) / 2
	}
	return out
}

// MovingWindow returns the k-term centred moving mean over complete windows
// only, so the result has len(series)-k+1 elements. k <= 1 returns a copy;
// k larger than the series returns an empty slice.
func MovingWindow(series []float64, k int) []float64 {
	if k <= 1 {
		out := make([]float64, len(series))
		copy(out, series)
		return out
	}
	if k > len(series) {
		return []float64{}
	}

	out := make([]float64, len(series)-k+1)
	sum := 0.0
	for i := 0; i < k; i++ {
		sum += series[i]
	}
	out[0] = sum / float64(k)
	for i := k; i < len(series); i++ {
		sum += series[i] - series[i-k]
		out[i-k+1] = sum / float64(k)
	}
	return out
}
