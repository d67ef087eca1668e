package mathutil

import "math"

// LogZero represents log(0), used as negative infinity in log-domain arithmetic.
const LogZero = -1e30

// LogSumExp returns log(sum(exp(v))). An empty slice yields LogZero.
func LogSumExp(v []float64) float64 {
	if len(v) == 0 {
		return LogZero
	}
	m := v[0]
	for _, x := range v[1:] {
		if x > m {
			m = x
		}
	}
	if m <= LogZero {
		return LogZero
	}
	sum := 0.0
	for _, x := range v {
		sum += math.Exp(x - m)
	}
	return m + math.Log(sum)
}

// LogSumExpStrided is LogSumExp over v[off], v[off+stride], ... for n elements.
// It lets column reductions run over a row-major buffer without copying.
func LogSumExpStrided(v []float64, off, stride, n int) float64 {
	if n == 0 {
		return LogZero
	}
	m := v[off]
	for i := 1; i < n; i++ {
		if x := v[off+i*stride]; x > m {
			m = x
		}
	}
	if m <= LogZero {
		return LogZero
	}
	sum := 0.0
	for i := 0; i < n; i++ {
		sum += math.Exp(v[off+i*stride] - m)
	}
	return m + math.Log(sum)
}
