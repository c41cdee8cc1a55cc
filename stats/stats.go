// Package stats provides the summary statistics used to judge a
// decomposition: moments, medians, correlation and component strength.
//
// All functions accept float32 or float64 slices and accumulate in float64.
package stats

import (
	"math"
	"slices"

	"github.com/cwbudde/algo-mstl/core"
)

// Summary holds descriptive statistics of one component.
type Summary struct {
	Length   int     `json:"length"`
	Mean     float64 `json:"mean"`
	Variance float64 `json:"variance"` // population variance
	StdDev   float64 `json:"stdDev"`
	RMS      float64 `json:"rms"`
	Min      float64 `json:"min"`
	MinPos   int     `json:"minPos"`
	Max      float64 `json:"max"`
	MaxPos   int     `json:"maxPos"`
	Skewness float64 `json:"skewness"`
	Kurtosis float64 `json:"kurtosis"` // excess kurtosis
}

// Summarize computes all statistics in a single pass using Welford's online
// algorithm for the higher-order moments.
func Summarize[F core.Float](x []F) Summary {
	n := len(x)
	if n == 0 {
		return Summary{}
	}

	var (
		mean, m2, m3, m4 float64
		sumSq            float64
		maxVal           = float64(x[0])
		minVal           = float64(x[0])
		maxPos, minPos   int
	)

	for i, xv := range x {
		v := float64(xv)
		ni := float64(i + 1)
		delta := v - mean
		deltaN := delta / ni
		deltaN2 := deltaN * deltaN
		term1 := delta * deltaN * float64(i)

		// M4 must be updated before M3, and M3 before M2.
		m4 += term1*deltaN2*(ni*ni-3*ni+3) + 6*deltaN2*m2 - 4*deltaN*m3
		m3 += term1*deltaN*(float64(i)-1) - 3*deltaN*m2
		m2 += term1
		mean += deltaN

		sumSq += v * v

		if v > maxVal {
			maxVal = v
			maxPos = i
		}
		if v < minVal {
			minVal = v
			minPos = i
		}
	}

	nf := float64(n)
	variance := m2 / nf

	var skewness, kurtosis float64
	if variance > 0 {
		skewness = (m3 / nf) / (variance * math.Sqrt(variance))
		kurtosis = (m4/nf)/(variance*variance) - 3
	}

	return Summary{
		Length:   n,
		Mean:     mean,
		Variance: variance,
		StdDev:   math.Sqrt(variance),
		RMS:      math.Sqrt(sumSq / nf),
		Min:      minVal,
		MinPos:   minPos,
		Max:      maxVal,
		MaxPos:   maxPos,
		Skewness: skewness,
		Kurtosis: kurtosis,
	}
}

// Mean returns the arithmetic mean using Kahan summation.
func Mean[F core.Float](x []F) float64 {
	if len(x) == 0 {
		return 0
	}

	var sum, c float64
	for _, xv := range x {
		y := float64(xv) - c
		t := sum + y
		c = (t - sum) - y
		sum = t
	}

	return sum / float64(len(x))
}

// Variance returns the population variance.
func Variance[F core.Float](x []F) float64 {
	if len(x) == 0 {
		return 0
	}

	var mean, m2 float64
	for i, xv := range x {
		delta := float64(xv) - mean
		mean += delta / float64(i+1)
		m2 += delta * (float64(xv) - mean)
	}

	return m2 / float64(len(x))
}

// Median returns the median of x without modifying it.
func Median[F core.Float](x []F) float64 {
	return MedianInPlace(slices.Clone(x))
}

// MedianInPlace returns the median of x, sorting x as a side effect. For an
// even length it averages the two middle values.
func MedianInPlace[F core.Float](x []F) float64 {
	n := len(x)
	if n == 0 {
		return 0
	}

	slices.Sort(x)
	return (float64(x[(n-1)/2]) + float64(x[n/2])) / 2
}

// Correlation returns the Pearson correlation coefficient of a and b.
// It returns 0 when the lengths differ or either input is constant.
func Correlation[F core.Float](a, b []F) float64 {
	if len(a) != len(b) || len(a) == 0 {
		return 0
	}

	ma, mb := Mean(a), Mean(b)
	var sab, saa, sbb float64
	for i := range a {
		da := float64(a[i]) - ma
		db := float64(b[i]) - mb
		sab += da * db
		saa += da * da
		sbb += db * db
	}

	if saa == 0 || sbb == 0 {
		return 0
	}
	return sab / math.Sqrt(saa*sbb)
}

// Strength measures how much of the variation of component+remainder the
// component explains: max(0, 1 - Var(remainder)/Var(component+remainder)).
// It returns 0 for mismatched lengths or a constant sum.
func Strength[F core.Float](component, remainder []F) float64 {
	if len(component) != len(remainder) || len(component) == 0 {
		return 0
	}

	sum := make([]float64, len(component))
	for i := range component {
		sum[i] = float64(component[i]) + float64(remainder[i])
	}

	total := Variance(sum)
	if total == 0 {
		return 0
	}
	return max(0, 1-Variance(remainder)/total)
}
