package period

import (
	"fmt"

	algofft "github.com/MeKo-Christian/algo-fft"
	"github.com/cwbudde/algo-vecmath"

	"github.com/cwbudde/algo-mstl/core"
)

// ErrInvalidArgument is returned for malformed input or options.
var ErrInvalidArgument = core.ErrInvalidArgument

// MinLength is the shortest series with a usable period (p = 2 needs n > 4).
const MinLength = 5

// Spectrum is the one-sided periodogram of a series of length N.
type Spectrum struct {
	// N is the series length.
	N int
	// Power holds |X[k]|² / Σw² for k = 0 .. N/2.
	Power []float64
}

// Period returns N/k, the period of bin k, or 0 for the DC bin.
func (s *Spectrum) Period(k int) float64 {
	if k <= 0 {
		return 0
	}
	return float64(s.N) / float64(k)
}

// Periodogram computes the tapered periodogram of series. Options other than
// the taper and detrending are ignored.
func Periodogram[F core.Float](series []F, opts ...Option) (*Spectrum, error) {
	cfg, err := newConfig(opts)
	if err != nil {
		return nil, err
	}
	return periodogram(series, cfg)
}

func periodogram[F core.Float](series []F, cfg config) (*Spectrum, error) {
	n := len(series)
	if n < MinLength {
		return nil, fmt.Errorf("period: %w: series of length %d is shorter than %d", ErrInvalidArgument, n, MinLength)
	}

	x := make([]float64, n)
	for i, v := range series {
		if !core.IsFinite(float64(v)) {
			return nil, fmt.Errorf("period: %w: non-finite value at index %d", ErrInvalidArgument, i)
		}
		x[i] = float64(v)
	}

	if cfg.detrend {
		detrend(x)
	} else {
		mean := vecmath.Sum(x) / float64(n)
		for i := range x {
			x[i] -= mean
		}
	}
	energy := cfg.taper.apply(x)

	plan, err := algofft.NewPlan64(n)
	if err != nil {
		return nil, fmt.Errorf("period: fft plan for length %d: %w", n, err)
	}
	in := make([]complex128, n)
	for i, v := range x {
		in[i] = complex(v, 0)
	}
	out := make([]complex128, n)
	if err := plan.Forward(out, in); err != nil {
		return nil, fmt.Errorf("period: fft: %w", err)
	}

	bins := n/2 + 1
	re := make([]float64, bins)
	im := make([]float64, bins)
	for k := range bins {
		re[k] = real(out[k])
		im[k] = imag(out[k])
	}
	power := make([]float64, bins)
	vecmath.Power(power, re, im)
	if energy > 0 {
		vecmath.ScaleBlockInPlace(power, 1/energy)
	}

	return &Spectrum{N: n, Power: power}, nil
}

// detrend removes the least-squares line from x in place.
func detrend(x []float64) {
	n := len(x)
	center := float64(n-1) / 2
	t := make([]float64, n)
	for i := range t {
		t[i] = float64(i) - center
	}

	mean := vecmath.Sum(x) / float64(n)
	slope := vecmath.DotProduct(t, x) / vecmath.DotProduct(t, t)

	line := make([]float64, n)
	vecmath.ScaleBlock(line, t, slope)
	for i := range x {
		x[i] -= mean + line[i]
	}
}
