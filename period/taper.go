package period

import (
	"fmt"
	"math"

	"github.com/cwbudde/algo-vecmath"
)

// Taper selects the data window applied before the FFT.
type Taper int

const (
	// TaperHann is the periodic Hann window.
	TaperHann Taper = iota
	// TaperHamming is the periodic Hamming window.
	TaperHamming
	// TaperRectangular leaves the data unweighted.
	TaperRectangular
)

// String returns the taper name.
func (t Taper) String() string {
	switch t {
	case TaperHann:
		return "hann"
	case TaperHamming:
		return "hamming"
	case TaperRectangular:
		return "rectangular"
	default:
		return fmt.Sprintf("Taper(%d)", int(t))
	}
}

// ParseTaper returns the taper with the given name.
func ParseTaper(name string) (Taper, error) {
	for _, t := range []Taper{TaperHann, TaperHamming, TaperRectangular} {
		if t.String() == name {
			return t, nil
		}
	}
	return 0, fmt.Errorf("period: %w: unknown taper %q", ErrInvalidArgument, name)
}

// coefficients returns the periodic window of the given size.
func (t Taper) coefficients(size int) []float64 {
	out := make([]float64, size)
	var a0, a1 float64
	switch t {
	case TaperHann:
		a0, a1 = 0.5, 0.5
	case TaperHamming:
		a0, a1 = 0.54, 0.46
	default:
		for i := range out {
			out[i] = 1
		}
		return out
	}

	step := 2 * math.Pi / float64(size)
	for i := range out {
		out[i] = a0 - a1*math.Cos(step*float64(i))
	}
	return out
}

// apply multiplies buf by the window in place and returns the window energy
// Σ w².
func (t Taper) apply(buf []float64) float64 {
	coeffs := t.coefficients(len(buf))
	vecmath.MulBlockInPlace(buf, coeffs)
	return vecmath.DotProduct(coeffs, coeffs)
}
