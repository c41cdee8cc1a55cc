// Package boxcox implements the Box-Cox power transform used to stabilize the
// variance of a series before an additive decomposition.
//
//	y(λ) = (y^λ - 1) / λ   λ ≠ 0
//	y(λ) = ln y            λ = 0
//
// Every input must be strictly positive.
package boxcox

import (
	"fmt"
	"math"

	"github.com/cwbudde/algo-mstl/core"
)

// ErrInvalidArgument is returned for a non-finite lambda or a non-positive
// series value.
var ErrInvalidArgument = core.ErrInvalidArgument

// Validate checks that lambda is a finite real number.
func Validate(lambda float64) error {
	if !core.IsFinite(lambda) {
		return fmt.Errorf("boxcox: %w: lambda must be finite: %v", ErrInvalidArgument, lambda)
	}
	return nil
}

// CheckPositive returns an error naming the first value of y that is not
// strictly positive.
func CheckPositive[F core.Float](y []F) error {
	for i, v := range y {
		if !(v > 0) {
			return fmt.Errorf("boxcox: %w: value at index %d must be positive: %v", ErrInvalidArgument, i, v)
		}
	}
	return nil
}

// Transform returns the Box-Cox transform of y. y is not modified.
func Transform[F core.Float](y []F, lambda float64) ([]F, error) {
	if err := Validate(lambda); err != nil {
		return nil, err
	}
	if err := CheckPositive(y); err != nil {
		return nil, err
	}

	out := make([]F, len(y))
	if lambda == 0 {
		for i, v := range y {
			out[i] = F(math.Log(float64(v)))
		}
		return out, nil
	}
	for i, v := range y {
		out[i] = F((math.Pow(float64(v), lambda) - 1) / lambda)
	}
	return out, nil
}

// Inverse maps transformed values back to the original scale. Values whose
// inverse is undefined for lambda (λ·y + 1 ≤ 0 with λ ≠ 0) become NaN.
func Inverse[F core.Float](y []F, lambda float64) []F {
	out := make([]F, len(y))
	if lambda == 0 {
		for i, v := range y {
			out[i] = F(math.Exp(float64(v)))
		}
		return out
	}
	for i, v := range y {
		base := lambda*float64(v) + 1
		if base <= 0 {
			out[i] = F(math.NaN())
			continue
		}
		out[i] = F(math.Pow(base, 1/lambda))
	}
	return out
}
