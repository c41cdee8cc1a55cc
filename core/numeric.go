// Package core holds the numeric building blocks shared by the decomposition
// packages: the floating-point constraint, the invalid-argument sentinel and a
// few small integer helpers.
package core

import "math"

// Float is the set of element types a decomposition can run on.
type Float interface {
	~float32 | ~float64
}

// MakeOdd returns n when it is odd and n+1 otherwise.
func MakeOdd(n int) int {
	if n%2 == 0 {
		return n + 1
	}

	return n
}

// CeilDiv returns ceil(a/b) for positive b.
func CeilDiv(a, b int) int {
	return (a + b - 1) / b
}

// IsFinite reports whether x is neither NaN nor infinite.
func IsFinite(x float64) bool {
	return !math.IsNaN(x) && !math.IsInf(x, 0)
}
