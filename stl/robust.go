package stl

import (
	"github.com/cwbudde/algo-mstl/core"
	"github.com/cwbudde/algo-mstl/stats"
)

// robustnessWeights writes bisquare weights of |y - fit| / (6·median|y - fit|)
// into rw. scratch must hold len(y) values.
func robustnessWeights[F core.Float](y, fit, rw, scratch []F) {
	n := len(y)
	for i := range n {
		scratch[i] = abs(y[i] - fit[i])
	}
	cmad := F(6 * stats.MedianInPlace(scratch[:n]))
	c9 := 0.999 * cmad
	c1 := 0.001 * cmad

	for i := range n {
		r := abs(y[i] - fit[i])
		switch {
		case r <= c1:
			rw[i] = 1
		case r <= c9:
			u := r / cmad
			u = 1 - u*u
			rw[i] = u * u
		default:
			rw[i] = 0
		}
	}
}

func abs[F core.Float](x F) F {
	if x < 0 {
		return -x
	}
	return x
}
