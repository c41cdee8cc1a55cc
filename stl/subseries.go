package stl

import (
	"github.com/cwbudde/algo-mstl/core"
	"github.com/cwbudde/algo-mstl/loess"
)

type subseriesBuffers[F core.Float] struct {
	y   []F // subseries values
	w   []F // subseries robustness weights
	out []F // smoothed subseries with one extrapolated point on each side
}

func newSubseriesBuffers[F core.Float](n, period int) subseriesBuffers[F] {
	k := core.CeilDiv(n, period)
	return subseriesBuffers[F]{
		y:   make([]F, k),
		w:   make([]F, k),
		out: make([]F, k+2),
	}
}

// cycleSubseries smooths each phase of y separately and writes the result,
// extended by one period on both sides, into dst (length len(y)+2·period).
// rw may be nil.
func cycleSubseries[F core.Float](y []F, period int, sm *loess.Smoother[F], rw, dst []F, buf *subseriesBuffers[F]) {
	n := len(y)
	length := sm.Config().Length

	for phase := range period {
		k := (n-1-phase)/period + 1
		sy := buf.y[:k]
		for i := range k {
			sy[i] = y[i*period+phase]
		}

		var sw []F
		if rw != nil {
			sw = buf.w[:k]
			for i := range k {
				sw[i] = rw[i*period+phase]
			}
		}

		out := buf.out[:k+2]
		sm.SmoothInto(out[1:k+1], sy, sw)

		v, ok := sm.Estimate(sy, -1, 0, min(length, k)-1, sw)
		if !ok {
			v = out[1]
		}
		out[0] = v

		v, ok = sm.Estimate(sy, F(k), max(0, k-length), k-1, sw)
		if !ok {
			v = out[k]
		}
		out[k+1] = v

		for m := range k + 2 {
			dst[m*period+phase] = out[m]
		}
	}
}
