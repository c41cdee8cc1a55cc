package stl

import (
	"fmt"

	"github.com/cwbudde/algo-mstl/core"
	"github.com/cwbudde/algo-mstl/loess"
)

type filterBuffers[F core.Float] struct {
	first  []F // n + period + 1
	second []F // n + 2
	third  []F // n
}

func newFilterBuffers[F core.Float](n, period int) filterBuffers[F] {
	return filterBuffers[F]{
		first:  make([]F, n+period+1),
		second: make([]F, n+2),
		third:  make([]F, n),
	}
}

// LowPass applies the STL low-pass filter to an array extended by one period
// on each side: moving averages of length period, period and 3, followed by
// one smoothing pass with cfg. The result has len(extended) - 2·period values.
func LowPass[F core.Float](extended []F, period int, cfg loess.Config) ([]F, error) {
	if period < 1 || len(extended) <= 2*period {
		return nil, fmt.Errorf("stl: %w: low-pass input of length %d is too short for period %d",
			ErrInvalidArgument, len(extended), period)
	}
	sm, err := loess.NewSmoother[F](cfg)
	if err != nil {
		return nil, err
	}

	n := len(extended) - 2*period
	out := make([]F, n)
	buf := newFilterBuffers[F](n, period)
	lowPassFilter(extended, period, sm, out, &buf)
	return out, nil
}

func lowPassFilter[F core.Float](extended []F, period int, sm *loess.Smoother[F], dst []F, buf *filterBuffers[F]) {
	movingAverage(extended, period, buf.first)
	movingAverage(buf.first, period, buf.second)
	movingAverage(buf.second, 3, buf.third)
	sm.SmoothInto(dst, buf.third, nil)
}

// movingAverage writes the len(x)-length+1 running means of x into dst.
func movingAverage[F core.Float](x []F, length int, dst []F) {
	count := len(x) - length + 1
	scale := F(length)

	var sum F
	for _, v := range x[:length] {
		sum += v
	}
	dst[0] = sum / scale

	for j := 1; j < count; j++ {
		sum += x[j+length-1] - x[j-1]
		dst[j] = sum / scale
	}
}
