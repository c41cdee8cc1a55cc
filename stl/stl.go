package stl

import (
	"github.com/cwbudde/algo-mstl/core"
	"github.com/cwbudde/algo-mstl/loess"
	"github.com/cwbudde/algo-mstl/stats"
)

// ErrInvalidArgument is returned for every parameter or input violation.
var ErrInvalidArgument = core.ErrInvalidArgument

// Result holds one single-period decomposition. All slices have the length of
// the input series and are owned by the caller.
type Result[F core.Float] struct {
	Trend     []F
	Seasonal  []F
	Remainder []F
	// Weights are the robustness weights of the last outer iteration, all
	// ones when no robustness iteration ran.
	Weights []F
}

// SeasonalStrength returns max(0, 1 - Var(R)/Var(S+R)).
func (r *Result[F]) SeasonalStrength() float64 {
	return stats.Strength(r.Seasonal, r.Remainder)
}

// TrendStrength returns max(0, 1 - Var(R)/Var(T+R)).
func (r *Result[F]) TrendStrength() float64 {
	return stats.Strength(r.Trend, r.Remainder)
}

// Decompose splits series into trend, seasonal and remainder for one period.
// Parameters are validated before any smoothing runs.
func Decompose[F core.Float](series []F, period int, params Params) (*Result[F], error) {
	if err := CheckLength(len(series), period); err != nil {
		return nil, err
	}
	settings, err := params.Resolve(period)
	if err != nil {
		return nil, err
	}
	return Run(series, settings)
}

// CheckLength reports whether a series of length n can hold period: the
// series must span more than two full periods.
func CheckLength(n, period int) error {
	if period < 2 {
		return invalid("period must be at least 2: %d", period)
	}
	if 2*period >= n {
		return invalid("series of length %d must be longer than two periods of %d", n, period)
	}
	return nil
}

// Run decomposes series with already resolved settings.
func Run[F core.Float](series []F, s Settings) (*Result[F], error) {
	if err := CheckLength(len(series), s.period); err != nil {
		return nil, err
	}
	d, err := newDecomposer[F](len(series), s)
	if err != nil {
		return nil, err
	}
	return d.run(series), nil
}

// decomposer owns the smoothers and the working buffers of one call.
type decomposer[F core.Float] struct {
	s Settings
	n int

	seasonalSmoother *loess.Smoother[F]
	trendSmoother    *loess.Smoother[F]
	lowPassSmoother  *loess.Smoother[F]

	work     []F // n: detrended / deseasonalized series
	extended []F // n + 2·period: cycle-subseries output
	lowPass  []F // n
	sub      subseriesBuffers[F]
	filter   filterBuffers[F]
	abs      []F // n: sorted absolute residuals
}

func newDecomposer[F core.Float](n int, s Settings) (*decomposer[F], error) {
	seasonal, err := loess.NewSmoother[F](s.seasonal)
	if err != nil {
		return nil, err
	}
	trend, err := loess.NewSmoother[F](s.trend)
	if err != nil {
		return nil, err
	}
	lowPass, err := loess.NewSmoother[F](s.lowPass)
	if err != nil {
		return nil, err
	}

	np := s.period
	return &decomposer[F]{
		s:                s,
		n:                n,
		seasonalSmoother: seasonal,
		trendSmoother:    trend,
		lowPassSmoother:  lowPass,
		work:             make([]F, n),
		extended:         make([]F, n+2*np),
		lowPass:          make([]F, n),
		sub:              newSubseriesBuffers[F](n, np),
		filter:           newFilterBuffers[F](n, np),
		abs:              make([]F, n),
	}, nil
}

func (d *decomposer[F]) run(y []F) *Result[F] {
	n := d.n
	trend := make([]F, n)
	seasonal := make([]F, n)
	weights := make([]F, n)

	useWeights := false
	for k := 0; ; k++ {
		var rw []F
		if useWeights {
			rw = weights
		}
		d.innerLoop(y, rw, trend, seasonal)

		if k >= d.s.outerLoops {
			break
		}

		fit := d.work
		for i := range n {
			fit[i] = trend[i] + seasonal[i]
		}
		robustnessWeights(y, fit, weights, d.abs)
		useWeights = true
	}

	if !useWeights {
		for i := range weights {
			weights[i] = 1
		}
	}

	remainder := make([]F, n)
	for i := range n {
		remainder[i] = y[i] - trend[i] - seasonal[i]
	}

	return &Result[F]{
		Trend:     trend,
		Seasonal:  seasonal,
		Remainder: remainder,
		Weights:   weights,
	}
}

// innerLoop updates trend and seasonal in place. rw is nil on the first outer
// iteration.
func (d *decomposer[F]) innerLoop(y, rw, trend, seasonal []F) {
	n, np := d.n, d.s.period

	for range d.s.innerLoops {
		for i := range n {
			d.work[i] = y[i] - trend[i]
		}

		cycleSubseries(d.work, np, d.seasonalSmoother, rw, d.extended, &d.sub)
		lowPassFilter(d.extended, np, d.lowPassSmoother, d.lowPass, &d.filter)

		for i := range n {
			seasonal[i] = d.extended[np+i] - d.lowPass[i]
		}
		for i := range n {
			d.work[i] = y[i] - seasonal[i]
		}

		d.trendSmoother.SmoothInto(trend, d.work, rw)
	}
}
