package mstl

import (
	"math"
	"slices"

	"github.com/cwbudde/algo-mstl/boxcox"
	"github.com/cwbudde/algo-mstl/core"
	"github.com/cwbudde/algo-mstl/loess"
	"github.com/cwbudde/algo-mstl/stats"
	"github.com/cwbudde/algo-mstl/stl"
)

// ErrInvalidArgument is returned for every parameter or input violation.
var ErrInvalidArgument = core.ErrInvalidArgument

// Result holds a multi-period decomposition. When Transformed is set every
// component is on the Box-Cox scale given by Lambda, and
//
//	Trend[i] + Σ_j Seasonal[j][i] + Remainder[i]
//
// equals the transformed input at i. Otherwise it equals the input itself.
type Result[F core.Float] struct {
	Trend []F
	// Seasonal holds one component per period, in the order of Periods.
	Seasonal  [][]F
	Remainder []F

	Periods     []int
	Lambda      float64
	Transformed bool
}

// SeasonalStrength returns max(0, 1 - Var(R)/Var(S_j+R)) for the j-th period,
// or 0 when j is out of range.
func (r *Result[F]) SeasonalStrength(j int) float64 {
	if j < 0 || j >= len(r.Seasonal) {
		return 0
	}
	return stats.Strength(r.Seasonal[j], r.Remainder)
}

// TrendStrength returns max(0, 1 - Var(R)/Var(T+R)).
func (r *Result[F]) TrendStrength() float64 {
	return stats.Strength(r.Trend, r.Remainder)
}

// Reconstruct sums the components and maps the sum back to the original
// scale when the series was transformed.
func (r *Result[F]) Reconstruct() []F {
	out := slices.Clone(r.Trend)
	for i := range out {
		out[i] += r.Remainder[i]
		for _, s := range r.Seasonal {
			out[i] += s[i]
		}
	}
	if r.Transformed {
		return boxcox.Inverse(out, r.Lambda)
	}
	return out
}

// Decompose splits series into a trend, one seasonal component per period and
// a remainder. All parameters, periods and series values are validated before
// any smoothing runs; no partial result is returned on error.
func Decompose[F core.Float](series []F, periods []int, params Params) (*Result[F], error) {
	n := len(series)

	settings, err := params.resolve(n, periods)
	if err != nil {
		return nil, err
	}

	var trendCfg loess.Config
	if len(periods) == 0 {
		trendCfg, err = params.stl.TrendConfig(emptyTrendLength(n))
		if err != nil {
			return nil, err
		}
	}

	y := series
	lambda, transformed := params.Lambda()
	if transformed {
		y, err = boxcox.Transform(series, lambda)
		if err != nil {
			return nil, err
		}
	}

	res := &Result[F]{
		Periods:     slices.Clone(periods),
		Lambda:      lambda,
		Transformed: transformed,
		Seasonal:    make([][]F, len(periods)),
	}

	if len(periods) == 0 {
		trend, err := loess.Smooth(y, trendCfg, nil)
		if err != nil {
			return nil, err
		}
		res.Trend = trend
		res.Remainder = subtract(y, trend)
		return res, nil
	}

	for i := range res.Seasonal {
		res.Seasonal[i] = make([]F, n)
	}

	iterations := params.Iterations()
	if len(periods) == 1 {
		iterations = 1
	}

	deseasonalized := make([]F, n)
	for range iterations {
		for i, s := range settings {
			copy(deseasonalized, y)
			for j, seasonal := range res.Seasonal {
				if j == i {
					continue
				}
				for t := range deseasonalized {
					deseasonalized[t] -= seasonal[t]
				}
			}

			fit, err := stl.Run(deseasonalized, s)
			if err != nil {
				return nil, err
			}
			res.Seasonal[i] = fit.Seasonal
			res.Trend = fit.Trend
		}
	}

	res.Remainder = subtract(y, res.Trend)
	for _, seasonal := range res.Seasonal {
		for t := range res.Remainder {
			res.Remainder[t] -= seasonal[t]
		}
	}
	return res, nil
}

// emptyTrendLength is the trend window used when no period is given: the
// smallest odd integer not below 0.75·n, and at least 3.
func emptyTrendLength(n int) int {
	return core.MakeOdd(max(int(math.Ceil(0.75*float64(n))), 3))
}

func subtract[F core.Float](a, b []F) []F {
	out := make([]F, len(a))
	for i := range a {
		out[i] = a[i] - b[i]
	}
	return out
}
