package mstl

import (
	"fmt"
	"slices"

	"github.com/cwbudde/algo-mstl/boxcox"
	"github.com/cwbudde/algo-mstl/stl"
)

// DefaultIterations is the number of passes over all periods.
const DefaultIterations = 2

// Params configures an MSTL decomposition. The zero value uses the defaults:
// no transform, two passes and classic STL settings per period.
type Params struct {
	stl stl.Params

	lambda    float64
	hasLambda bool

	iterations    int
	hasIterations bool

	seasonalLengths []int
}

// Option sets one MSTL parameter.
type Option func(*Params)

// NewParams returns the parameters with opts applied over the defaults.
func NewParams(opts ...Option) Params {
	var p Params
	return p.With(opts...)
}

// With returns a copy of p with opts applied.
func (p Params) With(opts ...Option) Params {
	p.seasonalLengths = slices.Clone(p.seasonalLengths)
	for _, opt := range opts {
		if opt != nil {
			opt(&p)
		}
	}
	return p
}

// WithLambda enables the Box-Cox transform with the given lambda.
func WithLambda(lambda float64) Option {
	return func(p *Params) {
		p.lambda = lambda
		p.hasLambda = true
	}
}

// WithIterations sets the number of passes over all periods.
func WithIterations(n int) Option {
	return func(p *Params) {
		p.iterations = n
		p.hasIterations = true
	}
}

// WithSTL applies STL options shared by every period.
func WithSTL(opts ...stl.Option) Option {
	return func(p *Params) { p.stl = p.stl.With(opts...) }
}

// WithSTLParams replaces the shared STL parameters.
func WithSTLParams(sp stl.Params) Option {
	return func(p *Params) { p.stl = sp }
}

// WithSeasonalLengths sets one seasonal smoother length per period, in the
// order the periods are passed to [Decompose]. It takes precedence over
// both the shared STL seasonal length and the rank-based default.
func WithSeasonalLengths(lengths ...int) Option {
	return func(p *Params) { p.seasonalLengths = slices.Clone(lengths) }
}

// STL returns the shared STL parameters.
func (p Params) STL() stl.Params { return p.stl }

// Lambda returns the Box-Cox parameter and whether it is set.
func (p Params) Lambda() (float64, bool) { return p.lambda, p.hasLambda }

// Iterations returns the configured pass count.
func (p Params) Iterations() int {
	if p.hasIterations {
		return p.iterations
	}
	return DefaultIterations
}

// SeasonalLengths returns a copy of the per-period seasonal lengths.
func (p Params) SeasonalLengths() []int { return slices.Clone(p.seasonalLengths) }

// resolve validates p against n and periods and returns one STL setting per
// period, in input order.
func (p Params) resolve(n int, periods []int) ([]stl.Settings, error) {
	if p.hasLambda {
		if err := boxcox.Validate(p.lambda); err != nil {
			return nil, fmt.Errorf("mstl: %w", err)
		}
	}
	if it := p.Iterations(); it < 1 {
		return nil, invalid("iterations must be at least 1: %d", it)
	}
	if p.seasonalLengths != nil && len(p.seasonalLengths) != len(periods) {
		return nil, invalid("got %d seasonal lengths for %d periods", len(p.seasonalLengths), len(periods))
	}

	ranks := periodRanks(periods)
	settings := make([]stl.Settings, len(periods))
	for i, period := range periods {
		if err := stl.CheckLength(n, period); err != nil {
			return nil, fmt.Errorf("mstl: period %d: %w", i, err)
		}

		sp := p.stl
		switch {
		case p.seasonalLengths != nil:
			sp = sp.With(stl.WithSeasonalLength(p.seasonalLengths[i]))
		case !sp.HasSeasonalLength():
			sp = sp.With(stl.WithSeasonalLength(DefaultSeasonalLength(ranks[i])))
		}

		s, err := sp.Resolve(period)
		if err != nil {
			return nil, fmt.Errorf("mstl: period %d: %w", i, err)
		}
		settings[i] = s
	}
	return settings, nil
}

// DefaultSeasonalLength returns 7 + 4·rank, the seasonal window of the
// rank-th shortest period (1-based).
func DefaultSeasonalLength(rank int) int {
	return 7 + 4*rank
}

// periodRanks returns the 1-based rank of every period in ascending order.
// Equal periods are ranked by input position.
func periodRanks(periods []int) []int {
	order := make([]int, len(periods))
	for i := range order {
		order[i] = i
	}
	slices.SortStableFunc(order, func(a, b int) int {
		return periods[a] - periods[b]
	})

	ranks := make([]int, len(periods))
	for r, i := range order {
		ranks[i] = r + 1
	}
	return ranks
}

func invalid(format string, args ...any) error {
	return fmt.Errorf("mstl: %w: %s", ErrInvalidArgument, fmt.Sprintf(format, args...))
}
