package stl

import (
	"fmt"
	"math"

	"github.com/cwbudde/algo-mstl/core"
	"github.com/cwbudde/algo-mstl/loess"
)

// Default degrees of the classic STL configuration.
const (
	DefaultSeasonalDegree = 0
	DefaultTrendDegree    = 1
)

type optInt struct {
	v   int
	set bool
}

func (o optInt) or(def int) int {
	if o.set {
		return o.v
	}
	return def
}

// Params is an immutable STL configuration. Build it with [NewParams] and
// derive variants with [Params.With]. Fields that are never set take the
// classic STL defaults when the parameters are resolved for a period.
type Params struct {
	robust bool

	seasonalLength optInt
	seasonalDegree optInt
	seasonalJump   optInt

	trendLength optInt
	trendDegree optInt
	trendJump   optInt

	lowPassLength optInt
	lowPassDegree optInt
	lowPassJump   optInt

	innerLoops optInt
	outerLoops optInt
}

// Option sets one STL parameter.
type Option func(*Params)

// NewParams returns the parameters with opts applied over the defaults.
func NewParams(opts ...Option) Params {
	var p Params
	return p.With(opts...)
}

// With returns a copy of p with opts applied.
func (p Params) With(opts ...Option) Params {
	for _, opt := range opts {
		if opt != nil {
			opt(&p)
		}
	}
	return p
}

// WithRobust enables the outer robustness loop.
func WithRobust(robust bool) Option {
	return func(p *Params) { p.robust = robust }
}

// WithSeasonalLength sets the cycle-subseries smoother window.
func WithSeasonalLength(n int) Option {
	return func(p *Params) { p.seasonalLength = optInt{n, true} }
}

// WithSeasonalDegree sets the cycle-subseries polynomial degree.
func WithSeasonalDegree(d int) Option {
	return func(p *Params) { p.seasonalDegree = optInt{d, true} }
}

// WithSeasonalJump sets the cycle-subseries evaluation step.
func WithSeasonalJump(n int) Option {
	return func(p *Params) { p.seasonalJump = optInt{n, true} }
}

// WithTrendLength sets the trend smoother window.
func WithTrendLength(n int) Option {
	return func(p *Params) { p.trendLength = optInt{n, true} }
}

// WithTrendDegree sets the trend polynomial degree.
func WithTrendDegree(d int) Option {
	return func(p *Params) { p.trendDegree = optInt{d, true} }
}

// WithTrendJump sets the trend evaluation step.
func WithTrendJump(n int) Option {
	return func(p *Params) { p.trendJump = optInt{n, true} }
}

// WithLowPassLength sets the low-pass smoother window.
func WithLowPassLength(n int) Option {
	return func(p *Params) { p.lowPassLength = optInt{n, true} }
}

// WithLowPassDegree sets the low-pass polynomial degree.
func WithLowPassDegree(d int) Option {
	return func(p *Params) { p.lowPassDegree = optInt{d, true} }
}

// WithLowPassJump sets the low-pass evaluation step.
func WithLowPassJump(n int) Option {
	return func(p *Params) { p.lowPassJump = optInt{n, true} }
}

// WithInnerLoops sets the number of inner-loop passes.
func WithInnerLoops(n int) Option {
	return func(p *Params) { p.innerLoops = optInt{n, true} }
}

// WithOuterLoops sets the number of robustness iterations.
func WithOuterLoops(n int) Option {
	return func(p *Params) { p.outerLoops = optInt{n, true} }
}

// Robust reports whether the robustness loop is enabled.
func (p Params) Robust() bool { return p.robust }

// HasSeasonalLength reports whether the seasonal window was set explicitly.
func (p Params) HasSeasonalLength() bool { return p.seasonalLength.set }

// Settings is a validated STL configuration for one period.
// The zero value is not usable; obtain one from [Params.Resolve].
type Settings struct {
	period     int
	seasonal   loess.Config
	trend      loess.Config
	lowPass    loess.Config
	innerLoops int
	outerLoops int
	robust     bool
}

// Period returns the seasonal period.
func (s Settings) Period() int { return s.period }

// Seasonal returns the cycle-subseries smoother configuration.
func (s Settings) Seasonal() loess.Config { return s.seasonal }

// Trend returns the trend smoother configuration.
func (s Settings) Trend() loess.Config { return s.trend }

// LowPass returns the low-pass smoother configuration.
func (s Settings) LowPass() loess.Config { return s.lowPass }

// InnerLoops returns the number of inner-loop passes.
func (s Settings) InnerLoops() int { return s.innerLoops }

// OuterLoops returns the number of robustness iterations. It is zero when
// robustness is disabled.
func (s Settings) OuterLoops() int { return s.outerLoops }

// Robust reports whether robustness weights are computed.
func (s Settings) Robust() bool { return s.robust }

// Resolve validates p for period and fills every unset field with its
// classic STL default. The first violated constraint is returned.
func (p Params) Resolve(period int) (Settings, error) {
	if period < 2 {
		return Settings{}, invalid("period must be at least 2: %d", period)
	}

	ns, err := windowLength("seasonal", p.seasonalLength, period)
	if err != nil {
		return Settings{}, err
	}
	nt, err := windowLength("trend", p.trendLength, defaultTrendLength(period, ns))
	if err != nil {
		return Settings{}, err
	}
	nl, err := windowLength("low-pass", p.lowPassLength, period)
	if err != nil {
		return Settings{}, err
	}

	sdeg, err := degree("seasonal", p.seasonalDegree, DefaultSeasonalDegree)
	if err != nil {
		return Settings{}, err
	}
	tdeg, err := degree("trend", p.trendDegree, DefaultTrendDegree)
	if err != nil {
		return Settings{}, err
	}
	ldeg, err := degree("low-pass", p.lowPassDegree, tdeg)
	if err != nil {
		return Settings{}, err
	}

	sjump, err := jump("seasonal", p.seasonalJump, ns)
	if err != nil {
		return Settings{}, err
	}
	tjump, err := jump("trend", p.trendJump, nt)
	if err != nil {
		return Settings{}, err
	}
	ljump, err := jump("low-pass", p.lowPassJump, nl)
	if err != nil {
		return Settings{}, err
	}

	inner := p.innerLoops.or(defaultInnerLoops(p.robust))
	if inner < 1 {
		return Settings{}, invalid("inner loops must be at least 1: %d", inner)
	}
	outer := p.outerLoops.or(defaultOuterLoops(p.robust))
	if outer < 0 {
		return Settings{}, invalid("outer loops must not be negative: %d", outer)
	}
	if !p.robust {
		outer = 0
	}

	return Settings{
		period:     period,
		seasonal:   loess.Config{Length: ns, Degree: sdeg, Jump: sjump},
		trend:      loess.Config{Length: nt, Degree: tdeg, Jump: tjump},
		lowPass:    loess.Config{Length: nl, Degree: ldeg, Jump: ljump},
		innerLoops: inner,
		outerLoops: outer,
		robust:     p.robust,
	}, nil
}

// TrendConfig resolves only the trend smoother, using defaultLength when no
// trend length was set. It serves decompositions without a seasonal period.
func (p Params) TrendConfig(defaultLength int) (loess.Config, error) {
	nt, err := windowLength("trend", p.trendLength, defaultLength)
	if err != nil {
		return loess.Config{}, err
	}
	tdeg, err := degree("trend", p.trendDegree, DefaultTrendDegree)
	if err != nil {
		return loess.Config{}, err
	}
	tjump, err := jump("trend", p.trendJump, nt)
	if err != nil {
		return loess.Config{}, err
	}
	return loess.Config{Length: nt, Degree: tdeg, Jump: tjump}, nil
}

// defaultTrendLength is Cleveland's choice: the smallest odd integer not
// below 1.5·period / (1 - 1.5/seasonalLength).
func defaultTrendLength(period, seasonalLength int) int {
	return int(math.Ceil(1.5 * float64(period) / (1 - 1.5/float64(seasonalLength))))
}

func defaultInnerLoops(robust bool) int {
	if robust {
		return 1
	}
	return 2
}

func defaultOuterLoops(robust bool) int {
	if robust {
		return 15
	}
	return 0
}

// windowLength rejects explicit lengths below 3 and makes the result odd.
// Defaults are raised to 3 instead of rejected.
func windowLength(name string, o optInt, def int) (int, error) {
	if o.set {
		if o.v < 3 {
			return 0, invalid("%s length must be at least 3: %d", name, o.v)
		}
		return core.MakeOdd(o.v), nil
	}
	return core.MakeOdd(max(def, 3)), nil
}

func degree(name string, o optInt, def int) (int, error) {
	d := o.or(def)
	if d < 0 || d > loess.MaxDegree {
		return 0, invalid("%s degree must be 0, 1 or 2: %d", name, d)
	}
	return d, nil
}

func jump(name string, o optInt, length int) (int, error) {
	j := o.or(core.CeilDiv(length, 10))
	if j < 1 {
		return 0, invalid("%s jump must be at least 1: %d", name, j)
	}
	return j, nil
}

func invalid(format string, args ...any) error {
	return fmt.Errorf("stl: %w: %s", ErrInvalidArgument, fmt.Sprintf(format, args...))
}
