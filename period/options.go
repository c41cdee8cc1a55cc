package period

import "fmt"

// Defaults for [Detect].
const (
	DefaultMaxPeriods       = 3
	DefaultMinRelativePower = 0.1
)

type config struct {
	taper            Taper
	detrend          bool
	maxPeriods       int
	minPeriod        int
	maxPeriod        int // 0: largest period with 2p < n
	minRelativePower float64
}

// Option configures [Periodogram] and [Detect].
type Option func(*config)

// WithTaper selects the data window. The default is [TaperHann].
func WithTaper(t Taper) Option {
	return func(c *config) { c.taper = t }
}

// WithDetrend toggles removal of the least-squares line before the FFT.
// When disabled only the mean is removed. Enabled by default.
func WithDetrend(enabled bool) Option {
	return func(c *config) { c.detrend = enabled }
}

// WithMaxPeriods limits the number of returned candidates.
func WithMaxPeriods(n int) Option {
	return func(c *config) { c.maxPeriods = n }
}

// WithMinPeriod sets the shortest period considered, at least 2.
func WithMinPeriod(p int) Option {
	return func(c *config) { c.minPeriod = p }
}

// WithMaxPeriod sets the longest period considered. Periods with 2p ≥ n are
// dropped regardless.
func WithMaxPeriod(p int) Option {
	return func(c *config) { c.maxPeriod = p }
}

// WithMinRelativePower drops peaks weaker than r times the strongest peak.
func WithMinRelativePower(r float64) Option {
	return func(c *config) { c.minRelativePower = r }
}

func newConfig(opts []Option) (config, error) {
	cfg := config{
		taper:            TaperHann,
		detrend:          true,
		maxPeriods:       DefaultMaxPeriods,
		minPeriod:        2,
		minRelativePower: DefaultMinRelativePower,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}

	switch {
	case cfg.taper < TaperHann || cfg.taper > TaperRectangular:
		return cfg, fmt.Errorf("period: %w: unknown taper %d", ErrInvalidArgument, int(cfg.taper))
	case cfg.maxPeriods < 1:
		return cfg, fmt.Errorf("period: %w: max periods must be at least 1: %d", ErrInvalidArgument, cfg.maxPeriods)
	case cfg.minPeriod < 2:
		return cfg, fmt.Errorf("period: %w: min period must be at least 2: %d", ErrInvalidArgument, cfg.minPeriod)
	case cfg.maxPeriod != 0 && cfg.maxPeriod < cfg.minPeriod:
		return cfg, fmt.Errorf("period: %w: max period %d below min period %d", ErrInvalidArgument, cfg.maxPeriod, cfg.minPeriod)
	case !(cfg.minRelativePower >= 0 && cfg.minRelativePower <= 1):
		return cfg, fmt.Errorf("period: %w: min relative power must be in [0, 1]: %v", ErrInvalidArgument, cfg.minRelativePower)
	}
	return cfg, nil
}
