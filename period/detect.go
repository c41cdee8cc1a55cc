package period

import (
	"cmp"
	"math"
	"slices"

	"github.com/cwbudde/algo-vecmath"

	"github.com/cwbudde/algo-mstl/core"
)

// Candidate is one detected period.
type Candidate struct {
	// Period is the rounded period in samples.
	Period int
	// Bin is the periodogram bin of the peak.
	Bin int
	// Power is the periodogram value at Bin.
	Power float64
	// Relative is Power divided by the strongest peak's power.
	Relative float64
}

// Detect returns up to the configured number of candidate periods, strongest
// first. A series without any spectral peak yields an empty result.
func Detect[F core.Float](series []F, opts ...Option) ([]Candidate, error) {
	cfg, err := newConfig(opts)
	if err != nil {
		return nil, err
	}
	spectrum, err := periodogram(series, cfg)
	if err != nil {
		return nil, err
	}
	return spectrum.peaks(cfg), nil
}

// Periods extracts the periods of cands in order.
func Periods(cands []Candidate) []int {
	out := make([]int, len(cands))
	for i, c := range cands {
		out[i] = c.Period
	}
	return out
}

func (s *Spectrum) peaks(cfg config) []Candidate {
	n := s.N
	maxPeriod := (n - 1) / 2
	if cfg.maxPeriod != 0 {
		maxPeriod = min(maxPeriod, cfg.maxPeriod)
	}

	top := vecmath.MaxAbs(s.Power[1:])
	if top == 0 {
		return nil
	}

	best := make(map[int]Candidate)
	last := len(s.Power) - 1
	for k := 1; k <= last; k++ {
		p := s.Power[k]
		if p <= s.Power[k-1] || (k < last && p < s.Power[k+1]) {
			continue
		}

		period := int(math.Round(s.Period(k)))
		if period < cfg.minPeriod || period > maxPeriod {
			continue
		}
		rel := p / top
		if rel < cfg.minRelativePower {
			continue
		}
		if prev, ok := best[period]; ok && prev.Power >= p {
			continue
		}
		best[period] = Candidate{Period: period, Bin: k, Power: p, Relative: rel}
	}

	out := make([]Candidate, 0, len(best))
	for _, c := range best {
		out = append(out, c)
	}
	slices.SortFunc(out, func(a, b Candidate) int {
		if c := cmp.Compare(b.Power, a.Power); c != 0 {
			return c
		}
		return cmp.Compare(a.Period, b.Period)
	})
	if len(out) > cfg.maxPeriods {
		out = out[:cfg.maxPeriods]
	}
	return out
}
