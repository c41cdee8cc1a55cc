package loess

import (
	"fmt"
	"math"

	"github.com/cwbudde/algo-mstl/core"
)

// ErrInvalidArgument is returned for malformed smoother requests.
var ErrInvalidArgument = core.ErrInvalidArgument

// MaxDegree is the highest supported local polynomial degree.
const MaxDegree = 2

// quadraticDetEpsilon bounds the determinant of the normalized moment matrix
// below which a quadratic fit is treated as singular.
const quadraticDetEpsilon = 1e-10

// Config describes one smoothing pass.
type Config struct {
	// Length is the number of neighbouring points in each local fit.
	Length int
	// Degree is the local polynomial degree: 0, 1 or 2.
	Degree int
	// Jump evaluates the fit at every Jump-th point and interpolates between.
	Jump int
}

// Validate checks the configuration ranges.
func (c Config) Validate() error {
	if c.Length < 1 {
		return fmt.Errorf("loess: %w: window length must be at least 1: %d", ErrInvalidArgument, c.Length)
	}
	if c.Degree < 0 || c.Degree > MaxDegree {
		return fmt.Errorf("loess: %w: degree must be 0, 1 or 2: %d", ErrInvalidArgument, c.Degree)
	}
	if c.Jump < 1 {
		return fmt.Errorf("loess: %w: jump must be at least 1: %d", ErrInvalidArgument, c.Jump)
	}
	return nil
}

// Smoother runs repeated smoothing passes with one configuration.
// A Smoother is not safe for concurrent use.
type Smoother[F core.Float] struct {
	cfg  Config
	work []F
}

// NewSmoother validates cfg and returns a reusable smoother.
func NewSmoother[F core.Float](cfg Config) (*Smoother[F], error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &Smoother[F]{cfg: cfg}, nil
}

// Smooth is a one-shot helper around [Smoother.Smooth].
func Smooth[F core.Float](y []F, cfg Config, weights []F) ([]F, error) {
	s, err := NewSmoother[F](cfg)
	if err != nil {
		return nil, err
	}
	return s.Smooth(y, weights)
}

// Config returns the smoother configuration.
func (s *Smoother[F]) Config() Config {
	return s.cfg
}

// Smooth returns the smoothed copy of y. weights may be nil; otherwise it must
// have the same length as y and hold non-negative values.
func (s *Smoother[F]) Smooth(y, weights []F) ([]F, error) {
	if weights != nil && len(weights) != len(y) {
		return nil, fmt.Errorf("loess: %w: weights length %d does not match series length %d",
			ErrInvalidArgument, len(weights), len(y))
	}

	out := make([]F, len(y))
	s.SmoothInto(out, y, weights)
	return out, nil
}

// SmoothInto writes the smoothed values of y into dst.
// It panics if dst or a non-nil weights slice is shorter than y.
func (s *Smoother[F]) SmoothInto(dst, y, weights []F) {
	n := len(y)
	if len(dst) < n || (weights != nil && len(weights) < n) {
		panic("loess: buffer shorter than input")
	}
	if n == 0 {
		return
	}
	if n < 2 {
		dst[0] = y[0]
		return
	}

	w := s.scratch(n)
	length := s.cfg.Length
	jump := min(s.cfg.Jump, n-1)

	fit := func(i, left, right int) {
		v, ok := estimate(y, length, s.cfg.Degree, F(i), left, right, w, weights)
		if !ok {
			v = y[i]
		}
		dst[i] = v
	}

	var left, right int
	switch {
	case length >= n:
		left, right = 0, n-1
		for i := 0; i < n; i += jump {
			fit(i, left, right)
		}
	case jump == 1:
		half := (length + 1) / 2
		left, right = 0, length-1
		for i := range n {
			if i+1 > half && right != n-1 {
				left++
				right++
			}
			fit(i, left, right)
		}
	default:
		half := (length + 1) / 2
		for i := 0; i < n; i += jump {
			switch {
			case i+1 < half:
				left, right = 0, length-1
			case i+1 >= n-half+1:
				left, right = n-length, n-1
			default:
				left, right = i+1-half, i+length-half
			}
			fit(i, left, right)
		}
	}

	if jump == 1 {
		return
	}

	for i := 0; i+jump < n; i += jump {
		delta := (dst[i+jump] - dst[i]) / F(jump)
		for j := i + 1; j < i+jump; j++ {
			dst[j] = dst[i] + delta*F(j-i)
		}
	}

	// Last position computed by the jump loop.
	k := ((n - 1) / jump) * jump
	if k != n-1 {
		fit(n-1, max(0, n-length), n-1)
		if k != n-2 {
			delta := (dst[n-1] - dst[k]) / F(n-1-k)
			for j := k + 1; j < n-1; j++ {
				dst[j] = dst[k] + delta*F(j-k)
			}
		}
	}
}

// Estimate fits the local polynomial over y[left..right] and evaluates it at
// abscissa x, which may lie outside the window. weights may be nil. ok is
// false when every kernel weight in the window is zero.
func (s *Smoother[F]) Estimate(y []F, x F, left, right int, weights []F) (value F, ok bool) {
	if left < 0 || right >= len(y) || left > right {
		return 0, false
	}
	return estimate(y, s.cfg.Length, s.cfg.Degree, x, left, right, s.scratch(len(y)), weights)
}

func (s *Smoother[F]) scratch(n int) []F {
	if cap(s.work) < n {
		s.work = make([]F, n)
	}
	return s.work[:n]
}

// estimate computes one local fit. w is scratch of at least right+1 entries.
func estimate[F core.Float](y []F, length, degree int, xs F, left, right int, w, rw []F) (F, bool) {
	n := len(y)
	h := max(xs-F(left), F(right)-xs)
	if length > n {
		h += F((length - n) / 2)
	}
	h9 := 0.999 * h
	h1 := 0.001 * h

	var total F
	used := 0
	for j := left; j <= right; j++ {
		w[j] = 0
		r := abs(F(j) - xs)
		if r > h9 {
			continue
		}
		if r <= h1 {
			w[j] = 1
		} else {
			q := r / h
			q = 1 - q*q*q
			w[j] = q * q * q
		}
		if rw != nil {
			w[j] *= rw[j]
		}
		total += w[j]
		if w[j] > 0 {
			used++
		}
	}
	if total <= 0 {
		return 0, false
	}

	for j := left; j <= right; j++ {
		w[j] /= total
	}

	if h > 0 && degree > 0 && used > degree {
		switch degree {
		case 1:
			linearWeights(w, xs, left, right, n)
		case 2:
			quadraticWeights(w, xs, left, right, h)
		}
	}

	var ys F
	for j := left; j <= right; j++ {
		ys += w[j] * y[j]
	}
	return ys, true
}

// linearWeights turns normalized kernel weights into the equivalent weights of
// a local linear fit evaluated at xs. Nearly constant abscissae keep the
// degree-0 weights.
func linearWeights[F core.Float](w []F, xs F, left, right, n int) {
	var center F
	for j := left; j <= right; j++ {
		center += w[j] * F(j)
	}

	b := xs - center
	var c F
	for j := left; j <= right; j++ {
		d := F(j) - center
		c += w[j] * d * d
	}

	if F(math.Sqrt(float64(c))) <= 0.001*F(n-1) {
		return
	}

	b /= c
	for j := left; j <= right; j++ {
		w[j] *= b*(F(j)-center) + 1
	}
}

// quadraticWeights turns normalized kernel weights into the equivalent weights
// of a local quadratic fit evaluated at xs. It reports false, leaving the
// degree-0 weights untouched, when the normal system is singular.
func quadraticWeights[F core.Float](w []F, xs F, left, right int, h F) bool {
	scale := float64(h)
	x0 := float64(xs)

	var s1, s2, s3, s4 float64
	for j := left; j <= right; j++ {
		v := (float64(j) - x0) / scale
		wj := float64(w[j])
		v2 := v * v
		s1 += wj * v
		s2 += wj * v2
		s3 += wj * v2 * v
		s4 += wj * v2 * v2
	}

	// First row of the inverse of [[1 s1 s2] [s1 s2 s3] [s2 s3 s4]] times det.
	c0 := s2*s4 - s3*s3
	c1 := s2*s3 - s1*s4
	c2 := s1*s3 - s2*s2
	det := c0 + s1*c1 + s2*c2
	if det <= quadraticDetEpsilon {
		return false
	}

	for j := left; j <= right; j++ {
		v := (float64(j) - x0) / scale
		w[j] = F(float64(w[j]) * (c0 + c1*v + c2*v*v) / det)
	}
	return true
}

func abs[F core.Float](x F) F {
	if x < 0 {
		return -x
	}
	return x
}
