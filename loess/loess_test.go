package loess

import (
	"errors"
	"math"
	"testing"
)

func ramp(n int, slope, intercept float64) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = intercept + slope*float64(i)
	}
	return out
}

func requireClose(t *testing.T, got, want []float64, tol float64) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("length mismatch: got %d, want %d", len(got), len(want))
	}
	for i := range got {
		if math.Abs(got[i]-want[i]) > tol {
			t.Fatalf("index %d: got %v, want %v", i, got[i], want[i])
		}
	}
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name string
		cfg  Config
		ok   bool
	}{
		{name: "valid", cfg: Config{Length: 5, Degree: 1, Jump: 1}, ok: true},
		{name: "quadratic", cfg: Config{Length: 5, Degree: 2, Jump: 3}, ok: true},
		{name: "zero length", cfg: Config{Length: 0, Degree: 1, Jump: 1}},
		{name: "negative degree", cfg: Config{Length: 5, Degree: -1, Jump: 1}},
		{name: "cubic", cfg: Config{Length: 5, Degree: 3, Jump: 1}},
		{name: "zero jump", cfg: Config{Length: 5, Degree: 1, Jump: 0}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.cfg.Validate()
			if tc.ok && err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !tc.ok && !errors.Is(err, ErrInvalidArgument) {
				t.Fatalf("err = %v, want ErrInvalidArgument", err)
			}
		})
	}
}

func TestSmoothRejectsMismatchedWeights(t *testing.T) {
	_, err := Smooth([]float64{1, 2, 3}, Config{Length: 3, Degree: 1, Jump: 1}, []float64{1, 1})
	if !errors.Is(err, ErrInvalidArgument) {
		t.Fatalf("err = %v, want ErrInvalidArgument", err)
	}
}

func TestSmoothLinearReproducesRamp(t *testing.T) {
	y := ramp(40, 0.75, -3)
	for _, jump := range []int{1, 2, 3, 7} {
		got, err := Smooth(y, Config{Length: 9, Degree: 1, Jump: jump}, nil)
		if err != nil {
			t.Fatalf("jump %d: %v", jump, err)
		}
		requireClose(t, got, y, 1e-9)
	}
}

func TestSmoothQuadraticReproducesParabola(t *testing.T) {
	y := make([]float64, 30)
	for i := range y {
		x := float64(i)
		y[i] = 0.5*x*x - 3*x + 2
	}

	got, err := Smooth(y, Config{Length: 7, Degree: 2, Jump: 1}, nil)
	if err != nil {
		t.Fatal(err)
	}
	requireClose(t, got, y, 1e-7)
}

func TestSmoothConstantForEveryDegree(t *testing.T) {
	y := make([]float64, 25)
	for i := range y {
		y[i] = 4.25
	}

	for degree := 0; degree <= MaxDegree; degree++ {
		for _, length := range []int{3, 11, 51} {
			got, err := Smooth(y, Config{Length: length, Degree: degree, Jump: 2}, nil)
			if err != nil {
				t.Fatal(err)
			}
			requireClose(t, got, y, 1e-9)
		}
	}
}

func TestSmoothZeroWeightIgnoresOutlier(t *testing.T) {
	y := make([]float64, 21)
	w := make([]float64, 21)
	for i := range y {
		y[i] = 5
		w[i] = 1
	}
	y[10] = 100
	w[10] = 0

	got, err := Smooth(y, Config{Length: 7, Degree: 1, Jump: 1}, w)
	if err != nil {
		t.Fatal(err)
	}
	for i, v := range got {
		if math.Abs(v-5) > 1e-9 {
			t.Fatalf("index %d: got %v, want 5", i, v)
		}
	}
}

func TestSmoothAllZeroWeightsKeepsObservations(t *testing.T) {
	y := []float64{3, 1, 4, 1, 5, 9, 2, 6}
	w := make([]float64, len(y))

	got, err := Smooth(y, Config{Length: 5, Degree: 1, Jump: 1}, w)
	if err != nil {
		t.Fatal(err)
	}
	requireClose(t, got, y, 0)
}

func TestSmoothQuadraticWithTooFewPointsFallsBackToMean(t *testing.T) {
	// Only two points carry weight in every window: degree 2 degrades to
	// the weighted mean instead of failing.
	y := []float64{2, 4, 8, 16}
	w := []float64{1, 0, 0, 1}

	got, err := Smooth(y, Config{Length: 4, Degree: 2, Jump: 1}, w)
	if err != nil {
		t.Fatal(err)
	}
	for i, v := range got {
		if math.IsNaN(v) || v < 2 || v > 16 {
			t.Fatalf("index %d: got %v, want a finite weighted mean in [2, 16]", i, v)
		}
	}
}

func TestSmoothShortInputs(t *testing.T) {
	got, err := Smooth([]float64{}, Config{Length: 3, Degree: 1, Jump: 1}, nil)
	if err != nil || len(got) != 0 {
		t.Fatalf("empty input: got %v, %v", got, err)
	}

	got, err = Smooth([]float64{7}, Config{Length: 3, Degree: 1, Jump: 1}, nil)
	if err != nil {
		t.Fatal(err)
	}
	requireClose(t, got, []float64{7}, 0)
}

func TestSmoothWindowLongerThanSeries(t *testing.T) {
	y := ramp(6, 2, 1)
	got, err := Smooth(y, Config{Length: 15, Degree: 1, Jump: 1}, nil)
	if err != nil {
		t.Fatal(err)
	}
	requireClose(t, got, y, 1e-9)
}

func TestEstimateExtrapolatesLine(t *testing.T) {
	y := ramp(8, 1.5, 2)
	s, err := NewSmoother[float64](Config{Length: 5, Degree: 1, Jump: 1})
	if err != nil {
		t.Fatal(err)
	}

	v, ok := s.Estimate(y, -1, 0, 4, nil)
	if !ok || math.Abs(v-0.5) > 1e-9 {
		t.Fatalf("left extrapolation = %v (ok=%v), want 0.5", v, ok)
	}

	v, ok = s.Estimate(y, 8, 3, 7, nil)
	if !ok || math.Abs(v-14) > 1e-9 {
		t.Fatalf("right extrapolation = %v (ok=%v), want 14", v, ok)
	}

	if _, ok := s.Estimate(y, 0, 5, 2, nil); ok {
		t.Fatal("inverted window should not produce an estimate")
	}
}

func TestSmoothFloat32(t *testing.T) {
	y := make([]float32, 30)
	for i := range y {
		y[i] = float32(i)*0.5 + 1
	}

	got, err := Smooth(y, Config{Length: 7, Degree: 1, Jump: 2}, nil)
	if err != nil {
		t.Fatal(err)
	}
	for i := range got {
		if d := math.Abs(float64(got[i] - y[i])); d > 1e-4 {
			t.Fatalf("index %d: got %v, want %v", i, got[i], y[i])
		}
	}
}

func TestSmoothIsDeterministic(t *testing.T) {
	y := make([]float64, 100)
	for i := range y {
		y[i] = math.Sin(float64(i)/5) + 0.1*math.Cos(float64(i)*1.7)
	}
	cfg := Config{Length: 15, Degree: 2, Jump: 3}

	a, err := Smooth(y, cfg, nil)
	if err != nil {
		t.Fatal(err)
	}
	b, err := Smooth(y, cfg, nil)
	if err != nil {
		t.Fatal(err)
	}
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("index %d: %v != %v", i, a[i], b[i])
		}
	}
}
