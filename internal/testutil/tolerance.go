package testutil

import (
	"fmt"
	"math"
	"testing"

	"github.com/cwbudde/algo-mstl/core"
)

// RequireSliceNearlyEqual fails t if got and want differ in length or if
// any element pair exceeds eps (absolute tolerance).
func RequireSliceNearlyEqual[F core.Float](t *testing.T, got, want []F, eps float64) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("length mismatch: got %d, want %d", len(got), len(want))
	}
	for i := range got {
		diff := math.Abs(float64(got[i]) - float64(want[i]))
		if diff > eps {
			t.Fatalf("index %d: got %v, want %v (diff %v > eps %v)", i, got[i], want[i], diff, eps)
		}
	}
}

// RequireFinite fails t if any element is NaN or Inf.
func RequireFinite[F core.Float](t *testing.T, data []F) {
	t.Helper()
	for i, v := range data {
		if !core.IsFinite(float64(v)) {
			t.Fatalf("index %d: non-finite value %v", i, v)
		}
	}
}

// RequireReconstruction fails t unless trend + Σ seasonal + remainder equals
// series at every index within eps.
func RequireReconstruction[F core.Float](t *testing.T, series, trend []F, seasonal [][]F, remainder []F, eps float64) {
	t.Helper()
	for i := range series {
		sum := float64(trend[i]) + float64(remainder[i])
		for _, s := range seasonal {
			sum += float64(s[i])
		}
		if diff := math.Abs(sum - float64(series[i])); diff > eps {
			t.Fatalf("index %d: components sum to %v, series is %v (diff %v > eps %v)", i, sum, series[i], diff, eps)
		}
	}
}

// MaxAbsDiff returns the maximum absolute difference between two slices.
// Returns an error if the slices differ in length.
func MaxAbsDiff[F core.Float](a, b []F) (float64, error) {
	if len(a) != len(b) {
		return 0, fmt.Errorf("length mismatch: %d vs %d", len(a), len(b))
	}
	maxDiff := 0.0
	for i := range a {
		d := math.Abs(float64(a[i]) - float64(b[i]))
		if d > maxDiff {
			maxDiff = d
		}
	}
	return maxDiff, nil
}
