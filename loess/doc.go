// Package loess implements the locally weighted polynomial smoother used by the
// STL and MSTL decompositions.
//
// For a window length w, a degree d in {0, 1, 2} and a jump q, every q-th
// point (and always the first and last point) is replaced by the value of a
// degree-d weighted least-squares fit over the w nearest points, evaluated at
// that point. Points between computed positions are linearly interpolated.
//
// # Weights
//
// Each point in the window is weighted by the tri-cube kernel
//
//	K(u) = (1 - |u|^3)^3
//
// of its distance to the query position, normalized by the largest distance
// in the window. An optional per-point weight (the STL robustness weight) is
// multiplied in.
//
// # Boundaries
//
// The window is recentred and shrunk near the edges so it never extends past
// the data. When w exceeds the number of points the bandwidth grows by
// (w-m)/2, which makes the fit smoother without reaching outside the data.
//
// # Degenerate fits
//
// A window with fewer than d+1 positive-weight points, or a numerically
// singular normal system, is fitted with degree 0 (the weighted mean). When
// every kernel weight is zero the observed value is kept.
//
// # Usage
//
//	smoothed, err := loess.Smooth(y, loess.Config{Length: 13, Degree: 1, Jump: 2}, nil)
//
// For repeated smoothing with the same settings create a [Smoother], which
// keeps its scratch buffer between calls.
package loess
