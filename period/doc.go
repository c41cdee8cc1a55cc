// Package period estimates candidate seasonal periods of a series from its
// periodogram.
//
// The series is linearly detrended, tapered and transformed with a
// full-length FFT, so bin k corresponds to the Fourier frequency k/n and the
// period n/k. [Detect] keeps the local maxima of the power spectrum whose
// rounded period is usable by an STL decomposition (2 ≤ p and 2p < n),
// merges peaks that round to the same period and returns the strongest.
//
//	cands, err := period.Detect(series, period.WithMaxPeriods(2))
//	periods := period.Periods(cands)
//
// The result is a suggestion for [github.com/cwbudde/algo-mstl/mstl.Decompose];
// strongly non-sinusoidal seasonality also produces peaks at its harmonics.
package period
