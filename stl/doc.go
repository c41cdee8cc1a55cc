// Package stl implements Seasonal-Trend decomposition by LOESS (Cleveland et
// al., 1990) for a single seasonal period.
//
// A series y of length n is split into
//
//	y = T + S + R
//
// where T is a smooth trend, S a seasonal component with period p and R the
// remainder.
//
// # Algorithm
//
// The inner loop alternates between the two smooth components:
//
//  1. Detrend: y - T.
//  2. Smooth every cycle-subseries (all points sharing a phase modulo p) and
//     extrapolate one point on each side, giving n + 2p values C.
//  3. Low-pass filter C with moving averages of length p, p and 3 followed by
//     a LOESS pass, giving L.
//  4. Seasonal: S[i] = C[p+i] - L[i].
//  5. Trend: LOESS of y - S.
//
// When robustness is enabled the outer loop recomputes bisquare weights from
// |y - T - S| after each inner loop and feeds them to the seasonal and trend
// smoothers.
//
// # Parameters
//
// [Params] holds optional overrides. Unset fields resolve per period:
//
//	seasonal length   p (odd, at least 3)
//	trend length      ceil(1.5p / (1 - 1.5/seasonal length)), odd
//	low-pass length   p (odd, at least 3)
//	degrees           seasonal 0, trend 1, low-pass = trend
//	jumps             ceil(length / 10)
//	inner loops       2, or 1 when robust
//	outer loops       0, or 15 when robust
//
// Outer loops are ignored unless robustness is enabled. The series must be
// longer than two full periods.
package stl
