// Package mstl implements MSTL, the extension of STL to series with several
// seasonal periods (Bandara, Hyndman and Bergmeir, 2021).
//
//	y = T + S_1 + ... + S_k + R
//
// # Passes
//
// Every seasonal component starts at zero. Each pass visits the periods in the
// order given and, for period p_i, runs a full STL fit on
//
//	y - Σ_{j≠i} S_j
//
// replacing S_i and T with the result. The number of passes is fixed
// ([WithIterations], default 2); a single period is fitted once. The remainder
// is y - T - Σ S_i.
//
// Without periods the trend is one LOESS pass over the series and the
// remainder is y - T.
//
// # Seasonal windows
//
// Unless set explicitly, the seasonal smoother length of the r-th shortest
// period is 7 + 4r (11, 15, 19, ...). All other STL settings are shared by
// every period and configured with [WithSTL].
//
// # Box-Cox
//
// With [WithLambda] the series is transformed before decomposition and the
// returned components stay on the transformed scale. [Result.Reconstruct]
// maps their sum back.
package mstl
