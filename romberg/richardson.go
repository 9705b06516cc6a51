// SPDX-License-Identifier: MIT

package romberg

import "math"

// ConvergenceExponent returns the empirical order p observed over three
// successive values a, b, c taken at refinement ratio r:
//
//	p = log((a−b)/(b−c)) / log(r)
//
// Coinciding values yield NaN or ±Inf; callers treat those as "no
// convergence observed" rather than as errors.
func ConvergenceExponent(a, b, c, r float64) float64 {
	return math.Log((a-b)/(b-c)) / math.Log(r)
}

// Richardson removes the h^order error term from a sequence of approximations
// taken at successive refinements with ratio r.
//
// For every idx ≥ 1:
//
//	extrapolants[idx] = a[idx] + (a[idx] − a[idx−1]) / (r^order − 1)
//
// and for idx > 2 the observed exponent of the extrapolants is recorded in
// exponents[idx]. Index 0 of both outputs, and exponents[1..2], stay zero.
//
// Complexity: O(len(approx)).
func Richardson(approx []float64, r float64, order int) (extrapolants, exponents []float64) {
	n := len(approx)
	extrapolants = make([]float64, n)
	exponents = make([]float64, n)
	denom := math.Pow(r, float64(order)) - 1

	for idx := 1; idx < n; idx++ {
		extrapolants[idx] = approx[idx] + (approx[idx]-approx[idx-1])/denom
		if idx > 2 {
			exponents[idx] = ConvergenceExponent(
				extrapolants[idx-2], extrapolants[idx-1], extrapolants[idx], r)
		}
	}

	return extrapolants, exponents
}
