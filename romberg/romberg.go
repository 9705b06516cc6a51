// SPDX-License-Identifier: MIT

// Package romberg implements Richardson extrapolation and the Romberg table
// built from it, applied per eigenvalue across spectra solved at several
// grid resolutions.
//
// Table layout for L levels:
//
//	Extrapolants[0]    = raw values, one per level
//	Extrapolants[i][j] = Richardson(Extrapolants[i−1][i−1:], r, p_i), j ≥ i
//	p_i                = LeadingOrder + 2(i−1)
//
// so Extrapolants[i][i] is the i-th diagonal estimate. Near-zero denominators
// are absorbed by Epsilon; diagnostics degrade to large finite sentinels or
// NaN, never to errors.
package romberg

import (
	"errors"
	"fmt"
	"math"
)

// Epsilon guards divisions by a reference or extrapolant close to zero.
const Epsilon = 1e-24

// DefaultLeadingOrder is the leading error order of the second-order
// discretization in h: errors go as h², h⁴, h⁶, ...
const DefaultLeadingOrder = 2

var (
	// ErrNoLevels indicates an empty input.
	ErrNoLevels = errors.New("romberg: no refinement levels")

	// ErrBadIncrementFactor indicates a refinement ratio that is not finite or ≤ 1.
	ErrBadIncrementFactor = errors.New("romberg: increment factor must be finite and > 1")
)

// Table is the full triangular extrapolation table with its diagnostics.
// Entries outside the triangle are zero.
type Table struct {
	Extrapolants   [][]float64 // [row][level]
	ConvExponents  [][]float64 // [row][level], defined for level > row
	RelativeErrors [][]float64 // floor(log10|1 − T/(ref+ε)|), level ≥ row
	Factor         float64     // refinement ratio r
	Reference      float64     // last diagonal entry or the supplied exact value
}

// Result is the selected extrapolant of one Romberg run.
type Result struct {
	Value    float64 // chosen diagonal extrapolant
	LogError float64 // base-10 exponent of the error estimate; NaN for one level
	Best     int     // index of the chosen diagonal entry
	Table    *Table
}

// Option configures Integrate.
type Option func(*options)

type options struct {
	exact        float64
	hasExact     bool
	leadingOrder int
}

// WithExact uses a known exact value as the diagnostic reference.
// Panics on NaN or ±Inf.
func WithExact(v float64) Option {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		panic("romberg: WithExact: value must be finite")
	}

	return func(o *options) { o.exact, o.hasExact = v, true }
}

// WithLeadingOrder sets p_1, the order removed by the first extrapolation.
// Panics when p ≤ 0.
func WithLeadingOrder(p int) Option {
	if p <= 0 {
		panic("romberg: WithLeadingOrder: order must be > 0")
	}

	return func(o *options) { o.leadingOrder = p }
}

func gatherOptions(user ...Option) options {
	o := options{leadingOrder: DefaultLeadingOrder}
	for _, set := range user {
		if set != nil {
			set(&o)
		}
	}

	return o
}

// order returns p_i for table row i ≥ 1.
func (o options) order(i int) int { return o.leadingOrder + 2*(i-1) }

// logFloor returns floor(log10|x|) with |x| clamped below at Epsilon.
func logFloor(x float64) float64 {
	return math.Floor(math.Log10(math.Max(math.Abs(x), Epsilon)))
}

// Integrate builds the Romberg table over values (one per refinement level,
// coarsest first) and selects the best diagonal extrapolant.
//
// Implementation:
//   - Stage 1: row 0 = values; row i = Richardson of row i−1's tail with p_i.
//     Every row is committed to the table.
//   - Stage 2: reference = T[L−1][L−1] unless WithExact.
//   - Stage 3: ConvExponents[i][j] = log((ref−T[i][j−1])/(ref−T[i][j]))/log r
//     and RelativeErrors[i][j].
//   - Stage 4: walk the diagonal while |ConvExponents[i−1][i] − p_i| < 2; the
//     last index that passes is Best.
//   - Stage 5: LogError from row q = max(Best−1, 0):
//     floor(log10|(T[q][q] − T[q][q+1]) / (T[q][q+1]+ε) + ε|).
//
// Behavior highlights:
//   - A single level returns the value unchanged with LogError = NaN.
//   - NaN/Inf exponents simply end the diagonal walk.
//
// Errors:
//   - ErrNoLevels (empty values), ErrBadIncrementFactor (r ≤ 1 or non-finite,
//     checked only when there is more than one level).
//
// Complexity:
//   - Time O(L²), Space O(L²).
func Integrate(values []float64, r float64, opts ...Option) (Result, error) {
	n := len(values)
	if n == 0 {
		return Result{}, ErrNoLevels
	}
	o := gatherOptions(opts...)

	t := &Table{
		Extrapolants:   square(n),
		ConvExponents:  square(n),
		RelativeErrors: square(n),
		Factor:         r,
	}
	copy(t.Extrapolants[0], values)

	if n == 1 {
		t.Reference = values[0]
		if o.hasExact {
			t.Reference = o.exact
		}
		t.RelativeErrors[0][0] = logFloor(1 - values[0]/(t.Reference+Epsilon))

		return Result{Value: values[0], LogError: math.NaN(), Best: 0, Table: t}, nil
	}
	if math.IsNaN(r) || math.IsInf(r, 0) || r <= 1 {
		return Result{}, fmt.Errorf("r=%g: %w", r, ErrBadIncrementFactor)
	}

	var i, j int
	T := t.Extrapolants
	for i = 1; i < n; i++ {
		extr, _ := Richardson(T[i-1][i-1:], r, o.order(i))
		// extr[0] is the unused slot; extr[m] lands on level i−1+m.
		copy(T[i][i:], extr[1:])
	}

	ref := T[n-1][n-1]
	if o.hasExact {
		ref = o.exact
	}
	t.Reference = ref

	logR := math.Log(r)
	for i = 0; i < n; i++ {
		for j = i + 1; j < n; j++ {
			t.ConvExponents[i][j] = math.Log((ref-T[i][j-1])/(ref-T[i][j])) / logR
		}
		for j = i; j < n; j++ {
			t.RelativeErrors[i][j] = logFloor(1 - T[i][j]/(ref+Epsilon))
		}
	}

	best := 0
	for i = 1; i < n && math.Abs(t.ConvExponents[i-1][i]-float64(o.order(i))) < 2; i++ {
		best = i
	}

	q := max(best-1, 0)
	logErr := logFloor((T[q][q]-T[q][q+1])/(T[q][q+1]+Epsilon) + Epsilon)

	return Result{Value: T[best][best], LogError: logErr, Best: best, Table: t}, nil
}

// IntegrateSpectrum runs Integrate independently for every eigenvalue index
// across the per-level spectra (levels[level][index], coarsest level first).
// Spectra are truncated to the shortest level.
//
// Errors: ErrNoLevels, ErrBadIncrementFactor; the failing index is named.
func IntegrateSpectrum(levels [][]float64, r float64, opts ...Option) (values, logErrors []float64, err error) {
	if len(levels) == 0 {
		return nil, nil, ErrNoLevels
	}
	width := len(levels[0])
	for _, l := range levels[1:] {
		width = min(width, len(l))
	}

	values = make([]float64, width)
	logErrors = make([]float64, width)
	column := make([]float64, len(levels))
	var res Result
	for idx := 0; idx < width; idx++ {
		for lvl := range levels {
			column[lvl] = levels[lvl][idx]
		}
		if res, err = Integrate(column, r, opts...); err != nil {
			return nil, nil, fmt.Errorf("eigenvalue %d: %w", idx, err)
		}
		values[idx], logErrors[idx] = res.Value, res.LogError
	}

	return values, logErrors, nil
}

func square(n int) [][]float64 {
	buf := make([]float64, n*n)
	rows := make([][]float64, n)
	for i := range rows {
		rows[i] = buf[i*n : (i+1)*n : (i+1)*n]
	}

	return rows
}
