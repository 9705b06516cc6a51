// SPDX-License-Identifier: MIT

// Package hamiltonian assembles the finite-difference operator
//
//	H = Hcoeff · (−½ · d²/dx²) + V(x)
//
// on a uniform grid and reduces it to an ascending eigenvalue spectrum.
//
// The operator is a dense n×n matrix with bandwidth 2k+1 for neighbor order k.
// Without boundary correction it is exactly symmetric and the real-symmetric
// eigensolver is used. With correction the first and last k−1 rows are
// rebuilt from an asymmetric stencil; eigenvalues are then taken as the
// magnitudes of the general decomposition, which is an approximation callers
// should treat with care.
package hamiltonian

import (
	"errors"
	"fmt"
	"math/cmplx"
	"sort"

	"github.com/katalvlaran/fdspectrum/grid"
	"github.com/katalvlaran/fdspectrum/matrix"
	"github.com/katalvlaran/fdspectrum/stencil"
)

// ErrNonFiniteOperator indicates the operator picked up NaN or ±Inf, most
// often from a potential that is not finite on the grid.
var ErrNonFiniteOperator = errors.New("hamiltonian: non-finite operator entry")

// Spectrum is an ascending sequence of eigenvalues.
type Spectrum []float64

const (
	opAssemble = "Assemble"
	opSolve    = "Solve"
)

func hamiltonianErrorf(tag string, err error) error {
	return fmt.Errorf("hamiltonian.%s: %w", tag, err)
}

// Assemble builds the operator matrix for grid g.
//
// Implementation:
//   - Stage 1: validate order (stencil.ErrUnsupportedOrder) and grid width
//     N ≥ 2k+1, or N ≥ 3k−1 with correction (grid.ErrInvalidDomain).
//   - Stage 2: band fill, H[i,i+d] = Hcoeff·(−½·c_|d|/h²) for d ∈ [−k,k].
//   - Stage 3: optional boundary correction of rows 0..k−2 and their point
//     reflection n−1..n−k+1.
//   - Stage 4: H[i,i] += V(x_i).
//
// Errors:
//   - stencil.ErrUnsupportedOrder, grid.ErrInvalidDomain,
//     ErrNonFiniteOperator (NaN/Inf potential or hcoeff).
//
// Complexity:
//   - Time O(n·k) after the O(n²) zero-initialised allocation, Space O(n²).
func Assemble(g *grid.Grid, hcoeff float64, opts ...Option) (*matrix.Dense, error) {
	o := gatherOptions(opts...)
	coeffs, err := stencil.Laplacian(o.neighbors)
	if err != nil {
		return nil, hamiltonianErrorf(opAssemble, err)
	}
	if err = g.Validate(o.neighbors); err != nil {
		return nil, hamiltonianErrorf(opAssemble, err)
	}
	k, n := o.neighbors, g.N
	if o.correction && stencil.Rows(k) > 0 && n < 3*k-1 {
		return nil, hamiltonianErrorf(opAssemble,
			fmt.Errorf("n=%d < %d required by corrected order %d: %w", n, 3*k-1, k, grid.ErrInvalidDomain))
	}

	h, err := matrix.NewDense(n, n)
	if err != nil {
		return nil, hamiltonianErrorf(opAssemble, err)
	}
	scale := hcoeff * (-0.5 / (g.H * g.H))

	var i, d int
	var v float64
	for d = -k; d <= k; d++ {
		v = scale * coeffs[abs(d)]
		for i = max(0, -d); i < min(n, n-d); i++ {
			if err = h.Set(i, i+d, v); err != nil {
				return nil, hamiltonianErrorf(opAssemble, nonFinite(err))
			}
		}
	}

	if o.correction {
		if err = correctBoundary(h, k, scale); err != nil {
			return nil, hamiltonianErrorf(opAssemble, nonFinite(err))
		}
	}

	for i = 0; i < n; i++ {
		if err = h.AddAt(i, i, g.V[i]); err != nil {
			return nil, hamiltonianErrorf(opAssemble, nonFinite(err))
		}
	}

	return h, nil
}

// correctBoundary overwrites the first k−1 rows with the scaled correction
// stencil, row i starting at column i−1 (the leading coefficient falls off
// row 0), and mirrors them onto the last k−1 rows: H[n−1−i, n−1−j] = H[i, j].
func correctBoundary(h *matrix.Dense, k int, scale float64) error {
	corr, err := stencil.BoundaryCorrection(k)
	if err != nil {
		return err
	}
	n := h.Rows()
	rows := stencil.Rows(k)

	var i, j, m, col int
	for i = 0; i < rows; i++ {
		// Clear the interior band of both rows before writing.
		for j = max(0, i-k); j <= i+k; j++ {
			if err = h.Set(i, j, 0); err != nil {
				return err
			}
			if err = h.Set(n-1-i, n-1-j, 0); err != nil {
				return err
			}
		}
		for m = range corr {
			col = i - 1 + m
			if col < 0 {
				continue
			}
			if err = h.Set(i, col, scale*corr[m]); err != nil {
				return err
			}
			if err = h.Set(n-1-i, n-1-col, scale*corr[m]); err != nil {
				return err
			}
		}
	}

	return nil
}

// Solve assembles the operator and returns its spectrum in ascending order.
//
// Behavior highlights:
//   - Symmetric operator: Solver.Symmetric, eigenvalues are real.
//   - Corrected operator (k ≥ 2): Solver.General, the magnitude of every
//     eigenvalue is taken, then sorted.
//
// Errors:
//   - everything Assemble returns, plus the solver's error unchanged
//     (eigen.ErrNumericalFailure on non-convergence).
func Solve(g *grid.Grid, hcoeff float64, opts ...Option) (Spectrum, error) {
	o := gatherOptions(opts...)
	h, err := Assemble(g, hcoeff, opts...)
	if err != nil {
		return nil, err
	}

	if !o.correction || stencil.Rows(o.neighbors) == 0 {
		vals, err := o.solver.Symmetric(h)
		if err != nil {
			return nil, hamiltonianErrorf(opSolve, err)
		}

		return Spectrum(vals), nil
	}

	cvals, err := o.solver.General(h)
	if err != nil {
		return nil, hamiltonianErrorf(opSolve, err)
	}
	vals := make(Spectrum, len(cvals))
	for i, c := range cvals {
		vals[i] = cmplx.Abs(c)
	}
	sort.Float64s(vals)

	return vals, nil
}

// nonFinite maps the matrix numeric-policy error onto ErrNonFiniteOperator,
// keeping the original in the chain.
func nonFinite(err error) error {
	if errors.Is(err, matrix.ErrNaNInf) {
		return fmt.Errorf("%w: %w", ErrNonFiniteOperator, err)
	}

	return err
}

func abs(d int) int {
	if d < 0 {
		return -d
	}

	return d
}
