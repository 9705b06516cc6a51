// SPDX-License-Identifier: MIT

// Package eigen is the boundary to the dense eigen-decomposition routines
// the spectrum is reduced with.
//
// Two implementations satisfy Solver:
//   - Gonum: LAPACK-style decompositions from gonum.org/v1/gonum/mat. This is
//     the default and the only one suited to production grid sizes.
//   - Jacobi: the pure-Go cyclic Jacobi kernel from the matrix package. It
//     handles symmetric input only and serves as an independent cross-check.
//
// Solvers never mutate their input and report non-convergence as
// ErrNumericalFailure.
package eigen

import (
	"errors"
	"fmt"
	"math"
	"sort"

	"github.com/katalvlaran/fdspectrum/matrix"
	"gonum.org/v1/gonum/mat"
)

var (
	// ErrNumericalFailure indicates the eigen-decomposition did not converge.
	ErrNumericalFailure = errors.New("eigen: decomposition did not converge")

	// ErrGeneralUnsupported is returned by solvers with no general
	// (non-symmetric) decomposition.
	ErrGeneralUnsupported = errors.New("eigen: general decomposition unsupported")
)

// Solver reduces a square operator to its eigenvalues.
type Solver interface {
	// Symmetric returns the real eigenvalues of a symmetric matrix in
	// ascending order.
	Symmetric(m *matrix.Dense) ([]float64, error)

	// General returns the possibly complex eigenvalues of an arbitrary
	// square matrix, in no particular order.
	General(m *matrix.Dense) ([]complex128, error)
}

// Default returns the solver used when none is configured.
func Default() Solver { return Gonum{} }

// eigenErrorf wraps err with a solver/method tag.
func eigenErrorf(tag string, err error) error {
	return fmt.Errorf("%s: %w", tag, err)
}

// square checks m is a non-nil square matrix.
func square(tag string, m *matrix.Dense) (int, error) {
	if err := matrix.ValidateSquare(m); err != nil {
		return 0, eigenErrorf(tag, err)
	}

	return m.Rows(), nil
}

// Gonum solves with gonum's mat.EigenSym and mat.Eigen.
type Gonum struct{}

var _ Solver = Gonum{}

// Symmetric wraps the row-major buffer as a mat.SymDense (upper triangle is
// read) and factorizes without vectors.
//
// Complexity: O(n³) time, O(n²) extra space inside gonum.
func (Gonum) Symmetric(m *matrix.Dense) ([]float64, error) {
	const tag = "Gonum.Symmetric"
	n, err := square(tag, m)
	if err != nil {
		return nil, err
	}

	var es mat.EigenSym
	if ok := es.Factorize(mat.NewSymDense(n, m.RawData()), false); !ok {
		return nil, eigenErrorf(tag, ErrNumericalFailure)
	}
	vals := es.Values(nil)
	sort.Float64s(vals)

	return vals, nil
}

// General factorizes an arbitrary square matrix with mat.EigenNone.
func (Gonum) General(m *matrix.Dense) ([]complex128, error) {
	const tag = "Gonum.General"
	n, err := square(tag, m)
	if err != nil {
		return nil, err
	}

	var e mat.Eigen
	if ok := e.Factorize(mat.NewDense(n, n, m.RawData()), mat.EigenNone); !ok {
		return nil, eigenErrorf(tag, ErrNumericalFailure)
	}

	return e.Values(nil), nil
}

// DefaultResidual bounds max_i |(A·q − λ·q)_i| for every Jacobi eigenpair,
// relative to max(1, max|λ|).
const DefaultResidual = 1e-6

// Jacobi solves symmetric problems with matrix.Eigen.
// Zero fields fall back to the matrix package defaults and DefaultResidual.
type Jacobi struct {
	Tol       float64 // convergence tolerance relative to max|A|
	MaxSweeps int     // sweep cap
	Residual  float64 // admissible eigenpair residual relative to max(1, max|λ|)
}

var _ Solver = Jacobi{}

func (j Jacobi) options() []matrix.Option {
	var opts []matrix.Option
	if j.Tol > 0 {
		opts = append(opts, matrix.WithEpsilon(j.Tol))
	}
	if j.MaxSweeps > 0 {
		opts = append(opts, matrix.WithMaxSweeps(j.MaxSweeps))
	}

	return opts
}

// Symmetric runs cyclic Jacobi, checks every eigenpair against the input
// and sorts the diagonal ascending. A loose Tol that stops the sweeps before
// the eigenpairs satisfy the residual bound is reported as
// ErrNumericalFailure.
//
// Complexity: O(sweeps·n³); intended for small operators.
func (j Jacobi) Symmetric(m *matrix.Dense) ([]float64, error) {
	const tag = "Jacobi.Symmetric"
	if _, err := square(tag, m); err != nil {
		return nil, err
	}
	vals, vecs, err := matrix.Eigen(m, j.options()...)
	if errors.Is(err, matrix.ErrMatrixEigenFailed) {
		return nil, eigenErrorf(tag, fmt.Errorf("%w: %w", ErrNumericalFailure, err))
	}
	if err != nil {
		return nil, eigenErrorf(tag, err)
	}
	if err = j.checkResiduals(m, vals, vecs); err != nil {
		return nil, eigenErrorf(tag, err)
	}
	sort.Float64s(vals)

	return vals, nil
}

// checkResiduals verifies A·q_k ≈ λ_k·q_k for every column q_k of vecs.
func (j Jacobi) checkResiduals(m *matrix.Dense, vals []float64, vecs matrix.Matrix) error {
	tol := j.Residual
	if tol <= 0 {
		tol = DefaultResidual
	}
	scale := 1.0
	for _, lam := range vals {
		scale = math.Max(scale, math.Abs(lam))
	}
	limit := tol * scale

	col := make([]float64, len(vals))
	var (
		aq  []float64
		err error
	)
	for k, lam := range vals {
		for i := range col {
			if col[i], err = vecs.At(i, k); err != nil {
				return err
			}
		}
		if aq, err = matrix.MatVec(m, col); err != nil {
			return err
		}
		for i, v := range aq {
			if r := math.Abs(v - lam*col[i]); r > limit {
				return fmt.Errorf("eigenpair %d: residual %.3g > %.3g: %w", k, r, limit, ErrNumericalFailure)
			}
		}
	}

	return nil
}

// General is not available for Jacobi.
func (Jacobi) General(*matrix.Dense) ([]complex128, error) {
	return nil, eigenErrorf("Jacobi.General", ErrGeneralUnsupported)
}
