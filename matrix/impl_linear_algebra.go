// SPDX-License-Identifier: MIT
// Package matrix provides the dense kernels the operator pipeline needs:
// element-wise subtraction, transpose, matrix-vector product and a cyclic
// Jacobi eigen-solver for symmetric matrices. All functions perform strict
// fail-fast validation and return clear errors on dimension mismatches.
//
// Notes:
//   - All kernels use central validators and wrap failures via matrixErrorf.
//   - *Dense inputs hit flat-slice fast paths; other Matrix implementations
//     go through At/Set with the same loop order.

package matrix

import (
	"fmt"
	"math"
)

// ZeroSum is the initial value for accumulations.
const ZeroSum = 0.0

// Operation name constants for unified error wrapping.
const (
	opSub       = "Sub"
	opTranspose = "Transpose"
	opMatVec    = "MatVec"
	opEigen     = "Eigen"
)

// matrixErrorf wraps err with an operation tag, preserving the original error via %w.
// Use only when err != nil.
func matrixErrorf(tag string, err error) error {
	return fmt.Errorf("%s: %w", tag, err)
}

// Sub computes the element-wise difference C = A − B into a fresh Dense.
//
// Implementation:
//   - Stage 1: ValidateBinarySameShape(a, b). Allocate result Dense(rows, cols).
//   - Stage 2: Fast path if both are *Dense - single flat loop; otherwise i→j via At.
//
// Errors:
//   - ErrNilMatrix, ErrDimensionMismatch.
//
// Complexity:
//   - Time O(r*c), Space O(r*c).
func Sub(a, b Matrix) (Matrix, error) {
	if err := ValidateBinarySameShape(a, b); err != nil {
		return nil, matrixErrorf(opSub, err)
	}
	rows, cols := a.Rows(), a.Cols()
	res, err := NewDense(rows, cols, WithNoValidateNaNInf())
	if err != nil {
		return nil, matrixErrorf(opSub, err)
	}

	if da, okA := a.(*Dense); okA {
		if db, okB := b.(*Dense); okB {
			for idx := range res.data {
				res.data[idx] = da.data[idx] - db.data[idx]
			}

			return res, nil
		}
	}

	var i, j int
	var av, bv float64
	for i = 0; i < rows; i++ {
		for j = 0; j < cols; j++ {
			if av, err = a.At(i, j); err != nil {
				return nil, matrixErrorf(opSub, err)
			}
			if bv, err = b.At(i, j); err != nil {
				return nil, matrixErrorf(opSub, err)
			}
			res.data[i*cols+j] = av - bv
		}
	}

	return res, nil
}

// Transpose returns a new matrix with rows and columns swapped (mᵀ).
// The original matrix is never mutated.
//
// Errors:
//   - ErrNilMatrix.
//
// Complexity:
//   - Time O(r*c), Space O(r*c) for the returned matrix.
func Transpose(m Matrix) (Matrix, error) {
	if err := ValidateNotNil(m); err != nil {
		return nil, matrixErrorf(opTranspose, err)
	}
	rows, cols := m.Rows(), m.Cols()
	res, err := NewDense(cols, rows, WithNoValidateNaNInf())
	if err != nil {
		return nil, matrixErrorf(opTranspose, err)
	}

	var i, j int
	if dm, ok := m.(*Dense); ok {
		// data[i*cols + j] → res.data[j*rows + i]
		var baseSrc int
		for i = 0; i < rows; i++ {
			baseSrc = i * cols
			for j = 0; j < cols; j++ {
				res.data[j*rows+i] = dm.data[baseSrc+j]
			}
		}

		return res, nil
	}

	var v float64
	for i = 0; i < rows; i++ {
		for j = 0; j < cols; j++ {
			if v, err = m.At(i, j); err != nil {
				return nil, matrixErrorf(opTranspose, err)
			}
			res.data[j*rows+i] = v
		}
	}

	return res, nil
}

// MatVec computes y = m·x.
//
// Errors:
//   - ErrNilMatrix, ErrDimensionMismatch (len(x) != Cols()).
//
// Complexity:
//   - Time O(r*c), Space O(r).
func MatVec(m Matrix, x []float64) ([]float64, error) {
	if err := ValidateNotNil(m); err != nil {
		return nil, matrixErrorf(opMatVec, err)
	}
	if err := ValidateVecLen(x, m.Cols()); err != nil {
		return nil, matrixErrorf(opMatVec, err)
	}
	rows, cols := m.Rows(), m.Cols()
	y := make([]float64, rows)

	var i, j int
	var acc, mv float64
	var err error
	if d, ok := m.(*Dense); ok {
		for i = 0; i < rows; i++ {
			acc = ZeroSum
			row := d.data[i*cols : (i+1)*cols]
			for j = 0; j < cols; j++ {
				acc += row[j] * x[j]
			}
			y[i] = acc
		}

		return y, nil
	}

	for i = 0; i < rows; i++ {
		acc = ZeroSum
		for j = 0; j < cols; j++ {
			if mv, err = m.At(i, j); err != nil {
				return nil, matrixErrorf(opMatVec, err)
			}
			acc += mv * x[j]
		}
		y[i] = acc
	}

	return y, nil
}

// Eigen computes eigenvalues and eigenvectors of a symmetric matrix with
// cyclic Jacobi sweeps.
//
// Implementation:
//   - Stage 1: ValidateSymmetric(m, eps); copy m into a working *Dense A and Q = I.
//   - Stage 2: Sweep all pairs (p,q), p<q, in row order; rotate away A[p,q]
//     whenever it exceeds the threshold. Accumulate each rotation into Q.
//   - Stage 3: Stop once max|A[p,q]| ≤ eps·max(1, max|A|); fail after maxSweeps.
//
// Behavior highlights:
//   - Pure Go, deterministic pair order; O(n³) per sweep, quadratic convergence.
//   - The threshold is relative to the largest entry so operators scaled by
//     1/h² converge just as well as unit-scale inputs.
//
// Inputs:
//   - m: symmetric square Matrix (within eps).
//   - opts: WithEpsilon (tolerance), WithMaxSweeps (sweep cap).
//
// Returns:
//   - []float64: eigenvalues in diagonal order (unsorted).
//   - Matrix: Q whose column j is the eigenvector of eigenvalue j.
//
// Errors:
//   - ErrNilMatrix, ErrDimensionMismatch, ErrAsymmetry, ErrNaNInf,
//     ErrMatrixEigenFailed (not converged after maxSweeps).
//
// Complexity:
//   - Time O(sweeps·n³), Space O(n²).
//
// Notes:
//   - Meant for small operators and cross-checks; large grids belong to a
//     LAPACK-backed solver.
func Eigen(m Matrix, opts ...Option) ([]float64, Matrix, error) {
	o := gatherOptions(opts...)
	if err := ValidateSymmetric(m, o.eps); err != nil {
		return nil, nil, matrixErrorf(opEigen, err)
	}

	n := m.Rows()
	a, err := NewDense(n, n, WithNoValidateNaNInf())
	if err != nil {
		return nil, nil, matrixErrorf(opEigen, err)
	}
	var (
		i, j int
		v    float64
		big  float64 // max |A[i,j]|, sets the convergence scale
	)
	for i = 0; i < n; i++ {
		for j = 0; j < n; j++ {
			if v, err = m.At(i, j); err != nil {
				return nil, nil, matrixErrorf(opEigen, err)
			}
			if isNonFinite(v) {
				return nil, nil, matrixErrorf(opEigen, denseErrorf(ctxAt, i, j, ErrNaNInf))
			}
			a.data[i*n+j] = v
			big = math.Max(big, math.Abs(v))
		}
	}
	q, err := NewDense(n, n)
	if err != nil {
		return nil, nil, matrixErrorf(opEigen, err)
	}
	for i = 0; i < n; i++ {
		q.data[i*n+i] = 1.0
	}

	threshold := o.eps * math.Max(1, big)
	A, Q := a.data, q.data

	var (
		sweep, p, r, k     int
		app, aqq, apq      float64
		akp, akq, qkp, qkq float64
		theta, t, c, s     float64
		converged          bool
	)
	for sweep = 0; sweep < o.maxSweeps; sweep++ {
		if maxOffDiagonal(A, n) <= threshold {
			converged = true
			break
		}
		for p = 0; p < n-1; p++ {
			for r = p + 1; r < n; r++ {
				apq = A[p*n+r]
				if math.Abs(apq) <= threshold {
					continue
				}
				app, aqq = A[p*n+p], A[r*n+r]

				// θ = (aqq−app)/(2·apq); t = sign(θ)/(|θ|+√(θ²+1))
				theta = (aqq - app) / (2 * apq)
				t = math.Copysign(1.0/(math.Abs(theta)+math.Hypot(theta, 1)), theta)
				c = 1.0 / math.Sqrt(t*t+1)
				s = t * c

				for k = 0; k < n; k++ {
					if k == p || k == r {
						continue
					}
					akp, akq = A[k*n+p], A[k*n+r]
					A[k*n+p], A[p*n+k] = c*akp-s*akq, c*akp-s*akq
					A[k*n+r], A[r*n+k] = s*akp+c*akq, s*akp+c*akq
				}
				A[p*n+p] = c*c*app - 2*c*s*apq + s*s*aqq
				A[r*n+r] = s*s*app + 2*c*s*apq + c*c*aqq
				A[p*n+r], A[r*n+p] = 0, 0

				for k = 0; k < n; k++ {
					qkp, qkq = Q[k*n+p], Q[k*n+r]
					Q[k*n+p] = c*qkp - s*qkq
					Q[k*n+r] = s*qkp + c*qkq
				}
			}
		}
	}
	if !converged && maxOffDiagonal(A, n) > threshold {
		return nil, nil, matrixErrorf(opEigen, ErrMatrixEigenFailed)
	}

	eigs := make([]float64, n)
	for i = 0; i < n; i++ {
		eigs[i] = A[i*n+i]
	}

	return eigs, q, nil
}

// maxOffDiagonal returns max_{i<j} |A[i,j]| for a symmetric row-major n×n buffer.
func maxOffDiagonal(a []float64, n int) float64 {
	var off float64
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			off = math.Max(off, math.Abs(a[i*n+j]))
		}
	}

	return off
}
