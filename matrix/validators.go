// SPDX-License-Identifier: MIT
// Package: matrix
//
// Purpose:
//  - Provide a single, canonical source of truth for common validation checks.
//  - Keep kernels minimal by delegating shape/nil/symmetry checks here.
//  - Return sentinel errors tagged with the validator name so call sites can wrap uniformly.
//
// Determinism & Performance:
//  - All checks are pure, deterministic and allocate nothing.
//  - Symmetry checks run O(n²) on the upper triangle only.

package matrix

import (
	"fmt"
	"math"
)

// validatorErrorf wraps an underlying error with the given validator tag.
func validatorErrorf(tag string, err error) error {
	return fmt.Errorf("%s: %w", tag, err)
}

// ValidateNotNil ensures the matrix reference is non-nil.
// A typed nil *Dense stored in the interface is treated as nil too.
//
// Returns ErrNilMatrix if m == nil.
// Complexity: O(1).
func ValidateNotNil(m Matrix) error {
	if m == nil {
		return validatorErrorf("ValidateNotNil", ErrNilMatrix)
	}
	if d, ok := m.(*Dense); ok && d == nil {
		return validatorErrorf("ValidateNotNil", ErrNilMatrix)
	}

	return nil
}

// ValidateSameShape ensures matrices a and b have equal dimensions.
// Assumes a and b are not nil.
func ValidateSameShape(a, b Matrix) error {
	if a.Rows() != b.Rows() {
		return validatorErrorf("ValidateSameShape: Rows", ErrDimensionMismatch)
	}
	if a.Cols() != b.Cols() {
		return validatorErrorf("ValidateSameShape: Columns", ErrDimensionMismatch)
	}

	return nil
}

// ValidateBinarySameShape is ValidateNotNil on both operands followed by
// ValidateSameShape.
func ValidateBinarySameShape(a, b Matrix) error {
	if err := ValidateNotNil(a); err != nil {
		return err
	}
	if err := ValidateNotNil(b); err != nil {
		return err
	}

	return ValidateSameShape(a, b)
}

// ValidateSquare checks that m is non-nil and square (Rows == Cols).
// Errors: ErrNilMatrix, ErrDimensionMismatch.
func ValidateSquare(m Matrix) error {
	if err := ValidateNotNil(m); err != nil {
		return err
	}
	if m.Rows() != m.Cols() {
		return validatorErrorf("ValidateSquare", ErrDimensionMismatch)
	}

	return nil
}

// ValidateVecLen ensures the vector length matches the required size n.
func ValidateVecLen(x []float64, n int) error {
	if x == nil {
		return validatorErrorf("ValidateVecLen", ErrNilMatrix)
	}
	if len(x) != n {
		return validatorErrorf("ValidateVecLen", ErrDimensionMismatch)
	}

	return nil
}

// MaxAsymmetry returns max_{i<j} |A[i,j] − A[j,i]| for a square matrix,
// measured as the largest entry of |A − Aᵀ|.
//
// Errors: ErrNilMatrix, ErrDimensionMismatch.
// Complexity: O(n²), Space O(n²).
func MaxAsymmetry(m Matrix) (float64, error) {
	if err := ValidateSquare(m); err != nil {
		return 0, validatorErrorf("MaxAsymmetry", err)
	}
	mt, err := Transpose(m)
	if err != nil {
		return 0, validatorErrorf("MaxAsymmetry", err)
	}
	diff, err := Sub(m, mt)
	if err != nil {
		return 0, validatorErrorf("MaxAsymmetry", err)
	}

	var maxOff float64
	for _, v := range diff.(*Dense).data {
		maxOff = math.Max(maxOff, math.Abs(v))
	}

	return maxOff, nil
}

// ValidateSymmetric checks A is symmetric within tolerance tol:
// |A[i,j] − A[j,i]| ≤ tol for all i<j.
//
// Returns ErrNilMatrix/ErrDimensionMismatch on structural issues, ErrNaNInf on bad tol,
// ErrAsymmetry on violation. A negative tol is taken by absolute value.
// Complexity: O(n²).
func ValidateSymmetric(m Matrix, tol float64) error {
	if math.IsNaN(tol) || math.IsInf(tol, 0) {
		return validatorErrorf("ValidateSymmetric", ErrNaNInf)
	}
	tol = math.Abs(tol)

	asym, err := MaxAsymmetry(m)
	if err != nil {
		return validatorErrorf("ValidateSymmetric", err)
	}
	if asym > tol {
		return validatorErrorf("ValidateSymmetric", ErrAsymmetry)
	}

	return nil
}
