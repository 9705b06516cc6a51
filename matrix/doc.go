// Package matrix provides the dense storage and kernels behind the
// finite-difference operators.
//
// The matrix package provides:
//
//   - Dense: a row-major float64 matrix with bounds-checked At/Set/AddAt and
//     an optional NaN/Inf rejection policy.
//   - Validators shared by every kernel (nil, shape, symmetry).
//   - Sub and Transpose behind MaxAsymmetry; MatVec for eigenpair residuals.
//   - Eigen: a pure-Go cyclic Jacobi eigen-solver for symmetric matrices.
//
// Dense is O(n²) in memory; an operator for n grid points costs 8·n² bytes.
//
// All user-triggered failures are returned as sentinel errors wrapped with
// an operation tag; match them with errors.Is.
package matrix
