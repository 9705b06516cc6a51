// Package stencil holds the finite-difference coefficient tables used to
// discretize the second derivative on a uniform grid.
//
// What is in here?
//
//	Laplacian(k)           central stencil of neighbor order k (1..7), accuracy O(h^2k).
//	Reference(k)           the alternative interior family (1..6), tabulated in a
//	                       different normalization; kept for cross-checking.
//	BoundaryCorrection(k)  asymmetric stencil used to rebuild the first and
//	                       last k−1 rows of an operator so they keep the interior order.
//
// All tables are package-level literals. Accessors return copies, so callers
// may scale the result in place without touching the tables.
//
// Coefficients are expressed in units of 1/h²:
//
//	u''(x_i) ≈ (1/h²)·[ c0·u_i + Σ_{d=1..k} c_d·(u_{i−d} + u_{i+d}) ]
package stencil
