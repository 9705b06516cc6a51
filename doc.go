// Package fdspectrum computes energy spectra of one-dimensional
// Schrödinger-type problems
//
//	Hcoeff · (−½ u''(x)) + V(x) u(x) = E u(x),  x ∈ [xmin, xmax]
//
// with high-order finite differences and optional Richardson/Romberg
// extrapolation across grid resolutions.
//
// What is in here?
//
//	stencil/     coefficient tables for the second derivative, orders 1..7,
//	             plus the boundary-correction stencils
//	grid/        uniform grid and potential sampling
//	potential/   closed-form potentials and an expression compiler ("0.5*x^2")
//	matrix/      dense row-major storage, validators, Jacobi eigen kernel
//	eigen/       eigensolver boundary: gonum (default) and Jacobi
//	hamiltonian/ operator assembly and reduction to an ascending spectrum
//	romberg/     Richardson extrapolation, Romberg table, diagonal selection
//	spectrum/    presets, overrides, TOML run files, multi-level driver
//
// Quick start:
//
//	res, err := spectrum.EnergySpectrum(-10, 10, potential.Harmonic(1), 1,
//		spectrum.Fast, spectrum.Overrides{})
//	// res.Energies ≈ 0.5, 1.5, 2.5, ...
//
// Memory is the binding resource: every level allocates a dense n×n operator,
// so the 2048-point Accurate preset needs 32 MiB per solve.
//
//	go get github.com/katalvlaran/fdspectrum
package fdspectrum
