// SPDX-License-Identifier: MIT

package hamiltonian

import "github.com/katalvlaran/fdspectrum/eigen"

// DefaultNeighbors is the stencil order used when WithNeighbors is absent.
const DefaultNeighbors = 2

// Option configures Assemble and Solve.
type Option func(*options)

// options is the resolved configuration. Neighbor order is validated at
// assembly time, so option constructors never panic.
type options struct {
	neighbors  int
	correction bool
	solver     eigen.Solver
}

// WithNeighbors sets the stencil neighbor order k ∈ [1,7].
func WithNeighbors(k int) Option {
	return func(o *options) { o.neighbors = k }
}

// WithBoundaryCorrection rewrites the first and last k−1 rows with the
// asymmetric correction stencil. The result is no longer symmetric and Solve
// switches to the general eigensolver.
func WithBoundaryCorrection(enabled bool) Option {
	return func(o *options) { o.correction = enabled }
}

// WithSolver selects the eigensolver; nil keeps eigen.Default().
func WithSolver(s eigen.Solver) Option {
	return func(o *options) {
		if s != nil {
			o.solver = s
		}
	}
}

func gatherOptions(user ...Option) options {
	o := options{
		neighbors: DefaultNeighbors,
		solver:    eigen.Default(),
	}
	for _, set := range user {
		if set != nil {
			set(&o)
		}
	}

	return o
}
