// SPDX-License-Identifier: MIT

package grid

import (
	"errors"
	"fmt"
	"math"

	"github.com/katalvlaran/fdspectrum/potential"
)

// ErrInvalidDomain is returned for a degenerate domain or point count.
var ErrInvalidDomain = errors.New("grid: invalid domain")

// MinPoints is the smallest grid Build accepts.
const MinPoints = 2

// Grid is a uniform sampling of [XMin, XMax] with the potential evaluated on
// every point. X[0] == XMin and X[N−1] == XMax.
type Grid struct {
	XMin, XMax float64
	N          int
	H          float64
	X          []float64
	V          []float64
}

// Build samples v on n uniformly spaced points over [xmin, xmax].
//
// v is evaluated exactly once per point, in increasing index order.
// Errors: ErrInvalidDomain when xmax ≤ xmin, a bound is not finite, n < 2 or
// v is nil.
func Build(xmin, xmax float64, n int, v potential.Func) (*Grid, error) {
	if math.IsNaN(xmin) || math.IsNaN(xmax) || math.IsInf(xmin, 0) || math.IsInf(xmax, 0) {
		return nil, fmt.Errorf("bounds [%g,%g] not finite: %w", xmin, xmax, ErrInvalidDomain)
	}
	if xmax <= xmin {
		return nil, fmt.Errorf("xmax %g <= xmin %g: %w", xmax, xmin, ErrInvalidDomain)
	}
	if n < MinPoints {
		return nil, fmt.Errorf("n=%d < %d: %w", n, MinPoints, ErrInvalidDomain)
	}
	if v == nil {
		return nil, fmt.Errorf("nil potential: %w", ErrInvalidDomain)
	}

	g := &Grid{
		XMin: xmin,
		XMax: xmax,
		N:    n,
		H:    (xmax - xmin) / float64(n-1),
		X:    make([]float64, n),
		V:    make([]float64, n),
	}
	for i := 0; i < n-1; i++ {
		g.X[i] = xmin + float64(i)*g.H
	}
	g.X[n-1] = xmax // exact right edge, no rounding drift
	for i, x := range g.X {
		g.V[i] = v(x)
	}

	return g, nil
}

// Validate checks the grid is wide enough for a stencil of neighbor order k,
// i.e. N ≥ 2k+1.
func (g *Grid) Validate(order int) error {
	if g == nil {
		return fmt.Errorf("nil grid: %w", ErrInvalidDomain)
	}
	if need := 2*order + 1; g.N < need {
		return fmt.Errorf("n=%d < %d required by order %d: %w", g.N, need, order, ErrInvalidDomain)
	}

	return nil
}
