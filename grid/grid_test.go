package grid_test

import (
	"math"
	"testing"

	"github.com/katalvlaran/fdspectrum/grid"
	"github.com/katalvlaran/fdspectrum/potential"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuild_Uniform(t *testing.T) {
	g, err := grid.Build(-1, 1, 5, potential.Harmonic(1))
	require.NoError(t, err)

	assert.Equal(t, 5, g.N)
	assert.InDelta(t, 0.5, g.H, 1e-15)
	assert.InDeltaSlice(t, []float64{-1, -0.5, 0, 0.5, 1}, g.X, 1e-15)
	assert.InDeltaSlice(t, []float64{0.5, 0.125, 0, 0.125, 0.5}, g.V, 1e-15)
	assert.Equal(t, 1.0, g.X[g.N-1])
}

func TestBuild_EvaluatesOncePerPointInOrder(t *testing.T) {
	var seen []float64
	v := func(x float64) float64 {
		seen = append(seen, x)
		return 0
	}

	g, err := grid.Build(0, 1, 11, v)
	require.NoError(t, err)
	assert.Equal(t, g.X, seen)
}

func TestBuild_InvalidDomain(t *testing.T) {
	cases := []struct {
		name       string
		xmin, xmax float64
		n          int
		v          potential.Func
	}{
		{"reversed", 1, 0, 10, potential.Zero()},
		{"empty", 1, 1, 10, potential.Zero()},
		{"too_few_points", 0, 1, 1, potential.Zero()},
		{"nan_bound", math.NaN(), 1, 10, potential.Zero()},
		{"inf_bound", 0, math.Inf(1), 10, potential.Zero()},
		{"nil_potential", 0, 1, 10, nil},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := grid.Build(tc.xmin, tc.xmax, tc.n, tc.v)
			assert.ErrorIs(t, err, grid.ErrInvalidDomain)
		})
	}
}

func TestValidate(t *testing.T) {
	g, err := grid.Build(0, 1, 7, potential.Zero())
	require.NoError(t, err)

	assert.NoError(t, g.Validate(3))
	assert.ErrorIs(t, g.Validate(4), grid.ErrInvalidDomain)

	var nilGrid *grid.Grid
	assert.ErrorIs(t, nilGrid.Validate(1), grid.ErrInvalidDomain)
}
