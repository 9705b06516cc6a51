package romberg_test

import (
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/katalvlaran/fdspectrum/romberg"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// sequence samples f at h0/r^k for k = 0..levels−1.
func sequence(levels int, h0, r float64, f func(h float64) float64) []float64 {
	out := make([]float64, levels)
	h := h0
	for k := range out {
		out[k] = f(h)
		h /= r
	}

	return out
}

func TestConvergenceExponent_RecoversOrder(t *testing.T) {
	for _, p := range []float64{1, 2, 4, 6} {
		a := sequence(3, 0.3, 1.5, func(h float64) float64 { return 7 + 2*math.Pow(h, p) })
		assert.InDelta(t, p, romberg.ConvergenceExponent(a[0], a[1], a[2], 1.5), 1e-9, "p=%g", p)
	}
	assert.True(t, math.IsNaN(romberg.ConvergenceExponent(1, 1, 1, 2)))
}

func TestRichardson_RecoversLimit(t *testing.T) {
	const L, C = 3.25, -1.7
	for _, tc := range []struct {
		r float64
		p int
	}{{2, 2}, {4. / 3, 2}, {1.25, 4}, {2, 1}} {
		a := sequence(5, 0.4, tc.r, func(h float64) float64 { return L + C*math.Pow(h, float64(tc.p)) })
		extr, _ := romberg.Richardson(a, tc.r, tc.p)
		assert.Zero(t, extr[0])
		for idx := 1; idx < len(a); idx++ {
			assert.InDelta(t, L, extr[idx], 1e-13, "r=%g p=%d idx=%d", tc.r, tc.p, idx)
		}
	}
}

func TestRichardson_ObservedExponent(t *testing.T) {
	// Removing h² leaves h⁴ as the leading term.
	a := sequence(6, 0.5, 2, func(h float64) float64 { return 1 + 0.3*h*h + 0.7*math.Pow(h, 4) })
	_, exps := romberg.Richardson(a, 2, 2)
	assert.Equal(t, []float64{0, 0, 0}, exps[:3])
	for idx := 3; idx < len(a); idx++ {
		assert.InDelta(t, 4, exps[idx], 1e-6, "idx=%d", idx)
	}
}

func TestIntegrate_FullTable(t *testing.T) {
	f := func(h float64) float64 { return 1 + h*h + math.Pow(h, 4) + math.Pow(h, 6) }
	values := sequence(4, 0.5, 2, f)

	res, err := romberg.Integrate(values, 2)
	require.NoError(t, err)
	assert.Equal(t, 3, res.Best)
	assert.InDelta(t, 1, res.Value, 1e-12)
	assert.Equal(t, -4.0, res.LogError)

	tab := res.Table
	require.NotNil(t, tab)
	assert.Equal(t, 2.0, tab.Factor)
	assert.Equal(t, tab.Extrapolants[3][3], tab.Reference)
	assert.Equal(t, values, tab.Extrapolants[0])

	// Every row is populated on and right of the diagonal.
	for i := 1; i < len(values); i++ {
		for j := i; j < len(values); j++ {
			assert.NotZero(t, tab.Extrapolants[i][j], "T[%d][%d]", i, j)
		}
		for j := 0; j < i; j++ {
			assert.Zero(t, tab.Extrapolants[i][j], "T[%d][%d]", i, j)
		}
	}
	assert.InDelta(t, 2, tab.ConvExponents[0][1], 0.5)
	assert.InDelta(t, 4, tab.ConvExponents[1][2], 0.5)
	assert.InDelta(t, 6, tab.ConvExponents[2][3], 1e-3)
	assert.Equal(t, -1.0, tab.RelativeErrors[0][0])
	assert.Equal(t, -24.0, tab.RelativeErrors[3][3])
}

func TestIntegrate_LeadingOrder(t *testing.T) {
	values := sequence(3, 0.5, 2, func(h float64) float64 { return 1 + h + h*h*h })

	res, err := romberg.Integrate(values, 2, romberg.WithLeadingOrder(1))
	require.NoError(t, err)
	assert.Equal(t, 2, res.Best)
	assert.InDelta(t, 1, res.Value, 1e-13)

	// Assuming h² leading error on an h¹ sequence leaves a visible bias.
	res, err = romberg.Integrate(values, 2)
	require.NoError(t, err)
	assert.Greater(t, math.Abs(res.Value-1), 0.05)
}

func TestIntegrate_WithExact(t *testing.T) {
	values := sequence(3, 0.5, 2, func(h float64) float64 { return 2 + 0.5*h*h })
	res, err := romberg.Integrate(values, 2, romberg.WithExact(2))
	require.NoError(t, err)
	assert.Equal(t, 2.0, res.Table.Reference)
	assert.InDelta(t, 2, res.Table.ConvExponents[0][1], 1e-9)
	assert.InDelta(t, 2, res.Table.ConvExponents[0][2], 1e-9)
	assert.InDelta(t, 2, res.Value, 1e-14)
}

func TestIntegrate_SingleLevel(t *testing.T) {
	res, err := romberg.Integrate([]float64{4.2}, 0)
	require.NoError(t, err)
	assert.Equal(t, 4.2, res.Value)
	assert.Equal(t, 0, res.Best)
	assert.True(t, math.IsNaN(res.LogError))
}

func TestIntegrate_DegenerateInputsStayFinite(t *testing.T) {
	for _, values := range [][]float64{{2, 2, 2}, {0, 0, 0}, {0, 1e-30, 0}} {
		res, err := romberg.Integrate(values, 2)
		require.NoError(t, err, "%v", values)
		assert.False(t, math.IsNaN(res.Value), "%v", values)
		assert.False(t, math.IsInf(res.LogError, 0), "%v", values)
		assert.GreaterOrEqual(t, res.LogError, math.Log10(romberg.Epsilon), "%v", values)
		for _, row := range res.Table.RelativeErrors {
			for _, e := range row {
				assert.False(t, math.IsInf(e, 0) || math.IsNaN(e), "%v", values)
			}
		}
	}

	res, err := romberg.Integrate([]float64{2, 2, 2}, 2)
	require.NoError(t, err)
	assert.Equal(t, 0, res.Best)
	assert.Equal(t, -24.0, res.LogError)
}

func TestIntegrate_Errors(t *testing.T) {
	_, err := romberg.Integrate(nil, 2)
	require.ErrorIs(t, err, romberg.ErrNoLevels)

	for _, r := range []float64{1, 0.5, 0, -2, math.NaN(), math.Inf(1)} {
		_, err = romberg.Integrate([]float64{1, 2}, r)
		assert.ErrorIs(t, err, romberg.ErrBadIncrementFactor, "r=%g", r)
	}

	assert.Panics(t, func() { romberg.WithLeadingOrder(0) })
	assert.Panics(t, func() { romberg.WithExact(math.NaN()) })
}

func TestIntegrateSpectrum(t *testing.T) {
	// Two eigenvalues with h² errors; levels carry extra trailing entries.
	lvl := func(h float64, extra int) []float64 {
		out := []float64{0.5 + 0.1*h*h, 1.5 + 0.4*h*h}
		for i := 0; i < extra; i++ {
			out = append(out, 100)
		}

		return out
	}
	levels := [][]float64{lvl(0.2, 3), lvl(0.1, 1), lvl(0.05, 2)}

	values, logErrs, err := romberg.IntegrateSpectrum(levels, 2)
	require.NoError(t, err)
	require.Len(t, values, 3)
	require.Len(t, logErrs, 3)
	if diff := cmp.Diff([]float64{0.5, 1.5}, values[:2], cmpopts.EquateApprox(0, 1e-12)); diff != "" {
		t.Fatalf("extrapolated spectrum (-want +got):\n%s", diff)
	}
	assert.Equal(t, 100.0, values[2])

	single, _, err := romberg.IntegrateSpectrum(levels[:1], 0)
	require.NoError(t, err)
	assert.Equal(t, levels[0], single)

	_, _, err = romberg.IntegrateSpectrum(nil, 2)
	require.ErrorIs(t, err, romberg.ErrNoLevels)
	_, _, err = romberg.IntegrateSpectrum(levels, 1)
	require.ErrorIs(t, err, romberg.ErrBadIncrementFactor)
}
