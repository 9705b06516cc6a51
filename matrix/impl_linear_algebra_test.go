// Package matrix_test contains unit tests for the linear algebra kernels.
package matrix_test

import (
	"math"
	"sort"
	"testing"

	"github.com/katalvlaran/fdspectrum/matrix"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSubAndTranspose_FallbackMatchesFastPath(t *testing.T) {
	a := mustDense(t, 2, 3, 1, 2, 3, 4, 5, 6)
	b := mustDense(t, 2, 3, 6, 5, 4, 3, 2, 1)

	fast, err := matrix.Sub(a, b)
	require.NoError(t, err)
	slow, err := matrix.Sub(hide{a}, b)
	require.NoError(t, err)
	assert.Equal(t, fast.(*matrix.Dense).RawData(), slow.(*matrix.Dense).RawData())
	assert.Equal(t, []float64{-5, -3, -1, 1, 3, 5}, fast.(*matrix.Dense).RawData())

	tr, err := matrix.Transpose(a)
	require.NoError(t, err)
	trSlow, err := matrix.Transpose(hide{a})
	require.NoError(t, err)
	assert.Equal(t, 3, tr.Rows())
	assert.Equal(t, []float64{1, 4, 2, 5, 3, 6}, tr.(*matrix.Dense).RawData())
	assert.Equal(t, tr.(*matrix.Dense).RawData(), trSlow.(*matrix.Dense).RawData())
}

func TestSub_Errors(t *testing.T) {
	a := mustDense(t, 2, 2)
	b := mustDense(t, 2, 3)
	_, err := matrix.Sub(a, b)
	require.ErrorIs(t, err, matrix.ErrDimensionMismatch)
	_, err = matrix.Sub(nil, b)
	require.ErrorIs(t, err, matrix.ErrNilMatrix)
	var nilDense *matrix.Dense
	_, err = matrix.Transpose(nilDense)
	require.ErrorIs(t, err, matrix.ErrNilMatrix)
}

func TestMatVec(t *testing.T) {
	a := mustDense(t, 2, 3, 1, 2, 3, 4, 5, 6)
	y, err := matrix.MatVec(a, []float64{1, 0, -1})
	require.NoError(t, err)
	assert.Equal(t, []float64{-2, -2}, y)

	y2, err := matrix.MatVec(hide{a}, []float64{1, 0, -1})
	require.NoError(t, err)
	assert.Equal(t, y, y2)

	_, err = matrix.MatVec(a, []float64{1, 2})
	require.ErrorIs(t, err, matrix.ErrDimensionMismatch)
	_, err = matrix.MatVec(a, nil)
	require.ErrorIs(t, err, matrix.ErrNilMatrix)
}

func TestValidators(t *testing.T) {
	sym := mustDense(t, 2, 2, 1, 2, 2, 1)
	asym := mustDense(t, 2, 2, 1, 2, 2.5, 1)

	require.NoError(t, matrix.ValidateSymmetric(sym, 0))
	require.ErrorIs(t, matrix.ValidateSymmetric(asym, 0.1), matrix.ErrAsymmetry)
	require.NoError(t, matrix.ValidateSymmetric(hide{asym}, 0.5))
	require.ErrorIs(t, matrix.ValidateSymmetric(sym, math.NaN()), matrix.ErrNaNInf)
	require.ErrorIs(t, matrix.ValidateSquare(mustDense(t, 2, 3)), matrix.ErrDimensionMismatch)

	d, err := matrix.MaxAsymmetry(asym)
	require.NoError(t, err)
	assert.InDelta(t, 0.5, d, 1e-15)

	// Transpose and Sub run on the At fallback for foreign implementations.
	d, err = matrix.MaxAsymmetry(hide{mustDense(t, 3, 3, 1, 2, 3, 2, 1, -4, 3, 4, 1)})
	require.NoError(t, err)
	assert.InDelta(t, 8, d, 1e-15)

	_, err = matrix.MaxAsymmetry(mustDense(t, 2, 3))
	require.ErrorIs(t, err, matrix.ErrDimensionMismatch)
}

// tridiagonal returns the n×n matrix with 2 on the diagonal and -1 beside it.
// Its eigenvalues are 2 − 2cos(kπ/(n+1)), k = 1..n.
func tridiagonal(t testing.TB, n int) *matrix.Dense {
	t.Helper()
	m := mustDense(t, n, n)
	for i := 0; i < n; i++ {
		require.NoError(t, m.Set(i, i, 2))
		if i > 0 {
			require.NoError(t, m.Set(i, i-1, -1))
			require.NoError(t, m.Set(i-1, i, -1))
		}
	}

	return m
}

func TestEigen_Tridiagonal(t *testing.T) {
	const n = 12
	m := tridiagonal(t, n)

	vals, q, err := matrix.Eigen(m, matrix.WithEpsilon(1e-12))
	require.NoError(t, err)
	require.Len(t, vals, n)

	sorted := append([]float64(nil), vals...)
	sort.Float64s(sorted)
	for k := 1; k <= n; k++ {
		want := 2 - 2*math.Cos(float64(k)*math.Pi/float64(n+1))
		assert.InDelta(t, want, sorted[k-1], 1e-10, "k=%d", k)
	}

	// A·q_j = λ_j·q_j for every column.
	for j := 0; j < n; j++ {
		col := make([]float64, n)
		for i := 0; i < n; i++ {
			col[i], _ = q.At(i, j)
		}
		aq, err := matrix.MatVec(m, col)
		require.NoError(t, err)
		for i := range aq {
			assert.InDelta(t, vals[j]*col[i], aq[i], 1e-9)
		}
	}
}

func TestEigen_ScaledOperatorConverges(t *testing.T) {
	m := tridiagonal(t, 8)
	for i, v := range m.RawData() {
		m.RawData()[i] = v * 1e6
	}
	vals, _, err := matrix.Eigen(m)
	require.NoError(t, err)
	sort.Float64s(vals)
	assert.InEpsilon(t, 1e6*(2-2*math.Cos(math.Pi/9)), vals[0], 1e-9)
}

func TestEigen_Errors(t *testing.T) {
	_, _, err := matrix.Eigen(mustDense(t, 2, 2, 1, 2, 3, 4))
	require.ErrorIs(t, err, matrix.ErrAsymmetry)

	_, _, err = matrix.Eigen(mustDense(t, 2, 3))
	require.ErrorIs(t, err, matrix.ErrDimensionMismatch)

	_, _, err = matrix.Eigen(nil)
	require.ErrorIs(t, err, matrix.ErrNilMatrix)

	_, _, err = matrix.Eigen(tridiagonal(t, 10), matrix.WithMaxSweeps(1), matrix.WithEpsilon(0))
	require.ErrorIs(t, err, matrix.ErrMatrixEigenFailed)
}
