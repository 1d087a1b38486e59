package matrix_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/graphcore/matrix"
)

func buildDistances(t *testing.T, n int, edges map[[2]int]float64) *matrix.Dense {
	t.Helper()
	d, err := matrix.NewDense(n, n)
	require.NoError(t, err)
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			if i == j {
				require.NoError(t, d.Set(i, j, 0))
				continue
			}
			require.NoError(t, d.Set(i, j, math.Inf(1)))
		}
	}
	for rc, w := range edges {
		require.NoError(t, d.Set(rc[0], rc[1], w))
	}
	return d
}

func TestFloydWarshallShortensThroughIntermediate(t *testing.T) {
	// 0 -> 1 costs 5 directly, but 0 -> 2 -> 1 costs 1 + 1 = 2.
	d := buildDistances(t, 3, map[[2]int]float64{
		{0, 1}: 5,
		{0, 2}: 1,
		{2, 1}: 1,
	})

	require.NoError(t, matrix.FloydWarshall(d))

	v, err := d.At(0, 1)
	require.NoError(t, err)
	require.Equal(t, 2.0, v)
}

func TestFloydWarshallUnreachableStaysInf(t *testing.T) {
	d := buildDistances(t, 2, nil)

	require.NoError(t, matrix.FloydWarshall(d))

	v, err := d.At(0, 1)
	require.NoError(t, err)
	require.True(t, math.IsInf(v, 1))
}

func TestFloydWarshallRejectsNonSquare(t *testing.T) {
	d, err := matrix.NewDense(2, 3)
	require.NoError(t, err)

	err = matrix.FloydWarshall(d)
	require.ErrorIs(t, err, matrix.ErrNonSquare)
}

func TestFloydWarshallRejectsNil(t *testing.T) {
	err := matrix.FloydWarshall(nil)
	require.ErrorIs(t, err, matrix.ErrNilMatrix)
}
