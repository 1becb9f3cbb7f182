package metric_test

import (
	"context"
	"math"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/lvlath-contrib/cna/densemat"
	"github.com/lvlath-contrib/cna/metric"
)

func TestDistanceIdenticalMatricesIsZero(t *testing.T) {
	a, _ := densemat.NewSquare(3)
	a.SetSymmetric(0, 1, 1.0)
	a.SetSymmetric(0, 2, 2.0)
	a.SetSymmetric(1, 2, 3.0)
	b := a.Clone()

	res, err := metric.Distance(context.Background(), a, b, 4)
	require.NoError(t, err)
	require.InDelta(t, 0.0, res.Distance, 1e-9)
	require.False(t, res.Skipped)
}

// TestDistanceKnownPermutation builds b as a's rows/cols permuted by
// (1,0,2) and checks the search recovers zero distance regardless of
// worker count, since the true minimizing permutation exists in the
// search space.
func TestDistanceKnownPermutation(t *testing.T) {
	a, _ := densemat.NewSquare(3)
	a.Set(0, 1, 1.0)
	a.Set(1, 0, 1.0)
	a.Set(0, 2, 2.0)
	a.Set(2, 0, 2.0)
	a.Set(1, 2, 3.0)
	a.Set(2, 1, 3.0)

	perm := []int{1, 0, 2}
	b, _ := densemat.NewSquare(3)
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			b.Set(perm[i], perm[j], a.At(i, j))
		}
	}

	for _, workers := range []int{1, 4} {
		res, err := metric.Distance(context.Background(), a, b, workers)
		require.NoError(t, err)
		require.InDelta(t, 0.0, res.Distance, 1e-9, "workers=%d", workers)
	}
}

// TestAnalyticSquareRootKSquaredMinusK constructs two matrices that
// differ by exactly 1.0 at every off-diagonal entry, so the minimal
// Frobenius distance is sqrt(k*(k-1)) regardless of permutation.
func TestAnalyticSquareRootKSquaredMinusK(t *testing.T) {
	const k = 5
	a, _ := densemat.NewSquare(k)
	b, _ := densemat.NewSquare(k)
	for i := 0; i < k; i++ {
		for j := i + 1; j < k; j++ {
			a.SetSymmetric(i, j, 0.0)
			b.SetSymmetric(i, j, 1.0)
		}
	}

	res, err := metric.Distance(context.Background(), a, b, 2)
	require.NoError(t, err)
	require.InDelta(t, math.Sqrt(float64(k*k-k)), res.Distance, 1e-9)
}

func TestDistancePadsSmallerMatrix(t *testing.T) {
	a, _ := densemat.NewSquare(2)
	a.SetSymmetric(0, 1, 5.0)
	b, _ := densemat.NewSquare(3)
	b.SetSymmetric(0, 1, 5.0)

	res, err := metric.Distance(context.Background(), a, b, 1)
	require.NoError(t, err)
	require.InDelta(t, 0.0, res.Distance, 1e-9)
}

func TestDistanceSkipsOversizedPairs(t *testing.T) {
	a, _ := densemat.NewSquare(13)
	b, _ := densemat.NewSquare(13)

	res, err := metric.Distance(context.Background(), a, b, 1)
	require.NoError(t, err)
	require.True(t, res.Skipped)
	require.Equal(t, metric.Skipped, res.Distance)
}
