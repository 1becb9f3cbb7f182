package densemat_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/lvlath-contrib/cna/densemat"
)

func TestNewSquareRejectsNonPositive(t *testing.T) {
	_, err := densemat.NewSquare(0)
	require.ErrorIs(t, err, densemat.ErrInvalidDimensions)
}

func TestSetSymmetricFillsBothSides(t *testing.T) {
	m, err := densemat.NewSquare(3)
	require.NoError(t, err)
	m.SetSymmetric(0, 2, 4.5)
	require.Equal(t, 4.5, m.At(0, 2))
	require.Equal(t, 4.5, m.At(2, 0))
	require.True(t, m.IsSymmetric(1e-9))
}

func TestSubmatrixExtractsInOrder(t *testing.T) {
	m, err := densemat.NewSquare(4)
	require.NoError(t, err)
	for i := 0; i < 4; i++ {
		for j := 0; j < 4; j++ {
			m.Set(i, j, float64(i*10+j))
		}
	}
	sub, err := m.Submatrix([]int{3, 1})
	require.NoError(t, err)
	require.Equal(t, 2, sub.Rows())
	require.Equal(t, 33.0, sub.At(0, 0))
	require.Equal(t, 31.0, sub.At(0, 1))
	require.Equal(t, 13.0, sub.At(1, 0))
	require.Equal(t, 11.0, sub.At(1, 1))
}

func TestPadSquareZeroFillsNewCells(t *testing.T) {
	m, err := densemat.New(2, 2)
	require.NoError(t, err)
	m.Set(0, 0, 1)
	m.Set(1, 1, 2)

	padded, err := m.PadSquare(4)
	require.NoError(t, err)
	require.Equal(t, 1.0, padded.At(0, 0))
	require.Equal(t, 2.0, padded.At(1, 1))
	require.Equal(t, 0.0, padded.At(3, 3))
}

func TestAtPanicsOutOfBounds(t *testing.T) {
	m, err := densemat.NewSquare(2)
	require.NoError(t, err)
	require.Panics(t, func() { m.At(2, 0) })
}
