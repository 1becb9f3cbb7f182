package environs_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/lvlath-contrib/cna/config"
	"github.com/lvlath-contrib/cna/environs"
	"github.com/lvlath-contrib/cna/state"
)

// sevenAtomCluster places a center atom and six atoms at 2.0 Å along each
// axis direction, so the center's 6-nearest-neighbor average is exactly
// 2.0 and its cutoff is 2.0·(1+√2)/2 ≈ 2.41. Every arm is within that
// cutoff of the center; no two arms are, since they are 2·√2 ≈ 2.83
// (perpendicular arms) or 4.0 (opposite arms) apart.
func sevenAtomCluster() *config.AtomicConfiguration {
	return &config.AtomicConfiguration{
		Atoms: []config.Atom{
			{Element: "Pt", Position: config.Vec3{0, 0, 0}},
			{Element: "Pt", Position: config.Vec3{2, 0, 0}},
			{Element: "Pt", Position: config.Vec3{-2, 0, 0}},
			{Element: "Pt", Position: config.Vec3{0, 2, 0}},
			{Element: "Pt", Position: config.Vec3{0, -2, 0}},
			{Element: "Pt", Position: config.Vec3{0, 0, 2}},
			{Element: "Pt", Position: config.Vec3{0, 0, -2}},
		},
	}
}

func TestCutoffAveragesSixNearest(t *testing.T) {
	st, err := state.Build(sevenAtomCluster())
	require.NoError(t, err)

	cutoff := environs.Cutoff(st, 0)
	require.InDelta(t, 2.0*(1.0+1.4142135623730951)/2.0, cutoff, 1e-9)
}

func TestBuildFindsAllSixArmsAsNeighbors(t *testing.T) {
	st, err := state.Build(sevenAtomCluster())
	require.NoError(t, err)

	local := environs.Build(st, 0)
	require.Len(t, local.NeighborIDs, 6)
	require.NotNil(t, local.Distances)
	require.Equal(t, 6, local.Distances.Rows())
}

func TestBuildZeroNeighborsYieldsNilDistances(t *testing.T) {
	// A single isolated atom has no other positions to compare against,
	// so its cutoff degenerates to 0 and it finds no neighbors.
	cfg := &config.AtomicConfiguration{
		Atoms: []config.Atom{
			{Element: "Pt", Position: config.Vec3{0, 0, 0}},
		},
	}
	st, err := state.Build(cfg)
	require.NoError(t, err)

	local := environs.Build(st, 0)
	require.Empty(t, local.NeighborIDs)
	require.Nil(t, local.Distances)
	require.Empty(t, local.Adjacency)
}
