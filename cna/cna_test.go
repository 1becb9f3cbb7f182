package cna_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/lvlath-contrib/cna/cna"
	"github.com/lvlath-contrib/cna/config"
	"github.com/lvlath-contrib/cna/patternlib"
	"github.com/lvlath-contrib/cna/state"
)

func TestFingerprintFromAdjacencyGroupsAndOrders(t *testing.T) {
	// Two neighbors whose triplets compute to the same string, (1,0,0), and
	// one isolated neighbor with a distinct triplet, (0,0,0); the group of
	// two is counted once and emitted first in descending string order.
	adj := [][]bool{
		{false, true, false},
		{true, false, false},
		{false, false, false},
	}
	fp := cna.FingerprintFromAdjacency(adj)
	require.Equal(t, "2(1,0,0)1(0,0,0)", fp)
}

func TestFingerprintEmptyAdjacency(t *testing.T) {
	require.Equal(t, "", cna.FingerprintFromAdjacency(nil))
}

func TestAnalyzeProducesOneFingerprintPerAtom(t *testing.T) {
	cfg := &config.AtomicConfiguration{
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
	st, err := state.Build(cfg)
	require.NoError(t, err)

	engine := cna.NewEngine()
	res, err := engine.Analyze(st)
	require.NoError(t, err)
	require.Len(t, res.Fingerprints, 7)
	require.Len(t, res.Adjacency, 7)
	require.Len(t, res.NeighborIDs, 7)
	for _, fp := range res.Fingerprints {
		require.NotEmpty(t, fp)
	}
}

func TestLabelFallsBackToUnknown(t *testing.T) {
	lib := patternlib.New()
	p := cna.Label(lib, "nonexistent-fingerprint")
	require.Equal(t, "unknown", p.Key)
}
