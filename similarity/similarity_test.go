package similarity_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/lvlath-contrib/cna/config"
	"github.com/lvlath-contrib/cna/runconfig"
	"github.com/lvlath-contrib/cna/similarity"
	"github.com/lvlath-contrib/cna/state"
)

func symmetricCluster() *config.AtomicConfiguration {
	return &config.AtomicConfiguration{
		Atoms: []config.Atom{
			{Element: "Pt", Position: config.Vec3{0, 0, 0}},
			{Element: "Pt", Position: config.Vec3{2, 0, 0}},
			{Element: "Pt", Position: config.Vec3{-2, 0, 0}},
			{Element: "Pt", Position: config.Vec3{0, 2, 0}},
			{Element: "Pt", Position: config.Vec3{0, -2, 0}},
			{Element: "Pt", Position: config.Vec3{0, 0, 2}},
			{Element: "Pt", Position: config.Vec3{0, 0, -2}},
			{Element: "Pt", Position: config.Vec3{10, 10, 10}},
		},
	}
}

// TestSingleThreadedAndMultiThreadedAgree checks that a one-worker run and
// a four-worker run over the same State produce the same distance for
// every atom pair.
func TestSingleThreadedAndMultiThreadedAgree(t *testing.T) {
	cfg := symmetricCluster()
	st, err := state.Build(cfg)
	require.NoError(t, err)

	single := similarity.NewEngine(runconfig.WithWorkers(1))
	resSingle, err := single.Analyze(context.Background(), st, nil)
	require.NoError(t, err)

	multi := similarity.NewEngine(runconfig.WithWorkers(4))
	resMulti, err := multi.Analyze(context.Background(), st, nil)
	require.NoError(t, err)

	n := st.NrAtoms()
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			require.InDelta(t, resSingle.Distance.At(i, j), resMulti.Distance.At(i, j), 1e-9, "pair (%d,%d)", i, j)
		}
	}
}

func TestAnalyzeReportsProgress(t *testing.T) {
	cfg := symmetricCluster()
	st, err := state.Build(cfg)
	require.NoError(t, err)

	engine := similarity.NewEngine(runconfig.WithWorkers(2))
	var lastDone, lastTotal int
	_, err = engine.Analyze(context.Background(), st, func(done, total int) {
		lastDone, lastTotal = done, total
	})
	require.NoError(t, err)
	require.Equal(t, lastTotal, lastDone)

	n := st.NrAtoms()
	require.Equal(t, n*(n-1)/2, lastTotal)
}
