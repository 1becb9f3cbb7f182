package state_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/lvlath-contrib/cna/config"
	"github.com/lvlath-contrib/cna/errs"
	"github.com/lvlath-contrib/cna/runconfig"
	"github.com/lvlath-contrib/cna/state"
)

func twoAtomConfig() *config.AtomicConfiguration {
	return &config.AtomicConfiguration{
		Atoms: []config.Atom{
			{Element: "Cu", Position: config.Vec3{0, 0, 0}},
			{Element: "Cu", Position: config.Vec3{3, 0, 0}},
		},
		Periodic: false,
	}
}

func TestBuildNonPeriodicDistance(t *testing.T) {
	st, err := state.Build(twoAtomConfig())
	require.NoError(t, err)
	require.Equal(t, 2, st.NrAtoms())
	require.Equal(t, 2, st.DistanceDim())
	require.InDelta(t, 3.0, st.Distance(0, 1), 1e-9)
	require.InDelta(t, 3.0, st.Distance(1, 0), 1e-9)
	require.InDelta(t, 0.0, st.Distance(0, 0), 1e-9)
}

func TestBuildPeriodicExpandsSupercell(t *testing.T) {
	cfg := &config.AtomicConfiguration{
		Cell: config.Cell{{4, 0, 0}, {0, 4, 0}, {0, 0, 4}},
		Atoms: []config.Atom{
			{Element: "Cu", Position: config.Vec3{0, 0, 0}},
		},
		Periodic: true,
	}
	st, err := state.Build(cfg)
	require.NoError(t, err)
	require.Equal(t, 1, st.NrAtoms())
	require.Equal(t, 27, st.NrAtomsSupercell())
	require.Equal(t, 27, st.DistanceDim())
	require.True(t, st.IsPeriodic())
}

func TestBuildRejectsInvalidConfig(t *testing.T) {
	_, err := state.Build(&config.AtomicConfiguration{})
	require.Error(t, err)
	require.Equal(t, errs.InvalidInput, errs.KindOf(err))
}

func TestBuildEnforcesMemoryCeiling(t *testing.T) {
	_, err := state.Build(twoAtomConfig(), runconfig.WithMemoryCeilingBytes(1))
	require.Error(t, err)
	require.Equal(t, errs.ResourceExhausted, errs.KindOf(err))
}

func TestBuildNilConfig(t *testing.T) {
	_, err := state.Build(nil)
	require.Error(t, err)
	require.Equal(t, errs.InvalidState, errs.KindOf(err))
}
