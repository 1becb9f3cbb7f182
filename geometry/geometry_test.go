package geometry_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/lvlath-contrib/cna/geometry"
)

func writeTemp(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	return path
}

func TestReadXYZ(t *testing.T) {
	path := writeTemp(t, "cluster.xyz", "2\ncomment\nCu 0.0 0.0 0.0\nCu 2.5 0.0 0.0\n")
	cfg, err := geometry.ReadXYZ(path)
	require.NoError(t, err)
	require.Len(t, cfg.Atoms, 2)
	require.Equal(t, "Cu", cfg.Atoms[0].Element)
	require.Equal(t, 2.5, cfg.Atoms[1].Position[0])
	require.False(t, cfg.Periodic)
}

func TestReadFileDispatchesByExtension(t *testing.T) {
	path := writeTemp(t, "cluster.xyz", "1\ncomment\nFe 0 0 0\n")
	cfg, err := geometry.ReadFile(path)
	require.NoError(t, err)
	require.Len(t, cfg.Atoms, 1)
}

func TestReadFileRejectsUnknownExtension(t *testing.T) {
	path := writeTemp(t, "cluster.unknown", "garbage")
	_, err := geometry.ReadFile(path)
	require.Error(t, err)
}

func TestReadPOSCARDirectCoordinates(t *testing.T) {
	content := `Test system
1.0
4.0 0.0 0.0
0.0 4.0 0.0
0.0 0.0 4.0
Cu O
1 1
Direct
0.0 0.0 0.0
0.5 0.5 0.5
`
	path := writeTemp(t, "POSCAR", content)
	cfg, err := geometry.ReadPOSCAR(path)
	require.NoError(t, err)
	require.True(t, cfg.Periodic)
	require.Len(t, cfg.Atoms, 2)
	require.Equal(t, "Cu", cfg.Atoms[0].Element)
	require.Equal(t, "O", cfg.Atoms[1].Element)
	require.InDelta(t, 2.0, cfg.Atoms[1].Position[0], 1e-9)
}

func TestReadPOSCARRejectsVASP4(t *testing.T) {
	content := `Test system
1.0
4.0 0.0 0.0
0.0 4.0 0.0
0.0 0.0 4.0
1 1
Direct
0.0 0.0 0.0
0.5 0.5 0.5
`
	path := writeTemp(t, "POSCAR", content)
	_, err := geometry.ReadPOSCAR(path)
	require.Error(t, err)
}
