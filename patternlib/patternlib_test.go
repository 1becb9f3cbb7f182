package patternlib_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/lvlath-contrib/cna/pattern"
	"github.com/lvlath-contrib/cna/patternlib"
)

func TestNewHasMandatoryUnknownEntry(t *testing.T) {
	lib := patternlib.New()
	p, ok := lib.ByKey(pattern.UnknownKey)
	require.True(t, ok)
	require.Equal(t, pattern.UnknownKey, p.Key)
	require.Equal(t, p, lib.Unknown())
}

func TestStoreThenLoadRoundTrips(t *testing.T) {
	lib := patternlib.New()
	require.NoError(t, lib.Add("fcc12", "FCC bulk", "4(4,2,1)4(4,2,1)4(4,2,1)", "FF0000"))

	path := filepath.Join(t.TempDir(), "patterns.json")
	require.NoError(t, lib.Store(path))

	reloaded, err := patternlib.Load(path)
	require.NoError(t, err)

	p, ok := reloaded.ByKey("fcc12")
	require.True(t, ok)
	require.Equal(t, "FCC bulk", p.Label)
	require.Equal(t, "FF0000", p.Color)

	byFp, ok := reloaded.Lookup("4(4,2,1)4(4,2,1)4(4,2,1)")
	require.True(t, ok)
	require.Equal(t, "fcc12", byFp.Key)
}

func TestAddRejectsInvalidFields(t *testing.T) {
	lib := patternlib.New()
	require.Error(t, lib.Add("bad key", "x", "", ""))
	require.Error(t, lib.Add("ok", "x", "not-a-fingerprint", ""))
	require.Error(t, lib.Add("ok", "x", "", "zzzzzz"))
}

func TestAddRejectsDuplicateKey(t *testing.T) {
	lib := patternlib.New()
	require.NoError(t, lib.Add("k1", "one", "", ""))
	require.Error(t, lib.Add("k1", "two", "", ""))
}

func TestRemoveRejectsUnknownKey(t *testing.T) {
	lib := patternlib.New()
	require.Error(t, lib.Remove(pattern.UnknownKey))
}

func TestEditMissingKeyFails(t *testing.T) {
	lib := patternlib.New()
	require.Error(t, lib.Edit("nope", "x", "", ""))
}

func TestLoadRejectsLibraryMissingUnknown(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"patterns":{"a":{"label":"A","fingerprint":"","color":""}}}`), 0o644))

	_, err := patternlib.Load(path)
	require.Error(t, err)
}
