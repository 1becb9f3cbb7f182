package pattern_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/lvlath-contrib/cna/pattern"
)

func TestIsValidFingerprint(t *testing.T) {
	cases := []struct {
		in   string
		want bool
	}{
		{"", true},
		{"1(4,2,1)", true},
		{"2(4,2,1)1(2,1,1)", true},
		{"0(4,2,1)", false},
		{"(4,2,1)", false},
		{"1(4,2,1", false},
		{"abc", false},
	}
	for _, c := range cases {
		require.Equal(t, c.want, pattern.IsValidFingerprint(c.in), "input %q", c.in)
	}
}

func TestIsValidKey(t *testing.T) {
	require.True(t, pattern.IsValidKey("fcc-12"))
	require.True(t, pattern.IsValidKey("hcp_1"))
	require.False(t, pattern.IsValidKey("has space"))
	require.False(t, pattern.IsValidKey(""))
}

func TestIsValidColor(t *testing.T) {
	require.True(t, pattern.IsValidColor("AABBCC"))
	require.True(t, pattern.IsValidColor("00ff00"))
	require.False(t, pattern.IsValidColor("#ABCDEF"))
	require.False(t, pattern.IsValidColor("ABC"))
}
