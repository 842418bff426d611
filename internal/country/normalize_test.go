package country

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalize(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		raw  string
		want string
	}{
		{"usa", "USA", "United States"},
		{"us", "US", "United States"},
		{"united states", "united states", "United States"},
		{"full form", "United States of America", "United States"},
		{"uae", "uae", "UAE"},
		{"uk", "UK", "United Kingdom"},
		{"england", "England", "United Kingdom"},
		{"padded", "  usa  ", "United States"},
		{"substring in free text", "based in the USA mostly", "United States"},
		{"alias contains input", "united stat", "United States"},
		{"australia not swallowed by us", "Australia", "Australia"},
		{"unknown title-cased", "outer mongolia", "Outer Mongolia"},
		{"empty", "", ""},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, Normalize(tt.raw))
		})
	}
}

func TestNormalizeEquivalences(t *testing.T) {
	t.Parallel()

	// The alias table must collapse common spellings to one canonical name.
	assert.Equal(t, Normalize("USA"), Normalize("united states"))
	assert.Equal(t, Normalize("USA"), Normalize("US"))
	assert.Equal(t, "United States", Normalize("USA"))
}

func TestSame(t *testing.T) {
	t.Parallel()

	assert.True(t, Same("USA", "United States"))
	assert.True(t, Same("usa", "USA"))
	assert.True(t, Same("Springfield", "springfield"))
	assert.False(t, Same("USA", "Canada"))
}

func TestLoadAliases(t *testing.T) {
	// Mutates the package alias table; not parallel.
	path := filepath.Join(t.TempDir(), "aliases.yaml")
	require.NoError(t, os.WriteFile(path, []byte("aliases:\n  \"brasil\": Brazil\n  \"  \": Nowhere\n"), 0o644))

	n, err := LoadAliases(path)
	require.NoError(t, err)
	assert.Equal(t, 2, n)
	assert.Equal(t, "Brazil", Normalize("Brasil"))

	t.Run("missing file", func(t *testing.T) {
		_, err := LoadAliases(filepath.Join(t.TempDir(), "nope.yaml"))
		assert.Error(t, err)
	})

	t.Run("malformed yaml", func(t *testing.T) {
		bad := filepath.Join(t.TempDir(), "bad.yaml")
		require.NoError(t, os.WriteFile(bad, []byte("aliases: [not a map"), 0o644))
		_, err := LoadAliases(bad)
		assert.Error(t, err)
	})
}
