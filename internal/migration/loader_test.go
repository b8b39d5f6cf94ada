package migration

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/leapstack-labs/leapmigrate/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))
	return path
}

func TestIsMigrationFile(t *testing.T) {
	tests := []struct {
		path string
		want bool
	}{
		{"001_init.yaml", true},
		{"001_init.YML", true},
		{"README.md", false},
		{"001_init.sql", false},
		{"yaml", false},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			assert.Equal(t, tt.want, IsMigrationFile(tt.path))
		})
	}
}

func TestLoadPaths(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "002_b.yaml", "version: 2\nup:\n  - create_schema: {name: b}\n")
	writeFile(t, dir, "001_a.yml", "version: 1\nup:\n  - create_schema: {name: a}\n")
	writeFile(t, dir, "notes.txt", "not a migration")
	require.NoError(t, os.Mkdir(filepath.Join(dir, "nested"), 0750))
	writeFile(t, filepath.Join(dir, "nested"), "003_c.yaml", "version: 3\nup: []\n")

	extra := writeFile(t, t.TempDir(), "010_x.yaml", "version: 10\nup: []\n")

	docs, err := NewLoader(testutil.NewTestLogger(t)).LoadPaths([]string{extra, dir})
	require.NoError(t, err)

	versions := make([]int64, len(docs))
	for i, d := range docs {
		versions[i] = d.Version
	}
	assert.Equal(t, []int64{1, 2, 10}, versions)
	assert.Equal(t, filepath.Join(dir, "001_a.yml"), docs[0].File)
}

func TestLoadPathsReportsEveryBrokenFile(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "001_a.yaml", "version: 1\n")
	writeFile(t, dir, "002_b.yaml", "version: x\nup: []\n")
	writeFile(t, dir, "003_c.yaml", "version: 3\nup: []\n")

	_, err := NewLoader(nil).LoadPaths([]string{dir})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "001_a.yaml:1: up is required")
	assert.Contains(t, err.Error(), `002_b.yaml:1: version must be an integer, got "x"`)

	var errs DecodeErrors
	assert.ErrorAs(t, err, &errs)
}

func TestLoadPathsDuplicateVersion(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "001_a.yaml", "version: 1\nup: []\n")
	writeFile(t, dir, "001_b.yaml", "version: 1\nup: []\n")

	_, err := NewLoader(nil).LoadPaths([]string{dir})
	var dup *DuplicateVersionError
	require.ErrorAs(t, err, &dup)
	assert.Equal(t, int64(1), dup.Version)
	assert.Len(t, dup.Files, 2)
}

func TestLoadPathsMissing(t *testing.T) {
	_, err := NewLoader(nil).LoadPaths([]string{filepath.Join(t.TempDir(), "nope")})
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
}
