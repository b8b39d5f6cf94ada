package commands

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/leapmigrate/internal/cli/config"
	"github.com/leapstack-labs/leapmigrate/internal/migration"
	"github.com/leapstack-labs/leapmigrate/internal/testutil"
)

func TestNewInitCommand(t *testing.T) {
	tests := []struct {
		name      string
		setupDir  func(t *testing.T, dir string)
		args      []string
		wantErr   bool
		wantFiles []string
	}{
		{
			name:      "init empty directory",
			wantFiles: []string{"leapmigrate.yaml", ".gitignore", "migrations", "migrations/.gitkeep"},
		},
		{
			name:    "init with example",
			args:    []string{"--example"},
			wantFiles: []string{
				"leapmigrate.yaml",
				"migrations/00001_create_customers.yaml",
				"migrations/00002_create_orders.yaml",
				"migrations/00003_widen_names.yaml",
			},
		},
		{
			name: "init existing config without force",
			setupDir: func(t *testing.T, dir string) {
				require.NoError(t, os.WriteFile(filepath.Join(dir, "leapmigrate.yaml"), []byte("existing"), 0o600))
			},
			wantErr: true,
		},
		{
			name: "init existing config with force",
			setupDir: func(t *testing.T, dir string) {
				require.NoError(t, os.WriteFile(filepath.Join(dir, "leapmigrate.yaml"), []byte("existing"), 0o600))
			},
			args:      []string{"--force"},
			wantFiles: []string{"leapmigrate.yaml", "migrations"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			if tt.setupDir != nil {
				tt.setupDir(t, dir)
			}

			cmd := NewInitCommand()
			buf := new(bytes.Buffer)
			cmd.SetOut(buf)
			cmd.SetErr(buf)
			cmd.SetArgs(append([]string{dir}, tt.args...))

			err := cmd.Execute()
			if tt.wantErr {
				require.Error(t, err)
				assert.Contains(t, err.Error(), "already exists")
				return
			}
			require.NoError(t, err)
			assert.Contains(t, buf.String(), "LeapMigrate project initialized!")

			for _, f := range tt.wantFiles {
				_, err := os.Stat(filepath.Join(dir, f))
				assert.NoError(t, err, "expected %q to exist", f)
			}
		})
	}
}

func TestInitCommandMetadata(t *testing.T) {
	cmd := NewInitCommand()

	assert.Equal(t, "init [directory]", cmd.Use)
	assert.NotEmpty(t, cmd.Short)
	assert.NotNil(t, cmd.Flags().Lookup("force"))
	assert.NotNil(t, cmd.Flags().Lookup("example"))
}

func TestInitCreatesLoadableProject(t *testing.T) {
	dir := t.TempDir()

	cmd := NewInitCommand()
	cmd.SetOut(new(bytes.Buffer))
	cmd.SetErr(new(bytes.Buffer))
	cmd.SetArgs([]string{dir, "--example"})
	require.NoError(t, cmd.Execute())

	loader := config.NewLoader()
	loader.WorkDir = dir
	cfg, err := loader.Load("", "app", nil)
	require.NoError(t, err)
	assert.Equal(t, "sqlite", cfg.Dialect)
	assert.Equal(t, filepath.Join(dir, "migrations"), cfg.MigrationsDir)
	assert.Equal(t, filepath.Join(dir, "build", "sqlite"), cfg.OutDir)

	docs, err := migration.NewLoader(testutil.NewTestLogger(t)).LoadPaths([]string{cfg.MigrationsDir})
	require.NoError(t, err)
	require.Len(t, docs, 3)
	assert.NoError(t, migration.ValidateAll(docs))
}

func TestTemplateFilesRestoreDotfiles(t *testing.T) {
	files, err := templateFiles("minimal")
	require.NoError(t, err)

	var rels []string
	for _, f := range files {
		rels = append(rels, f.rel)
	}
	assert.ElementsMatch(t, []string{".gitignore", "leapmigrate.yaml", "migrations/.gitkeep"}, rels)

	cfg, migrations := groupTemplateFiles(rels)
	assert.ElementsMatch(t, []string{".gitignore", "leapmigrate.yaml"}, cfg)
	assert.Empty(t, migrations)
}

func TestInitKeepsExistingMigrations(t *testing.T) {
	dir := t.TempDir()
	existing := filepath.Join(dir, "migrations", "00001_create_customers.yaml")
	require.NoError(t, os.MkdirAll(filepath.Dir(existing), 0o750))
	require.NoError(t, os.WriteFile(existing, []byte("version: 1\n"), 0o600))

	written, err := copyTemplate("example", dir, false)
	require.NoError(t, err)
	assert.NotContains(t, written, "migrations/00001_create_customers.yaml")

	data, err := os.ReadFile(existing)
	require.NoError(t, err)
	assert.Equal(t, "version: 1\n", string(data))
}
