package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfigFile(t *testing.T, dir, content string) string {
	t.Helper()
	path := filepath.Join(dir, "traveler.toml")
	require.NoError(t, os.WriteFile(path, []byte(content), DefaultFilePermissions))
	return path
}

func TestLoadFromFile(t *testing.T) {
	path := writeConfigFile(t, t.TempDir(), `
[database]
path = "/data/husky.rmtree"

[tree]
ancestry_depth = 6
`)

	cfg, err := LoadFromFile(path)
	require.NoError(t, err)

	assert.Equal(t, "/data/husky.rmtree", cfg.Database.Path)
	assert.Equal(t, 6, cfg.Tree.AncestryDepth)
	// Keys absent from the file keep their defaults.
	assert.Equal(t, 3, cfg.Tree.DescendancyDepth)
	assert.False(t, cfg.Log.JSON)
}

func TestLoadFromFileMissing(t *testing.T) {
	_, err := LoadFromFile(filepath.Join(t.TempDir(), "nope.toml"))
	require.Error(t, err)
}

func TestSaveAndReload(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "traveler.toml")
	cfg := &Config{
		Database: DatabaseConfig{Path: "a.rmtree"},
		Tree:     TreeConfig{AncestryDepth: 2, DescendancyDepth: 1},
	}
	require.NoError(t, Save(cfg, path))

	loaded, err := LoadFromFile(path)
	require.NoError(t, err)
	assert.Equal(t, "a.rmtree", loaded.Database.Path)
	assert.Equal(t, 2, loaded.Tree.AncestryDepth)
	assert.Equal(t, 1, loaded.Tree.DescendancyDepth)
}

func TestSaveRotatesBackup(t *testing.T) {
	path := filepath.Join(t.TempDir(), "traveler.toml")
	first := &Config{Database: DatabaseConfig{Path: "first.rmtree"}}
	second := &Config{Database: DatabaseConfig{Path: "second.rmtree"}}

	require.NoError(t, Save(first, path))
	require.NoError(t, Save(second, path))

	backup, err := LoadFromFile(path + ".back")
	require.NoError(t, err)
	assert.Equal(t, "first.rmtree", backup.Database.Path)

	current, err := LoadFromFile(path)
	require.NoError(t, err)
	assert.Equal(t, "second.rmtree", current.Database.Path)
}

func TestWriteDefault(t *testing.T) {
	t.Cleanup(Reset)
	path := filepath.Join(t.TempDir(), "traveler.toml")

	require.NoError(t, WriteDefault(path))
	cfg, err := LoadFromFile(path)
	require.NoError(t, err)
	assert.Equal(t, "family.rmtree", cfg.Database.Path)
	assert.Equal(t, 4, cfg.Tree.AncestryDepth)

	// Refuses to clobber an existing file.
	require.Error(t, WriteDefault(path))
}

func TestWatcherReloads(t *testing.T) {
	dir := t.TempDir()
	path := writeConfigFile(t, dir, `
[tree]
ancestry_depth = 2
`)

	w, err := NewWatcher(path)
	require.NoError(t, err)
	defer w.Close()

	reloaded := make(chan *Config, 1)
	w.OnReload(func(cfg *Config) error {
		select {
		case reloaded <- cfg:
		default:
		}
		return nil
	})

	writeConfigFile(t, dir, `
[tree]
ancestry_depth = 7
`)

	select {
	case cfg := <-reloaded:
		assert.Equal(t, 7, cfg.Tree.AncestryDepth)
	case <-time.After(5 * time.Second):
		t.Fatal("config reload never fired")
	}
}
