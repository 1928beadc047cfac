package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eleviewr/eleviewr/pkg/eleviewr"
	"github.com/eleviewr/eleviewr/pkg/eleviewr/catalog"
	"github.com/eleviewr/eleviewr/pkg/eleviewr/keymap"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestConfigInitWritesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "eleviewr", "config.toml")

	out, err := execute(t, "config", "init", "--config", path)
	require.NoError(t, err)
	assert.Contains(t, out, path)

	cfg, err := keymap.Load(path)
	require.NoError(t, err)
	assert.Equal(t, keymap.DefaultKeyBinds(), cfg.Keybinds)
}

func TestConfigInitRefusesOverwrite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte("[keybinds]\nExit = \"q\"\n"), 0644))

	_, err := execute(t, "config", "init", "--config", path)
	require.Error(t, err)

	_, err = execute(t, "config", "init", "--config", path, "--force")
	require.NoError(t, err)

	cfg, err := keymap.Load(path)
	require.NoError(t, err)
	assert.Equal(t, "Escape", cfg.Keybinds.Exit)
}

func TestKeysPrintsConfiguredBindings(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte("[keybinds]\nNextImage = \"space, j\"\n"), 0644))

	out, err := execute(t, "keys", "--config", path)
	require.NoError(t, err)

	assert.Contains(t, out, "next_image")
	assert.Contains(t, out, "Space, J")
	assert.Contains(t, out, "previous_image")
	assert.Contains(t, out, "H, ←")
}

func TestResolvePath(t *testing.T) {
	dir := t.TempDir()

	got, err := resolvePath([]string{dir})
	require.NoError(t, err)
	assert.Equal(t, dir, got)

	_, err = resolvePath([]string{filepath.Join(dir, "missing.png")})
	assert.ErrorIs(t, err, catalog.ErrPathNotFound)

	cwd, err := os.Getwd()
	require.NoError(t, err)
	got, err = resolvePath(nil)
	require.NoError(t, err)
	assert.Equal(t, cwd, got)
}

func TestLogFileOpenedBeforeConfigLoads(t *testing.T) {
	cache := t.TempDir()
	t.Setenv("XDG_CACHE_HOME", cache)
	t.Setenv("HOME", cache)
	t.Cleanup(eleviewr.CloseLogger)

	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte("[keybinds]\nNextImage = \"j, bogus\"\n"), 0644))

	_, err := execute(t, "keys", "--config", path, "--log-file", "keys.log")
	require.NoError(t, err)

	dir, err := os.UserCacheDir()
	require.NoError(t, err)
	data, err := os.ReadFile(filepath.Join(dir, "eleviewr", "logs", "keys.log"))
	require.NoError(t, err)
	assert.Contains(t, string(data), "Ignoring unknown key names")
}
