package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLoadWritesDefaultWhenMissing(t *testing.T) {
	path := filepath.Join(t.TempDir(), "gones.json")
	cfg, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, 2, cfg.Window.Scale)
	require.FileExists(t, path)
}

func TestLoadRoundTripsEditedValues(t *testing.T) {
	path := filepath.Join(t.TempDir(), "gones.json")
	cfg, err := Load(path)
	require.NoError(t, err)

	cfg.Window.Scale = 4
	cfg.Input.Player1.A = "Z"
	require.NoError(t, cfg.Save())

	reloaded, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, 4, reloaded.Window.Scale)
	require.Equal(t, "Z", reloaded.Input.Player1.A)
}

func TestLoadRejectsMalformedJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "gones.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0644))
	_, err := Load(path)
	require.Error(t, err)
}
