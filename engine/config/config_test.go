package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultIsValid(t *testing.T) {
	require.NoError(t, Default().Validate())
}

func TestLoadEmptyPathReturnsDefaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Default().Window, cfg.Window)
}

func TestLoadOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "heritage.toml")
	data := `
[window]
title = "Test"
width = 800
height = 600

[viewer]
auto_rotate = false
default_preset = "top"

[assets]
timeout = "5s"
`
	require.NoError(t, os.WriteFile(path, []byte(data), 0644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "Test", cfg.Window.Title)
	assert.Equal(t, uint32(800), cfg.Window.Width)
	assert.False(t, cfg.Viewer.AutoRotate)
	assert.Equal(t, "top", cfg.Viewer.DefaultPreset)
	assert.Equal(t, 5*time.Second, cfg.AssetTimeout())
	// untouched sections keep their defaults
	assert.Equal(t, "software", cfg.Renderer.Backend)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.toml"))
	assert.Error(t, err)
}

func TestLoadRejectsInvalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.toml")
	require.NoError(t, os.WriteFile(path, []byte("[renderer]\nbackend = \"directx\"\n"), 0644))

	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid renderer backend")
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("HERITAGE_BACKEND", "headless")
	t.Setenv("HERITAGE_REQUIRE_GPU", "true")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "headless", cfg.Renderer.Backend)
	assert.True(t, cfg.Renderer.RequireGPU)
}

func TestSaveRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sub", "heritage.toml")
	cfg := Default()
	cfg.Viewer.DefaultPreset = "side"
	require.NoError(t, cfg.Save(path))

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "side", loaded.Viewer.DefaultPreset)
}

func TestAssetTimeoutFallback(t *testing.T) {
	cfg := Default()
	cfg.Assets.Timeout = "soon"
	assert.Equal(t, 30*time.Second, cfg.AssetTimeout())
}
