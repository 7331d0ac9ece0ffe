package config

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadYAMLAndJSON(t *testing.T) {
	dir := t.TempDir()
	yamlPath := filepath.Join(dir, "cs2bedrock.yaml")
	require.NoError(t, os.WriteFile(yamlPath, []byte(`
input_dir: models
output_dir: out
preview: true
preview_format: png
yaw: 0
workers: 3
`), 0o644))

	cfg, err := Load(yamlPath)
	require.NoError(t, err)
	assert.Equal(t, "models", cfg.InputDir)
	assert.True(t, cfg.Preview)
	assert.Equal(t, 3, cfg.Workers)
	require.NotNil(t, cfg.Yaw)
	assert.Equal(t, 0.0, *cfg.Yaw)
	assert.Nil(t, cfg.Pitch)

	jsonPath := filepath.Join(dir, "cs2bedrock.json")
	require.NoError(t, os.WriteFile(jsonPath, []byte(`{"input_dir":"models","format_version":"1.16.0"}`), 0o644))
	cfg, err = Load(jsonPath)
	require.NoError(t, err)
	assert.Equal(t, "1.16.0", cfg.FormatVersion)
}

func TestLoadErrors(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.json"))
	require.Error(t, err)

	bad := filepath.Join(t.TempDir(), "bad.json")
	require.NoError(t, os.WriteFile(bad, []byte("{"), 0o644))
	_, err = Load(bad)
	require.Error(t, err)
}

func TestResolveDefaults(t *testing.T) {
	var cfg Config
	cfg.Resolve(Flags{})

	assert.Equal(t, ".", cfg.InputDir)
	assert.Equal(t, "bedrock", cfg.OutputDir)
	assert.Equal(t, ".", cfg.AtlasDir)
	assert.Equal(t, "1.12.0", cfg.FormatVersion)
	assert.Equal(t, "webp", cfg.PreviewFormat)
	assert.Equal(t, 256, cfg.PreviewSize)
	assert.Equal(t, 2, cfg.Supersample)
	assert.Equal(t, runtime.NumCPU(), cfg.Workers)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, DefaultYaw, *cfg.Yaw)
	assert.Equal(t, DefaultPitch, *cfg.Pitch)
	require.NoError(t, cfg.Validate())
}

func TestResolveFlagsOverrideFile(t *testing.T) {
	cfg := Config{InputDir: "models", OutputDir: "out", PreviewFormat: "png", Workers: 2, AtlasDir: "tex"}
	cfg.Resolve(Flags{InputDir: "art", Workers: 6, PreviewFormat: ".TGA", Force: true})

	assert.Equal(t, "art", cfg.InputDir)
	assert.Equal(t, filepath.Join("art", "out"), cfg.OutputDir)
	assert.Equal(t, filepath.Join("art", "tex"), cfg.AtlasDir)
	assert.Equal(t, 6, cfg.Workers)
	assert.Equal(t, "tga", cfg.PreviewFormat)
	assert.True(t, cfg.Force)

	cfg = Config{OutputDir: "out"}
	cfg.Resolve(Flags{OutputDir: "elsewhere"})
	assert.Equal(t, "elsewhere", cfg.OutputDir)
}

func TestValidate(t *testing.T) {
	cfg := Config{PreviewFormat: "gif"}
	cfg.Resolve(Flags{})
	require.ErrorIs(t, cfg.Validate(), ErrInvalid)

	cfg = Config{Supersample: 16}
	cfg.Resolve(Flags{})
	require.ErrorIs(t, cfg.Validate(), ErrInvalid)
}
