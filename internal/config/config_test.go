package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "config.yaml"))
	require.NoError(t, err)

	assert.Equal(t, "codeforge", cfg.Name)
	assert.Equal(t, ".forge/extensions", cfg.Extensions.ProjectDirName)

	d, err := cfg.Debounce()
	require.NoError(t, err)
	assert.Equal(t, time.Second, d)
}

func TestLoadMergesOverDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := `
extensions:
  global_dir: /opt/forge/extensions
  watch_debounce: 250ms
logging:
  level: debug
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "/opt/forge/extensions", cfg.GlobalExtensionsDir())
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, ".forge/extensions", cfg.Extensions.ProjectDirName, "untouched keys keep defaults")

	d, err := cfg.Debounce()
	require.NoError(t, err)
	assert.Equal(t, 250*time.Millisecond, d)
}

func TestLoadRejectsMalformedYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("extensions: [unclosed"), 0o644))

	_, err := Load(path)
	assert.Error(t, err)
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("FORGE_EXTENSIONS_DIR", "/env/extensions")
	t.Setenv("FORGE_LOG_LEVEL", "warn")

	cfg, err := Load(filepath.Join(t.TempDir(), "config.yaml"))
	require.NoError(t, err)

	assert.Equal(t, "/env/extensions", cfg.GlobalExtensionsDir())
	assert.Equal(t, "warn", cfg.Logging.Level)
}

func TestValidate(t *testing.T) {
	cfg := DefaultConfig()
	assert.NoError(t, cfg.Validate())

	cfg.Logging.Level = "chatty"
	assert.Error(t, cfg.Validate())

	cfg = DefaultConfig()
	cfg.Extensions.WatchDebounce = "soon"
	assert.Error(t, cfg.Validate())
}

func TestSaveRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")

	cfg := DefaultConfig()
	cfg.Extensions.GlobalDir = "/custom"
	require.NoError(t, cfg.Save(path))

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "/custom", loaded.Extensions.GlobalDir)
}
