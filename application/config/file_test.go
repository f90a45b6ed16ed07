package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/reglet-dev/nu-plugin-lua/domain/errors"
	"github.com/reglet-dev/nu-plugin-lua/internal/testutil"
)

func writeFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "lua.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestMergeYAML(t *testing.T) {
	t.Run("partial document", func(t *testing.T) {
		cfg, err := Default().MergeYAML([]byte("log_level: debug\nopen_libraries: false\n"))
		require.NoError(t, err)
		assert.Equal(t, "debug", cfg.LogLevel)
		assert.False(t, cfg.OpenLibraries)
		assert.True(t, cfg.DisableGC)
	})

	t.Run("empty document", func(t *testing.T) {
		cfg, err := Default().MergeYAML(nil)
		require.NoError(t, err)
		assert.Equal(t, Default(), cfg)
	})

	t.Run("unknown key", func(t *testing.T) {
		_, err := Default().MergeYAML([]byte("sandbox: true\n"))
		testutil.RequireErrorAs[*errors.ConfigError](t, err)
	})

	t.Run("invalid value", func(t *testing.T) {
		_, err := Default().MergeYAML([]byte("log_format: xml\n"))
		cfgErr := testutil.RequireErrorAs[*errors.ConfigError](t, err)
		assert.Equal(t, "LogFormat", cfgErr.Field)
	})
}

func TestMergeFile_Missing(t *testing.T) {
	_, err := Default().MergeFile(filepath.Join(t.TempDir(), "absent.yaml"))
	cfgErr := testutil.RequireErrorAs[*errors.ConfigError](t, err)
	assert.Contains(t, cfgErr.Error(), "failed to read config file")
}

func TestLoad_FileThenEnvironment(t *testing.T) {
	path := writeFile(t, "log_level: info\nchunk_name: \"=file\"\ndisable_gc: false\n")
	t.Setenv("NU_PLUGIN_LUA_CONFIG_FILE", path)
	t.Setenv("NU_PLUGIN_LUA_LOG_LEVEL", "error")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "error", cfg.LogLevel, "environment wins over the file")
	assert.Equal(t, "=file", cfg.ChunkName)
	assert.False(t, cfg.DisableGC)
	assert.Equal(t, "text", cfg.LogFormat)
}

func TestLoad_BadFile(t *testing.T) {
	t.Setenv("NU_PLUGIN_LUA_CONFIG_FILE", writeFile(t, "log_level: [unclosed\n"))

	_, err := Load()
	testutil.RequireErrorAs[*errors.ConfigError](t, err)
}
