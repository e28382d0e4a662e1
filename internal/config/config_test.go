package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{"HECATE_DB", "HECATE_PROGRESS_BACKEND", "HECATE_LOG_LEVEL", "HECATE_GRPC_ADDR", "HECATE_HTTP_ADDR", "GEMINI_API_KEY"} {
		t.Setenv(k, "")
	}
}

func TestLoadMissingFileGivesDefaults(t *testing.T) {
	clearEnv(t)
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
}

func TestSaveThenLoad(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "nested", "hecate.yaml")

	cfg := DefaultConfig()
	cfg.Progress = ProgressConfig{Backend: "badger", Path: "/var/lib/hecate"}
	cfg.Log.JSON = true
	cfg.Queue.Buffer = 3
	require.NoError(t, cfg.Save(path))

	got, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, got)
}

func TestPartialFileKeepsDefaults(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "hecate.yaml")
	require.NoError(t, os.WriteFile(path, []byte("log:\n  level: debug\n"), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "sqlite", cfg.Progress.Backend)
	assert.Equal(t, 16, cfg.Queue.Buffer)
}

func TestEnvOverrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("HECATE_DB", "/tmp/other.db")
	t.Setenv("HECATE_PROGRESS_BACKEND", "memory")
	t.Setenv("HECATE_LOG_LEVEL", "warn")
	t.Setenv("GEMINI_API_KEY", "k")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "/tmp/other.db", cfg.Progress.Path)
	assert.Equal(t, "memory", cfg.Progress.Backend)
	assert.Equal(t, "warn", cfg.Log.Level)
	assert.Equal(t, "gemini", cfg.Oracle.Provider)
	assert.Equal(t, "k", cfg.Oracle.APIKey)
}

func TestValidate(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Progress.Backend = "redis"
	assert.Error(t, cfg.Validate())

	cfg = DefaultConfig()
	cfg.Oracle.Provider = "gemini"
	assert.Error(t, cfg.Validate())

	cfg = DefaultConfig()
	cfg.Queue.Buffer = -1
	assert.Error(t, cfg.Validate())

	cfg = DefaultConfig()
	cfg.Progress = ProgressConfig{Backend: "memory"}
	assert.NoError(t, cfg.Validate())
}

func TestLoadRejectsBadYAML(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("progress: [\n"), 0o600))
	_, err := Load(path)
	assert.Error(t, err)
}
