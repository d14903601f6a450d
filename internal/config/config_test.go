package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leonardcser/uipath-mcp/internal/config"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{
		config.EnvConfig, config.EnvLogPath, config.EnvLogLevel, config.EnvSnapshotDB,
		config.EnvCacheMaxSize, config.EnvCacheTimeout, config.EnvResolverDepth,
	} {
		t.Setenv(k, "")
	}
}

func writeFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "uipath-mcp.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)
	cfg, err := config.Load("")
	require.NoError(t, err)
	assert.Equal(t, 10, cfg.Cache.MaxSize)
	assert.Equal(t, 30*time.Minute, cfg.Cache.Timeout)
	assert.Equal(t, 50, cfg.Resolver.MaxDepth)
	assert.Equal(t, 5, cfg.Menu.MaxDepth)
	assert.Equal(t, "snapshots", cfg.Snapshot.Bucket)
	assert.Equal(t, "snapshots.db", filepath.Base(cfg.Snapshot.DB))
}

func TestLoad_File(t *testing.T) {
	clearEnv(t)
	path := writeFile(t, `
log:
  level: debug
cache:
  max_size: 3
  timeout: 90s
  cleanup_interval: 0s
resolver:
  max_depth: 12
menu:
  suggestions: 8
snapshot:
  db: /tmp/trees.db
`)
	cfg, err := config.Load(path)
	require.NoError(t, err)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, 3, cfg.Cache.MaxSize)
	assert.Equal(t, 90*time.Second, cfg.Cache.Timeout)
	assert.Zero(t, cfg.Cache.CleanupInterval)
	assert.Equal(t, 12, cfg.Resolver.MaxDepth)
	assert.Equal(t, 5, cfg.Menu.MaxDepth, "unset keys keep defaults")
	assert.Equal(t, 8, cfg.Menu.Suggestions)
	assert.Equal(t, "/tmp/trees.db", cfg.Snapshot.DB)
}

func TestLoad_FileFromEnv(t *testing.T) {
	clearEnv(t)
	t.Setenv(config.EnvConfig, writeFile(t, "resolver:\n  max_depth: 7\n"))
	cfg, err := config.Load("")
	require.NoError(t, err)
	assert.Equal(t, 7, cfg.Resolver.MaxDepth)
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	clearEnv(t)
	path := writeFile(t, "cache:\n  max_size: 3\nsnapshot:\n  db: /from/file.db\n")
	t.Setenv(config.EnvCacheMaxSize, "20")
	t.Setenv(config.EnvCacheTimeout, "2m")
	t.Setenv(config.EnvSnapshotDB, "/from/env.db")
	t.Setenv(config.EnvLogLevel, "warn")

	cfg, err := config.Load(path)
	require.NoError(t, err)
	assert.Equal(t, 20, cfg.Cache.MaxSize)
	assert.Equal(t, 2*time.Minute, cfg.Cache.Timeout)
	assert.Equal(t, "/from/env.db", cfg.Snapshot.DB)
	assert.Equal(t, "warn", cfg.Log.Level)
}

func TestLoad_Errors(t *testing.T) {
	tests := map[string]struct {
		file string
		env  map[string]string
		want error
	}{
		"missing file": {
			want: config.ErrConfigRead,
		},
		"bad yaml": {
			file: "cache: [",
			want: config.ErrConfigParse,
		},
		"zero cache size": {
			file: "cache:\n  max_size: 0\n",
			want: config.ErrConfigInvalid,
		},
		"unknown level": {
			file: "log:\n  level: chatty\n",
			want: config.ErrConfigInvalid,
		},
		"malformed env": {
			file: "resolver:\n  max_depth: 3\n",
			env:  map[string]string{config.EnvResolverDepth: "deep"},
			want: config.ErrConfigInvalid,
		},
	}
	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			clearEnv(t)
			for k, v := range tc.env {
				t.Setenv(k, v)
			}
			path := filepath.Join(t.TempDir(), "absent.yaml")
			if tc.file != "" {
				path = writeFile(t, tc.file)
			}
			_, err := config.Load(path)
			assert.ErrorIs(t, err, tc.want)
		})
	}
}
