package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// clearEnv makes every TODO_* override unset for the duration of the test.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, name := range []string{
		EnvStorageDriver, EnvStoragePath, EnvStorageDSN,
		EnvRedisAddr, EnvRedisPassword, EnvRedisDB, EnvStoragePrefix,
	} {
		t.Setenv(name, "")
		os.Unsetenv(name)
	}
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))
}

func TestDefaultConfigDir_XDG(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/tmp/xdg")
	assert.Equal(t, filepath.Join("/tmp/xdg", "todo"), DefaultConfigDir())
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()

	cfg, err := Load(dir)
	require.NoError(t, err)
	assert.Equal(t, dir, cfg.Dir)
	assert.Equal(t, "file", cfg.Storage.Driver)
	assert.Equal(t, filepath.Join(dir, "data"), cfg.DataDir())
	assert.Equal(t, filepath.Join(dir, "data", "todo.db"), cfg.SQLitePath())
	assert.Equal(t, filepath.Join(dir, "history"), cfg.HistoryPath())
	assert.Equal(t, filepath.Join(dir, "token.json"), cfg.TokenPath())
}

func TestLoad_YAML(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, ConfigFile), `
storage:
  driver: redis
  redis_addr: localhost:6379
  redis_db: 2
  prefix: "me:"
`)

	cfg, err := Load(dir)
	require.NoError(t, err)
	assert.Equal(t, Storage{
		Driver:    "redis",
		RedisAddr: "localhost:6379",
		RedisDB:   2,
		Prefix:    "me:",
	}, cfg.Storage)
}

func TestLoad_EnvOverridesYAML(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, ConfigFile), "storage:\n  driver: redis\n  redis_addr: a:1\n")
	t.Setenv(EnvStorageDriver, "sqlite")
	t.Setenv(EnvStoragePath, "/tmp/x.db")

	cfg, err := Load(dir)
	require.NoError(t, err)
	assert.Equal(t, "sqlite", cfg.Storage.Driver)
	assert.Equal(t, "/tmp/x.db", cfg.SQLitePath())
}

func TestLoad_DotEnv(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, EnvFile), "TODO_STORAGE_DRIVER=mysql\nTODO_STORAGE_DSN=u:p@/todo\nTODO_REDIS_DB=3\n")

	cfg, err := Load(dir)
	require.NoError(t, err)
	assert.Equal(t, "mysql", cfg.Storage.Driver)
	assert.Equal(t, "u:p@/todo", cfg.Storage.DSN)
	assert.Equal(t, 3, cfg.Storage.RedisDB)

	_, set := os.LookupEnv(EnvStorageDSN)
	assert.False(t, set, ".env must not leak into the process environment")
}

func TestLoad_EnvBeatsDotEnv(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, EnvFile), "TODO_STORAGE_DRIVER=mysql\n")
	t.Setenv(EnvStorageDriver, "memory")

	cfg, err := Load(dir)
	require.NoError(t, err)
	assert.Equal(t, "memory", cfg.Storage.Driver)
}

func TestLoad_Errors(t *testing.T) {
	tests := []struct {
		name string
		yaml string
		env  map[string]string
	}{
		{name: "unknown driver", env: map[string]string{EnvStorageDriver: "postgres"}},
		{name: "mysql without dsn", env: map[string]string{EnvStorageDriver: "mysql"}},
		{name: "redis without addr", env: map[string]string{EnvStorageDriver: "redis"}},
		{name: "bad redis db", env: map[string]string{EnvRedisDB: "two"}},
		{name: "negative redis db", env: map[string]string{EnvRedisDB: "-1"}},
		{name: "bad yaml", yaml: "storage: [\n"},
		{name: "key collides with theme", yaml: "storage:\n  key: todo-theme\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnv(t)
			dir := t.TempDir()
			if tt.yaml != "" {
				writeFile(t, filepath.Join(dir, ConfigFile), tt.yaml)
			}
			for k, v := range tt.env {
				t.Setenv(k, v)
			}

			_, err := Load(dir)
			assert.Error(t, err)
		})
	}
}

func TestToken(t *testing.T) {
	cfg, err := New(t.TempDir())
	require.NoError(t, err)

	assert.False(t, cfg.HasToken())
	writeFile(t, cfg.TokenPath(), "{}")
	assert.True(t, cfg.HasToken())
	require.NoError(t, cfg.RemoveToken())
	assert.False(t, cfg.HasToken())
}
