package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoad_Defaults(t *testing.T) {
	path := writeConfig(t, "storage_path: storage/registration.db\n")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "dev", cfg.Env)
	assert.Equal(t, "storage/registration.db", cfg.StoragePath)
	assert.Equal(t, "localhost:8082", cfg.HTTPServer.Addr)
	assert.Equal(t, 10*time.Second, cfg.HTTPServer.ReadTimeout)
	assert.False(t, cfg.Cache.Disabled)
	assert.Equal(t, 5*time.Minute, cfg.Cache.TTL)
	assert.Equal(t, "http://localhost:8082", cfg.Client.ServerURL)
	assert.Equal(t, 8, cfg.Validation.StudentIDLength)
	assert.False(t, cfg.Validation.StrictEmail)
}

func TestLoad_FileValues(t *testing.T) {
	path := writeConfig(t, `
env: prod
storage_path: /var/lib/registration.db
http_server:
  address: ":9000"
cache:
  disabled: true
  ttl: 30s
client:
  server_url: http://registrar:9000
  timeout: 2s
validation:
  student_id_length: 9
  strict_email: true
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "prod", cfg.Env)
	assert.Equal(t, ":9000", cfg.HTTPServer.Addr)
	assert.True(t, cfg.Cache.Disabled)
	assert.Equal(t, 30*time.Second, cfg.Cache.TTL)
	assert.Equal(t, "http://registrar:9000", cfg.Client.ServerURL)
	assert.Equal(t, 2*time.Second, cfg.Client.Timeout)
	assert.Equal(t, 9, cfg.Validation.StudentIDLength)
	assert.True(t, cfg.Validation.StrictEmail)
}

func TestLoad_EnvOverride(t *testing.T) {
	path := writeConfig(t, "storage_path: a.db\n")
	t.Setenv("STORAGE_PATH", "b.db")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "b.db", cfg.StoragePath)
}

func TestLoad_Errors(t *testing.T) {
	t.Run("empty path", func(t *testing.T) {
		_, err := Load("")
		require.Error(t, err)
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
		require.ErrorContains(t, err, "does not exist")
	})

	t.Run("bad student id length", func(t *testing.T) {
		path := writeConfig(t, "storage_path: a.db\nvalidation:\n  student_id_length: -1\n")
		_, err := Load(path)
		require.ErrorContains(t, err, "student_id_length")
	})
}
