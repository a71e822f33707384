package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

const minimalConfig = `
auth:
  jwt_secret: test-secret
  admin_password_hash: "$2a$10$abcdefghijklmnopqrstuv"
`

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load(writeConfig(t, minimalConfig))
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, "9090", cfg.Server.MetricsPort)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "block", cfg.Catalog.DeletionPolicy)
	assert.Equal(t, time.Hour, cfg.Auth.TokenDuration)
}

func TestLoad_FileOverridesDefaults(t *testing.T) {
	cfg, err := Load(writeConfig(t, minimalConfig+`
server:
  port: "3000"
log:
  level: debug
catalog:
  deletion_policy: detach
`))
	require.NoError(t, err)

	assert.Equal(t, "3000", cfg.Server.Port)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "detach", cfg.Catalog.DeletionPolicy)
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	t.Setenv("VIGIE_SERVER__PORT", "4000")
	t.Setenv("VIGIE_DATABASE__URL", "postgres://env:env@db:5432/vigie")

	cfg, err := Load(writeConfig(t, minimalConfig+`
server:
  port: "3000"
`))
	require.NoError(t, err)

	assert.Equal(t, "4000", cfg.Server.Port)
	assert.Equal(t, "postgres://env:env@db:5432/vigie", cfg.Database.URL)
}

func TestLoad_RequiresSecrets(t *testing.T) {
	_, err := Load(writeConfig(t, `
auth:
  jwt_secret: test-secret
`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "admin_password_hash")
}

func TestLoad_RejectsUnknownDeletionPolicy(t *testing.T) {
	_, err := Load(writeConfig(t, minimalConfig+`
catalog:
  deletion_policy: purge
`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "deletion_policy")
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load("/nonexistent/config.yaml")
	assert.Error(t, err)
}
