package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func noEnv() []string { return nil }

const pgYAML = `
database:
  type: postgresql
  host: localhost
  port: 5432
  database: shop
  username: app
  schema: public
fixture:
  batchsize: 50
`

func TestLoadDefaultsAndYAML(t *testing.T) {
	cfg, err := Load(WithYAML([]byte(pgYAML)), WithEnviron(noEnv))
	require.NoError(t, err)

	assert.Equal(t, "postgresql", cfg.Database.Type)
	assert.Equal(t, 5432, cfg.Database.Port)
	assert.Equal(t, "public", cfg.Database.Schema)
	assert.Equal(t, int32(4), cfg.Database.Pool.Max.Connections)
	assert.Equal(t, 5*time.Minute, cfg.Database.Pool.Idle.Time)
	assert.Equal(t, 200*time.Millisecond, cfg.Database.Query.Slow.Threshold)
	assert.Equal(t, 10*time.Second, cfg.Database.Connect.Timeout)

	assert.Equal(t, "CLEAN_INSERT", cfg.Fixture.Operation)
	assert.Equal(t, 50, cfg.Fixture.BatchSize)
	assert.True(t, cfg.Fixture.Transactional)
	assert.Equal(t, "info", cfg.Log.Level)
}

func TestEnvironmentOverridesYAML(t *testing.T) {
	environ := func() []string {
		return []string{
			"DBFIXTURE_DATABASE_HOST=db.internal",
			"DBFIXTURE_FIXTURE_TRANSACTIONAL=false",
			"DBFIXTURE_LOG_LEVEL=debug",
			"UNRELATED_LOG_LEVEL=error",
		}
	}
	cfg, err := Load(WithYAML([]byte(pgYAML)), WithEnviron(environ))
	require.NoError(t, err)

	assert.Equal(t, "db.internal", cfg.Database.Host)
	assert.False(t, cfg.Fixture.Transactional)
	assert.Equal(t, "debug", cfg.Log.Level)
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "fixture.yaml")
	require.NoError(t, os.WriteFile(path, []byte("database:\n  type: sqlite\n  database: ':memory:'\n"), 0o600))

	cfg, err := Load(WithFile(path), WithEnviron(noEnv))
	require.NoError(t, err)
	assert.Equal(t, "sqlite", cfg.Database.Type)
	assert.Equal(t, ":memory:", cfg.Database.Database)

	_, err = Load(WithFile(filepath.Join(t.TempDir(), "missing.yaml")), WithEnviron(noEnv))
	assert.Error(t, err)
}

func TestValidationErrors(t *testing.T) {
	tests := []struct {
		name string
		yaml string
		want string
	}{
		{
			name: "missing type",
			yaml: "database:\n  database: x\n",
			want: "config_missing: database.type required set DBFIXTURE_DATABASE_TYPE env var or add database.type to dbfixture.yaml",
		},
		{
			name: "unknown vendor",
			yaml: "database:\n  type: db2\n  database: x\n",
			want: `config_invalid: database.type invalid value "db2" must be one of: postgresql, oracle, mysql, sqlserver, sqlite`,
		},
		{
			name: "batch size",
			yaml: "database:\n  type: sqlite\n  database: x\nfixture:\n  batchsize: 0\n",
			want: "config_invalid: fixture.batchsize value 0 must be >= 1",
		},
		{
			name: "host required for network vendors",
			yaml: "database:\n  type: mysql\n  database: x\n",
			want: "config_missing: database.host required set DBFIXTURE_DATABASE_HOST env var or add database.host to dbfixture.yaml",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(WithYAML([]byte(tt.yaml)), WithEnviron(noEnv))
			var cfgErr *ConfigError
			require.ErrorAs(t, err, &cfgErr)
			assert.EqualError(t, err, tt.want)
		})
	}
}

func TestConnectionStringSkipsFieldChecks(t *testing.T) {
	cfg, err := Load(WithYAML([]byte("database:\n  type: oracle\n  connectionstring: oracle://u:p@h:1521/svc\n")), WithEnviron(noEnv))
	require.NoError(t, err)
	assert.Equal(t, "oracle://u:p@h:1521/svc", cfg.Database.ConnectionString)
}

func TestGetters(t *testing.T) {
	cfg, err := Load(WithYAML([]byte(pgYAML+"custom:\n  seed: 42\n  name: demo\n  timeout: 3s\n")), WithEnviron(noEnv))
	require.NoError(t, err)

	assert.Equal(t, 42, cfg.GetInt("custom.seed"))
	assert.Equal(t, "demo", cfg.GetString("custom.name"))
	assert.Equal(t, 3*time.Second, cfg.GetDuration("custom.timeout"))
	assert.Equal(t, "fallback", cfg.GetString("custom.missing", "fallback"))
	assert.True(t, cfg.GetBool("fixture.transactional"))
	assert.True(t, cfg.Exists("custom.seed"))

	_, err = cfg.GetRequiredString("custom.missing")
	assert.EqualError(t, err, "config_missing: custom.missing required set DBFIXTURE_CUSTOM_MISSING env var or add custom.missing to dbfixture.yaml")

	var empty Config
	assert.Equal(t, 7, empty.GetInt("any", 7))
	assert.Empty(t, empty.All())
}

func TestEnvVar(t *testing.T) {
	assert.Equal(t, "DBFIXTURE_DATABASE_POOL_MAX_CONNECTIONS", EnvVar("database.pool.max.connections"))
}
