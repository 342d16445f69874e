package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	chdir(t, t.TempDir())

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, ":8080", cfg.Server.Addr())
	assert.Equal(t, "sqlite", cfg.DB.Driver)
	assert.Equal(t, "mealscan.db", cfg.DB.Path)
	assert.True(t, cfg.DB.AutoMigrate)
	assert.True(t, cfg.DB.Seed)
	assert.Equal(t, time.Hour, cfg.Session.IdleTimeout)
	assert.Equal(t, "MEALSCAN_SESSION", cfg.Session.CookieName)
	assert.Equal(t, 5*time.Minute, cfg.Cache.StudentsTTL)
	assert.False(t, cfg.Redis.Enabled)
	assert.Equal(t, "info", cfg.Log.Level)
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	dir := t.TempDir()
	chdir(t, dir)

	path := filepath.Join(dir, "mealscan.yaml")
	content := []byte("server:\n  port: 9000\nsession:\n  idle_timeout: 30m\nlog:\n  level: debug\n")
	require.NoError(t, os.WriteFile(path, content, 0o600))

	t.Setenv("MEALSCAN_SERVER_PORT", "9100")
	t.Setenv("MEALSCAN_REDIS_ENABLED", "true")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 9100, cfg.Server.Port, "env should win over file")
	assert.Equal(t, 30*time.Minute, cfg.Session.IdleTimeout, "file should win over default")
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.True(t, cfg.Redis.Enabled)
}

func TestLoad_MissingExplicitFile(t *testing.T) {
	chdir(t, t.TempDir())

	_, err := Load("does-not-exist.yaml")
	assert.Error(t, err)
}

func TestConfig_Validate(t *testing.T) {
	valid := func() Config {
		return Config{
			Server:  ServerConfig{Port: 8080},
			DB:      DBConfig{Driver: "sqlite"},
			Session: SessionConfig{IdleTimeout: time.Hour, CookieName: "s"},
		}
	}

	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr bool
	}{
		{name: "valid", mutate: func(c *Config) {}},
		{name: "postgres driver", mutate: func(c *Config) { c.DB.Driver = "postgres" }},
		{name: "port zero", mutate: func(c *Config) { c.Server.Port = 0 }, wantErr: true},
		{name: "port too large", mutate: func(c *Config) { c.Server.Port = 70000 }, wantErr: true},
		{name: "unknown driver", mutate: func(c *Config) { c.DB.Driver = "mysql" }, wantErr: true},
		{name: "zero idle timeout", mutate: func(c *Config) { c.Session.IdleTimeout = 0 }, wantErr: true},
		{name: "empty cookie name", mutate: func(c *Config) { c.Session.CookieName = "" }, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestDBConfig_PostgresDSN(t *testing.T) {
	t.Parallel()

	cfg := DBConfig{
		Host: "db", Port: 5432, User: "meal", Password: "secret",
		Name: "mealscan", SSLMode: "disable", Timezone: "UTC",
	}
	assert.Equal(t,
		"host=db port=5432 user=meal password=secret dbname=mealscan sslmode=disable TimeZone=UTC",
		cfg.PostgresDSN())

	cfg.DSN = "postgres://meal:secret@db/mealscan"
	assert.Equal(t, "postgres://meal:secret@db/mealscan", cfg.PostgresDSN())
}

// chdir changes the working directory for the duration of the test and
// restores it on cleanup.
func chdir(t *testing.T, dir string) {
	t.Helper()
	prev, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(prev) })
}
