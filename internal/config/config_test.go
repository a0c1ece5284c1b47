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
	for _, key := range []string{"ENVIRONMENT", "STORE_DRIVER", "STATE_FILE", "PARTICIPANTS", "GRACE_DELAY", "CREDENTIAL_SCHEME", "HOUSEHOLD_FILE", "DB_DSN"} {
		t.Setenv(key, "")
	}

	cfg, err := Load()
	require.NoError(t, err)
	require.NoError(t, cfg.ValidateConfig())

	assert.True(t, cfg.IsDevelopment())
	assert.Equal(t, StoreFile, cfg.Store.Driver)
	assert.Equal(t, "choreboard.json", cfg.Store.StateFile)
	assert.Equal(t, []string{"JYOTHI", "CHAITRA", "SREE"}, cfg.Board.Participants)
	assert.Equal(t, 450*time.Millisecond, cfg.Board.GraceDelay)
	assert.Equal(t, "plain", cfg.Auth.CredentialScheme)
	assert.True(t, cfg.Database.AutoMigrate)
	assert.Equal(t, "file:choreboard.db?cache=shared&_fk=1", cfg.DatabaseDSN())
}

func TestLoad_FromEnv(t *testing.T) {
	t.Setenv("HOUSEHOLD_FILE", "")
	t.Setenv("STORE_DRIVER", "Postgres")
	t.Setenv("DB_DSN", "")
	t.Setenv("DB_HOST", "db")
	t.Setenv("DB_PORT", "6543")
	t.Setenv("PARTICIPANTS", " ana, , ben ,cy ")
	t.Setenv("GRACE_DELAY", "1s")
	t.Setenv("AUTO_MIGRATE", "false")
	t.Setenv("CREDENTIAL_SCHEME", "BCRYPT")

	cfg, err := Load()
	require.NoError(t, err)
	require.NoError(t, cfg.ValidateConfig())

	assert.Equal(t, StorePostgres, cfg.Store.Driver)
	assert.Equal(t, []string{"ana", "ben", "cy"}, cfg.Board.Participants)
	assert.Equal(t, time.Second, cfg.Board.GraceDelay)
	assert.False(t, cfg.Database.AutoMigrate)
	assert.Equal(t, "bcrypt", cfg.Auth.CredentialScheme)
	assert.Contains(t, cfg.DatabaseDSN(), "host=db port=6543")
}

func TestLoad_HouseholdFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "household.toml")
	require.NoError(t, os.WriteFile(path, []byte(`
participants = ["Mum", "Dad", "Kid"]
grace_delay = "200ms"
`), 0o600))
	t.Setenv("HOUSEHOLD_FILE", path)
	t.Setenv("PARTICIPANTS", "ignored")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, []string{"Mum", "Dad", "Kid"}, cfg.Board.Participants)
	assert.Equal(t, 200*time.Millisecond, cfg.Board.GraceDelay)
}

func TestLoad_HouseholdFileErrors(t *testing.T) {
	dir := t.TempDir()

	bad := filepath.Join(dir, "bad.toml")
	require.NoError(t, os.WriteFile(bad, []byte(`participants = [`), 0o600))
	t.Setenv("HOUSEHOLD_FILE", bad)
	_, err := Load()
	assert.Error(t, err)

	badDelay := filepath.Join(dir, "delay.toml")
	require.NoError(t, os.WriteFile(badDelay, []byte(`grace_delay = "soon"`), 0o600))
	t.Setenv("HOUSEHOLD_FILE", badDelay)
	_, err = Load()
	assert.Error(t, err)
}

func TestValidateConfig(t *testing.T) {
	valid := func() *Config {
		return &Config{
			Store: StoreConfig{Driver: StoreFile, StateFile: "state.json"},
			Board: BoardConfig{Participants: []string{"A", "B"}, GraceDelay: time.Millisecond},
			Auth:  AuthConfig{CredentialScheme: "plain"},
			Log:   LogConfig{Format: "json"},
		}
	}

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{name: "valid", mutate: func(*Config) {}},
		{name: "unknown driver", mutate: func(c *Config) { c.Store.Driver = "redis" }, wantErr: true},
		{name: "file store without path", mutate: func(c *Config) { c.Store.StateFile = "" }, wantErr: true},
		{name: "memory store", mutate: func(c *Config) { c.Store.Driver = StoreMemory; c.Store.StateFile = "" }},
		{name: "no participants", mutate: func(c *Config) { c.Board.Participants = nil }, wantErr: true},
		{name: "duplicate participant", mutate: func(c *Config) { c.Board.Participants = []string{"A", "A"} }, wantErr: true},
		{name: "negative grace", mutate: func(c *Config) { c.Board.GraceDelay = -time.Second }, wantErr: true},
		{name: "unknown scheme", mutate: func(c *Config) { c.Auth.CredentialScheme = "md5" }, wantErr: true},
		{name: "unknown log format", mutate: func(c *Config) { c.Log.Format = "xml" }, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(cfg)
			err := cfg.ValidateConfig()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
