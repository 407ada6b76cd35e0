package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setTokenEnv(t *testing.T) {
	t.Setenv("SECRET_KEY", "test-secret")
	t.Setenv("ALGORITHM", "HS256")
}

func TestLoadFromEnvironment(t *testing.T) {
	setTokenEnv(t)
	t.Setenv("DB_NAME", "attendance_test")
	t.Setenv("DB_USER", "tester")
	t.Setenv("DB_PASS", "hunter2")
	t.Setenv("DB_HOST", "db.internal")
	t.Setenv("DB_PORT", "5433")
	t.Setenv("ACCESS_TOKEN_EXPIRE_MINUTES", "45")

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "attendance_test", cfg.DatabaseName)
	assert.Equal(t, "tester", cfg.DatabaseUser)
	assert.Equal(t, "hunter2", cfg.DatabasePassword)
	assert.Equal(t, "db.internal", cfg.DatabaseHost)
	assert.Equal(t, "5433", cfg.DatabasePort)
	assert.Equal(t, "test-secret", cfg.TokenSecret)
	assert.Equal(t, "HS256", cfg.TokenAlgorithm)
	assert.Equal(t, 45, cfg.TokenExpireMinutes)
	assert.Equal(t, 8000, cfg.APIPort)
}

func TestLoadFailsWithoutSigningSecret(t *testing.T) {
	t.Setenv("ALGORITHM", "HS256")

	_, err := Load("")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "SECRET_KEY")
}

func TestLoadFailsWithoutAlgorithm(t *testing.T) {
	t.Setenv("SECRET_KEY", "test-secret")

	_, err := Load("")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "ALGORITHM")
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{"valid", func(c *Config) {}, ""},
		{"non-hmac algorithm", func(c *Config) { c.TokenAlgorithm = "RS256" }, "unsupported signing algorithm"},
		{"zero lifetime", func(c *Config) { c.TokenExpireMinutes = 0 }, "must be positive"},
		{"unknown database type", func(c *Config) { c.DatabaseType = "oracle" }, "unsupported database type"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &Config{
				DatabaseType:       "sqlite",
				TokenSecret:        "s",
				TokenAlgorithm:     "HS512",
				TokenExpireMinutes: 30,
			}
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
			} else {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
			}
		})
	}
}
