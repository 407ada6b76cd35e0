package config

import (
	"fmt"
	"log"
	"strings"

	"github.com/spf13/viper"
)

// Config holds everything the process needs at startup. Values come from
// environment variables (the names the deployment already uses) with an
// optional yaml file underneath.
type Config struct {
	APIPort int

	DatabaseType     string
	DatabaseHost     string
	DatabasePort     string
	DatabaseUser     string
	DatabasePassword string
	DatabaseName     string
	DatabaseSSLMode  string
	DatabasePath     string // sqlite only

	TokenSecret        string
	TokenAlgorithm     string
	TokenExpireMinutes int
}

// Load reads configuration from the given file (if it exists) and the
// environment. Token signing settings are validated here so a
// misconfigured process fails at startup rather than at first login.
func Load(path string) (*Config, error) {
	v := viper.New()

	v.SetDefault("api_port", 8000)
	v.SetDefault("database_type", "postgres")
	v.SetDefault("db_host", "localhost")
	v.SetDefault("db_port", "5432")
	v.SetDefault("db_user", "postgres")
	v.SetDefault("db_pass", "")
	v.SetDefault("db_name", "attendance")
	v.SetDefault("db_sslmode", "disable")
	v.SetDefault("database_path", "data/rollcall.db")
	v.SetDefault("secret_key", "")
	v.SetDefault("algorithm", "")
	v.SetDefault("access_token_expire_minutes", 30)

	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
				log.Printf("Warning: could not read config file %s: %v. Using environment and defaults.", path, err)
			}
		}
	}

	cfg := &Config{
		APIPort:            v.GetInt("api_port"),
		DatabaseType:       v.GetString("database_type"),
		DatabaseHost:       v.GetString("db_host"),
		DatabasePort:       v.GetString("db_port"),
		DatabaseUser:       v.GetString("db_user"),
		DatabasePassword:   v.GetString("db_pass"),
		DatabaseName:       v.GetString("db_name"),
		DatabaseSSLMode:    v.GetString("db_sslmode"),
		DatabasePath:       v.GetString("database_path"),
		TokenSecret:        v.GetString("secret_key"),
		TokenAlgorithm:     v.GetString("algorithm"),
		TokenExpireMinutes: v.GetInt("access_token_expire_minutes"),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the invariants Load cannot default its way out of.
func (c *Config) Validate() error {
	if c.TokenSecret == "" {
		return fmt.Errorf("SECRET_KEY is required")
	}
	if c.TokenAlgorithm == "" {
		return fmt.Errorf("ALGORITHM is required")
	}
	switch c.TokenAlgorithm {
	case "HS256", "HS384", "HS512":
	default:
		return fmt.Errorf("unsupported signing algorithm: %s", c.TokenAlgorithm)
	}
	if c.TokenExpireMinutes <= 0 {
		return fmt.Errorf("ACCESS_TOKEN_EXPIRE_MINUTES must be positive")
	}
	switch c.DatabaseType {
	case "postgres", "sqlite":
	default:
		return fmt.Errorf("unsupported database type: %s", c.DatabaseType)
	}
	return nil
}
