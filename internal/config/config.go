package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	APIURL       string        `mapstructure:"SELFCARE_API_URL"`
	Env          string        `mapstructure:"ENV"`
	HTTPTimeout  time.Duration `mapstructure:"HTTP_TIMEOUT"`
	TokenFile    string        `mapstructure:"TOKEN_FILE"`
	DefaultLimit int           `mapstructure:"DEFAULT_PAGE_LIMIT"`
}

func Load() (*Config, error) {
	v := viper.New()
	v.SetConfigFile(".env")
	v.SetConfigType("env")
	v.AutomaticEnv()

	// Defaults
	v.SetDefault("SELFCARE_API_URL", "http://127.0.0.1:5000")
	v.SetDefault("ENV", "development")
	v.SetDefault("HTTP_TIMEOUT", "30s")
	v.SetDefault("TOKEN_FILE", defaultTokenFile())
	v.SetDefault("DEFAULT_PAGE_LIMIT", 5)

	// Bind env vars explicitly so Unmarshal picks them up
	v.BindEnv("SELFCARE_API_URL")
	v.BindEnv("ENV")
	v.BindEnv("HTTP_TIMEOUT")
	v.BindEnv("TOKEN_FILE")
	v.BindEnv("DEFAULT_PAGE_LIMIT")

	// Try reading .env file, but don't fail if missing
	_ = v.ReadInConfig()

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if cfg.APIURL == "" {
		return nil, fmt.Errorf("SELFCARE_API_URL is required")
	}
	if cfg.DefaultLimit <= 0 {
		return nil, fmt.Errorf("DEFAULT_PAGE_LIMIT must be positive, got %d", cfg.DefaultLimit)
	}

	return cfg, nil
}

func (c *Config) IsDev() bool {
	return c.Env == "development"
}

// defaultTokenFile places the saved credential under the user's config
// directory, falling back to the working directory when none is known.
func defaultTokenFile() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ".selfcare-token"
	}
	return filepath.Join(dir, "selfcare", "token")
}
