package config

import (
	"fmt"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds the CLI configuration loaded from environment variables.
type Config struct {
	AppName    string `mapstructure:"app_name"`
	LogLevel   string `mapstructure:"log_level"`
	ClientFile string `mapstructure:"client_file"`
	StateStore string `mapstructure:"state_store"`
}

// Load reads configuration from environment variables and an optional .env
// file.
func Load() (*Config, error) {
	_ = godotenv.Load(".env")

	v := viper.New()

	v.SetEnvPrefix("offers")
	v.SetDefault("app_name", "offers-cli")
	v.SetDefault("log_level", "info")
	v.SetDefault("client_file", "client.json")
	v.SetDefault("state_store", "file")

	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	cfg.StateStore = strings.TrimSpace(strings.ToLower(cfg.StateStore))
	if cfg.StateStore == "" {
		cfg.StateStore = "file"
	}
	if strings.TrimSpace(cfg.ClientFile) == "" {
		return nil, fmt.Errorf("client_file must not be empty")
	}

	return &cfg, nil
}
