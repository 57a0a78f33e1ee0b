// Package config loads the Firelens configuration from file and
// environment variables.
package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"
)

// Config represents the application configuration
type Config struct {
	Query  QueryConfig `mapstructure:"query"`
	Output string      `mapstructure:"output"`
	Debug  bool        `mapstructure:"debug"`
}

// QueryConfig contains the query engine defaults
type QueryConfig struct {
	DefaultCollection string `mapstructure:"default_collection"`
	DefaultLimit      int    `mapstructure:"default_limit"`
}

// Load loads configuration from file and environment variables
func Load() (*Config, error) {
	// Load .env file if it exists (for local development)
	if err := loadEnvFile(); err != nil {
		log.Debug().Err(err).Msg("No .env file loaded")
	}

	viper.SetConfigName("firelens")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("./config")
	viper.AddConfigPath("$HOME/.firelens")

	setDefaults()

	viper.AutomaticEnv()
	viper.SetEnvPrefix("FIRELENS")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// Config file is optional; env vars and defaults are enough
	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	cfg.validate()

	return &cfg, nil
}

func setDefaults() {
	viper.SetDefault("query.default_collection", "documents")
	viper.SetDefault("query.default_limit", 25)
	viper.SetDefault("output", "table")
	viper.SetDefault("debug", false)
}

// validate normalizes out-of-range values instead of failing: the engine
// always needs a usable default limit.
func (c *Config) validate() {
	if c.Query.DefaultLimit <= 0 {
		log.Debug().
			Int("default_limit", c.Query.DefaultLimit).
			Msg("Invalid default limit, resetting to 25")
		c.Query.DefaultLimit = 25
	}
	if c.Query.DefaultCollection == "" {
		c.Query.DefaultCollection = "documents"
	}
}

func loadEnvFile() error {
	if _, err := os.Stat(".env"); err != nil {
		return err
	}
	return godotenv.Load()
}
