// Package config loads coursedb settings from the environment.
//
// Variables are read with the COURSEDB_ prefix, optionally from a .env file,
// and mapped into Config with "." nesting:
//
//	COURSEDB_DATABASE.PATH -> database.path -> Config.Database.Path
//	COURSEDB_LOG.LEVEL     -> log.level     -> Config.Log.Level
package config

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	// Side-effect import: loads a .env file into the process env, if present,
	// before any variable is read.
	_ "github.com/joho/godotenv/autoload"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/v2"
)

const envPrefix = "COURSEDB_"

type Config struct {
	Database DatabaseConfig `koanf:"database" validate:"required"`
	Log      LogConfig      `koanf:"log"`
}

type DatabaseConfig struct {
	Path string `koanf:"path" validate:"required"`
}

type LogConfig struct {
	Level string `koanf:"level"`
}

// Load reads the environment, applies defaults and validates the result.
func Load() (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(env.Provider(envPrefix, ".", func(s string) string {
		return strings.ToLower(strings.TrimPrefix(s, envPrefix))
	}), nil); err != nil {
		return nil, fmt.Errorf("load environment: %w", err)
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if cfg.Database.Path == "" {
		cfg.Database.Path = "coursedb.db"
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = "info"
	}

	if err := validator.New().Struct(cfg); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}

	return cfg, nil
}
