package main

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

type ServerConfig struct {
	Port          string   `yaml:"port" validate:"required,numeric"`
	SecureCookies bool     `yaml:"secureCookies"`
	AllowOrigins  []string `yaml:"allowOrigins" validate:"dive,url"`
	// ShareBaseURL prefixes generated share links: <ShareBaseURL>?quiz=<shareId>
	ShareBaseURL string `yaml:"shareBaseUrl" validate:"required,url"`
	// SessionIdleTimeout drops editing sessions nobody has used for that long.
	SessionIdleTimeout time.Duration `yaml:"sessionIdleTimeout" validate:"gt=0"`
}

type DatabaseConfig struct {
	Path     string `yaml:"path" validate:"required"`
	SeedFile string `yaml:"seedFile"`
}

type AuthConfig struct {
	Password string `yaml:"password" validate:"required"`
}

type AutosaveConfig struct {
	Enabled     bool          `yaml:"enabled"`
	Delay       time.Duration `yaml:"delay" validate:"gt=0"`
	SaveTimeout time.Duration `yaml:"saveTimeout" validate:"gt=0"`
}

type Config struct {
	LogLevel string         `yaml:"logLevel" validate:"omitempty,oneof=debug info warn error"`
	Server   ServerConfig   `yaml:"server"`
	Database DatabaseConfig `yaml:"database"`
	Auth     AuthConfig     `yaml:"auth"`
	Autosave AutosaveConfig `yaml:"autosave"`
}

func DefaultConfig() Config {
	return Config{
		LogLevel: "info",
		Server: ServerConfig{
			Port:               "8080",
			AllowOrigins:       []string{"https://vmx-io.github.io"},
			ShareBaseURL:       "http://localhost:8080/",
			SessionIdleTimeout: 12 * time.Hour,
		},
		Database: DatabaseConfig{
			Path:     "quiz.db",
			SeedFile: "data/quizzes.json",
		},
		Auth: AuthConfig{Password: "banyan"},
		Autosave: AutosaveConfig{
			Enabled:     true,
			Delay:       time.Second,
			SaveTimeout: 10 * time.Second,
		},
	}
}

// LoadConfig reads an optional YAML file on top of the defaults, applies
// environment overrides and validates the result. A missing file is not an
// error.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()

	if path != "" {
		raw, err := os.ReadFile(path)
		switch {
		case err == nil:
			if err := yaml.Unmarshal(raw, &cfg); err != nil {
				return Config{}, fmt.Errorf("parse config %s: %w", path, err)
			}
		case errors.Is(err, os.ErrNotExist):
		default:
			return Config{}, fmt.Errorf("read config %s: %w", path, err)
		}
	}

	if err := applyEnv(&cfg); err != nil {
		return Config{}, err
	}

	if err := validator.New().Struct(cfg); err != nil {
		return Config{}, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

func applyEnv(cfg *Config) error {
	if v, ok := os.LookupEnv("PORT"); ok && v != "" {
		cfg.Server.Port = v
	}
	if v, ok := os.LookupEnv("SECURE_COOKIES"); ok {
		cfg.Server.SecureCookies = v == "true"
	}
	if v, ok := os.LookupEnv("SHARE_BASE_URL"); ok && v != "" {
		cfg.Server.ShareBaseURL = v
	}
	if v, ok := os.LookupEnv("DB_PATH"); ok && v != "" {
		cfg.Database.Path = v
	}
	if v, ok := os.LookupEnv("QUIZ_PASSWORD"); ok && v != "" {
		cfg.Auth.Password = v
	}
	if v, ok := os.LookupEnv("LOG_LEVEL"); ok && v != "" {
		cfg.LogLevel = v
	}
	if v, ok := os.LookupEnv("AUTOSAVE_ENABLED"); ok {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("AUTOSAVE_ENABLED: %w", err)
		}
		cfg.Autosave.Enabled = b
	}
	if v, ok := os.LookupEnv("SESSION_IDLE_TIMEOUT"); ok {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("SESSION_IDLE_TIMEOUT: %w", err)
		}
		cfg.Server.SessionIdleTimeout = d
	}
	if v, ok := os.LookupEnv("AUTOSAVE_DELAY"); ok {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("AUTOSAVE_DELAY: %w", err)
		}
		cfg.Autosave.Delay = d
	}
	return nil
}
