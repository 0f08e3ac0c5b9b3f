package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config holds the application's configuration.
type Config struct {
	Server struct {
		Port string `yaml:"port"`
		Mode string `yaml:"mode"` // "debug" or "release"
	} `yaml:"server"`
	Database struct {
		URL string `yaml:"url"`
	} `yaml:"database"`
	Auth struct {
		JWTSecret          string `yaml:"jwt_secret"`
		TokenTTLHours      int    `yaml:"token_ttl_hours"`
		LoginMaxAttempts   int    `yaml:"login_max_attempts"`
		LoginWindowMinutes int    `yaml:"login_window_minutes"`
	} `yaml:"auth"`
	CORS struct {
		AllowedOrigins []string `yaml:"allowed_origins"`
	} `yaml:"cors"`
	Uploads struct {
		Dir string `yaml:"dir"`
	} `yaml:"uploads"`
}

// LoadConfig reads configuration from the specified YAML file and applies
// environment overrides for values that should not live in the file.
func LoadConfig(configPath string) (*Config, error) {
	config := &Config{}

	file, err := os.Open(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open config file: %w", err)
	}
	defer file.Close()

	decoder := yaml.NewDecoder(file)
	if err := decoder.Decode(config); err != nil {
		return nil, fmt.Errorf("failed to decode config file: %w", err)
	}

	config.applyEnv()
	config.applyDefaults()

	if err := config.validate(); err != nil {
		return nil, err
	}

	return config, nil
}

func (c *Config) applyEnv() {
	if v := os.Getenv("PORT"); v != "" {
		c.Server.Port = v
	}
	if v := os.Getenv("DATABASE_URL"); v != "" {
		c.Database.URL = v
	}
	if v := os.Getenv("JWT_SECRET"); v != "" {
		c.Auth.JWTSecret = v
	}
	if v := os.Getenv("JWT_TTL_HOURS"); v != "" {
		if hours, err := strconv.Atoi(v); err == nil && hours > 0 {
			c.Auth.TokenTTLHours = hours
		}
	}
	if v := os.Getenv("FRONTEND_URLS"); v != "" {
		origins := make([]string, 0)
		for _, o := range strings.Split(v, ",") {
			if o = strings.TrimSpace(o); o != "" {
				origins = append(origins, o)
			}
		}
		c.CORS.AllowedOrigins = origins
	}
}

func (c *Config) applyDefaults() {
	if c.Server.Port == "" {
		c.Server.Port = "5001"
	}
	if c.Server.Mode == "" {
		c.Server.Mode = "release"
	}
	if c.Auth.TokenTTLHours == 0 {
		c.Auth.TokenTTLHours = 7 * 24
	}
	if c.Auth.LoginMaxAttempts == 0 {
		c.Auth.LoginMaxAttempts = 5
	}
	if c.Auth.LoginWindowMinutes == 0 {
		c.Auth.LoginWindowMinutes = 5
	}
	if c.Uploads.Dir == "" {
		c.Uploads.Dir = "uploads"
	}
}

// validate checks the invariants that must hold before the server can start.
// The JWT secret is required: without it the token service must refuse to
// issue tokens, so startup fails here instead.
func (c *Config) validate() error {
	if c.Auth.JWTSecret == "" {
		return errors.New("jwt secret is not configured (set auth.jwt_secret or JWT_SECRET)")
	}
	if c.Database.URL == "" {
		return errors.New("database url is not configured (set database.url or DATABASE_URL)")
	}
	return nil
}
