// Package config assembles the process configuration once at startup.
// Components receive the resulting value by parameter; nothing reads the
// environment after Load returns.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/pelletier/go-toml/v2"
)

// Defaults for everything the environment and config file may override.
const (
	DefaultConnectionID    = "ProjectPortalConnection"
	DefaultConnectionName  = "Project Portal Connector"
	DefaultConnectionDesc  = "Connection to index Project Portal system"
	DefaultAppBaseURL      = "https://project.adata-ai.com"
	DefaultSchemaMaxWait   = 20 * time.Minute
	DefaultSchemaPollEvery = 30 * time.Second
)

// Config is the full process configuration. Secrets come from the
// environment (optionally via a .env file); connector settings may also
// come from a TOML file, with the environment winning.
type Config struct {
	// Service credentials for the client-credentials grant.
	TenantID     string
	ClientID     string
	ClientSecret string

	// Portal database settings.
	Database DatabaseConfig

	// AppBaseURL is the base for generated item deep-links, without a
	// trailing slash.
	AppBaseURL string

	// Connection identifies the external connection to provision and
	// fill.
	Connection ConnectionConfig

	// Schema controls the registration wait loop.
	Schema SchemaConfig
}

// DatabaseConfig holds the portal database settings.
type DatabaseConfig struct {
	Host     string
	Port     string
	Name     string
	User     string
	Password string
}

// ConnectionConfig identifies the external connection.
type ConnectionConfig struct {
	ID          string
	Name        string
	Description string
}

// SchemaConfig controls the registration wait loop.
type SchemaConfig struct {
	MaxWait      time.Duration
	PollInterval time.Duration
}

// fileConfig is the TOML shape of the optional config file. Durations
// are strings in time.ParseDuration form ("20m", "30s").
type fileConfig struct {
	AppBaseURL string `toml:"app_base_url"`

	Connection struct {
		ID          string `toml:"id"`
		Name        string `toml:"name"`
		Description string `toml:"description"`
	} `toml:"connection"`

	Schema struct {
		MaxWait      string `toml:"max_wait"`
		PollInterval string `toml:"poll_interval"`
	} `toml:"schema"`
}

// Load builds the configuration from defaults, the optional TOML file,
// and the environment, in that precedence order. If configPath is empty
// it defaults to ~/.portalsync/config.toml; a missing file is fine.
// A .env file in the working directory is loaded first when present.
func Load(configPath string) (*Config, error) {
	// Ignore a missing .env; real environments set variables directly.
	_ = godotenv.Load()

	cfg := &Config{
		AppBaseURL: DefaultAppBaseURL,
		Database: DatabaseConfig{
			Host: "localhost",
			Port: "5432",
		},
		Connection: ConnectionConfig{
			ID:          DefaultConnectionID,
			Name:        DefaultConnectionName,
			Description: DefaultConnectionDesc,
		},
		Schema: SchemaConfig{
			MaxWait:      DefaultSchemaMaxWait,
			PollInterval: DefaultSchemaPollEvery,
		},
	}

	if err := cfg.applyFile(configPath); err != nil {
		return nil, err
	}
	cfg.applyEnv()

	cfg.AppBaseURL = strings.TrimRight(cfg.AppBaseURL, "/")
	return cfg, nil
}

// applyFile merges the optional TOML file over the defaults.
func (c *Config) applyFile(path string) error {
	explicit := path != ""
	if !explicit {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil
		}
		path = filepath.Join(home, ".portalsync", "config.toml")
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) && !explicit {
			return nil
		}
		return fmt.Errorf("read config file: %w", err)
	}

	var fc fileConfig
	if err := toml.Unmarshal(data, &fc); err != nil {
		return fmt.Errorf("parse config file %s: %w", path, err)
	}

	if fc.AppBaseURL != "" {
		c.AppBaseURL = fc.AppBaseURL
	}
	if fc.Connection.ID != "" {
		c.Connection.ID = fc.Connection.ID
	}
	if fc.Connection.Name != "" {
		c.Connection.Name = fc.Connection.Name
	}
	if fc.Connection.Description != "" {
		c.Connection.Description = fc.Connection.Description
	}
	if fc.Schema.MaxWait != "" {
		d, err := time.ParseDuration(fc.Schema.MaxWait)
		if err != nil {
			return fmt.Errorf("parse schema.max_wait: %w", err)
		}
		c.Schema.MaxWait = d
	}
	if fc.Schema.PollInterval != "" {
		d, err := time.ParseDuration(fc.Schema.PollInterval)
		if err != nil {
			return fmt.Errorf("parse schema.poll_interval: %w", err)
		}
		c.Schema.PollInterval = d
	}
	return nil
}

// applyEnv merges environment variables over everything else.
func (c *Config) applyEnv() {
	setIfPresent(&c.TenantID, "TENANT_ID")
	setIfPresent(&c.ClientID, "CLIENT_ID")
	setIfPresent(&c.ClientSecret, "CLIENT_SECRET")

	setIfPresent(&c.Database.Host, "DB_HOST")
	setIfPresent(&c.Database.Port, "DB_PORT")
	setIfPresent(&c.Database.Name, "DB_NAME")
	setIfPresent(&c.Database.User, "DB_USER")
	setIfPresent(&c.Database.Password, "DB_PASSWORD")

	setIfPresent(&c.AppBaseURL, "APP_BASE_URL")
	setIfPresent(&c.Connection.ID, "CONNECTION_ID")
}

func setIfPresent(dst *string, key string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}
