// Package config handles configuration for the server component,
// including defaults, JSON overlay, and command-line flags.
package config

import (
	"errors"
	"time"
)

// Config holds runtime settings for the LiftLog server.
//
// Fields:
//   - EndpointAddr: bind address for the public HTTP endpoint.
//   - DatabaseDSN: PostgreSQL DSN (pgx).
//   - SecretKey: HMAC secret for signing JWTs (HS256). Required.
//   - TokenValidityDuration: bearer token lifetime.
//   - CatalogBaseURL / CatalogAPIKey: upstream exercise API settings.
//   - CatalogTimeout: per-request budget for upstream catalog calls.
type Config struct {
	EndpointAddr          string
	DatabaseDSN           string
	SecretKey             string
	TokenValidityDuration time.Duration
	CatalogBaseURL        string
	CatalogAPIKey         string
	CatalogTimeout        time.Duration
}

// LoadDefaults populates Config with development defaults. The JWT secret
// and database DSN have no default on purpose: both must be provided.
func (c *Config) LoadDefaults() {
	c.EndpointAddr = ":4000"
	c.DatabaseDSN = ""
	c.SecretKey = ""
	c.TokenValidityDuration = 7 * 24 * time.Hour
	c.CatalogBaseURL = "https://api.api-ninjas.com/v1/exercises"
	c.CatalogAPIKey = ""
	c.CatalogTimeout = 5 * time.Second
}

// Validate reports configuration the server must not start with.
func (c *Config) Validate() error {
	if c.SecretKey == "" {
		return errors.New("secret key is not configured")
	}
	if c.DatabaseDSN == "" {
		return errors.New("database DSN is not configured")
	}
	if c.TokenValidityDuration <= 0 {
		return errors.New("token validity duration must be positive")
	}
	return nil
}

// LoadConfig builds a Config by applying defaults, then overlaying values
// from an optional JSON file and finally from command-line flags.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseFlags(cfg)
	return cfg
}
