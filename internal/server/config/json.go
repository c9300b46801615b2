package config

import (
	"encoding/json"
	"os"
	"time"

	"github.com/dpavlenko/liftlog/internal/flagx"
	"github.com/dpavlenko/liftlog/internal/timex"
)

// JsonConfig is an intermediate DTO used only for reading JSON configuration
// files. It uses timex.Duration for interval fields, which allows parsing
// both string values such as "168h" and integer nanoseconds. After
// unmarshalling, its fields are copied into the runtime Config struct.
type JsonConfig struct {
	EndpointAddr          string         `json:"endpoint_addr"`
	DatabaseDSN           string         `json:"database_dsn"`
	SecretKey             string         `json:"secret_key"`
	TokenValidityDuration timex.Duration `json:"token_validity_duration"`
	CatalogBaseURL        string         `json:"catalog_base_url"`
	CatalogAPIKey         string         `json:"catalog_api_key"`
	CatalogTimeout        timex.Duration `json:"catalog_timeout"`
}

// parseJson loads configuration values from a JSON file into the provided
// Config instance. The file path is taken from the -c or -config flags; if
// neither is set, no JSON file is loaded. If the file cannot be read or
// contains invalid JSON, the function panics: a half-applied config file is
// worse than an early crash.
func parseJson(config *Config) {

	jsonConfigFile := flagx.JsonConfigFlags()

	if jsonConfigFile == "" {
		return
	}

	c := &JsonConfig{}

	file, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}

	err = json.Unmarshal(file, c)
	if err != nil {
		panic(err)
	}

	if c.EndpointAddr != "" {
		config.EndpointAddr = c.EndpointAddr
	}
	if c.DatabaseDSN != "" {
		config.DatabaseDSN = c.DatabaseDSN
	}
	if c.SecretKey != "" {
		config.SecretKey = c.SecretKey
	}
	if c.TokenValidityDuration.Duration != 0 {
		config.TokenValidityDuration = time.Duration(c.TokenValidityDuration.Duration)
	}
	if c.CatalogBaseURL != "" {
		config.CatalogBaseURL = c.CatalogBaseURL
	}
	if c.CatalogAPIKey != "" {
		config.CatalogAPIKey = c.CatalogAPIKey
	}
	if c.CatalogTimeout.Duration != 0 {
		config.CatalogTimeout = time.Duration(c.CatalogTimeout.Duration)
	}
}
