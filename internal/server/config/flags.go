package config

import (
	"flag"
	"os"
	"time"

	"github.com/dpavlenko/liftlog/internal/flagx"
)

// parseFlags populates selected server Config fields from command-line flags.
//
// Supported flags (short forms):
//
//	-a string   HTTP bind address (e.g., ":4000")
//	-d string   PostgreSQL DSN
//	-s string   JWT HMAC secret key
//	-t int      bearer token validity, hours
//	-u string   upstream catalog API base URL
//	-k string   upstream catalog API key
//
// The function first filters os.Args to only the flags it recognizes using
// flagx.FilterArgs, avoiding collisions with other components.
func parseFlags(config *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{"-a", "-d", "-s", "-t", "-u", "-k"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&config.EndpointAddr, "a", config.EndpointAddr, "address and port to run server")
	fs.StringVar(&config.DatabaseDSN, "d", config.DatabaseDSN, "database DSN")
	fs.StringVar(&config.SecretKey, "s", config.SecretKey, "secret key")

	tokenValidity := fs.Int("t", int(config.TokenValidityDuration.Hours()), "token validity duration (in hours)")

	fs.StringVar(&config.CatalogBaseURL, "u", config.CatalogBaseURL, "catalog API base URL")
	fs.StringVar(&config.CatalogAPIKey, "k", config.CatalogAPIKey, "catalog API key")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	config.TokenValidityDuration = time.Duration(*tokenValidity) * time.Hour
}
