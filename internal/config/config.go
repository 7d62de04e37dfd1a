// Package config provides functionality for managing configuration options
// for the application using command-line flags and environment variables.
package config

import (
	"encoding/json"
	"flag"
	"log"
	"os"
)

// Options holds the configuration values for the application.
type Options struct {
	// Port defines the server's listening address (ip:port).
	Port string

	// DatabaseDSN holds the database connection string for the application.
	DatabaseDSN string

	// JWTSecret is the symmetric signing secret for issued tokens.
	// Must be non-empty; the server refuses to start without it.
	JWTSecret string

	// JWTIssuer is the issuer tag embedded in and required of tokens.
	JWTIssuer string

	// JWTAudience is the audience tag embedded in and required of tokens.
	JWTAudience string

	// CORSOrigin is the web client origin allowed by CORS.
	CORSOrigin string

	// Config is the path to the Config file.
	Config string
}

// options holds the current configuration values.
var options = &Options{}

// init initializes command-line flags and sets default values.
func init() {
	flag.StringVar(&options.Port, "a", "localhost:8080", "run on ip:port server")
	flag.StringVar(&options.DatabaseDSN, "d", "", "db address")
	flag.StringVar(&options.JWTIssuer, "issuer", "taskkeeper", "token issuer tag")
	flag.StringVar(&options.JWTAudience, "audience", "taskkeeper-client", "token audience tag")
	flag.StringVar(&options.CORSOrigin, "origin", "http://localhost:3000", "allowed CORS origin")
	flag.StringVar(&options.Config, "config", "config.json", "path to config file")
	flag.StringVar(&options.Config, "c", "config.json", "path to config file (shorthand)")
}

// Parse parses the command-line flags and environment variables to set
// configuration values. It returns a pointer to the Options struct containing
// the parsed configuration values. The signing secret is intentionally not a
// flag; it is read from the config file or the JWT_SECRET environment variable.
func Parse() *Options {
	flag.Parse()

	// Override flags with environment variables if set
	if configPath := os.Getenv("CONFIG"); configPath != "" {
		options.Config = configPath
	}

	if options.Config != "" {
		if _, err := os.Stat(options.Config); err == nil {
			data, err := os.ReadFile(options.Config)
			if err != nil {
				log.Fatalf("error while reading config file: %v", err)
			}
			if err := json.Unmarshal(data, options); err != nil {
				log.Fatalf("error while parsing config file: %v", err)
			}
		}
	}

	if serverAddress := os.Getenv("SERVER_ADDRESS"); serverAddress != "" {
		options.Port = serverAddress
	}
	if dsn := os.Getenv("DATABASE_DSN"); dsn != "" {
		options.DatabaseDSN = dsn
	}
	if secret := os.Getenv("JWT_SECRET"); secret != "" {
		options.JWTSecret = secret
	}
	if issuer := os.Getenv("JWT_ISSUER"); issuer != "" {
		options.JWTIssuer = issuer
	}
	if audience := os.Getenv("JWT_AUDIENCE"); audience != "" {
		options.JWTAudience = audience
	}
	if origin := os.Getenv("CORS_ORIGIN"); origin != "" {
		options.CORSOrigin = origin
	}

	return options
}
