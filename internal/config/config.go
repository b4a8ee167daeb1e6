// Package config loads application configuration from environment variables.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// DefaultJWTSecret is the insecure placeholder secret used when
// NOTEKEEP_JWT_SECRET is not set. Deployments must override it; the server
// logs a warning when it is in use.
const DefaultJWTSecret = "change-me-in-production"

// allowedAlgorithms are the accepted JWT signing algorithm names.
var allowedAlgorithms = map[string]bool{
	"HS256": true,
	"HS384": true,
	"HS512": true,
}

// Config holds the application configuration loaded from environment variables.
type Config struct {
	ListenAddr     string
	DBPath         string
	JWTSecret      string
	JWTAlgorithm   string
	TokenTTL       time.Duration
	AllowedOrigins []string
}

// UsesDefaultSecret reports whether the deployment is still running on the
// placeholder signing secret.
func (c *Config) UsesDefaultSecret() bool {
	return c.JWTSecret == DefaultJWTSecret
}

// Load reads configuration from environment variables and returns a validated
// Config. All variables are optional with documented defaults:
// NOTEKEEP_LISTEN_ADDR (127.0.0.1:8000), NOTEKEEP_DB_PATH (notekeep.db),
// NOTEKEEP_JWT_SECRET (insecure placeholder), NOTEKEEP_JWT_ALGORITHM (HS256),
// NOTEKEEP_TOKEN_TTL_MINUTES (10080 = 7 days), NOTEKEEP_ALLOWED_ORIGINS (*).
func Load() (*Config, error) {
	listenAddr := "127.0.0.1:8000"
	if v, ok := os.LookupEnv("NOTEKEEP_LISTEN_ADDR"); ok {
		listenAddr = v
	}

	dbPath := "notekeep.db"
	if v, ok := os.LookupEnv("NOTEKEEP_DB_PATH"); ok {
		dbPath = v
	}

	secret := DefaultJWTSecret
	if v, ok := os.LookupEnv("NOTEKEEP_JWT_SECRET"); ok && v != "" {
		secret = v
	}

	algorithm := "HS256"
	if v, ok := os.LookupEnv("NOTEKEEP_JWT_ALGORITHM"); ok {
		if !allowedAlgorithms[v] {
			return nil, fmt.Errorf("NOTEKEEP_JWT_ALGORITHM has unsupported value %q: expected HS256, HS384, or HS512", v)
		}
		algorithm = v
	}

	tokenTTL := 7 * 24 * time.Hour
	if v, ok := os.LookupEnv("NOTEKEEP_TOKEN_TTL_MINUTES"); ok {
		minutes, err := strconv.Atoi(v)
		if err != nil || minutes <= 0 {
			return nil, fmt.Errorf("NOTEKEEP_TOKEN_TTL_MINUTES has invalid value %q: expected a positive integer", v)
		}
		tokenTTL = time.Duration(minutes) * time.Minute
	}

	allowedOrigins := []string{"*"}
	if v, ok := os.LookupEnv("NOTEKEEP_ALLOWED_ORIGINS"); ok && v != "" {
		allowedOrigins = nil
		for _, origin := range strings.Split(v, ",") {
			origin = strings.TrimSpace(origin)
			if origin != "" {
				allowedOrigins = append(allowedOrigins, origin)
			}
		}
		if allowedOrigins == nil {
			allowedOrigins = []string{"*"}
		}
	}

	return &Config{
		ListenAddr:     listenAddr,
		DBPath:         dbPath,
		JWTSecret:      secret,
		JWTAlgorithm:   algorithm,
		TokenTTL:       tokenTTL,
		AllowedOrigins: allowedOrigins,
	}, nil
}
