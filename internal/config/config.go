// Package config loads application configuration from environment variables.
package config

import (
	"log"
	"os"
	"strings"
)

// Config holds all runtime configuration values. Each field corresponds to
// an environment variable read once at process start.
type Config struct {
	Env         string   // application environment (e.g. "dev", "prod")
	Port        string   // HTTP port to listen on
	DBUser      string   // database username
	DBPass      string   // database password (optional)
	DBHost      string   // database host address
	DBPort      string   // database port number
	DBName      string   // database name
	CORSOrigins []string // origins allowed to call the API with credentials
}

// Load reads configuration from the environment. Required variables are
// enforced by must(); missing values abort startup with a fatal log message.
func Load() Config {
	return Config{
		Env:         getenv("APP_ENV", "dev"),
		Port:        getenv("APP_PORT", "8000"),
		DBUser:      must("DB_USER"),
		DBPass:      os.Getenv("DB_PASSWORD"),
		DBHost:      must("DB_HOST"),
		DBPort:      getenv("DB_PORT", "3306"),
		DBName:      must("DB_NAME"),
		CORSOrigins: splitList(getenv("CORS_ORIGINS", "*")),
	}
}

// must retrieves a required environment variable or exits the process.
func must(key string) string {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		log.Fatalf("missing required env var: %s", key)
	}
	return v
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

// splitList parses a comma-separated env value into trimmed entries.
func splitList(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
