package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// dotEnvFiles are loaded before reading the environment. Missing files are
// fine; variables already set in the process environment win.
var dotEnvFiles = []string{".env"}

// parseEnv overlays values from environment variables:
//
//	HTTP_ADDR, GRPC_ADDR, MONGO_URI, DB_NAME, SECRET_KEY,
//	SESSION_TTL (Go duration), HEALTH_CHECK_INTERVAL (Go duration),
//	COOKIE_SECURE (bool)
//
// Unparseable durations and booleans are ignored.
func parseEnv(config *Config) {
	for _, f := range dotEnvFiles {
		_ = godotenv.Load(f)
	}

	lookupString(&config.EndpointAddrHTTP, "HTTP_ADDR")
	lookupString(&config.EndpointAddrGRPC, "GRPC_ADDR")
	lookupString(&config.MongoURI, "MONGO_URI")
	lookupString(&config.DatabaseName, "DB_NAME")
	lookupString(&config.SecretKey, "SECRET_KEY")
	lookupDuration(&config.SessionValidityDuration, "SESSION_TTL")
	lookupDuration(&config.HealthCheckInterval, "HEALTH_CHECK_INTERVAL")

	if v, ok := os.LookupEnv("COOKIE_SECURE"); ok {
		if b, err := strconv.ParseBool(v); err == nil {
			config.SecureCookies = b
		}
	}
}

func lookupString(dst *string, key string) {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		*dst = v
	}
}

func lookupDuration(dst *time.Duration, key string) {
	v, ok := os.LookupEnv(key)
	if !ok {
		return
	}
	if d, err := time.ParseDuration(v); err == nil {
		*dst = d
	}
}
