// Package config handles configuration for the planner server, layering
// defaults, an optional JSON file, environment variables, and command-line
// flags (in that order of increasing precedence).
package config

import "time"

// Config holds runtime settings for the planner server.
//
// Fields:
//   - EndpointAddrHTTP: bind address of the web UI.
//   - EndpointAddrGRPC: bind address of the gRPC health endpoint.
//   - MongoURI / DatabaseName: document store connection.
//   - SecretKey: HMAC secret signing session tokens. Do not use the default in prod.
//   - SessionValidityDuration: lifetime of a login session.
//   - HealthCheckInterval: how often the store is probed for the health endpoint.
//   - SecureCookies: mark session and flash cookies Secure (HTTPS only).
type Config struct {
	EndpointAddrHTTP        string
	EndpointAddrGRPC        string
	MongoURI                string
	DatabaseName            string
	SecretKey               string
	SessionValidityDuration time.Duration
	HealthCheckInterval     time.Duration
	SecureCookies           bool
}

// LoadDefaults populates Config with local development defaults.
func (c *Config) LoadDefaults() {
	c.EndpointAddrHTTP = ":8080"
	c.EndpointAddrGRPC = ":50051"
	c.MongoURI = "mongodb://127.0.0.1:27017/"
	c.DatabaseName = "todolist_db"
	c.SecretKey = "dev-secret-key"
	c.SessionValidityDuration = 24 * time.Hour
	c.HealthCheckInterval = 15 * time.Second
	c.SecureCookies = false
}

// LoadConfig builds a Config from defaults, then the JSON file named by
// -c/-config, then the environment (including a .env file), then flags.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseEnv(cfg)
	parseFlags(cfg)
	return cfg
}

// LoadEnv builds a Config from defaults and the environment only, for tools
// that parse their own command line.
func LoadEnv() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseEnv(cfg)
	return cfg
}
