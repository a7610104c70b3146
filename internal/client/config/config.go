// Package config handles configuration for the client component,
// including defaults, JSON overlay, and command-line flags.
package config

import "time"

// Config holds runtime settings for the Imagewall client.
//
// Fields:
//   - ServerEndpointAddr: base URL of the gallery server.
//   - DatabaseDSN: sqlite path for the durable caches.
//   - RefreshInterval: period of the background list refresh.
//   - PageLimit: page size requested from the server.
type Config struct {
	ServerEndpointAddr string
	DatabaseDSN        string
	RefreshInterval    time.Duration
	PageLimit          int
}

// LoadDefaults populates Config with sensible development defaults.
func (c *Config) LoadDefaults() {
	c.ServerEndpointAddr = "http://localhost:8080"
	c.DatabaseDSN = "imagewall.db"
	c.RefreshInterval = 45 * time.Second
	c.PageLimit = 60
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
