package config

import (
	"encoding/json"
	"os"
	"time"

	"github.com/olegsm/imagewall/internal/flagx"
	"github.com/olegsm/imagewall/internal/timex"
)

// JsonConfig is the intermediate DTO for reading JSON configuration files.
type JsonConfig struct {
	ServerEndpointAddr string         `json:"server_endpoint_addr"`
	DatabaseDSN        string         `json:"database_dsn"`
	RefreshInterval    timex.Duration `json:"refresh_interval"`
	PageLimit          int            `json:"page_limit"`
}

// parseJson loads configuration values from the JSON file named by the
// -c/-config flags into the provided Config. Nothing is loaded when the
// flags are absent.
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

	if err := json.Unmarshal(file, c); err != nil {
		panic(err)
	}

	if c.ServerEndpointAddr != "" {
		config.ServerEndpointAddr = c.ServerEndpointAddr
	}
	if c.DatabaseDSN != "" {
		config.DatabaseDSN = c.DatabaseDSN
	}
	if c.RefreshInterval.Duration != 0 {
		config.RefreshInterval = time.Duration(c.RefreshInterval.Duration)
	}
	if c.PageLimit != 0 {
		config.PageLimit = c.PageLimit
	}
}
