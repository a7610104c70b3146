package config

import (
	"encoding/json"
	"os"
	"time"

	"github.com/olegsm/imagewall/internal/flagx"
	"github.com/olegsm/imagewall/internal/timex"
)

// JsonConfig is the intermediate DTO for reading JSON configuration files.
// It uses timex.Duration for interval fields, which allows parsing both
// string values such as "1h" and integer nanoseconds. After unmarshalling,
// its fields are copied into the runtime Config struct.
type JsonConfig struct {
	EndpointAddr                string         `json:"endpoint_addr"`
	DatabaseDSN                 string         `json:"database_dsn"`
	SecretKey                   string         `json:"secret_key"`
	AccessTokenValidityDuration timex.Duration `json:"access_token_validity_duration"`
	StorageUser                 string         `json:"storage_user"`
	StoragePassword             string         `json:"storage_password"`
	StorageBucket               string         `json:"storage_bucket"`
	StorageRegion               string         `json:"storage_region"`
	PrimaryEndpoint             string         `json:"primary_endpoint"`
	FallbackEndpoint            string         `json:"fallback_endpoint"`
}

// parseJson loads configuration values from the JSON file named by the
// -c/-config flags into the provided Config. Nothing is loaded when the
// flags are absent. Read or decode failures panic: a config file that was
// explicitly pointed at must be usable.
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

	if c.EndpointAddr != "" {
		config.EndpointAddr = c.EndpointAddr
	}
	if c.DatabaseDSN != "" {
		config.DatabaseDSN = c.DatabaseDSN
	}
	if c.SecretKey != "" {
		config.SecretKey = c.SecretKey
	}
	if c.AccessTokenValidityDuration.Duration != 0 {
		config.AccessTokenValidityDuration = time.Duration(c.AccessTokenValidityDuration.Duration)
	}
	if c.StorageUser != "" {
		config.StorageUser = c.StorageUser
	}
	if c.StoragePassword != "" {
		config.StoragePassword = c.StoragePassword
	}
	if c.StorageBucket != "" {
		config.StorageBucket = c.StorageBucket
	}
	if c.StorageRegion != "" {
		config.StorageRegion = c.StorageRegion
	}
	if c.PrimaryEndpoint != "" {
		config.PrimaryEndpoint = c.PrimaryEndpoint
	}
	if c.FallbackEndpoint != "" {
		config.FallbackEndpoint = c.FallbackEndpoint
	}
}
