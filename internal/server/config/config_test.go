package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	return cfg
}

func TestValidate_Defaults(t *testing.T) {
	require.NoError(t, validConfig().Validate())
}

func TestValidate_MissingRequired(t *testing.T) {
	cfg := validConfig()
	cfg.DatabaseDSN = ""
	assert.Error(t, cfg.Validate())

	cfg = validConfig()
	cfg.SecretKey = ""
	assert.Error(t, cfg.Validate())

	cfg = validConfig()
	cfg.PrimaryEndpoint = ""
	assert.Error(t, cfg.Validate())
}

func TestValidate_EndpointsMustBeURLs(t *testing.T) {
	cfg := validConfig()
	cfg.PrimaryEndpoint = "not a url"
	assert.Error(t, cfg.Validate())

	cfg = validConfig()
	cfg.FallbackEndpoint = "not a url"
	assert.Error(t, cfg.Validate())
}

func TestValidate_FallbackIsOptional(t *testing.T) {
	cfg := validConfig()
	cfg.FallbackEndpoint = ""
	assert.NoError(t, cfg.Validate())
}
