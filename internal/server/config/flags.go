package config

import (
	"flag"
	"os"
	"time"

	"github.com/olegsm/imagewall/internal/flagx"
)

// parseFlags populates selected server Config fields from command-line flags.
//
// Supported flags (short forms):
//
//	-a string   HTTP bind address (e.g., ":8080")
//	-d string   PostgreSQL DSN
//	-s string   JWT HMAC secret key
//	-t int      access token validity, minutes
//	-u string   storage user
//	-p string   storage password
//	-b string   storage bucket name
//	-g string   storage region
//	-e string   primary file-host base endpoint
//	-x string   fallback file-host base endpoint
//
// The function first filters os.Args to only the flags it recognizes using
// flagx.FilterArgs, avoiding collisions with other components.
func parseFlags(config *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{"-a", "-d", "-s", "-t", "-u", "-p", "-b", "-g", "-e", "-x"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&config.EndpointAddr, "a", config.EndpointAddr, "address and port to run server")
	fs.StringVar(&config.DatabaseDSN, "d", config.DatabaseDSN, "database DSN")
	fs.StringVar(&config.SecretKey, "s", config.SecretKey, "secret key")

	accessTokenValidityDuration := fs.Int("t", int(config.AccessTokenValidityDuration.Minutes()), "access_token_validity_duration (in minutes)")

	fs.StringVar(&config.StorageUser, "u", config.StorageUser, "storage user")
	fs.StringVar(&config.StoragePassword, "p", config.StoragePassword, "storage password")
	fs.StringVar(&config.StorageBucket, "b", config.StorageBucket, "storage bucket")
	fs.StringVar(&config.StorageRegion, "g", config.StorageRegion, "storage region")
	fs.StringVar(&config.PrimaryEndpoint, "e", config.PrimaryEndpoint, "primary file-host base endpoint")
	fs.StringVar(&config.FallbackEndpoint, "x", config.FallbackEndpoint, "fallback file-host base endpoint")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	config.AccessTokenValidityDuration = time.Duration(*accessTokenValidityDuration) * time.Minute
}
