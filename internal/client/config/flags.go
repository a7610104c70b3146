package config

import (
	"flag"
	"os"
	"time"

	"github.com/olegsm/imagewall/internal/flagx"
)

// parseFlags populates selected client Config fields from command-line flags.
//
// Supported flags (short forms):
//
//	-a string   server base URL
//	-d string   sqlite cache path
//	-r int      background refresh interval, seconds
//	-l int      page size
func parseFlags(config *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{"-a", "-d", "-r", "-l"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&config.ServerEndpointAddr, "a", config.ServerEndpointAddr, "server base URL")
	fs.StringVar(&config.DatabaseDSN, "d", config.DatabaseDSN, "cache database path")

	refreshInterval := fs.Int("r", int(config.RefreshInterval.Seconds()), "refresh_interval (in seconds)")

	fs.IntVar(&config.PageLimit, "l", config.PageLimit, "page size")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	config.RefreshInterval = time.Duration(*refreshInterval) * time.Second
}
