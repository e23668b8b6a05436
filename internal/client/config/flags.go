package config

import (
	"flag"
	"fmt"
	"io"
	"time"

	"github.com/dmitrijs2005/assocportal/internal/flagx"
)

var allowedFlags = flagx.Allowed{
	"-a": true,
	"-g": true,
	"-d": true,
	"-e": true,
	"-t": true,
	"-i": true,
	"-m": true,
	"-l": true,
	"-p": false,
}

// parseFlags populates selected Config fields from command-line flags.
//
// Supported flags (short forms):
//
//	-a string     API root URL
//	-g string     gRPC session endpoint host:port
//	-d string     SQLite database path
//	-e string     entry route after an authorization failure
//	-t duration   request timeout (e.g. 10s)
//	-i int        online check interval in seconds
//	-p            reject locally expired credentials before sending
//	-m string     Prometheus listen address
//	-l string     log level
//
// args is filtered through flagx.FilterArgs first, so flags owned by other
// components are ignored.
func parseFlags(cfg *Config, args []string) error {
	fs := flag.NewFlagSet("assocportal", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	fs.StringVar(&cfg.APIURL, "a", cfg.APIURL, "API root URL")
	fs.StringVar(&cfg.GRPCAddr, "g", cfg.GRPCAddr, "gRPC session endpoint")
	fs.StringVar(&cfg.DatabasePath, "d", cfg.DatabasePath, "SQLite database path")
	fs.StringVar(&cfg.EntryRoute, "e", cfg.EntryRoute, "entry route after an authorization failure")
	fs.DurationVar(&cfg.RequestTimeout, "t", cfg.RequestTimeout, "request timeout")
	onlineCheckInterval := fs.Int("i", int(cfg.OnlineCheckInterval.Seconds()), "online check interval (in seconds)")
	fs.BoolVar(&cfg.PreflightExpiry, "p", cfg.PreflightExpiry, "reject locally expired credentials")
	fs.StringVar(&cfg.MetricsAddr, "m", cfg.MetricsAddr, "Prometheus listen address")
	fs.StringVar(&cfg.LogLevel, "l", cfg.LogLevel, "log level")

	if err := fs.Parse(flagx.FilterArgs(args, allowedFlags)); err != nil {
		return fmt.Errorf("flags: %w", err)
	}

	cfg.OnlineCheckInterval = time.Duration(*onlineCheckInterval) * time.Second
	return nil
}
