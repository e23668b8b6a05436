package config

import (
	"fmt"
	"os"
	"time"

	"github.com/sethvargo/go-envconfig"
)

// Config holds runtime settings for the assocportal terminal client.
//
// Fields:
//   - APIURL: root of the REST API every request is resolved against.
//   - GRPCAddr: host:port of the optional gRPC session endpoint; empty disables it.
//   - DatabasePath: SQLite file holding the persisted credential.
//   - EntryRoute: where the user is sent after an authorization failure.
//   - RequestTimeout: upper bound of one HTTP round trip.
//   - OnlineCheckInterval: how often the client probes server reachability.
//   - PreflightExpiry: reject locally expired credentials before sending.
//   - MetricsAddr: listen address of the Prometheus endpoint; empty disables it.
//   - LogLevel: debug, info, warn or error.
type Config struct {
	APIURL              string        `env:"ASSOC_API_URL, overwrite"`
	GRPCAddr            string        `env:"ASSOC_GRPC_ADDR, overwrite"`
	DatabasePath        string        `env:"ASSOC_DATABASE_PATH, overwrite"`
	EntryRoute          string        `env:"ASSOC_ENTRY_ROUTE, overwrite"`
	RequestTimeout      time.Duration `env:"ASSOC_REQUEST_TIMEOUT, overwrite"`
	OnlineCheckInterval time.Duration `env:"ASSOC_ONLINE_CHECK_INTERVAL, overwrite"`
	PreflightExpiry     bool          `env:"ASSOC_PREFLIGHT_EXPIRY, overwrite"`
	MetricsAddr         string        `env:"ASSOC_METRICS_ADDR, overwrite"`
	LogLevel            string        `env:"ASSOC_LOG_LEVEL, overwrite"`
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.APIURL = "http://localhost:3000"
	c.GRPCAddr = ""
	c.DatabasePath = "assocportal.db"
	c.EntryRoute = "/login"
	c.RequestTimeout = 10 * time.Second
	c.OnlineCheckInterval = 3 * time.Second
	c.PreflightExpiry = false
	c.MetricsAddr = ""
	c.LogLevel = "info"
}

// Load builds a Config from defaults, then the JSON file named by -c/-config
// in args, then the environment, then the flags in args. Later sources take
// precedence over earlier ones.
func Load(args []string, lookuper envconfig.Lookuper) (*Config, error) {
	cfg := &Config{}
	cfg.LoadDefaults()

	if err := parseJson(cfg, args); err != nil {
		return nil, err
	}
	if err := parseEnv(cfg, lookuper); err != nil {
		return nil, err
	}
	if err := parseFlags(cfg, args); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadConfig loads the configuration of the running process and panics when
// any source is malformed.
func LoadConfig() *Config {
	cfg, err := Load(os.Args[1:], envconfig.OsLookuper())
	if err != nil {
		panic(fmt.Sprintf("config: failed to load configuration: %v", err))
	}
	return cfg
}
