// Package config handles configuration for the development API server,
// including defaults, JSON overlay, environment and command-line flags.
package config

import (
	"fmt"
	"os"
	"time"

	"github.com/sethvargo/go-envconfig"
)

// Config holds runtime settings for the assocportal API server.
//
// Fields:
//   - HTTPAddr: bind address of the REST API.
//   - GRPCAddr: bind address of the gRPC session endpoint; empty disables it.
//   - DatabaseDSN: PostgreSQL DSN (pgx). Empty keeps users in memory.
//   - SecretKey: HMAC secret for signing JWTs (HS256). Do not use the default in prod.
//   - AccessTokenValidityDuration: lifetime of issued access tokens.
//   - ResetCodeValidityDuration: lifetime of password reset codes.
//   - LogLevel: debug, info, warn or error.
type Config struct {
	HTTPAddr                    string        `env:"ASSOC_SERVER_HTTP_ADDR, overwrite"`
	GRPCAddr                    string        `env:"ASSOC_SERVER_GRPC_ADDR, overwrite"`
	DatabaseDSN                 string        `env:"ASSOC_SERVER_DATABASE_DSN, overwrite"`
	SecretKey                   string        `env:"ASSOC_SERVER_SECRET_KEY, overwrite"`
	AccessTokenValidityDuration time.Duration `env:"ASSOC_SERVER_ACCESS_TOKEN_VALIDITY, overwrite"`
	ResetCodeValidityDuration   time.Duration `env:"ASSOC_SERVER_RESET_CODE_VALIDITY, overwrite"`
	LogLevel                    string        `env:"ASSOC_SERVER_LOG_LEVEL, overwrite"`
}

// LoadDefaults populates Config with development defaults.
// NOTE: the secret is insecure and must be overridden outside development.
func (c *Config) LoadDefaults() {
	c.HTTPAddr = ":3000"
	c.GRPCAddr = ":9090"
	c.DatabaseDSN = ""
	c.SecretKey = "secretKey"
	c.AccessTokenValidityDuration = 15 * time.Minute
	c.ResetCodeValidityDuration = 30 * time.Minute
	c.LogLevel = "info"
}

// Load builds a Config from defaults, then the JSON file named by -c/-config
// in args, then the environment, then the flags in args.
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
