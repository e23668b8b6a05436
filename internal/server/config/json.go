package config

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/dmitrijs2005/assocportal/internal/flagx"
	"github.com/dmitrijs2005/assocportal/internal/timex"
)

// JsonConfig mirrors Config for JSON unmarshalling. Durations accept both
// strings such as "15m" and integer nanoseconds.
type JsonConfig struct {
	HTTPAddr                    string          `json:"http_addr"`
	GRPCAddr                    *string         `json:"grpc_addr"`
	DatabaseDSN                 string          `json:"database_dsn"`
	SecretKey                   string          `json:"secret_key"`
	AccessTokenValidityDuration *timex.Duration `json:"access_token_validity_duration"`
	ResetCodeValidityDuration   *timex.Duration `json:"reset_code_validity_duration"`
	LogLevel                    string          `json:"log_level"`
}

// parseJson overlays cfg with the JSON file given via -c or -config.
// grpc_addr may be set to "" to disable the gRPC endpoint.
func parseJson(cfg *Config, args []string) error {
	path := flagx.ConfigFilePath(args)
	if path == "" {
		return nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}

	var jc JsonConfig
	if err := json.Unmarshal(data, &jc); err != nil {
		return fmt.Errorf("parse config file %s: %w", path, err)
	}

	if jc.HTTPAddr != "" {
		cfg.HTTPAddr = jc.HTTPAddr
	}
	if jc.GRPCAddr != nil {
		cfg.GRPCAddr = *jc.GRPCAddr
	}
	if jc.DatabaseDSN != "" {
		cfg.DatabaseDSN = jc.DatabaseDSN
	}
	if jc.SecretKey != "" {
		cfg.SecretKey = jc.SecretKey
	}
	if jc.AccessTokenValidityDuration != nil {
		cfg.AccessTokenValidityDuration = jc.AccessTokenValidityDuration.Duration
	}
	if jc.ResetCodeValidityDuration != nil {
		cfg.ResetCodeValidityDuration = jc.ResetCodeValidityDuration.Duration
	}
	if jc.LogLevel != "" {
		cfg.LogLevel = jc.LogLevel
	}
	return nil
}
