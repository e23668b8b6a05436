package config

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/dmitrijs2005/assocportal/internal/flagx"
	"github.com/dmitrijs2005/assocportal/internal/timex"
)

// JsonConfig is a DTO used exclusively for JSON unmarshalling.
// It relies on timex.Duration so JSON can specify intervals either as
// strings like "3s" or as integer nanoseconds. Absent keys keep their
// current value.
type JsonConfig struct {
	APIURL              string          `json:"api_url"`
	GRPCAddr            string          `json:"grpc_addr"`
	DatabasePath        string          `json:"database_path"`
	EntryRoute          string          `json:"entry_route"`
	RequestTimeout      *timex.Duration `json:"request_timeout"`
	OnlineCheckInterval *timex.Duration `json:"online_check_interval"`
	PreflightExpiry     *bool           `json:"preflight_expiry"`
	MetricsAddr         string          `json:"metrics_addr"`
	LogLevel            string          `json:"log_level"`
}

// parseJson overlays cfg with the JSON file given via -c or -config in args.
// Without such a flag nothing happens.
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

	setString(&cfg.APIURL, jc.APIURL)
	setString(&cfg.GRPCAddr, jc.GRPCAddr)
	setString(&cfg.DatabasePath, jc.DatabasePath)
	setString(&cfg.EntryRoute, jc.EntryRoute)
	setString(&cfg.MetricsAddr, jc.MetricsAddr)
	setString(&cfg.LogLevel, jc.LogLevel)
	if jc.RequestTimeout != nil {
		cfg.RequestTimeout = jc.RequestTimeout.Duration
	}
	if jc.OnlineCheckInterval != nil {
		cfg.OnlineCheckInterval = jc.OnlineCheckInterval.Duration
	}
	if jc.PreflightExpiry != nil {
		cfg.PreflightExpiry = *jc.PreflightExpiry
	}
	return nil
}

func setString(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}
