// Package config loads runtime configuration for the assocportal terminal
// client.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional JSON file (see parseJson) selected via flags: -c or -config.
//  3. ASSOC_* environment variables (see parseEnv).
//  4. Command-line flags (see parseFlags), which override earlier values.
//
// # JSON schema
//
// Durations use timex.Duration, so values can be either strings like "3s"
// or integer nanoseconds:
//
//	{
//	  "api_url": "http://localhost:3000",
//	  "grpc_addr": "localhost:9090",
//	  "database_path": "assocportal.db",
//	  "entry_route": "/login",
//	  "request_timeout": "10s",
//	  "online_check_interval": "3s",
//	  "preflight_expiry": false,
//	  "metrics_addr": ":9102",
//	  "log_level": "info"
//	}
package config
