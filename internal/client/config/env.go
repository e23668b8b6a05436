package config

import (
	"context"
	"fmt"

	"github.com/sethvargo/go-envconfig"
)

// parseEnv overlays cfg with the ASSOC_* environment variables that are set.
// Unset variables leave the current value alone.
func parseEnv(cfg *Config, lookuper envconfig.Lookuper) error {
	if err := envconfig.ProcessWith(context.Background(), &envconfig.Config{
		Target:   cfg,
		Lookuper: lookuper,
	}); err != nil {
		return fmt.Errorf("environment: %w", err)
	}
	return nil
}
