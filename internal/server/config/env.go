package config

import (
	"context"
	"fmt"

	"github.com/sethvargo/go-envconfig"
)

func parseEnv(cfg *Config, lookuper envconfig.Lookuper) error {
	if err := envconfig.ProcessWith(context.Background(), &envconfig.Config{
		Target:   cfg,
		Lookuper: lookuper,
	}); err != nil {
		return fmt.Errorf("environment: %w", err)
	}
	return nil
}
