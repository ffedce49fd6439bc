package commands

import (
	"fmt"

	"github.com/mobile-next/touchemu/config"
	"github.com/mobile-next/touchemu/emulator"
)

// ConfigOverrides are command line values applied on top of the config file.
// Nil fields keep the file value.
type ConfigOverrides struct {
	ShowTouches      *bool
	MultiTouchOffset *float64
	IgnoreTags       *string
	Modifier         *string
}

// ResolveConfig loads the config file at path and applies overrides.
func ResolveConfig(path string, overrides ConfigOverrides) (emulator.Config, error) {
	cfg, err := config.Load(path)
	if err != nil {
		return cfg, err
	}

	if overrides.ShowTouches != nil {
		cfg.ShowTouches = *overrides.ShowTouches
	}
	if overrides.MultiTouchOffset != nil {
		if *overrides.MultiTouchOffset < 0 {
			return cfg, fmt.Errorf("multi-touch offset must be non-negative, got %g", *overrides.MultiTouchOffset)
		}
		cfg.MultiTouchOffset = *overrides.MultiTouchOffset
	}
	if overrides.IgnoreTags != nil {
		cfg.IgnoreTags = config.SplitTags(*overrides.IgnoreTags)
	}
	if overrides.Modifier != nil {
		m, err := emulator.ParseModifier(*overrides.Modifier)
		if err != nil {
			return cfg, err
		}
		cfg.Modifier = m
	}

	return cfg, nil
}

// ConfigCommand shows the effective configuration
func ConfigCommand(path string, overrides ConfigOverrides) *CommandResponse {
	cfg, err := ResolveConfig(path, overrides)
	if err != nil {
		return NewErrorResponse(fmt.Errorf("error loading config: %w", err))
	}
	return NewSuccessResponse(cfg)
}
