// Package config loads emulator settings from an ini file.
//
//	[emulator]
//	show_touches = true
//	multi_touch_offset = 75
//	ignore_tags = INPUT, TEXTAREA, SELECT
//	modifier = shift
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/mobile-next/touchemu/emulator"
	"github.com/mobile-next/touchemu/utils"
	"gopkg.in/ini.v1"
)

const (
	sectionName = "emulator"
	fileName    = ".touchemu.ini"
)

// DefaultPath returns ~/.touchemu.ini, or an empty string when the home
// directory is unknown.
func DefaultPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, fileName)
}

// Load reads path on top of the defaults. A missing file is not an error.
func Load(path string) (emulator.Config, error) {
	cfg := emulator.DefaultConfig()
	if path == "" {
		return cfg, nil
	}

	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		utils.Verbose("config file %s not found, using defaults", path)
		return cfg, nil
	}

	file, err := ini.Load(path)
	if err != nil {
		return cfg, fmt.Errorf("failed to read config %s: %w", path, err)
	}

	return apply(cfg, file.Section(sectionName))
}

// Parse reads ini data on top of the defaults.
func Parse(data []byte) (emulator.Config, error) {
	cfg := emulator.DefaultConfig()

	file, err := ini.Load(data)
	if err != nil {
		return cfg, fmt.Errorf("failed to parse config: %w", err)
	}

	return apply(cfg, file.Section(sectionName))
}

func apply(cfg emulator.Config, section *ini.Section) (emulator.Config, error) {
	if section.HasKey("show_touches") {
		v, err := section.Key("show_touches").Bool()
		if err != nil {
			return cfg, fmt.Errorf("invalid show_touches: %w", err)
		}
		cfg.ShowTouches = v
	}

	if section.HasKey("multi_touch_offset") {
		v, err := section.Key("multi_touch_offset").Float64()
		if err != nil {
			return cfg, fmt.Errorf("invalid multi_touch_offset: %w", err)
		}
		cfg.MultiTouchOffset = v
	}

	if section.HasKey("ignore_tags") {
		cfg.IgnoreTags = SplitTags(section.Key("ignore_tags").String())
	}

	if section.HasKey("modifier") {
		m, err := emulator.ParseModifier(section.Key("modifier").String())
		if err != nil {
			return cfg, err
		}
		cfg.Modifier = m
	}

	return cfg, nil
}

// SplitTags parses a comma separated tag list into upper-case tag names.
func SplitTags(s string) []string {
	tags := []string{}
	for _, part := range strings.Split(s, ",") {
		part = strings.ToUpper(strings.TrimSpace(part))
		if part != "" {
			tags = append(tags, part)
		}
	}
	return tags
}
