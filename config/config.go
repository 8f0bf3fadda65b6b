// Package config loads the counter display configuration from JSON.
package config

import (
	"encoding/json"
	"fmt"
	"os"

	"tickcount/core"
)

// LoadConfig parses a JSON configuration. Fields left out keep the defaults
// of the reference board.
func LoadConfig(jsonData []byte) (*core.Config, error) {
	cfg := core.DefaultConfig()

	if err := json.Unmarshal(jsonData, cfg); err != nil {
		return nil, err
	}

	// Explicit zeros in the file fall back to defaults too
	core.ApplyDefaults(cfg)

	if err := Validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadFile reads and parses a configuration file
func LoadFile(path string) (*core.Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	cfg, err := LoadConfig(data)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return cfg, nil
}

// Validate rejects values the hardware cannot honour
func Validate(cfg *core.Config) error {
	if cfg.DisplayWidth <= 0 || cfg.DisplayHeight <= 0 {
		return fmt.Errorf("display %dx%d: dimensions must be positive", cfg.DisplayWidth, cfg.DisplayHeight)
	}
	if cfg.DisplayWidth%8 != 0 || cfg.DisplayHeight%8 != 0 {
		return fmt.Errorf("display %dx%d: dimensions must be multiples of 8", cfg.DisplayWidth, cfg.DisplayHeight)
	}
	// Each refresh writes one full line; it must cover every cell exactly
	// so the cursor returns home and nothing stale stays on screen.
	if cells := int(cfg.DisplayWidth/8) * int(cfg.DisplayHeight/8); cells != core.LineWidth {
		return fmt.Errorf("display %dx%d holds %d characters, want %d", cfg.DisplayWidth, cfg.DisplayHeight, cells, core.LineWidth)
	}
	if cfg.DisplayAddress > 0x7F {
		return fmt.Errorf("display address 0x%X is not a 7-bit address", cfg.DisplayAddress)
	}
	if cfg.BusHz > 1000000 {
		return fmt.Errorf("bus clock %d Hz exceeds fast-mode plus", cfg.BusHz)
	}
	return nil
}
