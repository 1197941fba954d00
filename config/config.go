// Package config loads board descriptions for host runs of the firmware.
package config

import (
	"encoding/json"
	"fmt"
	"os"

	"magreader/core"
)

// LoadConfig parses a JSON board description and returns it with defaults
// applied. Fields absent from the JSON keep the micro:bit v1 values.
func LoadConfig(jsonData []byte) (*core.Config, error) {
	cfg := core.DefaultConfig()

	if err := json.Unmarshal(jsonData, &cfg); err != nil {
		return nil, err
	}

	cfg.ApplyDefaults()

	if err := validate(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// LoadFile reads and parses a JSON board description from path.
func LoadFile(path string) (*core.Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config %s: %w", path, err)
	}
	cfg, err := LoadConfig(data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	return cfg, nil
}

// validate rejects values the firmware could not run with
func validate(cfg *core.Config) error {
	if cfg.SensorAddress > 0x7F {
		return fmt.Errorf("sensor_address %#x is not a 7-bit address", cfg.SensorAddress)
	}

	pins := map[core.Pin]string{}
	for _, p := range []struct {
		name string
		pin  core.Pin
	}{{"scl", cfg.SCL}, {"sda", cfg.SDA}, {"tx", cfg.TX}, {"rx", cfg.RX}} {
		if other, dup := pins[p.pin]; dup {
			return fmt.Errorf("%s and %s share pin %d", other, p.name, p.pin)
		}
		pins[p.pin] = p.name
	}

	if len(cfg.Terminator) > core.MaxTerminatorLen {
		return fmt.Errorf("terminator is %d bytes, at most %d allowed", len(cfg.Terminator), core.MaxTerminatorLen)
	}
	return nil
}

// DefaultJSON returns the micro:bit v1 board description as indented JSON.
func DefaultJSON() ([]byte, error) {
	return json.MarshalIndent(core.DefaultConfig(), "", "  ")
}
