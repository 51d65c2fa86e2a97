package config

import (
	"encoding/json"
	"fmt"

	"dualdrive/core"
)

// LoadConfig parses a JSON board configuration. Fields missing from the
// JSON keep their core.DefaultConfig value; the result is validated.
func LoadConfig(jsonData []byte) (*core.Config, error) {
	config := core.DefaultConfig()

	if err := json.Unmarshal(jsonData, &config); err != nil {
		return nil, fmt.Errorf("parse board config: %w", err)
	}

	applyDefaults(&config)

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid board config: %w", err)
	}
	return &config, nil
}

// applyDefaults replaces zero values that have no meaning for the board
// (sample rate, PWM period, reference voltage, mode) with defaults
func applyDefaults(config *core.Config) {
	defaults := core.DefaultConfig()

	if config.DirectionMode == "" {
		config.DirectionMode = defaults.DirectionMode
	}
	if config.SampleHz == 0 {
		config.SampleHz = defaults.SampleHz
	}
	if config.PWMPeriodUS == 0 {
		config.PWMPeriodUS = defaults.PWMPeriodUS
	}
	for i, v := range config.ReferenceVoltage {
		if v == 0 {
			config.ReferenceVoltage[i] = defaults.ReferenceVoltage[i]
		}
	}
}
