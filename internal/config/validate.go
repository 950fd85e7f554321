package config

import (
	"errors"
	"fmt"
	"math"
)

const maxIndent = 8

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validateLogging(); err != nil {
		return err
	}
	if err := c.validateMixer(); err != nil {
		return err
	}
	if err := c.validateOutput(); err != nil {
		return err
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch c.Logging.Level {
	case "debug", "info", "warn", "warning", "error":
		return nil
	default:
		return fmt.Errorf("logging.level must be one of debug, info, warn, error (got %q)", c.Logging.Level)
	}
}

func (c *Config) validateMixer() error {
	if math.IsNaN(c.Mixer.DefaultBus) || math.IsInf(c.Mixer.DefaultBus, 0) {
		return errors.New("mixer.default_bus must be a finite number")
	}
	if !(c.Mixer.WeightLimit > 0) || math.IsInf(c.Mixer.WeightLimit, 0) {
		return errors.New("mixer.weight_limit must be a positive finite number")
	}
	switch c.Mixer.ZeroWeightPolicy {
	case ZeroWeightError, ZeroWeightWarn:
	default:
		return fmt.Errorf("mixer.zero_weight_policy must be %q or %q (got %q)",
			ZeroWeightError, ZeroWeightWarn, c.Mixer.ZeroWeightPolicy)
	}
	return nil
}

func (c *Config) validateOutput() error {
	if c.Output.Indent < 0 || c.Output.Indent > maxIndent {
		return fmt.Errorf("output.indent must be between 0 and %d", maxIndent)
	}
	switch c.Output.Color {
	case ColorAuto, ColorAlways, ColorNever:
	default:
		return fmt.Errorf("output.color must be one of %s, %s, %s (got %q)",
			ColorAuto, ColorAlways, ColorNever, c.Output.Color)
	}
	return nil
}
