package config

import (
	"fmt"
	"os"
	"strings"
)

func (c *Config) normalize() error {
	if err := c.normalizePaths(); err != nil {
		return err
	}
	c.normalizeLogging()
	c.normalizeMixer()
	c.normalizeOutput()
	return nil
}

func (c *Config) normalizePaths() error {
	var err error
	if strings.TrimSpace(c.Paths.LogDir) == "" {
		c.Paths.LogDir = defaultLogDir
	}
	if c.Paths.LogDir, err = ExpandPath(c.Paths.LogDir); err != nil {
		return fmt.Errorf("paths.log_dir: %w", err)
	}
	if c.Paths.LockDir, err = ExpandPath(strings.TrimSpace(c.Paths.LockDir)); err != nil {
		return fmt.Errorf("paths.lock_dir: %w", err)
	}
	return nil
}

func (c *Config) normalizeLogging() {
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	switch c.Logging.Format {
	case "", "console":
		c.Logging.Format = "console"
	case "json":
	default:
		c.Logging.Format = "console"
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		if value, ok := os.LookupEnv("VECALC_LOG_LEVEL"); ok {
			c.Logging.Level = strings.ToLower(strings.TrimSpace(value))
		}
	}
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
}

func (c *Config) normalizeMixer() {
	c.Mixer.ZeroWeightPolicy = strings.ToLower(strings.TrimSpace(c.Mixer.ZeroWeightPolicy))
	if c.Mixer.ZeroWeightPolicy == "" {
		c.Mixer.ZeroWeightPolicy = ZeroWeightError
	}
	if c.Mixer.WeightLimit == 0 {
		c.Mixer.WeightLimit = defaultMixerWeightLimit
	}
}

func (c *Config) normalizeOutput() {
	c.Output.Color = strings.ToLower(strings.TrimSpace(c.Output.Color))
	if c.Output.Color == "" {
		c.Output.Color = defaultOutputColor
	}
}
