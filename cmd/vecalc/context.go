package main

import (
	"context"
	"log/slog"
	"strings"
	"sync"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/Columbina-Dev/vector-calculator/internal/config"
	"github.com/Columbina-Dev/vector-calculator/internal/logging"
)

type commandContext struct {
	configFlag *string

	configOnce sync.Once
	config     *config.Config
	configErr  error

	loggerOnce    sync.Once
	logger        *slog.Logger
	correlationID string
}

func newCommandContext(configFlag *string) *commandContext {
	return &commandContext{
		configFlag:    configFlag,
		correlationID: uuid.NewString(),
	}
}

func (c *commandContext) configPath() string {
	if c.configFlag == nil {
		return ""
	}
	return strings.TrimSpace(*c.configFlag)
}

func (c *commandContext) ensureConfig() (*config.Config, error) {
	c.configOnce.Do(func() {
		cfg, _, _, err := config.Load(c.configPath())
		if err != nil {
			c.configErr = err
			return
		}
		if err := cfg.EnsureDirectories(); err != nil {
			c.configErr = err
			return
		}
		c.config = cfg
	})
	return c.config, c.configErr
}

// configValue returns the loaded config, or repository defaults for commands
// that skip config loading.
func (c *commandContext) configValue() *config.Config {
	if cfg, err := c.ensureConfig(); err == nil && cfg != nil {
		return cfg
	}
	cfg := config.Default()
	cfg.Logging.Level = "info"
	return &cfg
}

// loggerFor returns the invocation logger tagged with the correlation id and
// the command path. Logger construction failures fall back to a no-op logger
// so rendering never depends on the log directory.
func (c *commandContext) loggerFor(cmd *cobra.Command) *slog.Logger {
	c.loggerOnce.Do(func() {
		logger, err := logging.NewFromConfig(c.configValue())
		if err != nil {
			logger = logging.NewNop()
		}
		c.logger = logger
	})
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	ctx = logging.WithCorrelationID(ctx, c.correlationID)
	ctx = logging.WithCommand(ctx, cmd.CommandPath())
	return logging.WithContext(ctx, c.logger)
}

func shouldSkipConfig(cmd *cobra.Command) bool {
	for c := cmd; c != nil; c = c.Parent() {
		if c.Annotations != nil && c.Annotations["skipConfigLoad"] == "true" {
			return true
		}
	}
	return false
}

func yesNo(value bool) string {
	if value {
		return "yes"
	}
	return "no"
}
