package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Columbina-Dev/vector-calculator/internal/config"
)

func newConfigCommand(ctx *commandContext) *cobra.Command {
	configCmd := &cobra.Command{
		Use:   "config",
		Short: "Configuration utilities",
	}

	configCmd.AddCommand(newConfigValidateCommand(ctx))
	configCmd.AddCommand(newConfigInitCommand())

	return configCmd
}

func newConfigInitCommand() *cobra.Command {
	var targetPath string
	var overwrite bool

	cmd := &cobra.Command{
		Use:         "init",
		Short:       "Create a sample configuration file",
		Long:        "Create a sample configuration file at --path, or at ~/.config/vecalc/config.toml.",
		Args:        cobra.NoArgs,
		Annotations: map[string]string{"skipConfigLoad": "true"},
		RunE: func(cmd *cobra.Command, args []string) error {
			target, err := config.InitSample(targetPath, overwrite)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Wrote sample configuration to %s\n", target)
			return nil
		},
	}

	cmd.Flags().StringVarP(&targetPath, "path", "p", "", "Destination for the configuration file")
	cmd.Flags().BoolVar(&overwrite, "overwrite", false, "Replace an existing configuration file")
	return cmd
}

func newConfigValidateCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:         "validate",
		Short:       "Validate configuration file",
		Annotations: map[string]string{"skipConfigLoad": "true"},
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, path, exists, err := config.Load(ctx.configPath())
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}
			if err := cfg.EnsureDirectories(); err != nil {
				return fmt.Errorf("ensure directories: %w", err)
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Config path: %s\n", path)
			if !exists {
				fmt.Fprintln(out, "Config file did not exist; defaults were used")
			}
			rows := [][]string{
				{"paths.log_dir", cfg.Paths.LogDir},
				{"paths.lock_dir", orDash(cfg.Paths.LockDir)},
				{"logging", cfg.Logging.Format + " / " + cfg.Logging.Level},
				{"mixer.default_bus", formatFloat(cfg.Mixer.DefaultBus)},
				{"mixer.weight_limit", formatFloat(cfg.Mixer.WeightLimit)},
				{"mixer.zero_weight_policy", cfg.Mixer.ZeroWeightPolicy},
				{"validation.fail_on_warnings", yesNo(cfg.Validation.FailOnWarnings)},
				{"validation.normalize_before_validate", yesNo(cfg.Validation.NormalizeBeforeValidate)},
				{"output.indent", fmt.Sprint(cfg.Output.Indent)},
				{"output.color", cfg.Output.Color},
			}
			fmt.Fprintln(out, renderFieldTable("Setting", rows))
			fmt.Fprintln(out, "Configuration valid")
			return nil
		},
	}
}

func orDash(value string) string {
	if strings.TrimSpace(value) == "" {
		return "-"
	}
	return value
}
