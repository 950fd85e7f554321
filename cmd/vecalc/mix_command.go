package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/Columbina-Dev/vector-calculator/internal/config"
	"github.com/Columbina-Dev/vector-calculator/internal/faults"
	"github.com/Columbina-Dev/vector-calculator/internal/jsondoc"
	"github.com/Columbina-Dev/vector-calculator/internal/logging"
	"github.com/Columbina-Dev/vector-calculator/internal/recipe"
)

func newMixCommand(ctx *commandContext) *cobra.Command {
	var jsonOutput bool
	var showComponents bool

	cmd := &cobra.Command{
		Use:   "mix <recipe.toml>",
		Short: "Blend weighted vectors and styles from a recipe",
		Long: "Blend weighted vectors and styles from a recipe.\n\n" +
			"Each component of the result is the weighted sum of the channel vectors " +
			"divided by the sum of absolute weights. The bus percentage is applied next, " +
			"then the optional target magnitude. A recipe whose weights are all zero is " +
			"reported according to mixer.zero_weight_policy.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := ctx.configValue()
			logger := ctx.loggerFor(cmd)

			path, err := config.ExpandPath(args[0])
			if err != nil {
				return fmt.Errorf("resolve recipe path: %w", err)
			}
			rec, err := recipe.Load(path)
			if err != nil {
				return err
			}
			result, err := rec.Run(recipe.Options{
				DefaultBus:  cfg.Mixer.DefaultBus,
				WeightLimit: cfg.Mixer.WeightLimit,
				Load: func(source string) (*jsondoc.Value, error) {
					expanded, err := config.ExpandPath(source)
					if err != nil {
						return nil, err
					}
					loaded, err := loadDocument(cmd, expanded, false)
					if err != nil {
						return nil, err
					}
					return loaded.doc, nil
				},
			})
			if err != nil {
				return err
			}

			if result.ZeroWeight() {
				if cfg.ZeroWeightIsError() {
					return faults.Wrap(faults.ErrInvalid, "mix", path,
						"all channel weights are zero; the result would be a zero vector", nil)
				}
				logging.WarnWithContext(logger, "mix weights sum to zero", "mix_zero_weight",
					logging.String(logging.FieldPath, path),
					logging.Int("channels", len(result.Channels)),
					logging.String(logging.FieldImpact, "result is the zero vector"),
					logging.String(logging.FieldErrorHint, "give at least one channel a non-zero weight"),
				)
			}
			logger.Debug("mix complete",
				logging.String(logging.FieldPath, path),
				logging.Int("channels", len(result.Channels)),
				logging.Float64("sum_abs", result.SumAbs),
				logging.Float64("bus", result.Bus),
				logging.Float64("magnitude", result.Magnitude),
			)

			if jsonOutput {
				out, err := renderDocument(mixDocument(result), formatJSON, cfg.IndentString())
				if err != nil {
					return err
				}
				_, err = cmd.OutOrStdout().Write(out)
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, renderChannelTable(result))
			if showComponents {
				fmt.Fprintln(out, renderComponentTable(result.Vector))
			}
			fmt.Fprintf(out, "Sum |weight|: %s\n", formatFloat(result.SumAbs))
			fmt.Fprintf(out, "Bus: %s%%\n", formatFloat(result.Bus))
			fmt.Fprintf(out, "Magnitude: %s\n", formatFloat(result.Magnitude))
			fmt.Fprintln(out, result.Hex)
			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Print the result as JSON")
	cmd.Flags().BoolVar(&showComponents, "components", false, "Print a table of the mixed components")
	return cmd
}

func renderChannelTable(result *recipe.Result) string {
	rows := make([][]string, 0, len(result.Channels))
	for _, ch := range result.Channels {
		share := "-"
		if result.SumAbs != 0 {
			share = strconv.FormatFloat(100*ch.Weight/result.SumAbs, 'f', 1, 64) + "%"
		}
		rows = append(rows, []string{ch.Name, ch.Origin, formatFloat(ch.Weight), share})
	}
	return renderTable([]string{"Channel", "Origin", "Weight", "Share"}, rows,
		[]columnAlignment{alignLeft, alignLeft, alignRight, alignRight})
}

func mixDocument(result *recipe.Result) *jsondoc.Value {
	channels := make([]*jsondoc.Value, 0, len(result.Channels))
	for _, ch := range result.Channels {
		channels = append(channels, jsondoc.Object(
			jsondoc.Member{Key: "name", Value: jsondoc.String(ch.Name)},
			jsondoc.Member{Key: "origin", Value: jsondoc.String(ch.Origin)},
			jsondoc.Member{Key: "weight", Value: jsondoc.Number(ch.Weight)},
		))
	}
	values := make([]*jsondoc.Value, len(result.Vector))
	for i, f := range result.Vector {
		values[i] = jsondoc.Float32(f)
	}
	target := jsondoc.Null()
	if result.Target != nil {
		target = jsondoc.Number(*result.Target)
	}
	return jsondoc.Object(
		jsondoc.Member{Key: "hex", Value: jsondoc.String(result.Hex)},
		jsondoc.Member{Key: "magnitude", Value: jsondoc.Number(result.Magnitude)},
		jsondoc.Member{Key: "target_magnitude", Value: target},
		jsondoc.Member{Key: "bus", Value: jsondoc.Number(result.Bus)},
		jsondoc.Member{Key: "sum_abs", Value: jsondoc.Number(result.SumAbs)},
		jsondoc.Member{Key: "channels", Value: jsondoc.Array(channels...)},
		jsondoc.Member{Key: "values", Value: jsondoc.Array(values...)},
	)
}
