package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Columbina-Dev/vector-calculator/internal/faults"
	"github.com/Columbina-Dev/vector-calculator/internal/jsondoc"
	"github.com/Columbina-Dev/vector-calculator/internal/vector"
)

func newVectorCommand(ctx *commandContext) *cobra.Command {
	vectorCmd := &cobra.Command{
		Use:   "vector",
		Short: "Decode, encode and rescale hex vectors",
	}

	vectorCmd.AddCommand(newVectorDecodeCommand(ctx))
	vectorCmd.AddCommand(newVectorEncodeCommand(ctx))
	vectorCmd.AddCommand(newVectorMagnitudeCommand())
	vectorCmd.AddCommand(newVectorScaleCommand(ctx))

	return vectorCmd
}

func newVectorDecodeCommand(ctx *commandContext) *cobra.Command {
	var timing bool
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "decode <hex>",
		Short: "Decode a hex vector into floats",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			text := strings.TrimSpace(args[0])
			vec, err := vector.DecodeN(text, dimension(timing))
			if err != nil {
				return err
			}
			return printVector(cmd, ctx, strings.ToUpper(text), vec, jsonOutput)
		},
	}

	cmd.Flags().BoolVar(&timing, "timing", false, "Decode a 128-float timing vector instead of 32 floats")
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Print the vector as JSON")
	return cmd
}

func newVectorEncodeCommand(ctx *commandContext) *cobra.Command {
	var timing bool
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "encode <floats...>",
		Short: "Encode floats into a hex vector",
		Long: "Encode floats into a hex vector.\n\n" +
			"Values may be separated by spaces or commas. Put -- before the values " +
			"when the first one is negative.",
		Example: "  vecalc vector encode -- -1 0.5 0 ...",
		Args:    cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			values, err := parseFloats(args)
			if err != nil {
				return err
			}
			vec := vector.Vector(values)
			text, err := vector.EncodeN(vec, dimension(timing))
			if err != nil {
				return err
			}
			if !jsonOutput {
				fmt.Fprintln(cmd.OutOrStdout(), text)
				return nil
			}
			return printVector(cmd, ctx, text, vec, true)
		},
	}

	cmd.Flags().BoolVar(&timing, "timing", false, "Encode 128 timing floats instead of 32")
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Print the vector as JSON")
	return cmd
}

func newVectorMagnitudeCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "magnitude <hex>",
		Short: "Print the Euclidean norm of a hex vector",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			vec, err := vector.Decode(strings.TrimSpace(args[0]))
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatFloat(vector.Magnitude(vec.Float64())))
			return nil
		},
	}
}

func newVectorScaleCommand(ctx *commandContext) *cobra.Command {
	var bus float64
	var magnitude float64
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "scale <hex>",
		Short: "Apply a bus percentage and optional target magnitude to a hex vector",
		Long: "Apply a bus percentage and optional target magnitude to a hex vector.\n\n" +
			"The bus defaults to mixer.default_bus from the configuration. A negative " +
			"magnitude points the result against the input direction.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := ctx.configValue()
			vec, err := vector.Decode(strings.TrimSpace(args[0]))
			if err != nil {
				return err
			}
			if !cmd.Flags().Changed("bus") {
				bus = cfg.Mixer.DefaultBus
			}
			out := vector.ApplyBus(vec.Float64(), bus)
			if cmd.Flags().Changed("magnitude") {
				out = vector.SetMagnitude(out, magnitude)
			}
			scaled := vector.FromFloat64(out)
			text, err := vector.Encode(scaled)
			if err != nil {
				return err
			}
			if !jsonOutput {
				fmt.Fprintln(cmd.OutOrStdout(), text)
				return nil
			}
			return printVector(cmd, ctx, text, scaled, true)
		},
	}

	cmd.Flags().Float64Var(&bus, "bus", 100, "Bus percentage applied to every component")
	cmd.Flags().Float64Var(&magnitude, "magnitude", 0, "Target magnitude after the bus is applied")
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Print the vector as JSON")
	return cmd
}

func dimension(timing bool) int {
	if timing {
		return vector.TimingDim
	}
	return vector.Dim
}

// parseFloats accepts values split across arguments and commas.
func parseFloats(args []string) ([]float32, error) {
	var values []float32
	for _, arg := range args {
		for _, field := range strings.FieldsFunc(arg, func(r rune) bool { return r == ',' || r == ' ' }) {
			f, err := strconv.ParseFloat(field, 32)
			if err != nil {
				return nil, faults.Wrap(faults.ErrFormat, "vector", "parse",
					fmt.Sprintf("value %q is not a number", field), err)
			}
			values = append(values, float32(f))
		}
	}
	return values, nil
}

func printVector(cmd *cobra.Command, ctx *commandContext, text string, vec vector.Vector, jsonOutput bool) error {
	magnitude := vector.Magnitude(vec.Float64())
	if jsonOutput {
		values := make([]*jsondoc.Value, len(vec))
		for i, f := range vec {
			values[i] = jsondoc.Float32(f)
		}
		doc := jsondoc.Object(
			jsondoc.Member{Key: "hex", Value: jsondoc.String(text)},
			jsondoc.Member{Key: "count", Value: jsondoc.Number(float64(len(vec)))},
			jsondoc.Member{Key: "magnitude", Value: jsondoc.Number(magnitude)},
			jsondoc.Member{Key: "values", Value: jsondoc.Array(values...)},
		)
		out, err := renderDocument(doc, formatJSON, ctx.configValue().IndentString())
		if err != nil {
			return err
		}
		_, err = cmd.OutOrStdout().Write(out)
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintln(out, renderComponentTable(vec))
	fmt.Fprintf(out, "Magnitude: %s\n", formatFloat(magnitude))
	return nil
}

func renderComponentTable(vec vector.Vector) string {
	rows := make([][]string, 0, len(vec))
	for i, f := range vec {
		rows = append(rows, []string{strconv.Itoa(i), formatFloat32(f), vector.FloatToHex8(f)})
	}
	return renderTable([]string{"#", "Value", "Hex"}, rows,
		[]columnAlignment{alignRight, alignRight, alignLeft})
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'g', -1, 64)
}

func formatFloat32(f float32) string {
	return strconv.FormatFloat(float64(f), 'g', -1, 32)
}
