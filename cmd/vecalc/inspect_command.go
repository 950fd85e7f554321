package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Columbina-Dev/vector-calculator/internal/container"
	"github.com/Columbina-Dev/vector-calculator/internal/faults"
)

func newInspectCommand(ctx *commandContext) *cobra.Command {
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "inspect <container>",
		Short: "Show container framing and length checks without decrypting",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := ctx.configValue()

			data, err := readInput(cmd, args[0])
			if err != nil {
				return err
			}
			info, err := container.Inspect(data)
			if err != nil {
				return err
			}

			if jsonOutput {
				if err := writeJSON(cmd, info); err != nil {
					return err
				}
			} else {
				colorize := shouldColorize(cmd.OutOrStdout(), cfg.Output.Color)
				fmt.Fprintln(cmd.OutOrStdout(), renderInspectTable(info))
				fmt.Fprintln(cmd.OutOrStdout(), renderCheckTable(info, colorize))
			}

			if !info.Intact() {
				var failed []string
				for _, c := range info.Checks {
					if !c.OK() {
						failed = append(failed, c.Name)
					}
				}
				return faults.Wrap(faults.ErrIntegrity, "inspect", args[0],
					"failed checks: "+strings.Join(failed, ", "), nil)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Print the inspection result as JSON")
	return cmd
}

func renderInspectTable(info container.Info) string {
	rows := [][]string{
		{"Size", strconv.Itoa(info.Size)},
		{"IV", info.IV},
		{"Ciphertext length", strconv.Itoa(info.CiphertextLength)},
		{"SVDB length", formatUint(info.SVDBLength)},
		{"Header SVDB length (0xBC)", formatUint(info.HeaderSVDBLength)},
		{"Header total length (0xB0)", formatUint(info.HeaderTotal)},
		{"Trailer", formatUint(info.Trailer)},
		{"Header template", yesNo(info.TemplateMatches)},
	}
	return renderFieldTable("Field", rows)
}

func renderCheckTable(info container.Info, colorize bool) string {
	rows := make([][]string, 0, len(info.Checks))
	for _, c := range info.Checks {
		rows = append(rows, []string{c.Name, formatUint(c.Expected), formatUint(c.Actual), checkLabel(c.OK(), colorize)})
	}
	return renderTable([]string{"Check", "Expected", "Actual", "Status"}, rows,
		[]columnAlignment{alignLeft, alignRight, alignRight, alignLeft})
}

func formatUint(v uint32) string {
	return strconv.FormatUint(uint64(v), 10)
}
