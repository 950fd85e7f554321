package main

import (
	"github.com/spf13/cobra"
)

func newQueryCommand(ctx *commandContext) *cobra.Command {
	var raw bool
	var format string

	cmd := &cobra.Command{
		Use:   "query <file> <jq-expression>",
		Short: "Run a jq expression against a container or JSON document",
		Example: "  vecalc query bank.nofs '.styles[].name'\n" +
			"  vecalc query bank.nofs -r '.support_languages | join(\",\")'",
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := ctx.configValue()

			loaded, err := loadDocument(cmd, args[0], false)
			if err != nil {
				return err
			}
			results, err := runQuery(cmd.Context(), loaded.doc, args[1])
			if err != nil {
				return err
			}
			out, err := renderResults(results, format, cfg.IndentString(), raw)
			if err != nil {
				return err
			}
			_, err = cmd.OutOrStdout().Write(out)
			return err
		},
	}

	cmd.Flags().BoolVarP(&raw, "raw", "r", false, "Print string results without quotes")
	cmd.Flags().StringVarP(&format, "format", "f", formatJSON, "Output format: json or yaml")
	return cmd
}
