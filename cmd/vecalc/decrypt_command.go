package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Columbina-Dev/vector-calculator/internal/container"
	"github.com/Columbina-Dev/vector-calculator/internal/jsondoc"
	"github.com/Columbina-Dev/vector-calculator/internal/logging"
)

func newDecryptCommand(ctx *commandContext) *cobra.Command {
	var outPath string
	var format string
	var query string

	cmd := &cobra.Command{
		Use:   "decrypt <container>",
		Short: "Decrypt a container and print its modern JSON document",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := ctx.configValue()
			logger := ctx.loggerFor(cmd)

			data, err := readInput(cmd, args[0])
			if err != nil {
				return err
			}
			doc, err := container.DecryptDocument(data)
			if err != nil {
				return err
			}
			logger.Debug("container decrypted",
				logging.String(logging.FieldPath, args[0]),
				logging.Int("bytes", len(data)),
			)

			results := []*jsondoc.Value{doc}
			if query != "" {
				if results, err = runQuery(cmd.Context(), doc, query); err != nil {
					return err
				}
			}
			out, err := renderResults(results, format, cfg.IndentString(), false)
			if err != nil {
				return err
			}
			if err := writeOutput(cmd, cfg, outPath, out); err != nil {
				return fmt.Errorf("write output: %w", err)
			}
			if outPath != "" {
				fmt.Fprintf(cmd.ErrOrStderr(), "Wrote %s output to %s\n", formatOrDefault(format), outPath)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&outPath, "out", "o", "", "Write output to this file instead of stdout")
	cmd.Flags().StringVarP(&format, "format", "f", formatJSON, "Output format: json or yaml")
	cmd.Flags().StringVarP(&query, "query", "q", "", "jq expression applied to the document before printing")
	return cmd
}

func formatOrDefault(format string) string {
	if format == "" {
		return formatJSON
	}
	return format
}
