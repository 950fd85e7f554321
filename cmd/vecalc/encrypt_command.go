package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Columbina-Dev/vector-calculator/internal/faults"
	"github.com/Columbina-Dev/vector-calculator/internal/logging"
	"github.com/Columbina-Dev/vector-calculator/internal/voicebank"
)

func newEncryptCommand(ctx *commandContext) *cobra.Command {
	var outPath string
	var repair bool
	var noValidate bool

	cmd := &cobra.Command{
		Use:   "encrypt <json-file>",
		Short: "Validate a JSON document and write it as an encrypted container",
		Long: "Validate a JSON document and write it as an encrypted container.\n\n" +
			"The container is written atomically while holding a lock on the target, " +
			"so concurrent writers fail instead of interleaving. Documents with " +
			"validation errors are refused unless --no-validate is given.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := ctx.configValue()
			logger := ctx.loggerFor(cmd)

			data, err := readInput(cmd, args[0])
			if err != nil {
				return err
			}
			doc, repaired, err := parseJSONText(data, repair)
			if err != nil {
				return err
			}
			if repaired {
				logging.WarnWithContext(logger, "input JSON was repaired before encrypting", "json_repaired",
					logging.String(logging.FieldPath, args[0]),
					logging.String(logging.FieldImpact, "container holds the repaired document"),
					logging.String(logging.FieldErrorHint, "diff the decrypted output against the source"),
				)
			}
			if cfg.Validation.NormalizeBeforeValidate {
				doc = voicebank.Normalize(doc)
			}

			if !noValidate {
				result := voicebank.Validate(doc)
				if failed, reason := validationFailed(result, cfg.Validation.FailOnWarnings); failed {
					colorize := shouldColorize(cmd.ErrOrStderr(), cfg.Output.Color)
					fmt.Fprintln(cmd.ErrOrStderr(), renderIssueTable(result, colorize))
					return faults.Wrap(faults.ErrInvalid, "encrypt", args[0],
						reason+"; refusing to write (use --no-validate to override)", nil)
				}
			}

			out, err := encodeContainer(doc)
			if err != nil {
				return err
			}
			if err := writeOutput(cmd, cfg, outPath, out); err != nil {
				return fmt.Errorf("write container: %w", err)
			}
			logger.Debug("container written",
				logging.String(logging.FieldPath, outPath),
				logging.Int("bytes", len(out)),
			)
			fmt.Fprintf(cmd.OutOrStdout(), "Wrote container to %s (%d bytes)\n", outPath, len(out))
			return nil
		},
	}

	cmd.Flags().StringVarP(&outPath, "out", "o", "", "Container file to write")
	cmd.Flags().BoolVar(&repair, "repair", false, "Repair malformed JSON (trailing commas, comments, quotes) before parsing")
	cmd.Flags().BoolVar(&noValidate, "no-validate", false, "Write even when the document has validation errors")
	_ = cmd.MarkFlagRequired("out")
	return cmd
}
