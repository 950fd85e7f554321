package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Columbina-Dev/vector-calculator/internal/faults"
	"github.com/Columbina-Dev/vector-calculator/internal/logging"
	"github.com/Columbina-Dev/vector-calculator/internal/voicebank"
)

type validationReport struct {
	Path     string            `json:"path"`
	Source   sourceKind        `json:"source"`
	Repaired bool              `json:"repaired"`
	Valid    bool              `json:"valid"`
	Errors   []voicebank.Issue `json:"errors"`
	Warnings []voicebank.Issue `json:"warnings"`
}

func newValidateCommand(ctx *commandContext) *cobra.Command {
	var repair bool
	var jsonOutput bool
	var normalize bool

	cmd := &cobra.Command{
		Use:   "validate <file>",
		Short: "Validate a container or JSON document and list every issue",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := ctx.configValue()
			logger := ctx.loggerFor(cmd)

			loaded, err := loadDocument(cmd, args[0], repair)
			if err != nil {
				return err
			}
			doc := loaded.doc
			if normalize || cfg.Validation.NormalizeBeforeValidate {
				doc = voicebank.Normalize(doc)
			}
			result := voicebank.Validate(doc)
			failed, reason := validationFailed(result, cfg.Validation.FailOnWarnings)

			logger.Debug("document validated",
				logging.String(logging.FieldPath, args[0]),
				logging.String("source", string(loaded.kind)),
				logging.Int("errors", len(result.Errors)),
				logging.Int("warnings", len(result.Warnings)),
			)

			if jsonOutput {
				report := validationReport{
					Path:     args[0],
					Source:   loaded.kind,
					Repaired: loaded.repaired,
					Valid:    !failed,
					Errors:   nonNilIssues(result.Errors),
					Warnings: nonNilIssues(result.Warnings),
				}
				if err := writeJSON(cmd, report); err != nil {
					return err
				}
			} else {
				out := cmd.OutOrStdout()
				colorize := shouldColorize(out, cfg.Output.Color)
				if len(result.Errors)+len(result.Warnings) > 0 {
					fmt.Fprintln(out, renderIssueTable(result, colorize))
				}
				fmt.Fprintf(out, "%s (%s): %d errors, %d warnings\n",
					args[0], loaded.kind, len(result.Errors), len(result.Warnings))
			}

			if failed {
				return faults.Wrap(faults.ErrInvalid, "validate", args[0], reason, nil)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&repair, "repair", false, "Repair malformed JSON before validating")
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Print the report as JSON")
	cmd.Flags().BoolVar(&normalize, "normalize", false, "Normalize case and phoneset before validating")
	return cmd
}

func newNormalizeCommand(ctx *commandContext) *cobra.Command {
	var outPath string
	var format string
	var repair bool

	cmd := &cobra.Command{
		Use:   "normalize <file>",
		Short: "Canonicalize language case, phoneset and hex case",
		Long: "Canonicalize language case, phoneset and hex case.\n\n" +
			"Container input written with --out stays a container; JSON input is written as JSON.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := ctx.configValue()

			loaded, err := loadDocument(cmd, args[0], repair)
			if err != nil {
				return err
			}
			doc := voicebank.Normalize(loaded.doc)

			var out []byte
			if outPath != "" && loaded.kind == sourceContainer {
				out, err = encodeContainer(doc)
			} else {
				out, err = renderDocument(doc, format, cfg.IndentString())
			}
			if err != nil {
				return err
			}
			if err := writeOutput(cmd, cfg, outPath, out); err != nil {
				return fmt.Errorf("write output: %w", err)
			}
			if outPath != "" {
				fmt.Fprintf(cmd.ErrOrStderr(), "Wrote normalized %s to %s\n", loaded.kind, outPath)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&outPath, "out", "o", "", "Write the normalized document to this file")
	cmd.Flags().StringVarP(&format, "format", "f", formatJSON, "Output format for JSON output: json or yaml")
	cmd.Flags().BoolVar(&repair, "repair", false, "Repair malformed JSON before normalizing")
	return cmd
}

// validationFailed applies the warning policy to a result.
func validationFailed(result voicebank.Result, failOnWarnings bool) (bool, string) {
	switch {
	case len(result.Errors) > 0:
		return true, fmt.Sprintf("%d validation errors", len(result.Errors))
	case failOnWarnings && len(result.Warnings) > 0:
		return true, fmt.Sprintf("%d validation warnings (fail_on_warnings is set)", len(result.Warnings))
	default:
		return false, ""
	}
}

func renderIssueTable(result voicebank.Result, colorize bool) string {
	issues := result.Issues()
	rows := make([][]string, 0, len(issues))
	for _, issue := range issues {
		rows = append(rows, []string{severityLabel(issue.Severity, colorize), issue.Path.String(), issue.Message})
	}
	return renderTable([]string{"Severity", "Path", "Message"}, rows, nil)
}

func nonNilIssues(issues []voicebank.Issue) []voicebank.Issue {
	if issues == nil {
		return []voicebank.Issue{}
	}
	return issues
}
