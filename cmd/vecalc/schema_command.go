package main

import (
	"github.com/spf13/cobra"

	"github.com/Columbina-Dev/vector-calculator/internal/voicebank"
)

func newSchemaCommand() *cobra.Command {
	return &cobra.Command{
		Use:         "schema",
		Short:       "Print the JSON Schema of a voice bank document",
		Args:        cobra.NoArgs,
		Annotations: map[string]string{"skipConfigLoad": "true"},
		RunE: func(cmd *cobra.Command, args []string) error {
			schema, err := voicebank.Schema()
			if err != nil {
				return err
			}
			return writeJSON(cmd, schema)
		},
	}
}
