package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/itchyny/gojq"
	"github.com/spf13/cobra"

	"github.com/Columbina-Dev/vector-calculator/internal/faults"
	"github.com/Columbina-Dev/vector-calculator/internal/jsondoc"
)

const (
	formatJSON = "json"
	formatYAML = "yaml"
)

// writeJSON encodes v as indented JSON to the command's stdout.
func writeJSON(cmd *cobra.Command, v any) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// renderDocument encodes doc in the requested format. JSON output keeps
// member order and number literals.
func renderDocument(doc *jsondoc.Value, format, indent string) ([]byte, error) {
	switch format {
	case "", formatJSON:
		return append(jsondoc.MarshalIndent(doc, indent), '\n'), nil
	case formatYAML:
		out, err := jsondoc.MarshalYAML(doc)
		if err != nil {
			return nil, fmt.Errorf("encode yaml: %w", err)
		}
		return out, nil
	default:
		return nil, fmt.Errorf("unsupported output format %q (want %s or %s)", format, formatJSON, formatYAML)
	}
}

// runQuery evaluates a jq expression against doc and returns every result.
func runQuery(ctx context.Context, doc *jsondoc.Value, expr string) ([]*jsondoc.Value, error) {
	query, err := gojq.Parse(expr)
	if err != nil {
		return nil, faults.Wrap(faults.ErrFormat, "query", "parse", expr, err)
	}
	if ctx == nil {
		ctx = context.Background()
	}

	var results []*jsondoc.Value
	iter := query.RunWithContext(ctx, doc.Interface())
	for {
		v, ok := iter.Next()
		if !ok {
			break
		}
		if err, ok := v.(error); ok {
			var halt *gojq.HaltError
			if errors.As(err, &halt) && halt.Value() == nil {
				break
			}
			return nil, fmt.Errorf("query %q: %w", expr, err)
		}
		results = append(results, jsondoc.FromInterface(v))
	}
	return results, nil
}

// renderResults renders query results one after another. With raw set,
// string results are written without quotes.
func renderResults(results []*jsondoc.Value, format, indent string, raw bool) ([]byte, error) {
	var out []byte
	for _, r := range results {
		if raw {
			if s, ok := r.AsString(); ok {
				out = append(out, s...)
				out = append(out, '\n')
				continue
			}
		}
		chunk, err := renderDocument(r, format, indent)
		if err != nil {
			return nil, err
		}
		if format == formatYAML && len(out) > 0 {
			out = append(out, "---\n"...)
		}
		out = append(out, chunk...)
	}
	return out, nil
}
