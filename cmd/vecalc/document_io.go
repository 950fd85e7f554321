package main

import (
	"bytes"
	"crypto/rand"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/kaptinlin/jsonrepair"
	"github.com/spf13/cobra"

	"github.com/Columbina-Dev/vector-calculator/internal/config"
	"github.com/Columbina-Dev/vector-calculator/internal/container"
	"github.com/Columbina-Dev/vector-calculator/internal/faults"
	"github.com/Columbina-Dev/vector-calculator/internal/fileutil"
	"github.com/Columbina-Dev/vector-calculator/internal/jsondoc"
)

type sourceKind string

const (
	sourceContainer sourceKind = "container"
	sourceJSON      sourceKind = "json"
)

type loadedDocument struct {
	doc      *jsondoc.Value
	kind     sourceKind
	path     string
	repaired bool
}

// readInput reads path, or stdin when path is "-".
func readInput(cmd *cobra.Command, path string) ([]byte, error) {
	if path == "-" {
		data, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return nil, fmt.Errorf("read stdin: %w", err)
		}
		return data, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return data, nil
}

// looksLikeContainer reports whether data starts with the container header
// signature. Bytes that do are decrypted, so truncation and bad magic are
// reported by the codec instead of as JSON syntax errors.
func looksLikeContainer(data []byte) bool {
	tmpl := container.HeaderTemplate()
	return bytes.HasPrefix(data, tmpl[:4])
}

// loadDocument reads a container or JSON text file into a modern document.
func loadDocument(cmd *cobra.Command, path string, repair bool) (*loadedDocument, error) {
	data, err := readInput(cmd, path)
	if err != nil {
		return nil, err
	}
	if looksLikeContainer(data) {
		doc, err := container.DecryptDocument(data)
		if err != nil {
			return nil, err
		}
		return &loadedDocument{doc: doc, kind: sourceContainer, path: path}, nil
	}
	doc, repaired, err := parseJSONText(data, repair)
	if err != nil {
		return nil, err
	}
	return &loadedDocument{doc: doc, kind: sourceJSON, path: path, repaired: repaired}, nil
}

// parseJSONText parses JSON, falling back to jsonrepair when repair is set
// and the text does not parse as-is.
func parseJSONText(data []byte, repair bool) (*jsondoc.Value, bool, error) {
	doc, err := jsondoc.Parse(data)
	if err == nil || !repair {
		return doc, false, err
	}
	fixed, rerr := jsonrepair.JSONRepair(string(data))
	if rerr != nil {
		return nil, false, faults.Wrap(faults.ErrFormat, "json", "repair", "text could not be repaired", rerr)
	}
	doc, err = jsondoc.Parse([]byte(fixed))
	if err != nil {
		return nil, false, err
	}
	return doc, true, nil
}

// encodeContainer encrypts doc with a fresh random IV.
func encodeContainer(doc *jsondoc.Value) ([]byte, error) {
	return container.EncryptDocument(doc, rand.Reader)
}

// writeOutput writes data to outPath under the configured lock, or to stdout
// when outPath is empty.
func writeOutput(cmd *cobra.Command, cfg *config.Config, outPath string, data []byte) error {
	outPath = strings.TrimSpace(outPath)
	if outPath == "" {
		_, err := cmd.OutOrStdout().Write(data)
		return err
	}
	expanded, err := config.ExpandPath(outPath)
	if err != nil {
		return err
	}
	return fileutil.WriteLocked(expanded, cfg.LockPath(expanded), data, 0o644)
}
