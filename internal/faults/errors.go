package faults

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrFormat marks malformed input: bad hex, wrong-length buffers, unparseable JSON.
	ErrFormat = errors.New("format error")
	// ErrIntegrity marks container magic or length-field mismatches.
	ErrIntegrity = errors.New("integrity error")
	// ErrLengthMismatch marks mixer inputs whose sequences differ in length.
	ErrLengthMismatch = errors.New("length mismatch")
	// ErrInvalid marks a document that parsed but failed validation.
	ErrInvalid = errors.New("validation failed")
)

// Exit codes returned by the CLI for each failure kind.
const (
	ExitGeneric        = 1
	ExitFormat         = 2
	ExitIntegrity      = 3
	ExitLengthMismatch = 4
	ExitInvalid        = 5
)

// Wrap builds an error message that includes component context while tagging
// it with the provided marker. The marker should be one of the exported
// sentinel errors above.
func Wrap(marker error, component, operation, message string, err error) error {
	detail := buildDetail(component, operation, message)
	if marker == nil {
		marker = ErrFormat
	}
	if err != nil {
		return fmt.Errorf("%w: %s: %w", marker, detail, err)
	}
	return fmt.Errorf("%w: %s", marker, detail)
}

// Kind returns a short label for the marker carried by err.
func Kind(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrFormat):
		return "format"
	case errors.Is(err, ErrIntegrity):
		return "integrity"
	case errors.Is(err, ErrLengthMismatch):
		return "length_mismatch"
	case errors.Is(err, ErrInvalid):
		return "invalid"
	default:
		return "other"
	}
}

// ExitCode maps an error to the process exit status the CLI should use.
func ExitCode(err error) int {
	switch {
	case err == nil:
		return 0
	case errors.Is(err, ErrFormat):
		return ExitFormat
	case errors.Is(err, ErrIntegrity):
		return ExitIntegrity
	case errors.Is(err, ErrLengthMismatch):
		return ExitLengthMismatch
	case errors.Is(err, ErrInvalid):
		return ExitInvalid
	default:
		return ExitGeneric
	}
}

func buildDetail(component, operation, message string) string {
	parts := make([]string, 0, 3)
	if component = strings.TrimSpace(component); component != "" {
		parts = append(parts, component)
	}
	if operation = strings.TrimSpace(operation); operation != "" {
		parts = append(parts, operation)
	}
	if message = strings.TrimSpace(message); message != "" {
		parts = append(parts, message)
	}
	if len(parts) == 0 {
		return "codec failure"
	}
	return strings.Join(parts, ": ")
}
