package voicebank

import (
	"fmt"

	"github.com/Columbina-Dev/vector-calculator/internal/jsondoc"
)

// Severity classifies an Issue.
type Severity string

const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
)

// Issue is one validation finding.
type Issue struct {
	Severity Severity     `json:"severity"`
	Message  string       `json:"message"`
	Path     jsondoc.Path `json:"path"`
}

func (i Issue) String() string {
	return fmt.Sprintf("%s: %s: %s", i.Severity, i.Path, i.Message)
}

// Result collects every issue found in one Validate call.
type Result struct {
	Errors   []Issue `json:"errors"`
	Warnings []Issue `json:"warnings"`
}

// Valid reports whether no errors were found. Warnings do not count.
func (r Result) Valid() bool { return len(r.Errors) == 0 }

// Issues returns errors followed by warnings.
func (r Result) Issues() []Issue {
	out := make([]Issue, 0, len(r.Errors)+len(r.Warnings))
	out = append(out, r.Errors...)
	return append(out, r.Warnings...)
}

type collector struct {
	result Result
}

func (c *collector) errorf(path jsondoc.Path, format string, args ...any) {
	c.result.Errors = append(c.result.Errors, Issue{
		Severity: SeverityError,
		Message:  fmt.Sprintf(format, args...),
		Path:     path,
	})
}

func (c *collector) warnf(path jsondoc.Path, format string, args ...any) {
	c.result.Warnings = append(c.result.Warnings, Issue{
		Severity: SeverityWarning,
		Message:  fmt.Sprintf(format, args...),
		Path:     path,
	})
}
