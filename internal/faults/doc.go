// Package faults defines the error taxonomy shared by the voice bank codecs.
//
// Core operations never invent their own error types. They tag failures with
// one of the exported sentinel markers through Wrap so callers can branch on
// the kind with errors.Is while still printing a message that names the
// component, the operation, and the failed check. The CLI maps the same
// markers to process exit codes through ExitCode.
package faults
