package logging

import (
	"context"
	"log/slog"
)

// Attribute keys shared by every command. The console handler renders
// component and command as the line prefix.
const (
	FieldComponent     = "component"
	FieldCorrelationID = "correlation_id"
	FieldCommand       = "command"
	// FieldPath names the file a command reads or writes.
	FieldPath = "path"
	// FieldEventType classifies warnings for filtering.
	FieldEventType = "event_type"
	// FieldErrorHint tells the reader what to do next.
	FieldErrorHint = "error_hint"
	// FieldImpact states the user-facing consequence of a warning.
	FieldImpact = "impact"
)

type contextKey int

const (
	correlationIDKey contextKey = iota
	commandKey
)

// WithCorrelationID returns a context carrying the invocation's correlation id.
func WithCorrelationID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, correlationIDKey, id)
}

// CorrelationIDFromContext returns the correlation id stored in ctx.
func CorrelationIDFromContext(ctx context.Context) (string, bool) {
	if ctx == nil {
		return "", false
	}
	id, ok := ctx.Value(correlationIDKey).(string)
	return id, ok && id != ""
}

// WithCommand returns a context carrying the running command path.
func WithCommand(ctx context.Context, command string) context.Context {
	return context.WithValue(ctx, commandKey, command)
}

// CommandFromContext returns the command path stored in ctx.
func CommandFromContext(ctx context.Context) (string, bool) {
	if ctx == nil {
		return "", false
	}
	cmd, ok := ctx.Value(commandKey).(string)
	return cmd, ok && cmd != ""
}

// ContextFields returns the correlation id and command stored in ctx as
// attributes.
func ContextFields(ctx context.Context) []slog.Attr {
	if ctx == nil {
		return nil
	}
	fields := make([]slog.Attr, 0, 2)
	if id, ok := CorrelationIDFromContext(ctx); ok {
		fields = append(fields, slog.String(FieldCorrelationID, id))
	}
	if cmd, ok := CommandFromContext(ctx); ok {
		fields = append(fields, slog.String(FieldCommand, cmd))
	}
	return fields
}

// WithContext returns logger tagged with ContextFields(ctx).
func WithContext(ctx context.Context, logger *slog.Logger) *slog.Logger {
	if logger == nil {
		logger = NewNop()
	}
	fields := ContextFields(ctx)
	if len(fields) == 0 {
		return logger
	}
	args := make([]any, len(fields))
	for i, f := range fields {
		args[i] = f
	}
	return logger.With(args...)
}
