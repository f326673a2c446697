package log

import "context"

// loggerKey is the key for the logger in the context.
type loggerKey struct{}

// ToContext returns a new context carrying the given logger.
// Operations performed with this context will log through it.
func ToContext(ctx context.Context, logger Logger) context.Context {
	return context.WithValue(ctx, loggerKey{}, logger)
}

// FromContext gets the logger from the context.
// Returns nil if no logger is set.
func FromContext(ctx context.Context) Logger {
	logger, ok := ctx.Value(loggerKey{}).(Logger)
	if !ok {
		return nil
	}

	return logger
}

// FromContextOrNoop returns the logger from the context, or a NoopLogger if none is set.
// This ensures that callers always have a logger to work with.
func FromContextOrNoop(ctx context.Context) Logger {
	logger := FromContext(ctx)
	if logger != nil {
		return logger
	}

	return &NoopLogger{}
}
