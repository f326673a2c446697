package log

//go:generate go run github.com/maxbrunsfeld/counterfeiter/v6 -o ../mocks/logger.go . Logger

// Logger is a minimal logging interface for spiris clients.
// It allows integration with existing logging infrastructure without
// forcing a particular logging library on consumers.
type Logger interface {
	Debug(msg string, keysAndValues ...any)
	Info(msg string, keysAndValues ...any)
	Error(msg string, keysAndValues ...any)
	Warn(msg string, keysAndValues ...any)
}

// NoopLogger implements Logger but does nothing.
// It is the default when no logger is configured.
type NoopLogger struct{}

func (n *NoopLogger) Debug(msg string, keysAndValues ...any) {}
func (n *NoopLogger) Info(msg string, keysAndValues ...any)  {}
func (n *NoopLogger) Error(msg string, keysAndValues ...any) {}
func (n *NoopLogger) Warn(msg string, keysAndValues ...any)  {}
