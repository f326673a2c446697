package testutil

import (
	"fmt"
	"strings"
	"testing"

	"github.com/spiris/spiris-go/log"
)

// testLogger writes structured log lines through testing.TB, so client
// logging shows up attached to the failing test.
type testLogger struct {
	t testing.TB
}

// NewTestLogger returns a Logger that writes to the given test.
func NewTestLogger(t testing.TB) log.Logger {
	return &testLogger{t: t}
}

func (l *testLogger) Debug(msg string, keysAndValues ...any) { l.logf("DEBUG", msg, keysAndValues) }
func (l *testLogger) Info(msg string, keysAndValues ...any)  { l.logf("INFO", msg, keysAndValues) }
func (l *testLogger) Warn(msg string, keysAndValues ...any)  { l.logf("WARN", msg, keysAndValues) }
func (l *testLogger) Error(msg string, keysAndValues ...any) { l.logf("ERROR", msg, keysAndValues) }

func (l *testLogger) logf(level, msg string, keysAndValues []any) {
	l.t.Helper()

	var b strings.Builder
	for i := 0; i+1 < len(keysAndValues); i += 2 {
		fmt.Fprintf(&b, " %v=%v", keysAndValues[i], keysAndValues[i+1])
	}
	l.t.Logf("%s %s%s", level, msg, b.String())
}
