package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/spiris/spiris-go/cli/internal/session"
	"github.com/spiris/spiris-go/log"
)

var (
	// Global flags
	tokenFile string
	baseURL   string
	jsonOut   bool
	debug     bool
)

var rootCmd = &cobra.Command{
	Use:   "spiris",
	Short: "A command-line client for the Spiris accounting API",
	Long: `spiris talks to the Spiris accounting API: customers, invoices
and articles, with OAuth2 authentication handled locally.

Credentials are read from the environment:
  - SPIRIS_CLIENT_ID:     OAuth2 client ID (required for auth commands)
  - SPIRIS_CLIENT_SECRET: OAuth2 client secret
  - SPIRIS_REDIRECT_URI:  Redirect URI registered for the client

Run 'spiris auth login' once to obtain a token; it is stored on disk
and refreshed automatically when it expires.`,
	SilenceUsage: true,
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	// Global flags available to all commands
	rootCmd.PersistentFlags().StringVar(&tokenFile, "token-file", "", "Token file location (default: user config dir)")
	rootCmd.PersistentFlags().StringVar(&baseURL, "base-url", "", "API base URL override")
	rootCmd.PersistentFlags().BoolVar(&jsonOut, "json", false, "Output in JSON format")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "Enable debug logging")
}

// getOutputFormat returns "json" if json flag is set, otherwise "human"
func getOutputFormat() string {
	if jsonOut {
		return "json"
	}
	return "human"
}

// newSession builds a session from the global flags.
func newSession() (*session.Session, error) {
	opts := session.Options{
		TokenPath: tokenFile,
		BaseURL:   baseURL,
	}
	if debug {
		opts.Logger = &stderrLogger{}
	}
	return session.New(opts)
}

// stderrLogger writes log lines to stderr for --debug runs.
type stderrLogger struct{}

func (l *stderrLogger) log(level, msg string, keysAndValues ...any) {
	fmt.Fprintf(os.Stderr, "%s %s", level, msg)
	for i := 0; i+1 < len(keysAndValues); i += 2 {
		fmt.Fprintf(os.Stderr, " %v=%v", keysAndValues[i], keysAndValues[i+1])
	}
	fmt.Fprintln(os.Stderr)
}

func (l *stderrLogger) Debug(msg string, keysAndValues ...any) { l.log("DEBUG", msg, keysAndValues...) }
func (l *stderrLogger) Info(msg string, keysAndValues ...any)  { l.log("INFO", msg, keysAndValues...) }
func (l *stderrLogger) Warn(msg string, keysAndValues ...any)  { l.log("WARN", msg, keysAndValues...) }
func (l *stderrLogger) Error(msg string, keysAndValues ...any) { l.log("ERROR", msg, keysAndValues...) }

var _ log.Logger = (*stderrLogger)(nil)
