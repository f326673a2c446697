package cmd

import (
	"bufio"
	"errors"
	"fmt"
	"net/url"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/spiris/spiris-go/cli/internal/output"
	"github.com/spiris/spiris-go/cli/internal/session"
	"github.com/spiris/spiris-go/cli/internal/tokenstore"
)

var authCmd = &cobra.Command{
	Use:   "auth",
	Short: "Manage API credentials",
}

var authLoginCmd = &cobra.Command{
	Use:   "login",
	Short: "Authenticate and store a token",
	Long: `Start the authorization code flow. The command prints an authorization
URL; open it in a browser, approve access, then paste the redirect URL
(or just the code parameter) back here. The resulting token is stored
on disk for later commands.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		handler, err := session.HandlerFromEnv()
		if err != nil {
			return err
		}

		authURL, state, verifier := handler.AuthorizeURL()
		fmt.Println("Open this URL in a browser and approve access:")
		fmt.Println()
		fmt.Println("  " + authURL)
		fmt.Println()
		fmt.Print("Paste the redirect URL or code: ")

		reader := bufio.NewReader(os.Stdin)
		line, err := reader.ReadString('\n')
		if err != nil {
			return fmt.Errorf("reading code: %w", err)
		}

		code, err := parseLoginInput(strings.TrimSpace(line), state)
		if err != nil {
			return err
		}

		tok, err := handler.ExchangeCode(cmd.Context(), code, verifier)
		if err != nil {
			return err
		}

		path, err := resolveTokenPath()
		if err != nil {
			return err
		}
		if err := tokenstore.Save(path, tok); err != nil {
			return err
		}

		formatter := output.Get(getOutputFormat())
		return formatter.FormatToken(tok)
	},
}

var authStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show the stored token's state",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		path, err := resolveTokenPath()
		if err != nil {
			return err
		}

		tok, err := tokenstore.Load(path)
		if err != nil {
			if errors.Is(err, tokenstore.ErrNoToken) {
				return fmt.Errorf("no stored token; run 'spiris auth login'")
			}
			return err
		}

		formatter := output.Get(getOutputFormat())
		return formatter.FormatToken(tok)
	},
}

var authRefreshCmd = &cobra.Command{
	Use:   "refresh",
	Short: "Refresh the stored token now",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := newSession()
		if err != nil {
			return err
		}

		if err := s.RefreshToken(cmd.Context()); err != nil {
			return err
		}

		formatter := output.Get(getOutputFormat())
		return formatter.FormatToken(s.Client.Token())
	},
}

var authLogoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Delete the stored token",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		path, err := resolveTokenPath()
		if err != nil {
			return err
		}
		return tokenstore.Delete(path)
	},
}

// parseLoginInput accepts either a bare authorization code or the full
// redirect URL. A full URL must carry the state issued for this flow.
func parseLoginInput(input, wantState string) (string, error) {
	if input == "" {
		return "", fmt.Errorf("no code provided")
	}

	if !strings.Contains(input, "://") {
		return input, nil
	}

	u, err := url.Parse(input)
	if err != nil {
		return "", fmt.Errorf("parsing redirect URL: %w", err)
	}
	q := u.Query()
	if got := q.Get("state"); got != wantState {
		return "", fmt.Errorf("state mismatch in redirect URL")
	}
	code := q.Get("code")
	if code == "" {
		return "", fmt.Errorf("redirect URL has no code parameter")
	}
	return code, nil
}

func resolveTokenPath() (string, error) {
	if tokenFile != "" {
		return tokenFile, nil
	}
	return tokenstore.DefaultPath()
}

func init() {
	authCmd.AddCommand(authLoginCmd)
	authCmd.AddCommand(authStatusCmd)
	authCmd.AddCommand(authRefreshCmd)
	authCmd.AddCommand(authLogoutCmd)
	rootCmd.AddCommand(authCmd)
}
