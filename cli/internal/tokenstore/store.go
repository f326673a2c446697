// Package tokenstore persists the access token between CLI invocations.
// The token is stored as a single JSON file with owner-only permissions;
// the library itself is storage-agnostic and only this front-end decides
// where and how the token lives on disk.
package tokenstore

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/spiris/spiris-go/auth"
)

// ErrNoToken is returned by Load when no token has been saved yet.
var ErrNoToken = errors.New("no saved token")

// DefaultPath returns the default token file location,
// $XDG_CONFIG_HOME/spiris/token.json or the platform equivalent.
func DefaultPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("resolving config directory: %w", err)
	}
	return filepath.Join(dir, "spiris", "token.json"), nil
}

// Load reads the token from the given path.
func Load(path string) (*auth.Token, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, ErrNoToken
		}
		return nil, fmt.Errorf("reading token file: %w", err)
	}

	var tok auth.Token
	if err := json.Unmarshal(data, &tok); err != nil {
		return nil, fmt.Errorf("parsing token file %s: %w", path, err)
	}
	return &tok, nil
}

// Save writes the token to the given path, creating parent directories as
// needed. The file is readable by the owner only.
func Save(path string, tok *auth.Token) error {
	if tok == nil {
		return errors.New("token cannot be nil")
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return fmt.Errorf("creating token directory: %w", err)
	}

	data, err := json.MarshalIndent(tok, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding token: %w", err)
	}

	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("writing token file: %w", err)
	}
	return nil
}

// Delete removes the saved token, ignoring a missing file.
func Delete(path string) error {
	if err := os.Remove(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("removing token file: %w", err)
	}
	return nil
}
