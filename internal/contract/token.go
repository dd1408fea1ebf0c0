package contract

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// TokenEnvVar overrides the stored token when set.
const TokenEnvVar = "TEAMLENS_TOKEN"

// TokenStore resolves, persists and clears the completion API bearer token.
// The token lives in a mode-0600 file under the user config dir, standing in
// for an editor host's secret storage.
type TokenStore struct {
	// Path overrides the default token file location, used by tests.
	Path string
}

// tokenFilePath returns the resolved token file path.
func (s *TokenStore) tokenFilePath() (string, error) {
	if s.Path != "" {
		return s.Path, nil
	}
	configDir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("could not resolve user config dir: %w", err)
	}
	return filepath.Join(configDir, "teamlens", "token"), nil
}

// Get returns the bearer token, preferring the environment variable over the
// stored file. An empty string with a nil error means no token is configured.
func (s *TokenStore) Get() (string, error) {
	if tok := strings.TrimSpace(os.Getenv(TokenEnvVar)); tok != "" {
		return tok, nil
	}
	path, err := s.tokenFilePath()
	if err != nil {
		return "", err
	}
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("could not read token file %q: %w", path, err)
	}
	return strings.TrimSpace(string(data)), nil
}

// Set persists the token to the token file, creating parent directories.
func (s *TokenStore) Set(token string) error {
	token = strings.TrimSpace(token)
	if token == "" {
		return NewValidationError("token cannot be empty")
	}
	path, err := s.tokenFilePath()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return fmt.Errorf("could not create token directory: %w", err)
	}
	if err := os.WriteFile(path, []byte(token+"\n"), 0o600); err != nil {
		return fmt.Errorf("could not write token file %q: %w", path, err)
	}
	return nil
}

// Clear removes the stored token file. Missing files are not an error.
func (s *TokenStore) Clear() error {
	path, err := s.tokenFilePath()
	if err != nil {
		return err
	}
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("could not remove token file %q: %w", path, err)
	}
	return nil
}
