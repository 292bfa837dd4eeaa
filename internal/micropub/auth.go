package micropub

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"golang.org/x/oauth2"

	"github.com/Tiliavir/mfe/internal/storage"
)

// tokenFilePath returns the path to the stored token file below base.
func tokenFilePath(base string) string {
	return filepath.Join(base, "auth", "micropub_token.json")
}

// LoadToken loads a previously saved token. It returns nil, nil when none is stored.
func LoadToken(base string) (*oauth2.Token, error) {
	path := tokenFilePath(base)
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading token file: %w", err)
	}
	var tok oauth2.Token
	if err := json.Unmarshal(data, &tok); err != nil {
		return nil, fmt.Errorf("corrupt token file (delete %s and run mfe login): %w", path, err)
	}
	return &tok, nil
}

// SaveToken persists a token below base.
func SaveToken(base string, tok *oauth2.Token) error {
	path := tokenFilePath(base)
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return fmt.Errorf("creating auth directory: %w", err)
	}
	data, err := json.MarshalIndent(tok, "", "  ")
	if err != nil {
		return fmt.Errorf("marshalling token: %w", err)
	}
	if err := storage.WriteFileAtomic(path, data, 0o600); err != nil {
		return fmt.Errorf("saving token file: %w", err)
	}
	return nil
}

// ResolveToken picks the stored token, falling back to a configured one.
// It returns nil when neither is available.
func ResolveToken(base, configured string) (*oauth2.Token, error) {
	tok, err := LoadToken(base)
	if err != nil {
		return nil, err
	}
	if tok != nil && tok.AccessToken != "" {
		return tok, nil
	}
	if configured != "" {
		return &oauth2.Token{AccessToken: configured, TokenType: "Bearer"}, nil
	}
	return nil, nil
}
