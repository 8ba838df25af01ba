package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/zalando/go-keyring"

	"github.com/zentask/zentask/internal/api"
)

const (
	keyringService = "zentask"
	keyringUser    = "tokens"
	credFileName   = ".credentials"
)

// Credentials is the durable token store. The access/refresh pair is
// kept as a single record so the two tokens are always written and
// cleared together. Storage priority: system keyring, then a
// credentials file under the data directory.
type Credentials struct {
	// dataDir overrides the default data directory when non-empty.
	dataDir string
}

var _ api.TokenStore = (*Credentials)(nil)

// NewCredentials creates a token store backed by the system keyring
// with a file fallback.
func NewCredentials() *Credentials {
	return &Credentials{}
}

// DataDir returns the path to the data directory for secure storage.
// Uses XDG_DATA_HOME or defaults to ~/.local/share/zentask/
func (c *Credentials) DataDir() (string, error) {
	if c.dataDir != "" {
		return c.dataDir, nil
	}

	dataHome := os.Getenv("XDG_DATA_HOME")
	if dataHome == "" {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("failed to get home directory: %w", err)
		}
		dataHome = filepath.Join(homeDir, ".local", "share")
	}

	dataDir := filepath.Join(dataHome, "zentask")
	if err := os.MkdirAll(dataDir, 0700); err != nil {
		return "", fmt.Errorf("failed to create data directory: %w", err)
	}

	return dataDir, nil
}

// load reads the stored pair from available sources.
func (c *Credentials) load() api.TokenPair {
	var pair api.TokenPair

	if data, err := keyring.Get(keyringService, keyringUser); err == nil && data != "" {
		if err := json.Unmarshal([]byte(data), &pair); err == nil {
			return pair
		}
	}

	dataDir, err := c.DataDir()
	if err != nil {
		return api.TokenPair{}
	}

	data, err := os.ReadFile(filepath.Join(dataDir, credFileName))
	if err != nil {
		return api.TokenPair{}
	}
	if err := json.Unmarshal(data, &pair); err != nil {
		return api.TokenPair{}
	}
	return pair
}

// Access returns the stored access token, or "" if absent.
func (c *Credentials) Access() string {
	return c.load().AccessToken
}

// Refresh returns the stored refresh token, or "" if absent.
func (c *Credentials) Refresh() string {
	return c.load().RefreshToken
}

// Store persists the token pair. Tries the system keyring first, falls
// back to file storage.
func (c *Credentials) Store(pair api.TokenPair) error {
	data, err := json.Marshal(pair)
	if err != nil {
		return fmt.Errorf("failed to serialize tokens: %w", err)
	}

	if err := keyring.Set(keyringService, keyringUser, string(data)); err == nil {
		return nil
	}

	dataDir, err := c.DataDir()
	if err != nil {
		return err
	}

	credPath := filepath.Join(dataDir, credFileName)
	if err := os.WriteFile(credPath, data, 0600); err != nil {
		return fmt.Errorf("failed to write credentials file: %w", err)
	}

	return nil
}

// Clear removes the stored tokens from all locations.
func (c *Credentials) Clear() error {
	// Keyring removal is best effort
	_ = keyring.Delete(keyringService, keyringUser)

	dataDir, err := c.DataDir()
	if err != nil {
		return err
	}

	credPath := filepath.Join(dataDir, credFileName)
	if err := os.Remove(credPath); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to remove credentials file: %w", err)
	}

	return nil
}
