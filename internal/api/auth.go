package api

import (
	"context"
	"fmt"
)

// Register creates a new account and returns the issued token pair.
// The caller is responsible for persisting the pair.
func (c *Client) Register(ctx context.Context, creds Credentials) (TokenPair, error) {
	var pair TokenPair
	if err := c.Post(ctx, "/api/register", creds, &pair); err != nil {
		return TokenPair{}, fmt.Errorf("failed to register: %w", err)
	}
	return pair, nil
}

// Login authenticates an existing account and returns the issued token
// pair. The caller is responsible for persisting the pair.
func (c *Client) Login(ctx context.Context, creds Credentials) (TokenPair, error) {
	var pair TokenPair
	if err := c.Post(ctx, "/api/login", creds, &pair); err != nil {
		return TokenPair{}, fmt.Errorf("failed to log in: %w", err)
	}
	return pair, nil
}

// Me returns the identity behind the stored access token.
func (c *Client) Me(ctx context.Context) (*User, error) {
	var user User
	if err := c.Get(ctx, "/api/user/me", &user); err != nil {
		return nil, fmt.Errorf("failed to load current user: %w", err)
	}
	return &user, nil
}
