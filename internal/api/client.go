package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"
)

const (
	// DefaultBaseURL is the Zentask backend origin used when no server
	// URL is configured.
	DefaultBaseURL = "http://localhost:3001"

	// DefaultTimeout is the default HTTP client timeout.
	DefaultTimeout = 30 * time.Second
)

// Client is the Zentask API client. Every outbound request flows
// through a single pipeline that attaches the stored access token as a
// bearer credential and transparently recovers from a recoverable 401
// by refreshing the token and replaying the request exactly once.
type Client struct {
	httpClient *http.Client
	baseURL    string
	tokens     TokenStore

	refresher *refresher

	// unauthorized receives one element each time a 401 cannot be
	// resolved by refresh. Buffered so the pipeline never blocks on a
	// slow or absent listener.
	unauthorized chan struct{}
}

// NewClient creates a new Zentask API client backed by the given token
// store.
func NewClient(baseURL string, tokens TokenStore) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	c := &Client{
		httpClient: &http.Client{
			Timeout: DefaultTimeout,
		},
		baseURL:      baseURL,
		tokens:       tokens,
		unauthorized: make(chan struct{}, 1),
	}
	c.refresher = newRefresher(c)
	return c
}

// SetHTTPClient allows overriding the default HTTP client (useful for testing).
func (c *Client) SetHTTPClient(httpClient *http.Client) {
	c.httpClient = httpClient
}

// Unauthorized exposes the channel signalled when a retried 401 cannot
// be recovered. The session controller is the intended listener.
func (c *Client) Unauthorized() <-chan struct{} {
	return c.unauthorized
}

// do performs an authenticated request. On a 401 it runs the shared
// refresh and, if a new access token is obtained, replays the request
// once; the replay's outcome is final. When no token can be obtained
// the stored pair is cleared, the unauthorized channel is signalled,
// and the original failure is returned.
func (c *Client) do(ctx context.Context, method, path string, body, result interface{}) error {
	err := c.send(ctx, method, path, body, result, c.tokens.Access())

	var apiErr *APIError
	if !errors.As(err, &apiErr) || apiErr.StatusCode != http.StatusUnauthorized {
		return err
	}

	newToken := c.refresher.refresh(ctx)
	if newToken == "" {
		c.tokens.Clear()
		c.notifyUnauthorized()
		return err
	}

	return c.send(ctx, method, path, body, result, newToken)
}

// send builds and executes one HTTP round trip, decoding the JSON
// response into result when non-nil. token == "" sends the request
// unauthenticated.
func (c *Client) send(ctx context.Context, method, path string, body, result interface{}, token string) error {
	var bodyReader io.Reader
	if body != nil {
		jsonBody, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to marshal request body: %w", err)
		}
		bodyReader = bytes.NewReader(jsonBody)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, bodyReader)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode >= 400 {
		return newAPIError(resp.StatusCode, respBody)
	}

	if result != nil && len(respBody) > 0 {
		if err := json.Unmarshal(respBody, result); err != nil {
			return fmt.Errorf("failed to decode response: %w", err)
		}
	}

	return nil
}

func (c *Client) notifyUnauthorized() {
	select {
	case c.unauthorized <- struct{}{}:
	default:
	}
}

// Get performs a GET request.
func (c *Client) Get(ctx context.Context, path string, result interface{}) error {
	return c.do(ctx, http.MethodGet, path, nil, result)
}

// Post performs a POST request.
func (c *Client) Post(ctx context.Context, path string, body, result interface{}) error {
	return c.do(ctx, http.MethodPost, path, body, result)
}

// Put performs a PUT request.
func (c *Client) Put(ctx context.Context, path string, body interface{}) error {
	return c.do(ctx, http.MethodPut, path, body, nil)
}

// Delete performs a DELETE request.
func (c *Client) Delete(ctx context.Context, path string) error {
	return c.do(ctx, http.MethodDelete, path, nil, nil)
}

// pathEscape escapes a path segment such as a task id.
func pathEscape(segment string) string {
	return url.PathEscape(segment)
}
