package api

import (
	"context"
	"net/http"

	"golang.org/x/sync/singleflight"
)

// refresher guarantees at most one in-flight refresh round trip no
// matter how many requests observe a 401 in the same window. All
// concurrent callers share the outcome of the single attempt; the
// in-flight handle is released once it resolves so a later 401 can
// trigger a fresh attempt.
type refresher struct {
	client *Client
	group  singleflight.Group
}

func newRefresher(c *Client) *refresher {
	return &refresher{client: c}
}

// refresh returns a usable access token or "". A missing refresh token
// resolves immediately without a network call, and a failed refresh
// request resolves to "" rather than an error so callers branch
// uniformly on presence. On success the new access token is persisted
// before any caller resumes.
func (r *refresher) refresh(ctx context.Context) string {
	v, _, _ := r.group.Do("refresh-token", func() (interface{}, error) {
		refreshToken := r.client.tokens.Refresh()
		if refreshToken == "" {
			return "", nil
		}

		var resp refreshResponse
		err := r.client.send(ctx, http.MethodPost, "/api/refresh-token",
			refreshRequest{RefreshToken: refreshToken}, &resp, "")
		if err != nil || resp.AccessToken == "" {
			// Refresh failures collapse into "no token"; callers fall
			// back to the unauthorized path.
			return "", nil
		}

		r.client.tokens.Store(TokenPair{
			AccessToken:  resp.AccessToken,
			RefreshToken: refreshToken,
		})
		return resp.AccessToken, nil
	})

	token, _ := v.(string)
	return token
}
