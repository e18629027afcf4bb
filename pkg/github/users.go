package github

import (
	"context"
	"net/http"
)

// GetAuthenticatedUser returns the account that owns token.
func (c *Client) GetAuthenticatedUser(ctx context.Context, token string) (User, error) {
	var u User
	_, err := c.do(ctx, token, http.MethodGet, "/user", nil, nil, &u)
	return u, err
}
