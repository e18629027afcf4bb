package middleware

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github-agent/internal/session"
	"github-agent/pkg/github"
	"github-agent/pkg/response"
)

const (
	identityKey   = "github_identity"
	credentialKey = "github_credential"

	bearerPrefix = "Bearer "

	msgMissingHeader = "Missing or invalid Authorization header. Expected format: 'Bearer <token>'"
	msgInvalidToken  = "Invalid or expired GitHub access token"
)

// Auth verifies the bearer token against GitHub before the handler runs and
// stores the caller's identity and credential on the gin context.
func (m Middleware) Auth() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()

		header := c.GetHeader("Authorization")
		if !strings.HasPrefix(header, bearerPrefix) {
			response.Unauthorized(c, msgMissingHeader)
			return
		}
		token := strings.TrimSpace(strings.TrimPrefix(header, bearerPrefix))
		if token == "" {
			response.Unauthorized(c, msgMissingHeader)
			return
		}

		user, err := m.verify(ctx, token)
		if err != nil {
			m.l.Warnf(ctx, "middleware.Auth: token %s rejected: %v", session.Credential(token), err)
			switch github.KindOf(err) {
			case github.KindUnauthorized:
				response.Unauthorized(c, msgInvalidToken)
			case github.KindConnectivity:
				response.ErrorWithStatus(c, http.StatusInternalServerError, fmt.Sprintf("Error connecting to GitHub API: %v", err))
			default:
				status := 0
				if gerr, ok := github.AsError(err); ok {
					status = gerr.StatusCode
				}
				response.Unauthorized(c, fmt.Sprintf("GitHub API error: %d", status))
			}
			return
		}

		c.Set(identityKey, session.Identity{Login: user.Login, Name: user.Name, ID: user.ID})
		c.Set(credentialKey, session.Credential(token))
		c.Next()
	}
}

func (m Middleware) verify(ctx context.Context, token string) (github.User, error) {
	ctx, cancel := context.WithTimeout(ctx, m.verifyTimeout)
	defer cancel()
	return m.verifier.GetAuthenticatedUser(ctx, token)
}

// GetIdentity returns the identity stored by Auth.
func GetIdentity(c *gin.Context) (session.Identity, bool) {
	v, ok := c.Get(identityKey)
	if !ok {
		return session.Identity{}, false
	}
	id, ok := v.(session.Identity)
	return id, ok
}

// GetCredential returns the bearer credential stored by Auth.
func GetCredential(c *gin.Context) (session.Credential, bool) {
	v, ok := c.Get(credentialKey)
	if !ok {
		return "", false
	}
	cred, ok := v.(session.Credential)
	return cred, ok
}
