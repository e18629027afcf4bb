package middleware

import (
	"context"
	"time"

	"github-agent/pkg/github"
	"github-agent/pkg/log"
)

const defaultVerifyTimeout = 10 * time.Second

// TokenVerifier resolves a bearer token to the GitHub account it belongs to.
type TokenVerifier interface {
	GetAuthenticatedUser(ctx context.Context, token string) (github.User, error)
}

type Middleware struct {
	l             log.Logger
	verifier      TokenVerifier
	verifyTimeout time.Duration
	limiter       *rateLimiter
}

// Config is the dependency bag passed to New().
type Config struct {
	Verifier       TokenVerifier
	VerifyTimeout  time.Duration
	RequestsPerMin int
}

func New(l log.Logger, cfg Config) Middleware {
	timeout := cfg.VerifyTimeout
	if timeout <= 0 {
		timeout = defaultVerifyTimeout
	}
	return Middleware{
		l:             l,
		verifier:      cfg.Verifier,
		verifyTimeout: timeout,
		limiter:       newRateLimiter(cfg.RequestsPerMin),
	}
}
