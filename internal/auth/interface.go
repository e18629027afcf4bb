package auth

import "context"

//go:generate mockery --name UseCase
type UseCase interface {
	// AuthorizeURL starts the GitHub OAuth flow and remembers the issued state.
	AuthorizeURL(ctx context.Context, input AuthorizeInput) (AuthorizeOutput, error)
	// Exchange trades an authorization code for an access token. A state is
	// accepted once.
	Exchange(ctx context.Context, input ExchangeInput) (ExchangeOutput, error)
}
