package auth

import "errors"

var (
	ErrNotConfigured  = errors.New("github oauth app is not configured")
	ErrMissingCode    = errors.New("authorization code is required")
	ErrInvalidState   = errors.New("unknown or expired oauth state")
	ErrExchangeFailed = errors.New("failed to exchange authorization code")
)
