package http

import (
	"errors"
	"net/http"

	"github-agent/internal/conversation"
	pkgErrors "github-agent/pkg/errors"
)

// mapError translates domain/use-case errors into HTTP errors from pkg/errors.
func (h *handler) mapError(err error) error {
	switch {
	case errors.Is(err, conversation.ErrAgentUnavailable):
		return pkgErrors.NewHTTPError(http.StatusInternalServerError, "Agent system not initialized")
	case errors.Is(err, conversation.ErrAgentFailed),
		errors.Is(err, conversation.ErrPersistenceFailed):
		return pkgErrors.NewHTTPError(http.StatusInternalServerError, "Error processing query: "+err.Error())
	case errors.Is(err, conversation.ErrSessionNotFound):
		return pkgErrors.NewHTTPError(http.StatusNotFound, "session not found")
	case errors.Is(err, conversation.ErrSessionForbidden):
		return pkgErrors.ErrForbidden
	default:
		return pkgErrors.ErrInternalServerError
	}
}
