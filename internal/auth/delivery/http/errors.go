package http

import (
	"errors"
	"net/http"

	"github-agent/internal/auth"
	pkgErrors "github-agent/pkg/errors"
)

func (h *handler) mapError(err error) error {
	switch {
	case errors.Is(err, auth.ErrNotConfigured):
		return pkgErrors.NewHTTPError(http.StatusServiceUnavailable, "GitHub OAuth is not configured")
	case errors.Is(err, auth.ErrMissingCode),
		errors.Is(err, auth.ErrInvalidState):
		return pkgErrors.NewHTTPError(http.StatusBadRequest, err.Error())
	case errors.Is(err, auth.ErrExchangeFailed):
		return pkgErrors.NewHTTPError(http.StatusBadGateway, err.Error())
	default:
		return pkgErrors.ErrInternalServerError
	}
}
