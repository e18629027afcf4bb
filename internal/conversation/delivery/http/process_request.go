package http

import (
	"github.com/gin-gonic/gin"

	"github-agent/internal/middleware"
	"github-agent/internal/session"
	pkgErrors "github-agent/pkg/errors"
)

// processQueryReq binds the agent query body.
func (h *handler) processQueryReq(c *gin.Context) (queryReq, error) {
	var req queryReq
	if err := c.ShouldBindJSON(&req); err != nil {
		return req, pkgErrors.NewHTTPError(422, err.Error())
	}
	return req, req.validate()
}

// processListTurnsReq binds the session id URI param and the limit query.
func (h *handler) processListTurnsReq(c *gin.Context) (listTurnsReq, error) {
	var req listTurnsReq
	if err := c.ShouldBindQuery(&req); err != nil {
		return req, err
	}
	req.SessionID = c.Param("session_id")
	return req, req.validate()
}

// caller returns the identity and credential stored by the Auth middleware.
func (h *handler) caller(c *gin.Context) (session.Identity, session.Credential, error) {
	identity, ok := middleware.GetIdentity(c)
	if !ok {
		return session.Identity{}, "", pkgErrors.ErrUnauthorized
	}
	cred, ok := middleware.GetCredential(c)
	if !ok {
		return session.Identity{}, "", pkgErrors.ErrUnauthorized
	}
	return identity, cred, nil
}
