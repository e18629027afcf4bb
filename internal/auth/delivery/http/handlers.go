package http

import (
	"github.com/gin-gonic/gin"

	"github-agent/pkg/response"
)

// Login godoc
// @Summary     Start GitHub OAuth
// @Description Returns the GitHub authorize URL (scopes repo, delete_repo, read:user) and the state it was issued with.
// @Tags        Auth
// @Produce     json
// @Param       redirect_uri query string false "Callback URL (default: configured redirect_url)"
// @Success     200 {object} loginResp
// @Failure     503 {object} response.Resp "OAuth not configured"
// @Router      /auth/github/login [GET]
func (h *handler) Login(c *gin.Context) {
	ctx := c.Request.Context()

	req, err := h.processLoginReq(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	output, err := h.uc.AuthorizeURL(ctx, req.toInput())
	if err != nil {
		h.l.Errorf(ctx, "uc.AuthorizeURL: %v", err)
		response.Error(c, h.mapError(err))
		return
	}

	response.OK(c, h.newLoginResp(output))
}

// Callback godoc
// @Summary     Finish GitHub OAuth
// @Description Exchanges the authorization code for an access token. Each state is accepted once.
// @Tags        Auth
// @Produce     json
// @Param       code  query string true "Authorization code"
// @Param       state query string true "State returned by /auth/github/login"
// @Success     200 {object} tokenResp
// @Failure     400 {object} response.Resp "Bad Request"
// @Failure     502 {object} response.Resp "Exchange failed"
// @Router      /auth/github/callback [GET]
func (h *handler) Callback(c *gin.Context) {
	ctx := c.Request.Context()

	req, err := h.processCallbackReq(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	output, err := h.uc.Exchange(ctx, req.toInput())
	if err != nil {
		h.l.Errorf(ctx, "uc.Exchange: %v", err)
		response.Error(c, h.mapError(err))
		return
	}

	response.OK(c, h.newTokenResp(output))
}
