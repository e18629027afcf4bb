package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github-agent/internal/conversation"
	"github-agent/pkg/response"
)

// Query godoc
// @Summary     Run one agent turn
// @Description Verifies the bearer token, replays the session history, runs the agent and persists the turn when a session_id is given.
// @Tags        Agent
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       body body queryReq true "Agent query"
// @Success     200 {object} queryResp
// @Failure     401 {object} response.Resp "Unauthorized"
// @Failure     422 {object} response.Resp "Invalid body"
// @Failure     500 {object} response.Resp "Internal Server Error"
// @Router      /agent/query [POST]
func (h *handler) Query(c *gin.Context) {
	ctx := c.Request.Context()

	identity, cred, err := h.caller(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	req, err := h.processQueryReq(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	output, err := h.uc.ProcessQuery(ctx, req.toInput(identity, cred))
	if err != nil {
		h.l.Errorf(ctx, "uc.ProcessQuery: %v", err)
		response.Error(c, h.mapError(err))
		return
	}

	c.JSON(http.StatusOK, h.newQueryResp(output))
}

// ListTurns godoc
// @Summary     List session turns
// @Description Returns the turn log of a session owned by the caller, oldest first.
// @Tags        Sessions
// @Produce     json
// @Security    BearerAuth
// @Param       session_id path  string true  "Session ID"
// @Param       limit      query int    false "Page size (default: 50)"
// @Success     200 {object} listTurnsResp
// @Failure     400 {object} response.Resp "Bad Request"
// @Failure     403 {object} response.Resp "Forbidden"
// @Failure     404 {object} response.Resp "Not Found"
// @Failure     500 {object} response.Resp "Internal Server Error"
// @Router      /api/v1/sessions/{session_id}/turns [GET]
func (h *handler) ListTurns(c *gin.Context) {
	ctx := c.Request.Context()

	identity, _, err := h.caller(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	req, err := h.processListTurnsReq(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	output, err := h.uc.ListTurns(ctx, req.toInput(identity.Login))
	if err != nil {
		h.l.Errorf(ctx, "uc.ListTurns: %v", err)
		response.Error(c, h.mapError(err))
		return
	}

	response.OK(c, h.newListTurnsResp(output))
}

// DetailSession godoc
// @Summary     Get session info
// @Description Returns the owner and timestamps of a session, without its history.
// @Tags        Sessions
// @Produce     json
// @Security    BearerAuth
// @Param       session_id path string true "Session ID"
// @Success     200 {object} sessionResp
// @Failure     403 {object} response.Resp "Forbidden"
// @Failure     404 {object} response.Resp "Not Found"
// @Failure     500 {object} response.Resp "Internal Server Error"
// @Router      /api/v1/sessions/{session_id} [GET]
func (h *handler) DetailSession(c *gin.Context) {
	ctx := c.Request.Context()

	identity, _, err := h.caller(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	output, err := h.uc.DetailSession(ctx, conversation.DetailSessionInput{
		SessionID: c.Param("session_id"),
		Login:     identity.Login,
	})
	if err != nil {
		h.l.Errorf(ctx, "uc.DetailSession: %v", err)
		response.Error(c, h.mapError(err))
		return
	}

	response.OK(c, h.newSessionResp(output))
}
