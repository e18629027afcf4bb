package http

import (
	"github.com/gin-gonic/gin"

	"github-agent/internal/middleware"
)

// RegisterAgentRoutes maps the agent query endpoint.
func RegisterAgentRoutes(rg *gin.RouterGroup, h *handler, mw middleware.Middleware) {
	rg.POST("/query", mw.Auth(), mw.RateLimit(), h.Query)
}

// RegisterSessionRoutes maps the session audit reads. Every route requires a
// bearer token of the session owner.
func RegisterSessionRoutes(rg *gin.RouterGroup, h *handler, mw middleware.Middleware) {
	sessions := rg.Group("/sessions")
	{
		sessions.GET("/:session_id", mw.Auth(), h.DetailSession)
		sessions.GET("/:session_id/turns", mw.Auth(), h.ListTurns)
	}
}
