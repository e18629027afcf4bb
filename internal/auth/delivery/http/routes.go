package http

import "github.com/gin-gonic/gin"

// RegisterRoutes maps the OAuth endpoints under /auth/github.
func RegisterRoutes(rg *gin.RouterGroup, h *handler) {
	gh := rg.Group("/github")
	{
		gh.GET("/login", h.Login)
		gh.GET("/callback", h.Callback)
	}
}
