package httpserver

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github-agent/pkg/response"
)

// Health response constants (single source for version and service identity).
const (
	HealthMessage = "GitHub Agent API is running"
	HealthVersion = "1.0.0"
	ServiceName   = "github-agent"

	readyPingTimeout = 2 * time.Second
)

// healthCheck handles health check requests
// @Summary Health Check
// @Description Check if the API is healthy
// @Tags Health
// @Accept json
// @Produce json
// @Success 200 {object} map[string]interface{} "API is healthy"
// @Router /health [get]
func (srv HTTPServer) healthCheck(c *gin.Context) {
	response.OK(c, gin.H{
		"status":  "healthy",
		"message": HealthMessage,
		"version": HealthVersion,
		"service": ServiceName,
	})
}

// readyCheck reports whether the agent is initialized and the store answers.
// @Summary Readiness Check
// @Description Check if the agent is initialized and the conversation store is reachable
// @Tags Health
// @Accept json
// @Produce json
// @Success 200 {object} map[string]interface{} "API is ready"
// @Failure 503 {object} map[string]interface{} "API is not ready"
// @Router /ready [get]
func (srv HTTPServer) readyCheck(c *gin.Context) {
	storeStatus := "ok"
	if srv.store != nil {
		ctx, cancel := context.WithTimeout(c.Request.Context(), readyPingTimeout)
		defer cancel()
		if err := srv.store.PingContext(ctx); err != nil {
			srv.l.Warnf(ctx, "httpserver.readyCheck: store ping: %v", err)
			storeStatus = "unavailable"
		}
	}

	agentStatus := "initialized"
	if !srv.agentReady {
		agentStatus = "not initialized"
	}

	data := gin.H{
		"status":  "ready",
		"agent":   agentStatus,
		"store":   storeStatus,
		"version": HealthVersion,
		"service": ServiceName,
	}
	if !srv.agentReady || storeStatus != "ok" {
		data["status"] = "not ready"
		c.JSON(http.StatusServiceUnavailable, response.Resp{
			ErrorCode: http.StatusServiceUnavailable,
			Message:   "not ready",
			Data:      data,
		})
		return
	}
	response.OK(c, data)
}

// liveCheck handles liveness check requests
// @Summary Liveness Check
// @Description Check if the API is alive
// @Tags Health
// @Accept json
// @Produce json
// @Success 200 {object} map[string]interface{} "API is alive"
// @Router /live [get]
func (srv HTTPServer) liveCheck(c *gin.Context) {
	response.OK(c, gin.H{
		"status":  "alive",
		"message": HealthMessage,
		"version": HealthVersion,
		"service": ServiceName,
	})
}
