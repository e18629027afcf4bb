package httpserver

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	authHTTP "github-agent/internal/auth/delivery/http"
	conversationHTTP "github-agent/internal/conversation/delivery/http"
)

const environmentProduction = "production"

func (srv HTTPServer) mapHandlers() error {
	srv.registerMiddlewares()
	srv.registerSystemRoutes()

	if err := srv.registerDomainRoutes(); err != nil {
		return err
	}

	return nil
}

func (srv HTTPServer) registerMiddlewares() {
	srv.gin.Use(gin.Recovery())
	srv.gin.Use(srv.mw.RequestID())

	ctx := context.Background()
	if srv.environment == environmentProduction {
		srv.l.Infof(ctx, "Server mode: production")
	} else {
		srv.gin.Use(gin.Logger())
		srv.l.Infof(ctx, "Server mode: %s", srv.environment)
	}
}

func (srv HTTPServer) registerSystemRoutes() {
	srv.gin.GET("/", srv.healthCheck)
	srv.gin.GET("/health", srv.healthCheck)
	srv.gin.GET("/ready", srv.readyCheck)
	srv.gin.GET("/live", srv.liveCheck)

	srv.gin.GET("/metrics", gin.WrapH(promhttp.HandlerFor(srv.gatherer, promhttp.HandlerOpts{})))

	srv.gin.GET("/swagger/*any", ginSwagger.WrapHandler(
		swaggerFiles.Handler,
		ginSwagger.URL("doc.json"),
		ginSwagger.DefaultModelsExpandDepth(-1),
	))
}

// registerDomainRoutes registers all domain routes.
func (srv HTTPServer) registerDomainRoutes() error {
	ctx := context.Background()

	// Agent turn + session audit reads
	h := conversationHTTP.New(srv.l, srv.conversationUC)
	conversationHTTP.RegisterAgentRoutes(srv.gin.Group("/agent"), h, srv.mw)
	conversationHTTP.RegisterSessionRoutes(srv.gin.Group("/api/v1"), h, srv.mw)
	srv.l.Infof(ctx, "Agent routes registered at POST /agent/query and GET /api/v1/sessions")

	// GitHub OAuth
	if srv.authUC != nil {
		authHTTP.RegisterRoutes(srv.gin.Group("/auth"), authHTTP.New(srv.l, srv.authUC))
		srv.l.Infof(ctx, "OAuth routes registered at /auth/github")
	} else {
		srv.l.Infof(ctx, "OAuth not configured, skipping /auth/github routes")
	}

	return nil
}
