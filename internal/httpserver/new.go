package httpserver

import (
	"context"
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"

	"github-agent/internal/auth"
	"github-agent/internal/conversation"
	"github-agent/internal/middleware"
	"github-agent/pkg/log"
)

// Pinger reports whether the conversation store is reachable. *sql.DB implements it.
type Pinger interface {
	PingContext(ctx context.Context) error
}

// HTTPServer holds all dependencies for the HTTP server.
type HTTPServer struct {
	// Server
	gin         *gin.Engine
	l           log.Logger
	port        int
	mode        string
	environment string

	// Agent domain
	conversationUC conversation.UseCase
	agentReady     bool
	mw             middleware.Middleware

	// OAuth
	authUC auth.UseCase

	// Readiness and metrics
	store    Pinger
	gatherer prometheus.Gatherer
}

// Config is the dependency bag passed to New().
type Config struct {
	Logger      log.Logger
	Port        int
	Mode        string
	Environment string

	ConversationUC conversation.UseCase
	AgentReady     bool
	Middleware     middleware.Middleware

	// Optional: /auth/github routes are skipped when nil.
	AuthUC auth.UseCase

	Store    Pinger
	Gatherer prometheus.Gatherer
}

// New creates a new HTTPServer instance.
func New(logger log.Logger, cfg Config) (*HTTPServer, error) {
	gin.SetMode(cfg.Mode)

	srv := &HTTPServer{
		l:              logger,
		gin:            gin.New(),
		port:           cfg.Port,
		mode:           cfg.Mode,
		environment:    cfg.Environment,
		conversationUC: cfg.ConversationUC,
		agentReady:     cfg.AgentReady,
		mw:             cfg.Middleware,
		authUC:         cfg.AuthUC,
		store:          cfg.Store,
		gatherer:       cfg.Gatherer,
	}

	if err := srv.validate(); err != nil {
		return nil, err
	}

	if srv.gatherer == nil {
		srv.gatherer = prometheus.DefaultGatherer
	}

	if err := srv.mapHandlers(); err != nil {
		return nil, err
	}

	return srv, nil
}

func (srv HTTPServer) validate() error {
	if srv.l == nil {
		return errors.New("logger is required")
	}
	if srv.mode == "" {
		return errors.New("mode is required")
	}
	if srv.port == 0 {
		return errors.New("port is required")
	}
	if srv.conversationUC == nil {
		return errors.New("conversation usecase is required")
	}
	return nil
}
