package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github-agent/config"
	_ "github-agent/docs" // Swagger docs
	actionUC "github-agent/internal/action/usecase"
	"github-agent/internal/agent"
	"github-agent/internal/agent/orchestrator"
	"github-agent/internal/agent/tools"
	"github-agent/internal/auth"
	authUC "github-agent/internal/auth/usecase"
	"github-agent/internal/conversation"
	conversationUC "github-agent/internal/conversation/usecase"
	"github-agent/internal/httpserver"
	"github-agent/internal/middleware"
	"github-agent/internal/storage"
	"github-agent/pkg/github"
	"github-agent/pkg/llmprovider"
	"github-agent/pkg/log"
)

// @title       GitHub Agent API
// @description Conversational agent acting on the caller's GitHub account, with persisted session history.
// @version     1
// @host        localhost:8000
// @schemes     http
// @securityDefinitions.apikey BearerAuth
// @in          header
// @name        Authorization
func main() {
	// 1. Configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Failed to load config: ", err)
		return
	}

	// 2. Logger
	logger := log.Init(log.ZapConfig{
		Level:        cfg.Logger.Level,
		Mode:         cfg.Logger.Mode,
		Encoding:     cfg.Logger.Encoding,
		ColorEnabled: cfg.Logger.ColorEnabled,
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger.Info(ctx, "Starting GitHub Agent...")
	logger.Infof(ctx, "Environment: %s", cfg.Environment.Name)

	// 3. Conversation store
	store, err := storage.Open(ctx, cfg, logger)
	if err != nil {
		logger.Errorf(ctx, "Failed to open conversation store: %v", err)
		return
	}
	defer func() {
		if err := store.Close(); err != nil {
			logger.Warnf(ctx, "Failed to close conversation store: %v", err)
		}
	}()

	// 4. Metrics
	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	// 5. GitHub client + remote actions
	gh := github.New(github.Config{
		BaseURL:    cfg.GitHub.APIURL,
		APIVersion: cfg.GitHub.APIVersion,
		Timeout:    cfg.GitHub.Timeout,
	})
	actions := actionUC.New(logger, gh, actionUC.NewMetrics(registry), actionUC.Config{
		CacheTimeout: cfg.GitHub.CacheTimeout,
	})

	// 6. Agent: tools + LLM providers + ReAct loop
	toolRegistry := agent.NewToolRegistry()
	tools.RegisterAll(toolRegistry, actions)
	logger.Infof(ctx, "Registered %d agent tools", len(toolRegistry.List()))

	var runner conversation.Agent
	providers, err := llmprovider.InitializeProviders(&cfg.LLM)
	if err != nil {
		logger.Warnf(ctx, "Agent disabled, no usable LLM provider: %v", err)
	} else {
		manager := llmprovider.NewManager(providers, llmprovider.ConfigFrom(cfg.LLM), logger)
		runner = orchestrator.New(manager, toolRegistry, logger, cfg.Agent.MaxSteps)
		logger.Infof(ctx, "Agent initialized with %d LLM provider(s)", len(providers))
	}

	convUC := conversationUC.New(store.Repo, runner, logger)

	// 7. OAuth (optional)
	var oauthUC auth.UseCase
	if cfg.GitHub.OAuth.ClientID != "" {
		oauthUC = authUC.New(logger, authUC.Config{
			ClientID:     cfg.GitHub.OAuth.ClientID,
			ClientSecret: cfg.GitHub.OAuth.ClientSecret,
			RedirectURL:  cfg.GitHub.OAuth.RedirectURL,
			StateTTL:     cfg.GitHub.OAuth.StateTTL,
		})
	}

	// 8. HTTP Server
	httpServer, err := httpserver.New(logger, httpserver.Config{
		Logger:         logger,
		Port:           cfg.HTTPServer.Port,
		Mode:           cfg.HTTPServer.Mode,
		Environment:    cfg.Environment.Name,
		ConversationUC: convUC,
		AgentReady:     runner != nil,
		Middleware: middleware.New(logger, middleware.Config{
			Verifier:       gh,
			VerifyTimeout:  cfg.GitHub.VerifyTimeout,
			RequestsPerMin: cfg.RateLimit.RequestsPerMin,
		}),
		AuthUC:   oauthUC,
		Store:    store.DB,
		Gatherer: registry,
	})
	if err != nil {
		logger.Error(ctx, "Failed to initialize HTTP server: ", err)
		return
	}

	// 9. Run
	if err := httpServer.Run(ctx); err != nil {
		logger.Error(ctx, "Failed to run server: ", err)
		return
	}

	logger.Info(ctx, "Server stopped gracefully")
}
