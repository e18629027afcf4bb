package usecase

import (
	"net/http"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
	"golang.org/x/oauth2"
	oauthGitHub "golang.org/x/oauth2/github"

	"github-agent/internal/auth"
	pkgLog "github-agent/pkg/log"
)

const (
	defaultStateTTL = 10 * time.Minute
	maxPendingState = 1000
)

// Config describes the GitHub OAuth app. Endpoint defaults to github.com.
type Config struct {
	ClientID     string
	ClientSecret string
	RedirectURL  string
	StateTTL     time.Duration
	Endpoint     oauth2.Endpoint
	HTTPClient   *http.Client
}

type implUseCase struct {
	l          pkgLog.Logger
	oauth      oauth2.Config
	httpClient *http.Client
	// state -> redirect_uri it was issued for
	states *expirable.LRU[string, string]
}

var _ auth.UseCase = (*implUseCase)(nil)

// New creates the OAuth UseCase.
func New(l pkgLog.Logger, cfg Config) auth.UseCase {
	ttl := cfg.StateTTL
	if ttl <= 0 {
		ttl = defaultStateTTL
	}
	endpoint := cfg.Endpoint
	if endpoint.AuthURL == "" {
		endpoint = oauthGitHub.Endpoint
	}
	return &implUseCase{
		l: l,
		oauth: oauth2.Config{
			ClientID:     cfg.ClientID,
			ClientSecret: cfg.ClientSecret,
			RedirectURL:  cfg.RedirectURL,
			Endpoint:     endpoint,
			Scopes:       auth.Scopes,
		},
		httpClient: cfg.HTTPClient,
		states:     expirable.NewLRU[string, string](maxPendingState, nil, ttl),
	}
}
