package usecase

import (
	"time"

	"github-agent/internal/action"
	"github-agent/internal/repocache"
	"github-agent/pkg/github"
	pkgLog "github-agent/pkg/log"
)

// Config tunes remote call timeouts. Zero values keep the client defaults.
type Config struct {
	CacheTimeout time.Duration
}

type implUseCase struct {
	l       pkgLog.Logger
	gh      *github.Client
	builder *repocache.Builder
	metrics *Metrics
	now     func() time.Time
}

var _ action.UseCase = (*implUseCase)(nil)

// New creates the remote action UseCase. metrics may be nil.
func New(l pkgLog.Logger, gh *github.Client, metrics *Metrics, cfg Config) action.UseCase {
	cacheTimeout := cfg.CacheTimeout
	if cacheTimeout <= 0 {
		cacheTimeout = DefaultCacheTimeout
	}
	return &implUseCase{
		l:       l,
		gh:      gh,
		builder: repocache.NewBuilder(gh.WithTimeout(cacheTimeout)),
		metrics: metrics,
		now:     time.Now,
	}
}
