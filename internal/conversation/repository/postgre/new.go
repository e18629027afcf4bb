package postgre

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github-agent/internal/conversation/repository"
	"github-agent/pkg/log"
)

type implRepository struct {
	db           *sql.DB
	l            log.Logger
	queryTimeout time.Duration
	now          func() time.Time
}

// New creates a new PostgreSQL-backed conversation Repository.
func New(db *sql.DB, l log.Logger, cfg repository.Config) repository.Repository {
	if db == nil {
		panic("conversation/repository/postgre: db is required")
	}
	return &implRepository{
		db:           db,
		l:            l,
		queryTimeout: cfg.EffectiveQueryTimeout(),
		now:          time.Now,
	}
}

// dsn is a helper to return a method-scoped context string for logging.
func (r *implRepository) dsn(method string) string {
	return fmt.Sprintf("conversation/repository/postgre.%s", method)
}

// bound limits one operation, pool wait included.
func (r *implRepository) bound(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, r.queryTimeout)
}
