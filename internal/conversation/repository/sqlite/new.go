package sqlite

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

// New creates a SQLite-backed conversation Repository. It is the local
// alternative to the postgre backend and shares its semantics.
func New(db *sql.DB, l log.Logger, cfg repository.Config) repository.Repository {
	if db == nil {
		panic("conversation/repository/sqlite: db is required")
	}
	return &implRepository{
		db:           db,
		l:            l,
		queryTimeout: cfg.EffectiveQueryTimeout(),
		now:          time.Now,
	}
}

func (r *implRepository) dsn(method string) string {
	return fmt.Sprintf("conversation/repository/sqlite.%s", method)
}

// bound limits one operation, pool wait included.
func (r *implRepository) bound(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, r.queryTimeout)
}
