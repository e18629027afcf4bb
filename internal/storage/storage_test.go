package storage

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github-agent/config"
	"github-agent/internal/conversation/repository"
	pkgLog "github-agent/pkg/log"
)

func TestOpen_SQLite(t *testing.T) {
	cfg := &config.Config{
		Storage: config.StorageConfig{Driver: config.StorageDriverSQLite},
		SQLite:  config.SQLiteConfig{Path: filepath.Join(t.TempDir(), "nested", "agent.db")},
	}
	ctx := context.Background()

	store, err := Open(ctx, cfg, pkgLog.NewNop())
	require.NoError(t, err)
	defer func() { assert.NoError(t, store.Close()) }()

	require.NoError(t, store.Repo.CreateSession(ctx, repository.CreateSessionOptions{SessionID: "s1", Username: "alice"}))
	sess, err := store.Repo.GetSession(ctx, "s1")
	require.NoError(t, err)
	assert.Equal(t, "alice", sess.Username)

	// Schema creation is idempotent.
	require.NoError(t, store.Repo.EnsureSchema(ctx))
}

func TestOpen_UnknownDriver(t *testing.T) {
	_, err := Open(context.Background(), &config.Config{Storage: config.StorageConfig{Driver: "mongo"}}, pkgLog.NewNop())
	assert.Error(t, err)
}
