// Command history browses persisted agent sessions from the terminal.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github-agent/config"
	"github-agent/internal/storage"
	"github-agent/pkg/log"
)

type rootOptions struct {
	driver     string
	sqlitePath string
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}
	cmd := &cobra.Command{
		Use:           "history",
		Short:         "Browse persisted GitHub agent sessions",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmd.PersistentFlags().StringVar(&opts.driver, "driver", "", "Storage driver override (postgres or sqlite)")
	cmd.PersistentFlags().StringVar(&opts.sqlitePath, "sqlite-path", "", "SQLite database file override")

	cmd.AddCommand(
		newSessionCmd(opts),
		newTurnsCmd(opts),
		newReplayCmd(opts),
	)
	return cmd
}

// openStore loads config.yaml, applies flag overrides and opens the store.
func openStore(ctx context.Context, opts *rootOptions) (*storage.Store, log.Logger, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, err
	}
	if opts.driver != "" {
		cfg.Storage.Driver = opts.driver
	}
	if opts.sqlitePath != "" {
		cfg.SQLite.Path = opts.sqlitePath
	}

	l := log.Init(log.ZapConfig{
		Level:    "error",
		Mode:     cfg.Logger.Mode,
		Encoding: cfg.Logger.Encoding,
	})
	store, err := storage.Open(ctx, cfg, l)
	if err != nil {
		return nil, nil, err
	}
	return store, l, nil
}
