package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github-agent/internal/conversation/repository"
	conversationUC "github-agent/internal/conversation/usecase"
)

func newSessionCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "session <session_id>",
		Short: "Show the owner and timestamps of a session",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			store, _, err := openStore(ctx, opts)
			if err != nil {
				return err
			}
			defer store.Close()

			sess, err := store.Repo.GetSession(ctx, args[0])
			if err != nil {
				return err
			}
			if sess.SessionID == "" {
				return fmt.Errorf("session %q not found", args[0])
			}
			history, err := store.Repo.GetHistory(ctx, args[0])
			if err != nil {
				return err
			}
			renderSession(cmd.OutOrStdout(), sess, len(history))
			return nil
		},
	}
}

func newTurnsCmd(opts *rootOptions) *cobra.Command {
	var limit int
	cmd := &cobra.Command{
		Use:   "turns <session_id>",
		Short: "List the turns of a session, oldest first",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			store, _, err := openStore(ctx, opts)
			if err != nil {
				return err
			}
			defer store.Close()

			turns, err := store.Repo.ListTurns(ctx, repository.ListTurnsOptions{
				SessionID: args[0],
				Limit:     limit,
			})
			if err != nil {
				return err
			}
			renderTurns(cmd.OutOrStdout(), turns)
			return nil
		},
	}
	cmd.Flags().IntVar(&limit, "limit", repository.DefaultListLimit, "Maximum number of turns")
	return cmd
}

func newReplayCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "replay <session_id>",
		Short: "Print the history block the agent receives for a session",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			store, l, err := openStore(ctx, opts)
			if err != nil {
				return err
			}
			defer store.Close()

			text, err := conversationUC.New(store.Repo, nil, l).Replay(ctx, args[0])
			if err != nil {
				return err
			}
			if text == "" {
				fmt.Fprintln(cmd.OutOrStdout(), "(no history)")
				return nil
			}
			fmt.Fprint(cmd.OutOrStdout(), text)
			return nil
		},
	}
}
