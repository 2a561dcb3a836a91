package main

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/five82/hackerstories/internal/app"
	"github.com/five82/hackerstories/internal/prefs"
)

// newStoreCmd groups prefs store maintenance subcommands.
func newStoreCmd(v *viper.Viper) *cobra.Command {
	storeCmd := &cobra.Command{
		Use:   "store",
		Short: "Inspect the preferences store",
	}
	storeCmd.AddCommand(
		&cobra.Command{
			Use:   "get <key>",
			Short: "Print a stored value",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				return withStore(cmd, v, func(ctx context.Context, store prefs.Store) error {
					value, ok, err := store.Get(ctx, args[0])
					if err != nil {
						return err
					}
					if !ok {
						return fmt.Errorf("key %q is not set", args[0])
					}
					fmt.Fprintln(cmd.OutOrStdout(), value)
					return nil
				})
			},
		},
		&cobra.Command{
			Use:   "set <key> <value>",
			Short: "Store a value",
			Args:  cobra.ExactArgs(2),
			RunE: func(cmd *cobra.Command, args []string) error {
				return withStore(cmd, v, func(ctx context.Context, store prefs.Store) error {
					return store.Set(ctx, args[0], args[1])
				})
			},
		},
		&cobra.Command{
			Use:   "ping",
			Short: "Check that the store backend is reachable",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				return withStore(cmd, v, func(ctx context.Context, store prefs.Store) error {
					pinger, ok := store.(prefs.Pinger)
					if !ok {
						fmt.Fprintln(cmd.OutOrStdout(), "OK")
						return nil
					}
					ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
					defer cancel()
					if err := pinger.Ping(ctx); err != nil {
						return err
					}
					fmt.Fprintln(cmd.OutOrStdout(), "PONG")
					return nil
				})
			},
		},
	)
	return storeCmd
}

func withStore(cmd *cobra.Command, v *viper.Viper, fn func(context.Context, prefs.Store) error) error {
	opts := appOptions(v)
	opts.LogOutput = cmd.ErrOrStderr()
	sess, err := app.OpenSession(cmd.Context(), opts)
	if err != nil {
		return err
	}
	defer func() { _ = sess.Close() }()
	return fn(cmd.Context(), sess.Store)
}
