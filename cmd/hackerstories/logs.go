package main

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/five82/hackerstories/internal/app"
	"github.com/five82/hackerstories/internal/logtail"
)

func newLogsCmd(v *viper.Viper) *cobra.Command {
	var (
		lines int
		level string
	)
	cmd := &cobra.Command{
		Use:   "logs",
		Short: "Print the end of the TUI log file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := app.LoadConfig(appOptions(v))
			if err != nil {
				return err
			}
			var keep func(string) bool
			if strings.TrimSpace(level) != "" {
				var threshold slog.Level
				if err := threshold.UnmarshalText([]byte(level)); err != nil {
					return fmt.Errorf("level %q: %w", level, err)
				}
				keep = logtail.AtLeast(threshold)
			}
			tail, err := logtail.Read(cfg.LogFile, lines, keep)
			if err != nil {
				return err
			}
			if len(tail) == 0 {
				fmt.Fprintf(cmd.ErrOrStderr(), "no log lines in %s\n", cfg.LogFile)
				return nil
			}
			for _, line := range tail {
				fmt.Fprintln(cmd.OutOrStdout(), line)
			}
			return nil
		},
	}
	cmd.Flags().IntVarP(&lines, "lines", "n", 50, "number of lines to print (0 prints all)")
	cmd.Flags().StringVar(&level, "level", "", "only lines at or above this level: debug, info, warn or error")
	return cmd
}
