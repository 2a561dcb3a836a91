package main

import (
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/five82/hackerstories/internal/app"
	"github.com/five82/hackerstories/internal/config"
)

// newRootCmd builds the command tree. Each call gets its own viper instance so
// flags and environment are resolved per invocation.
func newRootCmd() *cobra.Command {
	v := viper.New()
	v.SetEnvPrefix("HACKERSTORIES")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	root := &cobra.Command{
		Use:           "hackerstories",
		Short:         "Search Hacker News from the terminal",
		Long:          "Interactive Hacker News search. Run without a subcommand to start the TUI.",
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.Run(cmd.Context(), appOptions(v))
		},
	}

	flags := root.PersistentFlags()
	flags.String("config", "", "config file (default: ~/.config/hackerstories/config.toml)")
	flags.String("endpoint", "", "search endpoint prefix the query text is appended to")
	flags.String("store", "", "prefs backend: file, redis, sqlite or memory")
	flags.String("store-path", "", "prefs file or sqlite database path")
	flags.String("theme", "", "UI theme: Nightfox, Kanagawa or Slate")
	flags.String("log-level", "", "log level: debug, info, warn or error")
	_ = v.BindPFlags(flags)

	root.AddCommand(newSearchCmd(v), newStoreCmd(v), newLogsCmd(v))
	return root
}

// appOptions reads the bound flags and HACKERSTORIES_* environment values.
func appOptions(v *viper.Viper) app.Options {
	return app.Options{
		ConfigPath: v.GetString("config"),
		Overrides: config.Overrides{
			Endpoint:     v.GetString("endpoint"),
			StoreBackend: v.GetString("store"),
			StorePath:    v.GetString("store-path"),
			Theme:        v.GetString("theme"),
			LogLevel:     v.GetString("log-level"),
		},
	}
}
