// Package cli implements the tebexd cobra commands.
package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/example/tebexd/internal/config"
	applog "github.com/example/tebexd/internal/log"
	"github.com/example/tebexd/internal/wire"
)

// loaded is the configuration resolved by Setup for the running command.
var loaded *config.Config

// AddGlobalFlags registers the flags every command accepts.
func AddGlobalFlags(cmd *cobra.Command) {
	f := cmd.PersistentFlags()
	f.String("config", "", "Path to a YAML config file (default $TEBEXD_CONFIG)")
	f.String("log-level", "", "Log level: debug, info, progress, minimal, warn, error")
	f.String("log-format", "", "Log format: console or json")
	f.String("store", "", "Store driver: sqlite or bbolt")
	f.String("db", "", "Path to the state database (default ~/.tebexd/state.db)")
}

// Setup resolves configuration (defaults, file, environment, flags),
// initialises logging and hands the result to the wiring layer. It is the
// root command's PersistentPreRunE.
func Setup(cmd *cobra.Command, args []string) error {
	path, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(path)
	if err != nil {
		return err
	}

	overrides := []struct {
		flag   string
		target *string
	}{
		{"log-level", &cfg.Log.Level},
		{"log-format", &cfg.Log.Format},
		{"store", &cfg.Store.Driver},
		{"db", &cfg.Store.Path},
	}
	for _, o := range overrides {
		if cmd.Flags().Changed(o.flag) {
			*o.target, _ = cmd.Flags().GetString(o.flag)
		}
	}
	if cmd.Flags().Lookup("interval-ticks") != nil && cmd.Flags().Changed("interval-ticks") {
		cfg.Poll.IntervalTicks, _ = cmd.Flags().GetInt("interval-ticks")
	}

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	if err := applog.Init(applog.Config{
		Level:  applog.LogLevel(cfg.Log.Level),
		Format: cfg.Log.Format,
	}); err != nil {
		return fmt.Errorf("failed to initialize logging: %w", err)
	}

	wire.Configure(cfg)
	loaded = cfg
	return nil
}

// Teardown flushes logs and closes the store. It is the root command's
// PersistentPostRunE.
func Teardown(cmd *cobra.Command, args []string) error {
	_ = applog.Sync()
	return wire.Close()
}

// requireRemote fails commands that talk to the queue or the game server
// when the credentials are missing.
func requireRemote() error {
	if loaded == nil {
		return fmt.Errorf("configuration not loaded")
	}
	return loaded.RequireRemote()
}
