// signalbot is the volunteer coordination bot for Signal groups, with an
// optional Discord bridge and operations subcommands for inspecting the
// database from a shell.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/wagner-austin/signal-bot/internal/config"
	"github.com/wagner-austin/signal-bot/internal/logging"
	"github.com/wagner-austin/signal-bot/internal/store"
)

var (
	// Global flags
	configPath string
	verbose    bool

	// Logger
	logger *zap.Logger
)

var rootCmd = &cobra.Command{
	Use:   "signalbot",
	Short: "Volunteer coordination bot for Signal",
	Long: `signalbot coordinates volunteers over Signal group and direct messages.

It registers volunteers, tracks skills and role assignments, plans events
with speaker lineups, and keeps tasks, resources, and donations in SQLite.
An optional Discord transport bridges the same commands into Discord guilds.

Run 'signalbot run' to start the service.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		zcfg := zap.NewProductionConfig()
		if verbose {
			zcfg = zap.NewDevelopmentConfig()
			zcfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
		}
		var err error
		logger, err = zcfg.Build()
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
		logging.CloseAll()
	},
}

// loadConfig loads the configuration and initializes category logging.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}
	if err := logging.Initialize(cfg.Storage.DataDir, configPath); err != nil {
		return nil, err
	}
	return cfg, nil
}

// openStore loads the configuration and opens the database for the
// inspection subcommands.
func openStore() (*config.Config, *store.Store, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, nil, err
	}
	s, err := store.Open(cfg.Storage.DatabasePath)
	if err != nil {
		return nil, nil, err
	}
	return cfg, s, nil
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "config.yaml", "path to the config file")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")

	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(volunteersCmd)
	rootCmd.AddCommand(eventsCmd)
	rootCmd.AddCommand(tasksCmd)
	rootCmd.AddCommand(resourcesCmd)
	rootCmd.AddCommand(logsCmd)
	rootCmd.AddCommand(backupCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(depsCmd)
	rootCmd.AddCommand(scrapeCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
