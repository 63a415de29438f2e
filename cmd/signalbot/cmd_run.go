package main

import (
	"context"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/wagner-austin/signal-bot/internal/bot"
	"github.com/wagner-austin/signal-bot/internal/logging"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Start the bot service",
	Long: `Starts the polling loop against signal-cli, the periodic backup job,
the metrics endpoint when enabled, and the Discord bridge when the discord
extra is configured. Stops cleanly on SIGINT/SIGTERM or the owner's
shutdown command.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		svc, err := bot.New(cfg)
		if err != nil {
			return err
		}
		defer svc.Close()

		ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		// Logging config changes apply without a restart.
		if watcher, err := logging.WatchConfig(configPath); err == nil {
			if err := watcher.Start(ctx); err == nil {
				defer watcher.Stop()
			}
		}

		logger.Info("bot service starting",
			zap.String("bot_number", cfg.Signal.BotNumber),
			zap.String("database", cfg.Storage.DatabasePath))
		return svc.Run(ctx)
	},
}
