package commands

import (
	"fmt"
	"time"

	"github.com/wagner-austin/signal-bot/internal/plugin"
)

func registerInfo(r *plugin.Registry, d *Deps) {
	r.Register(&plugin.Command{
		Canonical:   "info",
		Aliases:     []string{"about", "version"},
		Help:        "Show bot version and uptime.\nUsage: @bot info",
		HelpVisible: true,
		Handler: func(ctx plugin.Context, args string) (string, error) {
			uptime := time.Since(d.StartedAt).Round(time.Second)
			return fmt.Sprintf(
				"Signal volunteer coordination bot.\nVersion: %s\nUptime: %s\nSend '@bot help' for the command list.",
				d.Version, uptime), nil
		},
	})
}
