package commands

import (
	"github.com/wagner-austin/signal-bot/internal/plugin"
)

func registerShutdown(r *plugin.Registry, d *Deps) {
	r.Register(&plugin.Command{
		Canonical:    "shutdown",
		Aliases:      []string{"shut down"},
		Help:         "Stop the bot service.\nUsage: @bot shutdown",
		HelpVisible:  false,
		RequiredRole: plugin.RoleOwner,
		Handler: func(ctx plugin.Context, args string) (string, error) {
			if d.Shutdown != nil {
				d.Shutdown()
			}
			return "Shutting down. Goodbye.", nil
		},
	})
}
