package commands

import (
	"strings"

	"github.com/wagner-austin/signal-bot/internal/plugin"
)

func registerHelp(r *plugin.Registry, d *Deps) {
	r.Register(&plugin.Command{
		Canonical:   "help",
		Aliases:     []string{"commands", "?"},
		Help:        "List available commands.\nUsage: @bot help [all]",
		HelpVisible: true,
		Handler: func(ctx plugin.Context, args string) (string, error) {
			full := strings.EqualFold(strings.TrimSpace(args), "all")

			var lines []string
			for _, cmd := range d.Registry.Commands() {
				if !cmd.HelpVisible || d.Registry.Disabled(cmd.Canonical) {
					continue
				}
				if !plugin.HasPermission(ctx.SenderRole, cmd.RequiredRole) {
					continue
				}
				if full {
					lines = append(lines, "@bot "+cmd.Canonical+" - "+cmd.Help)
					continue
				}
				summary := cmd.Help
				if idx := strings.IndexByte(summary, '\n'); idx >= 0 {
					summary = summary[:idx]
				}
				lines = append(lines, "@bot "+cmd.Canonical+" - "+summary)
			}
			if len(lines) == 0 {
				return "No commands available.", nil
			}
			return strings.Join(lines, "\n\n"), nil
		},
	})
}
