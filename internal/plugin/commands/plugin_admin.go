package commands

import (
	"fmt"
	"strings"

	"github.com/wagner-austin/signal-bot/internal/plugin"
)

const pluginUsage = "Usage: @bot plugin list | @bot plugin enable <command> | @bot plugin disable <command>"

func registerPluginAdmin(r *plugin.Registry, d *Deps) {
	r.Register(&plugin.Command{
		Canonical:    "plugin",
		Aliases:      []string{"plugins"},
		Help:         "Enable or disable commands at runtime.\n" + pluginUsage,
		HelpVisible:  true,
		RequiredRole: plugin.RoleAdmin,
		Handler: func(ctx plugin.Context, args string) (string, error) {
			return plugin.Subcommands(ctx, args, map[string]plugin.SubcommandFunc{
				"list": func(ctx plugin.Context, rest []string) (string, error) {
					var lines []string
					for _, cmd := range d.Registry.Commands() {
						state := "enabled"
						if d.Registry.Disabled(cmd.Canonical) {
							state = "disabled"
						}
						lines = append(lines, fmt.Sprintf("%s: %s", cmd.Canonical, state))
					}
					return strings.Join(lines, "\n"), nil
				},
				"enable": func(ctx plugin.Context, rest []string) (string, error) {
					if len(rest) == 0 {
						return "", plugin.NewArgError(pluginUsage)
					}
					name := strings.ToLower(strings.Join(rest, " "))
					cmd := d.Registry.Get(name)
					if cmd == nil {
						return fmt.Sprintf("No command named '%s'.", name), nil
					}
					d.Registry.Enable(cmd.Canonical)
					return fmt.Sprintf("Command '%s' enabled.", cmd.Canonical), nil
				},
				"disable": func(ctx plugin.Context, rest []string) (string, error) {
					if len(rest) == 0 {
						return "", plugin.NewArgError(pluginUsage)
					}
					name := strings.ToLower(strings.Join(rest, " "))
					cmd := d.Registry.Get(name)
					if cmd == nil {
						return fmt.Sprintf("No command named '%s'.", name), nil
					}
					if cmd.Canonical == "plugin" {
						return "The plugin command cannot disable itself.", nil
					}
					d.Registry.Disable(cmd.Canonical)
					return fmt.Sprintf("Command '%s' disabled.", cmd.Canonical), nil
				},
			}, pluginUsage, "list")
		},
	})
}
