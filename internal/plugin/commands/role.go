package commands

import (
	"strings"

	"github.com/wagner-austin/signal-bot/internal/plugin"
	"github.com/wagner-austin/signal-bot/internal/volunteer"
)

const roleUsage = "Usage: @bot role list | @bot role <role name> | @bot role none"

func registerRole(r *plugin.Registry, d *Deps) {
	r.Register(&plugin.Command{
		Canonical:   "role",
		Help:        "List roles or set your own.\n" + roleUsage,
		HelpVisible: true,
		Handler: func(ctx plugin.Context, args string) (string, error) {
			arg := strings.TrimSpace(args)
			if arg == "" {
				return "", plugin.NewArgError(roleUsage)
			}

			switch strings.ToLower(arg) {
			case "list":
				return "Recognized roles:\n" + strings.Join(volunteer.ListRoles(), "\n"), nil
			case "none", "unassign", "clear":
				msg, err := d.Volunteers.UnassignRole(ctx.Sender)
				if err == volunteer.ErrNotRegistered {
					return "You are not registered.", nil
				}
				return msg, err
			}

			msg, err := d.Volunteers.AssignRole(ctx.Sender, arg)
			if err == volunteer.ErrNotRegistered {
				return "You are not registered.", nil
			}
			return msg, err
		},
	})
}
