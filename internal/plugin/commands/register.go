package commands

import (
	"strings"

	"github.com/wagner-austin/signal-bot/internal/flow"
	"github.com/wagner-austin/signal-bot/internal/plugin"
)

func registerRegister(r *plugin.Registry, d *Deps) {
	r.Register(&plugin.Command{
		Canonical:   "register",
		Help:        "Start or continue the registration flow.\nUsage: @bot register [name]",
		HelpVisible: true,
		Handler: func(ctx plugin.Context, args string) (string, error) {
			input := strings.TrimSpace(args)

			active, err := d.Flows.Active(ctx.Sender)
			if err != nil {
				return "", err
			}
			if active == "" {
				if err := d.Flows.Start(ctx.Sender, flow.RegistrationFlow); err != nil {
					return "", err
				}
				if input == "" {
					return flow.MsgRegistrationWelcome, nil
				}
			}
			return d.Flows.HandleInput(ctx.Sender, input)
		},
	})
}
