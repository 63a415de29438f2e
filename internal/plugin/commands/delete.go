package commands

import (
	"strings"

	"github.com/wagner-austin/signal-bot/internal/flow"
	"github.com/wagner-austin/signal-bot/internal/plugin"
)

func registerDelete(r *plugin.Registry, d *Deps) {
	r.Register(&plugin.Command{
		Canonical: "delete",
		Aliases:   []string{"del", "stop", "unsubscribe", "remove", "opt out"},
		Help:      "Remove your registration.\nUsage: @bot delete",
		// Deliberately hidden from help, as an opt-out path.
		HelpVisible: false,
		Handler: func(ctx plugin.Context, args string) (string, error) {
			input := strings.TrimSpace(args)

			active, err := d.Flows.Active(ctx.Sender)
			if err != nil {
				return "", err
			}
			if active != flow.DeletionFlow {
				if err := d.Flows.Start(ctx.Sender, flow.DeletionFlow); err != nil {
					return "", err
				}
				if input == "" {
					return flow.MsgDeletionPrompt, nil
				}
			}
			return d.Flows.HandleInput(ctx.Sender, input)
		},
	})
}
