package commands

import (
	"strings"

	"github.com/wagner-austin/signal-bot/internal/flow"
	"github.com/wagner-austin/signal-bot/internal/plugin"
)

func registerEdit(r *plugin.Registry, d *Deps) {
	r.Register(&plugin.Command{
		Canonical: "edit",
		Aliases: []string{
			"change my name", "change my name to", "change name",
			"wrong name", "not my name",
		},
		Help:        "Change your registered name.\nUsage: @bot edit [new name]",
		HelpVisible: true,
		Handler: func(ctx plugin.Context, args string) (string, error) {
			input := strings.TrimSpace(args)

			active, err := d.Flows.Active(ctx.Sender)
			if err != nil {
				return "", err
			}
			if active != flow.EditFlow {
				if err := d.Flows.Start(ctx.Sender, flow.EditFlow); err != nil {
					return "", err
				}
				if input == "" {
					return flow.MsgEditPrompt, nil
				}
			}
			return d.Flows.HandleInput(ctx.Sender, input)
		},
	})
}
