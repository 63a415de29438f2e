package commands

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/wagner-austin/signal-bot/internal/plugin"
)

const donateUsage = "Usage: @bot donate <amount> [description] | " +
	"@bot donate in-kind <description> | @bot donate register <method> [description]"

func registerDonate(r *plugin.Registry, d *Deps) {
	r.Register(&plugin.Command{
		Canonical:   "donate",
		Aliases:     []string{"donation"},
		Help:        "Log a donation or pledge.\n" + donateUsage,
		HelpVisible: true,
		Handler: func(ctx plugin.Context, args string) (string, error) {
			fields := strings.Fields(args)
			if len(fields) == 0 {
				return "", plugin.NewArgError(donateUsage)
			}

			switch strings.ToLower(fields[0]) {
			case "register":
				if len(fields) < 2 {
					return "", plugin.NewArgError(donateUsage)
				}
				method := strings.ToLower(fields[1])
				description := strings.Join(fields[2:], " ")
				if description == "" {
					description = method
				} else {
					description = method + ": " + description
				}
				id, err := d.Store.AddDonation(ctx.Sender, 0, "register", description)
				if err != nil {
					return "", err
				}
				return fmt.Sprintf("Donation logged with ID %d.", id), nil
			case "in-kind", "inkind":
				description := strings.Join(fields[1:], " ")
				if description == "" {
					return "", plugin.NewArgError(donateUsage)
				}
				id, err := d.Store.AddDonation(ctx.Sender, 0, "in-kind", description)
				if err != nil {
					return "", err
				}
				return fmt.Sprintf("Donation logged with ID %d.", id), nil
			default:
				amount, err := strconv.ParseFloat(strings.TrimPrefix(fields[0], "$"), 64)
				if err != nil || amount <= 0 {
					return "", plugin.NewArgError("Invalid amount %q.\n\n%s", fields[0], donateUsage)
				}
				description := strings.Join(fields[1:], " ")
				id, err := d.Store.AddDonation(ctx.Sender, amount, "cash", description)
				if err != nil {
					return "", err
				}
				return fmt.Sprintf("Donation logged with ID %d.", id), nil
			}
		},
	})
}
