package commands

import (
	"github.com/wagner-austin/signal-bot/internal/plugin"
)

func registerScrape(r *plugin.Registry, d *Deps) {
	r.Register(&plugin.Command{
		Canonical:    "scrape",
		Aliases:      []string{"sora explore"},
		Help:         "Start a browser scrape of the explore feed.\nUsage: @bot scrape",
		HelpVisible:  false,
		RequiredRole: plugin.RoleOwner,
		Handler: func(ctx plugin.Context, args string) (string, error) {
			if d.StartScrape == nil {
				return "The scraper is disabled.", nil
			}
			return d.StartScrape()
		},
	})
}
