package commands

import (
	"fmt"
	"strings"

	"github.com/wagner-austin/signal-bot/internal/plugin"
)

func registerDeletedVolunteers(r *plugin.Registry, d *Deps) {
	r.Register(&plugin.Command{
		Canonical:    "deleted volunteers",
		Help:         "List archived volunteer records.\nUsage: @bot deleted volunteers",
		HelpVisible:  false,
		RequiredRole: plugin.RoleOwner,
		Handler: func(ctx plugin.Context, args string) (string, error) {
			archived, err := d.Store.ListDeletedVolunteers()
			if err != nil {
				return "", err
			}
			if len(archived) == 0 {
				return "No deleted volunteer records.", nil
			}
			var lines []string
			for _, v := range archived {
				lines = append(lines, fmt.Sprintf("%s (%s) deleted %s",
					v.Name, v.Phone, v.DeletedAt.Format("2006-01-02 15:04:05")))
			}
			return strings.Join(lines, "\n"), nil
		},
	})
}
