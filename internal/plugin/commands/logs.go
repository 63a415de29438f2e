package commands

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/wagner-austin/signal-bot/internal/plugin"
)

func registerLogs(r *plugin.Registry, d *Deps) {
	r.Register(&plugin.Command{
		Canonical:    "logs",
		Aliases:      []string{"command logs"},
		Help:         "Show recent command activity.\nUsage: @bot logs [count]",
		HelpVisible:  true,
		RequiredRole: plugin.RoleAdmin,
		Handler: func(ctx plugin.Context, args string) (string, error) {
			limit := 0
			if fields := strings.Fields(args); len(fields) > 0 {
				n, err := strconv.Atoi(fields[0])
				if err != nil || n <= 0 {
					return "", plugin.NewArgError("Invalid count %q.", fields[0])
				}
				limit = n
			}
			entries, err := d.Store.RecentCommandLogs(limit)
			if err != nil {
				return "", err
			}
			if len(entries) == 0 {
				return "No command activity recorded.", nil
			}
			var lines []string
			for _, e := range entries {
				line := fmt.Sprintf("%s %s: %s", e.Timestamp.Format("2006-01-02 15:04:05"), e.Sender, e.Command)
				if e.Args != "" {
					line += " " + e.Args
				}
				lines = append(lines, line)
			}
			return strings.Join(lines, "\n"), nil
		},
	})
}
