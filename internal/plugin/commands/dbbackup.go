package commands

import (
	"fmt"
	"strings"

	"github.com/wagner-austin/signal-bot/internal/plugin"
)

const dbBackupUsage = "Usage: @bot backup create | @bot backup list | @bot backup restore <file>"

func registerDBBackup(r *plugin.Registry, d *Deps) {
	r.Register(&plugin.Command{
		Canonical:    "backup",
		Aliases:      []string{"dbbackup"},
		Help:         "Create, list, and restore database backups.\n" + dbBackupUsage,
		HelpVisible:  true,
		RequiredRole: plugin.RoleAdmin,
		Handler: func(ctx plugin.Context, args string) (string, error) {
			return plugin.Subcommands(ctx, args, map[string]plugin.SubcommandFunc{
				"create": func(ctx plugin.Context, rest []string) (string, error) {
					path, err := d.Backups.Create()
					if err != nil {
						return "", err
					}
					return fmt.Sprintf("Backup created: %s", path), nil
				},
				"list": func(ctx plugin.Context, rest []string) (string, error) {
					names := d.Backups.List()
					if len(names) == 0 {
						return "No backups found.", nil
					}
					return "Available Backups:\n" + strings.Join(names, "\n"), nil
				},
				"restore": func(ctx plugin.Context, rest []string) (string, error) {
					if len(rest) == 0 {
						return "", plugin.NewArgError(dbBackupUsage)
					}
					name := rest[0]
					if err := d.Backups.Restore(name); err != nil {
						return fmt.Sprintf("Restore failed: %v", err), nil
					}
					return fmt.Sprintf("Database restored from %s. Restart the service to pick up the restored data.", name), nil
				},
			}, dbBackupUsage, "list")
		},
	})
}
