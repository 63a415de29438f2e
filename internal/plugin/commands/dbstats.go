package commands

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/wagner-austin/signal-bot/internal/plugin"
)

func registerDBStats(r *plugin.Registry, d *Deps) {
	r.Register(&plugin.Command{
		Canonical:    "dbstats",
		Aliases:      []string{"db stats", "database stats"},
		Help:         "Show database statistics.\nUsage: @bot dbstats",
		HelpVisible:  true,
		RequiredRole: plugin.RoleAdmin,
		Handler: func(ctx plugin.Context, args string) (string, error) {
			counts, err := d.Store.TableCounts()
			if err != nil {
				return "", err
			}

			var b strings.Builder
			b.WriteString("Database Statistics:\n")
			fmt.Fprintf(&b, "File Size: %d bytes\n", d.Store.FileSize())
			b.WriteString("Table Row Counts:\n")
			tables := make([]string, 0, len(counts))
			for name := range counts {
				tables = append(tables, name)
			}
			sort.Strings(tables)
			for _, name := range tables {
				fmt.Fprintf(&b, " - %s: %d\n", name, counts[name])
			}
			fmt.Fprintf(&b, "Last Backup: %s", lastBackupTime(d))
			return b.String(), nil
		},
	})
}

// lastBackupTime reads the newest backup's timestamp out of its filename.
func lastBackupTime(d *Deps) string {
	names := d.Backups.List()
	if len(names) == 0 {
		return "None"
	}
	newest := names[len(names)-1]
	stamp := strings.TrimSuffix(strings.TrimPrefix(newest, "backup_"), ".db")
	// Strip the collision suffix from names like backup_20240101_120000_2.db.
	if parts := strings.Split(stamp, "_"); len(parts) == 3 {
		stamp = parts[0] + "_" + parts[1]
	}
	t, err := time.ParseInLocation("20060102_150405", stamp, time.Local)
	if err != nil {
		return newest
	}
	return t.Format("2006-01-02 15:04:05")
}
