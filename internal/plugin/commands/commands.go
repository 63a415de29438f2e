// Package commands registers every chat command against the plugin
// registry. Each command lives in its own file.
package commands

import (
	"time"

	"github.com/wagner-austin/signal-bot/internal/flow"
	"github.com/wagner-austin/signal-bot/internal/plugin"
	"github.com/wagner-austin/signal-bot/internal/store"
	"github.com/wagner-austin/signal-bot/internal/volunteer"
)

// Deps bundles everything command handlers can reach.
type Deps struct {
	Store      *store.Store
	Backups    *store.BackupManager
	Volunteers *volunteer.Manager
	Flows      *flow.Manager
	Registry   *plugin.Registry
	// Shutdown asks the service to stop. Wired by the bot loop.
	Shutdown func()
	// StartScrape launches an explore scrape session and returns a status
	// line. Nil when the scraper is disabled.
	StartScrape func() (string, error)
	StartedAt   time.Time
	Version     string
}

// RegisterAll registers the full command set.
func RegisterAll(r *plugin.Registry, d *Deps) {
	registerRegister(r, d)
	registerEdit(r, d)
	registerDelete(r, d)
	registerVolunteer(r, d)
	registerRole(r, d)
	registerEvent(r, d)
	registerTask(r, d)
	registerResource(r, d)
	registerDonate(r, d)
	registerDBBackup(r, d)
	registerDBStats(r, d)
	registerLogs(r, d)
	registerHelp(r, d)
	registerInfo(r, d)
	registerPluginAdmin(r, d)
	registerShutdown(r, d)
	registerDeletedVolunteers(r, d)
	registerScrape(r, d)
}
