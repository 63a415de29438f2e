// Package bot wires storage, flows, commands, and transports into the
// running service.
package bot

import (
	"context"
	"errors"
	"fmt"
	"os"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/wagner-austin/signal-bot/internal/config"
	"github.com/wagner-austin/signal-bot/internal/flow"
	"github.com/wagner-austin/signal-bot/internal/logging"
	"github.com/wagner-austin/signal-bot/internal/metrics"
	"github.com/wagner-austin/signal-bot/internal/parse"
	"github.com/wagner-austin/signal-bot/internal/plugin"
	"github.com/wagner-austin/signal-bot/internal/plugin/commands"
	"github.com/wagner-austin/signal-bot/internal/scrape"
	"github.com/wagner-austin/signal-bot/internal/signalcli"
	"github.com/wagner-austin/signal-bot/internal/store"
	"github.com/wagner-austin/signal-bot/internal/transport"
	"github.com/wagner-austin/signal-bot/internal/volunteer"
)

// Version is stamped at build time.
var Version = "dev"

// msgWelcome greets a direct-message sender the first time they write in.
const msgWelcome = "Hello! I'm the volunteer coordination bot. " +
	"Send 'register' to sign up as a volunteer, or 'help' to see everything I can do."

// Service is the assembled bot: one store, one command registry, and one or
// more transports feeding the shared message pipeline.
type Service struct {
	cfg        *config.Config
	store      *store.Store
	backups    *store.BackupManager
	volunteers *volunteer.Manager
	states     *flow.States
	flows      *flow.Manager
	registry   *plugin.Registry
	dispatcher *plugin.Dispatcher
	metrics    *metrics.Metrics
	transports []transport.Transport

	owners map[string]bool
	admins map[string]bool

	stopOnce sync.Once
	stopCh   chan struct{}
}

// New assembles a service from configuration. The caller owns Close.
func New(cfg *config.Config) (*Service, error) {
	if cfg.Signal.BotNumber == "" {
		return nil, fmt.Errorf("no bot number configured (set BOT_NUMBER)")
	}
	if err := os.MkdirAll(cfg.Storage.DataDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}

	s, err := store.Open(cfg.Storage.DatabasePath)
	if err != nil {
		return nil, err
	}

	svc := &Service{
		cfg:        cfg,
		store:      s,
		backups:    store.NewBackupManager(s, cfg.Backup.RetentionCount),
		volunteers: volunteer.NewManager(s),
		states:     flow.NewStates(s),
		registry:   plugin.NewRegistry(),
		metrics:    metrics.New(),
		owners:     phoneSet(cfg.Permissions.OwnerNumbers),
		admins:     phoneSet(cfg.Permissions.AdminNumbers),
		stopCh:     make(chan struct{}),
	}
	svc.flows = flow.NewManager(svc.states, s, svc.volunteers)
	svc.dispatcher = plugin.NewDispatcher(svc.registry)
	svc.dispatcher.ErrorHook = func(string) { svc.metrics.CommandErrors.Inc() }
	svc.backups.OnCreate = svc.metrics.BackupsCreated.Inc

	deps := &commands.Deps{
		Store:      s,
		Backups:    svc.backups,
		Volunteers: svc.volunteers,
		Flows:      svc.flows,
		Registry:   svc.registry,
		Shutdown:   svc.Shutdown,
		StartedAt:  time.Now(),
		Version:    Version,
	}
	if cfg.Scraper.Enabled {
		scraper := scrape.New(cfg.Scraper, cfg.GetPageTimeout(), cfg.GetStayDuration())
		deps.StartScrape = scraper.StartSession
	}
	commands.RegisterAll(svc.registry, deps)

	runner := &signalcli.Runner{
		Command:   cfg.Signal.CLICommand,
		BotNumber: cfg.Signal.BotNumber,
		Timeout:   cfg.GetCommandTimeout(),
	}
	client := signalcli.NewClient(runner)
	svc.transports = append(svc.transports,
		transport.NewSignal(client, cfg.Signal.BotNumber, cfg.GetPollingInterval()))

	if cfg.Extras.Discord.Enabled {
		discord, err := transport.NewDiscord(cfg.Extras.Discord.Token, cfg.Extras.Discord.RoleNameMap)
		if err != nil {
			s.Close()
			return nil, err
		}
		svc.transports = append(svc.transports, discord)
	}

	return svc, nil
}

func phoneSet(numbers []string) map[string]bool {
	set := make(map[string]bool, len(numbers))
	for _, n := range numbers {
		set[n] = true
	}
	return set
}

// Close releases the database.
func (s *Service) Close() error { return s.store.Close() }

// Shutdown asks a running service to stop. Safe to call at any time, from
// any goroutine, more than once.
func (s *Service) Shutdown() {
	s.stopOnce.Do(func() { close(s.stopCh) })
}

// Run starts the transports, the periodic backup loop, and the metrics
// endpoint, and blocks until the context is cancelled, Shutdown is called,
// or a transport fails.
func (s *Service) Run(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	logging.Boot("service starting with %d transport(s)", len(s.transports))

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		select {
		case <-ctx.Done():
		case <-s.stopCh:
			cancel()
		}
		return nil
	})
	g.Go(func() error {
		s.backups.RunPeriodic(ctx, s.cfg.GetBackupInterval())
		return nil
	})
	if s.cfg.Metrics.Enabled {
		g.Go(func() error {
			return s.metrics.Serve(ctx, s.cfg.Metrics.ListenAddr)
		})
	}
	for _, t := range s.transports {
		t := t
		g.Go(func() error {
			logging.Boot("transport %s running", t.Name())
			return t.Run(ctx, s.Handle)
		})
	}

	err := g.Wait()
	logging.Boot("service stopped")
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

// Handle runs one inbound message through the pipeline: command dispatch,
// active-flow fallback for direct messages, and a one-time welcome for new
// direct senders.
func (s *Service) Handle(ctx context.Context, in transport.Inbound) string {
	s.metrics.MessagesReceived.Inc()
	logging.DispatchDebug("inbound from %s via %s (group=%q)", in.Sender, in.Source, in.GroupID)

	command, args := parse.Command(in.Body, in.GroupID != "")
	if command == "" {
		return s.handleBareMessage(in)
	}

	pctx := plugin.Context{
		Sender:       in.Sender,
		GroupID:      in.GroupID,
		SenderRole:   s.roleFor(in),
		MsgTimestamp: in.Timestamp,
	}
	reply, matched := s.dispatcher.Dispatch(pctx, command, args)
	if !matched {
		// First word is not a command; treat the message as flow input.
		return s.handleBareMessage(in)
	}
	if reply == "" {
		return ""
	}
	if err := s.store.LogCommand(in.Sender, command, args); err != nil {
		logging.Store("failed to log command: %v", err)
	}
	s.metrics.CommandsHandled.WithLabelValues(command).Inc()
	s.metrics.MessagesSent.Inc()
	return reply
}

// handleBareMessage deals with direct messages that carry no command: input
// for the active flow, or a first-contact greeting. Group chatter without a
// bot mention stays unanswered.
func (s *Service) handleBareMessage(in transport.Inbound) string {
	if in.GroupID != "" || in.Body == "" {
		return ""
	}

	active, err := s.flows.Active(in.Sender)
	if err != nil {
		logging.Flow("failed to load flow state for %s: %v", in.Sender, err)
		return ""
	}
	if active != "" {
		reply, err := s.flows.HandleInput(in.Sender, in.Body)
		if err != nil {
			logging.Flow("flow input from %s failed: %v", in.Sender, err)
			return ""
		}
		s.metrics.MessagesSent.Inc()
		return reply
	}

	seen, err := s.states.HasSeenWelcome(in.Sender)
	if err != nil || seen {
		return ""
	}
	if err := s.states.MarkWelcomeSeen(in.Sender); err != nil {
		logging.Flow("failed to mark welcome for %s: %v", in.Sender, err)
	}
	s.metrics.MessagesSent.Inc()
	return msgWelcome
}

// roleFor resolves the sender's permission role: a transport-resolved role
// wins, then the configured owner and admin lists, then membership for any
// registered volunteer.
func (s *Service) roleFor(in transport.Inbound) string {
	if in.SenderRole != "" {
		return in.SenderRole
	}
	if s.owners[in.Sender] {
		return plugin.RoleOwner
	}
	if s.admins[in.Sender] {
		return plugin.RoleAdmin
	}
	v, err := s.store.GetVolunteer(in.Sender)
	if err == nil && v != nil {
		return plugin.RoleMember
	}
	return plugin.RoleEveryone
}
