package bot

import (
	"context"
	"path/filepath"
	"strings"
	"testing"

	"go.uber.org/goleak"

	"github.com/wagner-austin/signal-bot/internal/config"
	"github.com/wagner-austin/signal-bot/internal/transport"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func newTestService(t *testing.T) *Service {
	t.Helper()
	dir := t.TempDir()
	cfg := config.DefaultConfig()
	cfg.Signal.BotNumber = "+15550000000"
	cfg.Storage.DataDir = dir
	cfg.Storage.DatabasePath = filepath.Join(dir, "bot_data.db")
	cfg.Permissions.OwnerNumbers = []string{"+15559999999"}

	svc, err := New(cfg)
	if err != nil {
		t.Fatalf("Failed to build service: %v", err)
	}
	t.Cleanup(func() { svc.Close() })
	return svc
}

func TestNewRequiresBotNumber(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Storage.DataDir = t.TempDir()
	if _, err := New(cfg); err == nil {
		t.Fatal("expected error for missing bot number")
	}
}

func TestHandleWelcomesNewDirectSender(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	in := transport.Inbound{Source: "signal", Sender: "+15551112222", Body: "hi there"}
	reply := svc.Handle(ctx, in)
	if reply != msgWelcome {
		t.Errorf("expected welcome, got %q", reply)
	}

	// Greeted once only.
	if reply := svc.Handle(ctx, in); reply != "" {
		t.Errorf("expected silence on second contact, got %q", reply)
	}
}

func TestHandleIgnoresGroupChatterWithoutPrefix(t *testing.T) {
	svc := newTestService(t)

	in := transport.Inbound{Source: "signal", Sender: "+15551112222", GroupID: "grp1", Body: "hello everyone"}
	if reply := svc.Handle(context.Background(), in); reply != "" {
		t.Errorf("expected silence, got %q", reply)
	}
}

func TestHandleDispatchesPrefixedGroupCommand(t *testing.T) {
	svc := newTestService(t)

	in := transport.Inbound{Source: "signal", Sender: "+15551112222", GroupID: "grp1", Body: "@bot skills"}
	reply := svc.Handle(context.Background(), in)
	if !strings.Contains(reply, "Event Coordination") {
		t.Errorf("expected skills list, got %q", reply)
	}
}

func TestHandleFeedsActiveFlow(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()
	sender := "+15551112222"

	// Seen once so the welcome does not swallow flow input.
	if err := svc.states.MarkWelcomeSeen(sender); err != nil {
		t.Fatalf("MarkWelcomeSeen failed: %v", err)
	}

	reply := svc.Handle(ctx, transport.Inbound{Source: "signal", Sender: sender, Body: "register"})
	if !strings.Contains(reply, "name") {
		t.Fatalf("expected name prompt, got %q", reply)
	}

	// Bare follow-up goes to the registration flow.
	reply = svc.Handle(ctx, transport.Inbound{Source: "signal", Sender: sender, Body: "Jane Doe"})
	if !strings.Contains(reply, "Jane Doe") {
		t.Errorf("expected registration confirmation, got %q", reply)
	}
}

func TestRoleResolution(t *testing.T) {
	svc := newTestService(t)

	if got := svc.roleFor(transport.Inbound{Sender: "+15559999999"}); got != "owner" {
		t.Errorf("expected owner, got %q", got)
	}
	if got := svc.roleFor(transport.Inbound{Sender: "+15550001111"}); got != "everyone" {
		t.Errorf("expected everyone, got %q", got)
	}
	if got := svc.roleFor(transport.Inbound{Sender: "x", SenderRole: "admin"}); got != "admin" {
		t.Errorf("expected transport role to win, got %q", got)
	}

	if _, err := svc.volunteers.Register("+15550001111", "Jane Doe", nil, true); err != nil {
		t.Fatalf("Register failed: %v", err)
	}
	if got := svc.roleFor(transport.Inbound{Sender: "+15550001111"}); got != "member" {
		t.Errorf("expected member after registration, got %q", got)
	}
}

func TestShutdownCommandStopsRun(t *testing.T) {
	svc := newTestService(t)
	// Replace transports so Run does not shell out to signal-cli.
	svc.transports = nil

	done := make(chan error, 1)
	go func() { done <- svc.Run(context.Background()) }()

	svc.Shutdown()
	if err := <-done; err != nil {
		t.Fatalf("Run returned error: %v", err)
	}
}
