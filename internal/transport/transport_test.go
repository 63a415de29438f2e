package transport

import (
	"context"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/wagner-austin/signal-bot/internal/signalcli"
)

type fakeRunner struct {
	mu      sync.Mutex
	receive string
	calls   [][]string
	stdins  []string
}

func (f *fakeRunner) Run(ctx context.Context, args []string, stdin string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, args)
	f.stdins = append(f.stdins, stdin)
	if len(args) > 0 && args[0] == "receive" {
		out := f.receive
		f.receive = ""
		return out, nil
	}
	return "", nil
}

func (f *fakeRunner) sent() ([][]string, []string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var calls [][]string
	var stdins []string
	for i, args := range f.calls {
		if len(args) > 0 && args[0] == "send" {
			calls = append(calls, args)
			stdins = append(stdins, f.stdins[i])
		}
	}
	return calls, stdins
}

const testEnvelope = `Envelope from: "Jane" +15551112222 (device: 1)
Timestamp: 1688000000000
Message timestamp: 1688000000000
Body: hello bot`

func TestSignalRunDeliversAndReplies(t *testing.T) {
	runner := &fakeRunner{receive: testEnvelope}
	tr := NewSignal(signalcli.NewClient(runner), "+15550000000", 10*time.Millisecond)

	ctx, cancel := context.WithCancel(context.Background())
	handled := make(chan Inbound, 1)

	done := make(chan error, 1)
	go func() {
		done <- tr.Run(ctx, func(ctx context.Context, in Inbound) string {
			select {
			case handled <- in:
			default:
			}
			return "hi " + in.Sender
		})
	}()

	select {
	case in := <-handled:
		if in.Sender != "+15551112222" || in.Body != "hello bot" {
			t.Errorf("unexpected inbound: %+v", in)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("handler never saw the message")
	}

	cancel()
	if err := <-done; err != nil {
		t.Fatalf("Run returned error: %v", err)
	}

	calls, stdins := runner.sent()
	if len(calls) == 0 {
		t.Fatal("no reply sent")
	}
	if stdins[0] != "hi +15551112222" {
		t.Errorf("unexpected reply text: %q", stdins[0])
	}
	// Direct replies quote the original message.
	joined := strings.Join(calls[0], " ")
	if !strings.Contains(joined, "--quote-timestamp 1688000000000") {
		t.Errorf("expected quoted reply, got %v", calls[0])
	}
}

func TestSignalRunSkipsOwnMessages(t *testing.T) {
	own := strings.Replace(testEnvelope, "+15551112222", "+15550000000", 1)
	runner := &fakeRunner{receive: own}
	tr := NewSignal(signalcli.NewClient(runner), "+15550000000", 10*time.Millisecond)

	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()

	err := tr.Run(ctx, func(ctx context.Context, in Inbound) string {
		t.Errorf("handler called for the bot's own message: %+v", in)
		return ""
	})
	if err != nil {
		t.Fatalf("Run returned error: %v", err)
	}
}

func TestNewDiscordLowercasesRoleMap(t *testing.T) {
	d, err := NewDiscord("token", map[string]string{"Organizers": "admin", "Core Team": "owner"})
	if err != nil {
		t.Fatalf("NewDiscord failed: %v", err)
	}
	if d.roleNameMap["organizers"] != "admin" {
		t.Errorf("expected lowercased key, got %+v", d.roleNameMap)
	}
	if d.roleNameMap["core team"] != "owner" {
		t.Errorf("expected lowercased key, got %+v", d.roleNameMap)
	}
}
