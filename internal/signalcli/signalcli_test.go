package signalcli

import (
	"context"
	"errors"
	"strings"
	"testing"
)

func TestValidateArgs(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		wantErr bool
	}{
		{"plain send", []string{"send", "+15551234567", "--message-from-stdin"}, false},
		{"group send", []string{"send", "-g", "abc==", "--message-from-stdin"}, false},
		{"receive", []string{"receive"}, false},
		{"quote flags", []string{"send", "+1555", "--quote-author", "+1556", "--quote-timestamp", "123"}, false},
		{"disallowed flag", []string{"send", "--attachment", "x"}, true},
		{"semicolon", []string{"send", "+1555; rm -rf /"}, true},
		{"pipe", []string{"send", "a|b"}, true},
		{"backtick", []string{"send", "`whoami`"}, true},
		{"ampersand", []string{"send", "a&b"}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateArgs(tt.args)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateArgs(%v) error = %v, wantErr %v", tt.args, err, tt.wantErr)
			}
			if err != nil && !errors.Is(err, ErrValidation) {
				t.Errorf("error should wrap ErrValidation, got %v", err)
			}
		})
	}
}

type fakeRunner struct {
	output  string
	err     error
	gotArgs []string
	gotIn   string
}

func (f *fakeRunner) Run(_ context.Context, args []string, stdin string) (string, error) {
	f.gotArgs = args
	f.gotIn = stdin
	return f.output, f.err
}

func TestClientSendDirect(t *testing.T) {
	fr := &fakeRunner{}
	c := NewClient(fr)
	if err := c.Send(context.Background(), "+15551234567", "hello there", ""); err != nil {
		t.Fatalf("Send failed: %v", err)
	}
	want := []string{"send", "+15551234567", "--message-from-stdin"}
	if strings.Join(fr.gotArgs, " ") != strings.Join(want, " ") {
		t.Errorf("args = %v, want %v", fr.gotArgs, want)
	}
	if fr.gotIn != "hello there" {
		t.Errorf("stdin = %q", fr.gotIn)
	}
}

func TestClientSendGroup(t *testing.T) {
	fr := &fakeRunner{}
	c := NewClient(fr)
	if err := c.Send(context.Background(), "+15551234567", "hi all", "grp=="); err != nil {
		t.Fatalf("Send failed: %v", err)
	}
	want := []string{"send", "-g", "grp==", "--message-from-stdin"}
	if strings.Join(fr.gotArgs, " ") != strings.Join(want, " ") {
		t.Errorf("args = %v, want %v", fr.gotArgs, want)
	}
}

func TestClientReceiveSplitsEnvelopes(t *testing.T) {
	fr := &fakeRunner{output: `Envelope from: +15551111111 (device: 1)
Timestamp: 1
Body: first
Envelope from: +15552222222 (device: 1)
Timestamp: 2
Body: second
`}
	c := NewClient(fr)
	msgs, err := c.Receive(context.Background())
	if err != nil {
		t.Fatalf("Receive failed: %v", err)
	}
	if len(msgs) != 2 {
		t.Fatalf("expected 2 envelopes, got %d: %v", len(msgs), msgs)
	}
	if !strings.Contains(msgs[0], "first") || !strings.Contains(msgs[1], "second") {
		t.Errorf("envelopes split wrong: %v", msgs)
	}
	if !strings.HasPrefix(msgs[1], "Envelope") {
		t.Errorf("second envelope should start at Envelope line: %q", msgs[1])
	}
}

func TestClientReceiveEmpty(t *testing.T) {
	fr := &fakeRunner{output: "\n"}
	c := NewClient(fr)
	msgs, err := c.Receive(context.Background())
	if err != nil {
		t.Fatalf("Receive failed: %v", err)
	}
	if len(msgs) != 0 {
		t.Errorf("expected no envelopes, got %v", msgs)
	}
}

func TestClientReceiveError(t *testing.T) {
	fr := &fakeRunner{err: errors.New("boom")}
	c := NewClient(fr)
	if _, err := c.Receive(context.Background()); err == nil {
		t.Error("expected error from runner")
	}
}
