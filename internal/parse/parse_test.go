package parse

import (
	"reflect"
	"testing"
)

const sampleEnvelope = `Envelope from: “Jane Doe” +15551234567 (device: 1)
Timestamp: 1717171717171
Message timestamp: 1717171717171
Body: @bot register Jane Doe, greeter
Group info:
  Id: abc123groupid==
  Name: Organizers
`

const replyEnvelope = `Envelope from: +15557654321 (device: 1)
Timestamp: 1717171718000
Body: yes
Quote:
  Id: 1717171717171
  Author: +15551234567
`

func TestParseEnvelope(t *testing.T) {
	msg := ParseEnvelope(sampleEnvelope)
	if msg.Sender != "+15551234567" {
		t.Errorf("sender = %q", msg.Sender)
	}
	if msg.Body != "@bot register Jane Doe, greeter" {
		t.Errorf("body = %q", msg.Body)
	}
	if msg.Timestamp != 1717171717171 {
		t.Errorf("timestamp = %d", msg.Timestamp)
	}
	if msg.GroupID != "abc123groupid==" {
		t.Errorf("group id = %q", msg.GroupID)
	}
	if !msg.IsGroup() {
		t.Error("expected group message")
	}
	if msg.MessageTimestamp != "1717171717171" {
		t.Errorf("message timestamp = %q", msg.MessageTimestamp)
	}
	if msg.Command != "register" || msg.Args != "Jane Doe, greeter" {
		t.Errorf("command = %q args = %q", msg.Command, msg.Args)
	}
}

func TestParseReplyEnvelope(t *testing.T) {
	msg := ParseEnvelope(replyEnvelope)
	if msg.ReplyTo != "1717171717171" {
		t.Errorf("reply to = %q", msg.ReplyTo)
	}
	if msg.IsGroup() {
		t.Error("reply envelope has no group info")
	}
	// Direct chat: bare word is a command.
	if msg.Command != "yes" {
		t.Errorf("command = %q", msg.Command)
	}
}

func TestGroupIDRequiresGroupInfoBlock(t *testing.T) {
	// Quote blocks also contain "Id:" lines; without a Group info header
	// they must not be mistaken for a group id.
	if got := GroupID(replyEnvelope); got != "" {
		t.Errorf("expected no group id, got %q", got)
	}
}

func TestCommand(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		isGroup bool
		command string
		args    string
	}{
		{"group with prefix", "@bot help", true, "help", ""},
		{"group long prefix", "@50501oc bot volunteer status", true, "volunteer", "status"},
		{"group prefix case", "@BOT Help", true, "help", ""},
		{"group without prefix", "help", true, "", ""},
		{"dm without prefix", "help", false, "help", ""},
		{"dm with prefix", "@bot register Jane", false, "register", "Jane"},
		{"object replacement char", "￼ register Jane", true, "register", "Jane"},
		{"invalid command chars", "@bot Hel-lo", true, "", ""},
		{"empty body", "", false, "", ""},
		{"whitespace normalized", "  @bot   find   Jane  Doe ", true, "find", "Jane Doe"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmd, args := Command(tt.body, tt.isGroup)
			if cmd != tt.command || args != tt.args {
				t.Errorf("Command(%q, %v) = (%q, %q), want (%q, %q)",
					tt.body, tt.isGroup, cmd, args, tt.command, tt.args)
			}
		})
	}
}

func TestSplitArgsN(t *testing.T) {
	got := SplitArgsN("Jane Doe, greeter, medic", ",", -1)
	want := []string{"Jane Doe", "greeter", "medic"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("SplitArgsN = %v, want %v", got, want)
	}

	got = SplitArgsN("a, b, c", ",", 1)
	want = []string{"a", "b, c"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("SplitArgsN with limit = %v, want %v", got, want)
	}
}

func TestKeyValueArgs(t *testing.T) {
	got, err := KeyValueArgs("Title: Rally, Date: 2025-06-14, Time: 10am", ",", ":")
	if err != nil {
		t.Fatalf("KeyValueArgs failed: %v", err)
	}
	want := map[string]string{"title": "Rally", "date": "2025-06-14", "time": "10am"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("KeyValueArgs = %v, want %v", got, want)
	}

	if _, err := KeyValueArgs("no separator here", ",", ":"); err == nil {
		t.Error("expected error for pair without separator")
	}
}
