package plugin

import (
	"errors"
	"strings"
	"testing"
)

func echoHandler(ctx Context, args string) (string, error) {
	return "echo:" + args, nil
}

func newTestRegistry() *Registry {
	r := NewRegistry()
	r.Register(&Command{Canonical: "help", HelpVisible: true, Handler: echoHandler})
	r.Register(&Command{
		Canonical: "delete",
		Aliases:   []string{"del", "stop", "unsubscribe", "remove", "opt out"},
		Handler:   echoHandler,
	})
	r.Register(&Command{Canonical: "volunteer status", Handler: echoHandler})
	r.Register(&Command{
		Canonical:    "deleted volunteers",
		RequiredRole: RoleOwner,
		Handler:      echoHandler,
	})
	return r
}

func TestHasPermission(t *testing.T) {
	tests := []struct {
		user, required string
		want           bool
	}{
		{RoleOwner, RoleAdmin, true},
		{RoleAdmin, RoleOwner, false},
		{RoleMember, RoleMember, true},
		{RoleEveryone, RoleMember, false},
		{"unknown", RoleEveryone, true},
		{"unknown", RoleMember, false},
	}
	for _, tt := range tests {
		if got := HasPermission(tt.user, tt.required); got != tt.want {
			t.Errorf("HasPermission(%q, %q) = %v, want %v", tt.user, tt.required, got, tt.want)
		}
	}
}

func TestResolveMultiWordCommand(t *testing.T) {
	r := newTestRegistry()

	cmd, rest := r.Resolve("volunteer", "status")
	if cmd == nil || cmd.Canonical != "volunteer status" {
		t.Fatalf("expected volunteer status, got %+v", cmd)
	}
	if rest != "" {
		t.Errorf("rest = %q", rest)
	}

	cmd, rest = r.Resolve("opt", "out now")
	if cmd == nil || cmd.Canonical != "delete" {
		t.Fatalf("alias resolution failed: %+v", cmd)
	}
	if rest != "now" {
		t.Errorf("rest = %q", rest)
	}

	cmd, _ = r.Resolve("nosuch", "")
	if cmd != nil {
		t.Errorf("expected nil for unknown command, got %+v", cmd)
	}
}

func TestDispatchFuzzyMatch(t *testing.T) {
	d := NewDispatcher(newTestRegistry())
	ctx := Context{Sender: "+1555", SenderRole: RoleEveryone}

	// "hep" is close enough to "help".
	reply, matched := d.Dispatch(ctx, "hep", "me")
	if !matched || reply != "echo:me" {
		t.Errorf("fuzzy dispatch = %q, %v", reply, matched)
	}
	// Nothing resembles this; reported as unmatched so the caller can fall
	// back to flow handling.
	reply, matched = d.Dispatch(ctx, "xyzzy", "")
	if matched || reply != "" {
		t.Errorf("expected no match, got %q, %v", reply, matched)
	}
}

func TestDispatchPermissionDenied(t *testing.T) {
	d := NewDispatcher(newTestRegistry())

	reply, _ := d.Dispatch(Context{Sender: "+1555", SenderRole: RoleMember}, "deleted", "volunteers")
	if !strings.Contains(reply, "permission") {
		t.Errorf("expected permission denial, got %q", reply)
	}
	reply, _ = d.Dispatch(Context{Sender: "+1555", SenderRole: RoleOwner}, "deleted", "volunteers")
	if reply != "echo:" {
		t.Errorf("owner should pass, got %q", reply)
	}
}

func TestDispatchDisabled(t *testing.T) {
	r := newTestRegistry()
	d := NewDispatcher(r)
	ctx := Context{SenderRole: RoleEveryone}

	if !r.Disable("help") {
		t.Fatal("Disable failed")
	}
	reply, _ := d.Dispatch(ctx, "help", "")
	if !strings.Contains(reply, "disabled") {
		t.Errorf("expected disabled message, got %q", reply)
	}
	if !r.Enable("help") {
		t.Fatal("Enable failed")
	}
	if reply, _ := d.Dispatch(ctx, "help", ""); reply != "echo:" {
		t.Errorf("expected command to run after enable, got %q", reply)
	}
}

func TestDisableByAliasAffectsEveryName(t *testing.T) {
	r := newTestRegistry()
	d := NewDispatcher(r)
	ctx := Context{SenderRole: RoleEveryone}

	if !r.Disable("unsubscribe") {
		t.Fatal("Disable by alias failed")
	}
	for _, name := range []string{"delete", "del", "unsubscribe"} {
		reply, matched := d.Dispatch(ctx, name, "")
		if !matched || !strings.Contains(reply, "disabled") {
			t.Errorf("%q should be disabled, got %q", name, reply)
		}
	}
	if !r.Enable("stop") {
		t.Fatal("Enable by alias failed")
	}
	if reply, _ := d.Dispatch(ctx, "delete", ""); reply != "echo:" {
		t.Errorf("expected delete to run after enable, got %q", reply)
	}
}

func TestDispatchArgErrorShownVerbatim(t *testing.T) {
	r := NewRegistry()
	r.Register(&Command{
		Canonical: "event",
		Handler: func(ctx Context, args string) (string, error) {
			return "", NewArgError("Usage: event add Title: ...")
		},
	})
	d := NewDispatcher(r)

	reply, _ := d.Dispatch(Context{SenderRole: RoleEveryone}, "event", "bogus")
	if reply != "Usage: event add Title: ..." {
		t.Errorf("unexpected reply: %q", reply)
	}
}

func TestDispatchHandlerErrorHidden(t *testing.T) {
	r := NewRegistry()
	r.Register(&Command{
		Canonical: "boom",
		Handler: func(ctx Context, args string) (string, error) {
			return "", errors.New("database exploded")
		},
	})
	d := NewDispatcher(r)

	reply, _ := d.Dispatch(Context{SenderRole: RoleEveryone}, "boom", "")
	if reply != internalError {
		t.Errorf("internal errors must not leak, got %q", reply)
	}
}

func TestDispatchPanicContained(t *testing.T) {
	r := NewRegistry()
	r.Register(&Command{
		Canonical: "panic",
		Handler: func(ctx Context, args string) (string, error) {
			panic("boom")
		},
	})
	d := NewDispatcher(r)

	reply, _ := d.Dispatch(Context{SenderRole: RoleEveryone}, "panic", "")
	if reply != internalError {
		t.Errorf("panic should yield internal error, got %q", reply)
	}
}

func TestDispatchErrorHookCountsFailures(t *testing.T) {
	r := NewRegistry()
	r.Register(&Command{
		Canonical: "boom",
		Handler: func(ctx Context, args string) (string, error) {
			return "", errors.New("database exploded")
		},
	})
	r.Register(&Command{
		Canonical: "panic",
		Handler: func(ctx Context, args string) (string, error) {
			panic("boom")
		},
	})
	r.Register(&Command{
		Canonical: "bad",
		Handler: func(ctx Context, args string) (string, error) {
			return "", NewArgError("usage")
		},
	})
	d := NewDispatcher(r)
	var failed []string
	d.ErrorHook = func(command string) { failed = append(failed, command) }

	ctx := Context{SenderRole: RoleEveryone}
	d.Dispatch(ctx, "boom", "")
	d.Dispatch(ctx, "panic", "")
	// Argument mistakes are the user's problem, not an internal failure.
	d.Dispatch(ctx, "bad", "")

	if len(failed) != 2 || failed[0] != "boom" || failed[1] != "panic" {
		t.Errorf("ErrorHook saw %v", failed)
	}
}

func TestSubcommands(t *testing.T) {
	subs := map[string]SubcommandFunc{
		"list": func(ctx Context, rest []string) (string, error) { return "listed", nil },
		"add": func(ctx Context, rest []string) (string, error) {
			return "added:" + strings.Join(rest, " "), nil
		},
	}

	out, err := Subcommands(Context{}, "add one two", subs, "usage", "")
	if err != nil || out != "added:one two" {
		t.Errorf("Subcommands = %q, %v", out, err)
	}

	out, err = Subcommands(Context{}, "", subs, "usage", "list")
	if err != nil || out != "listed" {
		t.Errorf("default subcommand = %q, %v", out, err)
	}

	_, err = Subcommands(Context{}, "", subs, "usage text", "")
	var argErr *ArgError
	if !errors.As(err, &argErr) || argErr.Msg != "usage text" {
		t.Errorf("expected usage ArgError, got %v", err)
	}

	_, err = Subcommands(Context{}, "frobnicate", subs, "usage", "")
	if !errors.As(err, &argErr) || !strings.Contains(argErr.Msg, "frobnicate") {
		t.Errorf("expected unknown subcommand error, got %v", err)
	}

	// The default covers empty input only; an unknown name is still an
	// argument error.
	_, err = Subcommands(Context{}, "frobnicate", subs, "usage", "list")
	if !errors.As(err, &argErr) || !strings.Contains(argErr.Msg, "frobnicate") {
		t.Errorf("expected unknown subcommand error with default set, got %v", err)
	}
}

func TestSimilarity(t *testing.T) {
	if r := similarity("help", "help"); r != 1 {
		t.Errorf("identical strings ratio = %f", r)
	}
	if r := similarity("hep", "help"); r < 0.75 {
		t.Errorf("hep/help ratio = %f, want >= 0.75", r)
	}
	if r := similarity("abc", "xyz"); r != 0 {
		t.Errorf("disjoint strings ratio = %f", r)
	}
}
