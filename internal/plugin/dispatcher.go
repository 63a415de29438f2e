package plugin

import (
	"errors"
	"fmt"

	"github.com/wagner-austin/signal-bot/internal/logging"
)

// internalError is what users see when a handler fails or panics.
const internalError = "An internal error occurred while processing your command."

// ArgError marks a user-correctable argument problem; its message is shown
// verbatim instead of the internal error text.
type ArgError struct {
	Msg string
}

func (e *ArgError) Error() string { return e.Msg }

// NewArgError builds an ArgError.
func NewArgError(format string, args ...interface{}) *ArgError {
	return &ArgError{Msg: fmt.Sprintf(format, args...)}
}

// Dispatcher routes a parsed command to its handler with permission checks,
// fuzzy matching of unknown names, and panic containment.
type Dispatcher struct {
	registry *Registry

	// ErrorHook, when set, observes every command that ends in an internal
	// error or panic.
	ErrorHook func(command string)
}

// NewDispatcher returns a dispatcher over the registry.
func NewDispatcher(registry *Registry) *Dispatcher {
	return &Dispatcher{registry: registry}
}

// Dispatch runs the command and returns the user-facing reply. The second
// return reports whether the name matched any registered command; callers
// use it to tell unaddressed chatter apart from a handler that chose to
// stay silent.
func (d *Dispatcher) Dispatch(ctx Context, command, args string) (string, bool) {
	if command == "" {
		return "", false
	}

	cmd, rest := d.registry.Resolve(command, args)
	if cmd == nil {
		matched := closestMatch(command, d.registry.Names(), fuzzyCutoff)
		if matched == "" {
			return "", false
		}
		logging.Dispatch("fuzzy matching: %q -> %q", command, matched)
		cmd = d.registry.Get(matched)
		rest = args
	}

	if d.registry.Disabled(cmd.Canonical) {
		return fmt.Sprintf("Command '%s' is currently disabled.", cmd.Canonical), true
	}
	if !HasPermission(ctx.SenderRole, cmd.RequiredRole) {
		logging.Dispatch("denied %q for %s (role %s, needs %s)",
			cmd.Canonical, ctx.Sender, ctx.SenderRole, cmd.RequiredRole)
		return "You do not have permission to use that command.", true
	}

	return d.run(cmd, ctx, rest), true
}

func (d *Dispatcher) run(cmd *Command, ctx Context, args string) (reply string) {
	defer func() {
		if r := recover(); r != nil {
			logging.Get(logging.CategoryDispatch).Error(
				"panic in command %q: %v", cmd.Canonical, r)
			if d.ErrorHook != nil {
				d.ErrorHook(cmd.Canonical)
			}
			reply = internalError
		}
	}()

	timer := logging.StartTimer(logging.CategoryDispatch, cmd.Canonical)
	defer timer.Stop()

	response, err := cmd.Handler(ctx, args)
	if err != nil {
		var argErr *ArgError
		if errors.As(err, &argErr) {
			return argErr.Msg
		}
		logging.Get(logging.CategoryDispatch).Error(
			"command %q from %s failed: %v", cmd.Canonical, ctx.Sender, err)
		if d.ErrorHook != nil {
			d.ErrorHook(cmd.Canonical)
		}
		return internalError
	}
	return response
}
