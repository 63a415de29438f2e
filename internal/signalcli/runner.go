// Package signalcli wraps the signal-cli binary for sending and receiving
// Signal messages.
package signalcli

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"regexp"
	"strings"
	"time"

	"github.com/wagner-austin/signal-bot/internal/logging"
)

// Flags signal-cli may be invoked with. Anything else starting with "-" is
// rejected before the subprocess is built.
var allowedFlags = map[string]bool{
	"send":                 true,
	"receive":              true,
	"-g":                   true,
	"--quote-author":       true,
	"--quote-timestamp":    true,
	"--quote-message":      true,
	"--message-from-stdin": true,
}

// Shell metacharacters have no business in signal-cli arguments even though
// the subprocess never goes through a shell.
var dangerousRe = regexp.MustCompile("[;&|`]")

// ErrValidation is returned when an argument fails the safety checks.
var ErrValidation = errors.New("invalid signal-cli argument")

// ValidateArgs rejects disallowed flags and shell metacharacters.
func ValidateArgs(args []string) error {
	for _, arg := range args {
		if strings.HasPrefix(arg, "-") && !allowedFlags[arg] {
			return fmt.Errorf("%w: disallowed flag %q", ErrValidation, arg)
		}
		if dangerousRe.MatchString(arg) {
			return fmt.Errorf("%w: dangerous character in %q", ErrValidation, arg)
		}
	}
	return nil
}

// Runner executes signal-cli subprocesses with a per-invocation timeout.
type Runner struct {
	Command   string
	BotNumber string
	Timeout   time.Duration
}

// NewRunner returns a runner for the given binary and account.
func NewRunner(command, botNumber string, timeout time.Duration) *Runner {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Runner{Command: command, BotNumber: botNumber, Timeout: timeout}
}

// Run executes signal-cli with the account flag injected, returning stdout.
// stdin is passed to the subprocess when non-empty, which is how message
// text avoids argument validation entirely.
func (r *Runner) Run(ctx context.Context, args []string, stdin string) (string, error) {
	if err := ValidateArgs(args); err != nil {
		return "", err
	}

	ctx, cancel := context.WithTimeout(ctx, r.Timeout)
	defer cancel()

	full := append([]string{"-u", r.BotNumber}, args...)
	cmd := exec.CommandContext(ctx, r.Command, full...)
	if stdin != "" {
		cmd.Stdin = strings.NewReader(stdin)
	}

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	timer := logging.StartTimer(logging.CategorySignal, fmt.Sprintf("signal-cli %s", strings.Join(args, " ")))
	err := cmd.Run()
	timer.Stop()

	if ctx.Err() == context.DeadlineExceeded {
		return "", fmt.Errorf("signal-cli timed out after %s: args %v", r.Timeout, args)
	}
	if err != nil {
		msg := strings.TrimSpace(stderr.String())
		logging.Signal("signal-cli failed: args=%v err=%v stderr=%s", args, err, msg)
		return "", fmt.Errorf("signal-cli failed: %w (stderr: %s)", err, msg)
	}
	return stdout.String(), nil
}
