package signalcli

import (
	"context"
	"strings"

	"github.com/wagner-austin/signal-bot/internal/logging"
)

// commandRunner is the subprocess surface the client needs. Satisfied by
// *Runner; tests substitute a fake.
type commandRunner interface {
	Run(ctx context.Context, args []string, stdin string) (string, error)
}

// Client sends and receives messages through signal-cli.
type Client struct {
	runner commandRunner
}

// NewClient returns a client backed by the given runner.
func NewClient(runner commandRunner) *Client {
	return &Client{runner: runner}
}

// Send delivers a message to a phone number, or to a group when groupID is
// non-empty. The message text goes over stdin so it is never subject to
// argument validation.
func (c *Client) Send(ctx context.Context, toNumber, message, groupID string) error {
	var args []string
	if groupID != "" {
		args = []string{"send", "-g", groupID, "--message-from-stdin"}
	} else {
		args = []string{"send", toNumber, "--message-from-stdin"}
	}
	if _, err := c.runner.Run(ctx, args, message); err != nil {
		return err
	}
	if groupID != "" {
		logging.Signal("sent to group %s (%d bytes)", groupID, len(message))
	} else {
		logging.Signal("sent to %s (%d bytes)", toNumber, len(message))
	}
	return nil
}

// SendReply delivers a message quoting an earlier message from quoteAuthor
// at quoteTimestamp.
func (c *Client) SendReply(ctx context.Context, toNumber, message, quoteAuthor, quoteTimestamp string) error {
	args := []string{
		"send", toNumber,
		"--quote-author", quoteAuthor,
		"--quote-timestamp", quoteTimestamp,
		"--message-from-stdin",
	}
	_, err := c.runner.Run(ctx, args, message)
	return err
}

// Receive drains pending messages and returns one raw envelope per entry.
func (c *Client) Receive(ctx context.Context) ([]string, error) {
	output, err := c.runner.Run(ctx, []string{"receive"}, "")
	if err != nil {
		return nil, err
	}
	output = strings.TrimSpace(output)
	if output == "" {
		return nil, nil
	}
	return splitEnvelopes(output), nil
}

// splitEnvelopes splits receive output on lines beginning a new envelope.
// Go regexps have no lookahead, so split points are located manually.
func splitEnvelopes(output string) []string {
	lines := strings.Split(output, "\n")
	var envelopes []string
	var current []string
	for _, line := range lines {
		if strings.HasPrefix(line, "Envelope") && len(current) > 0 {
			envelopes = append(envelopes, strings.Join(current, "\n"))
			current = current[:0]
		}
		current = append(current, line)
	}
	if len(current) > 0 {
		envelopes = append(envelopes, strings.Join(current, "\n"))
	}
	return envelopes
}
