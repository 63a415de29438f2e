package transport

import (
	"context"
	"time"

	"github.com/wagner-austin/signal-bot/internal/logging"
	"github.com/wagner-austin/signal-bot/internal/parse"
	"github.com/wagner-austin/signal-bot/internal/signalcli"
)

// activitySleep is the short poll delay used right after traffic arrived.
const activitySleep = 200 * time.Millisecond

// Signal polls signal-cli for envelopes and sends replies back through it.
type Signal struct {
	client       *signalcli.Client
	botNumber    string
	pollInterval time.Duration
}

// NewSignal returns the Signal transport.
func NewSignal(client *signalcli.Client, botNumber string, pollInterval time.Duration) *Signal {
	return &Signal{client: client, botNumber: botNumber, pollInterval: pollInterval}
}

func (s *Signal) Name() string { return "signal" }

// Run polls until the context is cancelled. The poll delay adapts: short
// after a batch with traffic, the configured interval when idle. Receive
// errors are logged and polling continues.
func (s *Signal) Run(ctx context.Context, handler Handler) error {
	for {
		envelopes, err := s.client.Receive(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return nil
			}
			logging.Signal("receive failed: %v", err)
		}

		for _, envelope := range envelopes {
			msg := parse.ParseEnvelope(envelope)
			if msg.Sender == "" || msg.Sender == s.botNumber {
				continue
			}
			reply := handler(ctx, Inbound{
				Source:           s.Name(),
				Sender:           msg.Sender,
				Body:             msg.Body,
				GroupID:          msg.GroupID,
				Timestamp:        msg.Timestamp,
				MessageTimestamp: msg.MessageTimestamp,
			})
			if reply == "" {
				continue
			}
			if err := s.send(ctx, msg, reply); err != nil {
				logging.Signal("reply to %s failed: %v", msg.Sender, err)
			}
		}

		delay := s.pollInterval
		if len(envelopes) > 0 {
			delay = activitySleep
		}
		select {
		case <-ctx.Done():
			return nil
		case <-time.After(delay):
		}
	}
}

// send replies in the channel the message came from, quoting the original
// direct message when its timestamp is known.
func (s *Signal) send(ctx context.Context, msg parse.Message, reply string) error {
	if msg.IsGroup() {
		return s.client.Send(ctx, "", reply, msg.GroupID)
	}
	if msg.MessageTimestamp != "" {
		return s.client.SendReply(ctx, msg.Sender, reply, msg.Sender, msg.MessageTimestamp)
	}
	return s.client.Send(ctx, msg.Sender, reply, "")
}
