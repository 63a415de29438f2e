// Package transport carries messages between chat networks and the bot
// pipeline. The Signal transport polls signal-cli and is always on; the
// Discord transport is optional and event driven.
package transport

import "context"

// Inbound is one message arriving from a transport.
type Inbound struct {
	// Source names the transport the message arrived on.
	Source string
	// Sender identifies the author. Signal uses the E.164 phone number,
	// Discord a "discord:<user id>" key so the two namespaces never collide
	// in storage.
	Sender string
	Body   string
	// GroupID is empty for direct messages.
	GroupID string
	// SenderRole is pre-resolved by transports that know their members'
	// roles. Empty means the pipeline resolves the role itself.
	SenderRole string
	Timestamp  int64
	// MessageTimestamp allows quoting the original message in the reply.
	MessageTimestamp string
}

// Handler processes one inbound message and returns the reply text. An empty
// reply means nothing is sent back.
type Handler func(ctx context.Context, in Inbound) string

// Transport delivers inbound messages to a handler and sends its replies
// until the context is cancelled.
type Transport interface {
	Name() string
	Run(ctx context.Context, handler Handler) error
}
