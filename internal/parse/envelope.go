// Package parse extracts structured messages from signal-cli receive output.
//
// signal-cli prints envelopes as indented plain text. Extraction is regex
// based: sender, body, timestamps, group id, and quoted reply id are each
// pulled independently so a partially formed envelope still yields whatever
// fields it carries.
package parse

import (
	"regexp"
	"strconv"
	"strings"
)

var (
	senderRe    = regexp.MustCompile(`(?i)\s*from:\s*(?:["“]?.+?["”]?\s+)?(\+\d{1,15})`)
	bodyRe      = regexp.MustCompile(`Body:\s*(.+)`)
	timestampRe = regexp.MustCompile(`Timestamp:\s*(\d+)`)
	groupIDRe   = regexp.MustCompile(`Id:\s*([^\n]+)`)
	replyRe     = regexp.MustCompile(`(?s)Quote:.*?Id:\s*([^\n]+)`)
	msgTsRe     = regexp.MustCompile(`Message timestamp:\s*(\d+)`)
)

// Message holds the fields extracted from one envelope.
type Message struct {
	Sender           string
	Body             string
	Timestamp        int64
	GroupID          string
	ReplyTo          string
	MessageTimestamp string
	Command          string
	Args             string
}

// IsGroup reports whether the envelope carried group info.
func (m *Message) IsGroup() bool { return m.GroupID != "" }

// Sender extracts the sender phone number from an envelope.
func Sender(envelope string) string {
	if m := senderRe.FindStringSubmatch(envelope); m != nil {
		return m[1]
	}
	return ""
}

// Body extracts the message body from an envelope.
func Body(envelope string) string {
	if m := bodyRe.FindStringSubmatch(envelope); m != nil {
		return strings.TrimSpace(m[1])
	}
	return ""
}

// Timestamp extracts the envelope timestamp, or 0 when absent.
func Timestamp(envelope string) int64 {
	if m := timestampRe.FindStringSubmatch(envelope); m != nil {
		ts, err := strconv.ParseInt(m[1], 10, 64)
		if err == nil {
			return ts
		}
	}
	return 0
}

// GroupID extracts the group id. Only envelopes containing a "Group info:"
// block are considered group messages.
func GroupID(envelope string) string {
	if !strings.Contains(envelope, "Group info:") {
		return ""
	}
	if m := groupIDRe.FindStringSubmatch(envelope); m != nil {
		return strings.TrimSpace(m[1])
	}
	return ""
}

// ReplyTo extracts the quoted message id when the envelope is a reply.
func ReplyTo(envelope string) string {
	if m := replyRe.FindStringSubmatch(envelope); m != nil {
		return strings.TrimSpace(m[1])
	}
	return ""
}

// MessageTimestamp extracts the original command's message timestamp.
func MessageTimestamp(envelope string) string {
	if m := msgTsRe.FindStringSubmatch(envelope); m != nil {
		return strings.TrimSpace(m[1])
	}
	return ""
}

// ParseEnvelope extracts all fields from one envelope, including the command
// and arguments from the body.
func ParseEnvelope(envelope string) Message {
	msg := Message{
		Sender:           Sender(envelope),
		Body:             Body(envelope),
		Timestamp:        Timestamp(envelope),
		GroupID:          GroupID(envelope),
		ReplyTo:          ReplyTo(envelope),
		MessageTimestamp: MessageTimestamp(envelope),
	}
	msg.Command, msg.Args = Command(msg.Body, msg.IsGroup())
	return msg
}
