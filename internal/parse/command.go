package parse

import (
	"regexp"
	"strings"
)

// Mention prefixes that address the bot, checked case-insensitively. Signal
// renders a tapped mention as the object replacement character, which maps to
// the long form.
var botPrefixes = []string{"@bot", "@50501oc bot"}

const objectReplacement = "￼"

var commandRe = regexp.MustCompile(`^[a-z0-9_]+$`)

// Command extracts a command and its argument string from a message body.
//
// In group chats the body must start with one of the bot prefixes; without a
// prefix nothing is extracted. In direct chats the prefix is optional. The
// command itself must be lowercase letters, digits, or underscores.
func Command(body string, isGroup bool) (string, string) {
	if body == "" {
		return "", ""
	}

	message := strings.Join(strings.Fields(body), " ")

	if strings.HasPrefix(message, objectReplacement) {
		message = strings.TrimSpace("@50501oc bot" + message[len(objectReplacement):])
	}

	lower := strings.ToLower(message)
	matched := ""
	for _, prefix := range botPrefixes {
		if strings.HasPrefix(lower, prefix) && len(prefix) > len(matched) {
			matched = prefix
		}
	}

	if matched != "" {
		message = strings.TrimSpace(message[len(matched):])
	} else if isGroup {
		return "", ""
	}

	command, args, _ := strings.Cut(message, " ")
	command = strings.ToLower(strings.TrimSpace(command))
	if !commandRe.MatchString(command) {
		return "", ""
	}
	return command, strings.TrimSpace(args)
}
