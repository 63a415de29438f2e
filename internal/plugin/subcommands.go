package plugin

import (
	"strings"
)

// SubcommandFunc handles one subcommand with the remaining tokens.
type SubcommandFunc func(ctx Context, rest []string) (string, error)

// Subcommands routes the first argument token to a handler. When args is
// empty and defaultSub is set, the default handler runs with no tokens.
// Missing or unknown subcommands produce an ArgError carrying the usage
// text.
func Subcommands(ctx Context, args string, subs map[string]SubcommandFunc, usage, defaultSub string) (string, error) {
	tokens := strings.Fields(args)
	if len(tokens) == 0 {
		if defaultSub == "" {
			return "", &ArgError{Msg: usage}
		}
		tokens = []string{defaultSub}
	}

	name := strings.ToLower(tokens[0])
	handler, ok := subs[name]
	if !ok {
		return "", NewArgError("Unknown subcommand '%s'.\n\n%s", name, usage)
	}
	return handler(ctx, tokens[1:])
}
