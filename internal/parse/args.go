package parse

import (
	"fmt"
	"strings"
)

// SplitArgs splits an argument string on whitespace, dropping empty tokens.
func SplitArgs(args string) []string {
	return strings.Fields(args)
}

// SplitArgsN splits on a separator, trimming tokens and dropping empties.
// n limits the number of splits as in strings.SplitN; n < 0 means no limit.
func SplitArgsN(args, sep string, n int) []string {
	var parts []string
	if n < 0 {
		parts = strings.Split(args, sep)
	} else {
		parts = strings.SplitN(args, sep, n+1)
	}
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// KeyValueArgs parses "key: value, key: value" style arguments. Keys are
// lowercased. A pair missing the separator is an error.
func KeyValueArgs(args, pairDelim, kvSep string) (map[string]string, error) {
	result := make(map[string]string)
	for _, pair := range strings.Split(args, pairDelim) {
		pair = strings.TrimSpace(pair)
		if pair == "" {
			continue
		}
		key, value, ok := strings.Cut(pair, kvSep)
		if !ok {
			return nil, fmt.Errorf("argument %q is not a valid key%svalue pair", pair, kvSep)
		}
		result[strings.ToLower(strings.TrimSpace(key))] = strings.TrimSpace(value)
	}
	return result, nil
}
