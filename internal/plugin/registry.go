// Package plugin implements the command registry and dispatcher. Commands
// register under a canonical name plus aliases, carry a required role and
// help text, and can be disabled at runtime.
package plugin

import (
	"sort"
	"strings"
	"sync"
)

// fuzzyCutoff is the minimum similarity for typo correction of an unknown
// command name.
const fuzzyCutoff = 0.75

// Context carries per-message information into a command handler.
type Context struct {
	Sender       string
	GroupID      string
	SenderRole   string
	MsgTimestamp int64
}

// HandlerFunc executes a command. args is the raw argument string after the
// command name.
type HandlerFunc func(ctx Context, args string) (string, error)

// Command is one registered command.
type Command struct {
	Canonical    string
	Aliases      []string
	Help         string
	HelpVisible  bool
	RequiredRole string
	Handler      HandlerFunc
}

// Registry maps command names and aliases to commands.
type Registry struct {
	mu       sync.RWMutex
	byName   map[string]*Command
	disabled map[string]bool
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		byName:   make(map[string]*Command),
		disabled: make(map[string]bool),
	}
}

// Register adds a command under its canonical name and aliases. Empty
// RequiredRole means everyone; HelpVisible defaults from the Help field
// being non-empty unless set explicitly by the caller.
func (r *Registry) Register(cmd *Command) {
	if cmd.RequiredRole == "" {
		cmd.RequiredRole = RoleEveryone
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.byName[strings.ToLower(cmd.Canonical)] = cmd
	for _, alias := range cmd.Aliases {
		r.byName[strings.ToLower(alias)] = cmd
	}
}

// Resolve finds a command for the first word plus as many following words of
// the argument string as match a registered multi-word name. Longest name
// wins; leftover words become the argument string.
func (r *Registry) Resolve(command, args string) (*Command, string) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	words := append([]string{strings.ToLower(command)}, strings.Fields(strings.ToLower(args))...)
	rawWords := append([]string{command}, strings.Fields(args)...)

	for n := len(words); n >= 1; n-- {
		name := strings.Join(words[:n], " ")
		if cmd, ok := r.byName[name]; ok {
			return cmd, strings.Join(rawWords[n:], " ")
		}
	}
	return nil, args
}

// Get looks up a command by exact name or alias.
func (r *Registry) Get(name string) *Command {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.byName[strings.ToLower(name)]
}

// Names returns every registered name and alias, sorted.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.byName))
	for name := range r.byName {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Commands returns the distinct registered commands sorted by canonical
// name.
func (r *Registry) Commands() []*Command {
	r.mu.RLock()
	defer r.mu.RUnlock()
	seen := make(map[*Command]bool)
	var out []*Command
	for _, cmd := range r.byName {
		if !seen[cmd] {
			seen[cmd] = true
			out = append(out, cmd)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Canonical < out[j].Canonical })
	return out
}

// Disable turns a command off. Any name or alias is accepted; the disabled
// state is keyed by the command's canonical name.
func (r *Registry) Disable(name string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	cmd, ok := r.byName[strings.ToLower(name)]
	if !ok {
		return false
	}
	r.disabled[strings.ToLower(cmd.Canonical)] = true
	return true
}

// Enable turns a command back on, accepting any name or alias.
func (r *Registry) Enable(name string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	cmd, ok := r.byName[strings.ToLower(name)]
	if !ok {
		return false
	}
	delete(r.disabled, strings.ToLower(cmd.Canonical))
	return true
}

// Disabled reports whether a command is disabled.
func (r *Registry) Disabled(canonical string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.disabled[strings.ToLower(canonical)]
}

// DisabledNames returns the canonical names of disabled commands, sorted.
func (r *Registry) DisabledNames() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []string
	for name := range r.disabled {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}
