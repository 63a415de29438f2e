// Package manifest parses requirements-style dependency manifests.
//
// The bot's optional features (alternate transports, the explore scraper)
// declare their external requirements in a small manifest file using the
// familiar one-specifier-per-line format:
//
//	cryptography>=41.0
//	python-dotenv
//	discord.py[voice] ; extra == "discord"
//
// Comment lines start with '#', blank lines are ignored, and entries carrying
// an environment marker are only active when the named extra is requested.
// Parsing is deterministic: the same input always yields the same ordered
// list of requirements.
package manifest

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"regexp"
	"strings"
)

// Constraint is a single version bound attached to a requirement.
type Constraint struct {
	Op      string // ==, >=, <=, >, <, !=, ~=
	Version string
}

// Requirement is one parsed specifier line.
type Requirement struct {
	Name        string
	Extras      []string
	Constraints []Constraint
	Marker      string // raw marker text after ';', empty if none
	Line        int    // 1-based line number in the source
	Raw         string // original specifier text, marker included
}

// Manifest is an ordered list of declared requirements.
type Manifest struct {
	Requirements []Requirement
}

var (
	nameRe       = regexp.MustCompile(`^[A-Za-z0-9]([A-Za-z0-9._-]*[A-Za-z0-9])?$`)
	constraintRe = regexp.MustCompile(`^(==|>=|<=|~=|!=|>|<)\s*([A-Za-z0-9._*+!-]+)$`)
	markerRe     = regexp.MustCompile(`^extra\s*(==|!=)\s*"([^"]*)"$`)
)

// Parse reads a manifest from r. Malformed specifier lines produce an error
// naming the offending line number; comments and blank lines are skipped.
func Parse(r io.Reader) (*Manifest, error) {
	m := &Manifest{}
	scanner := bufio.NewScanner(r)
	lineno := 0
	for scanner.Scan() {
		lineno++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		req, err := parseSpecifier(line, lineno)
		if err != nil {
			return nil, err
		}
		m.Requirements = append(m.Requirements, req)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read manifest: %w", err)
	}
	return m, nil
}

// ParseFile reads and parses the manifest at path.
func ParseFile(path string) (*Manifest, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open manifest: %w", err)
	}
	defer f.Close()
	return Parse(f)
}

// parseSpecifier parses a single non-comment, non-blank line.
func parseSpecifier(line string, lineno int) (Requirement, error) {
	req := Requirement{Line: lineno, Raw: line}

	// Split off the environment marker, if any.
	spec := line
	if idx := strings.Index(line, ";"); idx >= 0 {
		spec = strings.TrimSpace(line[:idx])
		req.Marker = strings.TrimSpace(line[idx+1:])
		if req.Marker == "" {
			return req, fmt.Errorf("line %d: empty environment marker", lineno)
		}
		if !markerRe.MatchString(req.Marker) {
			return req, fmt.Errorf("line %d: unsupported environment marker %q", lineno, req.Marker)
		}
	}
	if spec == "" {
		return req, fmt.Errorf("line %d: missing package specifier", lineno)
	}

	// Split off version constraints. The name (with optional extras) ends at
	// the first comparison operator.
	namePart := spec
	constraintPart := ""
	if idx := strings.IndexAny(spec, "=<>!~"); idx >= 0 {
		namePart = strings.TrimSpace(spec[:idx])
		constraintPart = strings.TrimSpace(spec[idx:])
	}

	// Extras: name[extra1,extra2]
	if idx := strings.Index(namePart, "["); idx >= 0 {
		if !strings.HasSuffix(namePart, "]") {
			return req, fmt.Errorf("line %d: unterminated extras list in %q", lineno, namePart)
		}
		for _, extra := range strings.Split(namePart[idx+1:len(namePart)-1], ",") {
			extra = strings.TrimSpace(extra)
			if extra == "" {
				return req, fmt.Errorf("line %d: empty extra name in %q", lineno, namePart)
			}
			req.Extras = append(req.Extras, extra)
		}
		namePart = namePart[:idx]
	}

	if !nameRe.MatchString(namePart) {
		return req, fmt.Errorf("line %d: invalid package name %q", lineno, namePart)
	}
	req.Name = namePart

	if constraintPart != "" {
		for _, clause := range strings.Split(constraintPart, ",") {
			clause = strings.TrimSpace(clause)
			groups := constraintRe.FindStringSubmatch(clause)
			if groups == nil {
				return req, fmt.Errorf("line %d: invalid version constraint %q", lineno, clause)
			}
			req.Constraints = append(req.Constraints, Constraint{Op: groups[1], Version: groups[2]})
		}
	}

	return req, nil
}

// markerSatisfied evaluates the requirement's environment marker against the
// requested extras. Requirements without a marker are always active.
func (r Requirement) markerSatisfied(extras map[string]bool) bool {
	if r.Marker == "" {
		return true
	}
	groups := markerRe.FindStringSubmatch(r.Marker)
	if groups == nil {
		return false
	}
	requested := extras[groups[2]]
	if groups[1] == "==" {
		return requested
	}
	return !requested
}

// Resolve returns the ordered subset of requirements active for the given
// extras. Declaration order is preserved.
func (m *Manifest) Resolve(extras ...string) []Requirement {
	set := make(map[string]bool, len(extras))
	for _, e := range extras {
		set[strings.TrimSpace(e)] = true
	}
	var active []Requirement
	for _, req := range m.Requirements {
		if req.markerSatisfied(set) {
			active = append(active, req)
		}
	}
	return active
}

// Names returns the declared package names in order, markers ignored.
func (m *Manifest) Names() []string {
	names := make([]string, 0, len(m.Requirements))
	for _, req := range m.Requirements {
		names = append(names, req.Name)
	}
	return names
}

// String renders the requirement back to specifier form.
func (r Requirement) String() string {
	var b strings.Builder
	b.WriteString(r.Name)
	if len(r.Extras) > 0 {
		b.WriteString("[" + strings.Join(r.Extras, ",") + "]")
	}
	for i, c := range r.Constraints {
		if i > 0 {
			b.WriteString(",")
		}
		b.WriteString(c.Op + c.Version)
	}
	if r.Marker != "" {
		b.WriteString(" ; " + r.Marker)
	}
	return b.String()
}
