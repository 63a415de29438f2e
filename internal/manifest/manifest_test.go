package manifest

import (
	"reflect"
	"strings"
	"testing"
)

const sampleManifest = `# Core dependencies
cryptography>=41.0
python-dotenv
pydantic==2.5.1
requests

# Optional integrations
discord.py[voice] ; extra == "discord"
undetected-chromedriver ; extra == "scraper"
`

func TestParseOrderedNames(t *testing.T) {
	m, err := Parse(strings.NewReader(sampleManifest))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	want := []string{"cryptography", "python-dotenv", "pydantic", "requests", "discord.py", "undetected-chromedriver"}
	if got := m.Names(); !reflect.DeepEqual(got, want) {
		t.Errorf("Names() = %v, want %v", got, want)
	}
}

func TestParseIdempotent(t *testing.T) {
	first, err := Parse(strings.NewReader(sampleManifest))
	if err != nil {
		t.Fatalf("first Parse failed: %v", err)
	}
	second, err := Parse(strings.NewReader(sampleManifest))
	if err != nil {
		t.Fatalf("second Parse failed: %v", err)
	}
	if !reflect.DeepEqual(first, second) {
		t.Error("re-parsing the same manifest yielded a different result")
	}
}

func TestParseConstraintsAndExtras(t *testing.T) {
	m, err := Parse(strings.NewReader(`discord.py[voice]>=2.0,<3.0 ; extra == "discord"`))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if len(m.Requirements) != 1 {
		t.Fatalf("expected 1 requirement, got %d", len(m.Requirements))
	}
	req := m.Requirements[0]
	if req.Name != "discord.py" {
		t.Errorf("Name = %q", req.Name)
	}
	if !reflect.DeepEqual(req.Extras, []string{"voice"}) {
		t.Errorf("Extras = %v", req.Extras)
	}
	wantConstraints := []Constraint{{Op: ">=", Version: "2.0"}, {Op: "<", Version: "3.0"}}
	if !reflect.DeepEqual(req.Constraints, wantConstraints) {
		t.Errorf("Constraints = %v, want %v", req.Constraints, wantConstraints)
	}
	if req.Marker != `extra == "discord"` {
		t.Errorf("Marker = %q", req.Marker)
	}
}

func TestResolveGatesExtras(t *testing.T) {
	m, err := Parse(strings.NewReader(sampleManifest))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	// Without extras the gated entries are excluded.
	base := m.Resolve()
	if len(base) != 4 {
		t.Fatalf("Resolve() returned %d entries, want 4", len(base))
	}
	for _, req := range base {
		if req.Marker != "" {
			t.Errorf("Resolve() included gated requirement %q", req.Name)
		}
	}

	// The discord extra activates only discord.py.
	withDiscord := m.Resolve("discord")
	if len(withDiscord) != 5 {
		t.Fatalf("Resolve(discord) returned %d entries, want 5", len(withDiscord))
	}
	last := withDiscord[len(withDiscord)-1]
	if last.Name != "discord.py" {
		t.Errorf("Resolve(discord) last entry = %q, want discord.py", last.Name)
	}
}

func TestParseErrors(t *testing.T) {
	cases := []struct {
		name  string
		input string
	}{
		{"bad name", "???bogus\n"},
		{"bad constraint", "requests>>1.0\n"},
		{"empty marker", "requests ;   \n"},
		{"unsupported marker", `requests ; python_version < "3.9"` + "\n"},
		{"unterminated extras", "discord.py[voice\n"},
		{"empty extra", "discord.py[]\n"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := Parse(strings.NewReader(tc.input)); err == nil {
				t.Errorf("Parse(%q) succeeded, want error", tc.input)
			}
		})
	}
}

func TestRequirementString(t *testing.T) {
	line := `discord.py[voice]>=2.0 ; extra == "discord"`
	m, err := Parse(strings.NewReader(line))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if got := m.Requirements[0].String(); got != line {
		t.Errorf("String() = %q, want %q", got, line)
	}
}
