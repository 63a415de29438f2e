package volunteer

import (
	"fmt"
	"strings"
)

// DefaultRole is the role every volunteer starts with before choosing one.
const DefaultRole = "registered"

// RecognizedRoles are the event roles a volunteer can take on, in display
// order.
var RecognizedRoles = []string{
	"greeter",
	"speaker coordinator",
	"table staff",
	"photographer",
	"medic",
	"emcee",
	"peacekeeper",
	"chant leader",
}

// roleSkillRequirements maps each role to the skills it requires.
var roleSkillRequirements = map[string][]string{
	"greeter":             {"communication", "interpersonal"},
	"speaker coordinator": {"organizational", "communication"},
	"table staff":         {"organization"},
	"photographer":        {"photography"},
	"medic":               {"first aid"},
	"emcee":               {"public speaking", "communication"},
	"peacekeeper":         {"conflict resolution"},
	"chant leader":        {"leadership", "communication"},
}

// AvailableSkills is the palette of skills offered during registration.
var AvailableSkills = []string{
	"Event Coordination",
	"Volunteer Management",
	"Logistics Oversight",
	"Public Speaking",
	"Press Communication",
	"Volunteer Recruitment",
	"Crowd Management",
	"Peacekeeping",
	"Greeter",
	"Chant Leading",
	"General Event Support",
}

// ListRoles returns each recognized role with its required skills.
func ListRoles() []string {
	out := make([]string, 0, len(RecognizedRoles))
	for _, role := range RecognizedRoles {
		req := roleSkillRequirements[role]
		if len(req) == 0 {
			out = append(out, fmt.Sprintf("%s (requires: None)", role))
		} else {
			out = append(out, fmt.Sprintf("%s (requires: %s)", role, strings.Join(req, ", ")))
		}
	}
	return out
}

// RoleRecognized reports whether the role name is one of the recognized
// roles, case-insensitively.
func RoleRecognized(role string) bool {
	role = strings.ToLower(role)
	for _, r := range RecognizedRoles {
		if r == role {
			return true
		}
	}
	return false
}

// missingSkills returns the role's required skills the volunteer lacks.
func missingSkills(role string, skills []string) []string {
	have := make(map[string]bool, len(skills))
	for _, s := range skills {
		have[strings.ToLower(s)] = true
	}
	var missing []string
	for _, req := range roleSkillRequirements[strings.ToLower(role)] {
		if !have[req] {
			missing = append(missing, req)
		}
	}
	return missing
}
