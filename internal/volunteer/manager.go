// Package volunteer manages volunteer registration, availability, roles, and
// skills on top of the store.
package volunteer

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
	"sync"

	"github.com/wagner-austin/signal-bot/internal/logging"
	"github.com/wagner-austin/signal-bot/internal/store"
)

// ErrNotRegistered is returned for operations that need an existing
// registration.
var ErrNotRegistered = errors.New("you are not registered")

var phoneRe = regexp.MustCompile(`^\+\d{7,15}$`)

// ValidatePhone checks for an E.164 phone number.
func ValidatePhone(phone string) error {
	if !phoneRe.MatchString(phone) {
		return fmt.Errorf("invalid phone number %q", phone)
	}
	return nil
}

// NormalizeName returns "Anonymous" when the name is just the phone number.
func NormalizeName(name, phone string) string {
	if name == phone {
		return "Anonymous"
	}
	return name
}

// Manager serializes volunteer mutations per phone number so concurrent
// messages from the same person cannot interleave.
type Manager struct {
	store *store.Store

	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

// NewManager returns a manager backed by the store.
func NewManager(s *store.Store) *Manager {
	return &Manager{store: s, locks: make(map[string]*sync.Mutex)}
}

// phoneLock returns the mutex for one phone, creating it on first use.
func (m *Manager) phoneLock(phone string) *sync.Mutex {
	m.mu.Lock()
	defer m.mu.Unlock()
	l, ok := m.locks[phone]
	if !ok {
		l = &sync.Mutex{}
		m.locks[phone] = l
	}
	return l
}

// Register creates or updates a volunteer and returns a confirmation
// message. The name "skip" (or an empty name) keeps the existing name, or
// registers as Anonymous for new volunteers. Skills are merged with any
// already recorded. A previously deleted volunteer registering again has the
// archive row removed.
func (m *Manager) Register(phone, name string, skills []string, available bool) (string, error) {
	if err := ValidatePhone(phone); err != nil {
		return "", err
	}

	l := m.phoneLock(phone)
	l.Lock()
	defer l.Unlock()

	if err := m.store.RemoveDeletedVolunteer(phone); err != nil {
		return "", err
	}

	record, err := m.store.GetVolunteer(phone)
	if err != nil {
		return "", err
	}

	name = strings.TrimSpace(name)
	skip := name == "" || strings.EqualFold(name, "skip")

	if record != nil {
		updated := *record
		if !skip {
			updated.Name = name
		}
		updated.Name = NormalizeName(updated.Name, phone)
		updated.Skills = mergeSkills(record.Skills, skills)
		updated.Available = available
		if err := m.store.UpsertVolunteer(updated); err != nil {
			return "", err
		}
		logging.Flow("volunteer %s updated: name=%q skills=%v", phone, updated.Name, updated.Skills)
		return fmt.Sprintf("Volunteer '%s' updated", updated.Name), nil
	}

	finalName := name
	if skip {
		finalName = "Anonymous"
	}
	finalName = NormalizeName(finalName, phone)
	v := store.Volunteer{
		Phone:     phone,
		Name:      finalName,
		Skills:    mergeSkills(nil, skills),
		Available: available,
		Role:      DefaultRole,
	}
	if err := m.store.UpsertVolunteer(v); err != nil {
		return "", err
	}
	logging.Flow("new volunteer %s registered: name=%q skills=%v", phone, finalName, v.Skills)
	return fmt.Sprintf("New volunteer '%s' registered", finalName), nil
}

// Delete removes a volunteer's registration, archiving the record.
func (m *Manager) Delete(phone string) (string, error) {
	l := m.phoneLock(phone)
	l.Lock()
	defer l.Unlock()

	record, err := m.store.GetVolunteer(phone)
	if err != nil {
		return "", err
	}
	if record == nil {
		return "", ErrNotRegistered
	}
	if err := m.store.DeleteVolunteer(phone); err != nil {
		return "", err
	}
	logging.Flow("volunteer %s deleted", phone)
	return "Your registration has been deleted. Thank you.", nil
}

// CheckIn marks a volunteer available.
func (m *Manager) CheckIn(phone string) (string, error) {
	return m.setAvailability(phone, true,
		"Volunteer '%s' has been checked in and is now available.")
}

// CheckOut marks a volunteer unavailable.
func (m *Manager) CheckOut(phone string) (string, error) {
	return m.setAvailability(phone, false,
		"Volunteer '%s' has been checked out and is no longer available.")
}

func (m *Manager) setAvailability(phone string, available bool, format string) (string, error) {
	l := m.phoneLock(phone)
	l.Lock()
	defer l.Unlock()

	record, err := m.store.GetVolunteer(phone)
	if err != nil {
		return "", err
	}
	if record == nil {
		return "", ErrNotRegistered
	}
	record.Available = available
	if err := m.store.UpsertVolunteer(*record); err != nil {
		return "", err
	}
	return fmt.Sprintf(format, NormalizeName(record.Name, phone)), nil
}

// AddSkills merges skills into a volunteer's record.
func (m *Manager) AddSkills(phone string, skills []string) (string, error) {
	l := m.phoneLock(phone)
	l.Lock()
	defer l.Unlock()

	record, err := m.store.GetVolunteer(phone)
	if err != nil {
		return "", err
	}
	if record == nil {
		return "", ErrNotRegistered
	}
	record.Skills = mergeSkills(record.Skills, skills)
	if err := m.store.UpsertVolunteer(*record); err != nil {
		return "", err
	}
	return fmt.Sprintf("Skills updated: %s", strings.Join(record.Skills, ", ")), nil
}

// AssignRole sets a volunteer's role after checking the role's skill
// requirements.
func (m *Manager) AssignRole(phone, role string) (string, error) {
	if !RoleRecognized(role) {
		return fmt.Sprintf("Role '%s' is not recognized. Use 'role list' to see available roles.", role), nil
	}

	l := m.phoneLock(phone)
	l.Lock()
	defer l.Unlock()

	record, err := m.store.GetVolunteer(phone)
	if err != nil {
		return "", err
	}
	if record == nil {
		return "", ErrNotRegistered
	}

	if missing := missingSkills(role, record.Skills); len(missing) > 0 {
		yours := "None"
		if len(record.Skills) > 0 {
			yours = strings.Join(record.Skills, ", ")
		}
		return fmt.Sprintf(
			"You do not have the necessary skills for the role '%s'. Required: %s. Your skills: %s.",
			role, strings.Join(missing, ", "), yours), nil
	}

	record.Role = strings.ToLower(role)
	if err := m.store.UpsertVolunteer(*record); err != nil {
		return "", err
	}
	return fmt.Sprintf("Your role has been set to '%s'.", strings.ToLower(role)), nil
}

// UnassignRole clears a volunteer's role back to the default.
func (m *Manager) UnassignRole(phone string) (string, error) {
	l := m.phoneLock(phone)
	l.Lock()
	defer l.Unlock()

	record, err := m.store.GetVolunteer(phone)
	if err != nil {
		return "", err
	}
	if record == nil {
		return "", ErrNotRegistered
	}
	record.Role = DefaultRole
	if err := m.store.UpsertVolunteer(*record); err != nil {
		return "", err
	}
	return "Your role has been cleared.", nil
}

// Status formats one line per volunteer: name, availability, role.
func (m *Manager) Status() (string, error) {
	volunteers, err := m.store.ListVolunteers()
	if err != nil {
		return "", err
	}
	if len(volunteers) == 0 {
		return "No volunteers registered.", nil
	}
	lines := make([]string, 0, len(volunteers))
	for _, v := range volunteers {
		availability := "Not Available"
		if v.Available {
			availability = "Available"
		}
		role := v.Role
		if role == "" || role == DefaultRole {
			role = "None"
		}
		lines = append(lines,
			fmt.Sprintf("%s: %s, Role: %s", NormalizeName(v.Name, v.Phone), availability, role))
	}
	return strings.Join(lines, "\n"), nil
}

// FindAvailable returns the name of the first available volunteer with the
// given skill and no assigned role, or "" when nobody matches.
func (m *Manager) FindAvailable(skill string) (string, error) {
	volunteers, err := m.store.ListVolunteers()
	if err != nil {
		return "", err
	}
	skill = strings.ToLower(skill)
	for _, v := range volunteers {
		if !v.Available || (v.Role != "" && v.Role != DefaultRole) {
			continue
		}
		for _, s := range v.Skills {
			if strings.ToLower(s) == skill {
				return NormalizeName(v.Name, v.Phone), nil
			}
		}
	}
	return "", nil
}

// mergeSkills unions two skill lists, preserving the earliest spelling of
// each skill and first-seen order.
func mergeSkills(existing, added []string) []string {
	seen := make(map[string]bool)
	var out []string
	for _, list := range [][]string{existing, added} {
		for _, s := range list {
			s = strings.TrimSpace(s)
			if s == "" {
				continue
			}
			key := strings.ToLower(s)
			if !seen[key] {
				seen[key] = true
				out = append(out, s)
			}
		}
	}
	return out
}
