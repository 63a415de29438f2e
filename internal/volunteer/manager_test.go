package volunteer

import (
	"strings"
	"sync"
	"testing"

	"github.com/wagner-austin/signal-bot/internal/store"
)

func newTestManager(t *testing.T) (*Manager, *store.Store) {
	t.Helper()
	s, err := store.Open(":memory:")
	if err != nil {
		t.Fatalf("Failed to open store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return NewManager(s), s
}

func TestRegisterNewVolunteer(t *testing.T) {
	m, s := newTestManager(t)

	msg, err := m.Register("+15551234567", "Jane Doe", []string{"first aid"}, true)
	if err != nil {
		t.Fatalf("Register failed: %v", err)
	}
	if msg != "New volunteer 'Jane Doe' registered" {
		t.Errorf("unexpected message: %q", msg)
	}

	v, _ := s.GetVolunteer("+15551234567")
	if v == nil || v.Role != DefaultRole {
		t.Fatalf("unexpected record: %+v", v)
	}
}

func TestRegisterSkipNameIsAnonymous(t *testing.T) {
	m, s := newTestManager(t)

	msg, err := m.Register("+15551234567", "skip", nil, true)
	if err != nil {
		t.Fatalf("Register failed: %v", err)
	}
	if msg != "New volunteer 'Anonymous' registered" {
		t.Errorf("unexpected message: %q", msg)
	}
	v, _ := s.GetVolunteer("+15551234567")
	if v.Name != "Anonymous" {
		t.Errorf("expected Anonymous, got %q", v.Name)
	}
}

func TestRegisterUpdateMergesSkills(t *testing.T) {
	m, s := newTestManager(t)

	if _, err := m.Register("+15551234567", "Jane", []string{"first aid"}, true); err != nil {
		t.Fatalf("Register failed: %v", err)
	}
	msg, err := m.Register("+15551234567", "skip", []string{"First Aid", "photography"}, true)
	if err != nil {
		t.Fatalf("Register update failed: %v", err)
	}
	if msg != "Volunteer 'Jane' updated" {
		t.Errorf("unexpected message: %q", msg)
	}

	v, _ := s.GetVolunteer("+15551234567")
	if len(v.Skills) != 2 {
		t.Errorf("skills should union case-insensitively: %v", v.Skills)
	}
	if v.Skills[0] != "first aid" {
		t.Errorf("earliest spelling should win: %v", v.Skills)
	}
}

func TestRegisterInvalidPhone(t *testing.T) {
	m, _ := newTestManager(t)
	if _, err := m.Register("15551234567", "Jane", nil, true); err == nil {
		t.Error("expected error for phone without +")
	}
	if _, err := m.Register("+1555; rm", "Jane", nil, true); err == nil {
		t.Error("expected error for malformed phone")
	}
}

func TestDeleteAndReregister(t *testing.T) {
	m, s := newTestManager(t)

	if _, err := m.Register("+15551234567", "Jane", nil, true); err != nil {
		t.Fatalf("Register failed: %v", err)
	}
	msg, err := m.Delete("+15551234567")
	if err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if !strings.Contains(msg, "deleted") {
		t.Errorf("unexpected message: %q", msg)
	}

	deleted, _ := s.ListDeletedVolunteers()
	if len(deleted) != 1 {
		t.Fatalf("expected 1 archived volunteer, got %d", len(deleted))
	}

	// Registering again clears the archive row.
	if _, err := m.Register("+15551234567", "Jane", nil, true); err != nil {
		t.Fatalf("re-register failed: %v", err)
	}
	deleted, _ = s.ListDeletedVolunteers()
	if len(deleted) != 0 {
		t.Errorf("archive should be cleared on re-registration, got %+v", deleted)
	}
}

func TestDeleteUnregistered(t *testing.T) {
	m, _ := newTestManager(t)
	if _, err := m.Delete("+15551234567"); err != ErrNotRegistered {
		t.Errorf("expected ErrNotRegistered, got %v", err)
	}
}

func TestCheckInCheckOut(t *testing.T) {
	m, s := newTestManager(t)

	if _, err := m.Register("+15551234567", "Jane", nil, false); err != nil {
		t.Fatalf("Register failed: %v", err)
	}

	msg, err := m.CheckIn("+15551234567")
	if err != nil {
		t.Fatalf("CheckIn failed: %v", err)
	}
	if !strings.Contains(msg, "checked in") {
		t.Errorf("unexpected message: %q", msg)
	}
	v, _ := s.GetVolunteer("+15551234567")
	if !v.Available {
		t.Error("volunteer should be available after check in")
	}

	if _, err := m.CheckOut("+15551234567"); err != nil {
		t.Fatalf("CheckOut failed: %v", err)
	}
	v, _ = s.GetVolunteer("+15551234567")
	if v.Available {
		t.Error("volunteer should be unavailable after check out")
	}
}

func TestAssignRoleRequiresSkills(t *testing.T) {
	m, _ := newTestManager(t)

	if _, err := m.Register("+15551234567", "Jane", []string{"communication"}, true); err != nil {
		t.Fatalf("Register failed: %v", err)
	}

	msg, err := m.AssignRole("+15551234567", "medic")
	if err != nil {
		t.Fatalf("AssignRole failed: %v", err)
	}
	if !strings.Contains(msg, "do not have the necessary skills") {
		t.Errorf("expected skill rejection, got %q", msg)
	}

	if _, err := m.AddSkills("+15551234567", []string{"first aid"}); err != nil {
		t.Fatalf("AddSkills failed: %v", err)
	}
	msg, err = m.AssignRole("+15551234567", "Medic")
	if err != nil {
		t.Fatalf("AssignRole failed: %v", err)
	}
	if msg != "Your role has been set to 'medic'." {
		t.Errorf("unexpected message: %q", msg)
	}
}

func TestAssignUnknownRole(t *testing.T) {
	m, _ := newTestManager(t)
	if _, err := m.Register("+15551234567", "Jane", nil, true); err != nil {
		t.Fatalf("Register failed: %v", err)
	}
	msg, err := m.AssignRole("+15551234567", "wizard")
	if err != nil {
		t.Fatalf("AssignRole failed: %v", err)
	}
	if !strings.Contains(msg, "not recognized") {
		t.Errorf("expected unrecognized role message, got %q", msg)
	}
}

func TestFindAvailableSkipsAssignedRoles(t *testing.T) {
	m, _ := newTestManager(t)

	if _, err := m.Register("+15551111111", "Ana", []string{"first aid"}, true); err != nil {
		t.Fatal(err)
	}
	if _, err := m.Register("+15552222222", "Ben", []string{"first aid"}, true); err != nil {
		t.Fatal(err)
	}
	if _, err := m.AssignRole("+15551111111", "medic"); err != nil {
		t.Fatal(err)
	}

	name, err := m.FindAvailable("First Aid")
	if err != nil {
		t.Fatalf("FindAvailable failed: %v", err)
	}
	if name != "Ben" {
		t.Errorf("expected Ben (Ana already has a role), got %q", name)
	}

	name, _ = m.FindAvailable("photography")
	if name != "" {
		t.Errorf("expected no match, got %q", name)
	}
}

func TestStatus(t *testing.T) {
	m, _ := newTestManager(t)

	status, err := m.Status()
	if err != nil {
		t.Fatalf("Status failed: %v", err)
	}
	if status != "No volunteers registered." {
		t.Errorf("unexpected empty status: %q", status)
	}

	if _, err := m.Register("+15551234567", "Jane", nil, true); err != nil {
		t.Fatal(err)
	}
	status, _ = m.Status()
	if !strings.Contains(status, "Jane: Available, Role: None") {
		t.Errorf("unexpected status: %q", status)
	}
}

func TestConcurrentRegistrationsSamePhone(t *testing.T) {
	m, s := newTestManager(t)

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			skill := []string{"skill"}
			if i%2 == 0 {
				skill = []string{"other"}
			}
			if _, err := m.Register("+15551234567", "Jane", skill, true); err != nil {
				t.Errorf("Register failed: %v", err)
			}
		}(i)
	}
	wg.Wait()

	v, _ := s.GetVolunteer("+15551234567")
	if v == nil || len(v.Skills) != 2 {
		t.Errorf("expected both skills merged, got %+v", v)
	}
}

func TestListRoles(t *testing.T) {
	roles := ListRoles()
	if len(roles) != len(RecognizedRoles) {
		t.Fatalf("expected %d roles, got %d", len(RecognizedRoles), len(roles))
	}
	if !strings.Contains(roles[4], "medic (requires: first aid)") {
		t.Errorf("unexpected medic entry: %q", roles[4])
	}
}
