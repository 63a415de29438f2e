package flow

import (
	"fmt"
	"strings"

	"github.com/wagner-austin/signal-bot/internal/logging"
	"github.com/wagner-austin/signal-bot/internal/store"
	"github.com/wagner-austin/signal-bot/internal/volunteer"
)

// Flow identifiers.
const (
	RegistrationFlow = "volunteer_registration"
	EditFlow         = "volunteer_edit"
	DeletionFlow     = "volunteer_deletion"
)

// User-facing flow messages.
const (
	MsgRegistrationWelcome = "Please provide your first and last name or type 'skip' to remain anonymous."
	MsgRegisteredAnonymous = "Registration completed. You are now 'Anonymous'."
	msgAlreadyRegistered   = `You are already registered as "%s". Use @bot edit to change your name or @bot delete to remove your profile.`
	MsgEditPrompt          = "Starting edit flow. Provide your new name or 'skip' to cancel."
	msgEditCanceled        = `Editing cancelled. You remain "%s".`
	msgEditNotRegistered   = "You are not registered, starting registration flow.\nPlease provide your full name or type 'skip' for anonymous."
	MsgDeletionPrompt      = "Starting deletion flow. Type 'yes' to confirm or anything else to cancel."
	msgDeletionCanceled    = "Deletion cancelled."
	msgNothingToDelete     = "You are not currently registered; nothing to delete."
	msgDeletionConfirm     = "Type 'delete' to confirm removing your profile."
)

// Manager runs the volunteer flows. Input routing ends the active flow
// (pause) on every terminal answer so the user drops back to normal command
// handling.
type Manager struct {
	states     *States
	store      *store.Store
	volunteers *volunteer.Manager
}

// NewManager returns a flow manager.
func NewManager(states *States, s *store.Store, volunteers *volunteer.Manager) *Manager {
	return &Manager{states: states, store: s, volunteers: volunteers}
}

// Start begins (or restarts) a flow for the user.
func (m *Manager) Start(phone, flowName string) error {
	return m.states.Create(phone, flowName, "start")
}

// Active returns the user's active flow name, or "".
func (m *Manager) Active(phone string) (string, error) {
	return m.states.Active(phone)
}

// HandleInput feeds one message into the user's active flow and returns the
// reply. An empty reply with nil error means no flow is active.
func (m *Manager) HandleInput(phone, input string) (string, error) {
	flowName, err := m.states.Active(phone)
	if err != nil {
		return "", err
	}
	switch flowName {
	case "":
		return "", nil
	case RegistrationFlow:
		return m.handleRegistration(phone, input)
	case EditFlow:
		return m.handleEdit(phone, input)
	case DeletionFlow:
		return m.handleDeletion(phone, input)
	}
	logging.Flow("unknown flow %q for %s, pausing", flowName, phone)
	return "", m.states.Pause(phone, flowName)
}

func (m *Manager) handleRegistration(phone, input string) (string, error) {
	record, err := m.store.GetVolunteer(phone)
	if err != nil {
		return "", err
	}
	if record != nil {
		if err := m.states.Pause(phone, RegistrationFlow); err != nil {
			return "", err
		}
		return fmt.Sprintf(msgAlreadyRegistered, record.Name), nil
	}

	trimmed := strings.TrimSpace(input)
	if trimmed == "" || strings.EqualFold(trimmed, "skip") {
		if _, err := m.volunteers.Register(phone, "skip", nil, true); err != nil {
			return "", err
		}
		if err := m.states.Pause(phone, RegistrationFlow); err != nil {
			return "", err
		}
		return MsgRegisteredAnonymous, nil
	}

	// A single word is not a full name; re-prompt.
	if len(strings.Fields(trimmed)) < 2 {
		return MsgRegistrationWelcome, nil
	}
	response, err := m.volunteers.Register(phone, trimmed, nil, true)
	if err != nil {
		return "", err
	}
	return response, m.states.Pause(phone, RegistrationFlow)
}

func (m *Manager) handleEdit(phone, input string) (string, error) {
	record, err := m.store.GetVolunteer(phone)
	if err != nil {
		return "", err
	}
	if record == nil {
		if err := m.states.Pause(phone, EditFlow); err != nil {
			return "", err
		}
		if err := m.Start(phone, RegistrationFlow); err != nil {
			return "", err
		}
		return msgEditNotRegistered, nil
	}

	trimmed := strings.TrimSpace(input)
	lower := strings.ToLower(trimmed)
	if trimmed == "" || lower == "cancel" || lower == "skip" {
		if err := m.states.Pause(phone, EditFlow); err != nil {
			return "", err
		}
		return fmt.Sprintf(msgEditCanceled, record.Name), nil
	}

	response, err := m.volunteers.Register(phone, trimmed, nil, record.Available)
	if err != nil {
		return "", err
	}
	return response, m.states.Pause(phone, EditFlow)
}

func (m *Manager) handleDeletion(phone, input string) (string, error) {
	record, err := m.store.GetVolunteer(phone)
	if err != nil {
		return "", err
	}
	if record == nil {
		if err := m.states.Pause(phone, DeletionFlow); err != nil {
			return "", err
		}
		return msgNothingToDelete, nil
	}

	answer := strings.ToLower(strings.TrimSpace(input))
	step, err := m.states.Step(phone, DeletionFlow)
	if err != nil {
		return "", err
	}
	if step == "" {
		step = "start"
	}

	switch step {
	case "start":
		if answer == "yes" || answer == "y" || answer == "sure" {
			if err := m.states.SetStep(phone, DeletionFlow, "confirm"); err != nil {
				return "", err
			}
			return msgDeletionConfirm, nil
		}
		if err := m.states.Pause(phone, DeletionFlow); err != nil {
			return "", err
		}
		return msgDeletionCanceled, nil

	case "confirm":
		if answer == "delete" {
			response, err := m.volunteers.Delete(phone)
			if err != nil {
				return "", err
			}
			return response, m.states.Pause(phone, DeletionFlow)
		}
		if err := m.states.Pause(phone, DeletionFlow); err != nil {
			return "", err
		}
		return msgDeletionCanceled, nil
	}

	return "", m.states.Pause(phone, DeletionFlow)
}
