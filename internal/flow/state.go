// Package flow drives multi-step conversations (registration, edit,
// deletion) persisted per phone number as JSON in the UserStates table.
package flow

import (
	"encoding/json"

	"github.com/wagner-austin/signal-bot/internal/store"
)

// flowEntry is one flow's persisted progress.
type flowEntry struct {
	Step string            `json:"step"`
	Data map[string]string `json:"data,omitempty"`
}

// userState is the JSON document stored per phone. ActiveFlow names the flow
// currently consuming input; paused flows stay in Flows with their step.
type userState struct {
	Flows          map[string]*flowEntry `json:"flows"`
	ActiveFlow     string                `json:"active_flow,omitempty"`
	HasSeenWelcome bool                  `json:"has_seen_start,omitempty"`
}

// States persists per-user flow state through the store.
type States struct {
	store *store.Store
}

// NewStates returns a state accessor backed by the store.
func NewStates(s *store.Store) *States {
	return &States{store: s}
}

func (st *States) load(phone string) (*userState, error) {
	raw, err := st.store.GetFlowState(phone)
	if err != nil {
		return nil, err
	}
	var state userState
	if err := json.Unmarshal([]byte(raw), &state); err != nil {
		// Corrupt state starts over rather than wedging the user.
		state = userState{}
	}
	if state.Flows == nil {
		state.Flows = make(map[string]*flowEntry)
	}
	return &state, nil
}

func (st *States) save(phone string, state *userState) error {
	encoded, err := json.Marshal(state)
	if err != nil {
		return err
	}
	return st.store.SetFlowState(phone, string(encoded))
}

// Create starts (or resets) a flow at the given step and makes it active.
func (st *States) Create(phone, flowName, startStep string) error {
	state, err := st.load(phone)
	if err != nil {
		return err
	}
	state.Flows[flowName] = &flowEntry{Step: startStep}
	state.ActiveFlow = flowName
	return st.save(phone, state)
}

// SetStep advances a flow to the given step. Unknown flows are ignored.
func (st *States) SetStep(phone, flowName, step string) error {
	state, err := st.load(phone)
	if err != nil {
		return err
	}
	entry, ok := state.Flows[flowName]
	if !ok {
		return nil
	}
	entry.Step = step
	return st.save(phone, state)
}

// Step returns a flow's current step, or "" when the flow does not exist.
func (st *States) Step(phone, flowName string) (string, error) {
	state, err := st.load(phone)
	if err != nil {
		return "", err
	}
	entry, ok := state.Flows[flowName]
	if !ok {
		return "", nil
	}
	return entry.Step, nil
}

// Pause deactivates the flow if it is the active one. Its step survives for
// a later resume.
func (st *States) Pause(phone, flowName string) error {
	state, err := st.load(phone)
	if err != nil {
		return err
	}
	if state.ActiveFlow != flowName {
		return nil
	}
	state.ActiveFlow = ""
	return st.save(phone, state)
}

// Resume reactivates a previously created flow.
func (st *States) Resume(phone, flowName string) error {
	state, err := st.load(phone)
	if err != nil {
		return err
	}
	if _, ok := state.Flows[flowName]; !ok {
		return nil
	}
	state.ActiveFlow = flowName
	return st.save(phone, state)
}

// Active returns the name of the active flow, or "".
func (st *States) Active(phone string) (string, error) {
	state, err := st.load(phone)
	if err != nil {
		return "", err
	}
	return state.ActiveFlow, nil
}

// HasSeenWelcome reports whether the user has been greeted before.
func (st *States) HasSeenWelcome(phone string) (bool, error) {
	state, err := st.load(phone)
	if err != nil {
		return false, err
	}
	return state.HasSeenWelcome, nil
}

// MarkWelcomeSeen records that the user has been greeted.
func (st *States) MarkWelcomeSeen(phone string) error {
	state, err := st.load(phone)
	if err != nil {
		return err
	}
	state.HasSeenWelcome = true
	return st.save(phone, state)
}
