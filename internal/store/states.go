package store

import (
	"database/sql"
	"fmt"
)

// GetFlowState returns the raw flow state JSON for a phone. An unknown phone
// yields "{}".
func (s *Store) GetFlowState(phone string) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var state string
	err := s.db.QueryRow(
		"SELECT flow_state FROM UserStates WHERE phone = ?", phone).Scan(&state)
	if err == sql.ErrNoRows {
		return "{}", nil
	}
	if err != nil {
		return "", fmt.Errorf("failed to get flow state: %w", err)
	}
	if state == "" {
		return "{}", nil
	}
	return state, nil
}

// SetFlowState stores the raw flow state JSON for a phone.
func (s *Store) SetFlowState(phone, state string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.Exec(
		`INSERT OR REPLACE INTO UserStates (phone, flow_state) VALUES (?, ?)`,
		phone, state)
	if err != nil {
		return fmt.Errorf("failed to set flow state: %w", err)
	}
	return nil
}

// ClearFlowState removes the flow state row for a phone.
func (s *Store) ClearFlowState(phone string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.Exec("DELETE FROM UserStates WHERE phone = ?", phone)
	if err != nil {
		return fmt.Errorf("failed to clear flow state: %w", err)
	}
	return nil
}
