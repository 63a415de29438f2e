package store

import (
	"database/sql"
	"fmt"
)

// Event is one row of the Events table.
type Event struct {
	ID          int64
	Title       string
	Date        string
	Time        string
	Location    string
	Description string
}

// Speaker is one row of the EventSpeakers table.
type Speaker struct {
	ID      int64
	EventID int64
	Name    string
	Topic   string
}

// CreateEvent inserts an event and returns its id.
func (s *Store) CreateEvent(e Event) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	res, err := s.db.Exec(
		`INSERT INTO Events (title, date, time, location, description)
		 VALUES (?, ?, ?, ?, ?)`,
		e.Title, e.Date, e.Time, e.Location, e.Description)
	if err != nil {
		return 0, fmt.Errorf("failed to create event: %w", err)
	}
	return res.LastInsertId()
}

// UpdateEvent replaces the mutable fields of an event.
func (s *Store) UpdateEvent(e Event) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.Exec(
		`UPDATE Events SET title = ?, date = ?, time = ?, location = ?, description = ?
		 WHERE event_id = ?`,
		e.Title, e.Date, e.Time, e.Location, e.Description, e.ID)
	if err != nil {
		return fmt.Errorf("failed to update event: %w", err)
	}
	return nil
}

// GetEvent returns one event, or nil when absent.
func (s *Store) GetEvent(id int64) (*Event, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var e Event
	err := s.db.QueryRow(
		`SELECT event_id, title, date, time, location, description
		 FROM Events WHERE event_id = ?`, id).
		Scan(&e.ID, &e.Title, &e.Date, &e.Time, &e.Location, &e.Description)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get event: %w", err)
	}
	return &e, nil
}

// ListEvents returns all events, newest first.
func (s *Store) ListEvents() ([]Event, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.Query(
		`SELECT event_id, title, date, time, location, description
		 FROM Events ORDER BY event_id DESC`)
	if err != nil {
		return nil, fmt.Errorf("failed to list events: %w", err)
	}
	defer rows.Close()

	var out []Event
	for rows.Next() {
		var e Event
		if err := rows.Scan(&e.ID, &e.Title, &e.Date, &e.Time, &e.Location, &e.Description); err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

// DeleteEvent removes an event. Speakers cascade.
func (s *Store) DeleteEvent(id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.Exec("DELETE FROM Events WHERE event_id = ?", id)
	if err != nil {
		return fmt.Errorf("failed to delete event: %w", err)
	}
	return nil
}

// AssignSpeaker attaches a speaker to an event.
func (s *Store) AssignSpeaker(eventID int64, name, topic string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.Exec(
		`INSERT INTO EventSpeakers (event_id, speaker_name, speaker_topic)
		 VALUES (?, ?, ?)`, eventID, name, topic)
	if err != nil {
		return fmt.Errorf("failed to assign speaker: %w", err)
	}
	return nil
}

// ListSpeakers returns the speakers for one event.
func (s *Store) ListSpeakers(eventID int64) ([]Speaker, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.Query(
		`SELECT id, event_id, speaker_name, speaker_topic
		 FROM EventSpeakers WHERE event_id = ? ORDER BY id`, eventID)
	if err != nil {
		return nil, fmt.Errorf("failed to list speakers: %w", err)
	}
	defer rows.Close()

	var out []Speaker
	for rows.Next() {
		var sp Speaker
		if err := rows.Scan(&sp.ID, &sp.EventID, &sp.Name, &sp.Topic); err != nil {
			return nil, err
		}
		out = append(out, sp)
	}
	return out, rows.Err()
}

// RemoveSpeaker detaches a speaker from an event by name,
// case-insensitively.
func (s *Store) RemoveSpeaker(eventID int64, name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.Exec(
		`DELETE FROM EventSpeakers WHERE event_id = ? AND lower(speaker_name) = lower(?)`,
		eventID, name)
	if err != nil {
		return fmt.Errorf("failed to remove speaker: %w", err)
	}
	return nil
}
