package store

import (
	"database/sql"
	"fmt"
	"strings"
	"time"
)

// Volunteer is one row of the Volunteers table.
type Volunteer struct {
	Phone     string
	Name      string
	Skills    []string
	Available bool
	Role      string
}

// DeletedVolunteer is an archived volunteer row.
type DeletedVolunteer struct {
	Volunteer
	DeletedAt time.Time
}

// serializeSkills joins skills into the comma-separated column format.
func serializeSkills(skills []string) string {
	return strings.Join(skills, ",")
}

// deserializeSkills splits the comma-separated column, dropping empties.
func deserializeSkills(s string) []string {
	if s == "" {
		return nil
	}
	var out []string
	for _, item := range strings.Split(s, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}

// UpsertVolunteer creates or replaces a volunteer record.
func (s *Store) UpsertVolunteer(v Volunteer) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if v.Role == "" {
		v.Role = "registered"
	}
	_, err := s.db.Exec(
		`INSERT OR REPLACE INTO Volunteers (phone, name, skills, available, role)
		 VALUES (?, ?, ?, ?, ?)`,
		v.Phone, v.Name, serializeSkills(v.Skills), boolToInt(v.Available), v.Role)
	if err != nil {
		return fmt.Errorf("failed to upsert volunteer: %w", err)
	}
	return nil
}

// GetVolunteer returns a volunteer by phone, or nil when not registered.
func (s *Store) GetVolunteer(phone string) (*Volunteer, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	row := s.db.QueryRow(
		"SELECT phone, name, skills, available, role FROM Volunteers WHERE phone = ?", phone)
	v, err := scanVolunteer(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get volunteer: %w", err)
	}
	return v, nil
}

// ListVolunteers returns all volunteers ordered by name.
func (s *Store) ListVolunteers() ([]Volunteer, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.Query(
		"SELECT phone, name, skills, available, role FROM Volunteers ORDER BY name")
	if err != nil {
		return nil, fmt.Errorf("failed to list volunteers: %w", err)
	}
	defer rows.Close()

	var out []Volunteer
	for rows.Next() {
		v, err := scanVolunteer(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *v)
	}
	return out, rows.Err()
}

// FindVolunteerByName returns the first volunteer whose name matches
// case-insensitively, or nil.
func (s *Store) FindVolunteerByName(name string) (*Volunteer, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	row := s.db.QueryRow(
		`SELECT phone, name, skills, available, role FROM Volunteers
		 WHERE lower(name) = lower(?) LIMIT 1`, name)
	v, err := scanVolunteer(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find volunteer: %w", err)
	}
	return v, nil
}

// DeleteVolunteer archives the volunteer into DeletedVolunteers and removes
// the live row, in one transaction. Deleting an unknown phone is a no-op.
func (s *Store) DeleteVolunteer(phone string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.Exec(
		`INSERT OR REPLACE INTO DeletedVolunteers (phone, name, skills, available, role)
		 SELECT phone, name, skills, available, role FROM Volunteers WHERE phone = ?`,
		phone); err != nil {
		return fmt.Errorf("failed to archive volunteer: %w", err)
	}
	if _, err := tx.Exec("DELETE FROM Volunteers WHERE phone = ?", phone); err != nil {
		return fmt.Errorf("failed to delete volunteer: %w", err)
	}
	return tx.Commit()
}

// ListDeletedVolunteers returns archived volunteers, newest deletions first.
func (s *Store) ListDeletedVolunteers() ([]DeletedVolunteer, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.Query(
		`SELECT phone, name, skills, available, role, deleted_at
		 FROM DeletedVolunteers ORDER BY deleted_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("failed to list deleted volunteers: %w", err)
	}
	defer rows.Close()

	var out []DeletedVolunteer
	for rows.Next() {
		var d DeletedVolunteer
		var skills string
		var available int
		if err := rows.Scan(&d.Phone, &d.Name, &skills, &available, &d.Role, &d.DeletedAt); err != nil {
			return nil, err
		}
		d.Skills = deserializeSkills(skills)
		d.Available = available != 0
		out = append(out, d)
	}
	return out, rows.Err()
}

// RemoveDeletedVolunteer drops the archive row for a phone. Called when a
// previously deleted volunteer registers again.
func (s *Store) RemoveDeletedVolunteer(phone string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.Exec("DELETE FROM DeletedVolunteers WHERE phone = ?", phone)
	if err != nil {
		return fmt.Errorf("failed to remove deleted volunteer: %w", err)
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanVolunteer(row rowScanner) (*Volunteer, error) {
	var v Volunteer
	var skills string
	var available int
	if err := row.Scan(&v.Phone, &v.Name, &skills, &available, &v.Role); err != nil {
		return nil, err
	}
	v.Skills = deserializeSkills(skills)
	v.Available = available != 0
	return &v, nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
