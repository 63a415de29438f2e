package store

import (
	"fmt"
	"time"
)

// CommandLog is one row of the CommandLogs audit table.
type CommandLog struct {
	ID        int64
	Sender    string
	Command   string
	Args      string
	Timestamp time.Time
}

// LogCommand appends a command invocation to the audit log.
func (s *Store) LogCommand(sender, command, args string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.Exec(
		"INSERT INTO CommandLogs (sender, command, args) VALUES (?, ?, ?)",
		sender, command, args)
	if err != nil {
		return fmt.Errorf("failed to log command: %w", err)
	}
	return nil
}

// RecentCommandLogs returns the most recent audit entries, newest first.
func (s *Store) RecentCommandLogs(limit int) ([]CommandLog, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if limit <= 0 {
		limit = 50
	}
	rows, err := s.db.Query(
		`SELECT id, sender, command, args, timestamp
		 FROM CommandLogs ORDER BY id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to read command logs: %w", err)
	}
	defer rows.Close()

	var out []CommandLog
	for rows.Next() {
		var l CommandLog
		if err := rows.Scan(&l.ID, &l.Sender, &l.Command, &l.Args, &l.Timestamp); err != nil {
			return nil, err
		}
		out = append(out, l)
	}
	return out, rows.Err()
}
