package store

import "fmt"

// Resource is one row of the Resources table.
type Resource struct {
	ID       int64
	Category string
	Title    string
	URL      string
}

// AddResource inserts a resource link and returns its id.
func (s *Store) AddResource(category, title, url string) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	res, err := s.db.Exec(
		"INSERT INTO Resources (category, title, url) VALUES (?, ?, ?)",
		category, title, url)
	if err != nil {
		return 0, fmt.Errorf("failed to add resource: %w", err)
	}
	return res.LastInsertId()
}

// ListResources returns resources, optionally filtered by category
// (case-insensitive). An empty category lists everything.
func (s *Store) ListResources(category string) ([]Resource, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	query := "SELECT id, category, title, url FROM Resources"
	var args []interface{}
	if category != "" {
		query += " WHERE lower(category) = lower(?)"
		args = append(args, category)
	}
	query += " ORDER BY category, id"

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list resources: %w", err)
	}
	defer rows.Close()

	var out []Resource
	for rows.Next() {
		var r Resource
		if err := rows.Scan(&r.ID, &r.Category, &r.Title, &r.URL); err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

// RemoveResource deletes a resource by id.
func (s *Store) RemoveResource(id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.Exec("DELETE FROM Resources WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("failed to remove resource: %w", err)
	}
	return nil
}
