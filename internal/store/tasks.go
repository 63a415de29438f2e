package store

import "fmt"

// Task is one row of the Tasks table.
type Task struct {
	ID          int64
	Description string
	CreatedBy   string
	AssignedTo  string
	Status      string
}

// AddTask inserts an open task and returns its id.
func (s *Store) AddTask(description, createdBy string) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	res, err := s.db.Exec(
		"INSERT INTO Tasks (description, created_by) VALUES (?, ?)",
		description, createdBy)
	if err != nil {
		return 0, fmt.Errorf("failed to add task: %w", err)
	}
	return res.LastInsertId()
}

// ListTasks returns all tasks, oldest first. Creator and assignee phones are
// resolved to volunteer names where possible.
func (s *Store) ListTasks() ([]Task, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.Query(
		`SELECT t.task_id, t.description,
		        COALESCE(vc.name, t.created_by, ''),
		        COALESCE(va.name, t.assigned_to, ''),
		        t.status
		 FROM Tasks t
		 LEFT JOIN Volunteers vc ON vc.phone = t.created_by
		 LEFT JOIN Volunteers va ON va.phone = t.assigned_to
		 ORDER BY t.task_id`)
	if err != nil {
		return nil, fmt.Errorf("failed to list tasks: %w", err)
	}
	defer rows.Close()

	var out []Task
	for rows.Next() {
		var t Task
		if err := rows.Scan(&t.ID, &t.Description, &t.CreatedBy, &t.AssignedTo, &t.Status); err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

// AssignTask assigns a task to a volunteer phone.
func (s *Store) AssignTask(taskID int64, phone string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.Exec("UPDATE Tasks SET assigned_to = ? WHERE task_id = ?", phone, taskID)
	if err != nil {
		return fmt.Errorf("failed to assign task: %w", err)
	}
	return nil
}

// CloseTask marks a task closed.
func (s *Store) CloseTask(taskID int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.Exec("UPDATE Tasks SET status = 'closed' WHERE task_id = ?", taskID)
	if err != nil {
		return fmt.Errorf("failed to close task: %w", err)
	}
	return nil
}
