package store

import (
	"fmt"
	"time"
)

// Donation is one row of the Donations table. Type is "cash", "in-kind", or
// "register" for donors registering interest.
type Donation struct {
	ID          int64
	Phone       string
	Amount      float64
	Type        string
	Description string
	CreatedAt   time.Time
}

// AddDonation records a donation and returns its id. Amount is 0 for
// in-kind donations.
func (s *Store) AddDonation(phone string, amount float64, donationType, description string) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	res, err := s.db.Exec(
		`INSERT INTO Donations (phone, amount, donation_type, description)
		 VALUES (?, ?, ?, ?)`,
		phone, amount, donationType, description)
	if err != nil {
		return 0, fmt.Errorf("failed to add donation: %w", err)
	}
	return res.LastInsertId()
}

// ListDonations returns all donations, newest first.
func (s *Store) ListDonations() ([]Donation, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.Query(
		`SELECT id, phone, amount, donation_type, description, created_at
		 FROM Donations ORDER BY id DESC`)
	if err != nil {
		return nil, fmt.Errorf("failed to list donations: %w", err)
	}
	defer rows.Close()

	var out []Donation
	for rows.Next() {
		var d Donation
		if err := rows.Scan(&d.ID, &d.Phone, &d.Amount, &d.Type, &d.Description, &d.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	return out, rows.Err()
}
