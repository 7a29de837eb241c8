package model

import (
	"time"

	"github.com/google/uuid"
)

// Quote ties a customer's grid together for save/load.
type Quote struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	CustomerID string `json:"customer_id"`
	CreatedAt  string `json:"created_at"`
	UpdatedAt  string `json:"updated_at"`
	Rows       []Row  `json:"rows"`
}

// NewQuote creates an empty quote for a customer.
func NewQuote(name, customerID string) Quote {
	now := time.Now().UTC().Format(time.RFC3339)
	return Quote{
		ID:         uuid.New().String()[:8],
		Name:       name,
		CustomerID: customerID,
		CreatedAt:  now,
		UpdatedAt:  now,
		Rows:       []Row{},
	}
}

// AddRow appends a row and bumps the updated timestamp.
func (q *Quote) AddRow(r Row) {
	q.Rows = append(q.Rows, r)
	q.UpdatedAt = time.Now().UTC().Format(time.RFC3339)
}

// RemoveRow removes a row by ID. Returns true if found and removed.
func (q *Quote) RemoveRow(id string) bool {
	for i, r := range q.Rows {
		if r.ID == id {
			q.Rows = append(q.Rows[:i], q.Rows[i+1:]...)
			q.UpdatedAt = time.Now().UTC().Format(time.RFC3339)
			return true
		}
	}
	return false
}

// FindRow returns a pointer to the row with the given ID, or nil.
func (q *Quote) FindRow(id string) *Row {
	for i := range q.Rows {
		if q.Rows[i].ID == id {
			return &q.Rows[i]
		}
	}
	return nil
}
