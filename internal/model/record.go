package model

import "time"

// Status represents the lifecycle state of a project site.
type Status string

const (
	StatusActive    Status = "Active"
	StatusInactive  Status = "Inactive"
	StatusCompleted Status = "Completed"
	StatusPending   Status = "Pending"
)

// Statuses lists every valid status in display order.
var Statuses = []Status{StatusActive, StatusInactive, StatusCompleted, StatusPending}

// Valid reports whether s is a known status.
func (s Status) Valid() bool {
	switch s {
	case StatusActive, StatusInactive, StatusCompleted, StatusPending:
		return true
	}
	return false
}

// Record is one geographic project site. Records are immutable after
// generation; the store only ever replaces the whole collection.
type Record struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Latitude    float64   `json:"latitude"`
	Longitude   float64   `json:"longitude"`
	Status      Status    `json:"status"`
	LastUpdated time.Time `json:"last_updated"`
}
