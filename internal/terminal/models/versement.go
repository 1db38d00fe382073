package models

import "time"

// Versement is a locally recorded cash remittance, synced with the same
// lifecycle as tickets.
type Versement struct {
	ID         string
	EmployeeID string
	HammamID   string
	Amount     int64
	Date       time.Time
	SyncedAt   *time.Time
	SyncStatus string
	Attempts   int
}
