// Package models defines the terminal's local data model. Timestamps are
// stored in SQLite as Unix seconds.
package models

import "time"

// Sync lifecycle of a locally created record. A record only moves forward:
// pending to synced, or pending to failed and back to pending on retry.
// Synced is terminal.
const (
	SyncStatusPending = "pending"
	SyncStatusSynced  = "synced"
	SyncStatusFailed  = "failed"
)

// Ticket is a locally recorded sale. ID is a UUID generated at creation and
// doubles as the idempotency key server-side. Price and CreatedAt are
// immutable once written.
type Ticket struct {
	ID         string
	TypeID     string
	EmployeeID string
	HammamID   string
	Price      int64
	CreatedAt  time.Time
	SyncedAt   *time.Time
	SyncStatus string
	Attempts   int
	DeviceID   string
	TypeName   string
}
