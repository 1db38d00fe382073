// Package models defines the central-side entities persisted in PostgreSQL.
package models

import "time"

// Export states for the downstream accounting feed. Central tickets carry a
// second mark-and-reconcile flag, independent of terminal-to-server sync,
// following the same set discipline.
const (
	ExportStatusPending  = "pending"
	ExportStatusExported = "exported"
)

// Ticket is the authoritative copy of a sale. ID is terminal-generated;
// CreatedAt and Price are immutable after ingest. ConfirmedAt is the moment
// the central store acknowledged the record.
type Ticket struct {
	ID           string
	TypeID       string
	EmployeeID   string
	HammamID     string
	Price        int64 // centimes
	CreatedAt    time.Time
	ConfirmedAt  time.Time
	DeviceID     string
	TypeName     string
	ExportStatus string
	ExportedAt   *time.Time
}
