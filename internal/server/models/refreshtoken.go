package models

import "time"

// RefreshToken is an opaque credential allowing exactly one access-token
// refresh; it is rotated on every use.
type RefreshToken struct {
	Token      string
	EmployeeID string
	ExpiresAt  time.Time
}
