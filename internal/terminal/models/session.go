package models

import "time"

// Session is the cached operator login, including the site context snapshot
// needed to keep selling while offline.
type Session struct {
	ID           string
	EmployeeID   string
	Username     string
	Name         string
	Surname      string
	HammamID     string
	HammamName   string
	HammamNameAr string
	TicketPrefix string
	Token        string
	RefreshToken string
	ExpiresAt    time.Time
	CreatedAt    time.Time
}
