package models

// Hammam is a physical site selling tickets.
type Hammam struct {
	ID           string
	Name         string
	NameAr       string
	TicketPrefix string
}
