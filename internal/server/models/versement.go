package models

import "time"

// Versement is an employee's deposit of collected cash for a period.
type Versement struct {
	ID         string
	EmployeeID string
	HammamID   string
	Amount     int64 // centimes
	Date       time.Time
}
