package models

// Employee is a POS operator account.
type Employee struct {
	ID           string
	Username     string
	Name         string
	Surname      string
	PasswordHash string
	HammamID     string
}
