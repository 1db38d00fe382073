// Package api defines the JSON wire types exchanged between terminals and
// the central service. Both the HTTP handlers and the terminal API client
// marshal exactly these shapes.
package api

import "time"

// Ticket is a sale record as transmitted by a terminal. The ID is generated
// on the terminal at creation time; the server deduplicates on it, which is
// what makes resubmitting a whole batch safe.
type Ticket struct {
	ID         string    `json:"id"`
	TypeID     string    `json:"type_id"`
	EmployeeID string    `json:"employee_id"`
	HammamID   string    `json:"hammam_id"`
	Price      int64     `json:"price"`
	CreatedAt  time.Time `json:"created_at"`
	DeviceID   string    `json:"device_id"`
	TypeName   string    `json:"type_name"`
}

// Versement is an employee cash remittance. It follows the same
// idempotent-id discipline as Ticket.
type Versement struct {
	ID         string    `json:"id"`
	EmployeeID string    `json:"employee_id"`
	HammamID   string    `json:"hammam_id"`
	Amount     int64     `json:"amount"`
	Date       time.Time `json:"date"`
}

// Outcome reports the per-record result of a bulk ingest: accepted,
// duplicate (already stored, treated as success) or rejected with a reason.
type Outcome struct {
	ID     string `json:"id"`
	Status string `json:"status"`
	Reason string `json:"reason,omitempty"`
}

type BulkTicketsRequest struct {
	Tickets []Ticket `json:"tickets"`
}

type BulkVersementsRequest struct {
	Versements []Versement `json:"versements"`
}

// BulkResponse carries per-record outcomes plus the server-side confirmation
// timestamp the terminal records for every accepted/duplicate id.
type BulkResponse struct {
	Outcomes    []Outcome `json:"outcomes"`
	ConfirmedAt time.Time `json:"confirmed_at"`
}

type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type LoginResponse struct {
	AccessToken  string    `json:"access_token"`
	RefreshToken string    `json:"refresh_token"`
	ExpiresAt    time.Time `json:"expires_at"`
	EmployeeID   string    `json:"employee_id"`
	Username     string    `json:"username"`
	Name         string    `json:"name"`
	Surname      string    `json:"surname"`
	HammamID     string    `json:"hammam_id"`
	HammamName   string    `json:"hammam_name"`
	HammamNameAr string    `json:"hammam_name_ar"`
	TicketPrefix string    `json:"ticket_prefix"`
}

type RefreshRequest struct {
	RefreshToken string `json:"refresh_token"`
}

type RefreshResponse struct {
	AccessToken  string    `json:"access_token"`
	RefreshToken string    `json:"refresh_token"`
	ExpiresAt    time.Time `json:"expires_at"`
}

type LogoutRequest struct {
	RefreshToken string `json:"refresh_token"`
}

// CatalogItem is a sellable ticket type. ImageURL, when present, is a
// short-lived presigned URL the terminal may download and cache locally.
type CatalogItem struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Price     int64  `json:"price"`
	Color     string `json:"color"`
	Icon      string `json:"icon"`
	ImageURL  string `json:"image_url,omitempty"`
	SortOrder int    `json:"sort_order"`
}

type CatalogResponse struct {
	Items []CatalogItem `json:"items"`
}

type ImageURLResponse struct {
	URL string `json:"url"`
}

type MarkExportedRequest struct {
	IDs        []string  `json:"ids"`
	ExportedAt time.Time `json:"exported_at"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}
