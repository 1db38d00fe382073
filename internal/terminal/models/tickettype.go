package models

// TicketType is one entry of the locally mirrored catalog snapshot. The
// mirror is read-only on the terminal and replaced wholesale on refresh.
type TicketType struct {
	ID             string
	Name           string
	Price          int64
	Color          string
	Icon           string
	ImageURL       string
	LocalImagePath string
	SortOrder      int
}
