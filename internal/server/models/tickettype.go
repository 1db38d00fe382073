package models

// TicketType is a catalog entry defining a purchasable category. Owned
// centrally; terminals mirror it read-only. ImageKey points into the object
// store; terminals receive a presigned URL instead.
type TicketType struct {
	ID        string
	Name      string
	Price     int64 // centimes
	Color     string
	Icon      string
	ImageKey  string
	SortOrder int
}
