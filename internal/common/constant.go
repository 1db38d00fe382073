package common

// Per-record bulk-ingest outcomes reported by the central service.
// A duplicate is a success: the record is already stored centrally.
const (
	OutcomeAccepted  = "accepted"
	OutcomeDuplicate = "duplicate"
	OutcomeRejected  = "rejected"
)
