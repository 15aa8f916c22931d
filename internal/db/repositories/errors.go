package repositories

import "errors"

// Conflict and state errors surfaced by the entry repository. Callers must
// treat all of these as "no mutation happened".
var (
	ErrEntryNotFound      = errors.New("sea time entry not found")
	ErrDuplicateOpenEntry = errors.New("vessel already has an open sea time entry")
	ErrOverlappingEntry   = errors.New("entry time range overlaps an existing entry")
	ErrInvalidEntryState  = errors.New("entry is already confirmed or rejected")
)
