package planner

import "errors"

var (
	// ErrInvalidDate is returned when an event date is not a YYYY-MM-DD
	// calendar day.
	ErrInvalidDate = errors.New("invalid date")
	// ErrUnknownDocument is returned when an event references a document
	// identity that is not present in the document store.
	ErrUnknownDocument = errors.New("unknown document")
)
