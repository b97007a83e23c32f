package services

import (
	"fmt"
)

// NoMatchKind distinguishes the ways a query can fail to resolve.
type NoMatchKind string

const (
	NoMatchUnknownNumber NoMatchKind = "unknown_number"
	NoMatchTooShort      NoMatchKind = "too_short"
	NoMatchNotFound      NoMatchKind = "not_found"
)

// NoMatchError is returned when a query resolves to no monster. It is an
// ordinary outcome, not a fault.
type NoMatchError struct {
	Kind    NoMatchKind
	Query   string
	Message string
}

func (e *NoMatchError) Error() string {
	return e.Message
}

func errUnknownNumber(query string) *NoMatchError {
	return &NoMatchError{Kind: NoMatchUnknownNumber, Query: query, Message: "Looks like a monster ID but was not found"}
}

func errTooShort(query string, japanese bool) *NoMatchError {
	msg := "Your query must be at least 4 letters"
	if japanese {
		msg = "Japanese queries must be at least 2 characters"
	}
	return &NoMatchError{Kind: NoMatchTooShort, Query: query, Message: msg}
}

func errNotFound(query string) *NoMatchError {
	return &NoMatchError{Kind: NoMatchNotFound, Query: query, Message: "Could not find a match for: " + query}
}

// OverrideError reports a malformed override table found while building an index.
type OverrideError struct {
	Table   string
	Key     string
	Message string
}

func (e *OverrideError) Error() string {
	return fmt.Sprintf("invalid %s override %q: %s", e.Table, e.Key, e.Message)
}
