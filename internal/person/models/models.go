package models

import (
	"fmt"

	"github.com/google/uuid"

	"phonebook/pkg/sentinel"
)

// Person is a single phonebook entry. The ID is assigned by the store at
// creation and never changes afterwards.
type Person struct {
	ID     uuid.UUID `json:"id"`
	Name   string    `json:"name"`
	Number string    `json:"number"`
}

// PersonRequest is the mutable part of a person as sent by clients on
// create and update.
type PersonRequest struct {
	Name   string `json:"name"`
	Number string `json:"number"`
}

// ParseID turns a path parameter into a person ID. A string that is not a
// UUID maps to sentinel.ErrMalformedID so the transport layer can answer
// with a 400 instead of a generic server error.
func ParseID(raw string) (uuid.UUID, error) {
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, fmt.Errorf("%w: %q", sentinel.ErrMalformedID, raw)
	}
	return id, nil
}

// MissingFieldError reports a required field that was empty or absent.
// Clients match on the exact messages ("name missing", "number missing").
type MissingFieldError struct {
	Field string
}

func (e *MissingFieldError) Error() string {
	return e.Field + " missing"
}

// ValidationError carries a store- or domain-level validation message that
// is passed through to clients verbatim.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}
