package services

import (
	"errors"
	"fmt"

	"hotel-pms/models"
)

// ErrNotFound is returned when the requested row does not exist.
var ErrNotFound = errors.New("not found")

// ConflictError reports a write that clashes with existing data, such as a
// duplicate room number.
type ConflictError struct {
	Message string
}

func (e *ConflictError) Error() string { return e.Message }

// TransitionError is returned for a status change the state machine forbids.
type TransitionError struct {
	From models.ReservationStatus
	To   models.ReservationStatus
}

func (e *TransitionError) Error() string {
	return fmt.Sprintf("cannot move reservation from %s to %s", e.From, e.To)
}

func notFound(what string, id interface{}) error {
	return fmt.Errorf("%s %v: %w", what, id, ErrNotFound)
}
