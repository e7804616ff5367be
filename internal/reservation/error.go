package reservation

import (
	"errors"
	"fmt"

	"github.com/jstramigioli/riviera-app/internal/calendar"
)

var (
	ErrNextID         = errors.New("get next id from generator")
	ErrRecordNotFound = errors.New("record not found")
)

type IllegalTransitionError struct {
	From   Status
	To     Status
	Reason string
}

func IsIllegalTransitionError(err error) *IllegalTransitionError {
	if err == nil {
		return nil
	}

	var transitionErr *IllegalTransitionError

	if errors.As(err, &transitionErr) {
		return transitionErr
	}

	return nil
}

func (e *IllegalTransitionError) Error() string {
	if e.Reason != "" {
		return fmt.Sprintf("illegal transition from '%v' to '%v': %v", e.From, e.To, e.Reason)
	}

	return fmt.Sprintf("illegal transition from '%v' to '%v'", e.From, e.To)
}

// ConflictError carries the reservation already holding the room over the requested dates.
type ConflictError struct {
	RoomID      string
	Range       calendar.Range
	Conflicting *Reservation
}

func IsConflictError(err error) *ConflictError {
	if err == nil {
		return nil
	}

	var conflictErr *ConflictError

	if errors.As(err, &conflictErr) {
		return conflictErr
	}

	return nil
}

func (e *ConflictError) Error() string {
	existing, _ := e.Conflicting.Range()

	return fmt.Sprintf("room '%v' is already reserved on %v by reservation '%v' (%v)",
		e.RoomID, existing, e.Conflicting.ID, e.Range)
}
