package reservation

import (
	"time"

	"github.com/jstramigioli/riviera-app/internal/calendar"
)

var transitions = map[Status][]Status{
	StatusPending:    {StatusConfirmed, StatusCancelled},
	StatusConfirmed:  {StatusCheckedIn, StatusCancelled, StatusNoShow},
	StatusCheckedIn:  {StatusCheckedOut},
	StatusCheckedOut: {StatusCheckedIn},
	StatusCancelled:  {StatusConfirmed},
	StatusNoShow:     {StatusConfirmed},
}

// CheckTransition validates from -> to. NO_SHOW is reachable only once the check-in day is in the past,
// evaluated against today on every call.
func CheckTransition(from, to Status, checkIn, today time.Time) error {
	allowed := false

	for _, s := range transitions[from] {
		if s == to {
			allowed = true

			break
		}
	}

	if !allowed {
		return &IllegalTransitionError{From: from, To: to}
	}

	if to == StatusNoShow && !calendar.Day(today).After(calendar.Day(checkIn)) {
		return &IllegalTransitionError{
			From:   from,
			To:     to,
			Reason: "check-in date " + calendar.Day(checkIn).Format(calendar.DateLayout) + " has not passed",
		}
	}

	return nil
}

// Transition moves r to status to, recording the change. r is left untouched when the move is illegal.
func (r *Reservation) Transition(to Status, now time.Time) error {
	if err := CheckTransition(r.Status, to, r.CheckIn(), now); err != nil {
		return err
	}

	r.History = append(r.History, StatusChange{From: r.Status, To: to, At: now})
	r.Status = to
	r.UpdatedAt = now

	return nil
}
