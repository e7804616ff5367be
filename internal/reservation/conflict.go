package reservation

import (
	"github.com/jstramigioli/riviera-app/internal/calendar"
)

type Conflict struct {
	HasConflict bool
	Reservation *Reservation
}

// CheckConflict returns the first reservation of roomID, in input order, whose dates overlap r.
// The reservation with id excludeID is skipped so an existing booking can be edited in place.
// An empty or inverted r is rejected with an InvalidRangeError.
func CheckConflict(existing []*Reservation, roomID string, r calendar.Range, excludeID string) (Conflict, error) {
	if err := r.Validate(); err != nil {
		return Conflict{}, err
	}

	for _, res := range existing {
		if res.RoomID != roomID {
			continue
		}

		if excludeID != "" && res.ID == excludeID {
			continue
		}

		resRange, ok := res.Range()
		if !ok {
			continue
		}

		if calendar.Overlaps(r, resRange) {
			return Conflict{HasConflict: true, Reservation: res}, nil
		}
	}

	return Conflict{}, nil
}
