package reservation

import (
	"time"

	"github.com/jstramigioli/riviera-app/internal/calendar"
	"github.com/jstramigioli/riviera-app/internal/stay"
)

type Status string

const (
	StatusPending    Status = "pending"
	StatusConfirmed  Status = "confirmed"
	StatusCheckedIn  Status = "checked_in"
	StatusCheckedOut Status = "checked_out"
	StatusCancelled  Status = "cancelled"
	StatusNoShow     Status = "no_show"
)

// HoldsRoom reports whether a reservation in status s blocks its room for other bookings.
func (s Status) HoldsRoom() bool {
	switch s {
	case StatusPending, StatusConfirmed, StatusCheckedIn:
		return true
	case StatusCheckedOut, StatusCancelled, StatusNoShow:
		return false
	}

	return false
}

type StatusChange struct {
	From Status    `json:"from"`
	To   Status    `json:"to"`
	At   time.Time `json:"at"`
}

type Reservation struct {
	ID           string         `json:"id"`
	HotelID      string         `json:"hotel_id"`
	RoomID       string         `json:"room_id"`
	MainClientID string         `json:"main_client_id"`
	Segments     []stay.Segment `json:"segments"`
	Status       Status         `json:"status"`
	TotalAmount  int64          `json:"total_amount"`
	Notes        string         `json:"notes"`
	History      []StatusChange `json:"history"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
}

// Range spans from the first segment check-in to the last segment checkout.
func (r *Reservation) Range() (calendar.Range, bool) {
	if len(r.Segments) == 0 {
		return calendar.Range{}, false
	}

	return calendar.Range{
		Start: calendar.Day(r.Segments[0].Range.Start),
		End:   calendar.Day(r.Segments[len(r.Segments)-1].Range.End),
	}, true
}

func (r *Reservation) CheckIn() time.Time {
	if len(r.Segments) == 0 {
		return time.Time{}
	}

	return calendar.Day(r.Segments[0].Range.Start)
}

// Clone returns a deep copy of r.
func (r *Reservation) Clone() *Reservation {
	c := *r

	c.Segments = make([]stay.Segment, len(r.Segments))
	for i, seg := range r.Segments {
		seg.RequiredTags = append([]string(nil), seg.RequiredTags...)
		c.Segments[i] = seg
	}

	c.History = append([]StatusChange(nil), r.History...)

	return &c
}

type BookInput struct {
	HotelID      string         `json:"hotel_id" validate:"required"`
	RoomID       string         `json:"room_id" validate:"required"`
	MainClientID string         `json:"main_client_id" validate:"required"`
	Segments     []stay.Segment `json:"segments" validate:"required,min=1"`
	TotalAmount  int64          `json:"total_amount" validate:"min=0"`
	Notes        string         `json:"notes" validate:"max=2000"`
}

type RescheduleInput struct {
	RoomID      string         `json:"room_id" validate:"required"`
	Segments    []stay.Segment `json:"segments" validate:"required,min=1"`
	TotalAmount int64          `json:"total_amount" validate:"min=0"`
}
