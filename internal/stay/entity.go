package stay

import (
	"time"

	"github.com/jstramigioli/riviera-app/internal/calendar"
)

type SeasonPrice struct {
	RoomTypeID    string `json:"room_type_id" validate:"required"`
	ServiceTypeID string `json:"service_type_id" validate:"required"`
	BasePrice     int64  `json:"base_price" validate:"min=0"`
}

type ServiceAdjustment struct {
	ServiceTypeID        string  `json:"service_type_id" validate:"required"`
	PercentageAdjustment float64 `json:"percentage_adjustment" validate:"gt=-100"`
}

// SeasonBlock is a dated pricing period of a hotel. Confirmed blocks of one hotel never overlap,
// drafts may overlap anything.
type SeasonBlock struct {
	ID                    string              `json:"id" validate:"required"`
	HotelID               string              `json:"hotel_id" validate:"required"`
	Range                 calendar.Range      `json:"range"`
	IsDraft               bool                `json:"is_draft"`
	Prices                []SeasonPrice       `json:"season_prices" validate:"dive"`
	Adjustments           []ServiceAdjustment `json:"service_adjustments" validate:"dive"`
	OfferedServiceTypeIDs []string            `json:"offered_service_type_ids" validate:"dive,required"`
}

func (b *SeasonBlock) Offers(serviceTypeID string) bool {
	for _, id := range b.OfferedServiceTypeIDs {
		if id == serviceTypeID {
			return true
		}
	}

	return false
}

func (b *SeasonBlock) adjustmentFor(serviceTypeID string) float64 {
	for _, adj := range b.Adjustments {
		if adj.ServiceTypeID == serviceTypeID {
			return adj.PercentageAdjustment
		}
	}

	return 0
}

type RoomType struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	MaxPeople int    `json:"max_people"`
}

type ServiceType struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type Tag struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type Room struct {
	ID         string   `json:"id"`
	Name       string   `json:"name"`
	RoomTypeID string   `json:"room_type_id"`
	Tags       []string `json:"tags"`
}

func (r *Room) HasTags(required []string) bool {
	owned := make(map[string]struct{}, len(r.Tags))
	for _, tag := range r.Tags {
		owned[tag] = struct{}{}
	}

	for _, tag := range required {
		if _, ok := owned[tag]; !ok {
			return false
		}
	}

	return true
}

type StayRequest struct {
	HotelID        string         `json:"hotel_id" validate:"required"`
	Range          calendar.Range `json:"range"`
	RequiredGuests int            `json:"required_guests" validate:"min=1"`
	RequiredTags   []string       `json:"required_tags" validate:"dive,required"`
	RequiredRoomID string         `json:"required_room_id,omitempty"`
	ServiceTypeID  string         `json:"service_type_id" validate:"required"`
}

// Segment is a contiguous part of a stay priced with a single service type.
// Unresolved segments carry no service type because no confirmed block offered an alternative.
type Segment struct {
	Range          calendar.Range `json:"range"`
	ServiceTypeID  string         `json:"service_type_id,omitempty"`
	RequiredGuests int            `json:"required_guests"`
	RequiredTags   []string       `json:"required_tags"`
	RequiredRoomID string         `json:"required_room_id,omitempty"`
	Unresolved     bool           `json:"unresolved"`
}

// Segment returns the request as a single segment with the requested service.
func (r StayRequest) Segment() Segment {
	return r.segment(r.Range, r.ServiceTypeID)
}

func (r StayRequest) segment(rng calendar.Range, serviceTypeID string) Segment {
	return Segment{
		Range:          rng,
		ServiceTypeID:  serviceTypeID,
		RequiredGuests: r.RequiredGuests,
		RequiredTags:   append([]string(nil), r.RequiredTags...),
		RequiredRoomID: r.RequiredRoomID,
	}
}

// DailyRate is the price of one night. A zero price with Available=false means that the
// block has no rate configured for the room type.
type DailyRate struct {
	Date            time.Time `json:"date"`
	BlockID         string    `json:"block_id,omitempty"`
	ServiceTypeID   string    `json:"service_type_id,omitempty"`
	Price           int64     `json:"price"`
	Available       bool      `json:"available"`
	IsDraftFallback bool      `json:"is_draft_fallback"`
}

type SegmentQuote struct {
	Segment         Segment     `json:"segment"`
	DailyRates      []DailyRate `json:"daily_rates"`
	Total           int64       `json:"total"`
	HasUnpricedDays bool        `json:"has_unpriced_days"`
	IsDraftFallback bool        `json:"is_draft_fallback"`
}

type Quote struct {
	Request               StayRequest         `json:"request"`
	RoomTypeID            string              `json:"room_type_id"`
	Availability          ServiceAvailability `json:"-"`
	Segments              []SegmentQuote      `json:"segments"`
	Total                 int64               `json:"total"`
	HasUnpricedDays       bool                `json:"has_unpriced_days"`
	HasUnresolvedSegments bool                `json:"has_unresolved_segments"`
	IsDraftFallback       bool                `json:"is_draft_fallback"`
}
