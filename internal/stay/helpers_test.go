package stay

import (
	"testing"
	"time"

	"github.com/jstramigioli/riviera-app/internal/calendar"
	"github.com/jstramigioli/riviera-app/internal/logger"
	"github.com/jstramigioli/riviera-app/internal/validation"
)

const (
	testHotel = "riviera"
	breakfast = "breakfast"
	halfBoard = "half-board"
	roomOnly  = "room-only"
	double    = "double"
)

func date(year, month, day int) time.Time {
	return time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
}

func rng(t *testing.T, start, end string) calendar.Range {
	t.Helper()

	r, err := calendar.Parse(start, end)
	if err != nil {
		t.Fatalf("calendar.Parse(%s, %s) error = %v", start, end, err)
	}

	return r
}

func block(t *testing.T, id, start, end string, offered ...string) SeasonBlock {
	t.Helper()

	return SeasonBlock{
		ID:                    id,
		HotelID:               testHotel,
		Range:                 rng(t, start, end),
		OfferedServiceTypeIDs: offered,
	}
}

// octoberBlocks: breakfast offered until Oct 10, only half-board and room-only afterwards.
func octoberBlocks(t *testing.T) []SeasonBlock {
	t.Helper()

	early := block(t, "1", "2025-10-01", "2025-10-10", breakfast, roomOnly)
	early.Prices = []SeasonPrice{
		{RoomTypeID: double, ServiceTypeID: breakfast, BasePrice: 12000},
		{RoomTypeID: double, ServiceTypeID: roomOnly, BasePrice: 10000},
	}

	late := block(t, "2", "2025-10-10", "2025-10-20", roomOnly, halfBoard)
	late.Prices = []SeasonPrice{
		{RoomTypeID: double, ServiceTypeID: roomOnly, BasePrice: 9000},
	}
	late.Adjustments = []ServiceAdjustment{{ServiceTypeID: halfBoard, PercentageAdjustment: 20}}

	return []SeasonBlock{late, early}
}

func newTestEngine(t *testing.T, blocks []SeasonBlock) *Engine {
	t.Helper()

	idx, err := NewIndex(testHotel, blocks)
	if err != nil {
		t.Fatalf("NewIndex() error = %v", err)
	}

	return NewEngine(logger.Discard(), validation.New(), idx)
}

func request(t *testing.T, start, end, service string) StayRequest {
	t.Helper()

	return StayRequest{
		HotelID:        testHotel,
		Range:          rng(t, start, end),
		RequiredGuests: 2,
		RequiredTags:   []string{"sea-view"},
		RequiredRoomID: "7",
		ServiceTypeID:  service,
	}
}

func assertPartition(t *testing.T, original calendar.Range, segments []Segment) {
	t.Helper()

	if len(segments) == 0 {
		t.Fatal("no segments")
	}

	if !segments[0].Range.Start.Equal(calendar.Day(original.Start)) {
		t.Errorf("first segment starts %v, want %v", segments[0].Range.Start, original.Start)
	}

	if last := segments[len(segments)-1]; !last.Range.End.Equal(calendar.Day(original.End)) {
		t.Errorf("last segment ends %v, want %v", last.Range.End, original.End)
	}

	for i, seg := range segments {
		if err := seg.Range.Validate(); err != nil {
			t.Errorf("segment %d has invalid range: %v", i, err)
		}

		if i > 0 && !segments[i-1].Range.End.Equal(seg.Range.Start) {
			t.Errorf("segments %d and %d are not contiguous: %v %v", i-1, i, segments[i-1].Range, seg.Range)
		}
	}
}
