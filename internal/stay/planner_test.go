package stay

import (
	"testing"
)

func TestPlanSegmentsSplitsAtServiceBoundary(t *testing.T) {
	e := newTestEngine(t, octoberBlocks(t))
	req := request(t, "2025-10-05", "2025-10-15", breakfast)

	segments, err := e.PlanSegments(req)
	if err != nil {
		t.Fatalf("PlanSegments() error = %v", err)
	}

	if len(segments) != 2 {
		t.Fatalf("PlanSegments() = %+v, want 2 segments", segments)
	}

	if !segments[0].Range.Equal(rng(t, "2025-10-05", "2025-10-10")) || segments[0].ServiceTypeID != breakfast {
		t.Errorf("segments[0] = %v %v, want [2025-10-05, 2025-10-10) breakfast", segments[0].Range, segments[0].ServiceTypeID)
	}

	if !segments[1].Range.Equal(rng(t, "2025-10-10", "2025-10-15")) || segments[1].ServiceTypeID != halfBoard {
		t.Errorf("segments[1] = %v %v, want [2025-10-10, 2025-10-15) %v", segments[1].Range, segments[1].ServiceTypeID, halfBoard)
	}

	assertPartition(t, req.Range, segments)

	for i, seg := range segments {
		if seg.RequiredGuests != req.RequiredGuests || seg.RequiredRoomID != req.RequiredRoomID ||
			len(seg.RequiredTags) != 1 || seg.RequiredTags[0] != "sea-view" || seg.Unresolved {
			t.Errorf("segments[%d] = %+v does not inherit the request", i, seg)
		}
	}
}

func TestPlanSegmentsPartitionLaw(t *testing.T) {
	blocks := []SeasonBlock{
		block(t, "1", "2025-06-01", "2025-06-05", breakfast),
		block(t, "2", "2025-06-05", "2025-06-08", roomOnly),
		block(t, "3", "2025-06-08", "2025-06-12", breakfast, roomOnly),
		block(t, "4", "2025-06-15", "2025-06-20", halfBoard),
		block(t, "5", "2025-06-20", "2025-06-25", breakfast),
	}
	e := newTestEngine(t, blocks)

	tests := []struct {
		name     string
		start    string
		end      string
		service  string
		services []string
	}{
		{name: "alternating", start: "2025-06-02", end: "2025-06-24", service: breakfast, services: []string{breakfast, roomOnly, breakfast, halfBoard, breakfast}},
		{name: "starts in a gap", start: "2025-06-06", end: "2025-06-10", service: breakfast, services: []string{roomOnly, breakfast}},
		{name: "ends outside every block", start: "2025-06-10", end: "2025-06-28", service: breakfast, services: []string{breakfast, halfBoard, breakfast, ""}},
		{name: "uncovered gap before the period", start: "2025-06-13", end: "2025-06-17", service: halfBoard, services: []string{"", halfBoard}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := request(t, tt.start, tt.end, tt.service)

			segments, err := e.PlanSegments(req)
			if err != nil {
				t.Fatalf("PlanSegments() error = %v", err)
			}

			assertPartition(t, req.Range, segments)

			if len(segments) != len(tt.services) {
				t.Fatalf("PlanSegments() = %+v, want %d segments", segments, len(tt.services))
			}

			for i, want := range tt.services {
				if segments[i].ServiceTypeID != want {
					t.Errorf("segments[%d] %v service = %q, want %q", i, segments[i].Range, segments[i].ServiceTypeID, want)
				}

				if segments[i].Unresolved != (want == "") {
					t.Errorf("segments[%d] Unresolved = %v", i, segments[i].Unresolved)
				}
			}
		})
	}
}

func TestPlanSegmentsIdempotentWhenFullyAvailable(t *testing.T) {
	e := newTestEngine(t, octoberBlocks(t))
	req := request(t, "2025-10-03", "2025-10-17", roomOnly)

	segments, err := e.PlanSegments(req)
	if err != nil {
		t.Fatalf("PlanSegments() error = %v", err)
	}

	if len(segments) != 1 {
		t.Fatalf("PlanSegments() = %+v, want a single segment", segments)
	}

	want := req.Segment()
	got := segments[0]

	if !got.Range.Equal(want.Range) || got.ServiceTypeID != want.ServiceTypeID || got.RequiredGuests != want.RequiredGuests ||
		got.RequiredRoomID != want.RequiredRoomID || got.Unresolved {
		t.Errorf("PlanSegments() = %+v, want %+v", got, want)
	}
}

func TestPlanSegmentsUnresolvedWithoutConfirmedBlocks(t *testing.T) {
	e := newTestEngine(t, nil)
	req := request(t, "2025-10-05", "2025-10-08", breakfast)

	segments, err := e.PlanSegments(req)
	if err != nil {
		t.Fatalf("PlanSegments() error = %v", err)
	}

	if len(segments) != 1 || !segments[0].Unresolved || segments[0].ServiceTypeID != "" {
		t.Errorf("PlanSegments() = %+v, want one unresolved segment", segments)
	}

	assertPartition(t, req.Range, segments)
}

func TestPlanSegmentsRejectsBadInput(t *testing.T) {
	e := newTestEngine(t, octoberBlocks(t))

	inverted := request(t, "2025-10-05", "2025-10-08", breakfast)
	inverted.Range.Start, inverted.Range.End = inverted.Range.End, inverted.Range.Start

	if _, err := e.PlanSegments(inverted); err == nil {
		t.Error("PlanSegments() accepted an inverted range")
	}

	noGuests := request(t, "2025-10-05", "2025-10-08", breakfast)
	noGuests.RequiredGuests = 0

	if _, err := e.PlanSegments(noGuests); err == nil {
		t.Error("PlanSegments() accepted a request without guests")
	}

	otherHotel := request(t, "2025-10-05", "2025-10-08", breakfast)
	otherHotel.HotelID = "elsewhere"

	if _, err := e.PlanSegments(otherHotel); err == nil {
		t.Error("PlanSegments() accepted a request for another hotel")
	}
}
