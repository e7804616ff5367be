package stay

import (
	"fmt"
	"sort"

	"github.com/jstramigioli/riviera-app/internal/calendar"
)

// PlanSegments splits req into contiguous segments at the boundaries where the requested service
// stops or starts being offered. Days without the requested service get the lowest-id alternative
// offered around them; when none exists the segment is flagged Unresolved.
func (e *Engine) PlanSegments(req StayRequest) ([]Segment, error) {
	if err := e.validate(&req); err != nil {
		return nil, err
	}

	status, err := e.CheckServiceAvailability(req.Range, req.ServiceTypeID)
	if err != nil {
		return nil, fmt.Errorf("check service availability: %w", err)
	}

	return e.plan(req, status)
}

func (e *Engine) plan(req StayRequest, status ServiceAvailability) ([]Segment, error) {
	switch s := status.(type) {
	case FullyAvailable:
		return []Segment{req.Segment()}, nil
	case Unavailable:
		return []Segment{e.gapSegment(req, req.Range, s.AlternativeServiceTypeIDs)}, nil
	case PartiallyAvailable:
		return e.planPartial(req, s.AvailablePeriods)
	}

	return nil, fmt.Errorf("unknown service availability %T", status)
}

func (e *Engine) planPartial(req StayRequest, availablePeriods []calendar.Range) ([]Segment, error) {
	periods := append([]calendar.Range(nil), availablePeriods...)
	sort.Slice(periods, func(i, j int) bool {
		return periods[i].Start.Before(periods[j].Start)
	})

	var segments []Segment

	cursor := calendar.Day(req.Range.Start)
	end := calendar.Day(req.Range.End)

	for _, period := range periods {
		if cursor.Before(period.Start) {
			seg, err := e.planGap(req, calendar.Range{Start: cursor, End: period.Start})
			if err != nil {
				return nil, err
			}

			segments = append(segments, seg)
		}

		segments = append(segments, req.segment(period, req.ServiceTypeID))
		cursor = period.End
	}

	if cursor.Before(end) {
		seg, err := e.planGap(req, calendar.Range{Start: cursor, End: end})
		if err != nil {
			return nil, err
		}

		segments = append(segments, seg)
	}

	return segments, nil
}

func (e *Engine) planGap(req StayRequest, gap calendar.Range) (Segment, error) {
	status, err := e.CheckServiceAvailability(gap, req.ServiceTypeID)
	if err != nil {
		return Segment{}, fmt.Errorf("check service availability of gap %v: %w", gap, err)
	}

	var alternatives []string
	if s, ok := status.(Unavailable); ok {
		alternatives = s.AlternativeServiceTypeIDs
	}

	return e.gapSegment(req, gap, alternatives), nil
}

func (e *Engine) gapSegment(req StayRequest, gap calendar.Range, alternatives []string) Segment {
	for _, id := range alternatives {
		if id != req.ServiceTypeID {
			return req.segment(gap, id)
		}
	}

	e.l.LogWarn("No alternative service for '%v' in hotel '%v' on %v", req.ServiceTypeID, req.HotelID, gap)

	seg := req.segment(gap, "")
	seg.Unresolved = true

	return seg
}
