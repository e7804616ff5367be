package stay

import (
	"fmt"
)

// Quote prices req for roomTypeID. A fully available stay is priced as a single segment; otherwise
// the stay is segmented first and every segment is priced on its own.
func (e *Engine) Quote(req StayRequest, roomTypeID string) (*Quote, error) {
	if err := e.validate(&req); err != nil {
		return nil, err
	}

	status, err := e.CheckServiceAvailability(req.Range, req.ServiceTypeID)
	if err != nil {
		return nil, fmt.Errorf("check service availability: %w", err)
	}

	var segments []Segment

	if _, ok := status.(FullyAvailable); ok {
		segments = []Segment{req.Segment()}
	} else {
		segments, err = e.plan(req, status)
		if err != nil {
			return nil, fmt.Errorf("plan segments: %w", err)
		}
	}

	//nolint:exhaustruct
	quote := &Quote{
		Request:      req,
		RoomTypeID:   roomTypeID,
		Availability: status,
		Segments:     make([]SegmentQuote, 0, len(segments)),
	}

	for _, seg := range segments {
		sq, err := e.ResolveSegmentTotal(seg, roomTypeID)
		if err != nil {
			return nil, fmt.Errorf("resolve segment %v: %w", seg.Range, err)
		}

		quote.Total += sq.Total
		quote.HasUnpricedDays = quote.HasUnpricedDays || sq.HasUnpricedDays
		quote.IsDraftFallback = quote.IsDraftFallback || sq.IsDraftFallback
		quote.HasUnresolvedSegments = quote.HasUnresolvedSegments || seg.Unresolved
		quote.Segments = append(quote.Segments, sq)
	}

	if quote.IsDraftFallback {
		e.l.LogWarn("Quote for hotel '%v' on %v uses draft season prices", req.HotelID, req.Range)
	}

	return quote, nil
}
