package stay

import (
	"fmt"

	"github.com/jstramigioli/riviera-app/internal/calendar"
)

// ServiceAvailability is one of FullyAvailable, PartiallyAvailable or Unavailable.
type ServiceAvailability interface {
	isServiceAvailability()
}

type FullyAvailable struct{}

type PartiallyAvailable struct {
	AvailablePeriods []calendar.Range
}

type Unavailable struct {
	AlternativeServiceTypeIDs []string
}

func (FullyAvailable) isServiceAvailability()     {}
func (PartiallyAvailable) isServiceAvailability() {}
func (Unavailable) isServiceAvailability()        {}

// CheckServiceAvailability tells whether serviceTypeID is offered by the confirmed blocks over r.
// Draft blocks are never treated as offering a service.
func (e *Engine) CheckServiceAvailability(r calendar.Range, serviceTypeID string) (ServiceAvailability, error) {
	cov, err := e.index.CoveredSubranges(r)
	if err != nil {
		return nil, err
	}

	var (
		offered []calendar.Range
		others  []string
	)

	for _, c := range cov.Covered {
		if c.Block.Offers(serviceTypeID) {
			offered = append(offered, c.Range)
		}

		others = append(others, c.Block.OfferedServiceTypeIDs...)
	}

	periods, err := calendar.Merge(offered)
	if err != nil {
		return nil, fmt.Errorf("merge available periods: %w", err)
	}

	switch {
	case len(periods) == 0:
		return Unavailable{AlternativeServiceTypeIDs: sortedUniqueIDs(others)}, nil
	case len(periods) == 1 && periods[0].Equal(r):
		return FullyAvailable{}, nil
	default:
		return PartiallyAvailable{AvailablePeriods: periods}, nil
	}
}
