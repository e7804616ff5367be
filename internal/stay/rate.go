package stay

import (
	"fmt"
	"math"
	"time"

	"github.com/jstramigioli/riviera-app/internal/calendar"
)

// PriceStrategy looks up the base price of a room type for a service inside a block.
type PriceStrategy interface {
	BasePrice(block *SeasonBlock, roomTypeID, serviceTypeID string) (int64, bool)
}

// ExactPrice matches the (room type, service) pair.
type ExactPrice struct{}

func (ExactPrice) BasePrice(block *SeasonBlock, roomTypeID, serviceTypeID string) (int64, bool) {
	for _, p := range block.Prices {
		if p.RoomTypeID == roomTypeID && p.ServiceTypeID == serviceTypeID {
			return p.BasePrice, true
		}
	}

	return 0, false
}

// BaseRate takes the room type price of the lowest service id as the base rate.
type BaseRate struct{}

func (BaseRate) BasePrice(block *SeasonBlock, roomTypeID, _ string) (int64, bool) {
	var (
		found bool
		best  SeasonPrice
	)

	for _, p := range block.Prices {
		if p.RoomTypeID != roomTypeID {
			continue
		}

		if !found || lessID(p.ServiceTypeID, best.ServiceTypeID) {
			best = p
			found = true
		}
	}

	return best.BasePrice, found
}

func DefaultPriceStrategies() []PriceStrategy {
	return []PriceStrategy{ExactPrice{}, BaseRate{}}
}

// ApplyAdjustment scales price by 1 + percentage/100 rounded to the nearest unit.
func ApplyAdjustment(price int64, percentage float64) int64 {
	return int64(math.Round(float64(price) * (100 + percentage) / 100)) //nolint:gomnd
}

// ResolveDailyRate prices date with the default strategies.
func ResolveDailyRate(date time.Time, roomTypeID, serviceTypeID string, block *SeasonBlock) DailyRate {
	return resolveDailyRate(DefaultPriceStrategies(), date, roomTypeID, serviceTypeID, block)
}

func resolveDailyRate(
	strategies []PriceStrategy,
	date time.Time,
	roomTypeID, serviceTypeID string,
	block *SeasonBlock,
) DailyRate {
	rate := DailyRate{
		Date:          calendar.Day(date),
		ServiceTypeID: serviceTypeID,
	}

	if block == nil || serviceTypeID == "" {
		return rate
	}

	rate.BlockID = block.ID
	rate.IsDraftFallback = block.IsDraft

	for _, strategy := range strategies {
		base, ok := strategy.BasePrice(block, roomTypeID, serviceTypeID)
		if !ok {
			continue
		}

		rate.Price = ApplyAdjustment(base, block.adjustmentFor(serviceTypeID))
		rate.Available = true

		break
	}

	return rate
}

// ResolveSegmentTotal prices every night of seg independently and sums the priced ones.
func (e *Engine) ResolveSegmentTotal(seg Segment, roomTypeID string) (SegmentQuote, error) {
	days, err := calendar.Days(seg.Range)
	if err != nil {
		return SegmentQuote{}, err
	}

	res := SegmentQuote{
		Segment:    seg,
		DailyRates: make([]DailyRate, 0, len(days)),
	}

	for _, d := range days {
		block, err := e.index.BlockFor(d)
		if err != nil {
			return SegmentQuote{}, fmt.Errorf("find block for %v: %w", d.Format(calendar.DateLayout), err)
		}

		rate := resolveDailyRate(e.strategies, d, roomTypeID, seg.ServiceTypeID, block)

		if rate.Available {
			res.Total += rate.Price
		} else {
			res.HasUnpricedDays = true
		}

		if rate.IsDraftFallback {
			res.IsDraftFallback = true
		}

		res.DailyRates = append(res.DailyRates, rate)
	}

	if res.HasUnpricedDays {
		e.l.LogWarn("Segment %v of hotel '%v' has unpriced days for room type '%v'", seg.Range, e.index.HotelID(), roomTypeID)
	}

	return res, nil
}
