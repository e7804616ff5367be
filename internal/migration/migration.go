package migration

import (
	"context"
	"fmt"
	"time"

	"github.com/jstramigioli/riviera-app/internal/calendar"
	"github.com/jstramigioli/riviera-app/internal/logger"
	"github.com/jstramigioli/riviera-app/internal/stay"
	"github.com/jstramigioli/riviera-app/internal/validation"
)

type storage interface {
	BeginTransaction(ctx context.Context, level string) (context.Context, error)
	CommitTransaction(ctx context.Context) error
	RollbackTransaction(ctx context.Context) error
	SaveSeasonBlocks(ctx context.Context, blocks []*stay.SeasonBlock) error
}

func date(year, month, day int) time.Time {
	return time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
}

// SeasonBlocks is the demo pricing of hotelID for October 2025: breakfast is only offered until the 10th,
// a draft sketches the first days of November.
func SeasonBlocks(hotelID string) []*stay.SeasonBlock {
	return []*stay.SeasonBlock{
		{
			ID:      "1",
			HotelID: hotelID,
			Range:   calendar.Range{Start: date(2025, 10, 1), End: date(2025, 10, 10)},
			Prices: []stay.SeasonPrice{
				{RoomTypeID: "double", ServiceTypeID: "breakfast", BasePrice: 12000},
				{RoomTypeID: "double", ServiceTypeID: "room-only", BasePrice: 10000},
				{RoomTypeID: "suite", ServiceTypeID: "breakfast", BasePrice: 21000},
			},
			OfferedServiceTypeIDs: []string{"breakfast", "room-only"},
		},
		{
			ID:      "2",
			HotelID: hotelID,
			Range:   calendar.Range{Start: date(2025, 10, 10), End: date(2025, 10, 20)},
			Prices: []stay.SeasonPrice{
				{RoomTypeID: "double", ServiceTypeID: "room-only", BasePrice: 9000},
				{RoomTypeID: "suite", ServiceTypeID: "room-only", BasePrice: 17000},
			},
			Adjustments:           []stay.ServiceAdjustment{{ServiceTypeID: "half-board", PercentageAdjustment: 20}},
			OfferedServiceTypeIDs: []string{"room-only", "half-board"},
		},
		{
			ID:      "3",
			HotelID: hotelID,
			Range:   calendar.Range{Start: date(2025, 11, 1), End: date(2025, 11, 15)},
			IsDraft: true,
			Prices: []stay.SeasonPrice{
				{RoomTypeID: "double", ServiceTypeID: "breakfast", BasePrice: 11000},
			},
			OfferedServiceTypeIDs: []string{"breakfast"},
		},
	}
}

func RoomTypes() []stay.RoomType {
	return []stay.RoomType{
		{ID: "double", Name: "Double", MaxPeople: 2},
		{ID: "suite", Name: "Suite", MaxPeople: 4},
	}
}

func Rooms() []stay.Room {
	return []stay.Room{
		{ID: "7", Name: "Room 7", RoomTypeID: "double", Tags: []string{"sea-view"}},
		{ID: "8", Name: "Room 8", RoomTypeID: "double"},
		{ID: "12", Name: "Room 12", RoomTypeID: "suite", Tags: []string{"sea-view", "balcony"}},
	}
}

// Up validates and stores the demo season blocks of hotelID in one transaction.
func Up(ctx context.Context, l *logger.Logger, storage storage, v *validation.Validator, hotelID string) (err error) {
	blocks := SeasonBlocks(hotelID)

	for _, block := range blocks {
		if err := block.Range.Validate(); err != nil {
			return fmt.Errorf("season block '%v': %w", block.ID, err)
		}

		if err := v.Struct(block); err != nil {
			return fmt.Errorf("season block '%v': %w", block.ID, err)
		}
	}

	ctx, err = storage.BeginTransaction(ctx, "")
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}

	defer func() {
		if p := recover(); p != nil {
			if rbErr := storage.RollbackTransaction(ctx); rbErr != nil {
				l.LogErrorf("Could not rollback migration transaction after panic %v", p)
			}

			l.LogInfo("Migration transaction has been roll backed after panic")

			panic(p)
		}

		if err != nil {
			if rbErr := storage.RollbackTransaction(ctx); rbErr != nil {
				l.LogErrorf("Could not rollback migration transaction after error %v", rbErr.Error())
			}

			l.LogInfo("Migration transaction has been roll backed after error")

			return
		}

		if err = storage.CommitTransaction(ctx); err != nil {
			l.LogErrorf("Could not commit migration transaction, err %v", err.Error())

			return
		}

		l.LogInfo("Migration transaction has been committed")
	}()

	if err = storage.SaveSeasonBlocks(ctx, blocks); err != nil {
		return fmt.Errorf("save season blocks to storage: %w", err)
	}

	return nil
}
