package app

import (
	"context"
	"errors"
	"fmt"
	"os/signal"
	"syscall"
	"time"

	"go.opentelemetry.io/otel"

	"github.com/jstramigioli/riviera-app/internal/calendar"
	"github.com/jstramigioli/riviera-app/internal/config"
	"github.com/jstramigioli/riviera-app/internal/idgen/random"
	"github.com/jstramigioli/riviera-app/internal/logger"
	"github.com/jstramigioli/riviera-app/internal/migration"
	"github.com/jstramigioli/riviera-app/internal/reservation"
	"github.com/jstramigioli/riviera-app/internal/stay"
	"github.com/jstramigioli/riviera-app/internal/storage/memory"
	"github.com/jstramigioli/riviera-app/internal/tracing"
	"github.com/jstramigioli/riviera-app/internal/validation"
)

const tracerName = "github.com/jstramigioli/riviera-app"

var (
	ErrNoCandidateRoom = errors.New("no room can host the stay")
	ErrUnresolvedStay  = errors.New("stay has days without any offered service")
)

func Run(cfg *config.Config, l *logger.Logger) error {
	ctx, cancel := signal.NotifyContext(
		context.Background(),
		syscall.SIGINT,
		syscall.SIGTERM,
		syscall.SIGHUP,
	)
	defer cancel()

	// work in flight gets ShutdownTimeout to finish once a signal arrives
	workCtx, cancelWork := context.WithCancel(context.WithoutCancel(ctx))
	defer cancelWork()

	//nolint:contextcheck
	go func() {
		select {
		case <-ctx.Done():
		case <-workCtx.Done():
			return
		}

		l.LogInfo("Shutdown requested, waiting up to %v for work in flight", cfg.ShutdownTimeout)

		timer := time.NewTimer(cfg.ShutdownTimeout)
		defer timer.Stop()

		select {
		case <-timer.C:
			cancelWork()
		case <-workCtx.Done():
		}
	}()

	cfg.LogConfiguration(l)

	tp := tracing.NewTracerProvider(tracing.Config{ServiceName: "riviera", Environment: cfg.Environment})
	defer func() {
		if err := tp.Shutdown(context.Background()); err != nil {
			l.LogErrorf("Failed to stop tracer provider: %v", err.Error())
		}
	}()

	v := validation.New()
	tracer := otel.Tracer(tracerName)

	storage := memory.New(memory.Config{L: l})

	if cfg.SeedDemo {
		if err := migration.Up(workCtx, l, storage, v, cfg.HotelID); err != nil {
			return fmt.Errorf("up demo migration: %w", err)
		}

		l.LogInfo("Demo migration has been applied")
	}

	stayManager := stay.New(l, storage, v, tracer, stay.DefaultPriceStrategies()...)
	reservationManager := reservation.New(l, storage, random.New(), v, tracer, cfg.Location)

	stayRange, err := calendar.Parse(cfg.StayFrom, cfg.StayTo)
	if err != nil {
		return fmt.Errorf("parse configured stay: %w", err)
	}

	req := stay.StayRequest{
		HotelID:        cfg.HotelID,
		Range:          stayRange,
		RequiredGuests: cfg.StayGuests,
		ServiceTypeID:  cfg.StayService,
	}

	res, err := quoteAndBook(workCtx, l, stayManager, reservationManager, req, cfg.StayRoomType)
	if err != nil {
		return err
	}

	l.LogInfo("Reservation '%v' is %v for room '%v', total %v", res.ID, res.Status, res.RoomID, res.TotalAmount)
	l.LogInfo("Application stopped gracefully")

	return nil
}

func quoteAndBook(
	ctx context.Context,
	l *logger.Logger,
	stayManager *stay.Manager,
	reservationManager *reservation.Manager,
	req stay.StayRequest,
	roomTypeID string,
) (*reservation.Reservation, error) {
	quote, err := stayManager.Quote(ctx, req, roomTypeID)
	if err != nil {
		return nil, fmt.Errorf("quote stay: %w", err)
	}

	for _, sq := range quote.Segments {
		l.LogInfo("Segment %v with '%v': %v", sq.Segment.Range, sq.Segment.ServiceTypeID, sq.Total)
	}

	l.LogInfo("Stay %v quoted at %v over %d segment(s), unpriced days: %v, draft pricing: %v",
		req.Range, quote.Total, len(quote.Segments), quote.HasUnpricedDays, quote.IsDraftFallback)

	if quote.HasUnresolvedSegments {
		l.LogWarn("Stay %v has days without any offered service, not booking", req.Range)

		return nil, fmt.Errorf("book stay %v: %w", req.Range, ErrUnresolvedStay)
	}

	segments := make([]stay.Segment, 0, len(quote.Segments))
	for _, sq := range quote.Segments {
		segments = append(segments, sq.Segment)
	}

	var candidates []stay.Room

	for _, room := range stay.CandidateRooms(segments[0], migration.Rooms(), migration.RoomTypes()) {
		if room.RoomTypeID == roomTypeID {
			candidates = append(candidates, room)
		}
	}

	if len(candidates) == 0 {
		return nil, ErrNoCandidateRoom
	}

	ctx = reservation.NewContextWithIdempotencyKey(ctx, fmt.Sprintf("%v:%v:%v", req.HotelID, candidates[0].ID, req.Range))

	res, err := reservationManager.Book(ctx, &reservation.BookInput{
		HotelID:      req.HotelID,
		RoomID:       candidates[0].ID,
		MainClientID: "walk-in",
		Segments:     segments,
		TotalAmount:  quote.Total,
	})
	if err != nil {
		return nil, fmt.Errorf("book room '%v': %w", candidates[0].ID, err)
	}

	// a retried run gets back the reservation confirmed the first time
	if res.Status == reservation.StatusConfirmed {
		return res, nil
	}

	return reservationManager.ChangeStatus(ctx, res.ID, reservation.StatusConfirmed)
}
