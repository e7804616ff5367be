package app

import (
	"context"
	"errors"
	"testing"
	"time"

	"go.opentelemetry.io/otel/trace/noop"

	"github.com/jstramigioli/riviera-app/internal/calendar"
	"github.com/jstramigioli/riviera-app/internal/idgen/simple"
	"github.com/jstramigioli/riviera-app/internal/logger"
	"github.com/jstramigioli/riviera-app/internal/migration"
	"github.com/jstramigioli/riviera-app/internal/reservation"
	"github.com/jstramigioli/riviera-app/internal/stay"
	"github.com/jstramigioli/riviera-app/internal/storage/memory"
	"github.com/jstramigioli/riviera-app/internal/validation"
)

func seededManagers(t *testing.T) (*stay.Manager, *reservation.Manager) {
	t.Helper()

	l := logger.Discard()
	v := validation.New()
	tracer := noop.NewTracerProvider().Tracer("test")
	storage := memory.New(memory.Config{L: l})

	if err := migration.Up(context.Background(), l, storage, v, "riviera"); err != nil {
		t.Fatalf("migration.Up() error = %v", err)
	}

	return stay.New(l, storage, v, tracer), reservation.New(l, storage, simple.New(), v, tracer, time.UTC)
}

func stayRequest(t *testing.T, start, end, service string) stay.StayRequest {
	t.Helper()

	r, err := calendar.Parse(start, end)
	if err != nil {
		t.Fatalf("calendar.Parse() error = %v", err)
	}

	return stay.StayRequest{HotelID: "riviera", Range: r, RequiredGuests: 2, ServiceTypeID: service}
}

func TestQuoteAndBookSplitStay(t *testing.T) {
	stayManager, reservationManager := seededManagers(t)

	res, err := quoteAndBook(context.Background(), logger.Discard(), stayManager, reservationManager,
		stayRequest(t, "2025-10-05", "2025-10-15", "breakfast"), "double")
	if err != nil {
		t.Fatalf("quoteAndBook() error = %v", err)
	}

	// 5 nights of breakfast at 12000, 5 of half-board priced off room-only 9000 +20%
	if res.Status != reservation.StatusConfirmed || res.RoomID != "7" || res.TotalAmount != 114000 {
		t.Errorf("reservation = %+v", res)
	}

	if len(res.Segments) != 2 || res.Segments[1].ServiceTypeID != "half-board" {
		t.Errorf("segments = %+v", res.Segments)
	}
}

func TestQuoteAndBookIsIdempotent(t *testing.T) {
	stayManager, reservationManager := seededManagers(t)
	req := stayRequest(t, "2025-10-02", "2025-10-04", "breakfast")

	first, err := quoteAndBook(context.Background(), logger.Discard(), stayManager, reservationManager, req, "double")
	if err != nil {
		t.Fatalf("first quoteAndBook() error = %v", err)
	}

	second, err := quoteAndBook(context.Background(), logger.Discard(), stayManager, reservationManager, req, "double")
	if err != nil {
		t.Fatalf("second quoteAndBook() error = %v", err)
	}

	if second.ID != first.ID || second.Status != reservation.StatusConfirmed {
		t.Errorf("second quoteAndBook() = %+v, want confirmed %v", second, first.ID)
	}
}

func TestQuoteAndBookUnresolved(t *testing.T) {
	stayManager, reservationManager := seededManagers(t)

	_, err := quoteAndBook(context.Background(), logger.Discard(), stayManager, reservationManager,
		stayRequest(t, "2025-12-01", "2025-12-03", "breakfast"), "double")
	if !errors.Is(err, ErrUnresolvedStay) {
		t.Errorf("quoteAndBook() error = %v, want ErrUnresolvedStay", err)
	}
}

func TestQuoteAndBookNoCandidate(t *testing.T) {
	stayManager, reservationManager := seededManagers(t)

	_, err := quoteAndBook(context.Background(), logger.Discard(), stayManager, reservationManager,
		stayRequest(t, "2025-10-02", "2025-10-04", "breakfast"), "penthouse")
	if !errors.Is(err, ErrNoCandidateRoom) {
		t.Errorf("quoteAndBook() error = %v, want ErrNoCandidateRoom", err)
	}
}
