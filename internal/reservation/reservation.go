package reservation

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/jstramigioli/riviera-app/internal/calendar"
	"github.com/jstramigioli/riviera-app/internal/logger"
	"github.com/jstramigioli/riviera-app/internal/stay"
	"github.com/jstramigioli/riviera-app/internal/validation"
)

type idGenerator interface {
	GetID(ctx context.Context) (string, error)
}

type storageReader interface {
	GetReservation(ctx context.Context, id string) (*Reservation, error)
	GetRoomReservations(ctx context.Context, roomID string) ([]*Reservation, error)
	GetReservationByIdempotencyKey(ctx context.Context, key string) (*Reservation, error)
}

type storageWriter interface {
	BeginTransaction(ctx context.Context, level string) (context.Context, error)
	CommitTransaction(ctx context.Context) error
	RollbackTransaction(ctx context.Context) error
	LockRooms(ctx context.Context, roomIDs ...string) error
	UnlockRooms(ctx context.Context, roomIDs ...string) error
	SaveReservation(ctx context.Context, reservation *Reservation) error
}

type storage interface {
	storageReader
	storageWriter
}

type Manager struct {
	l           *logger.Logger
	storage     storage
	idGenerator idGenerator
	validator   *validation.Validator
	tracer      trace.Tracer
	loc         *time.Location
	now         func() time.Time
}

// New builds a Manager; loc is the hotel zone in which "today" is evaluated for status guards.
func New(
	l *logger.Logger,
	storage storage,
	idGenerator idGenerator,
	v *validation.Validator,
	tracer trace.Tracer,
	loc *time.Location,
) *Manager {
	if loc == nil {
		loc = time.UTC
	}

	return &Manager{
		l:           l,
		storage:     storage,
		idGenerator: idGenerator,
		validator:   v,
		tracer:      tracer,
		loc:         loc,
		now:         time.Now,
	}
}

func (m *Manager) today() time.Time {
	return m.now().In(m.loc)
}

func validateSegments(segments []stay.Segment) error {
	inputErr := validation.NewInputError()

	for i, seg := range segments {
		field := fmt.Sprintf("segments[%d]", i)

		if err := seg.Range.Validate(); err != nil {
			inputErr.AddError(field+".range", err.Error())

			continue
		}

		if seg.Unresolved || seg.ServiceTypeID == "" {
			inputErr.AddError(field+".service_type_id", "segment has no resolved service type")
		}

		if i > 0 && !calendar.Day(segments[i-1].Range.End).Equal(calendar.Day(seg.Range.Start)) {
			inputErr.AddError(field+".range", "segment must start where the previous one ends")
		}
	}

	return inputErr.OrNil()
}

func (m *Manager) validate(input any, segments []stay.Segment) error {
	inputErr := validation.NewInputError()

	if err := m.validator.Struct(input); err != nil {
		if validation.IsInputError(err) == nil {
			return err
		}

		inputErr.Merge(err)
	}

	inputErr.Merge(validateSegments(segments))

	return inputErr.OrNil()
}

// inTransaction runs fn inside a storage transaction, committing on success and rolling back on error or panic.
func (m *Manager) inTransaction(ctx context.Context, fn func(ctx context.Context) error) (err error) {
	ctx, err = m.storage.BeginTransaction(ctx, "SERIALIZABLE")
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}

	l := m.l.FromContext(ctx)

	defer func() {
		if p := recover(); p != nil {
			if rbErr := m.storage.RollbackTransaction(ctx); rbErr != nil {
				l.LogErrorf("Could not rollback reservation transaction after panic %v", p)
			}

			l.LogInfo("Transaction has been roll backed after panic")

			panic(p)
		}

		if err != nil {
			if rbErr := m.storage.RollbackTransaction(ctx); rbErr != nil {
				l.LogErrorf("Could not rollback reservation transaction after error %v", rbErr.Error())
			}

			l.LogDebug("Transaction has been roll backed after error")

			return
		}

		if err = m.storage.CommitTransaction(ctx); err != nil {
			l.LogErrorf("Could not commit reservation transaction, err %v", err.Error())
			err = fmt.Errorf("commit transaction: %w", err)

			return
		}

		l.LogDebug("Transaction has been committed")
	}()

	return fn(ctx)
}

// ensureRoomFree fails with a ConflictError when another reservation holding roomID overlaps r.
func (m *Manager) ensureRoomFree(ctx context.Context, roomID string, r calendar.Range, excludeID string) error {
	existing, err := m.storage.GetRoomReservations(ctx, roomID)
	if err != nil {
		return fmt.Errorf("get reservations of room '%v': %w", roomID, err)
	}

	holding := make([]*Reservation, 0, len(existing))

	for _, res := range existing {
		if res.Status.HoldsRoom() {
			holding = append(holding, res)
		}
	}

	conflict, err := CheckConflict(holding, roomID, r, excludeID)
	if err != nil {
		return err
	}

	if conflict.HasConflict {
		return &ConflictError{RoomID: roomID, Range: r, Conflicting: conflict.Reservation}
	}

	return nil
}

func (m *Manager) Book(ctx context.Context, input *BookInput) (_ *Reservation, err error) {
	ctx, span := m.tracer.Start(ctx, "reservation.Book", trace.WithAttributes(
		attribute.String("reservation.hotel_id", input.HotelID),
		attribute.String("reservation.room_id", input.RoomID),
	))
	defer endSpan(span, &err)

	if err := m.validate(input, input.Segments); err != nil {
		return nil, err
	}

	if existing, err := m.reservationByIdempotencyKey(ctx); existing != nil || err != nil {
		return existing, err
	}

	id, err := m.idGenerator.GetID(ctx)
	if err != nil {
		return nil, ErrNextID
	}

	now := m.now().UTC()

	res := &Reservation{
		ID:           id,
		HotelID:      input.HotelID,
		RoomID:       input.RoomID,
		MainClientID: input.MainClientID,
		Status:       StatusPending,
		TotalAmount:  input.TotalAmount,
		Notes:        input.Notes,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	res.Segments = (&Reservation{Segments: input.Segments}).Clone().Segments

	stayRange, _ := res.Range()

	var existing *Reservation

	err = m.inTransaction(ctx, func(ctx context.Context) error {
		if err := m.storage.LockRooms(ctx, res.RoomID); err != nil {
			return fmt.Errorf("lock room '%v': %w", res.RoomID, err)
		}

		// a concurrent retry with the same key may have committed while the lock was awaited
		found, err := m.reservationByIdempotencyKey(ctx)
		if err != nil {
			return err
		}

		if found != nil {
			existing = found

			return nil
		}

		if err := m.ensureRoomFree(ctx, res.RoomID, stayRange, ""); err != nil {
			return err
		}

		if err := m.storage.SaveReservation(ctx, res); err != nil {
			return fmt.Errorf("save reservation to storage: %w", err)
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	if existing != nil {
		return existing, nil
	}

	m.l.FromContext(ctx).LogInfo("Reservation '%v' booked for room '%v' on %v", res.ID, res.RoomID, stayRange)

	return res, nil
}

// reservationByIdempotencyKey returns the reservation already booked under the key of ctx, or nil.
func (m *Manager) reservationByIdempotencyKey(ctx context.Context) (*Reservation, error) {
	key, ok := IdempotencyKeyFromContext(ctx)
	if !ok {
		return nil, nil //nolint:nilnil
	}

	existing, err := m.storage.GetReservationByIdempotencyKey(ctx, key)
	if errors.Is(err, ErrRecordNotFound) {
		return nil, nil //nolint:nilnil
	}

	if err != nil {
		return nil, fmt.Errorf("get reservation by idempotency key: %w", err)
	}

	return existing, nil
}

// ChangeStatus moves a reservation to another lifecycle status. A move that makes the reservation hold
// its room again is checked for conflicts first.
func (m *Manager) ChangeStatus(ctx context.Context, id string, to Status) (_ *Reservation, err error) {
	ctx, span := m.tracer.Start(ctx, "reservation.ChangeStatus", trace.WithAttributes(
		attribute.String("reservation.id", id),
		attribute.String("reservation.status", string(to)),
	))
	defer endSpan(span, &err)

	var updated *Reservation

	err = m.inTransaction(ctx, func(ctx context.Context) error {
		res, err := m.lockedReservation(ctx, id)
		if err != nil {
			return err
		}

		from := res.Status

		if err := res.Transition(to, m.today()); err != nil {
			return err
		}

		if !from.HoldsRoom() && to.HoldsRoom() {
			stayRange, _ := res.Range()
			if err := m.ensureRoomFree(ctx, res.RoomID, stayRange, res.ID); err != nil {
				return err
			}
		}

		if err := m.storage.SaveReservation(ctx, res); err != nil {
			return fmt.Errorf("save reservation to storage: %w", err)
		}

		updated = res

		return nil
	})
	if err != nil {
		return nil, err
	}

	m.l.FromContext(ctx).LogInfo("Reservation '%v' moved to '%v'", id, to)

	return updated, nil
}

// Reschedule replaces the dates and room of a reservation, ignoring the reservation itself when
// looking for conflicts.
func (m *Manager) Reschedule(ctx context.Context, id string, input *RescheduleInput) (_ *Reservation, err error) {
	ctx, span := m.tracer.Start(ctx, "reservation.Reschedule", trace.WithAttributes(
		attribute.String("reservation.id", id),
		attribute.String("reservation.room_id", input.RoomID),
	))
	defer endSpan(span, &err)

	if err := m.validate(input, input.Segments); err != nil {
		return nil, err
	}

	var updated *Reservation

	err = m.inTransaction(ctx, func(ctx context.Context) error {
		res, err := m.lockedReservation(ctx, id, input.RoomID)
		if err != nil {
			return err
		}

		res.RoomID = input.RoomID
		res.Segments = (&Reservation{Segments: input.Segments}).Clone().Segments
		res.TotalAmount = input.TotalAmount
		res.UpdatedAt = m.now().UTC()

		if res.Status.HoldsRoom() {
			stayRange, _ := res.Range()
			if err := m.ensureRoomFree(ctx, res.RoomID, stayRange, res.ID); err != nil {
				return err
			}
		}

		if err := m.storage.SaveReservation(ctx, res); err != nil {
			return fmt.Errorf("save reservation to storage: %w", err)
		}

		updated = res

		return nil
	})
	if err != nil {
		return nil, err
	}

	m.l.FromContext(ctx).LogInfo("Reservation '%v' rescheduled to room '%v'", id, input.RoomID)

	return updated, nil
}

// lockedReservation locks the room of reservation id plus extraRooms and reloads the reservation
// so it reflects the state committed before the lock was taken. When a concurrent reschedule moved
// the reservation meanwhile, the locks are released and the whole set is taken again in order.
func (m *Manager) lockedReservation(ctx context.Context, id string, extraRooms ...string) (*Reservation, error) {
	res, err := m.storage.GetReservation(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get reservation '%v': %w", id, err)
	}

	for {
		rooms := append([]string{res.RoomID}, extraRooms...)
		if err := m.storage.LockRooms(ctx, rooms...); err != nil {
			return nil, fmt.Errorf("lock rooms %v: %w", rooms, err)
		}

		res, err = m.storage.GetReservation(ctx, id)
		if err != nil {
			return nil, fmt.Errorf("reload reservation '%v': %w", id, err)
		}

		if slices.Contains(rooms, res.RoomID) {
			return res, nil
		}

		if err := m.storage.UnlockRooms(ctx, rooms...); err != nil {
			return nil, fmt.Errorf("unlock rooms %v: %w", rooms, err)
		}
	}
}

func endSpan(span trace.Span, err *error) {
	if *err != nil {
		span.RecordError(*err)
		span.SetStatus(codes.Error, (*err).Error())
	}

	span.End()
}
