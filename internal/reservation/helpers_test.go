package reservation

import (
	"context"
	"errors"
	"sort"
	"strconv"
	"sync"
	"testing"
	"time"

	"go.opentelemetry.io/otel/trace/noop"

	"github.com/jstramigioli/riviera-app/internal/calendar"
	"github.com/jstramigioli/riviera-app/internal/logger"
	"github.com/jstramigioli/riviera-app/internal/stay"
	"github.com/jstramigioli/riviera-app/internal/validation"
)

const testHotel = "riviera"

func rng(t *testing.T, start, end string) calendar.Range {
	t.Helper()

	r, err := calendar.Parse(start, end)
	if err != nil {
		t.Fatalf("calendar.Parse(%s, %s) error = %v", start, end, err)
	}

	return r
}

func segment(t *testing.T, start, end string) stay.Segment {
	t.Helper()

	return stay.Segment{Range: rng(t, start, end), ServiceTypeID: "breakfast", RequiredGuests: 2}
}

func newReservation(t *testing.T, id, roomID string, status Status, start, end string) *Reservation {
	t.Helper()

	return &Reservation{
		ID:       id,
		HotelID:  testHotel,
		RoomID:   roomID,
		Status:   status,
		Segments: []stay.Segment{segment(t, start, end)},
	}
}

// fakeStorage applies writes directly and records what the manager asked for.
type fakeStorage struct {
	mu            sync.Mutex
	reservations  map[string]*Reservation
	idempKeys     map[string]string
	lockedRooms   []string
	unlockedRooms []string
	commits       int
	rollbacks     int
	saveErr       error

	// onLock runs with the storage mutex held after each LockRooms call
	onLock func(s *fakeStorage)
}

func newFakeStorage(existing ...*Reservation) *fakeStorage {
	s := &fakeStorage{
		reservations: make(map[string]*Reservation),
		idempKeys:    make(map[string]string),
	}

	for _, res := range existing {
		s.reservations[res.ID] = res.Clone()
	}

	return s
}

func (s *fakeStorage) BeginTransaction(ctx context.Context, _ string) (context.Context, error) {
	return ctx, nil
}

func (s *fakeStorage) CommitTransaction(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.commits++

	return nil
}

func (s *fakeStorage) RollbackTransaction(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.rollbacks++

	return nil
}

func (s *fakeStorage) LockRooms(_ context.Context, roomIDs ...string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.lockedRooms = append(s.lockedRooms, roomIDs...)

	if s.onLock != nil {
		s.onLock(s)
	}

	return nil
}

func (s *fakeStorage) UnlockRooms(_ context.Context, roomIDs ...string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.unlockedRooms = append(s.unlockedRooms, roomIDs...)

	return nil
}

func (s *fakeStorage) SaveReservation(ctx context.Context, res *Reservation) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.saveErr != nil {
		return s.saveErr
	}

	s.reservations[res.ID] = res.Clone()

	if key, ok := IdempotencyKeyFromContext(ctx); ok {
		s.idempKeys[key] = res.ID
	}

	return nil
}

func (s *fakeStorage) GetReservation(_ context.Context, id string) (*Reservation, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	res, ok := s.reservations[id]
	if !ok {
		return nil, ErrRecordNotFound
	}

	return res.Clone(), nil
}

func (s *fakeStorage) GetRoomReservations(_ context.Context, roomID string) ([]*Reservation, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var result []*Reservation

	for _, res := range s.reservations {
		if res.RoomID == roomID {
			result = append(result, res.Clone())
		}
	}

	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })

	return result, nil
}

func (s *fakeStorage) GetReservationByIdempotencyKey(_ context.Context, key string) (*Reservation, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	id, ok := s.idempKeys[key]
	if !ok {
		return nil, ErrRecordNotFound
	}

	return s.reservations[id].Clone(), nil
}

type seqIDs struct {
	next int
	err  error
}

func (g *seqIDs) GetID(_ context.Context) (string, error) {
	if g.err != nil {
		return "", g.err
	}

	g.next++

	return "r" + strconv.Itoa(g.next), nil
}

var errStorage = errors.New("storage unavailable")

func newTestManager(storage storage, ids idGenerator, today time.Time) *Manager {
	m := New(logger.Discard(), storage, ids, validation.New(), noop.NewTracerProvider().Tracer("test"), time.UTC)
	m.now = func() time.Time { return today }

	return m
}
