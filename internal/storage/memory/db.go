package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/jstramigioli/riviera-app/internal/calendar"
	"github.com/jstramigioli/riviera-app/internal/logger"
	"github.com/jstramigioli/riviera-app/internal/reservation"
	"github.com/jstramigioli/riviera-app/internal/stay"
)

type Config struct {
	L *logger.Logger
}

type transaction struct {
	id                       trxID
	blockModifications       map[string]*stay.SeasonBlock
	reservationModifications map[string]*reservation.Reservation
	createdReservations      []string
	lockedRooms              map[string]chan struct{}
}

// DB keeps season blocks and reservations in memory. Writes are buffered per transaction and
// applied on commit; room locks taken inside a transaction are held until it ends.
type DB struct {
	mu                   sync.Mutex
	l                    *logger.Logger
	seasonBlocks         map[string]*stay.SeasonBlock
	reservations         map[string]*reservation.Reservation
	roomLocks            map[string]chan struct{}
	transactions         map[trxID]*transaction
	nextTrxID            trxID
	reservationIdempKeys map[string]string
}

func New(conf Config) *DB {
	//nolint:exhaustruct
	return &DB{
		l:                    conf.L,
		seasonBlocks:         make(map[string]*stay.SeasonBlock),
		reservations:         make(map[string]*reservation.Reservation),
		roomLocks:            make(map[string]chan struct{}),
		transactions:         make(map[trxID]*transaction),
		reservationIdempKeys: make(map[string]string),
	}
}

func (db *DB) BeginTransaction(ctx context.Context, _ string) (context.Context, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	db.nextTrxID++
	id := db.nextTrxID

	db.transactions[id] = &transaction{
		id:                       id,
		blockModifications:       make(map[string]*stay.SeasonBlock),
		reservationModifications: make(map[string]*reservation.Reservation),
		lockedRooms:              make(map[string]chan struct{}),
	}

	return withTransaction(ctx, id), nil
}

// transaction must be called with db.mu held.
func (db *DB) transaction(ctx context.Context) (*transaction, error) {
	id, ok := transactionFromContext(ctx)
	if !ok {
		return nil, ErrNoTransaction
	}

	trx, exists := db.transactions[id]
	if !exists {
		return nil, fmt.Errorf("transaction %d: %w", id, ErrTransactionNotFound)
	}

	return trx, nil
}

// openTransaction returns the transaction of ctx when there is one, nil otherwise.
func (db *DB) openTransaction(ctx context.Context) *transaction {
	id, ok := transactionFromContext(ctx)
	if !ok {
		return nil
	}

	return db.transactions[id]
}

func (db *DB) CommitTransaction(ctx context.Context) error {
	db.mu.Lock()
	defer db.mu.Unlock()

	trx, err := db.transaction(ctx)
	if err != nil {
		return err
	}

	idempotencyKey, hasKey := reservation.IdempotencyKeyFromContext(ctx)

	for id, block := range trx.blockModifications {
		db.seasonBlocks[id] = block
	}

	for id, res := range trx.reservationModifications {
		db.reservations[id] = res
	}

	// the key names the reservation the transaction created, never one it only updated
	if hasKey && len(trx.createdReservations) > 0 {
		if _, taken := db.reservationIdempKeys[idempotencyKey]; !taken {
			db.reservationIdempKeys[idempotencyKey] = trx.createdReservations[0]
		}
	}

	db.finish(trx)

	return nil
}

func (db *DB) RollbackTransaction(ctx context.Context) error {
	db.mu.Lock()
	defer db.mu.Unlock()

	trx, err := db.transaction(ctx)
	if err != nil {
		return err
	}

	db.finish(trx)

	return nil
}

func (db *DB) finish(trx *transaction) {
	for _, lock := range trx.lockedRooms {
		<-lock
	}

	delete(db.transactions, trx.id)
}

// LockRooms takes the room locks in id order and blocks until they are free or ctx is done.
func (db *DB) LockRooms(ctx context.Context, roomIDs ...string) error {
	ids := append([]string(nil), roomIDs...)
	sort.Strings(ids)

	for _, roomID := range ids {
		db.mu.Lock()

		trx, err := db.transaction(ctx)
		if err != nil {
			db.mu.Unlock()

			return err
		}

		if _, held := trx.lockedRooms[roomID]; held {
			db.mu.Unlock()

			continue
		}

		lock, ok := db.roomLocks[roomID]
		if !ok {
			lock = make(chan struct{}, 1)
			db.roomLocks[roomID] = lock
		}

		db.mu.Unlock()

		select {
		case lock <- struct{}{}:
		case <-ctx.Done():
			return &RoomLockError{RoomID: roomID, Err: ctx.Err()}
		}

		db.mu.Lock()
		trx.lockedRooms[roomID] = lock
		db.mu.Unlock()
	}

	return nil
}

// UnlockRooms releases room locks held by the transaction in ctx; rooms it does not hold are skipped.
func (db *DB) UnlockRooms(ctx context.Context, roomIDs ...string) error {
	db.mu.Lock()
	defer db.mu.Unlock()

	trx, err := db.transaction(ctx)
	if err != nil {
		return err
	}

	for _, roomID := range roomIDs {
		lock, held := trx.lockedRooms[roomID]
		if !held {
			continue
		}

		<-lock
		delete(trx.lockedRooms, roomID)
	}

	return nil
}

func (db *DB) SaveSeasonBlocks(ctx context.Context, blocks []*stay.SeasonBlock) error {
	db.mu.Lock()
	defer db.mu.Unlock()

	trx, err := db.transaction(ctx)
	if err != nil {
		return err
	}

	for _, block := range blocks {
		trx.blockModifications[block.ID] = cloneBlock(block)
	}

	return nil
}

// GetSeasonBlocks returns copies of the committed blocks of hotelID overlapping window.
func (db *DB) GetSeasonBlocks(_ context.Context, hotelID string, window calendar.Range) ([]stay.SeasonBlock, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	var result []stay.SeasonBlock

	for _, block := range db.seasonBlocks {
		if block.HotelID != hotelID || !calendar.Overlaps(block.Range, window) {
			continue
		}

		result = append(result, *cloneBlock(block))
	}

	return result, nil
}

func (db *DB) SaveReservation(ctx context.Context, res *reservation.Reservation) error {
	db.mu.Lock()
	defer db.mu.Unlock()

	trx, err := db.transaction(ctx)
	if err != nil {
		return err
	}

	_, committed := db.reservations[res.ID]
	_, pending := trx.reservationModifications[res.ID]

	if !committed && !pending {
		trx.createdReservations = append(trx.createdReservations, res.ID)
	}

	trx.reservationModifications[res.ID] = res.Clone()

	return nil
}

// GetReservation sees the pending writes of the transaction in ctx on top of committed data.
func (db *DB) GetReservation(ctx context.Context, id string) (*reservation.Reservation, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	if trx := db.openTransaction(ctx); trx != nil {
		if res, ok := trx.reservationModifications[id]; ok {
			return res.Clone(), nil
		}
	}

	res, ok := db.reservations[id]
	if !ok {
		return nil, fmt.Errorf("reservation '%v': %w", id, reservation.ErrRecordNotFound)
	}

	return res.Clone(), nil
}

func (db *DB) GetRoomReservations(ctx context.Context, roomID string) ([]*reservation.Reservation, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	merged := make(map[string]*reservation.Reservation)

	for id, res := range db.reservations {
		merged[id] = res
	}

	if trx := db.openTransaction(ctx); trx != nil {
		for id, res := range trx.reservationModifications {
			merged[id] = res
		}
	}

	var result []*reservation.Reservation

	for _, res := range merged {
		if res.RoomID == roomID {
			result = append(result, res.Clone())
		}
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].CreatedAt.Before(result[j].CreatedAt) ||
			(result[i].CreatedAt.Equal(result[j].CreatedAt) && result[i].ID < result[j].ID)
	})

	return result, nil
}

func (db *DB) GetReservationByIdempotencyKey(_ context.Context, key string) (*reservation.Reservation, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	id, exists := db.reservationIdempKeys[key]
	if !exists {
		return nil, reservation.ErrRecordNotFound
	}

	res, ok := db.reservations[id]
	if !ok {
		return nil, reservation.ErrRecordNotFound
	}

	return res.Clone(), nil
}

func cloneBlock(b *stay.SeasonBlock) *stay.SeasonBlock {
	c := *b
	c.Prices = append([]stay.SeasonPrice(nil), b.Prices...)
	c.Adjustments = append([]stay.ServiceAdjustment(nil), b.Adjustments...)
	c.OfferedServiceTypeIDs = append([]string(nil), b.OfferedServiceTypeIDs...)

	return &c
}
