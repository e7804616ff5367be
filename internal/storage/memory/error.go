package memory

import (
	"errors"
	"fmt"
)

var (
	ErrNoTransaction       = errors.New("no storage transaction in ctx")
	ErrTransactionNotFound = errors.New("transaction not found or already finished")
)

// RoomLockError is returned when ctx ends while waiting for a room held by another transaction.
type RoomLockError struct {
	RoomID string
	Err    error
}

func IsRoomLockError(err error) *RoomLockError {
	if err == nil {
		return nil
	}

	var lockErr *RoomLockError

	if errors.As(err, &lockErr) {
		return lockErr
	}

	return nil
}

func (e *RoomLockError) Error() string {
	return fmt.Sprintf("wait for room '%v': %v", e.RoomID, e.Err)
}

func (e *RoomLockError) Unwrap() error {
	return e.Err
}
