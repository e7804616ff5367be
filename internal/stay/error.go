package stay

import (
	"errors"
	"fmt"

	"github.com/jstramigioli/riviera-app/internal/calendar"
)

var ErrHotelMismatch = errors.New("request hotel does not match season blocks")

// DataIntegrityError reports confirmed season blocks of one hotel that overlap,
// or a block whose own range is malformed.
type DataIntegrityError struct {
	HotelID  string
	BlockIDs []string
	Overlap  calendar.Range
	Err      error
}

func IsDataIntegrityError(err error) *DataIntegrityError {
	if err == nil {
		return nil
	}

	var integrityErr *DataIntegrityError

	if errors.As(err, &integrityErr) {
		return integrityErr
	}

	return nil
}

func (e *DataIntegrityError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("data integrity: hotel '%v' block %v: %v", e.HotelID, e.BlockIDs, e.Err)
	}

	return fmt.Sprintf("data integrity: hotel '%v' confirmed blocks %v overlap on %v", e.HotelID, e.BlockIDs, e.Overlap)
}

func (e *DataIntegrityError) Unwrap() error {
	return e.Err
}
