package calendar

import (
	"errors"
	"fmt"
)

type InvalidRangeError struct {
	Range  Range
	Reason string
}

func newInvalidRangeError(r Range, reason string) *InvalidRangeError {
	return &InvalidRangeError{Range: r, Reason: reason}
}

func IsInvalidRangeError(err error) *InvalidRangeError {
	if err == nil {
		return nil
	}

	var rangeErr *InvalidRangeError

	if errors.As(err, &rangeErr) {
		return rangeErr
	}

	return nil
}

func (e *InvalidRangeError) Error() string {
	if e.Range.Start.IsZero() && e.Range.End.IsZero() {
		return fmt.Sprintf("invalid date range: %s", e.Reason)
	}

	return fmt.Sprintf("invalid date range %v: %s", e.Range, e.Reason)
}
