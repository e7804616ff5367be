package stay

import (
	"fmt"

	"github.com/jstramigioli/riviera-app/internal/logger"
	"github.com/jstramigioli/riviera-app/internal/validation"
)

// Engine resolves stays against an immutable snapshot of one hotel's season blocks.
// It performs no I/O and is safe for concurrent use.
type Engine struct {
	l          *logger.Logger
	validator  *validation.Validator
	index      *Index
	strategies []PriceStrategy
}

func NewEngine(l *logger.Logger, v *validation.Validator, index *Index, strategies ...PriceStrategy) *Engine {
	if len(strategies) == 0 {
		strategies = DefaultPriceStrategies()
	}

	return &Engine{
		l:          l,
		validator:  v,
		index:      index,
		strategies: strategies,
	}
}

func (e *Engine) validate(req *StayRequest) error {
	if err := req.Range.Validate(); err != nil {
		return err
	}

	if err := e.validator.Struct(req); err != nil {
		return err
	}

	if req.HotelID != e.index.HotelID() {
		return fmt.Errorf("request for hotel '%v', blocks of hotel '%v': %w", req.HotelID, e.index.HotelID(), ErrHotelMismatch)
	}

	return nil
}
