package stay

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/jstramigioli/riviera-app/internal/calendar"
	"github.com/jstramigioli/riviera-app/internal/logger"
	"github.com/jstramigioli/riviera-app/internal/validation"
)

type storageReader interface {
	GetSeasonBlocks(ctx context.Context, hotelID string, window calendar.Range) ([]SeasonBlock, error)
}

// Manager fetches season block snapshots and hands them to an Engine.
type Manager struct {
	l          *logger.Logger
	storage    storageReader
	validator  *validation.Validator
	tracer     trace.Tracer
	strategies []PriceStrategy
}

func New(
	l *logger.Logger,
	storage storageReader,
	v *validation.Validator,
	tracer trace.Tracer,
	strategies ...PriceStrategy,
) *Manager {
	return &Manager{
		l:          l,
		storage:    storage,
		validator:  v,
		tracer:     tracer,
		strategies: strategies,
	}
}

func (m *Manager) engine(ctx context.Context, req StayRequest) (*Engine, error) {
	if err := req.Range.Validate(); err != nil {
		return nil, err
	}

	blocks, err := m.storage.GetSeasonBlocks(ctx, req.HotelID, req.Range)
	if err != nil {
		return nil, fmt.Errorf("get season blocks of hotel '%v': %w", req.HotelID, err)
	}

	index, err := NewIndex(req.HotelID, blocks)
	if err != nil {
		return nil, fmt.Errorf("index season blocks: %w", err)
	}

	return NewEngine(m.l.FromContext(ctx), m.validator, index, m.strategies...), nil
}

func (m *Manager) Quote(ctx context.Context, req StayRequest, roomTypeID string) (_ *Quote, err error) {
	ctx, span := m.startSpan(ctx, "stay.Quote", req)
	defer endSpan(span, &err)

	span.SetAttributes(attribute.String("stay.room_type_id", roomTypeID))

	e, err := m.engine(ctx, req)
	if err != nil {
		return nil, err
	}

	quote, err := e.Quote(req, roomTypeID)
	if err != nil {
		return nil, err
	}

	span.SetAttributes(
		attribute.Int("stay.segments", len(quote.Segments)),
		attribute.Int64("stay.total", quote.Total),
	)

	return quote, nil
}

func (m *Manager) PlanSegments(ctx context.Context, req StayRequest) (_ []Segment, err error) {
	ctx, span := m.startSpan(ctx, "stay.PlanSegments", req)
	defer endSpan(span, &err)

	e, err := m.engine(ctx, req)
	if err != nil {
		return nil, err
	}

	return e.PlanSegments(req)
}

func (m *Manager) startSpan(ctx context.Context, name string, req StayRequest) (context.Context, trace.Span) {
	return m.tracer.Start(ctx, name, trace.WithAttributes(
		attribute.String("stay.hotel_id", req.HotelID),
		attribute.String("stay.service_type_id", req.ServiceTypeID),
		attribute.String("stay.range", req.Range.String()),
	))
}

func endSpan(span trace.Span, err *error) {
	if *err != nil {
		span.RecordError(*err)
		span.SetStatus(codes.Error, (*err).Error())
	}

	span.End()
}
