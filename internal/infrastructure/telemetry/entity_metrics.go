package telemetry

import (
	"context"
	"errors"
	"time"

	"github.com/erp/crm/internal/domain/shared"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// Operation outcomes
const (
	OutcomeSuccess  = "success"
	OutcomeNotFound = "not_found"
	OutcomeConflict = "conflict"
	OutcomeInvalid  = "invalid"
	OutcomeError    = "error"
)

// EntityMetrics counts and times catalog entity operations.
type EntityMetrics struct {
	operations *Counter
	duration   *Histogram
}

// NewEntityMetrics registers the crm.entity.* instruments on meter
func NewEntityMetrics(meter metric.Meter) (*EntityMetrics, error) {
	operations, err := NewCounter(meter,
		"crm.entity.operations",
		"Number of entity operations by entity, operation and outcome",
		"{operation}",
	)
	if err != nil {
		return nil, err
	}
	duration, err := NewHistogram(meter, HistogramOpts{
		Name:        "crm.entity.operation.duration",
		Description: "Duration of entity operations",
		Unit:        "s",
		Boundaries:  DBDurationBuckets,
	})
	if err != nil {
		return nil, err
	}
	return &EntityMetrics{operations: operations, duration: duration}, nil
}

// RecordOperation records one finished operation. A nil receiver is a no-op.
func (m *EntityMetrics) RecordOperation(ctx context.Context, entity, operation string, d time.Duration, err error) {
	if m == nil {
		return
	}
	attrs := []attribute.KeyValue{
		AttrEntity.String(entity),
		AttrOperation.String(operation),
		AttrOutcome.String(Outcome(err)),
	}
	m.operations.Inc(ctx, attrs...)
	m.duration.RecordDuration(ctx, d, attrs...)
}

// Outcome classifies err for the outcome attribute
func Outcome(err error) string {
	if err == nil {
		return OutcomeSuccess
	}
	var domainErr *shared.DomainError
	switch {
	case errors.Is(err, shared.ErrNotFound):
		return OutcomeNotFound
	case errors.Is(err, shared.ErrConcurrencyConflict):
		return OutcomeConflict
	case errors.As(err, &domainErr):
		return OutcomeInvalid
	default:
		return OutcomeError
	}
}
