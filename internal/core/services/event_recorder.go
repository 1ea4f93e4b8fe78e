package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/SscSPs/time_clock_app/internal/apperrors"
	"github.com/SscSPs/time_clock_app/internal/core/domain"
	portsrepo "github.com/SscSPs/time_clock_app/internal/core/ports/repositories"
)

type eventRecorder struct {
	BaseService
	events   portsrepo.TimeEventWriter
	uow      portsrepo.UnitOfWork
	fallback domain.Source
}

func newEventRecorder(events portsrepo.TimeEventWriter, uow portsrepo.UnitOfWork, fallback domain.Source) *eventRecorder {
	return &eventRecorder{events: events, uow: uow, fallback: fallback}
}

// Record appends the event. When the store rejects the source channel it
// retries once with the fallback source and returns the event as written.
func (r *eventRecorder) Record(ctx context.Context, event domain.TimeEvent) (*domain.TimeEvent, error) {
	err := r.insert(ctx, event)
	if err == nil {
		return &event, nil
	}
	if !errors.Is(err, apperrors.ErrSourceConstraint) || event.Source == r.fallback {
		return nil, fmt.Errorf("failed to record time event: %w", err)
	}

	r.LogWarn(ctx, err, "Time event source rejected, retrying with fallback source",
		slog.String("source", string(event.Source)),
		slog.String("fallback", string(r.fallback)))
	event.Source = r.fallback
	if err := r.insert(ctx, event); err != nil {
		return nil, fmt.Errorf("failed to record time event with fallback source: %w", err)
	}
	return &event, nil
}

func (r *eventRecorder) insert(ctx context.Context, event domain.TimeEvent) error {
	return r.uow.Savepoint(ctx, func(ctx context.Context) error {
		return r.events.InsertTimeEvent(ctx, event)
	})
}
