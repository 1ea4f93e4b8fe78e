package repositories

import (
	"context"
	"time"

	"github.com/SscSPs/time_clock_app/internal/core/domain"
)

// TimeEventWriter appends time events. Rows are never updated.
type TimeEventWriter interface {
	// InsertTimeEvent returns apperrors.ErrSourceConstraint when the source channel is rejected.
	InsertTimeEvent(ctx context.Context, event domain.TimeEvent) error
}

// TimeEventReader reads the event log.
type TimeEventReader interface {
	// ListEventsSince retrieves events at or after since, oldest first.
	ListEventsSince(ctx context.Context, workerID, companyID string, since time.Time) ([]domain.TimeEvent, error)

	// FindLastEvent retrieves the newest event or apperrors.ErrNotFound.
	FindLastEvent(ctx context.Context, workerID, companyID string) (*domain.TimeEvent, error)
}

// TimeEventRepositoryFacade combines event log operations
type TimeEventRepositoryFacade interface {
	TimeEventWriter
	TimeEventReader
}
