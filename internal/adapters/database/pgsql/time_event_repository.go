package pgsql

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/SscSPs/time_clock_app/internal/apperrors"
	"github.com/SscSPs/time_clock_app/internal/core/domain"
	portsrepo "github.com/SscSPs/time_clock_app/internal/core/ports/repositories"
)

// sourceCheckConstraint limits time_events.source to the accepted channels.
const sourceCheckConstraint = "time_events_source_check"

type PgxTimeEventRepository struct {
	BaseRepository
}

func newPgxTimeEventRepository(pool *pgxpool.Pool) portsrepo.TimeEventRepositoryFacade {
	return &PgxTimeEventRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.TimeEventRepositoryFacade = (*PgxTimeEventRepository)(nil)

const timeEventSelectQuery = `
SELECT
	e.event_id, e.worker_id, e.company_id, e.session_id, e.event_type, e.occurred_at,
	e.latitude, e.longitude, e.distance_meters, e.within_geofence, e.point_id,
	e.device_record_id, e.source, e.notes, e.photo_url, e.created_at
FROM time_events e
`

func (r *PgxTimeEventRepository) InsertTimeEvent(ctx context.Context, event domain.TimeEvent) error {
	query := `
		INSERT INTO time_events (
			event_id, worker_id, company_id, session_id, event_type, occurred_at,
			latitude, longitude, distance_meters, within_geofence, point_id,
			device_record_id, source, notes, photo_url, created_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16);
	`
	_, err := r.DB(ctx).Exec(ctx, query,
		event.EventID,
		event.WorkerID,
		event.CompanyID,
		event.SessionID,
		event.EventType,
		event.OccurredAt,
		event.Latitude,
		event.Longitude,
		event.DistanceMeters,
		event.WithinGeofence,
		event.PointID,
		event.DeviceRecordID,
		event.Source,
		event.Notes,
		event.PhotoURL,
		event.CreatedAt,
	)
	if err != nil {
		if name, ok := constraintViolation(err, pgCheckViolation); ok && name == sourceCheckConstraint {
			return fmt.Errorf("source %q: %w", event.Source, apperrors.ErrSourceConstraint)
		}
		return apperrors.NewAppError(http.StatusInternalServerError, "failed to insert time event "+event.EventID, err)
	}
	return nil
}

func (r *PgxTimeEventRepository) ListEventsSince(ctx context.Context, workerID, companyID string, since time.Time) ([]domain.TimeEvent, error) {
	return collectRows[domain.TimeEvent](ctx, r.DB(ctx), "time events",
		timeEventSelectQuery+`WHERE e.worker_id = $1 AND e.company_id = $2 AND e.occurred_at >= $3
		ORDER BY e.occurred_at, e.created_at`, workerID, companyID, since)
}

func (r *PgxTimeEventRepository) FindLastEvent(ctx context.Context, workerID, companyID string) (*domain.TimeEvent, error) {
	return collectOne[domain.TimeEvent](ctx, r.DB(ctx), "last time event",
		timeEventSelectQuery+`WHERE e.worker_id = $1 AND e.company_id = $2
		ORDER BY e.occurred_at DESC, e.created_at DESC LIMIT 1`, workerID, companyID)
}
