package pgsql

import (
	"context"
	"net/http"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/SscSPs/time_clock_app/internal/apperrors"
	"github.com/SscSPs/time_clock_app/internal/core/domain"
	portsrepo "github.com/SscSPs/time_clock_app/internal/core/ports/repositories"
	"github.com/SscSPs/time_clock_app/internal/utils/pagination"
)

type PgxIncidentRepository struct {
	BaseRepository
}

func newPgxIncidentRepository(pool *pgxpool.Pool) portsrepo.IncidentRepository {
	return &PgxIncidentRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.IncidentRepository = (*PgxIncidentRepository)(nil)

func (r *PgxIncidentRepository) CreateIncident(ctx context.Context, incident domain.Incident) error {
	query := `
		INSERT INTO incidents (
			incident_id, worker_id, company_id, incident_type, severity, incident_date, description, created_at
		)
		VALUES ($1, $2, $3, $4, $5, $6::date, $7, $8);
	`
	_, err := r.DB(ctx).Exec(ctx, query,
		incident.IncidentID,
		incident.WorkerID,
		incident.CompanyID,
		incident.Type,
		incident.Severity,
		incident.Date.Format(time.DateOnly),
		incident.Description,
		incident.CreatedAt,
	)
	if err != nil {
		return apperrors.NewAppError(http.StatusInternalServerError, "failed to create incident", err)
	}
	return nil
}

func (r *PgxIncidentRepository) ListIncidents(ctx context.Context, companyID string, date *time.Time) ([]domain.Incident, error) {
	query := `
		SELECT incident_id, worker_id, company_id, incident_type, severity, incident_date, description, created_at
		FROM incidents
		WHERE company_id = $1 AND ($2::date IS NULL OR incident_date = $2::date)
		ORDER BY created_at DESC
		LIMIT 500;
	`
	var day *string
	if date != nil {
		d := date.Format(time.DateOnly)
		day = &d
	}
	return collectRows[domain.Incident](ctx, r.DB(ctx), "incidents", query, companyID, day)
}

type PgxNotificationRepository struct {
	BaseRepository
}

func newPgxNotificationRepository(pool *pgxpool.Pool) portsrepo.NotificationRepository {
	return &PgxNotificationRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.NotificationRepository = (*PgxNotificationRepository)(nil)

// notificationEntityIndex allows one notification per recipient and entity.
const notificationEntityIndex = "ux_notifications_entity_recipient"

func (r *PgxNotificationRepository) CreateNotification(ctx context.Context, n domain.Notification) error {
	query := `
		INSERT INTO notifications (
			notification_id, company_id, recipient_id, title, message, severity,
			entity_type, entity_id, read_at, created_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10);
	`
	_, err := r.DB(ctx).Exec(ctx, query,
		n.NotificationID,
		n.CompanyID,
		n.RecipientID,
		n.Title,
		n.Message,
		n.Severity,
		n.EntityType,
		n.EntityID,
		n.ReadAt,
		n.CreatedAt,
	)
	if err != nil {
		if name, ok := constraintViolation(err, pgUniqueViolation); ok && name == notificationEntityIndex {
			return apperrors.NewConflictError("recipient " + n.RecipientID + " already notified")
		}
		return apperrors.NewAppError(http.StatusInternalServerError, "failed to create notification", err)
	}
	return nil
}

func (r *PgxNotificationRepository) ListNotifiedRecipients(ctx context.Context, companyID, entityType, entityID string) ([]string, error) {
	query := `
		SELECT DISTINCT recipient_id
		FROM notifications
		WHERE company_id = $1 AND entity_type = $2 AND entity_id = $3;
	`
	rows, err := r.DB(ctx).Query(ctx, query, companyID, entityType, entityID)
	if err != nil {
		return nil, apperrors.NewAppError(http.StatusInternalServerError, "failed to query notified recipients", err)
	}
	defer rows.Close()

	var recipients []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, apperrors.NewAppError(http.StatusInternalServerError, "failed to scan recipient", err)
		}
		recipients = append(recipients, id)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(http.StatusInternalServerError, "failed to iterate recipients", err)
	}
	return recipients, nil
}

// ListNotificationsByRecipient pages newest first using a (created_at, id) keyset token.
func (r *PgxNotificationRepository) ListNotificationsByRecipient(ctx context.Context, recipientID string, limit int, nextToken *string) ([]domain.Notification, *string, error) {
	var cursorAt *time.Time
	var cursorID *string
	if nextToken != nil && *nextToken != "" {
		at, id, err := pagination.DecodeCursor(*nextToken)
		if err != nil {
			return nil, nil, apperrors.NewValidationFailedError(err.Error())
		}
		cursorAt, cursorID = &at, &id
	}

	query := `
		SELECT notification_id, company_id, recipient_id, title, message, severity,
			entity_type, entity_id, read_at, created_at
		FROM notifications
		WHERE recipient_id = $1
			AND ($2::timestamptz IS NULL OR (created_at, notification_id) < ($2::timestamptz, $3::uuid))
		ORDER BY created_at DESC, notification_id DESC
		LIMIT $4;
	`
	items, err := collectRows[domain.Notification](ctx, r.DB(ctx), "notifications", query, recipientID, cursorAt, cursorID, limit+1)
	if err != nil {
		return nil, nil, err
	}

	var next *string
	if len(items) > limit {
		items = items[:limit]
		last := items[len(items)-1]
		token := pagination.EncodeCursor(last.CreatedAt, last.NotificationID)
		next = &token
	}
	return items, next, nil
}

func (r *PgxNotificationRepository) MarkNotificationRead(ctx context.Context, notificationID, recipientID string, at time.Time) error {
	query := `
		UPDATE notifications
		SET read_at = COALESCE(read_at, $3)
		WHERE notification_id = $1 AND recipient_id = $2;
	`
	tag, err := r.DB(ctx).Exec(ctx, query, notificationID, recipientID, at)
	if err != nil {
		return apperrors.NewAppError(http.StatusInternalServerError, "failed to mark notification read", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
