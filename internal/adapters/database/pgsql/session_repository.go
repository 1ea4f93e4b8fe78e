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

// activeSessionIndex enforces one active session per worker and company.
const activeSessionIndex = "ux_work_sessions_one_active"

type PgxSessionRepository struct {
	BaseRepository
}

func newPgxSessionRepository(pool *pgxpool.Pool) portsrepo.SessionRepositoryFacade {
	return &PgxSessionRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.SessionRepositoryFacade = (*PgxSessionRepository)(nil)

const sessionSelectQuery = `
SELECT
	s.session_id, s.worker_id, s.company_id, s.clock_in_time, s.clock_out_time,
	s.is_active, s.status, s.review_status, s.created_at, s.updated_at
FROM work_sessions s
`

// LockWorker takes a transaction-scoped advisory lock keyed by worker and company.
func (r *PgxSessionRepository) LockWorker(ctx context.Context, workerID, companyID string) error {
	if _, ok := txFromContext(ctx); !ok {
		return apperrors.NewAppError(http.StatusInternalServerError, "worker lock requires a transaction", nil)
	}
	_, err := r.DB(ctx).Exec(ctx, `SELECT pg_advisory_xact_lock(hashtextextended($1, 0));`, advisoryKey(workerID, companyID))
	if err != nil {
		return apperrors.NewAppError(http.StatusInternalServerError, "failed to lock worker", err)
	}
	return nil
}

func advisoryKey(workerID, companyID string) string {
	return "clock:" + companyID + ":" + workerID
}

func (r *PgxSessionRepository) FindActiveSession(ctx context.Context, workerID, companyID string) (*domain.WorkSession, error) {
	return collectOne[domain.WorkSession](ctx, r.DB(ctx), "active session",
		sessionSelectQuery+`WHERE s.worker_id = $1 AND s.company_id = $2 AND s.is_active`, workerID, companyID)
}

func (r *PgxSessionRepository) FindLastClosedSession(ctx context.Context, workerID, companyID string) (*domain.WorkSession, error) {
	return collectOne[domain.WorkSession](ctx, r.DB(ctx), "last closed session",
		sessionSelectQuery+`WHERE s.worker_id = $1 AND s.company_id = $2 AND NOT s.is_active AND s.clock_out_time IS NOT NULL
		ORDER BY s.clock_out_time DESC LIMIT 1`, workerID, companyID)
}

func (r *PgxSessionRepository) ListClosedSessionsSince(ctx context.Context, workerID, companyID string, since time.Time) ([]domain.WorkSession, error) {
	return collectRows[domain.WorkSession](ctx, r.DB(ctx), "closed sessions",
		sessionSelectQuery+`WHERE s.worker_id = $1 AND s.company_id = $2 AND s.status IN ('closed', 'auto_closed')
		AND s.clock_out_time > $3 ORDER BY s.clock_in_time`, workerID, companyID, since)
}

func (r *PgxSessionRepository) ListSessionsBetween(ctx context.Context, workerID, companyID string, from, to time.Time) ([]domain.WorkSession, error) {
	return collectRows[domain.WorkSession](ctx, r.DB(ctx), "sessions",
		sessionSelectQuery+`WHERE s.worker_id = $1 AND s.company_id = $2 AND s.clock_in_time >= $3 AND s.clock_in_time < $4
		ORDER BY s.clock_in_time`, workerID, companyID, from, to)
}

func (r *PgxSessionRepository) CreateSession(ctx context.Context, session domain.WorkSession) error {
	query := `
		INSERT INTO work_sessions (
			session_id, worker_id, company_id, clock_in_time, clock_out_time,
			is_active, status, review_status, created_at, updated_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10);
	`
	_, err := r.DB(ctx).Exec(ctx, query,
		session.SessionID,
		session.WorkerID,
		session.CompanyID,
		session.ClockInTime,
		session.ClockOutTime,
		session.IsActive,
		session.Status,
		session.ReviewStatus,
		session.CreatedAt,
		session.UpdatedAt,
	)
	if err != nil {
		if name, ok := constraintViolation(err, pgUniqueViolation); ok && name == activeSessionIndex {
			return fmt.Errorf("worker %s: %w", session.WorkerID, apperrors.ErrActiveSessionExists)
		}
		return apperrors.NewAppError(http.StatusInternalServerError, "failed to create session "+session.SessionID, err)
	}
	return nil
}

func (r *PgxSessionRepository) CloseSession(ctx context.Context, sessionID string, clockOut time.Time, status domain.SessionStatus, review *domain.ReviewStatus) error {
	query := `
		UPDATE work_sessions
		SET is_active = false, clock_out_time = $2, status = $3,
			review_status = COALESCE($4, review_status), updated_at = now()
		WHERE session_id = $1 AND is_active;
	`
	tag, err := r.DB(ctx).Exec(ctx, query, sessionID, clockOut, status, review)
	if err != nil {
		return apperrors.NewAppError(http.StatusInternalServerError, "failed to close session "+sessionID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.NewNotFoundError("active session " + sessionID + " not found")
	}
	return nil
}
