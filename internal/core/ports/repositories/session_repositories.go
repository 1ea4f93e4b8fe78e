package repositories

import (
	"context"
	"time"

	"github.com/SscSPs/time_clock_app/internal/core/domain"
)

// SessionReader defines read operations for work sessions
type SessionReader interface {
	// FindActiveSession retrieves the worker's active session or apperrors.ErrNotFound.
	FindActiveSession(ctx context.Context, workerID, companyID string) (*domain.WorkSession, error)

	// FindLastClosedSession retrieves the most recently clocked-out session or apperrors.ErrNotFound.
	FindLastClosedSession(ctx context.Context, workerID, companyID string) (*domain.WorkSession, error)

	// ListClosedSessionsSince retrieves closed or auto-closed sessions that ended after since,
	// including those that started before it.
	ListClosedSessionsSince(ctx context.Context, workerID, companyID string, since time.Time) ([]domain.WorkSession, error)

	// ListSessionsBetween retrieves sessions clocked in within [from, to).
	ListSessionsBetween(ctx context.Context, workerID, companyID string, from, to time.Time) ([]domain.WorkSession, error)
}

// SessionWriter defines state transitions of work sessions
type SessionWriter interface {
	// CreateSession inserts an open session. It returns apperrors.ErrActiveSessionExists
	// when the worker already has an active session in the company.
	CreateSession(ctx context.Context, session domain.WorkSession) error

	// CloseSession marks the session inactive with the given terminal status.
	CloseSession(ctx context.Context, sessionID string, clockOut time.Time, status domain.SessionStatus, review *domain.ReviewStatus) error
}

// WorkerLocker serializes clock processing for one worker.
type WorkerLocker interface {
	// LockWorker blocks until the caller's transaction holds the worker lock.
	LockWorker(ctx context.Context, workerID, companyID string) error
}

// SessionRepositoryFacade combines all session-related repository interfaces
type SessionRepositoryFacade interface {
	SessionReader
	SessionWriter
	WorkerLocker
}
