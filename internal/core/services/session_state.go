package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/SscSPs/time_clock_app/internal/apperrors"
	"github.com/SscSPs/time_clock_app/internal/core/domain"
	portsrepo "github.com/SscSPs/time_clock_app/internal/core/ports/repositories"
)

type sessionStateMachine struct {
	BaseService
	sessions portsrepo.SessionRepositoryFacade
}

func newSessionStateMachine(sessions portsrepo.SessionRepositoryFacade) *sessionStateMachine {
	return &sessionStateMachine{sessions: sessions}
}

// Load returns the worker's active session, or nil when there is none.
func (m *sessionStateMachine) Load(ctx context.Context, workerID, companyID string) (*domain.WorkSession, error) {
	s, err := m.sessions.FindActiveSession(ctx, workerID, companyID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to load active session: %w", err)
	}
	return s, nil
}

// Sweep auto-closes an active session that overran the company's shift cap.
// The clock-out is capped at clock-in plus the cap. It returns the closed
// session, or nil when nothing was swept.
func (m *sessionStateMachine) Sweep(ctx context.Context, company *domain.Company, active *domain.WorkSession, now time.Time) (*domain.WorkSession, error) {
	if active == nil {
		return nil, nil
	}
	maxShift, ok := company.MaxShift()
	if !ok || active.Elapsed(now) <= maxShift {
		return nil, nil
	}

	clockOut := active.ClockInTime.Add(maxShift)
	review := domain.ReviewExceededLimit
	if err := m.sessions.CloseSession(ctx, active.SessionID, clockOut, domain.SessionAutoClosed, &review); err != nil {
		return nil, fmt.Errorf("failed to auto-close session %s: %w", active.SessionID, err)
	}
	m.LogInfo(ctx, "Auto-closed session exceeding max shift",
		slog.String("session_id", active.SessionID),
		slog.String("worker_id", active.WorkerID),
		slog.Duration("max_shift", maxShift))

	closed := *active
	closed.ClockOutTime = &clockOut
	closed.IsActive = false
	closed.Status = domain.SessionAutoClosed
	closed.ReviewStatus = &review
	closed.UpdatedAt = now
	return &closed, nil
}

// Open creates the worker's new active session.
func (m *sessionStateMachine) Open(ctx context.Context, workerID, companyID string, now time.Time) (*domain.WorkSession, error) {
	session := domain.WorkSession{
		SessionID:   uuid.NewString(),
		WorkerID:    workerID,
		CompanyID:   companyID,
		ClockInTime: now,
		IsActive:    true,
		Status:      domain.SessionOpen,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := m.sessions.CreateSession(ctx, session); err != nil {
		return nil, err
	}
	return &session, nil
}

// Close ends the active session on clock-out.
func (m *sessionStateMachine) Close(ctx context.Context, session *domain.WorkSession, now time.Time) error {
	if err := m.sessions.CloseSession(ctx, session.SessionID, now, domain.SessionClosed, nil); err != nil {
		return fmt.Errorf("failed to close session %s: %w", session.SessionID, err)
	}
	return nil
}

// checkLegality validates the action against the current session state.
// swept tells whether this request just auto-closed the session.
func checkLegality(action domain.Action, active *domain.WorkSession, swept bool) error {
	if action == domain.ActionIn {
		if active != nil {
			return apperrors.NewClockError(apperrors.CodeSessionAlreadyActive, "", "a work session is already open")
		}
		return nil
	}
	if active == nil {
		reason := ""
		if swept {
			reason = apperrors.ReasonShiftExceededMaxHours
		}
		return apperrors.NewClockError(apperrors.CodeNoActiveSession, reason, "no open work session")
	}
	return nil
}

// statusAfter is the worker status once the action is recorded.
func statusAfter(action domain.Action) domain.WorkerStatus {
	switch action {
	case domain.ActionOut:
		return domain.StatusOff
	case domain.ActionBreakStart:
		return domain.StatusPaused
	default:
		return domain.StatusWorking
	}
}

// DeriveStatus computes the display status from the active session and its
// events. The worker is paused when the latest pause start has no later pause end.
func DeriveStatus(active *domain.WorkSession, events []domain.TimeEvent) domain.WorkerStatus {
	if active == nil {
		return domain.StatusOff
	}
	status := domain.StatusWorking
	var last time.Time
	for _, e := range events {
		if e.OccurredAt.Before(active.ClockInTime) || e.OccurredAt.Before(last) {
			continue
		}
		switch e.EventType {
		case domain.EventPauseStart:
			status, last = domain.StatusPaused, e.OccurredAt
		case domain.EventPauseEnd:
			status, last = domain.StatusWorking, e.OccurredAt
		}
	}
	return status
}
