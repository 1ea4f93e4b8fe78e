package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/SscSPs/time_clock_app/internal/apperrors"
	"github.com/SscSPs/time_clock_app/internal/core/domain"
	portsrepo "github.com/SscSPs/time_clock_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/time_clock_app/internal/core/ports/services"
	"github.com/SscSPs/time_clock_app/internal/utils/pagination"
	"github.com/SscSPs/time_clock_app/internal/utils/worktime"
)

const (
	defaultNotificationPageSize = 20
	maxNotificationPageSize     = 100
	maxSessionRange             = 93 * 24 * time.Hour
)

// attendanceService serves derived attendance data to dashboards and reports.
type attendanceService struct {
	BaseService
	clock         Clock
	tenants       *tenantResolver
	sessions      portsrepo.SessionReader
	events        portsrepo.TimeEventReader
	incidents     portsrepo.IncidentRepository
	notifications portsrepo.NotificationRepository
}

// NewAttendanceService creates the attendance query service
func NewAttendanceService(clock Clock, repos portsrepo.RepositoryProvider) portssvc.AttendanceSvcFacade {
	if clock == nil {
		clock = SystemClock()
	}
	return &attendanceService{
		BaseService:   BaseService{Memberships: repos.CompanyRepo},
		clock:         clock,
		tenants:       newTenantResolver(repos.CompanyRepo),
		sessions:      repos.SessionRepo,
		events:        repos.TimeEventRepo,
		incidents:     repos.IncidentRepo,
		notifications: repos.NotifyRepo,
	}
}

// GetWorkerStatus derives working, paused or off from the active session and its events.
func (s *attendanceService) GetWorkerStatus(ctx context.Context, actor domain.Actor, companySelector string) (*domain.WorkerStatusView, error) {
	tenant, err := s.tenants.Resolve(ctx, actor, "", companySelector)
	if err != nil {
		return nil, err
	}
	workerID, companyID := tenant.WorkerID, tenant.Company.CompanyID

	view := &domain.WorkerStatusView{WorkerID: workerID, CompanyID: companyID, Status: domain.StatusOff}

	active, err := s.sessions.FindActiveSession(ctx, workerID, companyID)
	switch {
	case err == nil:
		events, err := s.events.ListEventsSince(ctx, workerID, companyID, active.ClockInTime)
		if err != nil {
			return nil, fmt.Errorf("failed to list session events: %w", err)
		}
		view.ActiveSession = active
		view.Status = DeriveStatus(active, events)
	case !errors.Is(err, apperrors.ErrNotFound):
		return nil, fmt.Errorf("failed to load active session: %w", err)
	}

	last, err := s.events.FindLastEvent(ctx, workerID, companyID)
	switch {
	case err == nil:
		view.LastEventType = &last.EventType
		view.LastEventAt = &last.OccurredAt
	case !errors.Is(err, apperrors.ErrNotFound):
		return nil, fmt.Errorf("failed to load last event: %w", err)
	}
	return view, nil
}

// ListWorkerSessions returns sessions in [from, to) with gross and net durations.
func (s *attendanceService) ListWorkerSessions(ctx context.Context, requesterID, companyID, workerID string, from, to time.Time) ([]domain.SessionSummary, error) {
	if !to.After(from) {
		return nil, apperrors.NewValidationFailedError("'to' must be after 'from'")
	}
	if to.Sub(from) > maxSessionRange {
		return nil, apperrors.NewValidationFailedError("date range must not exceed 93 days")
	}
	if _, err := s.AuthorizeMember(ctx, requesterID, companyID, requesterID != workerID); err != nil {
		return nil, err
	}

	sessions, err := s.sessions.ListSessionsBetween(ctx, workerID, companyID, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to list sessions: %w", err)
	}
	if len(sessions) == 0 {
		return []domain.SessionSummary{}, nil
	}
	events, err := s.events.ListEventsSince(ctx, workerID, companyID, sessions[0].ClockInTime)
	if err != nil {
		return nil, fmt.Errorf("failed to list events: %w", err)
	}

	now := s.clock.Now()
	out := make([]domain.SessionSummary, 0, len(sessions))
	for _, session := range sessions {
		out = append(out, worktime.Summarize(session, events, now))
	}
	s.LogDebug(ctx, "Listed worker sessions",
		slog.String("worker_id", workerID),
		slog.Int("count", len(out)),
		slog.String("net_hours", worktime.TotalNetHours(out).String()))
	return out, nil
}

// ListIncidents lists a company's incidents for administrators.
func (s *attendanceService) ListIncidents(ctx context.Context, requesterID, companyID string, date *time.Time) ([]domain.Incident, error) {
	if _, err := s.AuthorizeMember(ctx, requesterID, companyID, true); err != nil {
		return nil, err
	}
	incidents, err := s.incidents.ListIncidents(ctx, companyID, date)
	if err != nil {
		return nil, fmt.Errorf("failed to list incidents: %w", err)
	}
	return incidents, nil
}

// ListNotifications returns one page of the recipient's inbox.
func (s *attendanceService) ListNotifications(ctx context.Context, recipientID string, limit int, nextToken *string) ([]domain.Notification, *string, error) {
	limit = pagination.ClampLimit(limit, defaultNotificationPageSize, maxNotificationPageSize)
	items, next, err := s.notifications.ListNotificationsByRecipient(ctx, recipientID, limit, nextToken)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to list notifications: %w", err)
	}
	return items, next, nil
}

// MarkNotificationRead marks one of the recipient's notifications read.
func (s *attendanceService) MarkNotificationRead(ctx context.Context, recipientID, notificationID string) error {
	if err := s.notifications.MarkNotificationRead(ctx, notificationID, recipientID, s.clock.Now()); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return apperrors.NewNotFoundError("notification not found")
		}
		return fmt.Errorf("failed to mark notification read: %w", err)
	}
	return nil
}
