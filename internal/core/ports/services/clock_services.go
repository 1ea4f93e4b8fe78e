package services

import (
	"context"
	"time"

	"github.com/SscSPs/time_clock_app/internal/core/domain"
)

// ClockSvc processes worker clock actions.
type ClockSvc interface {
	// ProcessClockAction validates and applies one clock action as a single unit of work.
	// Rejections are returned as *apperrors.ClockError.
	ProcessClockAction(ctx context.Context, cmd domain.ClockCommand) (*domain.ClockOutcome, error)
}

// AttendanceReaderSvc exposes derived attendance data to dashboards and reports.
type AttendanceReaderSvc interface {
	// GetWorkerStatus returns the actor's current status in the selected company.
	GetWorkerStatus(ctx context.Context, actor domain.Actor, companySelector string) (*domain.WorkerStatusView, error)

	// ListWorkerSessions returns sessions clocked in within [from, to) with their durations.
	// The requester must be the worker or an administrator of the company.
	ListWorkerSessions(ctx context.Context, requesterID, companyID, workerID string, from, to time.Time) ([]domain.SessionSummary, error)

	// ListIncidents returns a company's incidents, optionally for one date. Administrators only.
	ListIncidents(ctx context.Context, requesterID, companyID string, date *time.Time) ([]domain.Incident, error)
}

// NotificationSvc defines the administrator inbox
type NotificationSvc interface {
	ListNotifications(ctx context.Context, recipientID string, limit int, nextToken *string) ([]domain.Notification, *string, error)
	MarkNotificationRead(ctx context.Context, recipientID, notificationID string) error
}

// AttendanceSvcFacade combines all attendance query interfaces
type AttendanceSvcFacade interface {
	AttendanceReaderSvc
	NotificationSvc
}
