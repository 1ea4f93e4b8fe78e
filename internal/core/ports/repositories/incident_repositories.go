package repositories

import (
	"context"
	"time"

	"github.com/SscSPs/time_clock_app/internal/core/domain"
)

// IncidentRepository defines persistence of attendance incidents
type IncidentRepository interface {
	CreateIncident(ctx context.Context, incident domain.Incident) error

	// ListIncidents lists a company's incidents, optionally for one date, newest first.
	ListIncidents(ctx context.Context, companyID string, date *time.Time) ([]domain.Incident, error)
}

// NotificationRepository defines persistence of administrator notifications
type NotificationRepository interface {
	CreateNotification(ctx context.Context, notification domain.Notification) error

	// ListNotifiedRecipients returns recipients already notified about the entity.
	ListNotifiedRecipients(ctx context.Context, companyID, entityType, entityID string) ([]string, error)

	// ListNotificationsByRecipient retrieves a page of notifications, newest first,
	// and a token for the next page.
	ListNotificationsByRecipient(ctx context.Context, recipientID string, limit int, nextToken *string) ([]domain.Notification, *string, error)

	// MarkNotificationRead returns apperrors.ErrNotFound if the notification is not the recipient's.
	MarkNotificationRead(ctx context.Context, notificationID, recipientID string, at time.Time) error
}
