package services

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/SscSPs/time_clock_app/internal/apperrors"
	"github.com/SscSPs/time_clock_app/internal/core/domain"
	portsrepo "github.com/SscSPs/time_clock_app/internal/core/ports/repositories"
)

// notice is an administrator alert. An empty EntityID points the alert at
// the incident dispatched with it.
type notice struct {
	EntityType string
	EntityID   string
	Title      string
	Message    string
	Severity   domain.Severity
	Dedup      bool
}

// sideEffect is collected while processing and dispatched after commit.
type sideEffect struct {
	Incident *domain.Incident
	Notice   *notice
}

type dispatcher struct {
	BaseService
	incidents     portsrepo.IncidentRepository
	notifications portsrepo.NotificationRepository
	memberships   portsrepo.MembershipReader
	clock         Clock
}

func newDispatcher(incidents portsrepo.IncidentRepository, notifications portsrepo.NotificationRepository, memberships portsrepo.MembershipReader, clock Clock) *dispatcher {
	return &dispatcher{incidents: incidents, notifications: notifications, memberships: memberships, clock: clock}
}

// Dispatch writes incidents and notifications best-effort. Failures are logged
// and never surface to the caller.
func (d *dispatcher) Dispatch(ctx context.Context, companyID string, effects []sideEffect) {
	if len(effects) == 0 {
		return
	}
	var recipients []string
	loaded := false

	for _, effect := range effects {
		entityID := ""
		if inc := effect.Incident; inc != nil {
			if err := d.incidents.CreateIncident(ctx, *inc); err != nil {
				d.LogError(ctx, err, "Failed to record incident",
					slog.String("company_id", companyID),
					slog.String("worker_id", inc.WorkerID),
					slog.String("incident_type", string(inc.Type)))
				continue
			}
			entityID = inc.IncidentID
		}

		n := effect.Notice
		if n == nil {
			continue
		}
		if n.EntityID != "" {
			entityID = n.EntityID
		}
		if !loaded {
			recipients = d.recipients(ctx, companyID)
			loaded = true
		}
		d.notify(ctx, companyID, recipients, *n, entityID)
	}
}

// recipients returns the company's administrators, each listed once.
func (d *dispatcher) recipients(ctx context.Context, companyID string) []string {
	admins, err := d.memberships.ListCompanyAdministrators(ctx, companyID)
	if err != nil {
		d.LogError(ctx, err, "Failed to list notification recipients", slog.String("company_id", companyID))
		return nil
	}
	seen := make(map[string]struct{}, len(admins))
	out := make([]string, 0, len(admins))
	for _, m := range admins {
		if _, dup := seen[m.WorkerID]; dup {
			continue
		}
		seen[m.WorkerID] = struct{}{}
		out = append(out, m.WorkerID)
	}
	return out
}

func (d *dispatcher) notify(ctx context.Context, companyID string, recipients []string, n notice, entityID string) {
	already := map[string]struct{}{}
	if n.Dedup && entityID != "" {
		notified, err := d.notifications.ListNotifiedRecipients(ctx, companyID, n.EntityType, entityID)
		if err != nil {
			d.LogError(ctx, err, "Failed to check notification dedup, skipping notice",
				slog.String("entity_type", n.EntityType),
				slog.String("entity_id", entityID))
			return
		}
		for _, r := range notified {
			already[r] = struct{}{}
		}
	}

	var entityType, entityRef *string
	if entityID != "" {
		entityType, entityRef = &n.EntityType, &entityID
	}
	now := d.clock.Now()
	for _, recipient := range recipients {
		if _, skip := already[recipient]; skip {
			continue
		}
		err := d.notifications.CreateNotification(ctx, domain.Notification{
			NotificationID: uuid.NewString(),
			CompanyID:      companyID,
			RecipientID:    recipient,
			Title:          n.Title,
			Message:        n.Message,
			Severity:       n.Severity,
			EntityType:     entityType,
			EntityID:       entityRef,
			CreatedAt:      now,
		})
		if errors.Is(err, apperrors.ErrDuplicate) {
			// Lost a race with a concurrent dispatch for the same entity.
			d.LogDebug(ctx, "Recipient already notified",
				slog.String("entity_id", entityID),
				slog.String("recipient_id", recipient))
			continue
		}
		if err != nil {
			d.LogError(ctx, err, "Failed to create notification",
				slog.String("company_id", companyID),
				slog.String("recipient_id", recipient))
		}
	}
}

// newIncident builds an incident for the worker dated with the policy date.
func newIncident(workerID, companyID string, kind domain.IncidentType, severity domain.Severity, date, now time.Time, description string) *domain.Incident {
	return &domain.Incident{
		IncidentID:  uuid.NewString(),
		WorkerID:    workerID,
		CompanyID:   companyID,
		Type:        kind,
		Severity:    severity,
		Date:        date,
		Description: description,
		CreatedAt:   now,
	}
}

// incidentEffect raises an incident and alerts administrators about it.
func incidentEffect(inc *domain.Incident, title string) sideEffect {
	return sideEffect{
		Incident: inc,
		Notice: &notice{
			EntityType: domain.EntityIncident,
			Title:      title,
			Message:    inc.Description,
			Severity:   inc.Severity,
		},
	}
}
