package domain

import (
	"time"

	"github.com/google/uuid"
)

// IncidentType classifies an attendance anomaly.
type IncidentType string

const (
	IncidentMissingCheckout   IncidentType = "missing_checkout"
	IncidentMissingCheckin    IncidentType = "missing_checkin"
	IncidentGeofenceViolation IncidentType = "geofence_violation"
	IncidentScheduleDeviation IncidentType = "schedule_deviation"
	IncidentOther             IncidentType = "other"
)

// Severity ranks incidents and notifications.
type Severity string

const (
	SeverityLow    Severity = "low"
	SeverityMedium Severity = "medium"
	SeverityHigh   Severity = "high"
)

// Incident records an anomaly that drives administrator review.
type Incident struct {
	IncidentID  string       `json:"incidentID" db:"incident_id"`
	WorkerID    string       `json:"workerID" db:"worker_id"`
	CompanyID   string       `json:"companyID" db:"company_id"`
	Type        IncidentType `json:"type" db:"incident_type"`
	Severity    Severity     `json:"severity" db:"severity"`
	Date        time.Time    `json:"date" db:"incident_date"`
	Description string       `json:"description" db:"description"`
	CreatedAt   time.Time    `json:"createdAt" db:"created_at"`
}

// Entity types notifications can point at.
const (
	EntityIncident          = "incident"
	EntityGeofenceViolation = "geofence_violation"
	EntityScheduleDeviation = "schedule_deviation"
)

// Notification is an alert addressed to one administrator.
type Notification struct {
	NotificationID string     `json:"notificationID" db:"notification_id"`
	CompanyID      string     `json:"companyID" db:"company_id"`
	RecipientID    string     `json:"recipientID" db:"recipient_id"`
	Title          string     `json:"title" db:"title"`
	Message        string     `json:"message" db:"message"`
	Severity       Severity   `json:"severity" db:"severity"`
	EntityType     *string    `json:"entityType,omitempty" db:"entity_type"`
	EntityID       *string    `json:"entityID,omitempty" db:"entity_id"`
	ReadAt         *time.Time `json:"readAt,omitempty" db:"read_at"`
	CreatedAt      time.Time  `json:"createdAt" db:"created_at"`
}

// dedupNamespace seeds the deterministic ids of synthesized dedup entities.
var dedupNamespace = uuid.MustParse("5b0f6a4e-8f3c-4c1e-9a51-3d1f7c2b9e10")

// DailyEntityID synthesizes a stable entity id for (worker, date, kind), so that
// at most one notice per worker per day exists for that kind.
func DailyEntityID(workerID string, date time.Time, kind string) string {
	key := workerID + "|" + date.Format(time.DateOnly) + "|" + kind
	return uuid.NewSHA1(dedupNamespace, []byte(key)).String()
}
