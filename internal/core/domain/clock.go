package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Actor is who performs a clock request. SubjectID comes from a verified bearer
// token; KioskCompanyID is set when a kiosk terminal token authenticated the call.
type Actor struct {
	SubjectID      string
	KioskCompanyID string
}

// IsKiosk reports whether the request came through a kiosk terminal.
func (a Actor) IsKiosk() bool {
	return a.KioskCompanyID != ""
}

// ClockCommand is one clock action as received at the transport boundary.
type ClockCommand struct {
	Actor     Actor
	Action    Action
	Latitude  *float64
	Longitude *float64
	PhotoURL  *string
	DeviceID  string
	Source    string
	PointID   string
	WorkerID  string // kiosk mode only
	CompanyID string // company selector
	Notes     *string
	Reason    *string // justification for clocking on a holiday
}

// ClockOutcome is the result of an accepted clock action.
type ClockOutcome struct {
	EventID        string       `json:"eventID"`
	SessionID      string       `json:"sessionID"`
	Status         WorkerStatus `json:"status"`
	EventType      EventType    `json:"eventType"`
	Timestamp      time.Time    `json:"timestamp"`
	DistanceMeters *float64     `json:"distanceMeters"`
	WithinGeofence *bool        `json:"isWithinGeofence"`
}

// WorkerStatusView is the attendance state shown on worker dashboards.
type WorkerStatusView struct {
	WorkerID      string       `json:"workerID"`
	CompanyID     string       `json:"companyID"`
	Status        WorkerStatus `json:"status"`
	LastEventType *EventType   `json:"lastEventType,omitempty"`
	LastEventAt   *time.Time   `json:"lastEventAt,omitempty"`
	ActiveSession *WorkSession `json:"activeSession,omitempty"`
}

// SessionSummary is a work session with its computed durations.
type SessionSummary struct {
	Session       WorkSession
	GrossDuration time.Duration
	BreakDuration time.Duration
	NetDuration   time.Duration
	NetHours      decimal.Decimal
}
