package domain

import (
	"fmt"
	"strings"
	"time"
)

// Action is a clock action requested by a worker.
type Action string

const (
	ActionIn         Action = "in"
	ActionOut        Action = "out"
	ActionBreakStart Action = "break_start"
	ActionBreakEnd   Action = "break_end"
)

// ParseAction validates a raw action string.
func ParseAction(s string) (Action, error) {
	switch a := Action(strings.TrimSpace(s)); a {
	case ActionIn, ActionOut, ActionBreakStart, ActionBreakEnd:
		return a, nil
	default:
		return "", fmt.Errorf("unknown clock action %q", s)
	}
}

// EventType maps the action to the time event it records.
func (a Action) EventType() EventType {
	switch a {
	case ActionIn:
		return EventClockIn
	case ActionOut:
		return EventClockOut
	case ActionBreakStart:
		return EventPauseStart
	case ActionBreakEnd:
		return EventPauseEnd
	}
	panic("unhandled clock action " + string(a))
}

// RequiresSession reports whether the action needs an open session.
func (a Action) RequiresSession() bool {
	return a != ActionIn
}

// EventType is the kind of an immutable time event row.
type EventType string

const (
	EventClockIn    EventType = "clock_in"
	EventClockOut   EventType = "clock_out"
	EventPauseStart EventType = "pause_start"
	EventPauseEnd   EventType = "pause_end"
)

// Label is the human label used in notifications.
func (e EventType) Label() string {
	switch e {
	case EventClockIn:
		return "entry"
	case EventClockOut:
		return "exit"
	case EventPauseStart:
		return "break start"
	case EventPauseEnd:
		return "break end"
	}
	return string(e)
}

// Source is the channel a clock action arrived through.
type Source string

const (
	SourceWeb       Source = "web"
	SourceMobile    Source = "mobile"
	SourceKiosk     Source = "kiosk"
	SourceFastclock Source = "fastclock"
)

// NormalizeSource lower-cases and trims a client-supplied channel, using def when empty.
// The value is not checked against the accepted set; the store enforces that.
func NormalizeSource(raw string, def Source) Source {
	s := strings.ToLower(strings.TrimSpace(raw))
	if s == "" {
		return def
	}
	return Source(s)
}

// TimeEvent is one immutable, append-only clock action record.
type TimeEvent struct {
	EventID        string    `json:"eventID" db:"event_id"`
	WorkerID       string    `json:"workerID" db:"worker_id"`
	CompanyID      string    `json:"companyID" db:"company_id"`
	SessionID      *string   `json:"sessionID,omitempty" db:"session_id"`
	EventType      EventType `json:"eventType" db:"event_type"`
	OccurredAt     time.Time `json:"occurredAt" db:"occurred_at"`
	Latitude       *float64  `json:"latitude,omitempty" db:"latitude"`
	Longitude      *float64  `json:"longitude,omitempty" db:"longitude"`
	DistanceMeters *float64  `json:"distanceMeters,omitempty" db:"distance_meters"`
	WithinGeofence *bool     `json:"withinGeofence,omitempty" db:"within_geofence"`
	PointID        *string   `json:"pointID,omitempty" db:"point_id"`
	DeviceRecordID *string   `json:"deviceRecordID,omitempty" db:"device_record_id"`
	Source         Source    `json:"source" db:"source"`
	Notes          *string   `json:"notes,omitempty" db:"notes"`
	PhotoURL       *string   `json:"photoURL,omitempty" db:"photo_url"`
	CreatedAt      time.Time `json:"createdAt" db:"created_at"`
}
