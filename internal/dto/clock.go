package dto

import (
	"time"

	"github.com/SscSPs/time_clock_app/internal/core/domain"
)

// --- Clock DTOs ---

// ClockRequest is the body of a clock action.
// device_id is validated by the processor so that a missing value yields DEVICE_REQUIRED.
type ClockRequest struct {
	Action    string   `json:"action" binding:"required,clock_action"`
	Latitude  *float64 `json:"latitude" binding:"omitempty,latitude"`
	Longitude *float64 `json:"longitude" binding:"omitempty,longitude"`
	PhotoURL  *string  `json:"photo_url" binding:"omitempty,url,max=2048"`
	DeviceID  string   `json:"device_id" binding:"max=255"`
	Source    string   `json:"source" binding:"max=32"`
	PointID   string   `json:"point_id"`
	WorkerID  string   `json:"worker_id"`  // kiosk mode only
	CompanyID string   `json:"company_id"` // required when the worker has several companies
	Notes     *string  `json:"notes" binding:"omitempty,max=1000"`
	Reason    *string  `json:"reason" binding:"omitempty,max=500"`
}

// ToCommand converts the request into the processor command for actor.
func (r ClockRequest) ToCommand(actor domain.Actor) domain.ClockCommand {
	return domain.ClockCommand{
		Actor:     actor,
		Action:    domain.Action(r.Action),
		Latitude:  r.Latitude,
		Longitude: r.Longitude,
		PhotoURL:  r.PhotoURL,
		DeviceID:  r.DeviceID,
		Source:    r.Source,
		PointID:   r.PointID,
		WorkerID:  r.WorkerID,
		CompanyID: r.CompanyID,
		Notes:     r.Notes,
		Reason:    r.Reason,
	}
}

// ClockResponse is returned for an accepted clock action.
type ClockResponse struct {
	Success          bool                `json:"success"`
	EventID          string              `json:"event_id"`
	SessionID        string              `json:"session_id"`
	Status           domain.WorkerStatus `json:"status"`
	EventType        domain.EventType    `json:"event_type"`
	Timestamp        time.Time           `json:"timestamp"`
	DistanceMeters   *float64            `json:"distance_meters"`
	IsWithinGeofence *bool               `json:"is_within_geofence"`
}

// ToClockResponse converts a processor outcome to its wire form.
func ToClockResponse(o *domain.ClockOutcome) ClockResponse {
	return ClockResponse{
		Success:          true,
		EventID:          o.EventID,
		SessionID:        o.SessionID,
		Status:           o.Status,
		EventType:        o.EventType,
		Timestamp:        o.Timestamp,
		DistanceMeters:   o.DistanceMeters,
		IsWithinGeofence: o.WithinGeofence,
	}
}

// WorkerStatusResponse is the current attendance state of a worker.
type WorkerStatusResponse struct {
	WorkerID      string              `json:"worker_id"`
	CompanyID     string              `json:"company_id"`
	Status        domain.WorkerStatus `json:"status"`
	LastEventType *domain.EventType   `json:"last_event_type,omitempty"`
	LastEventAt   *time.Time          `json:"last_event_at,omitempty"`
	ActiveSession *SessionResponse    `json:"active_session,omitempty"`
}

// ToWorkerStatusResponse converts the derived status view.
func ToWorkerStatusResponse(v *domain.WorkerStatusView) WorkerStatusResponse {
	resp := WorkerStatusResponse{
		WorkerID:      v.WorkerID,
		CompanyID:     v.CompanyID,
		Status:        v.Status,
		LastEventType: v.LastEventType,
		LastEventAt:   v.LastEventAt,
	}
	if v.ActiveSession != nil {
		s := ToSessionResponse(v.ActiveSession)
		resp.ActiveSession = &s
	}
	return resp
}

// ErrorResponse is the body of every failed request.
type ErrorResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
	Reason  string `json:"reason,omitempty"`
	Message string `json:"message,omitempty"`
}

// NewErrorResponse builds a failure body with a machine code.
func NewErrorResponse(code, reason, message string) ErrorResponse {
	return ErrorResponse{Success: false, Error: code, Reason: reason, Message: message}
}
