package dto

import (
	"time"

	"github.com/SscSPs/time_clock_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// --- Session DTOs ---

// SessionResponse is a work session as returned to clients.
type SessionResponse struct {
	SessionID    string               `json:"session_id"`
	WorkerID     string               `json:"worker_id"`
	CompanyID    string               `json:"company_id"`
	ClockInTime  time.Time            `json:"clock_in_time"`
	ClockOutTime *time.Time           `json:"clock_out_time,omitempty"`
	IsActive     bool                 `json:"is_active"`
	Status       domain.SessionStatus `json:"status"`
	ReviewStatus *domain.ReviewStatus `json:"review_status,omitempty"`
}

// ToSessionResponse converts domain.WorkSession to DTO.
func ToSessionResponse(s *domain.WorkSession) SessionResponse {
	return SessionResponse{
		SessionID:    s.SessionID,
		WorkerID:     s.WorkerID,
		CompanyID:    s.CompanyID,
		ClockInTime:  s.ClockInTime,
		ClockOutTime: s.ClockOutTime,
		IsActive:     s.IsActive,
		Status:       s.Status,
		ReviewStatus: s.ReviewStatus,
	}
}

// SessionSummaryResponse is a session with its worked time. Durations are in seconds.
type SessionSummaryResponse struct {
	SessionResponse
	GrossSeconds int64           `json:"gross_seconds"`
	BreakSeconds int64           `json:"break_seconds"`
	NetSeconds   int64           `json:"net_seconds"`
	NetHours     decimal.Decimal `json:"net_hours" swaggertype:"string"`
}

// ListSessionsResponse wraps a worker's sessions and their total.
type ListSessionsResponse struct {
	Sessions      []SessionSummaryResponse `json:"sessions"`
	TotalNetHours decimal.Decimal          `json:"total_net_hours" swaggertype:"string"`
}

// ToListSessionsResponse converts session summaries to DTO.
func ToListSessionsResponse(summaries []domain.SessionSummary, total decimal.Decimal) ListSessionsResponse {
	list := make([]SessionSummaryResponse, len(summaries))
	for i := range summaries {
		s := &summaries[i]
		list[i] = SessionSummaryResponse{
			SessionResponse: ToSessionResponse(&s.Session),
			GrossSeconds:    int64(s.GrossDuration / time.Second),
			BreakSeconds:    int64(s.BreakDuration / time.Second),
			NetSeconds:      int64(s.NetDuration / time.Second),
			NetHours:        s.NetHours,
		}
	}
	return ListSessionsResponse{Sessions: list, TotalNetHours: total}
}

// --- Incident DTOs ---

// IncidentResponse defines data returned for an incident.
type IncidentResponse struct {
	IncidentID  string              `json:"incident_id"`
	WorkerID    string              `json:"worker_id"`
	CompanyID   string              `json:"company_id"`
	Type        domain.IncidentType `json:"type"`
	Severity    domain.Severity     `json:"severity"`
	Date        string              `json:"date"` // YYYY-MM-DD
	Description string              `json:"description"`
	CreatedAt   time.Time           `json:"created_at"`
}

// ListIncidentsResponse wraps a list of incidents.
type ListIncidentsResponse struct {
	Incidents []IncidentResponse `json:"incidents"`
}

// ToListIncidentsResponse converts incidents to DTO.
func ToListIncidentsResponse(incidents []domain.Incident) ListIncidentsResponse {
	list := make([]IncidentResponse, len(incidents))
	for i, inc := range incidents {
		list[i] = IncidentResponse{
			IncidentID:  inc.IncidentID,
			WorkerID:    inc.WorkerID,
			CompanyID:   inc.CompanyID,
			Type:        inc.Type,
			Severity:    inc.Severity,
			Date:        inc.Date.Format(time.DateOnly),
			Description: inc.Description,
			CreatedAt:   inc.CreatedAt,
		}
	}
	return ListIncidentsResponse{Incidents: list}
}

// --- Notification DTOs ---

// ListNotificationsParams are the query parameters of the inbox.
type ListNotificationsParams struct {
	Limit     int     `form:"limit" binding:"omitempty,min=1,max=100"`
	NextToken *string `form:"next_token"`
}

// NotificationResponse defines data returned for a notification.
type NotificationResponse struct {
	NotificationID string          `json:"notification_id"`
	CompanyID      string          `json:"company_id"`
	Title          string          `json:"title"`
	Message        string          `json:"message"`
	Severity       domain.Severity `json:"severity"`
	EntityType     *string         `json:"entity_type,omitempty"`
	EntityID       *string         `json:"entity_id,omitempty"`
	ReadAt         *time.Time      `json:"read_at,omitempty"`
	CreatedAt      time.Time       `json:"created_at"`
}

// ListNotificationsResponse is one page of the inbox.
type ListNotificationsResponse struct {
	Notifications []NotificationResponse `json:"notifications"`
	NextToken     *string                `json:"next_token,omitempty"`
}

// ToListNotificationsResponse converts a page of notifications to DTO.
func ToListNotificationsResponse(ns []domain.Notification, nextToken *string) ListNotificationsResponse {
	list := make([]NotificationResponse, len(ns))
	for i, n := range ns {
		list[i] = NotificationResponse{
			NotificationID: n.NotificationID,
			CompanyID:      n.CompanyID,
			Title:          n.Title,
			Message:        n.Message,
			Severity:       n.Severity,
			EntityType:     n.EntityType,
			EntityID:       n.EntityID,
			ReadAt:         n.ReadAt,
			CreatedAt:      n.CreatedAt,
		}
	}
	return ListNotificationsResponse{Notifications: list, NextToken: nextToken}
}
