package handlers

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/SscSPs/time_clock_app/internal/apperrors"
	portssvc "github.com/SscSPs/time_clock_app/internal/core/ports/services"
	"github.com/SscSPs/time_clock_app/internal/dto"
	"github.com/SscSPs/time_clock_app/internal/middleware"
	"github.com/SscSPs/time_clock_app/internal/utils/worktime"
	"github.com/gin-gonic/gin"
)

// attendanceHandler serves session history, incidents and the notification inbox.
type attendanceHandler struct {
	attendanceService portssvc.AttendanceSvcFacade
}

func newAttendanceHandler(svc portssvc.AttendanceSvcFacade) *attendanceHandler {
	return &attendanceHandler{attendanceService: svc}
}

// RegisterAttendanceRoutes registers the attendance query routes under rg.
func RegisterAttendanceRoutes(rg *gin.RouterGroup, svc portssvc.AttendanceSvcFacade) {
	h := newAttendanceHandler(svc)

	companies := rg.Group("/companies/:company_id")
	{
		companies.GET("/workers/:worker_id/sessions", h.listWorkerSessions)
		companies.GET("/incidents", h.listIncidents)
	}

	notifications := rg.Group("/notifications")
	{
		notifications.GET("", h.listNotifications)
		notifications.POST("/:notification_id/read", h.markNotificationRead)
	}
}

// listWorkerSessions godoc
// @Summary List a worker's sessions
// @Description Returns sessions clocked in within [from, to) with gross, break and net durations.
// @Description Available to the worker and to company administrators. The range may not exceed 93 days.
// @Tags attendance
// @Produce  json
// @Param   company_id path string true "Company ID"
// @Param   worker_id path string true "Worker ID"
// @Param   from query string true "Range start (RFC3339 or YYYY-MM-DD)"
// @Param   to query string true "Range end, exclusive (RFC3339 or YYYY-MM-DD)"
// @Success 200 {object} dto.ListSessionsResponse
// @Failure 400 {object} dto.ErrorResponse "Invalid range"
// @Failure 401 {object} dto.ErrorResponse "Not authenticated"
// @Failure 403 {object} dto.ErrorResponse "Forbidden"
// @Failure 500 {object} dto.ErrorResponse "Storage error"
// @Security BearerAuth
// @Router /companies/{company_id}/workers/{worker_id}/sessions [get]
func (h *attendanceHandler) listWorkerSessions(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	workerID := c.Param("worker_id")

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		respondUnauthenticated(c, logger)
		return
	}
	companyID, ok := uuidParam(c, logger, "company_id")
	if !ok {
		return
	}

	from, err := parseQueryTime(c.Query("from"))
	if err != nil {
		respondError(c, logger, apperrors.NewValidationFailedError("invalid 'from': "+err.Error()))
		return
	}
	to, err := parseQueryTime(c.Query("to"))
	if err != nil {
		respondError(c, logger, apperrors.NewValidationFailedError("invalid 'to': "+err.Error()))
		return
	}

	logger = logger.With(slog.String("company_id", companyID), slog.String("worker_id", workerID))

	summaries, err := h.attendanceService.ListWorkerSessions(c.Request.Context(), userID, companyID, workerID, from, to)
	if err != nil {
		respondError(c, logger, err)
		return
	}

	logger.Info("Sessions listed successfully", slog.Int("count", len(summaries)))
	c.JSON(http.StatusOK, dto.ToListSessionsResponse(summaries, worktime.TotalNetHours(summaries)))
}

// listIncidents godoc
// @Summary List incidents of a company
// @Description Returns attendance incidents, optionally restricted to one date. Administrators only.
// @Tags attendance
// @Produce  json
// @Param   company_id path string true "Company ID"
// @Param   date query string false "Incident date (YYYY-MM-DD)"
// @Success 200 {object} dto.ListIncidentsResponse
// @Failure 400 {object} dto.ErrorResponse "Invalid date"
// @Failure 401 {object} dto.ErrorResponse "Not authenticated"
// @Failure 403 {object} dto.ErrorResponse "Forbidden"
// @Failure 500 {object} dto.ErrorResponse "Storage error"
// @Security BearerAuth
// @Router /companies/{company_id}/incidents [get]
func (h *attendanceHandler) listIncidents(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		respondUnauthenticated(c, logger)
		return
	}
	companyID, ok := uuidParam(c, logger, "company_id")
	if !ok {
		return
	}

	var date *time.Time
	if raw := c.Query("date"); raw != "" {
		d, err := time.Parse(time.DateOnly, raw)
		if err != nil {
			respondError(c, logger, apperrors.NewValidationFailedError("date must be YYYY-MM-DD"))
			return
		}
		date = &d
	}

	incidents, err := h.attendanceService.ListIncidents(c.Request.Context(), userID, companyID, date)
	if err != nil {
		respondError(c, logger, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToListIncidentsResponse(incidents))
}

// listNotifications godoc
// @Summary List my notifications
// @Description Returns the caller's notifications, newest first, with cursor pagination.
// @Tags notifications
// @Produce  json
// @Param   limit query int false "Page size (1-100, default 20)"
// @Param   next_token query string false "Cursor from the previous page"
// @Success 200 {object} dto.ListNotificationsResponse
// @Failure 400 {object} dto.ErrorResponse "Invalid parameters"
// @Failure 401 {object} dto.ErrorResponse "Not authenticated"
// @Failure 500 {object} dto.ErrorResponse "Storage error"
// @Security BearerAuth
// @Router /notifications [get]
func (h *attendanceHandler) listNotifications(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		respondUnauthenticated(c, logger)
		return
	}

	var params dto.ListNotificationsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		respondBindError(c, logger, err)
		return
	}

	items, next, err := h.attendanceService.ListNotifications(c.Request.Context(), userID, params.Limit, params.NextToken)
	if err != nil {
		respondError(c, logger, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToListNotificationsResponse(items, next))
}

// markNotificationRead godoc
// @Summary Mark a notification as read
// @Tags notifications
// @Param   notification_id path string true "Notification ID"
// @Success 204 "No Content"
// @Failure 401 {object} dto.ErrorResponse "Not authenticated"
// @Failure 404 {object} dto.ErrorResponse "Notification not found"
// @Failure 500 {object} dto.ErrorResponse "Storage error"
// @Security BearerAuth
// @Router /notifications/{notification_id}/read [post]
func (h *attendanceHandler) markNotificationRead(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		respondUnauthenticated(c, logger)
		return
	}

	notificationID, ok := uuidParam(c, logger, "notification_id")
	if !ok {
		return
	}

	if err := h.attendanceService.MarkNotificationRead(c.Request.Context(), userID, notificationID); err != nil {
		respondError(c, logger, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// parseQueryTime accepts RFC3339 timestamps or plain dates (midnight UTC).
func parseQueryTime(raw string) (time.Time, error) {
	if len(raw) == len(time.DateOnly) {
		return time.Parse(time.DateOnly, raw)
	}
	return time.Parse(time.RFC3339, raw)
}
