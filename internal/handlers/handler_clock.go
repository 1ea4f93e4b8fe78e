package handlers

import (
	"log/slog"
	"net/http"

	portssvc "github.com/SscSPs/time_clock_app/internal/core/ports/services"
	"github.com/SscSPs/time_clock_app/internal/dto"
	"github.com/SscSPs/time_clock_app/internal/middleware"
	"github.com/SscSPs/time_clock_app/internal/utils"
	"github.com/gin-gonic/gin"
)

// clockHandler handles clock actions and the worker status query.
type clockHandler struct {
	clockService      portssvc.ClockSvc
	attendanceService portssvc.AttendanceReaderSvc
	analytics         *utils.PosthogClientWrapper
}

func newClockHandler(clockSvc portssvc.ClockSvc, attendanceSvc portssvc.AttendanceReaderSvc, analytics *utils.PosthogClientWrapper) *clockHandler {
	return &clockHandler{clockService: clockSvc, attendanceService: attendanceSvc, analytics: analytics}
}

// RegisterClockRoutes registers the clock endpoints. limit, when non-nil, guards the clock action only.
func RegisterClockRoutes(rg *gin.RouterGroup, clockSvc portssvc.ClockSvc, attendanceSvc portssvc.AttendanceReaderSvc, analytics *utils.PosthogClientWrapper, limit gin.HandlerFunc) {
	h := newClockHandler(clockSvc, attendanceSvc, analytics)

	clock := rg.Group("/clock")
	{
		actionChain := []gin.HandlerFunc{}
		if limit != nil {
			actionChain = append(actionChain, limit)
		}
		actionChain = append(actionChain, h.clockAction)
		clock.POST("", actionChain...)
		clock.GET("/status", h.getStatus)
	}
}

// clockAction godoc
// @Summary Record a clock action
// @Description Validates and applies a clock in, out, break start or break end for the authenticated worker,
// @Description or for worker_id when called from a kiosk terminal (x-api-key).
// @Tags clock
// @Accept  json
// @Produce  json
// @Param   action body dto.ClockRequest true "Clock action"
// @Success 200 {object} dto.ClockResponse
// @Failure 400 {object} dto.ErrorResponse "Invalid request or policy rejection"
// @Failure 401 {object} dto.ErrorResponse "Not authenticated"
// @Failure 403 {object} dto.ErrorResponse "No company, device revoked or limit reached, company suspended"
// @Failure 404 {object} dto.ErrorResponse "Clock point not found"
// @Failure 429 {object} dto.ErrorResponse "Too many requests"
// @Failure 500 {object} dto.ErrorResponse "Storage error"
// @Security BearerAuth
// @Security KioskToken
// @Router /clock [post]
func (h *clockHandler) clockAction(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	actor, ok := middleware.GetActorFromContext(c)
	if !ok {
		respondUnauthenticated(c, logger)
		return
	}

	var req dto.ClockRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, logger, err)
		return
	}

	logger = logger.With(slog.String("action", req.Action), slog.Bool("kiosk", actor.IsKiosk()))
	logger.Info("Received clock action")

	outcome, err := h.clockService.ProcessClockAction(c.Request.Context(), req.ToCommand(actor))
	if err != nil {
		respondError(c, logger, err)
		return
	}

	logger.Info("Clock action recorded",
		slog.String("event_id", outcome.EventID),
		slog.String("status", string(outcome.Status)))
	middleware.PosthogEvent(c, h.analytics, "clock_action", map[string]any{
		"action":     req.Action,
		"event_type": string(outcome.EventType),
		"status":     string(outcome.Status),
	})
	c.JSON(http.StatusOK, dto.ToClockResponse(outcome))
}

// getStatus godoc
// @Summary Get current attendance status
// @Description Returns whether the authenticated worker is working, paused or off, with the open session.
// @Tags clock
// @Produce  json
// @Param   company_id query string false "Company ID (required when the worker belongs to several companies)"
// @Success 200 {object} dto.WorkerStatusResponse
// @Failure 400 {object} dto.ErrorResponse "Company selection required"
// @Failure 401 {object} dto.ErrorResponse "Not authenticated"
// @Failure 403 {object} dto.ErrorResponse "No company"
// @Failure 500 {object} dto.ErrorResponse "Storage error"
// @Security BearerAuth
// @Router /clock/status [get]
func (h *clockHandler) getStatus(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	actor, ok := middleware.GetActorFromContext(c)
	if !ok {
		respondUnauthenticated(c, logger)
		return
	}

	view, err := h.attendanceService.GetWorkerStatus(c.Request.Context(), actor, c.Query("company_id"))
	if err != nil {
		respondError(c, logger, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToWorkerStatusResponse(view))
}
