package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/SscSPs/time_clock_app/internal/apperrors"
	"github.com/SscSPs/time_clock_app/internal/dto"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// Codes for failures that are not clock rejections.
const (
	codeNotFound = "NOT_FOUND"
	codeConflict = "CONFLICT"
)

// respondError renders err as the standard failure body. Clock rejections keep
// their stable code and reason; anything unrecognized is a storage error.
func respondError(c *gin.Context, logger *slog.Logger, err error) {
	if ce, ok := apperrors.AsClockError(err); ok {
		logger.Info("Request rejected", slog.String("code", string(ce.Code)), slog.String("reason", ce.Reason))
		c.JSON(ce.HTTPStatus(), dto.NewErrorResponse(string(ce.Code), ce.Reason, ce.Message))
		return
	}

	var appErr *apperrors.AppError
	switch {
	case errors.Is(err, apperrors.ErrForbidden):
		logger.Warn("Request forbidden", slog.String("error", err.Error()))
		c.JSON(http.StatusForbidden, dto.NewErrorResponse(string(apperrors.CodeForbidden), "", "Forbidden"))
	case errors.Is(err, apperrors.ErrNotFound):
		c.JSON(http.StatusNotFound, dto.NewErrorResponse(codeNotFound, "", messageOf(err, "Resource not found")))
	case errors.Is(err, apperrors.ErrValidation):
		c.JSON(http.StatusBadRequest, dto.NewErrorResponse(string(apperrors.CodeInvalidRequest), "", messageOf(err, "Invalid request")))
	case errors.Is(err, apperrors.ErrDuplicate):
		c.JSON(http.StatusConflict, dto.NewErrorResponse(codeConflict, "", messageOf(err, "Resource already exists")))
	case errors.As(err, &appErr) && appErr.Code > 0 && appErr.Code < http.StatusInternalServerError:
		c.JSON(appErr.Code, dto.NewErrorResponse(string(apperrors.CodeInvalidRequest), "", appErr.Message))
	default:
		logger.Error("Request failed", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, dto.NewErrorResponse(string(apperrors.CodeStorageError), "", "Internal server error"))
	}
}

// respondBindError renders a request that failed binding or validation.
func respondBindError(c *gin.Context, logger *slog.Logger, err error) {
	logger.Warn("Failed to bind request", slog.String("error", err.Error()))
	c.JSON(http.StatusBadRequest, dto.NewErrorResponse(string(apperrors.CodeInvalidRequest), "", "Invalid request format: "+err.Error()))
}

// respondUnauthenticated is used when no actor could be derived from the request.
func respondUnauthenticated(c *gin.Context, logger *slog.Logger) {
	logger.Error("Actor not found in context")
	c.JSON(http.StatusUnauthorized, dto.NewErrorResponse(string(apperrors.CodeNotAuthenticated), "", "Unauthorized"))
}

func messageOf(err error, fallback string) string {
	var appErr *apperrors.AppError
	if errors.As(err, &appErr) && appErr.Message != "" {
		return appErr.Message
	}
	return fallback
}

// uuidParam reads a path parameter that must be a UUID, rendering INVALID_REQUEST otherwise.
func uuidParam(c *gin.Context, logger *slog.Logger, name string) (string, bool) {
	raw := c.Param(name)
	if _, err := uuid.Parse(raw); err != nil {
		logger.Warn("Invalid path parameter", slog.String("param", name), slog.String("value", raw))
		c.JSON(http.StatusBadRequest, dto.NewErrorResponse(string(apperrors.CodeInvalidRequest), "", "invalid "+name))
		return "", false
	}
	return raw, true
}
