package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/SscSPs/time_clock_app/internal/apperrors"
	"github.com/SscSPs/time_clock_app/internal/core/domain"
	portsrepo "github.com/SscSPs/time_clock_app/internal/core/ports/repositories"
	"github.com/SscSPs/time_clock_app/internal/middleware"
)

// BaseService provides common functionality for all services
type BaseService struct {
	Memberships portsrepo.MembershipReader
}

// GetLogger gets the logger from context or returns a default one
func (s *BaseService) GetLogger(ctx context.Context) *slog.Logger {
	logger := middleware.GetLoggerFromCtx(ctx)
	if logger == nil {
		// Return a default logger if not found in context
		return slog.Default()
	}
	return logger
}

// LogError logs an error with consistent formatting
func (s *BaseService) LogError(ctx context.Context, err error, msg string, keyvals ...any) {
	logger := s.GetLogger(ctx)
	args := make([]any, 0, len(keyvals)+1)
	args = append(args, slog.String("error", err.Error()))
	args = append(args, keyvals...)
	logger.Error(msg, args...)
}

// LogWarn logs a degraded but non-fatal condition
func (s *BaseService) LogWarn(ctx context.Context, err error, msg string, keyvals ...any) {
	logger := s.GetLogger(ctx)
	args := make([]any, 0, len(keyvals)+1)
	args = append(args, slog.String("error", err.Error()))
	args = append(args, keyvals...)
	logger.Warn(msg, args...)
}

// LogInfo logs an info message with consistent formatting
func (s *BaseService) LogInfo(ctx context.Context, msg string, keyvals ...any) {
	logger := s.GetLogger(ctx)
	logger.Info(msg, keyvals...)
}

// LogDebug logs a debug message with consistent formatting
func (s *BaseService) LogDebug(ctx context.Context, msg string, keyvals ...any) {
	logger := s.GetLogger(ctx)
	logger.Debug(msg, keyvals...)
}

// AuthorizeMember checks that the user belongs to the company and, when
// adminOnly is set, holds an administrative role.
func (s *BaseService) AuthorizeMember(ctx context.Context, userID, companyID string, adminOnly bool) (*domain.Membership, error) {
	if s.Memberships == nil {
		return nil, fmt.Errorf("%w: no membership reader configured", apperrors.ErrForbidden)
	}
	m, err := s.Memberships.FindMembership(ctx, userID, companyID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("%w: user %s is not a member of company %s", apperrors.ErrForbidden, userID, companyID)
		}
		return nil, fmt.Errorf("failed to check membership: %w", err)
	}
	if adminOnly && !m.Role.IsAdministrative() {
		s.LogDebug(ctx, "Membership role insufficient",
			slog.String("user_id", userID),
			slog.String("company_id", companyID),
			slog.String("role", string(m.Role)))
		return nil, fmt.Errorf("%w: administrative role required", apperrors.ErrForbidden)
	}
	return m, nil
}
