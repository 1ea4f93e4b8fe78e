package handlers_test

import (
	"context"
	"time"

	"github.com/SscSPs/time_clock_app/internal/core/domain"
	portssvc "github.com/SscSPs/time_clock_app/internal/core/ports/services"
	"github.com/stretchr/testify/mock"
)

// --- Mock ClockService ---
type MockClockService struct {
	mock.Mock
}

func (m *MockClockService) ProcessClockAction(ctx context.Context, cmd domain.ClockCommand) (*domain.ClockOutcome, error) {
	args := m.Called(ctx, cmd)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ClockOutcome), args.Error(1)
}

var _ portssvc.ClockSvc = (*MockClockService)(nil)

// --- Mock AttendanceService ---
type MockAttendanceService struct {
	mock.Mock
}

func (m *MockAttendanceService) GetWorkerStatus(ctx context.Context, actor domain.Actor, companySelector string) (*domain.WorkerStatusView, error) {
	args := m.Called(ctx, actor, companySelector)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.WorkerStatusView), args.Error(1)
}

func (m *MockAttendanceService) ListWorkerSessions(ctx context.Context, requesterID, companyID, workerID string, from, to time.Time) ([]domain.SessionSummary, error) {
	args := m.Called(ctx, requesterID, companyID, workerID, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.SessionSummary), args.Error(1)
}

func (m *MockAttendanceService) ListIncidents(ctx context.Context, requesterID, companyID string, date *time.Time) ([]domain.Incident, error) {
	args := m.Called(ctx, requesterID, companyID, date)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Incident), args.Error(1)
}

func (m *MockAttendanceService) ListNotifications(ctx context.Context, recipientID string, limit int, nextToken *string) ([]domain.Notification, *string, error) {
	args := m.Called(ctx, recipientID, limit, nextToken)
	var next *string
	if v := args.Get(1); v != nil {
		next = v.(*string)
	}
	if args.Get(0) == nil {
		return nil, next, args.Error(2)
	}
	return args.Get(0).([]domain.Notification), next, args.Error(2)
}

func (m *MockAttendanceService) MarkNotificationRead(ctx context.Context, recipientID, notificationID string) error {
	args := m.Called(ctx, recipientID, notificationID)
	return args.Error(0)
}

var _ portssvc.AttendanceSvcFacade = (*MockAttendanceService)(nil)

// --- Mock KioskTokenService ---
type MockKioskTokenService struct {
	mock.Mock
}

func (m *MockKioskTokenService) CreateKioskToken(ctx context.Context, requesterID, companyID, name string, expiresIn *time.Duration) (string, *domain.KioskToken, error) {
	args := m.Called(ctx, requesterID, companyID, name, expiresIn)
	if args.Get(1) == nil {
		return args.String(0), nil, args.Error(2)
	}
	return args.String(0), args.Get(1).(*domain.KioskToken), args.Error(2)
}

func (m *MockKioskTokenService) ListKioskTokens(ctx context.Context, requesterID, companyID string) ([]domain.KioskToken, error) {
	args := m.Called(ctx, requesterID, companyID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.KioskToken), args.Error(1)
}

func (m *MockKioskTokenService) RevokeKioskToken(ctx context.Context, requesterID, companyID, tokenID string) error {
	args := m.Called(ctx, requesterID, companyID, tokenID)
	return args.Error(0)
}

func (m *MockKioskTokenService) ValidateKioskToken(ctx context.Context, rawToken string) (*domain.KioskToken, error) {
	args := m.Called(ctx, rawToken)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.KioskToken), args.Error(1)
}

var _ portssvc.KioskTokenSvc = (*MockKioskTokenService)(nil)
