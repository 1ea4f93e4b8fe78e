package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SscSPs/time_clock_app/internal/apperrors"
	"github.com/SscSPs/time_clock_app/internal/core/domain"
)

func TestAttendanceSessionsAfterWorkday(t *testing.T) {
	store := newMemStore()
	store.companies[testCompanyID] = domain.Company{CompanyID: testCompanyID, Status: domain.CompanyActive, Timezone: "UTC"}
	store.memberships = []domain.Membership{
		{WorkerID: testWorker, CompanyID: testCompanyID, Role: domain.RoleWorker},
		{WorkerID: "colleague", CompanyID: testCompanyID, Role: domain.RoleWorker},
		{WorkerID: testAdmin, CompanyID: testCompanyID, Role: domain.RoleAdmin},
	}
	clock := &fixedClock{now: time.Date(2026, 10, 14, 9, 0, 0, 0, time.UTC)}
	clockSvc := NewClockService(DefaultClockConfig(), clock, store.provider())
	attendance := NewAttendanceService(clock, store.provider())
	ctx := context.Background()

	steps := []struct {
		action domain.Action
		after  time.Duration
	}{
		{domain.ActionIn, 0},
		{domain.ActionBreakStart, 3 * time.Hour},
		{domain.ActionBreakEnd, 30 * time.Minute},
		{domain.ActionOut, 4*time.Hour + 30*time.Minute},
	}
	for _, step := range steps {
		clock.advance(step.after)
		_, err := clockSvc.ProcessClockAction(ctx, domain.ClockCommand{
			Actor:    domain.Actor{SubjectID: testWorker},
			Action:   step.action,
			DeviceID: testDevice,
		})
		require.NoError(t, err, step.action)
	}

	from := time.Date(2026, 10, 14, 0, 0, 0, 0, time.UTC)
	to := from.AddDate(0, 0, 1)

	summaries, err := attendance.ListWorkerSessions(ctx, testWorker, testCompanyID, testWorker, from, to)
	require.NoError(t, err)
	require.Len(t, summaries, 1)
	assert.Equal(t, 8*time.Hour, summaries[0].GrossDuration)
	assert.Equal(t, 30*time.Minute, summaries[0].BreakDuration)
	assert.Equal(t, "7.5", summaries[0].NetHours.String())

	_, err = attendance.ListWorkerSessions(ctx, "colleague", testCompanyID, testWorker, from, to)
	assert.ErrorIs(t, err, apperrors.ErrForbidden)

	_, err = attendance.ListWorkerSessions(ctx, testAdmin, testCompanyID, testWorker, from, to)
	assert.NoError(t, err)

	_, err = attendance.ListWorkerSessions(ctx, testWorker, testCompanyID, testWorker, to, from)
	assert.ErrorIs(t, err, apperrors.ErrValidation)

	_, err = attendance.ListWorkerSessions(ctx, testWorker, testCompanyID, testWorker, from, from.AddDate(0, 4, 0))
	assert.ErrorIs(t, err, apperrors.ErrValidation)

	view, err := attendance.GetWorkerStatus(ctx, domain.Actor{SubjectID: testWorker}, "")
	require.NoError(t, err)
	assert.Equal(t, domain.StatusOff, view.Status)
	assert.Nil(t, view.ActiveSession)
	require.NotNil(t, view.LastEventType)
	assert.Equal(t, domain.EventClockOut, *view.LastEventType)
}

func TestAttendanceIncidentsAndNotifications(t *testing.T) {
	store := newMemStore()
	store.companies[testCompanyID] = domain.Company{CompanyID: testCompanyID, Status: domain.CompanyActive}
	store.memberships = []domain.Membership{
		{WorkerID: testWorker, CompanyID: testCompanyID, Role: domain.RoleWorker},
		{WorkerID: testAdmin, CompanyID: testCompanyID, Role: domain.RoleAdmin},
	}
	clock := &fixedClock{now: time.Date(2026, 10, 14, 9, 0, 0, 0, time.UTC)}
	clockSvc := NewClockService(DefaultClockConfig(), clock, store.provider())
	attendance := NewAttendanceService(clock, store.provider())
	ctx := context.Background()

	_, err := clockSvc.ProcessClockAction(ctx, domain.ClockCommand{
		Actor:    domain.Actor{SubjectID: testWorker},
		Action:   domain.ActionOut,
		DeviceID: testDevice,
	})
	require.Error(t, err)

	_, err = attendance.ListIncidents(ctx, testWorker, testCompanyID, nil)
	assert.ErrorIs(t, err, apperrors.ErrForbidden)

	day := time.Date(2026, 10, 14, 0, 0, 0, 0, time.UTC)
	incidents, err := attendance.ListIncidents(ctx, testAdmin, testCompanyID, &day)
	require.NoError(t, err)
	require.Len(t, incidents, 1)
	assert.Equal(t, domain.IncidentMissingCheckin, incidents[0].Type)

	nextDay := day.AddDate(0, 0, 1)
	incidents, err = attendance.ListIncidents(ctx, testAdmin, testCompanyID, &nextDay)
	require.NoError(t, err)
	assert.Empty(t, incidents)

	inbox, _, err := attendance.ListNotifications(ctx, testAdmin, 0, nil)
	require.NoError(t, err)
	require.Len(t, inbox, 1)

	require.NoError(t, attendance.MarkNotificationRead(ctx, testAdmin, inbox[0].NotificationID))
	assert.NotNil(t, store.notifications[0].ReadAt)

	err = attendance.MarkNotificationRead(ctx, testWorker, inbox[0].NotificationID)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}
