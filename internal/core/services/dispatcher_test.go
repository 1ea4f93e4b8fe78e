package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SscSPs/time_clock_app/internal/core/domain"
)

func newTestDispatcher(store *memStore) *dispatcher {
	clock := &fixedClock{now: time.Date(2026, 10, 14, 9, 0, 0, 0, time.UTC)}
	return newDispatcher(store, store, store, clock)
}

func geofenceNotice(entityID string) sideEffect {
	return sideEffect{Notice: &notice{
		EntityType: domain.EntityGeofenceViolation,
		EntityID:   entityID,
		Title:      "Clock action outside geofence",
		Severity:   domain.SeverityMedium,
		Dedup:      true,
	}}
}

func TestDispatchDedupsNoticesPerEntity(t *testing.T) {
	store := newMemStore()
	store.memberships = []domain.Membership{
		{WorkerID: "owner", CompanyID: testCompanyID, Role: domain.RoleOwner},
		{WorkerID: "manager", CompanyID: testCompanyID, Role: domain.RoleManager},
		{WorkerID: "worker", CompanyID: testCompanyID, Role: domain.RoleWorker},
	}
	d := newTestDispatcher(store)
	entity := domain.DailyEntityID("worker", time.Date(2026, 10, 14, 0, 0, 0, 0, time.UTC), dedupGeofenceViolation)

	d.Dispatch(context.Background(), testCompanyID, []sideEffect{geofenceNotice(entity)})
	d.Dispatch(context.Background(), testCompanyID, []sideEffect{geofenceNotice(entity)})

	require.Len(t, store.notifications, 2)
	recipients := []string{store.notifications[0].RecipientID, store.notifications[1].RecipientID}
	assert.ElementsMatch(t, []string{"owner", "manager"}, recipients)

	// A new administrator still gets the alert once.
	store.memberships = append(store.memberships, domain.Membership{WorkerID: "admin", CompanyID: testCompanyID, Role: domain.RoleAdmin})
	d.Dispatch(context.Background(), testCompanyID, []sideEffect{geofenceNotice(entity)})
	assert.Len(t, store.notifications, 3)
}

func TestDispatchIncidentNoticesPointAtIncident(t *testing.T) {
	store := newMemStore()
	store.memberships = []domain.Membership{{WorkerID: "owner", CompanyID: testCompanyID, Role: domain.RoleOwner}}
	d := newTestDispatcher(store)

	now := time.Date(2026, 10, 14, 9, 0, 0, 0, time.UTC)
	inc := newIncident("worker", testCompanyID, domain.IncidentMissingCheckin, domain.SeverityMedium, dateOf(now), now, "exit attempted without an open session")
	again := newIncident("worker", testCompanyID, domain.IncidentMissingCheckin, domain.SeverityMedium, dateOf(now), now, "exit attempted without an open session")
	d.Dispatch(context.Background(), testCompanyID, []sideEffect{
		incidentEffect(inc, "Possible missing check-in"),
		incidentEffect(again, "Possible missing check-in"),
	})

	require.Len(t, store.incidents, 2)
	require.Len(t, store.notifications, 2, "each incident gets its own notice")
	n := store.notifications[0]
	require.NotNil(t, n.EntityType)
	assert.Equal(t, domain.EntityIncident, *n.EntityType)
	require.NotNil(t, n.EntityID)
	assert.Equal(t, inc.IncidentID, *n.EntityID)
	assert.Equal(t, inc.Description, n.Message)
}

func TestDispatchToleratesConcurrentNotice(t *testing.T) {
	store := newMemStore()
	store.memberships = []domain.Membership{
		{WorkerID: "owner", CompanyID: testCompanyID, Role: domain.RoleOwner},
		{WorkerID: "manager", CompanyID: testCompanyID, Role: domain.RoleManager},
	}
	d := newTestDispatcher(store)
	d.Dispatch(context.Background(), testCompanyID, []sideEffect{geofenceNotice("entity-1")})

	// A concurrent dispatch that read the dedup set before the first one wrote it.
	store.staleDedup = true
	d.Dispatch(context.Background(), testCompanyID, []sideEffect{geofenceNotice("entity-1")})

	assert.Len(t, store.notifications, 2)
}

func TestDispatchSkipsNoticeWhenDedupCheckFails(t *testing.T) {
	store := newMemStore()
	store.memberships = []domain.Membership{{WorkerID: "owner", CompanyID: testCompanyID, Role: domain.RoleOwner}}
	store.notifiedErr = errors.New("statement timeout")
	d := newTestDispatcher(store)

	d.Dispatch(context.Background(), testCompanyID, []sideEffect{geofenceNotice("entity-1")})
	assert.Empty(t, store.notifications)
}

func TestDispatchWithoutAdministrators(t *testing.T) {
	store := newMemStore()
	d := newTestDispatcher(store)
	now := time.Date(2026, 10, 14, 9, 0, 0, 0, time.UTC)

	d.Dispatch(context.Background(), testCompanyID, []sideEffect{
		incidentEffect(newIncident("worker", testCompanyID, domain.IncidentOther, domain.SeverityHigh, now, now, "x"), "Other"),
	})
	assert.Len(t, store.incidents, 1)
	assert.Empty(t, store.notifications)
}
