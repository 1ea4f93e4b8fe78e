package services

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"github.com/SscSPs/time_clock_app/internal/apperrors"
	"github.com/SscSPs/time_clock_app/internal/core/domain"
	portsrepo "github.com/SscSPs/time_clock_app/internal/core/ports/repositories"
)

// memStore is an in-memory store behind every repository port. It enforces
// the constraints the processor relies on: one active session per worker and
// company, the accepted set of event sources and one notification per
// recipient and entity. Transactions roll back the rows they wrote and hold
// worker locks until they end.
type memStore struct {
	mu          sync.Mutex
	workerLocks map[string]*sync.Mutex

	companies     map[string]domain.Company
	memberships   []domain.Membership
	points        map[string]domain.ClockPoint
	bindings      []domain.DeviceBinding
	records       []domain.DeviceRecord
	settings      map[string]domain.ComplianceSettings
	companyRules  map[string]domain.DayRules
	workerRules   map[string]domain.DayRules
	holidays      map[string]bool
	specialDays   map[string]domain.SpecialDay
	shifts        map[string]domain.ScheduledShift
	sessions      []domain.WorkSession
	events        []domain.TimeEvent
	incidents     []domain.Incident
	notifications []domain.Notification
	tokens        map[string]domain.KioskToken

	insertErr   error
	notifiedErr error
	// staleDedup makes the dedup lookup report no recipients.
	staleDedup bool
	// hideActive makes the next n active-session reads miss.
	hideActive int
	locks      int
}

func newMemStore() *memStore {
	return &memStore{
		companies:    map[string]domain.Company{},
		points:       map[string]domain.ClockPoint{},
		settings:     map[string]domain.ComplianceSettings{},
		companyRules: map[string]domain.DayRules{},
		workerRules:  map[string]domain.DayRules{},
		holidays:     map[string]bool{},
		specialDays:  map[string]domain.SpecialDay{},
		shifts:       map[string]domain.ScheduledShift{},
		tokens:       map[string]domain.KioskToken{},
		workerLocks:  map[string]*sync.Mutex{},
	}
}

func (s *memStore) provider() portsrepo.RepositoryProvider {
	return portsrepo.RepositoryProvider{
		UnitOfWork:     s,
		CompanyRepo:    s,
		ClockPointRepo: s,
		DeviceRepo:     s,
		PolicyRepo:     s,
		SessionRepo:    s,
		TimeEventRepo:  s,
		IncidentRepo:   s,
		NotifyRepo:     s,
		KioskTokenRepo: s,
	}
}

func dayKey(parts ...string) string {
	key := ""
	for i, p := range parts {
		if i > 0 {
			key += "|"
		}
		key += p
	}
	return key
}

func dateKey(t time.Time) string { return t.Format(time.DateOnly) }

// --- unit of work ---

type memTxKey struct{}

// memTx collects the unlock funcs of worker locks taken inside a transaction.
type memTx struct {
	unlocks []func()
}

// memSnapshot holds the rows a transaction may write.
type memSnapshot struct {
	bindings []domain.DeviceBinding
	records  []domain.DeviceRecord
	sessions []domain.WorkSession
	events   []domain.TimeEvent
}

func (s *memStore) snapshot() memSnapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return memSnapshot{
		bindings: append([]domain.DeviceBinding(nil), s.bindings...),
		records:  append([]domain.DeviceRecord(nil), s.records...),
		sessions: append([]domain.WorkSession(nil), s.sessions...),
		events:   append([]domain.TimeEvent(nil), s.events...),
	}
}

func (s *memStore) restore(snap memSnapshot) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.bindings, s.records, s.sessions, s.events = snap.bindings, snap.records, snap.sessions, snap.events
}

func (s *memStore) WithinTx(ctx context.Context, fn func(ctx context.Context) error) error {
	if _, nested := ctx.Value(memTxKey{}).(*memTx); nested {
		return s.Savepoint(ctx, fn)
	}
	tx := &memTx{}
	defer func() {
		for _, unlock := range tx.unlocks {
			unlock()
		}
	}()
	return s.Savepoint(context.WithValue(ctx, memTxKey{}, tx), fn)
}

func (s *memStore) Savepoint(ctx context.Context, fn func(ctx context.Context) error) error {
	snap := s.snapshot()
	if err := fn(ctx); err != nil {
		s.restore(snap)
		return err
	}
	return nil
}

// --- companies ---

func (s *memStore) FindCompanyByID(_ context.Context, companyID string) (*domain.Company, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	c, ok := s.companies[companyID]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	return &c, nil
}

func (s *memStore) ListMembershipsByWorker(_ context.Context, workerID string) ([]domain.Membership, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []domain.Membership
	for _, m := range s.memberships {
		if m.WorkerID == workerID {
			out = append(out, m)
		}
	}
	return out, nil
}

func (s *memStore) FindMembership(_ context.Context, workerID, companyID string) (*domain.Membership, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, m := range s.memberships {
		if m.WorkerID == workerID && m.CompanyID == companyID {
			found := m
			return &found, nil
		}
	}
	return nil, apperrors.ErrNotFound
}

func (s *memStore) ListCompanyAdministrators(_ context.Context, companyID string) ([]domain.Membership, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []domain.Membership
	for _, m := range s.memberships {
		if m.CompanyID == companyID && m.Role.IsAdministrative() {
			out = append(out, m)
		}
	}
	return out, nil
}

func (s *memStore) FindClockPointByID(_ context.Context, pointID string) (*domain.ClockPoint, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.points[pointID]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	return &p, nil
}

// --- devices ---

func (s *memStore) FindBinding(_ context.Context, workerID, companyID, deviceID string) (*domain.DeviceBinding, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, b := range s.bindings {
		if b.WorkerID == workerID && b.CompanyID == companyID && b.DeviceID == deviceID {
			found := b
			return &found, nil
		}
	}
	return nil, apperrors.ErrNotFound
}

func (s *memStore) CountActiveBindings(_ context.Context, workerID, companyID string) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for _, b := range s.bindings {
		if b.WorkerID == workerID && b.CompanyID == companyID && b.IsActive {
			n++
		}
	}
	return n, nil
}

func (s *memStore) CreateBinding(_ context.Context, binding domain.DeviceBinding) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.bindings = append(s.bindings, binding)
	return nil
}

func (s *memStore) TouchBinding(_ context.Context, bindingID string, usedAt time.Time, pointID *string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.bindings {
		if s.bindings[i].BindingID == bindingID {
			s.bindings[i].LastUsedAt = &usedAt
			if pointID != nil {
				s.bindings[i].PointID = pointID
			}
			return nil
		}
	}
	return apperrors.ErrNotFound
}

func (s *memStore) FindDeviceRecordByLocalID(_ context.Context, companyID, localID string) (*domain.DeviceRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, r := range s.records {
		if r.CompanyID == companyID && r.LocalID == localID {
			found := r
			return &found, nil
		}
	}
	return nil, apperrors.ErrNotFound
}

func (s *memStore) CreateDeviceRecord(_ context.Context, record domain.DeviceRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records = append(s.records, record)
	return nil
}

// --- policy ---

func (s *memStore) FindComplianceSettings(_ context.Context, companyID string) (*domain.ComplianceSettings, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	cs, ok := s.settings[companyID]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	return &cs, nil
}

func (s *memStore) FindCompanyDayRules(_ context.Context, companyID string) (*domain.DayRules, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	r, ok := s.companyRules[companyID]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	return &r, nil
}

func (s *memStore) FindWorkerDayRules(_ context.Context, companyID, workerID string) (*domain.DayRules, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	r, ok := s.workerRules[dayKey(companyID, workerID)]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	return &r, nil
}

func (s *memStore) IsPublicHoliday(_ context.Context, companyID string, date time.Time) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.holidays[dayKey(companyID, dateKey(date))], nil
}

func (s *memStore) FindSpecialDay(_ context.Context, companyID string, date time.Time) (*domain.SpecialDay, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	d, ok := s.specialDays[dayKey(companyID, dateKey(date))]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	return &d, nil
}

func (s *memStore) FindScheduledShift(_ context.Context, workerID, companyID string, date time.Time) (*domain.ScheduledShift, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sh, ok := s.shifts[dayKey(workerID, companyID, dateKey(date))]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	return &sh, nil
}

// --- sessions ---

func (s *memStore) FindActiveSession(_ context.Context, workerID, companyID string) (*domain.WorkSession, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.hideActive > 0 {
		s.hideActive--
		return nil, apperrors.ErrNotFound
	}
	for _, ws := range s.sessions {
		if ws.WorkerID == workerID && ws.CompanyID == companyID && ws.IsActive {
			found := ws
			return &found, nil
		}
	}
	return nil, apperrors.ErrNotFound
}

func (s *memStore) FindLastClosedSession(_ context.Context, workerID, companyID string) (*domain.WorkSession, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var last *domain.WorkSession
	for i := range s.sessions {
		ws := s.sessions[i]
		if ws.WorkerID != workerID || ws.CompanyID != companyID || ws.IsActive || ws.ClockOutTime == nil {
			continue
		}
		if last == nil || ws.ClockOutTime.After(*last.ClockOutTime) {
			last = &ws
		}
	}
	if last == nil {
		return nil, apperrors.ErrNotFound
	}
	return last, nil
}

func (s *memStore) ListClosedSessionsSince(_ context.Context, workerID, companyID string, since time.Time) ([]domain.WorkSession, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []domain.WorkSession
	for _, ws := range s.sessions {
		if ws.WorkerID == workerID && ws.CompanyID == companyID && !ws.IsActive &&
			ws.ClockOutTime != nil && ws.ClockOutTime.After(since) {
			out = append(out, ws)
		}
	}
	return out, nil
}

func (s *memStore) ListSessionsBetween(_ context.Context, workerID, companyID string, from, to time.Time) ([]domain.WorkSession, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []domain.WorkSession
	for _, ws := range s.sessions {
		if ws.WorkerID == workerID && ws.CompanyID == companyID &&
			!ws.ClockInTime.Before(from) && ws.ClockInTime.Before(to) {
			out = append(out, ws)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ClockInTime.Before(out[j].ClockInTime) })
	return out, nil
}

func (s *memStore) CreateSession(_ context.Context, session domain.WorkSession) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, ws := range s.sessions {
		if ws.WorkerID == session.WorkerID && ws.CompanyID == session.CompanyID && ws.IsActive {
			return apperrors.ErrActiveSessionExists
		}
	}
	s.sessions = append(s.sessions, session)
	return nil
}

func (s *memStore) CloseSession(_ context.Context, sessionID string, clockOut time.Time, status domain.SessionStatus, review *domain.ReviewStatus) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.sessions {
		if s.sessions[i].SessionID == sessionID {
			s.sessions[i].ClockOutTime = &clockOut
			s.sessions[i].IsActive = false
			s.sessions[i].Status = status
			s.sessions[i].ReviewStatus = review
			return nil
		}
	}
	return apperrors.ErrNotFound
}

func (s *memStore) LockWorker(ctx context.Context, workerID, companyID string) error {
	tx, ok := ctx.Value(memTxKey{}).(*memTx)
	if !ok {
		return errors.New("worker lock taken outside a transaction")
	}
	s.mu.Lock()
	key := dayKey(workerID, companyID)
	lock, exists := s.workerLocks[key]
	if !exists {
		lock = &sync.Mutex{}
		s.workerLocks[key] = lock
	}
	s.locks++
	s.mu.Unlock()

	lock.Lock()
	tx.unlocks = append(tx.unlocks, lock.Unlock)
	return nil
}

// --- time events ---

func (s *memStore) InsertTimeEvent(_ context.Context, event domain.TimeEvent) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.insertErr != nil {
		return s.insertErr
	}
	switch event.Source {
	case domain.SourceWeb, domain.SourceMobile, domain.SourceKiosk, domain.SourceFastclock:
	default:
		return apperrors.ErrSourceConstraint
	}
	s.events = append(s.events, event)
	return nil
}

func (s *memStore) ListEventsSince(_ context.Context, workerID, companyID string, since time.Time) ([]domain.TimeEvent, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []domain.TimeEvent
	for _, e := range s.events {
		if e.WorkerID == workerID && e.CompanyID == companyID && !e.OccurredAt.Before(since) {
			out = append(out, e)
		}
	}
	return out, nil
}

func (s *memStore) FindLastEvent(_ context.Context, workerID, companyID string) (*domain.TimeEvent, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := len(s.events) - 1; i >= 0; i-- {
		if e := s.events[i]; e.WorkerID == workerID && e.CompanyID == companyID {
			return &e, nil
		}
	}
	return nil, apperrors.ErrNotFound
}

// --- incidents and notifications ---

func (s *memStore) CreateIncident(_ context.Context, incident domain.Incident) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.incidents = append(s.incidents, incident)
	return nil
}

func (s *memStore) ListIncidents(_ context.Context, companyID string, date *time.Time) ([]domain.Incident, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []domain.Incident
	for _, inc := range s.incidents {
		if inc.CompanyID != companyID {
			continue
		}
		if date != nil && dateKey(inc.Date) != dateKey(*date) {
			continue
		}
		out = append(out, inc)
	}
	return out, nil
}

func (s *memStore) CreateNotification(_ context.Context, n domain.Notification) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if n.EntityID != nil {
		for _, existing := range s.notifications {
			if existing.CompanyID == n.CompanyID && existing.RecipientID == n.RecipientID &&
				existing.EntityType != nil && n.EntityType != nil && *existing.EntityType == *n.EntityType &&
				existing.EntityID != nil && *existing.EntityID == *n.EntityID {
				return apperrors.NewConflictError("recipient already notified")
			}
		}
	}
	s.notifications = append(s.notifications, n)
	return nil
}

func (s *memStore) ListNotifiedRecipients(_ context.Context, companyID, entityType, entityID string) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.notifiedErr != nil {
		return nil, s.notifiedErr
	}
	if s.staleDedup {
		return nil, nil
	}
	var out []string
	for _, n := range s.notifications {
		if n.CompanyID == companyID && n.EntityType != nil && *n.EntityType == entityType &&
			n.EntityID != nil && *n.EntityID == entityID {
			out = append(out, n.RecipientID)
		}
	}
	return out, nil
}

func (s *memStore) ListNotificationsByRecipient(_ context.Context, recipientID string, limit int, _ *string) ([]domain.Notification, *string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []domain.Notification
	for _, n := range s.notifications {
		if n.RecipientID == recipientID && len(out) < limit {
			out = append(out, n)
		}
	}
	return out, nil, nil
}

func (s *memStore) MarkNotificationRead(_ context.Context, notificationID, recipientID string, at time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.notifications {
		if s.notifications[i].NotificationID == notificationID && s.notifications[i].RecipientID == recipientID {
			s.notifications[i].ReadAt = &at
			return nil
		}
	}
	return apperrors.ErrNotFound
}

// --- kiosk tokens ---

func (s *memStore) CreateKioskToken(_ context.Context, token domain.KioskToken) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tokens[token.TokenID] = token
	return nil
}

func (s *memStore) FindKioskTokenByID(_ context.Context, tokenID string) (*domain.KioskToken, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	t, ok := s.tokens[tokenID]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	return &t, nil
}

func (s *memStore) ListKioskTokens(_ context.Context, companyID string) ([]domain.KioskToken, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []domain.KioskToken
	for _, t := range s.tokens {
		if t.CompanyID == companyID {
			out = append(out, t)
		}
	}
	return out, nil
}

func (s *memStore) TouchKioskToken(_ context.Context, tokenID string, at time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	t, ok := s.tokens[tokenID]
	if !ok {
		return apperrors.ErrNotFound
	}
	t.LastUsedAt = &at
	s.tokens[tokenID] = t
	return nil
}

func (s *memStore) RevokeKioskToken(_ context.Context, companyID, tokenID string, at time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	t, ok := s.tokens[tokenID]
	if !ok || t.CompanyID != companyID || t.RevokedAt != nil {
		return apperrors.ErrNotFound
	}
	t.RevokedAt = &at
	s.tokens[tokenID] = t
	return nil
}

// --- helpers ---

func (s *memStore) incidentsOfType(kind domain.IncidentType) []domain.Incident {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []domain.Incident
	for _, inc := range s.incidents {
		if inc.Type == kind {
			out = append(out, inc)
		}
	}
	return out
}

func (s *memStore) notificationsFor(entityType string) []domain.Notification {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []domain.Notification
	for _, n := range s.notifications {
		if n.EntityType != nil && *n.EntityType == entityType {
			out = append(out, n)
		}
	}
	return out
}

type fixedClock struct{ now time.Time }

func (c *fixedClock) Now() time.Time { return c.now }

func (c *fixedClock) advance(d time.Duration) { c.now = c.now.Add(d) }

func (s *memStore) activeSessions(workerID, companyID string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for _, ws := range s.sessions {
		if ws.WorkerID == workerID && ws.CompanyID == companyID && ws.IsActive {
			n++
		}
	}
	return n
}

var (
	_ portsrepo.UnitOfWork                = (*memStore)(nil)
	_ portsrepo.CompanyRepositoryFacade   = (*memStore)(nil)
	_ portsrepo.ClockPointReader          = (*memStore)(nil)
	_ portsrepo.DeviceRepositoryFacade    = (*memStore)(nil)
	_ portsrepo.PolicyRepositoryFacade    = (*memStore)(nil)
	_ portsrepo.SessionRepositoryFacade   = (*memStore)(nil)
	_ portsrepo.TimeEventRepositoryFacade = (*memStore)(nil)
	_ portsrepo.IncidentRepository        = (*memStore)(nil)
	_ portsrepo.NotificationRepository    = (*memStore)(nil)
	_ portsrepo.KioskTokenRepository      = (*memStore)(nil)
)
