package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/SscSPs/time_clock_app/internal/apperrors"
	"github.com/SscSPs/time_clock_app/internal/core/domain"
	portsrepo "github.com/SscSPs/time_clock_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/time_clock_app/internal/core/ports/services"
)

// Kinds of synthesized daily dedup entities.
const (
	dedupGeofenceViolation = "geofence-violation"
	dedupScheduleOutOfHour = "schedule-out-of-hours"
)

// clockService implements the attendance event processor.
type clockService struct {
	BaseService
	cfg        ClockConfig
	clock      Clock
	uow        portsrepo.UnitOfWork
	sessions   portsrepo.SessionRepositoryFacade
	tenants    *tenantResolver
	points     *clockPointValidator
	devices    *deviceBindingManager
	policy     *policyEngine
	state      *sessionStateMachine
	recorder   *eventRecorder
	dispatcher *dispatcher
}

// NewClockService wires the processor components over the given repositories.
func NewClockService(cfg ClockConfig, clock Clock, repos portsrepo.RepositoryProvider) portssvc.ClockSvc {
	if clock == nil {
		clock = SystemClock()
	}
	if cfg.DefaultLocation == nil {
		cfg.DefaultLocation = time.UTC
	}
	if cfg.FallbackSource == "" {
		cfg.FallbackSource = domain.SourceWeb
	}
	if cfg.DefaultSource == "" {
		cfg.DefaultSource = domain.SourceMobile
	}
	return &clockService{
		BaseService: BaseService{Memberships: repos.CompanyRepo},
		cfg:         cfg,
		clock:       clock,
		uow:         repos.UnitOfWork,
		sessions:    repos.SessionRepo,
		tenants:     newTenantResolver(repos.CompanyRepo),
		points:      newClockPointValidator(repos.ClockPointRepo),
		devices:     newDeviceBindingManager(repos.DeviceRepo, repos.UnitOfWork, cfg.MaxDevicesPerWorker),
		policy:      newPolicyEngine(repos.PolicyRepo, repos.SessionRepo, repos.UnitOfWork, cfg.AllowOutsideScheduleDefault),
		state:       newSessionStateMachine(repos.SessionRepo),
		recorder:    newEventRecorder(repos.TimeEventRepo, repos.UnitOfWork, cfg.FallbackSource),
		dispatcher:  newDispatcher(repos.IncidentRepo, repos.NotifyRepo, repos.CompanyRepo, clock),
	}
}

// clockRequest is the validated, tenant-resolved form of a command.
type clockRequest struct {
	cmd         domain.ClockCommand
	action      domain.Action
	pointID     domain.PointID
	coordinates *domain.Coordinates
	source      domain.Source
	tenant      *Tenant
	point       *domain.ClockPoint
	now         time.Time // pinned request time, UTC
	local       time.Time // now in the company location
	policyDate  time.Time
	effects     []sideEffect
}

func (r *clockRequest) raise(effect sideEffect) {
	r.effects = append(r.effects, effect)
}

// ProcessClockAction validates and applies one clock action.
func (s *clockService) ProcessClockAction(ctx context.Context, cmd domain.ClockCommand) (*domain.ClockOutcome, error) {
	now := s.clock.Now().UTC()

	req, err := s.prepare(ctx, cmd, now)
	if err != nil {
		if _, ok := apperrors.AsClockError(err); ok {
			return nil, err
		}
		s.LogError(ctx, err, "Failed to resolve clock request context")
		return nil, err
	}

	logArgs := []any{
		slog.String("worker_id", req.tenant.WorkerID),
		slog.String("company_id", req.tenant.Company.CompanyID),
		slog.String("action", string(req.action)),
	}

	var outcome *domain.ClockOutcome
	var rejection error
	err = s.uow.WithinTx(ctx, func(ctx context.Context) error {
		req.effects = nil
		if err := s.sessions.LockWorker(ctx, req.tenant.WorkerID, req.tenant.Company.CompanyID); err != nil {
			return fmt.Errorf("failed to lock worker: %w", err)
		}
		out, err := s.apply(ctx, req)
		if _, ok := apperrors.AsClockError(err); ok {
			// Keep what was already applied, such as the auto-close sweep.
			rejection = err
			return nil
		}
		outcome = out
		return err
	})
	if err != nil {
		s.LogError(ctx, err, "Clock action failed, transaction rolled back", logArgs...)
		s.dispatcher.Dispatch(ctx, req.tenant.Company.CompanyID, []sideEffect{
			incidentEffect(newIncident(req.tenant.WorkerID, req.tenant.Company.CompanyID, domain.IncidentOther, domain.SeverityHigh,
				req.policyDate, now, fmt.Sprintf("Failed to record %s: storage error", req.action.EventType().Label())),
				"Clock action failed"),
		})
		return nil, fmt.Errorf("failed to process clock action: %w", err)
	}

	s.dispatcher.Dispatch(ctx, req.tenant.Company.CompanyID, req.effects)

	if rejection != nil {
		s.LogInfo(ctx, "Clock action rejected", append(logArgs, slog.String("rejection", rejection.Error()))...)
		return nil, rejection
	}
	s.LogInfo(ctx, "Clock action recorded", append(logArgs, slog.String("event_id", outcome.EventID))...)
	return outcome, nil
}

// prepare validates the command shape and resolves tenant and point, all outside the transaction.
func (s *clockService) prepare(ctx context.Context, cmd domain.ClockCommand, now time.Time) (*clockRequest, error) {
	action, err := domain.ParseAction(string(cmd.Action))
	if err != nil {
		return nil, apperrors.NewClockError(apperrors.CodeInvalidRequest, "", err.Error())
	}
	pointID, err := domain.ParsePointID(strings.TrimSpace(cmd.PointID))
	if err != nil {
		return nil, apperrors.NewClockError(apperrors.CodePointInvalid, "", err.Error())
	}
	coords, err := domain.NewCoordinates(cmd.Latitude, cmd.Longitude)
	if err != nil {
		return nil, apperrors.NewClockError(apperrors.CodeInvalidRequest, "", err.Error())
	}

	tenant, err := s.tenants.Resolve(ctx, cmd.Actor, strings.TrimSpace(cmd.WorkerID), strings.TrimSpace(cmd.CompanyID))
	if err != nil {
		return nil, err
	}
	point, err := s.points.Validate(ctx, tenant.Company.CompanyID, pointID)
	if err != nil {
		return nil, err
	}

	defaultSource := s.cfg.DefaultSource
	if cmd.Actor.IsKiosk() {
		defaultSource = domain.SourceKiosk
	}
	local := now.In(tenant.Company.Location(s.cfg.DefaultLocation))
	return &clockRequest{
		cmd:         cmd,
		action:      action,
		pointID:     pointID,
		coordinates: coords,
		source:      domain.NormalizeSource(cmd.Source, defaultSource),
		tenant:      tenant,
		point:       point,
		now:         now,
		local:       local,
		policyDate:  dateOf(local),
	}, nil
}

// apply runs every step that reads or writes within the worker's transaction.
func (s *clockService) apply(ctx context.Context, req *clockRequest) (*domain.ClockOutcome, error) {
	tenant := req.tenant
	workerID, companyID := tenant.WorkerID, tenant.Company.CompanyID

	if err := s.devices.Bind(ctx, workerID, companyID, strings.TrimSpace(req.cmd.DeviceID), req.pointID, req.now); err != nil {
		return nil, err
	}
	deviceRecordID := s.devices.ResolveDeviceRecord(ctx, companyID, strings.TrimSpace(req.cmd.DeviceID), req.now)

	active, err := s.state.Load(ctx, workerID, companyID)
	if err != nil {
		return nil, err
	}
	if active != nil && req.action.RequiresSession() {
		// Turns crossing midnight are attributed to the day they started.
		req.policyDate = dateOf(active.ClockInTime.In(req.local.Location()))
	}

	verdict, err := s.policy.Evaluate(ctx, policyRequest{
		Tenant:     tenant,
		Action:     req.action,
		Now:        req.local,
		PolicyDate: req.policyDate,
		Reason:     holidayReason(req.cmd),
	})
	if err != nil {
		if ce, ok := apperrors.AsClockError(err); ok && ce.Code == apperrors.CodeCompanySuspended {
			req.raise(incidentEffect(s.incident(req, domain.IncidentOther, domain.SeverityHigh,
				"Clock action attempted while the company is suspended"), "Suspended company clock attempt"))
		}
		return nil, err
	}

	swept, err := s.state.Sweep(ctx, &tenant.Company, active, req.now)
	if err != nil {
		return nil, err
	}
	if swept != nil {
		active = nil
		req.raise(incidentEffect(s.incident(req, domain.IncidentMissingCheckout, domain.SeverityMedium,
			fmt.Sprintf("Session started at %s exceeded the maximum shift and was closed automatically",
				swept.ClockInTime.In(req.local.Location()).Format(time.DateTime))), "Session auto-closed"))
	}

	if err := checkLegality(req.action, active, swept != nil); err != nil {
		s.raiseLegalityIncident(req, err)
		return nil, err
	}
	if req.action == domain.ActionIn {
		if err := s.policy.CheckHourCaps(ctx, tenant, verdict.Settings, req.local); err != nil {
			return nil, err
		}
	}

	geo, err := EvaluateGeofence(req.coordinates, resolveAnchor(&tenant.Company, req.point, s.cfg.HeadquartersRadiusMeters))
	if err != nil {
		return nil, err
	}

	session := active
	if req.action == domain.ActionIn {
		session, err = s.openSession(ctx, req)
		if err != nil {
			return nil, err
		}
	}

	event := domain.TimeEvent{
		EventID:        uuid.NewString(),
		WorkerID:       workerID,
		CompanyID:      companyID,
		SessionID:      &session.SessionID,
		EventType:      req.action.EventType(),
		OccurredAt:     req.now,
		DistanceMeters: geo.DistanceMeters,
		WithinGeofence: geo.WithinGeofence,
		PointID:        req.pointID.Ptr(),
		DeviceRecordID: deviceRecordID,
		Source:         req.source,
		Notes:          trimmedOrNil(req.cmd.Notes),
		PhotoURL:       trimmedOrNil(req.cmd.PhotoURL),
		CreatedAt:      req.now,
	}
	if c := req.coordinates; c != nil {
		event.Latitude, event.Longitude = &c.Latitude, &c.Longitude
	}
	recorded, err := s.recorder.Record(ctx, event)
	if err != nil {
		return nil, err
	}

	if req.action == domain.ActionOut {
		if err := s.state.Close(ctx, session, req.now); err != nil {
			return nil, err
		}
	}

	s.raiseObservations(req, geo, verdict)

	return &domain.ClockOutcome{
		EventID:        recorded.EventID,
		SessionID:      session.SessionID,
		Status:         statusAfter(req.action),
		EventType:      recorded.EventType,
		Timestamp:      recorded.OccurredAt,
		DistanceMeters: geo.DistanceMeters,
		WithinGeofence: geo.WithinGeofence,
	}, nil
}

// openSession creates the session in a savepoint so a lost race surfaces as a
// rejection without aborting the transaction.
func (s *clockService) openSession(ctx context.Context, req *clockRequest) (*domain.WorkSession, error) {
	var session *domain.WorkSession
	err := s.uow.Savepoint(ctx, func(ctx context.Context) error {
		var err error
		session, err = s.state.Open(ctx, req.tenant.WorkerID, req.tenant.Company.CompanyID, req.now)
		return err
	})
	if errors.Is(err, apperrors.ErrActiveSessionExists) {
		rejection := apperrors.NewClockError(apperrors.CodeSessionAlreadyActive, "", "a work session is already open")
		s.raiseLegalityIncident(req, rejection)
		return nil, rejection
	}
	if err != nil {
		return nil, fmt.Errorf("failed to open session: %w", err)
	}
	return session, nil
}

func (s *clockService) raiseLegalityIncident(req *clockRequest, err error) {
	ce, ok := apperrors.AsClockError(err)
	if !ok {
		return
	}
	switch ce.Code {
	case apperrors.CodeSessionAlreadyActive:
		req.raise(incidentEffect(s.incident(req, domain.IncidentMissingCheckout, domain.SeverityMedium,
			"Clock-in attempted while a previous session is still open"), "Possible missing check-out"))
	case apperrors.CodeNoActiveSession:
		desc := fmt.Sprintf("%s attempted without an open session", req.action.EventType().Label())
		if ce.Reason == apperrors.ReasonShiftExceededMaxHours {
			desc += " (previous session exceeded the maximum shift)"
		}
		req.raise(incidentEffect(s.incident(req, domain.IncidentMissingCheckin, domain.SeverityMedium, desc), "Possible missing check-in"))
	}
}

// raiseObservations collects the alerts of an accepted action.
func (s *clockService) raiseObservations(req *clockRequest, geo domain.GeofenceResult, verdict *policyVerdict) {
	workerID := req.tenant.WorkerID
	label := req.action.EventType().Label()

	if geo.WithinGeofence != nil && !*geo.WithinGeofence {
		msg := fmt.Sprintf("Worker %s recorded %s %.0f m from the allowed location", workerID, label, *geo.DistanceMeters)
		req.raise(sideEffect{
			Incident: s.incident(req, domain.IncidentGeofenceViolation, domain.SeverityMedium, msg),
			Notice: &notice{
				EntityType: domain.EntityGeofenceViolation,
				EntityID:   domain.DailyEntityID(workerID, req.policyDate, dedupGeofenceViolation),
				Title:      "Clock action outside geofence",
				Message:    msg,
				Severity:   domain.SeverityMedium,
				Dedup:      true,
			},
		})
	}

	if verdict.ScheduleDeviation {
		msg := fmt.Sprintf("Worker %s recorded %s at %s, outside the scheduled shift", workerID, label, domain.TimeOfDayOf(req.local))
		req.raise(sideEffect{
			Incident: s.incident(req, domain.IncidentScheduleDeviation, domain.SeverityLow, msg),
			Notice: &notice{
				EntityType: domain.EntityScheduleDeviation,
				EntityID:   domain.DailyEntityID(workerID, req.policyDate, dedupScheduleOutOfHour),
				Title:      "Clock action outside schedule",
				Message:    msg,
				Severity:   domain.SeverityLow,
				Dedup:      true,
			},
		})
	}
}

func (s *clockService) incident(req *clockRequest, kind domain.IncidentType, severity domain.Severity, description string) *domain.Incident {
	return newIncident(req.tenant.WorkerID, req.tenant.Company.CompanyID, kind, severity, req.policyDate, req.now, description)
}

// holidayReason prefers the explicit reason and falls back to the notes.
func holidayReason(cmd domain.ClockCommand) string {
	if cmd.Reason != nil && strings.TrimSpace(*cmd.Reason) != "" {
		return *cmd.Reason
	}
	if cmd.Notes != nil {
		return *cmd.Notes
	}
	return ""
}

func trimmedOrNil(s *string) *string {
	if s == nil {
		return nil
	}
	v := strings.TrimSpace(*s)
	if v == "" {
		return nil
	}
	return &v
}
