package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/shopspring/decimal"

	"github.com/SscSPs/time_clock_app/internal/apperrors"
	"github.com/SscSPs/time_clock_app/internal/core/domain"
	portsrepo "github.com/SscSPs/time_clock_app/internal/core/ports/repositories"
)

// minHolidayReasonLength is the shortest accepted holiday justification.
const minHolidayReasonLength = 3

type policyEngine struct {
	BaseService
	policies            portsrepo.PolicyRepositoryFacade
	sessions            portsrepo.SessionReader
	uow                 portsrepo.UnitOfWork
	allowOutsideDefault bool
}

func newPolicyEngine(policies portsrepo.PolicyRepositoryFacade, sessions portsrepo.SessionReader, uow portsrepo.UnitOfWork, allowOutsideDefault bool) *policyEngine {
	return &policyEngine{policies: policies, sessions: sessions, uow: uow, allowOutsideDefault: allowOutsideDefault}
}

// policyRequest is the input of one policy evaluation. Now and PolicyDate are
// expressed in the company's location.
type policyRequest struct {
	Tenant     *Tenant
	Action     domain.Action
	Now        time.Time
	PolicyDate time.Time
	Reason     string
}

// policyVerdict carries what later steps need from an accepted evaluation.
type policyVerdict struct {
	Settings             *domain.ComplianceSettings
	Shift                *domain.ScheduledShift
	AllowOutsideSchedule bool
	ScheduleDeviation    bool
}

// softRead runs an optional lookup in a savepoint. A missing row or a failing
// read both count as absent; only the failure is logged.
func softRead[T any](ctx context.Context, base *BaseService, uow portsrepo.UnitOfWork, lookup string, read func(ctx context.Context) (*T, error)) (*T, bool) {
	var value *T
	err := uow.Savepoint(ctx, func(ctx context.Context) error {
		v, err := read(ctx)
		value = v
		return err
	})
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			base.LogWarn(ctx, err, "Optional policy lookup failed, treating as not configured", slog.String("lookup", lookup))
		}
		return nil, false
	}
	return value, value != nil
}

// Evaluate runs company status, day-type rules, the allowed check-in window and
// schedule margins, in that order.
func (p *policyEngine) Evaluate(ctx context.Context, req policyRequest) (*policyVerdict, error) {
	company := &req.Tenant.Company
	if err := checkCompanyStatus(company); err != nil {
		return nil, err
	}

	companyID, workerID := company.CompanyID, req.Tenant.WorkerID
	companyRules, _ := softRead(ctx, &p.BaseService, p.uow, "company_day_rules", func(ctx context.Context) (*domain.DayRules, error) {
		return p.policies.FindCompanyDayRules(ctx, companyID)
	})
	workerRules, _ := softRead(ctx, &p.BaseService, p.uow, "worker_day_rules", func(ctx context.Context) (*domain.DayRules, error) {
		return p.policies.FindWorkerDayRules(ctx, companyID, workerID)
	})
	holiday, _ := softRead(ctx, &p.BaseService, p.uow, "public_holiday", func(ctx context.Context) (*bool, error) {
		ok, err := p.policies.IsPublicHoliday(ctx, companyID, req.PolicyDate)
		return &ok, err
	})
	special, _ := softRead(ctx, &p.BaseService, p.uow, "special_day", func(ctx context.Context) (*domain.SpecialDay, error) {
		return p.policies.FindSpecialDay(ctx, companyID, req.PolicyDate)
	})

	rules := domain.ResolveDayRules(companyRules, workerRules)
	isHoliday := holiday != nil && *holiday
	if err := checkDayRules(rules, req.PolicyDate, isHoliday, special, req.Reason); err != nil {
		return nil, err
	}

	settings, _ := softRead(ctx, &p.BaseService, p.uow, "compliance_settings", func(ctx context.Context) (*domain.ComplianceSettings, error) {
		return p.policies.FindComplianceSettings(ctx, companyID)
	})
	allowOutside := p.allowOutsideDefault
	if settings != nil {
		allowOutside = settings.AllowOutsideSchedule
	}
	nowTOD := domain.TimeOfDayOf(req.Now)
	if err := checkAllowedWindow(settings, allowOutside, nowTOD); err != nil {
		return nil, err
	}

	shift, _ := softRead(ctx, &p.BaseService, p.uow, "scheduled_shift", func(ctx context.Context) (*domain.ScheduledShift, error) {
		return p.policies.FindScheduledShift(ctx, workerID, companyID, req.PolicyDate)
	})
	deviation, err := checkScheduleMargins(shift, company.Tolerances(), req.Action, nowTOD, allowOutside)
	if err != nil {
		return nil, err
	}

	return &policyVerdict{
		Settings:             settings,
		Shift:                shift,
		AllowOutsideSchedule: allowOutside,
		ScheduleDeviation:    deviation,
	}, nil
}

// CheckHourCaps enforces weekly and monthly caps and minimum rest. It is only
// consulted for clock-in, after the session state allows one.
func (p *policyEngine) CheckHourCaps(ctx context.Context, tenant *Tenant, settings *domain.ComplianceSettings, now time.Time) error {
	if settings == nil {
		return nil
	}
	workerID, companyID := tenant.WorkerID, tenant.Company.CompanyID
	today := dateOf(now)

	caps := []struct {
		limit  *decimal.Decimal
		since  time.Time
		reason string
		period string
	}{
		{settings.MaxWeekHours, weekStart(today), apperrors.ReasonExceededWeekHours, "week"},
		{settings.MaxMonthHours, monthStart(today), apperrors.ReasonExceededMonthHours, "month"},
	}
	for _, c := range caps {
		if c.limit == nil || !c.limit.IsPositive() {
			continue
		}
		sessions, err := p.sessions.ListClosedSessionsSince(ctx, workerID, companyID, c.since.UTC())
		if err != nil {
			return fmt.Errorf("failed to list closed sessions: %w", err)
		}
		var worked time.Duration
		for i := range sessions {
			worked += sessions[i].ElapsedSince(c.since, now)
		}
		if worked >= domain.HoursToDuration(*c.limit) {
			return apperrors.NewClockError(apperrors.CodeLegalRestriction, c.reason,
				fmt.Sprintf("%s hour limit of %s reached", c.period, c.limit.String()))
		}
	}

	if settings.MinHoursBetweenShifts != nil && settings.MinHoursBetweenShifts.IsPositive() {
		last, err := p.sessions.FindLastClosedSession(ctx, workerID, companyID)
		switch {
		case errors.Is(err, apperrors.ErrNotFound):
		case err != nil:
			return fmt.Errorf("failed to find last closed session: %w", err)
		case last.ClockOutTime != nil:
			rest := domain.HoursToDuration(*settings.MinHoursBetweenShifts)
			if now.Sub(*last.ClockOutTime) < rest {
				return apperrors.NewClockError(apperrors.CodeLegalRestriction, apperrors.ReasonTooSoonBetweenShifts,
					fmt.Sprintf("at least %s hours of rest are required between shifts", settings.MinHoursBetweenShifts.String()))
			}
		}
	}
	return nil
}

func checkCompanyStatus(company *domain.Company) error {
	if company.IsSuspended() {
		return apperrors.NewClockError(apperrors.CodeCompanySuspended, "", "company is suspended")
	}
	return nil
}

func checkDayRules(rules domain.EffectiveDayRules, date time.Time, isHoliday bool, special *domain.SpecialDay, reason string) error {
	if date.Weekday() == time.Sunday && !rules.AllowSunday {
		return apperrors.NewClockError(apperrors.CodeDayPolicyViolation, apperrors.ReasonSundayBlocked,
			"clocking on Sundays is not allowed")
	}
	if isHoliday {
		switch rules.HolidayPolicy {
		case domain.HolidayBlock:
			return apperrors.NewClockError(apperrors.CodeDayPolicyViolation, apperrors.ReasonHolidayBlocked,
				"clocking on public holidays is not allowed")
		case domain.HolidayRequireReason:
			if utf8.RuneCountInString(strings.TrimSpace(reason)) < minHolidayReasonLength {
				return apperrors.NewClockError(apperrors.CodeDayPolicyViolation, apperrors.ReasonHolidayRequiresReason,
					"a reason is required to clock on a public holiday")
			}
		}
	}
	if special != nil && rules.SpecialDayPolicy == domain.SpecialDayRestrict {
		return apperrors.NewClockError(apperrors.CodeDayPolicyViolation, apperrors.ReasonSpecialDayRestricted,
			fmt.Sprintf("clocking is restricted on %s", special.Name))
	}
	return nil
}

func checkAllowedWindow(settings *domain.ComplianceSettings, allowOutside bool, now domain.TimeOfDay) error {
	if settings == nil || allowOutside {
		return nil
	}
	start, end, ok := settings.AllowedWindow()
	if !ok || now.InWindow(start, end) {
		return nil
	}
	return apperrors.NewClockError(apperrors.CodeLegalRestriction, apperrors.ReasonOutsideAllowedHours,
		fmt.Sprintf("clocking is only allowed between %s and %s", start, end))
}

// checkScheduleMargins compares the action time with the scheduled shift. It
// reports a deviation instead of rejecting when outside-schedule clocking is allowed.
func checkScheduleMargins(shift *domain.ScheduledShift, tol domain.Tolerances, action domain.Action, now domain.TimeOfDay, allowOutside bool) (bool, error) {
	if !shift.Governs() {
		return false, nil
	}
	var target domain.TimeOfDay
	var early, late time.Duration
	switch action {
	case domain.ActionIn:
		target, early, late = *shift.StartTime, tol.EntryEarly, tol.EntryLate
	case domain.ActionOut:
		target, early, late = *shift.EndTime, tol.ExitEarly, tol.ExitLate
	default:
		return false, nil
	}

	offset := minutesFrom(target, now)
	if offset >= -int(early/time.Minute) && offset <= int(late/time.Minute) {
		return false, nil
	}
	if allowOutside {
		return true, nil
	}
	label := action.EventType().Label()
	if offset < 0 {
		return false, apperrors.NewClockError(apperrors.CodeScheduleViolation, apperrors.ReasonTooEarly,
			fmt.Sprintf("too early: %s is allowed from %s", label, target.Add(-early)))
	}
	return false, apperrors.NewClockError(apperrors.CodeScheduleViolation, apperrors.ReasonTooLate,
		fmt.Sprintf("too late: %s was allowed until %s", label, target.Add(late)))
}

// minutesFrom returns the signed distance from target to now on a 24h dial, in [-720, 720).
func minutesFrom(target, now domain.TimeOfDay) int {
	d := (now.Minutes - target.Minutes) % minutesPerDay
	if d < -minutesPerDay/2 {
		d += minutesPerDay
	}
	if d >= minutesPerDay/2 {
		d -= minutesPerDay
	}
	return d
}

const minutesPerDay = 24 * 60

// dateOf truncates t to midnight in its own location.
func dateOf(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// weekStart returns the Monday of date's week.
func weekStart(date time.Time) time.Time {
	offset := (int(date.Weekday()) + 6) % 7
	return dateOf(date).AddDate(0, 0, -offset)
}

func monthStart(date time.Time) time.Time {
	return time.Date(date.Year(), date.Month(), 1, 0, 0, 0, 0, date.Location())
}
