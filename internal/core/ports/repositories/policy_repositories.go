package repositories

import (
	"context"
	"time"

	"github.com/SscSPs/time_clock_app/internal/core/domain"
)

// ComplianceReader reads per-company legal limits.
type ComplianceReader interface {
	FindComplianceSettings(ctx context.Context, companyID string) (*domain.ComplianceSettings, error)
}

// DayRulesReader reads day-type rules at both levels.
type DayRulesReader interface {
	FindCompanyDayRules(ctx context.Context, companyID string) (*domain.DayRules, error)
	FindWorkerDayRules(ctx context.Context, companyID, workerID string) (*domain.DayRules, error)
}

// CalendarReader reads public holidays and company special days.
type CalendarReader interface {
	// IsPublicHoliday checks the national table and the company's own holidays.
	IsPublicHoliday(ctx context.Context, companyID string, date time.Time) (bool, error)

	FindSpecialDay(ctx context.Context, companyID string, date time.Time) (*domain.SpecialDay, error)
}

// ScheduleReader reads planned shifts.
type ScheduleReader interface {
	FindScheduledShift(ctx context.Context, workerID, companyID string, date time.Time) (*domain.ScheduledShift, error)
}

// PolicyRepositoryFacade combines every policy input read by the clock processor.
// All finders return apperrors.ErrNotFound when nothing is configured.
type PolicyRepositoryFacade interface {
	ComplianceReader
	DayRulesReader
	CalendarReader
	ScheduleReader
}
