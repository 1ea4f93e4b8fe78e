package pgsql

import (
	"context"
	"net/http"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/SscSPs/time_clock_app/internal/apperrors"
	"github.com/SscSPs/time_clock_app/internal/core/domain"
	portsrepo "github.com/SscSPs/time_clock_app/internal/core/ports/repositories"
)

type PgxPolicyRepository struct {
	BaseRepository
}

func newPgxPolicyRepository(pool *pgxpool.Pool) portsrepo.PolicyRepositoryFacade {
	return &PgxPolicyRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.PolicyRepositoryFacade = (*PgxPolicyRepository)(nil)

const dayRulesSelectQuery = `
SELECT company_id, worker_id, allow_sunday_clock, holiday_clock_policy, special_day_policy
FROM day_rules
`

func (r *PgxPolicyRepository) FindComplianceSettings(ctx context.Context, companyID string) (*domain.ComplianceSettings, error) {
	query := `
		SELECT company_id, max_week_hours, max_month_hours, min_hours_between_shifts,
			allowed_checkin_start, allowed_checkin_end, allow_outside_schedule
		FROM compliance_settings
		WHERE company_id = $1;
	`
	return collectOne[domain.ComplianceSettings](ctx, r.DB(ctx), "compliance settings", query, companyID)
}

func (r *PgxPolicyRepository) FindCompanyDayRules(ctx context.Context, companyID string) (*domain.DayRules, error) {
	return collectOne[domain.DayRules](ctx, r.DB(ctx), "company day rules",
		dayRulesSelectQuery+`WHERE company_id = $1 AND worker_id IS NULL`, companyID)
}

func (r *PgxPolicyRepository) FindWorkerDayRules(ctx context.Context, companyID, workerID string) (*domain.DayRules, error) {
	return collectOne[domain.DayRules](ctx, r.DB(ctx), "worker day rules",
		dayRulesSelectQuery+`WHERE company_id = $1 AND worker_id = $2`, companyID, workerID)
}

// IsPublicHoliday checks national holidays (company_id IS NULL) and the company's own.
func (r *PgxPolicyRepository) IsPublicHoliday(ctx context.Context, companyID string, date time.Time) (bool, error) {
	query := `
		SELECT EXISTS (
			SELECT 1 FROM public_holidays
			WHERE holiday_date = $2::date AND (company_id IS NULL OR company_id = $1)
		);
	`
	var exists bool
	if err := r.DB(ctx).QueryRow(ctx, query, companyID, date.Format(time.DateOnly)).Scan(&exists); err != nil {
		return false, apperrors.NewAppError(http.StatusInternalServerError, "failed to check public holiday", err)
	}
	return exists, nil
}

func (r *PgxPolicyRepository) FindSpecialDay(ctx context.Context, companyID string, date time.Time) (*domain.SpecialDay, error) {
	query := `
		SELECT company_id, day, name
		FROM special_days
		WHERE company_id = $1 AND day = $2::date;
	`
	return collectOne[domain.SpecialDay](ctx, r.DB(ctx), "special day", query, companyID, date.Format(time.DateOnly))
}

func (r *PgxPolicyRepository) FindScheduledShift(ctx context.Context, workerID, companyID string, date time.Time) (*domain.ScheduledShift, error) {
	query := `
		SELECT shift_id, worker_id, company_id, shift_date, start_time, end_time, expected_hours
		FROM scheduled_shifts
		WHERE worker_id = $1 AND company_id = $2 AND shift_date = $3::date
		ORDER BY start_time NULLS LAST
		LIMIT 1;
	`
	return collectOne[domain.ScheduledShift](ctx, r.DB(ctx), "scheduled shift", query, workerID, companyID, date.Format(time.DateOnly))
}
