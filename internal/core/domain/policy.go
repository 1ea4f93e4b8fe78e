package domain

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// TimeOfDay is a wall-clock time without date or zone, e.g. "08:30".
type TimeOfDay struct {
	Minutes int // minutes since midnight, 0..1439
}

// ParseTimeOfDay accepts "HH:MM" or "HH:MM:SS".
func ParseTimeOfDay(s string) (TimeOfDay, error) {
	s = strings.TrimSpace(s)
	layout := "15:04:05"
	if len(s) == 5 {
		layout = "15:04"
	}
	t, err := time.Parse(layout, s)
	if err != nil {
		return TimeOfDay{}, fmt.Errorf("invalid time of day %q: %w", s, err)
	}
	return TimeOfDay{Minutes: t.Hour()*60 + t.Minute()}, nil
}

// TimeOfDayOf extracts the wall-clock minutes of t in its own location.
func TimeOfDayOf(t time.Time) TimeOfDay {
	return TimeOfDay{Minutes: t.Hour()*60 + t.Minute()}
}

func (t TimeOfDay) String() string {
	return fmt.Sprintf("%02d:%02d", t.Minutes/60, t.Minutes%60)
}

// Scan reads a postgres TIME (as string or time.Time).
func (t *TimeOfDay) Scan(v any) error {
	switch x := v.(type) {
	case nil:
		t.Minutes = 0
		return nil
	case time.Time:
		*t = TimeOfDayOf(x)
		return nil
	case string:
		parsed, err := ParseTimeOfDay(x)
		if err != nil {
			return err
		}
		*t = parsed
		return nil
	case []byte:
		return t.Scan(string(x))
	default:
		return fmt.Errorf("time of day: unsupported scan type %T", v)
	}
}

// minutesPerDay bounds TimeOfDay arithmetic.
const minutesPerDay = 24 * 60

// InWindow reports whether t lies in [start, end]. Windows with start > end wrap past midnight.
func (t TimeOfDay) InWindow(start, end TimeOfDay) bool {
	if start.Minutes <= end.Minutes {
		return t.Minutes >= start.Minutes && t.Minutes <= end.Minutes
	}
	return t.Minutes >= start.Minutes || t.Minutes <= end.Minutes
}

// Add shifts t by d, wrapping around midnight.
func (t TimeOfDay) Add(d time.Duration) TimeOfDay {
	m := (t.Minutes + int(d/time.Minute)) % minutesPerDay
	if m < 0 {
		m += minutesPerDay
	}
	return TimeOfDay{Minutes: m}
}

// ComplianceSettings are per-company legal limits.
type ComplianceSettings struct {
	CompanyID             string           `json:"companyID" db:"company_id"`
	MaxWeekHours          *decimal.Decimal `json:"maxWeekHours,omitempty" db:"max_week_hours"`
	MaxMonthHours         *decimal.Decimal `json:"maxMonthHours,omitempty" db:"max_month_hours"`
	MinHoursBetweenShifts *decimal.Decimal `json:"minHoursBetweenShifts,omitempty" db:"min_hours_between_shifts"`
	AllowedStart          *TimeOfDay       `json:"allowedStart,omitempty" db:"allowed_checkin_start"`
	AllowedEnd            *TimeOfDay       `json:"allowedEnd,omitempty" db:"allowed_checkin_end"`
	AllowOutsideSchedule  bool             `json:"allowOutsideSchedule" db:"allow_outside_schedule"`
}

// AllowedWindow returns the check-in window. A 00:00-00:00 window counts as disabled.
func (s *ComplianceSettings) AllowedWindow() (TimeOfDay, TimeOfDay, bool) {
	if s.AllowedStart == nil || s.AllowedEnd == nil {
		return TimeOfDay{}, TimeOfDay{}, false
	}
	if s.AllowedStart.Minutes == 0 && s.AllowedEnd.Minutes == 0 {
		return TimeOfDay{}, TimeOfDay{}, false
	}
	return *s.AllowedStart, *s.AllowedEnd, true
}

// HolidayClockPolicy controls clocking on public holidays.
type HolidayClockPolicy string

const (
	HolidayAllow         HolidayClockPolicy = "allow"
	HolidayRequireReason HolidayClockPolicy = "require_reason"
	HolidayBlock         HolidayClockPolicy = "block"
)

// SpecialDayPolicy controls clocking on company special days.
type SpecialDayPolicy string

const (
	SpecialDayAllow    SpecialDayPolicy = "allow"
	SpecialDayRestrict SpecialDayPolicy = "restrict"
)

// DayRules holds optional day-type rules at company or worker level.
// Nil fields are inherited from the next level down.
type DayRules struct {
	CompanyID          string              `json:"companyID" db:"company_id"`
	WorkerID           *string             `json:"workerID,omitempty" db:"worker_id"`
	AllowSundayClock   *bool               `json:"allowSundayClock,omitempty" db:"allow_sunday_clock"`
	HolidayClockPolicy *HolidayClockPolicy `json:"holidayClockPolicy,omitempty" db:"holiday_clock_policy"`
	SpecialDayPolicy   *SpecialDayPolicy   `json:"specialDayPolicy,omitempty" db:"special_day_policy"`
}

// EffectiveDayRules is the resolved rule set after precedence.
type EffectiveDayRules struct {
	AllowSunday      bool
	HolidayPolicy    HolidayClockPolicy
	SpecialDayPolicy SpecialDayPolicy
}

// DefaultDayRules are the system defaults when neither level sets a field.
var DefaultDayRules = EffectiveDayRules{
	AllowSunday:      true,
	HolidayPolicy:    HolidayAllow,
	SpecialDayPolicy: SpecialDayAllow,
}

// ResolveDayRules applies worker override, then company rule, then system default, field by field.
func ResolveDayRules(company, worker *DayRules) EffectiveDayRules {
	eff := DefaultDayRules
	for _, level := range []*DayRules{company, worker} {
		if level == nil {
			continue
		}
		if level.AllowSundayClock != nil {
			eff.AllowSunday = *level.AllowSundayClock
		}
		if level.HolidayClockPolicy != nil {
			eff.HolidayPolicy = *level.HolidayClockPolicy
		}
		if level.SpecialDayPolicy != nil {
			eff.SpecialDayPolicy = *level.SpecialDayPolicy
		}
	}
	return eff
}

// SpecialDay is a company-defined date with restricted clocking.
type SpecialDay struct {
	CompanyID string    `json:"companyID" db:"company_id"`
	Date      time.Time `json:"date" db:"day"`
	Name      string    `json:"name" db:"name"`
}

// ScheduledShift is a worker's planned shift on one date.
type ScheduledShift struct {
	ShiftID       string           `json:"shiftID" db:"shift_id"`
	WorkerID      string           `json:"workerID" db:"worker_id"`
	CompanyID     string           `json:"companyID" db:"company_id"`
	Date          time.Time        `json:"date" db:"shift_date"`
	StartTime     *TimeOfDay       `json:"startTime,omitempty" db:"start_time"`
	EndTime       *TimeOfDay       `json:"endTime,omitempty" db:"end_time"`
	ExpectedHours *decimal.Decimal `json:"expectedHours,omitempty" db:"expected_hours"`
}

// Governs reports whether the shift is complete enough to drive margin checks.
func (s *ScheduledShift) Governs() bool {
	return s != nil && s.StartTime != nil && s.EndTime != nil &&
		s.ExpectedHours != nil && s.ExpectedHours.IsPositive()
}
