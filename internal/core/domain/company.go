package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// CompanyStatus is the lifecycle state of a tenant.
type CompanyStatus string

const (
	CompanyActive    CompanyStatus = "active"
	CompanySuspended CompanyStatus = "suspended"
)

// Default entry/exit tolerances in minutes, applied when a company leaves them unset.
const (
	DefaultEntryEarlyMinutes = 10
	DefaultEntryLateMinutes  = 15
	DefaultExitEarlyMinutes  = 10
	DefaultExitLateMinutes   = 15
)

// Company is the tenant root, carrying the policy attributes the clock processor needs.
type Company struct {
	CompanyID     string           `json:"companyID" db:"company_id"`
	Name          string           `json:"name" db:"name"`
	Status        CompanyStatus    `json:"status" db:"status"`
	Timezone      string           `json:"timezone" db:"timezone"`
	HQLatitude    *float64         `json:"hqLatitude,omitempty" db:"hq_latitude"`
	HQLongitude   *float64         `json:"hqLongitude,omitempty" db:"hq_longitude"`
	MaxShiftHours *decimal.Decimal `json:"maxShiftHours,omitempty" db:"max_shift_hours"`
	EntryEarlyMin *int             `json:"entryEarlyMinutes,omitempty" db:"entry_early_minutes"`
	EntryLateMin  *int             `json:"entryLateMinutes,omitempty" db:"entry_late_minutes"`
	ExitEarlyMin  *int             `json:"exitEarlyMinutes,omitempty" db:"exit_early_minutes"`
	ExitLateMin   *int             `json:"exitLateMinutes,omitempty" db:"exit_late_minutes"`
	CreatedAt     time.Time        `json:"createdAt" db:"created_at"`
}

// IsSuspended reports whether the company rejects all clock actions.
func (c *Company) IsSuspended() bool {
	return c.Status == CompanySuspended
}

// Headquarters returns the HQ coordinates if both are configured.
func (c *Company) Headquarters() (Coordinates, bool) {
	if c.HQLatitude == nil || c.HQLongitude == nil {
		return Coordinates{}, false
	}
	return Coordinates{Latitude: *c.HQLatitude, Longitude: *c.HQLongitude}, true
}

// MaxShift converts the configured shift cap to a duration.
func (c *Company) MaxShift() (time.Duration, bool) {
	if c.MaxShiftHours == nil || !c.MaxShiftHours.IsPositive() {
		return 0, false
	}
	return HoursToDuration(*c.MaxShiftHours), true
}

// Tolerances returns entry/exit margins, falling back to the defaults.
func (c *Company) Tolerances() Tolerances {
	return Tolerances{
		EntryEarly: minutesOr(c.EntryEarlyMin, DefaultEntryEarlyMinutes),
		EntryLate:  minutesOr(c.EntryLateMin, DefaultEntryLateMinutes),
		ExitEarly:  minutesOr(c.ExitEarlyMin, DefaultExitEarlyMinutes),
		ExitLate:   minutesOr(c.ExitLateMin, DefaultExitLateMinutes),
	}
}

// Location resolves the company timezone, falling back to the given default.
func (c *Company) Location(fallback *time.Location) *time.Location {
	if c.Timezone != "" {
		if loc, err := time.LoadLocation(c.Timezone); err == nil {
			return loc
		}
	}
	if fallback == nil {
		return time.UTC
	}
	return fallback
}

// Tolerances are the schedule margins around a scheduled shift.
type Tolerances struct {
	EntryEarly time.Duration
	EntryLate  time.Duration
	ExitEarly  time.Duration
	ExitLate   time.Duration
}

func minutesOr(v *int, def int) time.Duration {
	if v == nil || *v < 0 {
		return time.Duration(def) * time.Minute
	}
	return time.Duration(*v) * time.Minute
}

// HoursToDuration converts decimal hours to a duration with second precision.
func HoursToDuration(h decimal.Decimal) time.Duration {
	return time.Duration(h.Mul(decimal.NewFromInt(3600)).IntPart()) * time.Second
}

// MembershipRole is the role a worker holds within a company.
type MembershipRole string

const (
	RoleOwner   MembershipRole = "owner"
	RoleAdmin   MembershipRole = "admin"
	RoleManager MembershipRole = "manager"
	RoleWorker  MembershipRole = "worker"
)

// IsAdministrative reports whether the role receives incident notifications.
func (r MembershipRole) IsAdministrative() bool {
	switch r {
	case RoleOwner, RoleAdmin, RoleManager:
		return true
	default:
		return false
	}
}

// Membership links a worker to a company.
type Membership struct {
	WorkerID  string         `json:"workerID" db:"worker_id"`
	CompanyID string         `json:"companyID" db:"company_id"`
	Role      MembershipRole `json:"role" db:"role"`
	JoinedAt  time.Time      `json:"joinedAt" db:"joined_at"`
}
