package domain

import "time"

// SessionStatus is the persisted state of a work session.
type SessionStatus string

const (
	SessionOpen       SessionStatus = "open"
	SessionClosed     SessionStatus = "closed"
	SessionAutoClosed SessionStatus = "auto_closed"
)

// ReviewStatus flags sessions that need an administrator.
type ReviewStatus string

const (
	ReviewPending       ReviewStatus = "pending_review"
	ReviewExceededLimit ReviewStatus = "exceeded_limit"
)

// WorkSession is one continuous (possibly paused) attendance period.
type WorkSession struct {
	SessionID    string        `json:"sessionID" db:"session_id"`
	WorkerID     string        `json:"workerID" db:"worker_id"`
	CompanyID    string        `json:"companyID" db:"company_id"`
	ClockInTime  time.Time     `json:"clockInTime" db:"clock_in_time"`
	ClockOutTime *time.Time    `json:"clockOutTime,omitempty" db:"clock_out_time"`
	IsActive     bool          `json:"isActive" db:"is_active"`
	Status       SessionStatus `json:"status" db:"status"`
	ReviewStatus *ReviewStatus `json:"reviewStatus,omitempty" db:"review_status"`
	CreatedAt    time.Time     `json:"createdAt" db:"created_at"`
	UpdatedAt    time.Time     `json:"updatedAt" db:"updated_at"`
}

// Elapsed returns time since clock-in, or the closed duration.
func (s *WorkSession) Elapsed(now time.Time) time.Duration {
	end := now
	if s.ClockOutTime != nil {
		end = *s.ClockOutTime
	}
	if end.Before(s.ClockInTime) {
		return 0
	}
	return end.Sub(s.ClockInTime)
}

// ElapsedSince returns the part of Elapsed that falls at or after since.
func (s *WorkSession) ElapsedSince(since, now time.Time) time.Duration {
	if s.ClockInTime.Before(since) {
		clipped := *s
		clipped.ClockInTime = since
		return clipped.Elapsed(now)
	}
	return s.Elapsed(now)
}

// WorkerStatus is the derived attendance state shown to workers.
type WorkerStatus string

const (
	StatusWorking WorkerStatus = "working"
	StatusPaused  WorkerStatus = "paused"
	StatusOff     WorkerStatus = "off"
)
