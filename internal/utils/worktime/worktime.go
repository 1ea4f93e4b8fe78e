package worktime

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/SscSPs/time_clock_app/internal/core/domain"
)

// hourScale is the number of decimal places reported for worked hours.
const hourScale = 2

// Interval is a closed-open span of time.
type Interval struct {
	Start time.Time
	End   time.Time
}

// Duration returns the interval length, zero if inverted.
func (i Interval) Duration() time.Duration {
	if i.End.Before(i.Start) {
		return 0
	}
	return i.End.Sub(i.Start)
}

// BreakIntervals pairs pause starts with their pause ends inside [start, end].
// A pause still open at end is closed at end. Repeated starts or ends are ignored.
func BreakIntervals(events []domain.TimeEvent, start, end time.Time) []Interval {
	sorted := make([]domain.TimeEvent, len(events))
	copy(sorted, events)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].OccurredAt.Before(sorted[j].OccurredAt) })

	var breaks []Interval
	var open *time.Time
	for _, e := range sorted {
		if e.OccurredAt.Before(start) || e.OccurredAt.After(end) {
			continue
		}
		switch e.EventType {
		case domain.EventPauseStart:
			if open == nil {
				at := e.OccurredAt
				open = &at
			}
		case domain.EventPauseEnd:
			if open != nil {
				breaks = append(breaks, Interval{Start: *open, End: e.OccurredAt})
				open = nil
			}
		}
	}
	if open != nil {
		breaks = append(breaks, Interval{Start: *open, End: end})
	}
	return breaks
}

// Summarize computes gross, break and net durations of a session. Open
// sessions are measured up to now.
func Summarize(session domain.WorkSession, events []domain.TimeEvent, now time.Time) domain.SessionSummary {
	end := now
	if session.ClockOutTime != nil {
		end = *session.ClockOutTime
	}
	gross := session.Elapsed(now)

	var paused time.Duration
	for _, b := range BreakIntervals(sessionEvents(session, events), session.ClockInTime, end) {
		paused += b.Duration()
	}
	if paused > gross {
		paused = gross
	}
	net := gross - paused
	return domain.SessionSummary{
		Session:       session,
		GrossDuration: gross,
		BreakDuration: paused,
		NetDuration:   net,
		NetHours:      DurationToHours(net),
	}
}

// DurationToHours converts a duration to decimal hours rounded to two places.
func DurationToHours(d time.Duration) decimal.Decimal {
	seconds := decimal.NewFromInt(int64(d / time.Second))
	return seconds.Div(decimal.NewFromInt(3600)).Round(hourScale)
}

// TotalNetHours sums the net hours of several sessions.
func TotalNetHours(summaries []domain.SessionSummary) decimal.Decimal {
	var total time.Duration
	for _, s := range summaries {
		total += s.NetDuration
	}
	return DurationToHours(total)
}

func sessionEvents(session domain.WorkSession, events []domain.TimeEvent) []domain.TimeEvent {
	out := make([]domain.TimeEvent, 0, len(events))
	for _, e := range events {
		if e.SessionID != nil && *e.SessionID != session.SessionID {
			continue
		}
		out = append(out, e)
	}
	return out
}
