package worktime

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/SscSPs/time_clock_app/internal/core/domain"
)

func event(sessionID string, kind domain.EventType, at time.Time) domain.TimeEvent {
	return domain.TimeEvent{SessionID: &sessionID, EventType: kind, OccurredAt: at}
}

func TestSummarize_ClosedSessionWithBreak(t *testing.T) {
	in := time.Date(2024, 3, 4, 8, 0, 0, 0, time.UTC)
	out := in.Add(8 * time.Hour)
	session := domain.WorkSession{SessionID: "s1", ClockInTime: in, ClockOutTime: &out}
	events := []domain.TimeEvent{
		event("s1", domain.EventClockIn, in),
		event("s1", domain.EventPauseStart, in.Add(4*time.Hour)),
		event("s1", domain.EventPauseEnd, in.Add(4*time.Hour+30*time.Minute)),
		event("other", domain.EventPauseStart, in.Add(5*time.Hour)),
		event("s1", domain.EventClockOut, out),
	}

	summary := Summarize(session, events, out.Add(time.Hour))

	assert.Equal(t, 8*time.Hour, summary.GrossDuration)
	assert.Equal(t, 30*time.Minute, summary.BreakDuration)
	assert.Equal(t, 7*time.Hour+30*time.Minute, summary.NetDuration)
	assert.True(t, decimal.RequireFromString("7.5").Equal(summary.NetHours), "net hours: %s", summary.NetHours)
}

func TestSummarize_OpenSessionStillPaused(t *testing.T) {
	in := time.Date(2024, 3, 4, 8, 0, 0, 0, time.UTC)
	now := in.Add(3 * time.Hour)
	session := domain.WorkSession{SessionID: "s1", ClockInTime: in, IsActive: true}
	events := []domain.TimeEvent{
		event("s1", domain.EventPauseStart, in.Add(2*time.Hour)),
	}

	summary := Summarize(session, events, now)

	assert.Equal(t, 3*time.Hour, summary.GrossDuration)
	assert.Equal(t, time.Hour, summary.BreakDuration)
	assert.Equal(t, 2*time.Hour, summary.NetDuration)
}

func TestBreakIntervals_IgnoresUnmatchedEnds(t *testing.T) {
	start := time.Date(2024, 3, 4, 8, 0, 0, 0, time.UTC)
	end := start.Add(4 * time.Hour)
	events := []domain.TimeEvent{
		event("s1", domain.EventPauseEnd, start.Add(10*time.Minute)),
		event("s1", domain.EventPauseStart, start.Add(time.Hour)),
		event("s1", domain.EventPauseStart, start.Add(time.Hour+5*time.Minute)),
		event("s1", domain.EventPauseEnd, start.Add(time.Hour+20*time.Minute)),
	}

	breaks := BreakIntervals(events, start, end)

	assert.Len(t, breaks, 1)
	assert.Equal(t, 20*time.Minute, breaks[0].Duration())
}

func TestDurationToHours(t *testing.T) {
	tests := []struct {
		name string
		in   time.Duration
		want string
	}{
		{"zero", 0, "0"},
		{"whole", 2 * time.Hour, "2"},
		{"quarter", 90*time.Minute + 15*time.Minute, "1.75"},
		{"rounded", 20 * time.Minute, "0.33"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := DurationToHours(tt.in)
			assert.True(t, decimal.RequireFromString(tt.want).Equal(got), "got %s want %s", got, tt.want)
		})
	}
}

func TestTotalNetHours(t *testing.T) {
	summaries := []domain.SessionSummary{
		{NetDuration: 90 * time.Minute},
		{NetDuration: 45 * time.Minute},
	}
	assert.True(t, decimal.RequireFromString("2.25").Equal(TotalNetHours(summaries)))
}
