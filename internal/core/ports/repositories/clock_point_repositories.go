package repositories

import (
	"context"

	"github.com/SscSPs/time_clock_app/internal/core/domain"
)

// ClockPointReader defines read operations for clock points
type ClockPointReader interface {
	// FindClockPointByID retrieves a point regardless of company or active flag.
	FindClockPointByID(ctx context.Context, pointID string) (*domain.ClockPoint, error)
}
