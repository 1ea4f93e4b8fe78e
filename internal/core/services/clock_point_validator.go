package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/SscSPs/time_clock_app/internal/apperrors"
	"github.com/SscSPs/time_clock_app/internal/core/domain"
	portsrepo "github.com/SscSPs/time_clock_app/internal/core/ports/repositories"
)

type clockPointValidator struct {
	points portsrepo.ClockPointReader
}

func newClockPointValidator(points portsrepo.ClockPointReader) *clockPointValidator {
	return &clockPointValidator{points: points}
}

// Validate resolves a referenced point. It returns nil when none was referenced.
func (v *clockPointValidator) Validate(ctx context.Context, companyID string, pointID domain.PointID) (*domain.ClockPoint, error) {
	if !pointID.IsSet() {
		return nil, nil
	}
	point, err := v.points.FindClockPointByID(ctx, pointID.String())
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.NewClockError(apperrors.CodePointNotFound, "", "clock point not found")
		}
		return nil, fmt.Errorf("failed to load clock point: %w", err)
	}
	if point.CompanyID != companyID || !point.IsActive {
		return nil, apperrors.NewClockError(apperrors.CodePointNotFound, "", "clock point not found")
	}
	return point, nil
}

// resolveAnchor picks the geofence anchor. A point with coordinates wins over headquarters.
func resolveAnchor(company *domain.Company, point *domain.ClockPoint, hqRadius float64) domain.GeofenceAnchor {
	if point != nil {
		if pos, ok := point.Position(); ok {
			radius := point.RadiusMeters
			if radius <= 0 {
				radius = hqRadius
			}
			return domain.GeofenceAnchor{Kind: domain.AnchorPoint, Position: pos, RadiusMeters: radius}
		}
	}
	if pos, ok := company.Headquarters(); ok {
		return domain.GeofenceAnchor{Kind: domain.AnchorHeadquarters, Position: pos, RadiusMeters: hqRadius}
	}
	return domain.GeofenceAnchor{Kind: domain.AnchorNone}
}
