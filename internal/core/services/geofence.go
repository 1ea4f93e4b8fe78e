package services

import (
	"math"

	"github.com/SscSPs/time_clock_app/internal/apperrors"
	"github.com/SscSPs/time_clock_app/internal/core/domain"
)

// EarthRadiusMeters is the mean Earth radius used for great-circle distances.
const EarthRadiusMeters = 6371000.0

// HaversineMeters returns the great-circle distance between two positions.
func HaversineMeters(a, b domain.Coordinates) float64 {
	lat1 := a.Latitude * math.Pi / 180
	lat2 := b.Latitude * math.Pi / 180
	dLat := (b.Latitude - a.Latitude) * math.Pi / 180
	dLon := (b.Longitude - a.Longitude) * math.Pi / 180

	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1)*math.Cos(lat2)*math.Sin(dLon/2)*math.Sin(dLon/2)
	return 2 * EarthRadiusMeters * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))
}

// EvaluateGeofence measures the reported position against the anchor.
// Without an anchor the geofence is not enforced and both results stay nil.
func EvaluateGeofence(reported *domain.Coordinates, anchor domain.GeofenceAnchor) (domain.GeofenceResult, error) {
	if anchor.Kind == domain.AnchorPoint && reported == nil {
		return domain.GeofenceResult{}, apperrors.NewClockError(apperrors.CodeLocationRequired, "",
			"location is required when clocking at a clock point")
	}
	if reported == nil || anchor.Kind == domain.AnchorNone {
		return domain.GeofenceResult{}, nil
	}
	distance := HaversineMeters(*reported, anchor.Position)
	within := distance <= anchor.RadiusMeters
	return domain.GeofenceResult{DistanceMeters: &distance, WithinGeofence: &within}, nil
}
