package domain

import (
	"errors"

	"github.com/google/uuid"
)

// Coordinates is a validated WGS84 position.
type Coordinates struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

var ErrInvalidCoordinates = errors.New("latitude must be within [-90,90] and longitude within [-180,180]")

// NewCoordinates builds coordinates from optional request values. Both must be
// present for a position to exist; a single value is treated as absent.
func NewCoordinates(lat, lon *float64) (*Coordinates, error) {
	if lat == nil || lon == nil {
		return nil, nil
	}
	if *lat < -90 || *lat > 90 || *lon < -180 || *lon > 180 {
		return nil, ErrInvalidCoordinates
	}
	return &Coordinates{Latitude: *lat, Longitude: *lon}, nil
}

// PointID is a clock-point reference validated once at the request boundary.
// The zero value means no point was referenced.
type PointID struct {
	id    uuid.UUID
	valid bool
}

var ErrInvalidPointID = errors.New("point id is not a valid uuid")

// ParsePointID validates a raw point identifier. An empty string yields the
// zero PointID; anything else must be a UUID.
func ParsePointID(raw string) (PointID, error) {
	if raw == "" {
		return PointID{}, nil
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return PointID{}, ErrInvalidPointID
	}
	return PointID{id: id, valid: true}, nil
}

// IsSet reports whether a point was referenced.
func (p PointID) IsSet() bool { return p.valid }

// String returns the canonical uuid form, or "" when unset.
func (p PointID) String() string {
	if !p.valid {
		return ""
	}
	return p.id.String()
}

// Ptr returns the id for nullable columns; nil when unset, never "".
func (p PointID) Ptr() *string {
	if !p.valid {
		return nil
	}
	s := p.id.String()
	return &s
}

// ClockPoint is a named physical check-in location with its own geofence.
type ClockPoint struct {
	PointID      string   `json:"pointID" db:"point_id"`
	CompanyID    string   `json:"companyID" db:"company_id"`
	Name         string   `json:"name" db:"name"`
	Latitude     *float64 `json:"latitude,omitempty" db:"latitude"`
	Longitude    *float64 `json:"longitude,omitempty" db:"longitude"`
	RadiusMeters float64  `json:"radiusMeters" db:"radius_meters"`
	IsActive     bool     `json:"isActive" db:"is_active"`
}

// Position returns the point coordinates if configured.
func (p *ClockPoint) Position() (Coordinates, bool) {
	if p.Latitude == nil || p.Longitude == nil {
		return Coordinates{}, false
	}
	return Coordinates{Latitude: *p.Latitude, Longitude: *p.Longitude}, true
}

// AnchorKind tells where a geofence anchor came from.
type AnchorKind string

const (
	AnchorNone         AnchorKind = "none"
	AnchorPoint        AnchorKind = "point"
	AnchorHeadquarters AnchorKind = "headquarters"
)

// GeofenceAnchor is the reference position a clock action is measured against.
type GeofenceAnchor struct {
	Kind         AnchorKind
	Position     Coordinates
	RadiusMeters float64
}

// GeofenceResult is the outcome of evaluating a reported position. Nil fields
// mean the geofence was not enforced for this action.
type GeofenceResult struct {
	DistanceMeters *float64
	WithinGeofence *bool
}
