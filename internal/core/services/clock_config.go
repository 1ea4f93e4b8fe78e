package services

import (
	"time"

	"github.com/SscSPs/time_clock_app/internal/core/domain"
	"github.com/SscSPs/time_clock_app/internal/platform/config"
)

// ClockConfig carries the environment-derived limits of the clock processor.
type ClockConfig struct {
	MaxDevicesPerWorker         int
	HeadquartersRadiusMeters    float64
	FallbackSource              domain.Source
	DefaultSource               domain.Source
	DefaultLocation             *time.Location
	AllowOutsideScheduleDefault bool
}

// DefaultClockConfig returns the built-in limits.
func DefaultClockConfig() ClockConfig {
	return ClockConfig{
		MaxDevicesPerWorker:      domain.DefaultMaxDevicesPerWorker,
		HeadquartersRadiusMeters: 150,
		FallbackSource:           domain.SourceWeb,
		DefaultSource:            domain.SourceMobile,
		DefaultLocation:          time.UTC,
	}
}

// NewClockConfig builds the processor limits from application config.
func NewClockConfig(cfg *config.Config) ClockConfig {
	cc := DefaultClockConfig()
	if cfg == nil {
		return cc
	}
	if cfg.MaxDevicesPerWorker > 0 {
		cc.MaxDevicesPerWorker = cfg.MaxDevicesPerWorker
	}
	if cfg.HQGeofenceRadiusMeters > 0 {
		cc.HeadquartersRadiusMeters = cfg.HQGeofenceRadiusMeters
	}
	if cfg.EventSourceFallback != "" {
		cc.FallbackSource = domain.Source(cfg.EventSourceFallback)
	}
	if cfg.DefaultSource != "" {
		cc.DefaultSource = domain.Source(cfg.DefaultSource)
	}
	if loc, err := time.LoadLocation(cfg.DefaultTimezone); err == nil && cfg.DefaultTimezone != "" {
		cc.DefaultLocation = loc
	}
	cc.AllowOutsideScheduleDefault = cfg.AllowOutsideScheduleDefault
	return cc
}

// Clock supplies the current time. Tests inject a fixed clock.
type Clock interface {
	Now() time.Time
}

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now().UTC() }

// SystemClock returns the wall clock.
func SystemClock() Clock { return systemClock{} }
