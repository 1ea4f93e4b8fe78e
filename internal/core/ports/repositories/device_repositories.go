package repositories

import (
	"context"
	"time"

	"github.com/SscSPs/time_clock_app/internal/core/domain"
)

// DeviceBindingRepository defines operations on worker device bindings
type DeviceBindingRepository interface {
	// FindBinding retrieves the binding for (worker, company, device) or apperrors.ErrNotFound.
	FindBinding(ctx context.Context, workerID, companyID, deviceID string) (*domain.DeviceBinding, error)

	// CountActiveBindings counts active bindings for (worker, company).
	CountActiveBindings(ctx context.Context, workerID, companyID string) (int, error)

	// CreateBinding persists a new binding.
	CreateBinding(ctx context.Context, binding domain.DeviceBinding) error

	// TouchBinding refreshes last-used and, when pointID is non-nil, the associated point.
	TouchBinding(ctx context.Context, bindingID string, usedAt time.Time, pointID *string) error
}

// DeviceRecordRepository defines operations on the company device registry
type DeviceRecordRepository interface {
	// FindDeviceRecordByLocalID retrieves a record by its client identifier or apperrors.ErrNotFound.
	FindDeviceRecordByLocalID(ctx context.Context, companyID, localID string) (*domain.DeviceRecord, error)

	// CreateDeviceRecord persists a new registry entry.
	CreateDeviceRecord(ctx context.Context, record domain.DeviceRecord) error
}

// DeviceRepositoryFacade combines binding and registry operations
type DeviceRepositoryFacade interface {
	DeviceBindingRepository
	DeviceRecordRepository
}
