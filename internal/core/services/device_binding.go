package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/SscSPs/time_clock_app/internal/apperrors"
	"github.com/SscSPs/time_clock_app/internal/core/domain"
	portsrepo "github.com/SscSPs/time_clock_app/internal/core/ports/repositories"
)

type deviceBindingManager struct {
	BaseService
	devices    portsrepo.DeviceRepositoryFacade
	uow        portsrepo.UnitOfWork
	maxDevices int
}

func newDeviceBindingManager(devices portsrepo.DeviceRepositoryFacade, uow portsrepo.UnitOfWork, maxDevices int) *deviceBindingManager {
	if maxDevices <= 0 {
		maxDevices = domain.DefaultMaxDevicesPerWorker
	}
	return &deviceBindingManager{devices: devices, uow: uow, maxDevices: maxDevices}
}

// Bind validates the device against the worker's bindings, touching an existing
// binding or creating a new one within the cap.
func (m *deviceBindingManager) Bind(ctx context.Context, workerID, companyID, deviceID string, pointID domain.PointID, now time.Time) error {
	if deviceID == "" {
		return apperrors.NewClockError(apperrors.CodeDeviceRequired, "", "device_id is required")
	}

	binding, err := m.devices.FindBinding(ctx, workerID, companyID, deviceID)
	switch {
	case err == nil:
		if !binding.IsActive {
			return apperrors.NewClockError(apperrors.CodeDeviceRevoked, "", "this device has been revoked")
		}
		if err := m.devices.TouchBinding(ctx, binding.BindingID, now, pointID.Ptr()); err != nil {
			return fmt.Errorf("failed to touch device binding: %w", err)
		}
		return nil
	case !errors.Is(err, apperrors.ErrNotFound):
		return fmt.Errorf("failed to find device binding: %w", err)
	}

	active, err := m.devices.CountActiveBindings(ctx, workerID, companyID)
	if err != nil {
		return fmt.Errorf("failed to count device bindings: %w", err)
	}
	if active >= m.maxDevices {
		return apperrors.NewClockError(apperrors.CodeDeviceLimitExceeded, "",
			fmt.Sprintf("at most %d devices can be bound", m.maxDevices))
	}

	usedAt := now
	err = m.devices.CreateBinding(ctx, domain.DeviceBinding{
		BindingID:  uuid.NewString(),
		WorkerID:   workerID,
		CompanyID:  companyID,
		DeviceID:   deviceID,
		PointID:    pointID.Ptr(),
		IsActive:   true,
		LastUsedAt: &usedAt,
		CreatedAt:  now,
	})
	if err != nil {
		return fmt.Errorf("failed to create device binding: %w", err)
	}
	m.LogInfo(ctx, "Bound new device",
		slog.String("worker_id", workerID),
		slog.String("company_id", companyID),
		slog.Int("active_bindings", active+1))
	return nil
}

// ResolveDeviceRecord finds or lazily registers the company device used for event
// attribution. Failures are logged and yield nil.
func (m *deviceBindingManager) ResolveDeviceRecord(ctx context.Context, companyID, deviceID string, now time.Time) *string {
	var recordID string
	err := m.uow.Savepoint(ctx, func(ctx context.Context) error {
		record, err := m.devices.FindDeviceRecordByLocalID(ctx, companyID, deviceID)
		if err == nil {
			recordID = record.DeviceRecordID
			return nil
		}
		if !errors.Is(err, apperrors.ErrNotFound) {
			return err
		}
		created := domain.DeviceRecord{
			DeviceRecordID: uuid.NewString(),
			CompanyID:      companyID,
			LocalID:        deviceID,
			Name:           "Device " + shortID(deviceID),
			CreatedAt:      now,
		}
		if err := m.devices.CreateDeviceRecord(ctx, created); err != nil {
			return err
		}
		recordID = created.DeviceRecordID
		return nil
	})
	if err != nil {
		m.LogWarn(ctx, err, "Device record unavailable, recording event without device attribution",
			slog.String("company_id", companyID))
		return nil
	}
	return &recordID
}

func shortID(s string) string {
	if len(s) <= 8 {
		return s
	}
	return s[:8]
}
