package pgsql

import (
	"context"
	"net/http"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/SscSPs/time_clock_app/internal/apperrors"
	"github.com/SscSPs/time_clock_app/internal/core/domain"
	portsrepo "github.com/SscSPs/time_clock_app/internal/core/ports/repositories"
)

type PgxDeviceRepository struct {
	BaseRepository
}

func newPgxDeviceRepository(pool *pgxpool.Pool) portsrepo.DeviceRepositoryFacade {
	return &PgxDeviceRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.DeviceRepositoryFacade = (*PgxDeviceRepository)(nil)

func (r *PgxDeviceRepository) FindBinding(ctx context.Context, workerID, companyID, deviceID string) (*domain.DeviceBinding, error) {
	query := `
		SELECT binding_id, worker_id, company_id, device_id, point_id, is_active, last_used_at, created_at
		FROM device_bindings
		WHERE worker_id = $1 AND company_id = $2 AND device_id = $3;
	`
	return collectOne[domain.DeviceBinding](ctx, r.DB(ctx), "device binding", query, workerID, companyID, deviceID)
}

func (r *PgxDeviceRepository) CountActiveBindings(ctx context.Context, workerID, companyID string) (int, error) {
	query := `SELECT count(*) FROM device_bindings WHERE worker_id = $1 AND company_id = $2 AND is_active;`
	var n int
	if err := r.DB(ctx).QueryRow(ctx, query, workerID, companyID).Scan(&n); err != nil {
		return 0, apperrors.NewAppError(http.StatusInternalServerError, "failed to count device bindings", err)
	}
	return n, nil
}

func (r *PgxDeviceRepository) CreateBinding(ctx context.Context, binding domain.DeviceBinding) error {
	query := `
		INSERT INTO device_bindings (
			binding_id, worker_id, company_id, device_id, point_id, is_active, last_used_at, created_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8);
	`
	_, err := r.DB(ctx).Exec(ctx, query,
		binding.BindingID,
		binding.WorkerID,
		binding.CompanyID,
		binding.DeviceID,
		binding.PointID,
		binding.IsActive,
		binding.LastUsedAt,
		binding.CreatedAt,
	)
	if err != nil {
		if _, ok := constraintViolation(err, pgUniqueViolation); ok {
			return apperrors.NewConflictError("device " + binding.DeviceID + " is already bound")
		}
		return apperrors.NewAppError(http.StatusInternalServerError, "failed to create device binding", err)
	}
	return nil
}

func (r *PgxDeviceRepository) TouchBinding(ctx context.Context, bindingID string, usedAt time.Time, pointID *string) error {
	query := `
		UPDATE device_bindings
		SET last_used_at = $2, point_id = COALESCE($3, point_id)
		WHERE binding_id = $1;
	`
	tag, err := r.DB(ctx).Exec(ctx, query, bindingID, usedAt, pointID)
	if err != nil {
		return apperrors.NewAppError(http.StatusInternalServerError, "failed to touch device binding", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *PgxDeviceRepository) FindDeviceRecordByLocalID(ctx context.Context, companyID, localID string) (*domain.DeviceRecord, error) {
	query := `
		SELECT device_record_id, company_id, metadata->>'local_id' AS local_id, name, created_at
		FROM devices
		WHERE company_id = $1 AND metadata->>'local_id' = $2
		ORDER BY created_at
		LIMIT 1;
	`
	return collectOne[domain.DeviceRecord](ctx, r.DB(ctx), "device record", query, companyID, localID)
}

func (r *PgxDeviceRepository) CreateDeviceRecord(ctx context.Context, record domain.DeviceRecord) error {
	query := `
		INSERT INTO devices (device_record_id, company_id, name, metadata, created_at)
		VALUES ($1, $2, $3, jsonb_build_object('local_id', $4::text), $5);
	`
	_, err := r.DB(ctx).Exec(ctx, query,
		record.DeviceRecordID,
		record.CompanyID,
		record.Name,
		record.LocalID,
		record.CreatedAt,
	)
	if err != nil {
		return apperrors.NewAppError(http.StatusInternalServerError, "failed to create device record", err)
	}
	return nil
}
