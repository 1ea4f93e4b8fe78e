package pgsql

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/SscSPs/time_clock_app/internal/core/domain"
	portsrepo "github.com/SscSPs/time_clock_app/internal/core/ports/repositories"
)

type PgxClockPointRepository struct {
	BaseRepository
}

func newPgxClockPointRepository(pool *pgxpool.Pool) portsrepo.ClockPointReader {
	return &PgxClockPointRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.ClockPointReader = (*PgxClockPointRepository)(nil)

func (r *PgxClockPointRepository) FindClockPointByID(ctx context.Context, pointID string) (*domain.ClockPoint, error) {
	query := `
		SELECT point_id, company_id, name, latitude, longitude, radius_meters, is_active
		FROM clock_points
		WHERE point_id = $1;
	`
	return collectOne[domain.ClockPoint](ctx, r.DB(ctx), "clock point", query, pointID)
}
