package pgsql

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/SscSPs/time_clock_app/internal/core/domain"
	portsrepo "github.com/SscSPs/time_clock_app/internal/core/ports/repositories"
)

type PgxCompanyRepository struct {
	BaseRepository
}

// newPgxCompanyRepository creates a new repository for company and membership data.
func newPgxCompanyRepository(pool *pgxpool.Pool) portsrepo.CompanyRepositoryFacade {
	return &PgxCompanyRepository{BaseRepository: BaseRepository{Pool: pool}}
}

// Ensure PgxCompanyRepository implements portsrepo.CompanyRepositoryFacade
var _ portsrepo.CompanyRepositoryFacade = (*PgxCompanyRepository)(nil)

const companySelectQuery = `
SELECT
	c.company_id, c.name, c.status, c.timezone, c.hq_latitude, c.hq_longitude,
	c.max_shift_hours, c.entry_early_minutes, c.entry_late_minutes,
	c.exit_early_minutes, c.exit_late_minutes, c.created_at
FROM companies c
`

const membershipSelectQuery = `
SELECT m.worker_id, m.company_id, m.role, m.joined_at
FROM memberships m
`

func (r *PgxCompanyRepository) FindCompanyByID(ctx context.Context, companyID string) (*domain.Company, error) {
	return collectOne[domain.Company](ctx, r.DB(ctx), "company", companySelectQuery+`WHERE c.company_id = $1`, companyID)
}

func (r *PgxCompanyRepository) ListMembershipsByWorker(ctx context.Context, workerID string) ([]domain.Membership, error) {
	return collectRows[domain.Membership](ctx, r.DB(ctx), "memberships",
		membershipSelectQuery+`WHERE m.worker_id = $1 ORDER BY m.joined_at`, workerID)
}

func (r *PgxCompanyRepository) FindMembership(ctx context.Context, workerID, companyID string) (*domain.Membership, error) {
	return collectOne[domain.Membership](ctx, r.DB(ctx), "membership",
		membershipSelectQuery+`WHERE m.worker_id = $1 AND m.company_id = $2`, workerID, companyID)
}

func (r *PgxCompanyRepository) ListCompanyAdministrators(ctx context.Context, companyID string) ([]domain.Membership, error) {
	return collectRows[domain.Membership](ctx, r.DB(ctx), "company administrators",
		membershipSelectQuery+`WHERE m.company_id = $1 AND m.role IN ('owner', 'admin', 'manager') ORDER BY m.joined_at`, companyID)
}
