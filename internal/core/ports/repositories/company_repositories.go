package repositories

import (
	"context"

	"github.com/SscSPs/time_clock_app/internal/core/domain"
)

// CompanyReader defines read operations for tenant data
type CompanyReader interface {
	// FindCompanyByID retrieves a company with its policy attributes.
	FindCompanyByID(ctx context.Context, companyID string) (*domain.Company, error)
}

// MembershipReader defines read operations for worker memberships
type MembershipReader interface {
	// ListMembershipsByWorker retrieves every company membership of a worker.
	ListMembershipsByWorker(ctx context.Context, workerID string) ([]domain.Membership, error)

	// FindMembership retrieves one membership or apperrors.ErrNotFound.
	FindMembership(ctx context.Context, workerID, companyID string) (*domain.Membership, error)

	// ListCompanyAdministrators retrieves memberships with an administrative role.
	ListCompanyAdministrators(ctx context.Context, companyID string) ([]domain.Membership, error)
}

// CompanyRepositoryFacade combines all company-related repository interfaces
type CompanyRepositoryFacade interface {
	CompanyReader
	MembershipReader
}
