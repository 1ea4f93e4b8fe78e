package services

import (
	"context"
	"fmt"

	"github.com/SscSPs/time_clock_app/internal/apperrors"
	"github.com/SscSPs/time_clock_app/internal/core/domain"
	portsrepo "github.com/SscSPs/time_clock_app/internal/core/ports/repositories"
)

// Tenant is the resolved worker and company context of a request.
type Tenant struct {
	WorkerID   string
	Membership domain.Membership
	Company    domain.Company
}

type tenantResolver struct {
	companies portsrepo.CompanyRepositoryFacade
}

func newTenantResolver(companies portsrepo.CompanyRepositoryFacade) *tenantResolver {
	return &tenantResolver{companies: companies}
}

// Resolve picks the acting worker and the company the request applies to.
// In kiosk mode the worker comes from the request and the company is pinned
// to the terminal's company.
func (r *tenantResolver) Resolve(ctx context.Context, actor domain.Actor, workerID, companySelector string) (*Tenant, error) {
	worker := actor.SubjectID
	if actor.IsKiosk() {
		worker = workerID
		companySelector = actor.KioskCompanyID
	}
	if worker == "" {
		return nil, apperrors.NewClockError(apperrors.CodeNotAuthenticated, "", "authentication required")
	}

	memberships, err := r.companies.ListMembershipsByWorker(ctx, worker)
	if err != nil {
		return nil, fmt.Errorf("failed to list memberships: %w", err)
	}
	if len(memberships) == 0 {
		return nil, apperrors.NewClockError(apperrors.CodeNoCompany, "", "worker does not belong to any company")
	}

	var selected *domain.Membership
	switch {
	case companySelector != "":
		for i := range memberships {
			if memberships[i].CompanyID == companySelector {
				selected = &memberships[i]
				break
			}
		}
		if selected == nil {
			return nil, apperrors.NewClockError(apperrors.CodeNoCompany, "", "worker does not belong to the selected company")
		}
	case len(memberships) > 1:
		return nil, apperrors.NewClockError(apperrors.CodeCompanySelectionRequired, "", "worker belongs to several companies; company_id is required")
	default:
		selected = &memberships[0]
	}

	company, err := r.companies.FindCompanyByID(ctx, selected.CompanyID)
	if err != nil {
		return nil, fmt.Errorf("failed to load company %s: %w", selected.CompanyID, err)
	}
	return &Tenant{WorkerID: worker, Membership: *selected, Company: *company}, nil
}
