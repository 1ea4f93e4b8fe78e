package pgsql

import (
	"github.com/jackc/pgx/v5/pgxpool"

	portsrepo "github.com/SscSPs/time_clock_app/internal/core/ports/repositories"
)

func NewRepositoryProvider(dbPool *pgxpool.Pool) portsrepo.RepositoryProvider {
	return portsrepo.RepositoryProvider{
		UnitOfWork:     newPgxUnitOfWork(dbPool),
		CompanyRepo:    newPgxCompanyRepository(dbPool),
		ClockPointRepo: newPgxClockPointRepository(dbPool),
		DeviceRepo:     newPgxDeviceRepository(dbPool),
		PolicyRepo:     newPgxPolicyRepository(dbPool),
		SessionRepo:    newPgxSessionRepository(dbPool),
		TimeEventRepo:  newPgxTimeEventRepository(dbPool),
		IncidentRepo:   newPgxIncidentRepository(dbPool),
		NotifyRepo:     newPgxNotificationRepository(dbPool),
		KioskTokenRepo: newPgxKioskTokenRepository(dbPool),
	}
}
