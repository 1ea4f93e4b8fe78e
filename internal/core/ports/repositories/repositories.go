package repositories

// RepositoryProvider holds all repository interfaces needed by services.
// This makes passing dependencies to the service container constructor cleaner.
type RepositoryProvider struct {
	UnitOfWork     UnitOfWork
	CompanyRepo    CompanyRepositoryFacade
	ClockPointRepo ClockPointReader
	DeviceRepo     DeviceRepositoryFacade
	PolicyRepo     PolicyRepositoryFacade
	SessionRepo    SessionRepositoryFacade
	TimeEventRepo  TimeEventRepositoryFacade
	IncidentRepo   IncidentRepository
	NotifyRepo     NotificationRepository
	KioskTokenRepo KioskTokenRepository
}
