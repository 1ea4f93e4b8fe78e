package services

import (
	portsrepo "github.com/SscSPs/time_clock_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/time_clock_app/internal/core/ports/services"
	"github.com/SscSPs/time_clock_app/internal/platform/config"
)

// NewServiceContainer creates a new service container with properly initialized dependencies
func NewServiceContainer(cfg *config.Config, repos portsrepo.RepositoryProvider) *portssvc.ServiceContainer {
	clock := SystemClock()

	return &portssvc.ServiceContainer{
		Clock:      NewClockService(NewClockConfig(cfg), clock, repos),
		Attendance: NewAttendanceService(clock, repos),
		KioskToken: NewKioskTokenService(repos.KioskTokenRepo, repos.CompanyRepo, clock),
	}
}

// Helper to check interface implementations at compile time
var (
	_ portssvc.ClockSvc            = (*clockService)(nil)
	_ portssvc.AttendanceSvcFacade = (*attendanceService)(nil)
	_ portssvc.KioskTokenSvc       = (*kioskTokenService)(nil)
)
