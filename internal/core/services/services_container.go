package services

import (
	portsrepo "github.com/pennyledger/pennyledger_app/internal/core/ports/repositories"
	portssvc "github.com/pennyledger/pennyledger_app/internal/core/ports/services"
)

// NewServiceContainer creates a new service container with properly initialized dependencies
func NewServiceContainer(repos portsrepo.RepositoryProvider) *portssvc.ServiceContainer {
	container := &portssvc.ServiceContainer{}

	// Initialize organization service first since other services depend on it
	// for authorization
	container.Organization = NewOrganizationService(repos.OrganizationRepo)

	authorizer := container.Organization.(portssvc.OrganizationAuthorizerSvc)

	container.Account = NewAccountService(
		repos.AccountRepo,
		WithOrganizationAuthorizer(authorizer),
	)

	container.Journal = NewJournalService(
		repos.JournalRepo,
		repos.AccountRepo,
		WithJournalOrganizationAuthorizer(authorizer),
	)

	container.Reporting = NewReportingService(
		repos.ReportingRepo,
		repos.JournalRepo,
		WithReportingOrganizationAuthorizer(authorizer),
	)

	return container
}

// Helper to check interface implementations at compile time
var (
	_ portssvc.AccountSvcFacade      = (*accountService)(nil)
	_ portssvc.JournalSvcFacade      = (*journalService)(nil)
	_ portssvc.ReportingSvc          = (*reportingService)(nil)
	_ portssvc.OrganizationSvcFacade = (*organizationService)(nil)
)
