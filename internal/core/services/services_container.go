package services

import (
	portsrepo "github.com/generalbooks/general_ledger_app/internal/core/ports/repositories"
	portssvc "github.com/generalbooks/general_ledger_app/internal/core/ports/services"
)

// NewServiceContainer creates a new service container with properly initialized dependencies
func NewServiceContainer(repos portsrepo.RepositoryProvider) *portssvc.ServiceContainer {
	container := &portssvc.ServiceContainer{}

	// Account service first since posting and reporting validate against it
	container.Account = NewAccountService(repos.AccountRepo)
	container.Posting = NewPostingService(repos.LedgerRepo, container.Account)
	container.Reporting = NewReportingService(repos.ReportingRepo, repos.LedgerRepo, container.Account)

	return container
}
