package services

import (
	portsrepo "github.com/SscSPs/postal_ledger/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/postal_ledger/internal/core/ports/services"
	"github.com/SscSPs/postal_ledger/internal/platform/config"
)

// NewServiceContainer creates a new service container with properly initialized dependencies.
// With AuthEnabled the auth service is wired as the authorizer of every ledger service.
func NewServiceContainer(cfg *config.Config, repos portsrepo.RepositoryProvider) *portssvc.ServiceContainer {
	container := &portssvc.ServiceContainer{}

	container.Auth = NewAuthService(cfg, repos.StaffUserRepo)

	var options []ServiceOption
	if cfg.AuthEnabled {
		options = append(options, WithAuthorizer(container.Auth))
	}

	container.Posting = NewPostingService(repos.PostingRepo, options...)
	container.Pending = NewPendingPaymentsService(repos.PostingRepo, options...)
	container.Closing = NewClosingService(repos.ClosingRepo, repos.PostingRepo, options...)
	container.Reporting = NewReportingService(repos.PostingRepo, options...)

	return container
}
