package services

import (
	portsrepo "github.com/ukmbooks/ukm_bookkeeping_app/internal/core/ports/repositories"
	portssvc "github.com/ukmbooks/ukm_bookkeeping_app/internal/core/ports/services"
	"github.com/ukmbooks/ukm_bookkeeping_app/internal/platform/config"
)

// NewServiceContainer creates a new service container with properly initialized dependencies
func NewServiceContainer(cfg *config.Config, repos portsrepo.RepositoryProvider) *portssvc.ServiceContainer {
	container := &portssvc.ServiceContainer{}

	// The journal engine is the hub; the classifier and inventory services
	// both route their entries through it.
	container.Journal = NewJournalService(repos.JournalRepo, repos.AccountRepo, cfg.ApprovalThreshold)
	container.Account = NewAccountService(repos.AccountRepo, repos.JournalRepo)
	container.Transaction = NewTransactionService(container.Journal)
	container.Reporting = NewReportingService(repos.ReportingRepo)
	container.Inventory = NewInventoryService(repos.InventoryRepo, container.Transaction)
	container.User = NewUserService(repos.UserRepo)
	container.Auth = NewAuthService(repos.UserRepo, cfg.JWTSecret, cfg.JWTExpiryDuration, cfg.JWTIssuer)

	return container
}
