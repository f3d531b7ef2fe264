package services

import (
	portsrepo "github.com/stackscoop/coop_ledger_app/internal/core/ports/repositories"
	portssvc "github.com/stackscoop/coop_ledger_app/internal/core/ports/services"
)

// NewContainer creates a new service container with properly initialized
// dependencies. The membership service doubles as the authorization guard
// for the record ledger.
func NewContainer(repos *portsrepo.RepositoryProvider) *portssvc.ServiceContainer {
	container := &portssvc.ServiceContainer{}

	container.Community = NewCommunityService(repos.CommunityRepo)

	// Membership service first: the record service authorizes through it.
	container.Membership = NewMembershipService(repos.MembershipRepo, repos.CommunityRepo)

	container.Record = NewRecordService(repos.RecordRepo, repos.CommunityRepo, container.Membership)

	return container
}
