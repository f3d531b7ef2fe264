package pgsql

import (
	portsrepo "github.com/stackscoop/coop_ledger_app/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
)

func NewRepositoryProvider(dbPool *pgxpool.Pool) *portsrepo.RepositoryProvider {
	communityRepo := newPgxCommunityRepository(dbPool)
	membershipRepo := newPgxMembershipRepository(dbPool)
	recordRepo := newPgxRecordRepository(dbPool)

	return &portsrepo.RepositoryProvider{
		CommunityRepo:  communityRepo,
		MembershipRepo: membershipRepo,
		RecordRepo:     recordRepo,
	}
}
