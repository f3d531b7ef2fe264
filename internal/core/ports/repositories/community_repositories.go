package repositories

import (
	"context"
	"time"

	"github.com/stackscoop/coop_ledger_app/internal/core/domain"
)

// CommunityReader defines read operations for community data
type CommunityReader interface {
	// FindCommunityByID retrieves a specific community by its ID.
	FindCommunityByID(ctx context.Context, communityID int64) (*domain.Community, error)

	// FindCommunityIDByName retrieves the ID of the community with the given
	// name (case-sensitive exact match).
	FindCommunityIDByName(ctx context.Context, name string) (int64, error)
}

// CommunityWriter defines write operations for community data
type CommunityWriter interface {
	// CreateCommunity allocates a new community ID and persists the community
	// row together with the creator's ADMIN membership in a single
	// transaction. A community is never observable with zero members.
	// Returns apperrors.ErrDuplicate if the name is already taken.
	CreateCommunity(ctx context.Context, name, creator string, createdAt time.Time) (*domain.Community, error)
}

// CommunityRepositoryFacade combines all community-related repository interfaces
type CommunityRepositoryFacade interface {
	CommunityReader
	CommunityWriter
}

// CommunityRepositoryWithTx extends CommunityRepositoryFacade with transaction capabilities
type CommunityRepositoryWithTx interface {
	CommunityRepositoryFacade
	TransactionManager
}
