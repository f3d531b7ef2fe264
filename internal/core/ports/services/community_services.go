package services

import (
	"context"

	"github.com/stackscoop/coop_ledger_app/internal/core/domain"
	"github.com/stackscoop/coop_ledger_app/internal/dto"
)

// CommunityReaderSvc defines read operations on the community registry.
type CommunityReaderSvc interface {
	// GetCommunityByID retrieves a community, including its aggregate totals.
	GetCommunityByID(ctx context.Context, communityID int64) (*domain.Community, error)

	// GetCommunityIDByName resolves a community name to its ID.
	GetCommunityIDByName(ctx context.Context, name string) (int64, error)
}

// CommunityCreatorSvc defines the community creation operation.
type CommunityCreatorSvc interface {
	// CreateCommunity registers a new community with the caller as its fixed
	// admin and first member.
	CreateCommunity(ctx context.Context, req dto.CreateCommunityRequest, creator string) (*domain.Community, error)
}

// CommunitySvcFacade combines all community service interfaces.
type CommunitySvcFacade interface {
	CommunityReaderSvc
	CommunityCreatorSvc
}
