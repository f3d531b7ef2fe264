package repositories

import (
	"context"

	"github.com/stackscoop/coop_ledger_app/internal/core/domain"
)

// MembershipReader defines read operations for membership data
type MembershipReader interface {
	// FindMembership retrieves the membership row for an account in a
	// community, whether active or not.
	FindMembership(ctx context.Context, communityID int64, account string) (*domain.Membership, error)
}

// MembershipWriter defines write operations for membership data
type MembershipWriter interface {
	// AddMember creates a membership, or reactivates an inactive one with the
	// new role and joined-at. The community's member count is incremented in
	// the same transaction. Returns apperrors.ErrDuplicate when an active
	// membership already exists.
	AddMember(ctx context.Context, membership domain.Membership) error

	// AddMembers applies a batch of additions as a single transaction: either
	// every entry is added and the member count bumped by the batch size, or
	// nothing is. Returns the number of members added.
	AddMembers(ctx context.Context, communityID int64, memberships []domain.Membership) (int, error)

	// UpdateMemberRole overwrites the role of an existing membership, leaving
	// active and joined-at untouched.
	UpdateMemberRole(ctx context.Context, communityID int64, account string, role domain.CommunityRole) error

	// DeactivateMember flips the membership's active flag to false. The row
	// and the community's member count are left in place.
	DeactivateMember(ctx context.Context, communityID int64, account string) error
}

// MembershipRepositoryFacade combines all membership-related repository interfaces
type MembershipRepositoryFacade interface {
	MembershipReader
	MembershipWriter
}

// MembershipRepositoryWithTx extends MembershipRepositoryFacade with transaction capabilities
type MembershipRepositoryWithTx interface {
	MembershipRepositoryFacade
	TransactionManager
}
