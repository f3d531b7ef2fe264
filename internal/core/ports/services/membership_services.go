package services

import (
	"context"

	"github.com/stackscoop/coop_ledger_app/internal/core/domain"
	"github.com/stackscoop/coop_ledger_app/internal/dto"
)

// MembershipAuthorizerSvc is the authorization guard consulted by every
// mutating operation before storage is touched. It has no state of its own;
// decisions derive from the membership table and the community's fixed admin.
type MembershipAuthorizerSvc interface {
	// AuthorizeAdmin returns nil when the caller is an effective admin of the
	// community: an active ADMIN member, or the community's creator. Fails
	// with apperrors.ErrNotFound when the community does not exist and
	// apperrors.ErrNotAdmin otherwise.
	AuthorizeAdmin(ctx context.Context, communityID int64, caller string) error

	// AuthorizeSubmitter returns nil when the caller may submit records: an
	// active ADMIN or CONTRIBUTOR member, or the community's creator. Fails
	// with apperrors.ErrUnauthorized for viewers and non-members.
	AuthorizeSubmitter(ctx context.Context, communityID int64, caller string) error
}

// MembershipSvcFacade combines membership management with the authorization guard.
type MembershipSvcFacade interface {
	MembershipAuthorizerSvc

	// AddMember adds (or reactivates) a member. Admin-only.
	AddMember(ctx context.Context, communityID int64, req dto.AddMemberRequest, caller string) (*domain.Membership, error)

	// AddMembersBatch adds several members as one atomic unit and returns the
	// number added. Admin-only.
	AddMembersBatch(ctx context.Context, communityID int64, req dto.AddMembersBatchRequest, caller string) (int, error)

	// UpdateMemberRole overwrites an existing member's role. Admin-only.
	UpdateMemberRole(ctx context.Context, communityID int64, account string, role domain.CommunityRole, caller string) error

	// RemoveMember deactivates a membership, preserving its history. Admin-only.
	RemoveMember(ctx context.Context, communityID int64, account string, caller string) error

	// GetMember retrieves a membership row.
	GetMember(ctx context.Context, communityID int64, account string) (*domain.Membership, error)

	// IsAdmin reports whether the account is an effective admin of the community.
	IsAdmin(ctx context.Context, communityID int64, account string) (bool, error)
}
