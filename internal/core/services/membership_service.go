package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/stackscoop/coop_ledger_app/internal/apperrors"
	"github.com/stackscoop/coop_ledger_app/internal/core/domain"
	portsrepo "github.com/stackscoop/coop_ledger_app/internal/core/ports/repositories"
	portssvc "github.com/stackscoop/coop_ledger_app/internal/core/ports/services"
	"github.com/stackscoop/coop_ledger_app/internal/dto"
	"github.com/stackscoop/coop_ledger_app/internal/middleware"
)

// membershipService handles business logic for community memberships and is
// the authorization root for all privileged operations.
type membershipService struct {
	membershipRepo portsrepo.MembershipRepositoryFacade
	communityRepo  portsrepo.CommunityReader
}

// NewMembershipService creates a new MembershipService.
func NewMembershipService(mr portsrepo.MembershipRepositoryFacade, cr portsrepo.CommunityReader) portssvc.MembershipSvcFacade {
	return &membershipService{
		membershipRepo: mr,
		communityRepo:  cr,
	}
}

// Ensure membershipService implements the portssvc.MembershipSvcFacade interface
var _ portssvc.MembershipSvcFacade = (*membershipService)(nil)

// isEffectiveAdmin reports whether the account is an active ADMIN member or
// the community's fixed admin. The creator check means the creator never
// loses admin rights, even if their membership row were altered.
func (s *membershipService) isEffectiveAdmin(ctx context.Context, community *domain.Community, account string) (bool, error) {
	if account == community.Admin {
		return true, nil
	}

	membership, err := s.membershipRepo.FindMembership(ctx, community.CommunityID, account)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return false, nil
		}
		return false, err
	}
	return membership.Role == domain.RoleAdmin && membership.Active, nil
}

// AuthorizeAdmin checks that the caller may perform admin-only actions in the
// community. Returns apperrors.ErrNotFound if the community does not exist
// and apperrors.ErrNotAdmin if the caller is not an effective admin.
func (s *membershipService) AuthorizeAdmin(ctx context.Context, communityID int64, caller string) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	community, err := s.communityRepo.FindCommunityByID(ctx, communityID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return apperrors.ErrNotFound
		}
		logger.Error("Failed to load community for authorization", slog.String("error", err.Error()), slog.Int64("community_id", communityID))
		return fmt.Errorf("failed to check authorization: %w", err)
	}

	isAdmin, err := s.isEffectiveAdmin(ctx, community, caller)
	if err != nil {
		logger.Error("Failed to check admin role", slog.String("error", err.Error()), slog.Int64("community_id", communityID), slog.String("caller", caller))
		return fmt.Errorf("failed to check authorization: %w", err)
	}
	if !isAdmin {
		logger.Warn("Authorization failed: caller is not an admin", slog.Int64("community_id", communityID), slog.String("caller", caller))
		return apperrors.ErrNotAdmin
	}
	return nil
}

// AuthorizeSubmitter checks that the caller may submit records in the
// community: an active ADMIN or CONTRIBUTOR membership, or the community's
// fixed admin. Viewers and non-members fail with apperrors.ErrUnauthorized.
func (s *membershipService) AuthorizeSubmitter(ctx context.Context, communityID int64, caller string) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	community, err := s.communityRepo.FindCommunityByID(ctx, communityID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return apperrors.ErrNotFound
		}
		logger.Error("Failed to load community for authorization", slog.String("error", err.Error()), slog.Int64("community_id", communityID))
		return fmt.Errorf("failed to check authorization: %w", err)
	}

	if caller == community.Admin {
		return nil
	}

	membership, err := s.membershipRepo.FindMembership(ctx, communityID, caller)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			logger.Warn("Authorization failed: caller is not a member", slog.Int64("community_id", communityID), slog.String("caller", caller))
			return apperrors.ErrUnauthorized
		}
		logger.Error("Failed to check membership role", slog.String("error", err.Error()), slog.Int64("community_id", communityID), slog.String("caller", caller))
		return fmt.Errorf("failed to check authorization: %w", err)
	}

	if !membership.Active || (membership.Role != domain.RoleAdmin && membership.Role != domain.RoleContributor) {
		logger.Warn("Authorization failed: caller may not submit records", slog.Int64("community_id", communityID), slog.String("caller", caller), slog.String("role", string(membership.Role)))
		return apperrors.ErrUnauthorized
	}
	return nil
}

// AddMember adds an account to a community, or reactivates a removed one with
// the newly supplied role.
func (s *membershipService) AddMember(ctx context.Context, communityID int64, req dto.AddMemberRequest, caller string) (*domain.Membership, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if err := s.AuthorizeAdmin(ctx, communityID, caller); err != nil {
		return nil, err
	}
	if !req.Role.Valid() {
		return nil, fmt.Errorf("%w: unknown role %q", apperrors.ErrValidation, req.Role)
	}

	existing, err := s.membershipRepo.FindMembership(ctx, communityID, req.Account)
	if err != nil && !errors.Is(err, apperrors.ErrNotFound) {
		logger.Error("Failed to check existing membership", slog.String("error", err.Error()), slog.Int64("community_id", communityID), slog.String("account", req.Account))
		return nil, fmt.Errorf("failed to check existing membership: %w", err)
	}
	if existing != nil && existing.Active {
		logger.Warn("Account is already an active member", slog.Int64("community_id", communityID), slog.String("account", req.Account))
		return nil, fmt.Errorf("%w: account %s is already a member", apperrors.ErrDuplicate, req.Account)
	}

	membership := domain.Membership{
		CommunityID: communityID,
		Account:     req.Account,
		Role:        req.Role,
		Active:      true,
		JoinedAt:    time.Now().UTC(),
	}
	if err := s.membershipRepo.AddMember(ctx, membership); err != nil {
		if errors.Is(err, apperrors.ErrDuplicate) {
			return nil, err
		}
		logger.Error("Failed to add member in repository", slog.String("error", err.Error()), slog.Int64("community_id", communityID), slog.String("account", req.Account))
		return nil, fmt.Errorf("failed to add member %s to community %d: %w", req.Account, communityID, err)
	}

	logger.Info("Member added successfully", slog.Int64("community_id", communityID), slog.String("account", req.Account), slog.String("role", string(req.Role)), slog.String("added_by", caller))
	return &membership, nil
}

// AddMembersBatch adds a list of members as one atomic unit: either all
// succeed or none are applied. Returns the number of members added.
func (s *membershipService) AddMembersBatch(ctx context.Context, communityID int64, req dto.AddMembersBatchRequest, caller string) (int, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if err := s.AuthorizeAdmin(ctx, communityID, caller); err != nil {
		return 0, err
	}
	if len(req.Members) == 0 {
		return 0, fmt.Errorf("%w: batch must contain at least one member", apperrors.ErrValidation)
	}

	now := time.Now().UTC()
	seen := make(map[string]struct{}, len(req.Members))
	memberships := make([]domain.Membership, len(req.Members))
	for i, entry := range req.Members {
		if !entry.Role.Valid() {
			return 0, fmt.Errorf("%w: unknown role %q for account %s", apperrors.ErrValidation, entry.Role, entry.Account)
		}
		if _, dup := seen[entry.Account]; dup {
			return 0, fmt.Errorf("%w: account %s appears twice in batch", apperrors.ErrValidation, entry.Account)
		}
		seen[entry.Account] = struct{}{}
		memberships[i] = domain.Membership{
			CommunityID: communityID,
			Account:     entry.Account,
			Role:        entry.Role,
			Active:      true,
			JoinedAt:    now,
		}
	}

	added, err := s.membershipRepo.AddMembers(ctx, communityID, memberships)
	if err != nil {
		if errors.Is(err, apperrors.ErrDuplicate) {
			logger.Warn("Batch add rejected: duplicate active membership", slog.Int64("community_id", communityID))
			return 0, err
		}
		logger.Error("Failed to add members batch in repository", slog.String("error", err.Error()), slog.Int64("community_id", communityID))
		return 0, fmt.Errorf("failed to add members to community %d: %w", communityID, err)
	}

	logger.Info("Members added in batch", slog.Int64("community_id", communityID), slog.Int("count", added), slog.String("added_by", caller))
	return added, nil
}

// UpdateMemberRole overwrites an existing member's role, leaving the active
// flag and joined-at untouched.
func (s *membershipService) UpdateMemberRole(ctx context.Context, communityID int64, account string, role domain.CommunityRole, caller string) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	if err := s.AuthorizeAdmin(ctx, communityID, caller); err != nil {
		return err
	}
	if !role.Valid() {
		return fmt.Errorf("%w: unknown role %q", apperrors.ErrValidation, role)
	}

	if err := s.membershipRepo.UpdateMemberRole(ctx, communityID, account, role); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			logger.Warn("Membership not found for role update", slog.Int64("community_id", communityID), slog.String("account", account))
			return err
		}
		logger.Error("Failed to update member role in repository", slog.String("error", err.Error()), slog.Int64("community_id", communityID), slog.String("account", account))
		return fmt.Errorf("failed to update role for %s in community %d: %w", account, communityID, err)
	}

	logger.Info("Member role updated", slog.Int64("community_id", communityID), slog.String("account", account), slog.String("role", string(role)), slog.String("updated_by", caller))
	return nil
}

// RemoveMember deactivates a membership. The row is preserved for history and
// the community's member count is left untouched (it tracks cumulative
// additions, not live members).
func (s *membershipService) RemoveMember(ctx context.Context, communityID int64, account string, caller string) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	if err := s.AuthorizeAdmin(ctx, communityID, caller); err != nil {
		return err
	}

	if err := s.membershipRepo.DeactivateMember(ctx, communityID, account); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			logger.Warn("Membership not found for removal", slog.Int64("community_id", communityID), slog.String("account", account))
			return err
		}
		logger.Error("Failed to deactivate member in repository", slog.String("error", err.Error()), slog.Int64("community_id", communityID), slog.String("account", account))
		return fmt.Errorf("failed to remove member %s from community %d: %w", account, communityID, err)
	}

	logger.Info("Member removed", slog.Int64("community_id", communityID), slog.String("account", account), slog.String("removed_by", caller))
	return nil
}

// GetMember retrieves a membership row, active or not.
func (s *membershipService) GetMember(ctx context.Context, communityID int64, account string) (*domain.Membership, error) {
	membership, err := s.membershipRepo.FindMembership(ctx, communityID, account)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			middleware.GetLoggerFromCtx(ctx).Error("Failed to find membership in repository", slog.String("error", err.Error()), slog.Int64("community_id", communityID), slog.String("account", account))
		}
		return nil, err
	}
	return membership, nil
}

// IsAdmin reports whether the account is an effective admin of the community.
func (s *membershipService) IsAdmin(ctx context.Context, communityID int64, account string) (bool, error) {
	community, err := s.communityRepo.FindCommunityByID(ctx, communityID)
	if err != nil {
		return false, err
	}
	return s.isEffectiveAdmin(ctx, community, account)
}
