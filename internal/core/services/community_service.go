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

// communityService handles business logic for the community registry.
type communityService struct {
	communityRepo portsrepo.CommunityRepositoryFacade
}

// NewCommunityService creates a new CommunityService.
func NewCommunityService(cr portsrepo.CommunityRepositoryFacade) portssvc.CommunitySvcFacade {
	return &communityService{
		communityRepo: cr,
	}
}

// Ensure communityService implements the portssvc.CommunitySvcFacade interface
var _ portssvc.CommunitySvcFacade = (*communityService)(nil)

// CreateCommunity registers a new community and makes the creator its fixed
// admin and first member. The community row and the creator's membership are
// written in one transaction by the repository, so no caller ever observes a
// community with zero members.
func (s *communityService) CreateCommunity(ctx context.Context, req dto.CreateCommunityRequest, creator string) (*domain.Community, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if len(req.Name) == 0 {
		return nil, fmt.Errorf("%w: community name must not be empty", apperrors.ErrValidation)
	}
	if len(req.Name) > domain.MaxCommunityNameLength {
		return nil, fmt.Errorf("%w: community name exceeds %d characters", apperrors.ErrValidation, domain.MaxCommunityNameLength)
	}

	// Names are unique for all time; check before attempting the insert so
	// the common case fails cheaply. The unique constraint still backstops
	// competing creations.
	if _, err := s.communityRepo.FindCommunityIDByName(ctx, req.Name); err == nil {
		logger.Warn("Community name already taken", slog.String("community_name", req.Name))
		return nil, fmt.Errorf("%w: community name %q is already taken", apperrors.ErrDuplicate, req.Name)
	} else if !errors.Is(err, apperrors.ErrNotFound) {
		logger.Error("Failed to check community name uniqueness", slog.String("error", err.Error()), slog.String("community_name", req.Name))
		return nil, fmt.Errorf("failed to check community name: %w", err)
	}

	community, err := s.communityRepo.CreateCommunity(ctx, req.Name, creator, time.Now().UTC())
	if err != nil {
		if errors.Is(err, apperrors.ErrDuplicate) {
			logger.Warn("Community name taken by a competing creation", slog.String("community_name", req.Name))
			return nil, err
		}
		logger.Error("Failed to create community in repository", slog.String("error", err.Error()), slog.String("community_name", req.Name))
		return nil, fmt.Errorf("failed to create community: %w", err)
	}

	logger.Info("Community created successfully", slog.Int64("community_id", community.CommunityID), slog.String("creator", creator))
	return community, nil
}

// GetCommunityByID retrieves a community by its ID.
func (s *communityService) GetCommunityByID(ctx context.Context, communityID int64) (*domain.Community, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	community, err := s.communityRepo.FindCommunityByID(ctx, communityID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			logger.Error("Failed to find community by ID in repository", slog.String("error", err.Error()), slog.Int64("community_id", communityID))
		}
		return nil, err // Propagate error (including NotFound)
	}
	return community, nil
}

// GetCommunityIDByName resolves a community name to its ID.
func (s *communityService) GetCommunityIDByName(ctx context.Context, name string) (int64, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	communityID, err := s.communityRepo.FindCommunityIDByName(ctx, name)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			logger.Error("Failed to find community by name in repository", slog.String("error", err.Error()), slog.String("community_name", name))
		}
		return 0, err
	}
	return communityID, nil
}
