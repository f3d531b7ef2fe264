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

// recordService provides the record ledger operations.
type recordService struct {
	recordRepo    portsrepo.RecordRepositoryFacade
	communityRepo portsrepo.CommunityReader
	membershipSvc portssvc.MembershipAuthorizerSvc
}

// NewRecordService creates a new RecordService.
func NewRecordService(rr portsrepo.RecordRepositoryFacade, cr portsrepo.CommunityReader, ms portssvc.MembershipAuthorizerSvc) portssvc.RecordSvcFacade {
	return &recordService{
		recordRepo:    rr,
		communityRepo: cr,
		membershipSvc: ms,
	}
}

// Ensure recordService implements the portssvc.RecordSvcFacade interface
var _ portssvc.RecordSvcFacade = (*recordService)(nil)

// SubmitRecord creates a new PENDING record. Community aggregates are not
// touched until the record is verified.
func (s *recordService) SubmitRecord(ctx context.Context, communityID int64, req dto.SubmitRecordRequest, submitter string) (*domain.Record, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if !req.RecordType.Valid() {
		return nil, fmt.Errorf("%w: unknown record type %q", apperrors.ErrValidation, req.RecordType)
	}
	if req.Amount == nil || *req.Amount < 0 {
		return nil, fmt.Errorf("%w: amount must be a non-negative integer", apperrors.ErrValidation)
	}
	if len(req.Description) == 0 {
		return nil, fmt.Errorf("%w: description must not be empty", apperrors.ErrValidation)
	}
	if len(req.Description) > domain.MaxRecordDescriptionLength {
		return nil, fmt.Errorf("%w: description exceeds %d characters", apperrors.ErrValidation, domain.MaxRecordDescriptionLength)
	}

	// The community must exist before the authorization check so that a
	// missing community surfaces as NotFound rather than Unauthorized.
	if _, err := s.communityRepo.FindCommunityByID(ctx, communityID); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, err
		}
		logger.Error("Failed to load community for record submission", slog.String("error", err.Error()), slog.Int64("community_id", communityID))
		return nil, fmt.Errorf("failed to load community %d: %w", communityID, err)
	}

	if err := s.membershipSvc.AuthorizeSubmitter(ctx, communityID, submitter); err != nil {
		logger.Warn("Authorization failed for SubmitRecord", slog.Int64("community_id", communityID), slog.String("submitter", submitter), slog.String("error", err.Error()))
		return nil, err
	}

	record := domain.Record{
		CommunityID: communityID,
		RecordType:  req.RecordType,
		Amount:      *req.Amount,
		Description: req.Description,
		Submitter:   submitter,
		Timestamp:   time.Now().UTC(),
		Status:      domain.RecordPending,
		ProjectID:   req.ProjectID, // soft reference, not validated
	}

	recordID, err := s.recordRepo.SaveRecord(ctx, record)
	if err != nil {
		logger.Error("Failed to save record in repository", slog.String("error", err.Error()), slog.Int64("community_id", communityID))
		return nil, fmt.Errorf("failed to save record: %w", err)
	}
	record.RecordID = recordID

	logger.Info("Record submitted", slog.Int64("record_id", recordID), slog.Int64("community_id", communityID), slog.String("record_type", string(record.RecordType)), slog.Int64("amount", record.Amount))
	return &record, nil
}

// VerifyRecord promotes a PENDING record to VERIFIED and folds its amount
// into the owning community's totals. The status transition and the aggregate
// update happen in one repository transaction; a competing verification of
// the same record deterministically fails with ErrConflict and never
// double-counts.
func (s *recordService) VerifyRecord(ctx context.Context, recordID int64, verifier string) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	record, err := s.recordRepo.FindRecordByID(ctx, recordID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return err
		}
		logger.Error("Failed to load record for verification", slog.String("error", err.Error()), slog.Int64("record_id", recordID))
		return fmt.Errorf("failed to load record %d: %w", recordID, err)
	}

	if record.Status != domain.RecordPending {
		logger.Warn("Record is not pending verification", slog.Int64("record_id", recordID), slog.String("status", string(record.Status)))
		return fmt.Errorf("%w: record %d has status %s, expected %s", apperrors.ErrConflict, recordID, record.Status, domain.RecordPending)
	}

	if err := s.membershipSvc.AuthorizeAdmin(ctx, record.CommunityID, verifier); err != nil {
		logger.Warn("Authorization failed for VerifyRecord", slog.Int64("record_id", recordID), slog.String("verifier", verifier), slog.String("error", err.Error()))
		return err
	}

	// The repository re-checks the PENDING status inside the transaction, so
	// the pre-check above only gives a nicer message for the common case.
	if err := s.recordRepo.VerifyRecord(ctx, recordID, verifier); err != nil {
		if errors.Is(err, apperrors.ErrConflict) || errors.Is(err, apperrors.ErrNotFound) {
			return err
		}
		logger.Error("Failed to verify record in repository", slog.String("error", err.Error()), slog.Int64("record_id", recordID))
		return fmt.Errorf("failed to verify record %d: %w", recordID, err)
	}

	logger.Info("Record verified", slog.Int64("record_id", recordID), slog.Int64("community_id", record.CommunityID), slog.String("verified_by", verifier), slog.Int64("amount", record.Amount))
	return nil
}

// GetRecordByID retrieves a record.
func (s *recordService) GetRecordByID(ctx context.Context, recordID int64) (*domain.Record, error) {
	record, err := s.recordRepo.FindRecordByID(ctx, recordID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			middleware.GetLoggerFromCtx(ctx).Error("Failed to find record in repository", slog.String("error", err.Error()), slog.Int64("record_id", recordID))
		}
		return nil, err
	}
	return record, nil
}

// GetRecordCounter returns the highest record ID issued so far. Clients page
// backward from it, filtering by community, since there is no
// community-to-records index.
func (s *recordService) GetRecordCounter(ctx context.Context) (int64, error) {
	counter, err := s.recordRepo.RecordCounter(ctx)
	if err != nil {
		middleware.GetLoggerFromCtx(ctx).Error("Failed to read record counter", slog.String("error", err.Error()))
		return 0, fmt.Errorf("failed to read record counter: %w", err)
	}
	return counter, nil
}
