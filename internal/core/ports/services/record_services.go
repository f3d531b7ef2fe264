package services

import (
	"context"

	"github.com/stackscoop/coop_ledger_app/internal/core/domain"
	"github.com/stackscoop/coop_ledger_app/internal/dto"
)

// RecordSvcFacade defines the record ledger operations.
type RecordSvcFacade interface {
	// SubmitRecord creates a new PENDING record in the community's ledger.
	// Requires an active ADMIN or CONTRIBUTOR membership.
	SubmitRecord(ctx context.Context, communityID int64, req dto.SubmitRecordRequest, submitter string) (*domain.Record, error)

	// VerifyRecord promotes a PENDING record to VERIFIED and folds its amount
	// into the owning community's public totals. Admin-only; a record can be
	// verified exactly once.
	VerifyRecord(ctx context.Context, recordID int64, verifier string) error

	// GetRecordByID retrieves a record.
	GetRecordByID(ctx context.Context, recordID int64) (*domain.Record, error)

	// GetRecordCounter returns the highest record ID issued so far.
	GetRecordCounter(ctx context.Context) (int64, error)
}
