package repositories

import (
	"context"

	"github.com/stackscoop/coop_ledger_app/internal/core/domain"
)

// RecordReader defines read operations for ledger records
type RecordReader interface {
	// FindRecordByID retrieves a specific record by its ID.
	FindRecordByID(ctx context.Context, recordID int64) (*domain.Record, error)

	// RecordCounter returns the allocator high-water mark: the highest record
	// ID issued so far. Callers page backward from it, as there is no
	// community-to-records index.
	RecordCounter(ctx context.Context) (int64, error)
}

// RecordWriter defines write operations for ledger records
type RecordWriter interface {
	// SaveRecord allocates a new record ID and persists the record in a
	// single transaction, returning the new ID.
	SaveRecord(ctx context.Context, record domain.Record) (int64, error)

	// VerifyRecord transitions the record from PENDING to VERIFIED, stamps
	// the verifier and folds the amount into the owning community's totals,
	// all in one transaction. Returns apperrors.ErrConflict when the record
	// is not PENDING, so a competing verification deterministically loses.
	VerifyRecord(ctx context.Context, recordID int64, verifier string) error
}

// RecordRepositoryFacade combines all record-related repository interfaces
type RecordRepositoryFacade interface {
	RecordReader
	RecordWriter
}

// RecordRepositoryWithTx extends RecordRepositoryFacade with transaction capabilities
type RecordRepositoryWithTx interface {
	RecordRepositoryFacade
	TransactionManager
}
