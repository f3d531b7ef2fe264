package pgsql

import (
	"context"
	"errors"

	"github.com/stackscoop/coop_ledger_app/internal/apperrors"
	"github.com/stackscoop/coop_ledger_app/internal/core/domain"
	portsrepo "github.com/stackscoop/coop_ledger_app/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxRecordRepository struct {
	BaseRepository
}

// newPgxRecordRepository creates a new repository for ledger records.
func newPgxRecordRepository(pool *pgxpool.Pool) portsrepo.RecordRepositoryWithTx {
	return &PgxRecordRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

// Ensure PgxRecordRepository implements portsrepo.RecordRepositoryWithTx
var _ portsrepo.RecordRepositoryWithTx = (*PgxRecordRepository)(nil)

// SaveRecord allocates the next record id and inserts the record in one
// transaction.
func (r *PgxRecordRepository) SaveRecord(ctx context.Context, record domain.Record) (int64, error) {
	var recordID int64
	err := r.withTx(ctx, func(tx pgx.Tx) error {
		id, err := nextID(ctx, tx, recordCounter)
		if err != nil {
			return err
		}
		recordID = id

		_, err = tx.Exec(ctx, `
			INSERT INTO records (
				record_id, community_id, record_type, amount, description,
				submitter, recorded_at, status, verified_by, project_id
			)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, NULL, $9);
		`,
			recordID,
			record.CommunityID,
			record.RecordType,
			record.Amount,
			record.Description,
			record.Submitter,
			record.Timestamp,
			record.Status,
			record.ProjectID,
		)
		if err != nil {
			var pgErr *pgconn.PgError
			if errors.As(err, &pgErr) && pgErr.Code == "23503" { // foreign_key_violation
				return apperrors.NewNotFoundError("community not found")
			}
			return apperrors.NewAppError(500, "failed to save record", err)
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return recordID, nil
}

// VerifyRecord flips the record from PENDING to VERIFIED, stamps the verifier
// and folds the amount into the owning community's totals, all in one
// transaction. The record row is locked first, so of two competing
// verifications the second observes the VERIFIED status and fails with
// ErrConflict; the aggregate is never counted twice.
func (r *PgxRecordRepository) VerifyRecord(ctx context.Context, recordID int64, verifier string) error {
	return r.withTx(ctx, func(tx pgx.Tx) error {
		var (
			communityID int64
			recordType  domain.RecordType
			amount      int64
			status      domain.RecordStatus
		)
		err := tx.QueryRow(ctx, `
			SELECT community_id, record_type, amount, status
			FROM records
			WHERE record_id = $1
			FOR UPDATE;
		`, recordID).Scan(&communityID, &recordType, &amount, &status)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return apperrors.NewNotFoundError("record not found")
			}
			return apperrors.NewAppError(500, "failed to load record for verification", err)
		}

		if status != domain.RecordPending {
			return apperrors.NewConflictError("record is not pending verification")
		}

		_, err = tx.Exec(ctx, `
			UPDATE records
			SET status = $2, verified_by = $3
			WHERE record_id = $1;
		`, recordID, domain.RecordVerified, verifier)
		if err != nil {
			return apperrors.NewAppError(500, "failed to update record status", err)
		}

		// Only donation and spending amounts aggregate into community totals.
		switch recordType {
		case domain.RecordDonation:
			_, err = tx.Exec(ctx, `
				UPDATE communities SET total_donations = total_donations + $2
				WHERE community_id = $1;
			`, communityID, amount)
		case domain.RecordSpending:
			_, err = tx.Exec(ctx, `
				UPDATE communities SET total_spending = total_spending + $2
				WHERE community_id = $1;
			`, communityID, amount)
		}
		if err != nil {
			return apperrors.NewAppError(500, "failed to update community totals", err)
		}
		return nil
	})
}

func (r *PgxRecordRepository) FindRecordByID(ctx context.Context, recordID int64) (*domain.Record, error) {
	query := `
		SELECT record_id, community_id, record_type, amount, description,
		       submitter, recorded_at, status, verified_by, project_id
		FROM records
		WHERE record_id = $1;
	`
	var rec domain.Record
	err := r.Pool.QueryRow(ctx, query, recordID).Scan(
		&rec.RecordID,
		&rec.CommunityID,
		&rec.RecordType,
		&rec.Amount,
		&rec.Description,
		&rec.Submitter,
		&rec.Timestamp,
		&rec.Status,
		&rec.VerifiedBy,
		&rec.ProjectID,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFoundError("record not found")
		}
		return nil, apperrors.NewAppError(500, "failed to find record", err)
	}
	return &rec, nil
}

func (r *PgxRecordRepository) RecordCounter(ctx context.Context) (int64, error) {
	var counter int64
	err := r.Pool.QueryRow(ctx, `SELECT value FROM id_counters WHERE name = $1;`, recordCounter).Scan(&counter)
	if err != nil {
		return 0, apperrors.NewAppError(500, "failed to read record counter", err)
	}
	return counter, nil
}
