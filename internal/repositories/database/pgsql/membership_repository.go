package pgsql

import (
	"context"
	"errors"

	"github.com/stackscoop/coop_ledger_app/internal/apperrors"
	"github.com/stackscoop/coop_ledger_app/internal/core/domain"
	portsrepo "github.com/stackscoop/coop_ledger_app/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxMembershipRepository struct {
	BaseRepository
}

// newPgxMembershipRepository creates a new repository for membership data.
func newPgxMembershipRepository(pool *pgxpool.Pool) portsrepo.MembershipRepositoryWithTx {
	return &PgxMembershipRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

// Ensure PgxMembershipRepository implements portsrepo.MembershipRepositoryWithTx
var _ portsrepo.MembershipRepositoryWithTx = (*PgxMembershipRepository)(nil)

// addMemberTx inserts a membership row, or reactivates an inactive one with
// the new role and joined-at. Returns ErrDuplicate when an active membership
// already exists. The row is locked so competing additions serialize.
func addMemberTx(ctx context.Context, tx pgx.Tx, m domain.Membership) error {
	var active bool
	err := tx.QueryRow(ctx, `
		SELECT active FROM community_members
		WHERE community_id = $1 AND account = $2
		FOR UPDATE;
	`, m.CommunityID, m.Account).Scan(&active)

	switch {
	case err == nil:
		if active {
			return apperrors.NewDuplicateError("account " + m.Account + " is already an active member")
		}
		_, err = tx.Exec(ctx, `
			UPDATE community_members
			SET role = $3, active = TRUE, joined_at = $4
			WHERE community_id = $1 AND account = $2;
		`, m.CommunityID, m.Account, m.Role, m.JoinedAt)
		if err != nil {
			return apperrors.NewAppError(500, "failed to reactivate membership for "+m.Account, err)
		}
	case errors.Is(err, pgx.ErrNoRows):
		_, err = tx.Exec(ctx, `
			INSERT INTO community_members (community_id, account, role, active, joined_at)
			VALUES ($1, $2, $3, TRUE, $4);
		`, m.CommunityID, m.Account, m.Role, m.JoinedAt)
		if err != nil {
			return apperrors.NewAppError(500, "failed to insert membership for "+m.Account, err)
		}
	default:
		return apperrors.NewAppError(500, "failed to check membership for "+m.Account, err)
	}
	return nil
}

// bumpMemberCount adds delta to the community's cumulative member counter.
func bumpMemberCount(ctx context.Context, tx pgx.Tx, communityID int64, delta int) error {
	result, err := tx.Exec(ctx, `
		UPDATE communities SET member_count = member_count + $2
		WHERE community_id = $1;
	`, communityID, delta)
	if err != nil {
		return apperrors.NewAppError(500, "failed to update member count", err)
	}
	if result.RowsAffected() == 0 {
		return apperrors.NewNotFoundError("community not found")
	}
	return nil
}

func (r *PgxMembershipRepository) AddMember(ctx context.Context, membership domain.Membership) error {
	return r.withTx(ctx, func(tx pgx.Tx) error {
		if err := addMemberTx(ctx, tx, membership); err != nil {
			return err
		}
		return bumpMemberCount(ctx, tx, membership.CommunityID, 1)
	})
}

// AddMembers applies the whole batch in one transaction; any duplicate active
// membership aborts it, so partial application is never observable. The
// member count is bumped by the batch size in a single step.
func (r *PgxMembershipRepository) AddMembers(ctx context.Context, communityID int64, memberships []domain.Membership) (int, error) {
	err := r.withTx(ctx, func(tx pgx.Tx) error {
		for _, m := range memberships {
			if err := addMemberTx(ctx, tx, m); err != nil {
				return err
			}
		}
		return bumpMemberCount(ctx, tx, communityID, len(memberships))
	})
	if err != nil {
		return 0, err
	}
	return len(memberships), nil
}

func (r *PgxMembershipRepository) UpdateMemberRole(ctx context.Context, communityID int64, account string, role domain.CommunityRole) error {
	result, err := r.Pool.Exec(ctx, `
		UPDATE community_members
		SET role = $3
		WHERE community_id = $1 AND account = $2;
	`, communityID, account, role)
	if err != nil {
		return apperrors.NewAppError(500, "failed to update role for "+account, err)
	}
	if result.RowsAffected() == 0 {
		return apperrors.NewNotFoundError("membership not found")
	}
	return nil
}

func (r *PgxMembershipRepository) DeactivateMember(ctx context.Context, communityID int64, account string) error {
	result, err := r.Pool.Exec(ctx, `
		UPDATE community_members
		SET active = FALSE
		WHERE community_id = $1 AND account = $2;
	`, communityID, account)
	if err != nil {
		return apperrors.NewAppError(500, "failed to deactivate membership for "+account, err)
	}
	if result.RowsAffected() == 0 {
		return apperrors.NewNotFoundError("membership not found")
	}
	return nil
}

func (r *PgxMembershipRepository) FindMembership(ctx context.Context, communityID int64, account string) (*domain.Membership, error) {
	query := `
		SELECT community_id, account, role, active, joined_at
		FROM community_members
		WHERE community_id = $1 AND account = $2;
	`
	var m domain.Membership
	err := r.Pool.QueryRow(ctx, query, communityID, account).Scan(
		&m.CommunityID,
		&m.Account,
		&m.Role,
		&m.Active,
		&m.JoinedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFoundError("membership not found")
		}
		return nil, apperrors.NewAppError(500, "failed to find membership for "+account, err)
	}
	return &m, nil
}
