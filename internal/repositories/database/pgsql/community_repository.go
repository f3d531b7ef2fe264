package pgsql

import (
	"context"
	"errors"
	"time"

	"github.com/stackscoop/coop_ledger_app/internal/apperrors"
	"github.com/stackscoop/coop_ledger_app/internal/core/domain"
	portsrepo "github.com/stackscoop/coop_ledger_app/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxCommunityRepository struct {
	BaseRepository
}

// newPgxCommunityRepository creates a new repository for community data.
func newPgxCommunityRepository(pool *pgxpool.Pool) portsrepo.CommunityRepositoryWithTx {
	return &PgxCommunityRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

// Ensure PgxCommunityRepository implements portsrepo.CommunityRepositoryWithTx
var _ portsrepo.CommunityRepositoryWithTx = (*PgxCommunityRepository)(nil)

// CreateCommunity allocates the next community id and inserts the community
// row together with the creator's ADMIN membership in one transaction.
func (r *PgxCommunityRepository) CreateCommunity(ctx context.Context, name, creator string, createdAt time.Time) (*domain.Community, error) {
	community := &domain.Community{
		Name:        name,
		Admin:       creator,
		Status:      domain.CommunityActive,
		MemberCount: 1,
		CreatedAt:   createdAt,
	}

	err := r.withTx(ctx, func(tx pgx.Tx) error {
		id, err := nextID(ctx, tx, communityCounter)
		if err != nil {
			return err
		}
		community.CommunityID = id

		_, err = tx.Exec(ctx, `
			INSERT INTO communities (
				community_id, name, admin_account, status,
				total_donations, total_spending, member_count, created_at
			)
			VALUES ($1, $2, $3, $4, 0, 0, 1, $5);
		`,
			community.CommunityID,
			community.Name,
			community.Admin,
			community.Status,
			community.CreatedAt,
		)
		if err != nil {
			var pgErr *pgconn.PgError
			if errors.As(err, &pgErr) && pgErr.Code == "23505" { // unique_violation
				return apperrors.NewDuplicateError("community name " + name + " already exists")
			}
			return apperrors.NewAppError(500, "failed to save community "+name, err)
		}

		// The creator is a member from the moment of creation.
		_, err = tx.Exec(ctx, `
			INSERT INTO community_members (community_id, account, role, active, joined_at)
			VALUES ($1, $2, $3, TRUE, $4);
		`,
			community.CommunityID,
			creator,
			domain.RoleAdmin,
			createdAt,
		)
		if err != nil {
			return apperrors.NewAppError(500, "failed to save creator membership for community "+name, err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return community, nil
}

func (r *PgxCommunityRepository) FindCommunityByID(ctx context.Context, communityID int64) (*domain.Community, error) {
	query := `
		SELECT community_id, name, admin_account, status,
		       total_donations, total_spending, member_count, created_at
		FROM communities
		WHERE community_id = $1;
	`
	var c domain.Community
	err := r.Pool.QueryRow(ctx, query, communityID).Scan(
		&c.CommunityID,
		&c.Name,
		&c.Admin,
		&c.Status,
		&c.TotalDonations,
		&c.TotalSpending,
		&c.MemberCount,
		&c.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFoundError("community not found")
		}
		return nil, apperrors.NewAppError(500, "failed to find community", err)
	}
	return &c, nil
}

func (r *PgxCommunityRepository) FindCommunityIDByName(ctx context.Context, name string) (int64, error) {
	var id int64
	err := r.Pool.QueryRow(ctx, `SELECT community_id FROM communities WHERE name = $1;`, name).Scan(&id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, apperrors.NewNotFoundError("community not found")
		}
		return 0, apperrors.NewAppError(500, "failed to find community by name", err)
	}
	return id, nil
}
