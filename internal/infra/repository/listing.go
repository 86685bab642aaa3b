package repository

import (
	"context"

	"stayhub/internal/infra"
	"stayhub/internal/infra/db"
	"stayhub/internal/pkg/pgconv"
	"stayhub/internal/usecase/commands"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

type ListingRepository struct {
	db db.DBTX
}

func NewListingRepository(dbtx db.DBTX) *ListingRepository {
	return &ListingRepository{db: dbtx}
}

func (r *ListingRepository) FindByID(ctx context.Context, id uuid.UUID) (*commands.ListingSnapshot, error) {
	var (
		snap  commands.ListingSnapshot
		price pgtype.Numeric
	)
	err := r.db.QueryRow(ctx,
		`SELECT id, name, nightly_price, currency FROM listings WHERE id = $1`,
		id,
	).Scan(&snap.ID, &snap.Name, &price, &snap.Currency)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("listing not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find listing", err)
	}
	snap.NightlyPrice = pgconv.DecimalFromPgtype(price)

	return &snap, nil
}
