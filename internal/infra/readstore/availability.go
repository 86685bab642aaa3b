package readstore

import (
	"context"
	"time"

	"stayhub/internal/infra"
	"stayhub/internal/infra/db"
	"stayhub/internal/pkg/pgconv"
	"stayhub/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

type AvailabilityReadStore struct {
	db db.DBTX
}

func NewAvailabilityReadStore(dbtx db.DBTX) *AvailabilityReadStore {
	return &AvailabilityReadStore{db: dbtx}
}

func (s *AvailabilityReadStore) ListingByID(ctx context.Context, id uuid.UUID) (*queries.ListingView, error) {
	var (
		view  queries.ListingView
		price pgtype.Numeric
	)
	err := s.db.QueryRow(ctx,
		`SELECT id, name, nightly_price, currency FROM listings WHERE id = $1`,
		id,
	).Scan(&view.ID, &view.Name, &price, &view.Currency)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("listing not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find listing", err)
	}
	view.NightlyPrice = pgconv.DecimalFromPgtype(price)

	return &view, nil
}

const overridesInRangeSQL = `
SELECT day, is_available, price
FROM listing_availability
WHERE listing_id = $1 AND day >= $2 AND day < $3
ORDER BY day`

func (s *AvailabilityReadStore) OverridesInRange(ctx context.Context, listingID uuid.UUID, from, to time.Time) ([]*queries.OverrideView, error) {
	rows, err := s.db.Query(ctx, overridesInRangeSQL,
		listingID, pgconv.DateToPgtype(from), pgconv.DateToPgtype(to))
	if err != nil {
		return nil, infra.WrapRepoErr("failed to query availability overrides", err)
	}
	defer rows.Close()

	var views []*queries.OverrideView
	for rows.Next() {
		var (
			view  queries.OverrideView
			day   pgtype.Date
			price pgtype.Numeric
		)
		if err := rows.Scan(&day, &view.Available, &price); err != nil {
			return nil, infra.WrapRepoErr("failed to scan availability override", err)
		}
		view.Date = pgconv.DateFromPgtype(day)
		view.Price = pgconv.DecimalPtrFromPgtype(price)
		views = append(views, &view)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to read availability overrides", err)
	}

	return views, nil
}

const staysOverlappingSQL = `
SELECT start_date, end_date
FROM reservations
WHERE listing_id = $1 AND start_date < $3 AND end_date > $2
ORDER BY start_date`

func (s *AvailabilityReadStore) StaysOverlapping(ctx context.Context, listingID uuid.UUID, from, to time.Time) ([]*queries.StayView, error) {
	rows, err := s.db.Query(ctx, staysOverlappingSQL,
		listingID, pgconv.DateToPgtype(from), pgconv.DateToPgtype(to))
	if err != nil {
		return nil, infra.WrapRepoErr("failed to query overlapping stays", err)
	}
	defer rows.Close()

	var stays []*queries.StayView
	for rows.Next() {
		var start, end pgtype.Date
		if err := rows.Scan(&start, &end); err != nil {
			return nil, infra.WrapRepoErr("failed to scan overlapping stay", err)
		}
		stays = append(stays, &queries.StayView{
			StartDate: pgconv.DateFromPgtype(start),
			EndDate:   pgconv.DateFromPgtype(end),
		})
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to read overlapping stays", err)
	}

	return stays, nil
}
