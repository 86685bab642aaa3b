package repository

import (
	"context"
	"time"

	"stayhub/internal/domain/booking"
	"stayhub/internal/infra"
	"stayhub/internal/infra/db"
	"stayhub/internal/pkg/pgconv"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
)

type AvailabilityRepository struct {
	db db.DBTX
}

func NewAvailabilityRepository(dbtx db.DBTX) *AvailabilityRepository {
	return &AvailabilityRepository{db: dbtx}
}

const overridesForStaySQL = `
SELECT day, is_available, price
FROM listing_availability
WHERE listing_id = $1 AND day >= $2 AND day < $3
ORDER BY day`

func (r *AvailabilityRepository) OverridesForStay(ctx context.Context, listingID uuid.UUID, stay booking.StayRange) (map[time.Time]booking.NightlyOverride, error) {
	rows, err := r.db.Query(ctx, overridesForStaySQL,
		listingID,
		pgconv.DateToPgtype(stay.CheckIn()),
		pgconv.DateToPgtype(stay.CheckOut()),
	)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to query availability overrides", err)
	}
	defer rows.Close()

	overrides := make(map[time.Time]booking.NightlyOverride)
	for rows.Next() {
		var (
			day   pgtype.Date
			avail bool
			price pgtype.Numeric
		)
		if err := rows.Scan(&day, &avail, &price); err != nil {
			return nil, infra.WrapRepoErr("failed to scan availability override", err)
		}
		date := pgconv.DateFromPgtype(day)
		overrides[date] = booking.NightlyOverride{
			Date:      date,
			Available: avail,
			Price:     pgconv.DecimalPtrFromPgtype(price),
		}
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to read availability overrides", err)
	}

	return overrides, nil
}

const upsertOverrideSQL = `
INSERT INTO listing_availability (listing_id, day, is_available, price)
VALUES ($1, $2, $3, $4)
ON CONFLICT (listing_id, day)
DO UPDATE SET is_available = EXCLUDED.is_available,
              price = EXCLUDED.price,
              updated_at = now()`

// UpsertOverrides writes one row per day through a pipelined batch.
func (r *AvailabilityRepository) UpsertOverrides(ctx context.Context, listingID uuid.UUID, overrides []booking.NightlyOverride) error {
	if len(overrides) == 0 {
		return nil
	}

	batch := &pgx.Batch{}
	for _, ov := range overrides {
		batch.Queue(upsertOverrideSQL,
			listingID,
			pgconv.DateToPgtype(ov.Date),
			ov.Available,
			pgconv.DecimalPtrToPgtype(ov.Price),
		)
	}

	results := r.db.SendBatch(ctx, batch)
	defer results.Close()

	for range overrides {
		if _, err := results.Exec(); err != nil {
			return infra.WrapRepoErr("failed to upsert availability override", err)
		}
	}

	return nil
}
