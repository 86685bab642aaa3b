package repository

import (
	"context"
	"errors"

	"stayhub/internal/domain/booking"
	"stayhub/internal/infra"
	"stayhub/internal/infra/db"
	"stayhub/internal/pkg/pgconv"
	"stayhub/internal/usecase/commands"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgtype"
)

const (
	pgErrCodeUniqueViolation    = "23505"
	pgErrCodeExclusionViolation = "23P01"

	overlapConstraint   = "reservations_no_overlap"
	referenceConstraint = "reservations_reference_key"
)

type ReservationRepository struct {
	db db.DBTX
}

func NewReservationRepository(dbtx db.DBTX) *ReservationRepository {
	return &ReservationRepository{db: dbtx}
}

const createReservationSQL = `
INSERT INTO reservations (
    id, reference, listing_id, user_id, start_date, end_date, is_blocked,
    guest_name, guest_phone, guest_email, guest_sex, client_type, note,
    nights, per_night, subtotal, service_fee, total, currency
) VALUES (
    $1, $2, $3, $4, $5, $6, $7,
    $8, $9, $10, $11, $12, $13,
    $14, $15, $16, $17, $18, $19
)
RETURNING id`

// Create relies on the reservations_no_overlap exclusion constraint and the
// reference unique index: a single INSERT is the atomic check-and-write, so
// two concurrent writers can never both succeed on overlapping dates.
func (r *ReservationRepository) Create(ctx context.Context, res *booking.Reservation) (uuid.UUID, error) {
	if res.Reference().IsZero() {
		return uuid.Nil, infra.WrapRepoErr("reservation has no reference", booking.ErrMissingReference)
	}

	var (
		guestName  pgtype.Text
		guestPhone pgtype.Text
		guestEmail pgtype.Text
		guestSex   pgtype.Text
		clientType pgtype.Text
		perNight   pgtype.Numeric
		subtotal   pgtype.Numeric
		serviceFee pgtype.Numeric
		total      pgtype.Numeric
		currency   pgtype.Text
		note       pgtype.Text
	)

	if g := res.Guest(); g != nil {
		guestName = pgtype.Text{String: g.Name(), Valid: true}
		guestPhone = pgtype.Text{String: g.Phone(), Valid: true}
		guestEmail = pgtype.Text{String: g.Email(), Valid: true}
		guestSex = pgtype.Text{String: g.Sex().String(), Valid: true}
		clientType = pgtype.Text{String: g.ClientType().String(), Valid: true}
	}
	if q := res.Quote(); q != nil {
		perNight = pgconv.DecimalToPgtype(q.PerNight())
		subtotal = pgconv.DecimalToPgtype(q.Subtotal())
		serviceFee = pgconv.DecimalToPgtype(q.ServiceFee())
		total = pgconv.DecimalToPgtype(q.Total())
		currency = pgtype.Text{String: q.Currency(), Valid: true}
	}
	if res.Note() != "" {
		note = pgtype.Text{String: res.Note(), Valid: true}
	}

	var insertedID uuid.UUID
	err := r.db.QueryRow(ctx, createReservationSQL,
		res.ID(),
		res.Reference().String(),
		res.ListingID(),
		pgconv.UUIDPtrToPgtype(res.UserID()),
		pgconv.DateToPgtype(res.Stay().CheckIn()),
		pgconv.DateToPgtype(res.Stay().CheckOut()),
		res.IsBlocked(),
		guestName, guestPhone, guestEmail, guestSex, clientType, note,
		int32(res.Nights()),
		perNight, subtotal, serviceFee, total, currency,
	).Scan(&insertedID)
	if err != nil {
		return uuid.Nil, classifyInsertError(err)
	}

	return insertedID, nil
}

func classifyInsertError(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch {
		case pgErr.Code == pgErrCodeExclusionViolation && pgErr.ConstraintName == overlapConstraint:
			return infra.WrapRepoErr("date range already reserved", err, infra.KindConflict)
		case pgErr.Code == pgErrCodeUniqueViolation && pgErr.ConstraintName == referenceConstraint:
			return infra.WrapRepoErr("reference already taken", err, infra.KindDuplicateKey)
		case pgErr.Code == pgErrCodeUniqueViolation:
			return infra.WrapRepoErr("duplicate reservation", err, infra.KindDuplicateKey)
		}
	}
	return infra.WrapRepoErr("failed to create reservation", err)
}

// Delete is a hard delete: cancellation frees the range immediately.
func (r *ReservationRepository) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM reservations WHERE id = $1`, id)
	if err != nil {
		return infra.WrapRepoErr("failed to delete reservation", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("reservation not found", nil, infra.KindNotFound)
	}
	return nil
}

const findConflictsSQL = `
SELECT id, reference, start_date, end_date, is_blocked
FROM reservations
WHERE listing_id = $1
  AND start_date < $3
  AND end_date > $2
  AND ($4::uuid IS NULL OR id <> $4)
ORDER BY start_date`

// FindConflicts lists reservations whose half-open ranges intersect the
// candidate stay. excludeID supports edit-in-place checks.
func (r *ReservationRepository) FindConflicts(ctx context.Context, listingID uuid.UUID, stay booking.StayRange, excludeID *uuid.UUID) ([]commands.ConflictingStay, error) {
	rows, err := r.db.Query(ctx, findConflictsSQL,
		listingID,
		pgconv.DateToPgtype(stay.CheckIn()),
		pgconv.DateToPgtype(stay.CheckOut()),
		pgconv.UUIDPtrToPgtype(excludeID),
	)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to query conflicting reservations", err)
	}
	defer rows.Close()

	var conflicts []commands.ConflictingStay
	for rows.Next() {
		var (
			c          commands.ConflictingStay
			start, end pgtype.Date
		)
		if err := rows.Scan(&c.ID, &c.Reference, &start, &end, &c.IsBlocked); err != nil {
			return nil, infra.WrapRepoErr("failed to scan conflicting reservation", err)
		}
		c.StartDate = pgconv.DateFromPgtype(start)
		c.EndDate = pgconv.DateFromPgtype(end)
		conflicts = append(conflicts, c)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to read conflicting reservations", err)
	}

	return conflicts, nil
}
