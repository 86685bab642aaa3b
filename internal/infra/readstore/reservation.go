package readstore

import (
	"context"
	"time"

	"stayhub/internal/infra"
	"stayhub/internal/infra/db"
	"stayhub/internal/pkg/pgconv"
	"stayhub/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
)

type ReservationReadStore struct {
	db db.DBTX
}

func NewReservationReadStore(dbtx db.DBTX) *ReservationReadStore {
	return &ReservationReadStore{db: dbtx}
}

const reservationViewSQL = `
SELECT r.id, r.reference, r.listing_id, l.name, r.user_id,
       r.start_date, r.end_date, r.is_blocked,
       r.guest_name, r.guest_phone, r.guest_email, r.guest_sex, r.client_type, r.note,
       r.nights, r.per_night, r.subtotal, r.service_fee, r.total, r.currency,
       r.created_at, r.updated_at
FROM reservations r
JOIN listings l ON l.id = r.listing_id
`

func (s *ReservationReadStore) FindByID(ctx context.Context, id uuid.UUID) (*queries.ReservationView, error) {
	row := s.db.QueryRow(ctx, reservationViewSQL+`WHERE r.id = $1`, id)
	view, err := scanReservationView(row)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("reservation not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find reservation by ID", err)
	}
	return view, nil
}

func (s *ReservationReadStore) FindByReference(ctx context.Context, reference string) (*queries.ReservationView, error) {
	row := s.db.QueryRow(ctx, reservationViewSQL+`WHERE r.reference = $1`, reference)
	view, err := scanReservationView(row)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("reservation not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find reservation by reference", err)
	}
	return view, nil
}

func scanReservationView(row pgx.Row) (*queries.ReservationView, error) {
	var (
		v                    queries.ReservationView
		userID               pgtype.UUID
		start, end           pgtype.Date
		name, phone, email   pgtype.Text
		sex, clientType      pgtype.Text
		note, currency       pgtype.Text
		nights               int32
		perNight, subtotal   pgtype.Numeric
		serviceFee, total    pgtype.Numeric
		createdAt, updatedAt pgtype.Timestamptz
	)

	err := row.Scan(
		&v.ID, &v.Reference, &v.ListingID, &v.ListingName, &userID,
		&start, &end, &v.IsBlocked,
		&name, &phone, &email, &sex, &clientType, &note,
		&nights, &perNight, &subtotal, &serviceFee, &total, &currency,
		&createdAt, &updatedAt,
	)
	if err != nil {
		return nil, err
	}

	v.UserID = pgconv.UUIDPtrFromPgtype(userID)
	v.StartDate = pgconv.DateFromPgtype(start)
	v.EndDate = pgconv.DateFromPgtype(end)
	v.GuestName = pgconv.StringPtrFromPgtype(name)
	v.GuestPhone = pgconv.StringPtrFromPgtype(phone)
	v.GuestEmail = pgconv.StringPtrFromPgtype(email)
	v.GuestSex = pgconv.StringPtrFromPgtype(sex)
	v.ClientType = pgconv.StringPtrFromPgtype(clientType)
	v.Note = pgconv.StringPtrFromPgtype(note)
	v.Nights = int(nights)
	v.PerNight = pgconv.DecimalPtrFromPgtype(perNight)
	v.Subtotal = pgconv.DecimalPtrFromPgtype(subtotal)
	v.ServiceFee = pgconv.DecimalPtrFromPgtype(serviceFee)
	v.Total = pgconv.DecimalPtrFromPgtype(total)
	v.Currency = pgconv.StringPtrFromPgtype(currency)
	v.CreatedAt = pgconv.TimeFromPgtype(createdAt)
	v.UpdatedAt = pgconv.TimeFromPgtype(updatedAt)

	return &v, nil
}

const listItemsFirstPageSQL = `
SELECT id, reference, listing_id, start_date, end_date, is_blocked, total, currency, created_at
FROM reservations
WHERE listing_id = $1
  AND ($2::date IS NULL OR end_date > $2)
  AND ($3::date IS NULL OR start_date < $3)
ORDER BY start_date, id
LIMIT $4`

const listItemsKeysetSQL = `
SELECT id, reference, listing_id, start_date, end_date, is_blocked, total, currency, created_at
FROM reservations
WHERE listing_id = $1
  AND ($2::date IS NULL OR end_date > $2)
  AND ($3::date IS NULL OR start_date < $3)
  AND (start_date, id) > ($4, $5)
ORDER BY start_date, id
LIMIT $6`

func (s *ReservationReadStore) FindByListingFirstPage(ctx context.Context, listingID uuid.UUID, from, to *time.Time, limit int32) ([]*queries.ReservationListItem, error) {
	rows, err := s.db.Query(ctx, listItemsFirstPageSQL,
		listingID, datePtrToPgtype(from), datePtrToPgtype(to), limit)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list reservations first page", err)
	}
	defer rows.Close()

	return collectListItems(rows)
}

func (s *ReservationReadStore) FindByListingKeyset(ctx context.Context, listingID uuid.UUID, from, to *time.Time, afterStart time.Time, afterID uuid.UUID, limit int32) ([]*queries.ReservationListItem, error) {
	rows, err := s.db.Query(ctx, listItemsKeysetSQL,
		listingID, datePtrToPgtype(from), datePtrToPgtype(to),
		pgconv.DateToPgtype(afterStart), afterID, limit)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list reservations keyset", err)
	}
	defer rows.Close()

	return collectListItems(rows)
}

func collectListItems(rows pgx.Rows) ([]*queries.ReservationListItem, error) {
	var items []*queries.ReservationListItem
	for rows.Next() {
		var (
			item       queries.ReservationListItem
			start, end pgtype.Date
			total      pgtype.Numeric
			currency   pgtype.Text
			createdAt  pgtype.Timestamptz
		)
		if err := rows.Scan(&item.ID, &item.Reference, &item.ListingID,
			&start, &end, &item.IsBlocked, &total, &currency, &createdAt); err != nil {
			return nil, infra.WrapRepoErr("failed to scan reservation list item", err)
		}
		item.StartDate = pgconv.DateFromPgtype(start)
		item.EndDate = pgconv.DateFromPgtype(end)
		item.Total = pgconv.DecimalPtrFromPgtype(total)
		item.Currency = pgconv.StringPtrFromPgtype(currency)
		item.CreatedAt = pgconv.TimeFromPgtype(createdAt)
		items = append(items, &item)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to read reservation list", err)
	}
	return items, nil
}

func datePtrToPgtype(t *time.Time) pgtype.Date {
	if t == nil {
		return pgtype.Date{Valid: false}
	}
	return pgconv.DateToPgtype(*t)
}
