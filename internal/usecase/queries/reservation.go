package queries

import (
	"context"
	"time"

	"stayhub/internal/infra"
	"stayhub/internal/pkg/errs"

	"github.com/google/uuid"
)

type ReservationReadStore interface {
	FindByID(ctx context.Context, id uuid.UUID) (*ReservationView, error)
	FindByReference(ctx context.Context, reference string) (*ReservationView, error)
	FindByListingFirstPage(ctx context.Context, listingID uuid.UUID, from, to *time.Time, limit int32) ([]*ReservationListItem, error)
	FindByListingKeyset(ctx context.Context, listingID uuid.UUID, from, to *time.Time, afterStart time.Time, afterID uuid.UUID, limit int32) ([]*ReservationListItem, error)
}

type ListOptions struct {
	From  *time.Time
	To    *time.Time
	Limit int
	After *string
}

type ReservationQueries interface {
	GetByID(ctx context.Context, id uuid.UUID) (*ReservationView, error)
	GetByReference(ctx context.Context, reference string) (*ReservationView, error)
	ListForListing(ctx context.Context, listingID uuid.UUID, opts ListOptions) (*ReservationPage, error)
}

type reservationQueriesImpl struct {
	store ReservationReadStore
}

func NewReservationQueries(store ReservationReadStore) ReservationQueries {
	return &reservationQueriesImpl{store: store}
}

func (q *reservationQueriesImpl) GetByID(ctx context.Context, id uuid.UUID) (*ReservationView, error) {
	view, err := q.store.FindByID(ctx, id)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, errs.ErrReservationNotFound
		}
		return nil, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}
	return view, nil
}

func (q *reservationQueriesImpl) GetByReference(ctx context.Context, reference string) (*ReservationView, error) {
	view, err := q.store.FindByReference(ctx, reference)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, errs.ErrReservationNotFound
		}
		return nil, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}
	return view, nil
}

func (q *reservationQueriesImpl) ListForListing(ctx context.Context, listingID uuid.UUID, opts ListOptions) (*ReservationPage, error) {
	limit := ValidateLimit(opts.Limit)

	var (
		items []*ReservationListItem
		err   error
	)
	if opts.After != nil && *opts.After != "" {
		afterStart, afterID, decodeErr := DecodeAfterCursor(*opts.After)
		if decodeErr != nil {
			return nil, errs.Wrap(decodeErr, "invalid pagination cursor")
		}
		items, err = q.store.FindByListingKeyset(ctx, listingID, opts.From, opts.To, afterStart, afterID, limit+1)
	} else {
		items, err = q.store.FindByListingFirstPage(ctx, listingID, opts.From, opts.To, limit+1)
	}
	if err != nil {
		return nil, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}

	page := &ReservationPage{Items: items}
	if len(items) > int(limit) {
		page.Items = items[:limit]
		last := page.Items[len(page.Items)-1]
		cursor := EncodeAfterCursor(last.StartDate, last.ID)
		page.NextCursor = &cursor
	}
	return page, nil
}
