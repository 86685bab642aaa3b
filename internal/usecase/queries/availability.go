package queries

import (
	"context"
	"time"

	"stayhub/internal/domain/booking"
	"stayhub/internal/infra"
	"stayhub/internal/pkg/errs"

	"github.com/google/uuid"
)

// Calendar windows are bounded so a single request cannot sweep years of rows.
const MaxCalendarDays = 366

var ErrCalendarWindowTooLarge = errs.New("availability window exceeds one year")

type AvailabilityReadStore interface {
	ListingByID(ctx context.Context, id uuid.UUID) (*ListingView, error)
	OverridesInRange(ctx context.Context, listingID uuid.UUID, from, to time.Time) ([]*OverrideView, error)
	StaysOverlapping(ctx context.Context, listingID uuid.UUID, from, to time.Time) ([]*StayView, error)
}

type AvailabilityQueries interface {
	// Calendar reports each day of [start, end): whether it can host a new
	// stay and what that night costs.
	Calendar(ctx context.Context, listingID uuid.UUID, window booking.StayRange) ([]*DayAvailability, error)
}

type availabilityQueriesImpl struct {
	store AvailabilityReadStore
}

func NewAvailabilityQueries(store AvailabilityReadStore) AvailabilityQueries {
	return &availabilityQueriesImpl{store: store}
}

func (q *availabilityQueriesImpl) Calendar(ctx context.Context, listingID uuid.UUID, window booking.StayRange) ([]*DayAvailability, error) {
	if window.Nights() > MaxCalendarDays {
		return nil, ErrCalendarWindowTooLarge
	}

	listingView, err := q.store.ListingByID(ctx, listingID)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, errs.ErrListingNotFound
		}
		return nil, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}

	overrides, err := q.store.OverridesInRange(ctx, listingID, window.CheckIn(), window.CheckOut())
	if err != nil {
		return nil, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}
	overrideByDay := make(map[time.Time]*OverrideView, len(overrides))
	for _, ov := range overrides {
		overrideByDay[ov.Date] = ov
	}

	stays, err := q.store.StaysOverlapping(ctx, listingID, window.CheckIn(), window.CheckOut())
	if err != nil {
		return nil, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}

	days := make([]*DayAvailability, 0, window.Nights())
	for _, day := range window.EachNight() {
		entry := &DayAvailability{
			Date:      day,
			Available: true,
			Price:     listingView.NightlyPrice,
			Currency:  listingView.Currency,
		}

		if ov, ok := overrideByDay[day]; ok {
			entry.Available = ov.Available
			if ov.Price != nil {
				entry.Price = *ov.Price
			}
		}

		// A night is occupied when any stay covers it; the check-out day of a
		// stay stays open for the next check-in.
		for _, stay := range stays {
			if !day.Before(stay.StartDate) && day.Before(stay.EndDate) {
				entry.Available = false
				break
			}
		}

		days = append(days, entry)
	}

	return days, nil
}
