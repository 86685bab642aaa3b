package commands

import (
	"context"
	"log/slog"
	"time"

	"stayhub/internal/domain/booking"
	"stayhub/internal/infra"
	"stayhub/internal/pkg/clock"
	"stayhub/internal/pkg/errs"
	"stayhub/internal/pkg/ptr"
	"stayhub/internal/usecase/queries"

	"github.com/google/uuid"
)

type CreateReservationInput struct {
	ListingID  uuid.UUID
	StartDate  time.Time
	EndDate    time.Time
	IsBlocked  bool
	UserID     *uuid.UUID
	Name       *string
	Phone      *string
	Email      *string
	Sex        *string
	ClientType *string
	Note       *string
	Currency   *string
}

type BookingCommands interface {
	CreateReservation(ctx context.Context, input CreateReservationInput) (*queries.ReservationView, error)
	CancelReservation(ctx context.Context, id uuid.UUID) error
}

type bookingCommandsImpl struct {
	reservationRepo  ReservationRepository
	listingRepo      ListingRepository
	availabilityRepo AvailabilityRepository
	referenceGen     booking.ReferenceGenerator
	feePolicy        booking.FeePolicy
	notifier         ConfirmationNotifier
	reservationViews queries.ReservationQueries
	clock            clock.Clock
	maxRefAttempts   int
}

func NewBookingCommands(
	reservationRepo ReservationRepository,
	listingRepo ListingRepository,
	availabilityRepo AvailabilityRepository,
	referenceGen booking.ReferenceGenerator,
	feePolicy booking.FeePolicy,
	notifier ConfirmationNotifier,
	reservationViews queries.ReservationQueries,
	clk clock.Clock,
	maxRefAttempts int,
) BookingCommands {
	if maxRefAttempts < 1 {
		maxRefAttempts = 1
	}
	return &bookingCommandsImpl{
		reservationRepo:  reservationRepo,
		listingRepo:      listingRepo,
		availabilityRepo: availabilityRepo,
		referenceGen:     referenceGen,
		feePolicy:        feePolicy,
		notifier:         notifier,
		reservationViews: reservationViews,
		clock:            clk,
		maxRefAttempts:   maxRefAttempts,
	}
}

func (c *bookingCommandsImpl) CreateReservation(ctx context.Context, input CreateReservationInput) (*queries.ReservationView, error) {
	listingSnap, err := c.findListing(ctx, input.ListingID)
	if err != nil {
		return nil, err
	}

	stay, err := booking.NewStayRange(input.StartDate, input.EndDate)
	if err != nil {
		return nil, err
	}

	var reservation *booking.Reservation
	if input.IsBlocked {
		reservation, err = booking.NewAdminBlock(listingSnap.ID, stay, ptr.Deref(input.Note, ""))
	} else {
		reservation, err = c.buildGuestBooking(ctx, listingSnap, stay, input)
	}
	if err != nil {
		return nil, err
	}

	// Advisory pre-check for a friendly 409; the exclusion constraint remains
	// the source of truth under concurrency.
	conflicts, err := c.reservationRepo.FindConflicts(ctx, listingSnap.ID, stay, nil)
	if err != nil {
		return nil, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}
	if len(conflicts) > 0 {
		return nil, &ConflictError{Conflicts: conflicts}
	}

	reservationID, err := c.insertWithFreshReference(ctx, reservation, stay)
	if err != nil {
		return nil, err
	}

	view, err := c.reservationViews.GetByID(ctx, reservationID)
	if err != nil {
		return nil, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}

	if !view.IsBlocked {
		c.publishConfirmation(ctx, view)
	}

	return view, nil
}

func (c *bookingCommandsImpl) CancelReservation(ctx context.Context, id uuid.UUID) error {
	if err := c.reservationRepo.Delete(ctx, id); err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return errs.ErrReservationNotFound
		}
		return errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}
	return nil
}

func (c *bookingCommandsImpl) findListing(ctx context.Context, id uuid.UUID) (*ListingSnapshot, error) {
	snap, err := c.listingRepo.FindByID(ctx, id)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, errs.ErrListingNotFound
		}
		return nil, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}
	return snap, nil
}

func (c *bookingCommandsImpl) buildGuestBooking(ctx context.Context, listingSnap *ListingSnapshot, stay booking.StayRange, input CreateReservationInput) (*booking.Reservation, error) {
	guest, err := booking.NewGuestDetails(
		ptr.Deref(input.Name, ""),
		ptr.Deref(input.Phone, ""),
		ptr.Deref(input.Email, ""),
		booking.Sex(ptr.Deref(input.Sex, "")),
		booking.ClientType(ptr.Deref(input.ClientType, "")),
	)
	if err != nil {
		return nil, err
	}

	if input.Currency != nil && *input.Currency != listingSnap.Currency {
		verr := &booking.ValidationError{}
		verr.Add("currency_id", "listing is priced in "+listingSnap.Currency)
		return nil, verr
	}

	overrides, err := c.availabilityRepo.OverridesForStay(ctx, listingSnap.ID, stay)
	if err != nil {
		return nil, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}

	quote, err := booking.NewQuote(stay, listingSnap.NightlyPrice, overrides, c.feePolicy, listingSnap.Currency)
	if err != nil {
		return nil, err
	}

	return booking.NewGuestBooking(listingSnap.ID, input.UserID, stay, guest, quote)
}

// insertWithFreshReference generates a candidate code and inserts; the unique
// index on reference is authoritative, so a duplicate-key rejection simply
// buys a new code, up to the bounded attempt count.
func (c *bookingCommandsImpl) insertWithFreshReference(ctx context.Context, reservation *booking.Reservation, stay booking.StayRange) (uuid.UUID, error) {
	for attempt := 1; attempt <= c.maxRefAttempts; attempt++ {
		if err := reservation.ReplaceReference(c.referenceGen.Generate()); err != nil {
			return uuid.Nil, errs.Mark(err, errs.ErrDatabaseOperationFailed)
		}

		id, err := c.reservationRepo.Create(ctx, reservation)
		if err == nil {
			return id, nil
		}

		if infra.IsKind(err, infra.KindConflict) {
			conflicts, findErr := c.reservationRepo.FindConflicts(ctx, reservation.ListingID(), stay, nil)
			if findErr != nil {
				slog.Warn("failed to load conflicting reservations for error payload", "error", findErr.Error())
			}
			return uuid.Nil, &ConflictError{Conflicts: conflicts}
		}

		if infra.IsKind(err, infra.KindDuplicateKey) {
			slog.Warn("reference collision, regenerating",
				"attempt", attempt,
				"listing_id", reservation.ListingID().String())
			continue
		}

		return uuid.Nil, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}

	slog.Error("reference generation exhausted", "attempts", c.maxRefAttempts)
	return uuid.Nil, errs.ErrReferenceExhausted
}

func (c *bookingCommandsImpl) publishConfirmation(ctx context.Context, view *queries.ReservationView) {
	event := ReservationConfirmedEvent{
		ReservationID: view.ID.String(),
		Reference:     view.Reference,
		ListingID:     view.ListingID.String(),
		ListingName:   view.ListingName,
		GuestName:     ptr.Deref(view.GuestName, ""),
		GuestEmail:    ptr.Deref(view.GuestEmail, ""),
		CheckIn:       view.StartDate.Format(time.DateOnly),
		CheckOut:      view.EndDate.Format(time.DateOnly),
		Nights:        view.Nights,
		Currency:      ptr.Deref(view.Currency, ""),
		ConfirmedAt:   c.clock.Now().UTC().Format(time.RFC3339),
	}
	if view.Total != nil {
		event.Total = view.Total.StringFixed(2)
	}

	if err := c.notifier.ReservationConfirmed(ctx, event); err != nil {
		slog.Warn("confirmation notification failed",
			"reference", view.Reference,
			"error", err.Error())
	}
}
