package commands

import (
	"context"
	"time"

	"stayhub/internal/domain/booking"
	"stayhub/internal/infra"
	"stayhub/internal/pkg/errs"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type SetAvailabilityInput struct {
	StartDate time.Time
	EndDate   time.Time
	Available bool
	Price     *decimal.Decimal
}

type AvailabilityCommands interface {
	// SetNightlyRates upserts one override row per day of [StartDate, EndDate).
	SetNightlyRates(ctx context.Context, listingID uuid.UUID, input SetAvailabilityInput) (int, error)
}

type availabilityCommandsImpl struct {
	availabilityRepo AvailabilityRepository
	listingRepo      ListingRepository
}

func NewAvailabilityCommands(availabilityRepo AvailabilityRepository, listingRepo ListingRepository) AvailabilityCommands {
	return &availabilityCommandsImpl{
		availabilityRepo: availabilityRepo,
		listingRepo:      listingRepo,
	}
}

func (c *availabilityCommandsImpl) SetNightlyRates(ctx context.Context, listingID uuid.UUID, input SetAvailabilityInput) (int, error) {
	if _, err := c.listingRepo.FindByID(ctx, listingID); err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return 0, errs.ErrListingNotFound
		}
		return 0, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}

	span, err := booking.NewStayRange(input.StartDate, input.EndDate)
	if err != nil {
		return 0, err
	}

	if input.Price != nil && input.Price.IsNegative() {
		verr := &booking.ValidationError{}
		verr.Add("price", "cannot be negative")
		return 0, verr
	}

	overrides := make([]booking.NightlyOverride, 0, span.Nights())
	for _, day := range span.EachNight() {
		overrides = append(overrides, booking.NightlyOverride{
			Date:      day,
			Available: input.Available,
			Price:     input.Price,
		})
	}

	if err := c.availabilityRepo.UpsertOverrides(ctx, listingID, overrides); err != nil {
		return 0, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}

	return len(overrides), nil
}
