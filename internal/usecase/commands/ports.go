package commands

import (
	"context"
	"fmt"
	"time"

	"stayhub/internal/domain/booking"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Write-side snapshots prevent dependency on read-side query types
type ListingSnapshot struct {
	ID           uuid.UUID
	Name         string
	NightlyPrice decimal.Decimal
	Currency     string
}

// ConflictingStay describes an existing reservation blocking a requested
// range; it feeds 409 payloads so a UI can suggest alternatives.
type ConflictingStay struct {
	ID        uuid.UUID
	Reference string
	StartDate time.Time
	EndDate   time.Time
	IsBlocked bool
}

// ConflictError is an expected business outcome, not an infrastructure
// failure; it carries the ranges the caller collided with.
type ConflictError struct {
	Conflicts []ConflictingStay
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("requested dates are unavailable (%d conflicting reservations)", len(e.Conflicts))
}

type ListingRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*ListingSnapshot, error)
}

type ReservationRepository interface {
	// Create inserts the reservation as a single statement; the storage layer
	// enforces non-overlap and reference uniqueness and reports violations as
	// KindConflict / KindDuplicateKey.
	Create(ctx context.Context, res *booking.Reservation) (uuid.UUID, error)
	Delete(ctx context.Context, id uuid.UUID) error
	FindConflicts(ctx context.Context, listingID uuid.UUID, stay booking.StayRange, excludeID *uuid.UUID) ([]ConflictingStay, error)
}

type AvailabilityRepository interface {
	OverridesForStay(ctx context.Context, listingID uuid.UUID, stay booking.StayRange) (map[time.Time]booking.NightlyOverride, error)
	UpsertOverrides(ctx context.Context, listingID uuid.UUID, overrides []booking.NightlyOverride) error
}

// ReservationConfirmedEvent is handed to the notification collaborator after a
// guest booking commits. Strings only: downstream consumers should not need
// this module's types.
type ReservationConfirmedEvent struct {
	ReservationID string `json:"reservation_id"`
	Reference     string `json:"reference"`
	ListingID     string `json:"listing_id"`
	ListingName   string `json:"listing_name"`
	GuestName     string `json:"guest_name"`
	GuestEmail    string `json:"guest_email"`
	CheckIn       string `json:"check_in"`
	CheckOut      string `json:"check_out"`
	Nights        int    `json:"nights"`
	Total         string `json:"total"`
	Currency      string `json:"currency"`
	ConfirmedAt   string `json:"confirmed_at"`
}

// ConfirmationNotifier delivers the confirmation message. Fire-and-forget:
// the ledger never rolls back a reservation because notification failed.
type ConfirmationNotifier interface {
	ReservationConfirmed(ctx context.Context, event ReservationConfirmedEvent) error
}
