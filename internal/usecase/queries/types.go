package queries

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ReservationView is the full read model returned to bookers and admins.
// Guest and pricing fields are nil for admin blocks.
type ReservationView struct {
	ID          uuid.UUID
	Reference   string
	ListingID   uuid.UUID
	ListingName string
	UserID      *uuid.UUID
	StartDate   time.Time
	EndDate     time.Time
	IsBlocked   bool
	GuestName   *string
	GuestPhone  *string
	GuestEmail  *string
	GuestSex    *string
	ClientType  *string
	Note        *string
	Nights      int
	PerNight    *decimal.Decimal
	Subtotal    *decimal.Decimal
	ServiceFee  *decimal.Decimal
	Total       *decimal.Decimal
	Currency    *string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// ReservationListItem feeds calendar-display collaborators; it deliberately
// omits guest contact data.
type ReservationListItem struct {
	ID        uuid.UUID
	Reference string
	ListingID uuid.UUID
	StartDate time.Time
	EndDate   time.Time
	IsBlocked bool
	Total     *decimal.Decimal
	Currency  *string
	CreatedAt time.Time
}

type ReservationPage struct {
	Items      []*ReservationListItem
	NextCursor *string
}

type ListingView struct {
	ID           uuid.UUID
	Name         string
	NightlyPrice decimal.Decimal
	Currency     string
}

// OverrideView is one per-date availability row of a listing.
type OverrideView struct {
	Date      time.Time
	Available bool
	Price     *decimal.Decimal
}

// StayView is the occupancy slice of a reservation, enough for calendar math.
type StayView struct {
	StartDate time.Time
	EndDate   time.Time
}

// DayAvailability is one day of the calendar view: bookable or not, and the
// effective nightly price after overrides.
type DayAvailability struct {
	Date      time.Time
	Available bool
	Price     decimal.Decimal
	Currency  string
}
