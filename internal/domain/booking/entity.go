package booking

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

var ErrQuoteStayMismatch = errors.New("quote does not cover the stay")

// Reservation is the ledger's central entity. The two creation paths are
// separate constructors: a guest booking always carries contact details and a
// price quote, an admin block never does. There is no flag to forget to check.
type Reservation struct {
	id        uuid.UUID
	reference Reference
	listingID uuid.UUID
	userID    *uuid.UUID
	stay      StayRange
	kind      Kind
	guest     *GuestDetails
	quote     *Quote
	note      string
	createdAt time.Time
	updatedAt time.Time
}

func NewGuestBooking(listingID uuid.UUID, userID *uuid.UUID, stay StayRange, guest GuestDetails, quote Quote) (*Reservation, error) {
	if quote.Nights() != stay.Nights() {
		return nil, ErrQuoteStayMismatch
	}
	g := guest
	q := quote
	return &Reservation{
		id:        uuid.New(),
		listingID: listingID,
		userID:    userID,
		stay:      stay,
		kind:      KindGuestBooking,
		guest:     &g,
		quote:     &q,
	}, nil
}

func NewAdminBlock(listingID uuid.UUID, stay StayRange, note string) (*Reservation, error) {
	return &Reservation{
		id:        uuid.New(),
		listingID: listingID,
		stay:      stay,
		kind:      KindAdminBlock,
		note:      note,
	}, nil
}

func ReconstructReservation(
	id uuid.UUID,
	reference Reference,
	listingID uuid.UUID,
	userID *uuid.UUID,
	stay StayRange,
	kind Kind,
	guest *GuestDetails,
	quote *Quote,
	note string,
	createdAt, updatedAt time.Time,
) *Reservation {
	return &Reservation{
		id:        id,
		reference: reference,
		listingID: listingID,
		userID:    userID,
		stay:      stay,
		kind:      kind,
		guest:     guest,
		quote:     quote,
		note:      note,
		createdAt: createdAt,
		updatedAt: updatedAt,
	}
}

// AssignReference sets the booking code exactly once; the ledger retries with
// a fresh code on a uniqueness collision, so reassignment goes through
// ReplaceReference instead.
func (r *Reservation) AssignReference(ref Reference) error {
	if !r.reference.IsZero() {
		return ErrAlreadyReferenced
	}
	if ref.IsZero() {
		return ErrInvalidReference
	}
	r.reference = ref
	return nil
}

// ReplaceReference discards a colliding candidate code before a retry. Only
// valid while the reservation is unpersisted.
func (r *Reservation) ReplaceReference(ref Reference) error {
	if ref.IsZero() {
		return ErrInvalidReference
	}
	r.reference = ref
	return nil
}

func (r *Reservation) IsBlocked() bool {
	return r.kind == KindAdminBlock
}

func (r *Reservation) Nights() int {
	return r.stay.Nights()
}

func (r *Reservation) ID() uuid.UUID         { return r.id }
func (r *Reservation) Reference() Reference  { return r.reference }
func (r *Reservation) ListingID() uuid.UUID  { return r.listingID }
func (r *Reservation) UserID() *uuid.UUID    { return r.userID }
func (r *Reservation) Stay() StayRange       { return r.stay }
func (r *Reservation) Kind() Kind            { return r.kind }
func (r *Reservation) Guest() *GuestDetails  { return r.guest }
func (r *Reservation) Quote() *Quote         { return r.quote }
func (r *Reservation) Note() string          { return r.note }
func (r *Reservation) CreatedAt() time.Time  { return r.createdAt }
func (r *Reservation) UpdatedAt() time.Time  { return r.updatedAt }
