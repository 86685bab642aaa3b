//go:build unit || e2e

package builder

import (
	"time"

	"stayhub/internal/domain/booking"
	reqdto "stayhub/internal/handler/dto/request"
	"stayhub/internal/usecase/commands"
	"stayhub/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type BookingBuilder struct {
	ListingID    uuid.UUID
	ListingName  string
	UserID       *uuid.UUID
	CheckIn      time.Time
	CheckOut     time.Time
	IsBlocked    bool
	Name         string
	Phone        string
	Email        string
	Sex          string
	ClientType   string
	Note         *string
	NightlyPrice decimal.Decimal
	Currency     string
	FeePercent   decimal.Decimal
}

func NewBookingBuilder() *BookingBuilder {
	checkIn := time.Date(2026, 10, 1, 0, 0, 0, 0, time.UTC)
	return &BookingBuilder{
		ListingID:    uuid.New(),
		ListingName:  "Seaside Cottage",
		CheckIn:      checkIn,
		CheckOut:     checkIn.AddDate(0, 0, 3),
		Name:         "Ada Lovelace",
		Phone:        "+44 20 7946 0958",
		Email:        "ada@example.com",
		Sex:          "female",
		ClientType:   "individual",
		NightlyPrice: decimal.RequireFromString("120.00"),
		Currency:     "EUR",
		FeePercent:   decimal.RequireFromString("10"),
	}
}

func (b *BookingBuilder) With(mutate func(*BookingBuilder)) *BookingBuilder {
	mutate(b)
	return b
}

// Fluent builder methods
func (b *BookingBuilder) WithListingID(id uuid.UUID) *BookingBuilder {
	b.ListingID = id
	return b
}

func (b *BookingBuilder) WithUserID(id uuid.UUID) *BookingBuilder {
	b.UserID = &id
	return b
}

func (b *BookingBuilder) WithStay(checkIn, checkOut time.Time) *BookingBuilder {
	b.CheckIn = checkIn
	b.CheckOut = checkOut
	return b
}

func (b *BookingBuilder) WithName(name string) *BookingBuilder {
	b.Name = name
	return b
}

func (b *BookingBuilder) WithEmail(email string) *BookingBuilder {
	b.Email = email
	return b
}

func (b *BookingBuilder) WithNightlyPrice(price string) *BookingBuilder {
	b.NightlyPrice = decimal.RequireFromString(price)
	return b
}

func (b *BookingBuilder) AsAdminBlock() *BookingBuilder {
	b.IsBlocked = true
	return b
}

// Build methods
func (b *BookingBuilder) BuildStay() booking.StayRange {
	stay, err := booking.NewStayRange(b.CheckIn, b.CheckOut)
	if err != nil {
		panic(err)
	}
	return stay
}

func (b *BookingBuilder) BuildGuestDetails() (booking.GuestDetails, error) {
	return booking.NewGuestDetails(b.Name, b.Phone, b.Email, booking.Sex(b.Sex), booking.ClientType(b.ClientType))
}

func (b *BookingBuilder) BuildQuote() (booking.Quote, error) {
	return booking.NewQuote(
		b.BuildStay(),
		b.NightlyPrice,
		nil,
		booking.PercentFeePolicy{Percent: b.FeePercent},
		b.Currency,
	)
}

func (b *BookingBuilder) BuildDomain() (*booking.Reservation, error) {
	stay := b.BuildStay()
	if b.IsBlocked {
		note := ""
		if b.Note != nil {
			note = *b.Note
		}
		return booking.NewAdminBlock(b.ListingID, stay, note)
	}

	guest, err := b.BuildGuestDetails()
	if err != nil {
		return nil, err
	}
	quote, err := b.BuildQuote()
	if err != nil {
		return nil, err
	}
	return booking.NewGuestBooking(b.ListingID, b.UserID, stay, guest, quote)
}

func (b *BookingBuilder) BuildCreateRequestDTO() reqdto.CreateReservationRequest {
	name := b.Name
	phone := b.Phone
	email := b.Email
	sex := b.Sex
	clientType := b.ClientType
	return reqdto.CreateReservationRequest{
		ListingID:  b.ListingID,
		CheckIn:    b.CheckIn.Format(time.DateOnly),
		CheckOut:   b.CheckOut.Format(time.DateOnly),
		IsBlocked:  b.IsBlocked,
		Name:       &name,
		Phone:      &phone,
		Email:      &email,
		Sex:        &sex,
		ClientType: &clientType,
		Note:       b.Note,
	}
}

func (b *BookingBuilder) BuildCommandInput() commands.CreateReservationInput {
	name := b.Name
	phone := b.Phone
	email := b.Email
	sex := b.Sex
	clientType := b.ClientType
	return commands.CreateReservationInput{
		ListingID:  b.ListingID,
		StartDate:  b.CheckIn,
		EndDate:    b.CheckOut,
		IsBlocked:  b.IsBlocked,
		UserID:     b.UserID,
		Name:       &name,
		Phone:      &phone,
		Email:      &email,
		Sex:        &sex,
		ClientType: &clientType,
		Note:       b.Note,
	}
}

func (b *BookingBuilder) BuildListingSnapshot() *commands.ListingSnapshot {
	return &commands.ListingSnapshot{
		ID:           b.ListingID,
		Name:         b.ListingName,
		NightlyPrice: b.NightlyPrice,
		Currency:     b.Currency,
	}
}

func (b *BookingBuilder) BuildViewQuery() *queries.ReservationView {
	now := time.Now()
	nights := b.BuildStay().Nights()
	view := &queries.ReservationView{
		ID:          uuid.New(),
		Reference:   "RES-AB12CD34",
		ListingID:   b.ListingID,
		ListingName: b.ListingName,
		UserID:      b.UserID,
		StartDate:   b.CheckIn,
		EndDate:     b.CheckOut,
		IsBlocked:   b.IsBlocked,
		Note:        b.Note,
		Nights:      nights,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if !b.IsBlocked {
		quote, err := b.BuildQuote()
		if err != nil {
			panic(err)
		}
		perNight := quote.PerNight()
		subtotal := quote.Subtotal()
		fee := quote.ServiceFee()
		total := quote.Total()
		currency := b.Currency
		view.GuestName = &b.Name
		view.GuestPhone = &b.Phone
		view.GuestEmail = &b.Email
		view.GuestSex = &b.Sex
		view.ClientType = &b.ClientType
		view.PerNight = &perNight
		view.Subtotal = &subtotal
		view.ServiceFee = &fee
		view.Total = &total
		view.Currency = &currency
	}

	return view
}

func (b *BookingBuilder) BuildListItem() *queries.ReservationListItem {
	item := &queries.ReservationListItem{
		ID:        uuid.New(),
		Reference: "RES-AB12CD34",
		ListingID: b.ListingID,
		StartDate: b.CheckIn,
		EndDate:   b.CheckOut,
		IsBlocked: b.IsBlocked,
		CreatedAt: time.Now(),
	}
	if !b.IsBlocked {
		quote, err := b.BuildQuote()
		if err != nil {
			panic(err)
		}
		total := quote.Total()
		currency := b.Currency
		item.Total = &total
		item.Currency = &currency
	}
	return item
}

func (b *BookingBuilder) BuildConflict() commands.ConflictingStay {
	return commands.ConflictingStay{
		ID:        uuid.New(),
		Reference: "RES-ZZ99YY88",
		StartDate: b.CheckIn,
		EndDate:   b.CheckOut,
		IsBlocked: b.IsBlocked,
	}
}
