package booking

import (
	"fmt"
	"net/mail"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// StayRange is a half-open date interval [checkIn, checkOut): the check-out
// day itself is free for the next guest's check-in.
type StayRange struct {
	checkIn  time.Time
	checkOut time.Time
}

func NewStayRange(checkIn, checkOut time.Time) (StayRange, error) {
	in := truncateToDay(checkIn)
	out := truncateToDay(checkOut)
	if !out.After(in) {
		return StayRange{}, ErrInvalidRange
	}
	return StayRange{checkIn: in, checkOut: out}, nil
}

func truncateToDay(t time.Time) time.Time {
	u := t.UTC()
	return time.Date(u.Year(), u.Month(), u.Day(), 0, 0, 0, 0, time.UTC)
}

func (r StayRange) CheckIn() time.Time {
	return r.checkIn
}

func (r StayRange) CheckOut() time.Time {
	return r.checkOut
}

func (r StayRange) Nights() int {
	return int(r.checkOut.Sub(r.checkIn).Hours() / 24)
}

// Overlaps implements half-open interval intersection: [s1,e1) and [s2,e2)
// overlap iff s1 < e2 && s2 < e1. Back-to-back stays never overlap.
func (r StayRange) Overlaps(other StayRange) bool {
	return r.checkIn.Before(other.checkOut) && other.checkIn.Before(r.checkOut)
}

func (r StayRange) Contains(day time.Time) bool {
	d := truncateToDay(day)
	return !d.Before(r.checkIn) && d.Before(r.checkOut)
}

// EachNight yields the date of every night of the stay, check-out excluded.
func (r StayRange) EachNight() []time.Time {
	nights := make([]time.Time, 0, r.Nights())
	for d := r.checkIn; d.Before(r.checkOut); d = d.AddDate(0, 0, 1) {
		nights = append(nights, d)
	}
	return nights
}

func (r StayRange) String() string {
	return fmt.Sprintf("%s/%s", r.checkIn.Format(time.DateOnly), r.checkOut.Format(time.DateOnly))
}

// Money is a non-negative amount with a fixed 2-decimal scale. Rounding is
// half-up so subtotal + fee never drifts a cent from total.
type Money struct {
	amount   decimal.Decimal
	currency string
}

func NewMoney(amount decimal.Decimal, currency string) (Money, error) {
	if amount.IsNegative() {
		return Money{}, ErrNegativeAmount
	}
	if currency == "" {
		return Money{}, fmt.Errorf("currency must be set")
	}
	return Money{amount: roundHalfUp(amount), currency: currency}, nil
}

// roundHalfUp rounds to 2 decimal places; for the non-negative amounts money
// carries, round-half-away-from-zero and round-half-up coincide.
func roundHalfUp(d decimal.Decimal) decimal.Decimal {
	return d.Round(2)
}

func (m Money) Amount() decimal.Decimal {
	return m.amount
}

func (m Money) Currency() string {
	return m.currency
}

func (m Money) Add(other Money) (Money, error) {
	if m.currency != other.currency {
		return Money{}, ErrCurrencyMismatch
	}
	return Money{amount: m.amount.Add(other.amount), currency: m.currency}, nil
}

func (m Money) String() string {
	return m.amount.StringFixed(2) + " " + m.currency
}

// GuestDetails carries the contact fields a guest booking requires. An admin
// block carries none of them.
type GuestDetails struct {
	name       string
	phone      string
	email      string
	sex        Sex
	clientType ClientType
}

func NewGuestDetails(name, phone, email string, sex Sex, clientType ClientType) (GuestDetails, error) {
	verr := &ValidationError{}

	name = strings.TrimSpace(name)
	if name == "" {
		verr.Add("name", "is required")
	}

	phone = strings.TrimSpace(phone)
	if phone == "" {
		verr.Add("phone", "is required")
	}

	email = strings.TrimSpace(email)
	if email == "" {
		verr.Add("email", "is required")
	} else if _, err := mail.ParseAddress(email); err != nil {
		verr.Add("email", "is not a valid address")
	}

	if sex == "" {
		verr.Add("sex", "is required")
	} else if !sex.IsValid() {
		verr.Add("sex", "must be one of male, female, other")
	}

	if clientType == "" {
		verr.Add("client_type", "is required")
	} else if !clientType.IsValid() {
		verr.Add("client_type", "must be one of individual, company")
	}

	if verr.HasErrors() {
		return GuestDetails{}, verr
	}

	return GuestDetails{
		name:       name,
		phone:      phone,
		email:      email,
		sex:        sex,
		clientType: clientType,
	}, nil
}

func (g GuestDetails) Name() string           { return g.name }
func (g GuestDetails) Phone() string          { return g.phone }
func (g GuestDetails) Email() string          { return g.email }
func (g GuestDetails) Sex() Sex               { return g.sex }
func (g GuestDetails) ClientType() ClientType { return g.clientType }
