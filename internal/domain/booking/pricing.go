package booking

import (
	"time"

	"github.com/shopspring/decimal"
)

// FeePolicy is the externally configured service-fee rule the calculator
// consumes; the calculator never owns the formula.
type FeePolicy interface {
	Fee(subtotal decimal.Decimal) decimal.Decimal
}

type PercentFeePolicy struct {
	Percent decimal.Decimal
}

func (p PercentFeePolicy) Fee(subtotal decimal.Decimal) decimal.Decimal {
	return roundHalfUp(subtotal.Mul(p.Percent).Div(decimal.NewFromInt(100)))
}

type FlatFeePolicy struct {
	Amount decimal.Decimal
}

func (p FlatFeePolicy) Fee(_ decimal.Decimal) decimal.Decimal {
	return roundHalfUp(p.Amount)
}

// NightlyOverride is a per-date availability row: a host-set custom price
// and/or a closed-for-display flag for one calendar day.
type NightlyOverride struct {
	Date      time.Time
	Price     *decimal.Decimal
	Available bool
}

// Quote is the priced breakdown of a stay.
type Quote struct {
	nights     int
	perNight   decimal.Decimal
	subtotal   decimal.Decimal
	serviceFee decimal.Decimal
	total      decimal.Decimal
	currency   string
}

// NewQuote prices a stay: every night costs the listing's base price unless a
// per-date override carries a custom one. When all nights share one effective
// price, subtotal = nights x perNight; otherwise subtotal is the sum of the
// nightly prices and perNight reports the base rate. All amounts are rounded
// half-up to 2 decimal places.
func NewQuote(stay StayRange, basePrice decimal.Decimal, overrides map[time.Time]NightlyOverride, policy FeePolicy, currency string) (Quote, error) {
	if basePrice.IsNegative() {
		return Quote{}, ErrNegativeAmount
	}
	if currency == "" {
		return Quote{}, ErrCurrencyMismatch
	}

	nights := stay.Nights()
	if nights < 1 {
		return Quote{}, ErrInvalidRange
	}

	base := roundHalfUp(basePrice)
	subtotal := decimal.Zero
	uniform := true
	perNight := base

	for i, night := range stay.EachNight() {
		price := base
		if ov, ok := overrides[night]; ok && ov.Price != nil {
			if ov.Price.IsNegative() {
				return Quote{}, ErrNegativeAmount
			}
			price = roundHalfUp(*ov.Price)
		}
		if i == 0 {
			perNight = price
		} else if !price.Equal(perNight) {
			uniform = false
		}
		subtotal = subtotal.Add(price)
	}
	if !uniform {
		perNight = base
	}
	subtotal = roundHalfUp(subtotal)

	fee := roundHalfUp(policy.Fee(subtotal))
	if fee.IsNegative() {
		return Quote{}, ErrNegativeAmount
	}

	return Quote{
		nights:     nights,
		perNight:   perNight,
		subtotal:   subtotal,
		serviceFee: fee,
		total:      subtotal.Add(fee),
		currency:   currency,
	}, nil
}

func ReconstructQuote(nights int, perNight, subtotal, serviceFee, total decimal.Decimal, currency string) Quote {
	return Quote{
		nights:     nights,
		perNight:   perNight,
		subtotal:   subtotal,
		serviceFee: serviceFee,
		total:      total,
		currency:   currency,
	}
}

func (q Quote) Nights() int                     { return q.nights }
func (q Quote) PerNight() decimal.Decimal       { return q.perNight }
func (q Quote) Subtotal() decimal.Decimal       { return q.subtotal }
func (q Quote) ServiceFee() decimal.Decimal     { return q.serviceFee }
func (q Quote) Total() decimal.Decimal          { return q.total }
func (q Quote) Currency() string                { return q.currency }
