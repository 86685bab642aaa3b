package request

import (
	"time"

	"github.com/shopspring/decimal"
)

type SetAvailabilityRequest struct {
	StartDate string  `json:"start_date" binding:"required"`
	EndDate   string  `json:"end_date" binding:"required"`
	Available bool    `json:"available"`
	Price     *string `json:"price,omitempty"`
}

func (r SetAvailabilityRequest) ParseDates() (start, end time.Time, err error) {
	start, err = parseDate("start_date", r.StartDate)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	end, err = parseDate("end_date", r.EndDate)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	return start, end, nil
}

func (r SetAvailabilityRequest) ParsePrice() (*decimal.Decimal, error) {
	if r.Price == nil {
		return nil, nil
	}
	d, err := decimal.NewFromString(*r.Price)
	if err != nil {
		return nil, err
	}
	return &d, nil
}
