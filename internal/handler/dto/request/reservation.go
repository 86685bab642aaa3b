package request

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Dates travel as calendar strings; stays have no time-of-day component.
const dateLayout = time.DateOnly

type CreateReservationRequest struct {
	ListingID  uuid.UUID `json:"listing_id" binding:"required"`
	CheckIn    string    `json:"check_in" binding:"required"`
	CheckOut   string    `json:"check_out" binding:"required"`
	IsBlocked  bool      `json:"is_blocked,omitempty"`
	Name       *string   `json:"name,omitempty"`
	Phone      *string   `json:"phone,omitempty"`
	Email      *string   `json:"email,omitempty"`
	Sex        *string   `json:"sex,omitempty"`
	ClientType *string   `json:"client_type,omitempty"`
	Note       *string   `json:"note,omitempty"`
	Currency   *string   `json:"currency,omitempty"`
}

func (r CreateReservationRequest) ParseDates() (checkIn, checkOut time.Time, err error) {
	checkIn, err = parseDate("check_in", r.CheckIn)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	checkOut, err = parseDate("check_out", r.CheckOut)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	return checkIn, checkOut, nil
}

func parseDate(field, value string) (time.Time, error) {
	t, err := time.ParseInLocation(dateLayout, value, time.UTC)
	if err != nil {
		return time.Time{}, fmt.Errorf("%s must be a YYYY-MM-DD date", field)
	}
	return t, nil
}
