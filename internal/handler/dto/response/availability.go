package response

import (
	"time"

	"stayhub/internal/usecase/queries"
)

type DayAvailabilityResponse struct {
	Date      string `json:"date"`
	Available bool   `json:"available"`
	Price     string `json:"price"`
	Currency  string `json:"currency"`
}

type CalendarResponse struct {
	Days []DayAvailabilityResponse `json:"days"`
}

type SetAvailabilityResponse struct {
	DaysUpdated int `json:"daysUpdated"`
}

func FromCalendar(days []*queries.DayAvailability) *CalendarResponse {
	out := make([]DayAvailabilityResponse, len(days))
	for i, d := range days {
		out[i] = DayAvailabilityResponse{
			Date:      d.Date.Format(time.DateOnly),
			Available: d.Available,
			Price:     d.Price.StringFixed(2),
			Currency:  d.Currency,
		}
	}
	return &CalendarResponse{Days: out}
}
