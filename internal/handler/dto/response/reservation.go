package response

import (
	"time"

	"stayhub/internal/usecase/commands"
	"stayhub/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const dateLayout = time.DateOnly

type ReservationResponse struct {
	ID          uuid.UUID  `json:"id"`
	Reference   string     `json:"reference"`
	ListingID   uuid.UUID  `json:"listingId"`
	ListingName string     `json:"listingName"`
	UserID      *uuid.UUID `json:"userId,omitempty"`
	CheckIn     string     `json:"checkIn"`
	CheckOut    string     `json:"checkOut"`
	IsBlocked   bool       `json:"isBlocked"`
	Nights      int        `json:"nights"`
	Guest       *GuestResponse   `json:"guest,omitempty"`
	Pricing     *PricingResponse `json:"pricing,omitempty"`
	Note        *string    `json:"note,omitempty"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
}

type GuestResponse struct {
	Name       string `json:"name"`
	Phone      string `json:"phone"`
	Email      string `json:"email"`
	Sex        string `json:"sex"`
	ClientType string `json:"clientType"`
}

type PricingResponse struct {
	PerNight   string `json:"perNight"`
	Subtotal   string `json:"subtotal"`
	ServiceFee string `json:"serviceFee"`
	Total      string `json:"total"`
	Currency   string `json:"currency"`
}

type ReservationListResponse struct {
	ID        uuid.UUID `json:"id"`
	Reference string    `json:"reference"`
	ListingID uuid.UUID `json:"listingId"`
	CheckIn   string    `json:"checkIn"`
	CheckOut  string    `json:"checkOut"`
	IsBlocked bool      `json:"isBlocked"`
	Total     *string   `json:"total,omitempty"`
	Currency  *string   `json:"currency,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

type ReservationPageResponse struct {
	Items      []*ReservationListResponse `json:"items"`
	NextCursor *string                    `json:"nextCursor,omitempty"`
}

// ConflictResponse is the 409 payload: every reservation colliding with the
// requested range, so a client can offer alternative dates.
type ConflictResponse struct {
	Conflicts []ConflictEntry `json:"conflicts"`
}

type ConflictEntry struct {
	Reference string `json:"reference"`
	CheckIn   string `json:"checkIn"`
	CheckOut  string `json:"checkOut"`
	IsBlocked bool   `json:"isBlocked"`
}

func FromReservationView(rm *queries.ReservationView) *ReservationResponse {
	resp := &ReservationResponse{
		ID:          rm.ID,
		Reference:   rm.Reference,
		ListingID:   rm.ListingID,
		ListingName: rm.ListingName,
		UserID:      rm.UserID,
		CheckIn:     rm.StartDate.Format(dateLayout),
		CheckOut:    rm.EndDate.Format(dateLayout),
		IsBlocked:   rm.IsBlocked,
		Nights:      rm.Nights,
		Note:        rm.Note,
		CreatedAt:   rm.CreatedAt,
		UpdatedAt:   rm.UpdatedAt,
	}

	if rm.GuestName != nil {
		resp.Guest = &GuestResponse{
			Name:       *rm.GuestName,
			Phone:      deref(rm.GuestPhone),
			Email:      deref(rm.GuestEmail),
			Sex:        deref(rm.GuestSex),
			ClientType: deref(rm.ClientType),
		}
	}
	if rm.Total != nil {
		resp.Pricing = &PricingResponse{
			PerNight:   fixed(rm.PerNight),
			Subtotal:   fixed(rm.Subtotal),
			ServiceFee: fixed(rm.ServiceFee),
			Total:      fixed(rm.Total),
			Currency:   deref(rm.Currency),
		}
	}

	return resp
}

func FromReservationListItem(rm *queries.ReservationListItem) *ReservationListResponse {
	resp := &ReservationListResponse{
		ID:        rm.ID,
		Reference: rm.Reference,
		ListingID: rm.ListingID,
		CheckIn:   rm.StartDate.Format(dateLayout),
		CheckOut:  rm.EndDate.Format(dateLayout),
		IsBlocked: rm.IsBlocked,
		Currency:  rm.Currency,
		CreatedAt: rm.CreatedAt,
	}
	if rm.Total != nil {
		total := rm.Total.StringFixed(2)
		resp.Total = &total
	}
	return resp
}

func FromReservationPage(page *queries.ReservationPage) *ReservationPageResponse {
	items := make([]*ReservationListResponse, len(page.Items))
	for i, item := range page.Items {
		items[i] = FromReservationListItem(item)
	}
	return &ReservationPageResponse{Items: items, NextCursor: page.NextCursor}
}

func FromConflicts(conflicts []commands.ConflictingStay) *ConflictResponse {
	entries := make([]ConflictEntry, len(conflicts))
	for i, c := range conflicts {
		entries[i] = ConflictEntry{
			Reference: c.Reference,
			CheckIn:   c.StartDate.Format(dateLayout),
			CheckOut:  c.EndDate.Format(dateLayout),
			IsBlocked: c.IsBlocked,
		}
	}
	return &ConflictResponse{Conflicts: entries}
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func fixed(d *decimal.Decimal) string {
	if d == nil {
		return ""
	}
	return d.StringFixed(2)
}
