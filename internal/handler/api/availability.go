package api

import (
	"errors"
	"net/http"
	"time"

	"stayhub/internal/domain/booking"
	reqdto "stayhub/internal/handler/dto/request"
	resdto "stayhub/internal/handler/dto/response"
	"stayhub/internal/handler/httperr"
	"stayhub/internal/pkg/errs"
	"stayhub/internal/usecase/commands"
	"stayhub/internal/usecase/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type AvailabilityHandler struct {
	availabilityCommands commands.AvailabilityCommands
	availabilityQueries  queries.AvailabilityQueries
}

func NewAvailabilityHandler(availabilityCommands commands.AvailabilityCommands, availabilityQueries queries.AvailabilityQueries) *AvailabilityHandler {
	return &AvailabilityHandler{
		availabilityCommands: availabilityCommands,
		availabilityQueries:  availabilityQueries,
	}
}

// @Summary Availability calendar
// @Description Per-day availability and effective price for [start, end)
// @Tags availability
// @Produce json
// @Param id path string true "Listing ID"
// @Param start query string true "First day (YYYY-MM-DD)"
// @Param end query string true "Day after the last day (YYYY-MM-DD)"
// @Success 200 {object} resdto.CalendarResponse
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /listings/{id}/availability [get]
func (h *AvailabilityHandler) GetCalendar(c *gin.Context) {
	listingID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid listing ID format")
		return
	}

	window, err := windowFromQuery(c)
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, err.Error())
		return
	}

	days, err := h.availabilityQueries.Calendar(c.Request.Context(), listingID, window)
	if err != nil {
		switch {
		case errors.Is(err, errs.ErrListingNotFound):
			httperr.AbortWithError(c, http.StatusNotFound, err, "Listing not found")
		case errors.Is(err, queries.ErrCalendarWindowTooLarge):
			httperr.AbortWithError(c, http.StatusBadRequest, err, "Availability window cannot exceed one year")
		default:
			httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal server error")
		}
		return
	}

	c.JSON(http.StatusOK, resdto.FromCalendar(days))
}

// @Summary Set availability overrides
// @Description Upsert per-day price and availability for [start_date, end_date)
// @Tags availability
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Listing ID"
// @Param request body reqdto.SetAvailabilityRequest true "Override request"
// @Success 200 {object} resdto.SetAvailabilityResponse
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 422 {object} map[string]any
// @Router /listings/{id}/availability [put]
func (h *AvailabilityHandler) SetAvailability(c *gin.Context) {
	listingID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid listing ID format")
		return
	}

	var req reqdto.SetAvailabilityRequest
	if bindErr := c.ShouldBindJSON(&req); bindErr != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, bindErr, "Invalid request format")
		return
	}

	start, end, err := req.ParseDates()
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, err.Error())
		return
	}

	price, err := req.ParsePrice()
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "price must be a decimal amount")
		return
	}

	input := commands.SetAvailabilityInput{
		StartDate: start,
		EndDate:   end,
		Available: req.Available,
		Price:     price,
	}

	updated, err := h.availabilityCommands.SetNightlyRates(c.Request.Context(), listingID, input)
	if err != nil {
		h.writeSetError(c, err)
		return
	}

	c.JSON(http.StatusOK, resdto.SetAvailabilityResponse{DaysUpdated: updated})
}

func (h *AvailabilityHandler) writeSetError(c *gin.Context, err error) {
	var verr *booking.ValidationError
	switch {
	case errors.Is(err, errs.ErrListingNotFound):
		httperr.AbortWithError(c, http.StatusNotFound, err, "Listing not found")
	case errors.As(err, &verr):
		httperr.AbortWithFields(c, http.StatusUnprocessableEntity, err, "Validation failed", verr.FieldMap())
	case errors.Is(err, booking.ErrInvalidRange):
		httperr.AbortWithFields(c, http.StatusUnprocessableEntity, err, "Validation failed",
			map[string]string{"end_date": "must be after start_date"})
	default:
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal server error")
	}
}

func windowFromQuery(c *gin.Context) (booking.StayRange, error) {
	startStr := c.Query("start")
	endStr := c.Query("end")
	if startStr == "" || endStr == "" {
		return booking.StayRange{}, errors.New("start and end query parameters are required")
	}

	start, err := time.ParseInLocation(time.DateOnly, startStr, time.UTC)
	if err != nil {
		return booking.StayRange{}, errors.New("start must be a YYYY-MM-DD date")
	}
	end, err := time.ParseInLocation(time.DateOnly, endStr, time.UTC)
	if err != nil {
		return booking.StayRange{}, errors.New("end must be a YYYY-MM-DD date")
	}

	window, err := booking.NewStayRange(start, end)
	if err != nil {
		return booking.StayRange{}, errors.New("end must be after start")
	}
	return window, nil
}
