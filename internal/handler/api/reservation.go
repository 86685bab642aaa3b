package api

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"stayhub/internal/domain/booking"
	reqdto "stayhub/internal/handler/dto/request"
	resdto "stayhub/internal/handler/dto/response"
	"stayhub/internal/handler/httperr"
	"stayhub/internal/handler/middleware"
	"stayhub/internal/pkg/errs"
	"stayhub/internal/usecase/commands"
	"stayhub/internal/usecase/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type ReservationHandler struct {
	bookingCommands    commands.BookingCommands
	reservationQueries queries.ReservationQueries
}

func NewReservationHandler(bookingCommands commands.BookingCommands, reservationQueries queries.ReservationQueries) *ReservationHandler {
	return &ReservationHandler{
		bookingCommands:    bookingCommands,
		reservationQueries: reservationQueries,
	}
}

// @Summary Create reservation
// @Description Book a listing for a date range, or block the range as an admin
// @Tags reservations
// @Accept json
// @Produce json
// @Param request body reqdto.CreateReservationRequest true "Reservation request"
// @Success 201 {object} resdto.ReservationResponse
// @Failure 400 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 409 {object} resdto.ConflictResponse
// @Failure 422 {object} map[string]any
// @Router /reservations [post]
func (h *ReservationHandler) CreateReservation(c *gin.Context) {
	var req reqdto.CreateReservationRequest
	if bindErr := c.ShouldBindJSON(&req); bindErr != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, bindErr, "Invalid request format")
		return
	}

	if req.IsBlocked && !middleware.IsAdmin(c) {
		c.JSON(http.StatusForbidden, gin.H{
			"error": "Only admins can block dates",
		})
		return
	}

	checkIn, checkOut, err := req.ParseDates()
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, err.Error())
		return
	}

	input := commands.CreateReservationInput{
		ListingID:  req.ListingID,
		StartDate:  checkIn,
		EndDate:    checkOut,
		IsBlocked:  req.IsBlocked,
		Name:       req.Name,
		Phone:      req.Phone,
		Email:      req.Email,
		Sex:        req.Sex,
		ClientType: req.ClientType,
		Note:       req.Note,
		Currency:   req.Currency,
	}
	if userID, ok := middleware.GetUserID(c); ok {
		input.UserID = &userID
	}

	view, err := h.bookingCommands.CreateReservation(c.Request.Context(), input)
	if err != nil {
		h.writeCreateError(c, err)
		return
	}

	c.JSON(http.StatusCreated, resdto.FromReservationView(view))
}

func (h *ReservationHandler) writeCreateError(c *gin.Context, err error) {
	var (
		verr     *booking.ValidationError
		conflict *commands.ConflictError
	)
	switch {
	case errors.Is(err, errs.ErrListingNotFound):
		httperr.AbortWithError(c, http.StatusNotFound, err, "Listing not found")
	case errors.As(err, &conflict):
		c.JSON(http.StatusConflict, resdto.FromConflicts(conflict.Conflicts))
	case errors.As(err, &verr):
		httperr.AbortWithFields(c, http.StatusUnprocessableEntity, err, "Validation failed", verr.FieldMap())
	case errors.Is(err, booking.ErrInvalidRange):
		httperr.AbortWithFields(c, http.StatusUnprocessableEntity, err, "Validation failed",
			map[string]string{"check_out": "must be after check_in"})
	case errors.Is(err, errs.ErrReferenceExhausted):
		httperr.AbortWithError(c, http.StatusServiceUnavailable, err, "Could not allocate a booking reference, please retry")
	default:
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal server error")
	}
}

// @Summary Get reservation by reference
// @Description Look up a reservation by its booking code
// @Tags reservations
// @Produce json
// @Param reference path string true "Booking reference (RES-XXXXXXXX)"
// @Success 200 {object} resdto.ReservationResponse
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /reservations/{reference} [get]
func (h *ReservationHandler) GetByReference(c *gin.Context) {
	ref, err := booking.NewReference(c.Param("reference"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid reference format")
		return
	}

	view, err := h.reservationQueries.GetByReference(c.Request.Context(), ref.String())
	if err != nil {
		if errors.Is(err, errs.ErrReservationNotFound) {
			httperr.AbortWithError(c, http.StatusNotFound, err, "Reservation not found")
			return
		}
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal server error")
		return
	}

	c.JSON(http.StatusOK, resdto.FromReservationView(view))
}

// @Summary Cancel reservation
// @Description Delete a reservation and free its dates
// @Tags reservations
// @Security BearerAuth
// @Param id path string true "Reservation ID"
// @Success 204
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /reservations/{id} [delete]
func (h *ReservationHandler) CancelReservation(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid reservation ID format")
		return
	}

	if err := h.bookingCommands.CancelReservation(c.Request.Context(), id); err != nil {
		if errors.Is(err, errs.ErrReservationNotFound) {
			httperr.AbortWithError(c, http.StatusNotFound, err, "Reservation not found")
			return
		}
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal server error")
		return
	}

	c.Status(http.StatusNoContent)
}

// @Summary List reservations for a listing
// @Description Page through a listing's reservations, newest window first
// @Tags reservations
// @Produce json
// @Security BearerAuth
// @Param id path string true "Listing ID"
// @Param from query string false "Include stays ending after this date"
// @Param to query string false "Include stays starting before this date"
// @Param limit query int false "Page size (max 200)"
// @Param after query string false "Cursor from the previous page"
// @Success 200 {object} resdto.ReservationPageResponse
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Router /listings/{id}/reservations [get]
func (h *ReservationHandler) ListForListing(c *gin.Context) {
	listingID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid listing ID format")
		return
	}

	opts, err := listOptionsFromQuery(c)
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, err.Error())
		return
	}

	page, err := h.reservationQueries.ListForListing(c.Request.Context(), listingID, opts)
	if err != nil {
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal server error")
		return
	}

	c.JSON(http.StatusOK, resdto.FromReservationPage(page))
}

func listOptionsFromQuery(c *gin.Context) (queries.ListOptions, error) {
	var opts queries.ListOptions

	if from := c.Query("from"); from != "" {
		t, err := time.ParseInLocation(time.DateOnly, from, time.UTC)
		if err != nil {
			return opts, errors.New("from must be a YYYY-MM-DD date")
		}
		opts.From = &t
	}
	if to := c.Query("to"); to != "" {
		t, err := time.ParseInLocation(time.DateOnly, to, time.UTC)
		if err != nil {
			return opts, errors.New("to must be a YYYY-MM-DD date")
		}
		opts.To = &t
	}
	if limit := c.Query("limit"); limit != "" {
		n, err := strconv.Atoi(limit)
		if err != nil {
			return opts, errors.New("limit must be an integer")
		}
		opts.Limit = n
	}
	if after := c.Query("after"); after != "" {
		opts.After = &after
	}

	return opts, nil
}
