//go:build unit

package api_test

import (
	"errors"
	"net/http"
	"testing"
	"time"

	"stayhub/internal/domain/booking"
	"stayhub/internal/handler/api"
	resdto "stayhub/internal/handler/dto/response"
	"stayhub/internal/pkg/errs"
	"stayhub/internal/pkg/jwt"
	"stayhub/internal/usecase/commands"
	"stayhub/internal/usecase/queries"
	"stayhub/tests/common/httptest"
	"stayhub/tests/common/testutil"
	commandsmock "stayhub/tests/mock/commands"
	queriesmock "stayhub/tests/mock/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

type AvailabilityHandlerTestSuite struct {
	suite.Suite
	router       *gin.Engine
	mockCtrl     *gomock.Controller
	mockCommands *commandsmock.MockAvailabilityCommands
	mockQueries  *queriesmock.MockAvailabilityQueries
	handler      *api.AvailabilityHandler
}

func (s *AvailabilityHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	s.router = gin.New()

	s.mockCtrl = gomock.NewController(s.T())
	s.mockCommands = commandsmock.NewMockAvailabilityCommands(s.mockCtrl)
	s.mockQueries = queriesmock.NewMockAvailabilityQueries(s.mockCtrl)
	s.handler = api.NewAvailabilityHandler(s.mockCommands, s.mockQueries)

	requireAdmin := func(c *gin.Context) {
		if c.GetHeader("Authorization") != "Bearer admin-token" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
		c.Set("user_id", uuid.New())
		c.Set("user_role", jwt.RoleAdmin)
		c.Next()
	}

	s.router.GET("/listings/:id/availability", s.handler.GetCalendar)
	s.router.PUT("/listings/:id/availability", requireAdmin, s.handler.SetAvailability)
}

func (s *AvailabilityHandlerTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

func TestAvailabilityHandlerSuite(t *testing.T) {
	suite.Run(t, new(AvailabilityHandlerTestSuite))
}

// ================================================================================
// TestGetCalendar
// ================================================================================

func (s *AvailabilityHandlerTestSuite) TestGetCalendar() {
	listingID := uuid.New()
	url := "/listings/" + listingID.String() + "/availability"
	query := "?start=2026-10-01&end=2026-10-04"

	s.Run("success: returns 200 OK with per-day entries", func() {
		days := []*queries.DayAvailability{
			{Date: time.Date(2026, 10, 1, 0, 0, 0, 0, time.UTC), Available: true, Price: decimal.RequireFromString("120.00"), Currency: "EUR"},
			{Date: time.Date(2026, 10, 2, 0, 0, 0, 0, time.UTC), Available: false, Price: decimal.RequireFromString("150.00"), Currency: "EUR"},
		}
		s.mockQueries.EXPECT().Calendar(gomock.Any(), listingID, gomock.Any()).
			DoAndReturn(func(_ any, _ uuid.UUID, window booking.StayRange) ([]*queries.DayAvailability, error) {
				s.Equal(3, window.Nights())
				return days, nil
			}).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, url+query, nil, "")

		var response resdto.CalendarResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &response)
		s.Require().Len(response.Days, 2)
		s.Equal("2026-10-01", response.Days[0].Date)
		s.True(response.Days[0].Available)
		s.Equal("120.00", response.Days[0].Price)
		s.False(response.Days[1].Available)
		s.Equal("150.00", response.Days[1].Price)
	})

	s.Run("error: 400 Bad Request on bad path or query", func() {
		cases := []struct {
			name string
			path string
		}{
			{"invalid listing id", "/listings/not-a-uuid/availability" + query},
			{"missing start", url + "?end=2026-10-04"},
			{"missing end", url + "?start=2026-10-01"},
			{"bad start date", url + "?start=Oct-1&end=2026-10-04"},
			{"end not after start", url + "?start=2026-10-04&end=2026-10-01"},
		}
		for _, tc := range cases {
			s.Run(tc.name, func() {
				rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, tc.path, nil, "")
				httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "")
			})
		}
	})

	s.Run("error: 404 Not Found for missing listing", func() {
		s.mockQueries.EXPECT().Calendar(gomock.Any(), listingID, gomock.Any()).
			Return(nil, errs.ErrListingNotFound).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, url+query, nil, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusNotFound, "Listing not found")
	})

	s.Run("error: 400 Bad Request when the window exceeds a year", func() {
		s.mockQueries.EXPECT().Calendar(gomock.Any(), listingID, gomock.Any()).
			Return(nil, queries.ErrCalendarWindowTooLarge).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, url+"?start=2026-01-01&end=2027-02-01", nil, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "one year")
	})
}

// ================================================================================
// TestSetAvailability
// ================================================================================

func (s *AvailabilityHandlerTestSuite) TestSetAvailability() {
	listingID := uuid.New()
	url := "/listings/" + listingID.String() + "/availability"

	price := "150.00"
	reqBody := map[string]any{
		"start_date": "2026-11-01",
		"end_date":   "2026-11-05",
		"available":  true,
		"price":      price,
	}

	s.Run("success: returns 200 OK with the day count", func() {
		s.mockCommands.EXPECT().SetNightlyRates(gomock.Any(), listingID, gomock.Any()).
			DoAndReturn(func(_ any, _ uuid.UUID, input commands.SetAvailabilityInput) (int, error) {
				s.True(input.Available)
				s.Require().NotNil(input.Price)
				s.Equal("150.00", input.Price.StringFixed(2))
				return 4, nil
			}).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPut, url, reqBody, "admin-token")

		var response resdto.SetAvailabilityResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &response)
		s.Equal(4, response.DaysUpdated)
	})

	s.Run("error: 401 Unauthorized without a token", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPut, url, reqBody, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusUnauthorized, "Unauthorized")
	})

	s.Run("error: 400 Bad Request on malformed payloads", func() {
		cases := []struct {
			name   string
			mutate func(m map[string]any)
		}{
			{"missing start_date", testutil.Field("start_date", nil)},
			{"missing end_date", testutil.Field("end_date", nil)},
			{"bad start_date", testutil.Field("start_date", "November 1st")},
			{"price not a decimal", testutil.Field("price", "lots")},
		}
		for _, tc := range cases {
			s.Run(tc.name, func() {
				requestMap := testutil.DtoMap(s.T(), reqBody, tc.mutate)
				rec := httptest.PerformRequest(s.T(), s.router, http.MethodPut, url, requestMap, "admin-token")
				httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "")
			})
		}
	})

	s.Run("error: 404 Not Found for missing listing", func() {
		s.mockCommands.EXPECT().SetNightlyRates(gomock.Any(), listingID, gomock.Any()).
			Return(0, errs.ErrListingNotFound).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPut, url, reqBody, "admin-token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusNotFound, "Listing not found")
	})

	s.Run("error: 422 Unprocessable Entity for a negative price", func() {
		verr := &booking.ValidationError{}
		verr.Add("price", "cannot be negative")
		s.mockCommands.EXPECT().SetNightlyRates(gomock.Any(), listingID, gomock.Any()).
			Return(0, verr).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPut, url, reqBody, "admin-token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusUnprocessableEntity, "Validation failed")
	})

	s.Run("error: 422 Unprocessable Entity for an inverted range", func() {
		s.mockCommands.EXPECT().SetNightlyRates(gomock.Any(), listingID, gomock.Any()).
			Return(0, booking.ErrInvalidRange).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPut, url, reqBody, "admin-token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusUnprocessableEntity, "Validation failed")
	})

	s.Run("error: 500 Internal Server Error on unexpected failures", func() {
		s.mockCommands.EXPECT().SetNightlyRates(gomock.Any(), listingID, gomock.Any()).
			Return(0, errors.New("connection reset")).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPut, url, reqBody, "admin-token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusInternalServerError, "Internal server error")
	})
}
