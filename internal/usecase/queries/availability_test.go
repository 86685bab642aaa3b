//go:build unit

package queries_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"stayhub/internal/domain/booking"
	"stayhub/internal/infra"
	"stayhub/internal/pkg/errs"
	"stayhub/internal/usecase/queries"
	queriesmock "stayhub/tests/mock/queries"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

type AvailabilityQueriesTestSuite struct {
	suite.Suite
	ctrl  *gomock.Controller
	store *queriesmock.MockAvailabilityReadStore
	sut   queries.AvailabilityQueries
}

func (s *AvailabilityQueriesTestSuite) SetupTest() {
	s.ctrl = gomock.NewController(s.T())
	s.store = queriesmock.NewMockAvailabilityReadStore(s.ctrl)
	s.sut = queries.NewAvailabilityQueries(s.store)
}

func (s *AvailabilityQueriesTestSuite) TearDownTest() {
	s.ctrl.Finish()
}

func TestAvailabilityQueriesSuite(t *testing.T) {
	suite.Run(t, new(AvailabilityQueriesTestSuite))
}

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func window(s *AvailabilityQueriesTestSuite, from, to time.Time) booking.StayRange {
	w, err := booking.NewStayRange(from, to)
	s.Require().NoError(err)
	return w
}

func (s *AvailabilityQueriesTestSuite) listing(id uuid.UUID) *queries.ListingView {
	return &queries.ListingView{
		ID:           id,
		Name:         "Seaside Cottage",
		NightlyPrice: decimal.RequireFromString("120.00"),
		Currency:     "EUR",
	}
}

func (s *AvailabilityQueriesTestSuite) TestCalendar() {
	s.Run("open days carry the base rate", func() {
		s.SetupTest()
		listingID := uuid.New()
		w := window(s, day(2026, 10, 1), day(2026, 10, 4))

		s.store.EXPECT().ListingByID(gomock.Any(), listingID).Return(s.listing(listingID), nil)
		s.store.EXPECT().OverridesInRange(gomock.Any(), listingID, w.CheckIn(), w.CheckOut()).Return(nil, nil)
		s.store.EXPECT().StaysOverlapping(gomock.Any(), listingID, w.CheckIn(), w.CheckOut()).Return(nil, nil)

		days, err := s.sut.Calendar(context.Background(), listingID, w)
		s.Require().NoError(err)
		s.Require().Len(days, 3)
		for _, d := range days {
			s.True(d.Available)
			s.Equal("120.00", d.Price.StringFixed(2))
			s.Equal("EUR", d.Currency)
		}
		s.Equal(day(2026, 10, 1), days[0].Date)
		s.Equal(day(2026, 10, 3), days[2].Date)
	})

	s.Run("overrides replace price and can close a day", func() {
		s.SetupTest()
		listingID := uuid.New()
		w := window(s, day(2026, 10, 1), day(2026, 10, 4))
		weekend := decimal.RequireFromString("150.00")

		s.store.EXPECT().ListingByID(gomock.Any(), listingID).Return(s.listing(listingID), nil)
		s.store.EXPECT().OverridesInRange(gomock.Any(), listingID, w.CheckIn(), w.CheckOut()).
			Return([]*queries.OverrideView{
				{Date: day(2026, 10, 2), Available: true, Price: &weekend},
				{Date: day(2026, 10, 3), Available: false},
			}, nil)
		s.store.EXPECT().StaysOverlapping(gomock.Any(), listingID, w.CheckIn(), w.CheckOut()).Return(nil, nil)

		days, err := s.sut.Calendar(context.Background(), listingID, w)
		s.Require().NoError(err)
		s.Require().Len(days, 3)

		s.True(days[0].Available)
		s.Equal("120.00", days[0].Price.StringFixed(2))

		s.True(days[1].Available)
		s.Equal("150.00", days[1].Price.StringFixed(2))

		s.False(days[2].Available)
		// A closed day without an override price still reports the base rate.
		s.Equal("120.00", days[2].Price.StringFixed(2))
	})

	s.Run("occupied nights exclude the check-out day", func() {
		s.SetupTest()
		listingID := uuid.New()
		w := window(s, day(2026, 10, 1), day(2026, 10, 6))

		s.store.EXPECT().ListingByID(gomock.Any(), listingID).Return(s.listing(listingID), nil)
		s.store.EXPECT().OverridesInRange(gomock.Any(), listingID, w.CheckIn(), w.CheckOut()).Return(nil, nil)
		s.store.EXPECT().StaysOverlapping(gomock.Any(), listingID, w.CheckIn(), w.CheckOut()).
			Return([]*queries.StayView{
				{StartDate: day(2026, 10, 2), EndDate: day(2026, 10, 4)},
			}, nil)

		days, err := s.sut.Calendar(context.Background(), listingID, w)
		s.Require().NoError(err)
		s.Require().Len(days, 5)

		s.True(days[0].Available)  // Oct 1
		s.False(days[1].Available) // Oct 2
		s.False(days[2].Available) // Oct 3
		s.True(days[3].Available)  // Oct 4: check-out day is bookable
		s.True(days[4].Available)
	})

	s.Run("occupancy wins over an open override", func() {
		s.SetupTest()
		listingID := uuid.New()
		w := window(s, day(2026, 10, 1), day(2026, 10, 2))
		price := decimal.RequireFromString("99.00")

		s.store.EXPECT().ListingByID(gomock.Any(), listingID).Return(s.listing(listingID), nil)
		s.store.EXPECT().OverridesInRange(gomock.Any(), listingID, w.CheckIn(), w.CheckOut()).
			Return([]*queries.OverrideView{
				{Date: day(2026, 10, 1), Available: true, Price: &price},
			}, nil)
		s.store.EXPECT().StaysOverlapping(gomock.Any(), listingID, w.CheckIn(), w.CheckOut()).
			Return([]*queries.StayView{
				{StartDate: day(2026, 10, 1), EndDate: day(2026, 10, 2)},
			}, nil)

		days, err := s.sut.Calendar(context.Background(), listingID, w)
		s.Require().NoError(err)
		s.Require().Len(days, 1)
		s.False(days[0].Available)
		s.Equal("99.00", days[0].Price.StringFixed(2))
	})

	s.Run("window larger than a year is refused", func() {
		s.SetupTest()
		listingID := uuid.New()
		w := window(s, day(2026, 1, 1), day(2027, 2, 1))

		_, err := s.sut.Calendar(context.Background(), listingID, w)
		s.ErrorIs(err, queries.ErrCalendarWindowTooLarge)
	})

	s.Run("unknown listing", func() {
		s.SetupTest()
		listingID := uuid.New()
		w := window(s, day(2026, 10, 1), day(2026, 10, 4))

		s.store.EXPECT().ListingByID(gomock.Any(), listingID).
			Return(nil, infra.WrapRepoErr("listing not found", errors.New("no rows"), infra.KindNotFound))

		_, err := s.sut.Calendar(context.Background(), listingID, w)
		s.ErrorIs(err, errs.ErrListingNotFound)
	})
}
