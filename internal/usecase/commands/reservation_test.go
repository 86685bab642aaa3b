//go:build unit

package commands_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"stayhub/internal/domain/booking"
	"stayhub/internal/infra"
	"stayhub/internal/pkg/clock"
	"stayhub/internal/pkg/errs"
	"stayhub/internal/usecase/commands"
	"stayhub/tests/common/builder"
	commandsmock "stayhub/tests/mock/commands"
	domainmock "stayhub/tests/mock/domain"
	queriesmock "stayhub/tests/mock/queries"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

const maxReferenceAttempts = 3

type BookingCommandsTestSuite struct {
	suite.Suite
	ctrl             *gomock.Controller
	reservationRepo  *commandsmock.MockReservationRepository
	listingRepo      *commandsmock.MockListingRepository
	availabilityRepo *commandsmock.MockAvailabilityRepository
	referenceGen     *domainmock.MockReferenceGenerator
	notifier         *commandsmock.MockConfirmationNotifier
	reservationViews *queriesmock.MockReservationQueries
	sut              commands.BookingCommands
}

func (s *BookingCommandsTestSuite) SetupTest() {
	s.ctrl = gomock.NewController(s.T())
	s.reservationRepo = commandsmock.NewMockReservationRepository(s.ctrl)
	s.listingRepo = commandsmock.NewMockListingRepository(s.ctrl)
	s.availabilityRepo = commandsmock.NewMockAvailabilityRepository(s.ctrl)
	s.referenceGen = domainmock.NewMockReferenceGenerator(s.ctrl)
	s.notifier = commandsmock.NewMockConfirmationNotifier(s.ctrl)
	s.reservationViews = queriesmock.NewMockReservationQueries(s.ctrl)

	s.sut = commands.NewBookingCommands(
		s.reservationRepo,
		s.listingRepo,
		s.availabilityRepo,
		s.referenceGen,
		booking.PercentFeePolicy{Percent: decimal.RequireFromString("10")},
		s.notifier,
		s.reservationViews,
		clock.NewMockClock(time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC)),
		maxReferenceAttempts,
	)
}

func (s *BookingCommandsTestSuite) TearDownTest() {
	s.ctrl.Finish()
}

func TestBookingCommandsSuite(t *testing.T) {
	suite.Run(t, new(BookingCommandsTestSuite))
}

func (s *BookingCommandsTestSuite) ref(raw string) booking.Reference {
	ref, err := booking.NewReference(raw)
	s.Require().NoError(err)
	return ref
}

func (s *BookingCommandsTestSuite) expectHappyPathUntilInsert(b *builder.BookingBuilder) {
	s.listingRepo.EXPECT().FindByID(gomock.Any(), b.ListingID).
		Return(b.BuildListingSnapshot(), nil)
	s.availabilityRepo.EXPECT().OverridesForStay(gomock.Any(), b.ListingID, gomock.Any()).
		Return(nil, nil)
	s.reservationRepo.EXPECT().FindConflicts(gomock.Any(), b.ListingID, gomock.Any(), gomock.Nil()).
		Return(nil, nil)
}

func (s *BookingCommandsTestSuite) TestCreateReservation() {
	s.Run("guest booking succeeds and publishes confirmation", func() {
		s.SetupTest()
		b := builder.NewBookingBuilder()
		view := b.BuildViewQuery()

		s.expectHappyPathUntilInsert(b)
		s.referenceGen.EXPECT().Generate().Return(s.ref("RES-AB12CD34"))
		s.reservationRepo.EXPECT().Create(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, res *booking.Reservation) (uuid.UUID, error) {
				s.Equal("RES-AB12CD34", res.Reference().String())
				s.False(res.IsBlocked())
				return view.ID, nil
			})
		s.reservationViews.EXPECT().GetByID(gomock.Any(), view.ID).Return(view, nil)
		s.notifier.EXPECT().ReservationConfirmed(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, event commands.ReservationConfirmedEvent) error {
				s.Equal(view.Reference, event.Reference)
				s.Equal("2026-10-01", event.CheckIn)
				s.Equal("2026-10-04", event.CheckOut)
				return nil
			})

		got, err := s.sut.CreateReservation(context.Background(), b.BuildCommandInput())
		s.Require().NoError(err)
		s.Equal(view.ID, got.ID)
	})

	s.Run("admin block skips pricing and confirmation", func() {
		s.SetupTest()
		b := builder.NewBookingBuilder().AsAdminBlock()
		view := b.BuildViewQuery()

		s.listingRepo.EXPECT().FindByID(gomock.Any(), b.ListingID).
			Return(b.BuildListingSnapshot(), nil)
		s.reservationRepo.EXPECT().FindConflicts(gomock.Any(), b.ListingID, gomock.Any(), gomock.Nil()).
			Return(nil, nil)
		s.referenceGen.EXPECT().Generate().Return(s.ref("RES-AB12CD34"))
		s.reservationRepo.EXPECT().Create(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, res *booking.Reservation) (uuid.UUID, error) {
				s.True(res.IsBlocked())
				s.Nil(res.Quote())
				return view.ID, nil
			})
		s.reservationViews.EXPECT().GetByID(gomock.Any(), view.ID).Return(view, nil)
		// No notifier expectation: publishing a block would fail the test.

		input := commands.CreateReservationInput{
			ListingID: b.ListingID,
			StartDate: b.CheckIn,
			EndDate:   b.CheckOut,
			IsBlocked: true,
		}
		got, err := s.sut.CreateReservation(context.Background(), input)
		s.Require().NoError(err)
		s.True(got.IsBlocked)
	})

	s.Run("unknown listing", func() {
		s.SetupTest()
		b := builder.NewBookingBuilder()
		s.listingRepo.EXPECT().FindByID(gomock.Any(), b.ListingID).
			Return(nil, infra.WrapRepoErr("listing not found", errors.New("no rows"), infra.KindNotFound))

		_, err := s.sut.CreateReservation(context.Background(), b.BuildCommandInput())
		s.ErrorIs(err, errs.ErrListingNotFound)
	})

	s.Run("invalid guest details", func() {
		s.SetupTest()
		b := builder.NewBookingBuilder().WithEmail("not-an-email")
		s.listingRepo.EXPECT().FindByID(gomock.Any(), b.ListingID).
			Return(b.BuildListingSnapshot(), nil)

		_, err := s.sut.CreateReservation(context.Background(), b.BuildCommandInput())

		var verr *booking.ValidationError
		s.Require().ErrorAs(err, &verr)
		s.Contains(verr.FieldMap(), "email")
	})

	s.Run("currency mismatch with listing", func() {
		s.SetupTest()
		b := builder.NewBookingBuilder()
		s.listingRepo.EXPECT().FindByID(gomock.Any(), b.ListingID).
			Return(b.BuildListingSnapshot(), nil)

		input := b.BuildCommandInput()
		usd := "USD"
		input.Currency = &usd

		_, err := s.sut.CreateReservation(context.Background(), input)

		var verr *booking.ValidationError
		s.Require().ErrorAs(err, &verr)
		s.Contains(verr.FieldMap(), "currency_id")
	})

	s.Run("pre-check conflict returns the colliding stays without inserting", func() {
		s.SetupTest()
		b := builder.NewBookingBuilder()
		existing := b.BuildConflict()

		s.listingRepo.EXPECT().FindByID(gomock.Any(), b.ListingID).
			Return(b.BuildListingSnapshot(), nil)
		s.availabilityRepo.EXPECT().OverridesForStay(gomock.Any(), b.ListingID, gomock.Any()).
			Return(nil, nil)
		s.reservationRepo.EXPECT().FindConflicts(gomock.Any(), b.ListingID, gomock.Any(), gomock.Nil()).
			Return([]commands.ConflictingStay{existing}, nil)

		_, err := s.sut.CreateReservation(context.Background(), b.BuildCommandInput())

		var conflict *commands.ConflictError
		s.Require().ErrorAs(err, &conflict)
		s.Require().Len(conflict.Conflicts, 1)
		s.Equal(existing.Reference, conflict.Conflicts[0].Reference)
	})

	s.Run("insert-time conflict from a concurrent writer", func() {
		s.SetupTest()
		b := builder.NewBookingBuilder()
		winner := b.BuildConflict()

		s.expectHappyPathUntilInsert(b)
		s.referenceGen.EXPECT().Generate().Return(s.ref("RES-AB12CD34"))
		s.reservationRepo.EXPECT().Create(gomock.Any(), gomock.Any()).
			Return(uuid.Nil, infra.WrapRepoErr("date range already reserved", errors.New("23P01"), infra.KindConflict))
		s.reservationRepo.EXPECT().FindConflicts(gomock.Any(), b.ListingID, gomock.Any(), gomock.Nil()).
			Return([]commands.ConflictingStay{winner}, nil)

		_, err := s.sut.CreateReservation(context.Background(), b.BuildCommandInput())

		var conflict *commands.ConflictError
		s.Require().ErrorAs(err, &conflict)
		s.Len(conflict.Conflicts, 1)
	})

	s.Run("reference collision retries with a fresh code", func() {
		s.SetupTest()
		b := builder.NewBookingBuilder()
		view := b.BuildViewQuery()
		dupErr := infra.WrapRepoErr("reference already taken", errors.New("23505"), infra.KindDuplicateKey)

		s.expectHappyPathUntilInsert(b)
		gomock.InOrder(
			s.referenceGen.EXPECT().Generate().Return(s.ref("RES-AAAA1111")),
			s.referenceGen.EXPECT().Generate().Return(s.ref("RES-BBBB2222")),
		)
		gomock.InOrder(
			s.reservationRepo.EXPECT().Create(gomock.Any(), gomock.Any()).Return(uuid.Nil, dupErr),
			s.reservationRepo.EXPECT().Create(gomock.Any(), gomock.Any()).
				DoAndReturn(func(_ context.Context, res *booking.Reservation) (uuid.UUID, error) {
					s.Equal("RES-BBBB2222", res.Reference().String())
					return view.ID, nil
				}),
		)
		s.reservationViews.EXPECT().GetByID(gomock.Any(), view.ID).Return(view, nil)
		s.notifier.EXPECT().ReservationConfirmed(gomock.Any(), gomock.Any()).Return(nil)

		_, err := s.sut.CreateReservation(context.Background(), b.BuildCommandInput())
		s.Require().NoError(err)
	})

	s.Run("reference generation exhausts after bounded attempts", func() {
		s.SetupTest()
		b := builder.NewBookingBuilder()
		dupErr := infra.WrapRepoErr("reference already taken", errors.New("23505"), infra.KindDuplicateKey)

		s.expectHappyPathUntilInsert(b)
		s.referenceGen.EXPECT().Generate().Return(s.ref("RES-AAAA1111")).Times(maxReferenceAttempts)
		s.reservationRepo.EXPECT().Create(gomock.Any(), gomock.Any()).
			Return(uuid.Nil, dupErr).Times(maxReferenceAttempts)

		_, err := s.sut.CreateReservation(context.Background(), b.BuildCommandInput())
		s.ErrorIs(err, errs.ErrReferenceExhausted)
	})

	s.Run("notifier failure does not fail the booking", func() {
		s.SetupTest()
		b := builder.NewBookingBuilder()
		view := b.BuildViewQuery()

		s.expectHappyPathUntilInsert(b)
		s.referenceGen.EXPECT().Generate().Return(s.ref("RES-AB12CD34"))
		s.reservationRepo.EXPECT().Create(gomock.Any(), gomock.Any()).Return(view.ID, nil)
		s.reservationViews.EXPECT().GetByID(gomock.Any(), view.ID).Return(view, nil)
		s.notifier.EXPECT().ReservationConfirmed(gomock.Any(), gomock.Any()).
			Return(errors.New("broker unreachable"))

		got, err := s.sut.CreateReservation(context.Background(), b.BuildCommandInput())
		s.Require().NoError(err)
		s.Equal(view.ID, got.ID)
	})
}

func (s *BookingCommandsTestSuite) TestCancelReservation() {
	s.Run("cancel deletes the reservation", func() {
		s.SetupTest()
		id := uuid.New()
		s.reservationRepo.EXPECT().Delete(gomock.Any(), id).Return(nil)

		s.NoError(s.sut.CancelReservation(context.Background(), id))
	})

	s.Run("cancel unknown reservation", func() {
		s.SetupTest()
		id := uuid.New()
		s.reservationRepo.EXPECT().Delete(gomock.Any(), id).
			Return(infra.WrapRepoErr("reservation not found", nil, infra.KindNotFound))

		err := s.sut.CancelReservation(context.Background(), id)
		s.ErrorIs(err, errs.ErrReservationNotFound)
	})
}
