//go:build unit

package queries_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"stayhub/internal/infra"
	"stayhub/internal/pkg/errs"
	"stayhub/internal/usecase/queries"
	"stayhub/tests/common/builder"
	queriesmock "stayhub/tests/mock/queries"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

type ReservationQueriesTestSuite struct {
	suite.Suite
	ctrl  *gomock.Controller
	store *queriesmock.MockReservationReadStore
	sut   queries.ReservationQueries
}

func (s *ReservationQueriesTestSuite) SetupTest() {
	s.ctrl = gomock.NewController(s.T())
	s.store = queriesmock.NewMockReservationReadStore(s.ctrl)
	s.sut = queries.NewReservationQueries(s.store)
}

func (s *ReservationQueriesTestSuite) TearDownTest() {
	s.ctrl.Finish()
}

func TestReservationQueriesSuite(t *testing.T) {
	suite.Run(t, new(ReservationQueriesTestSuite))
}

func (s *ReservationQueriesTestSuite) items(n int) []*queries.ReservationListItem {
	b := builder.NewBookingBuilder()
	out := make([]*queries.ReservationListItem, 0, n)
	for i := range n {
		item := b.BuildListItem()
		item.StartDate = b.CheckIn.AddDate(0, 0, i*7)
		out = append(out, item)
	}
	return out
}

func (s *ReservationQueriesTestSuite) TestGetByID() {
	s.Run("found", func() {
		s.SetupTest()
		view := builder.NewBookingBuilder().BuildViewQuery()
		s.store.EXPECT().FindByID(gomock.Any(), view.ID).Return(view, nil)

		got, err := s.sut.GetByID(context.Background(), view.ID)
		s.Require().NoError(err)
		s.Equal(view.Reference, got.Reference)
	})

	s.Run("not found", func() {
		s.SetupTest()
		id := uuid.New()
		s.store.EXPECT().FindByID(gomock.Any(), id).
			Return(nil, infra.WrapRepoErr("reservation not found", errors.New("no rows"), infra.KindNotFound))

		_, err := s.sut.GetByID(context.Background(), id)
		s.ErrorIs(err, errs.ErrReservationNotFound)
	})
}

func (s *ReservationQueriesTestSuite) TestGetByReference() {
	s.Run("found", func() {
		s.SetupTest()
		view := builder.NewBookingBuilder().BuildViewQuery()
		s.store.EXPECT().FindByReference(gomock.Any(), view.Reference).Return(view, nil)

		got, err := s.sut.GetByReference(context.Background(), view.Reference)
		s.Require().NoError(err)
		s.Equal(view.ID, got.ID)
	})

	s.Run("not found", func() {
		s.SetupTest()
		s.store.EXPECT().FindByReference(gomock.Any(), "RES-MISSING1").
			Return(nil, infra.WrapRepoErr("reservation not found", errors.New("no rows"), infra.KindNotFound))

		_, err := s.sut.GetByReference(context.Background(), "RES-MISSING1")
		s.ErrorIs(err, errs.ErrReservationNotFound)
	})
}

func (s *ReservationQueriesTestSuite) TestListForListing() {
	listingID := uuid.New()

	s.Run("short page has no next cursor", func() {
		s.SetupTest()
		items := s.items(3)
		s.store.EXPECT().FindByListingFirstPage(gomock.Any(), listingID, gomock.Nil(), gomock.Nil(), int32(11)).
			Return(items, nil)

		page, err := s.sut.ListForListing(context.Background(), listingID, queries.ListOptions{Limit: 10})
		s.Require().NoError(err)
		s.Len(page.Items, 3)
		s.Nil(page.NextCursor)
	})

	s.Run("full page trims the sentinel row and emits a cursor", func() {
		s.SetupTest()
		items := s.items(11)
		s.store.EXPECT().FindByListingFirstPage(gomock.Any(), listingID, gomock.Nil(), gomock.Nil(), int32(11)).
			Return(items, nil)

		page, err := s.sut.ListForListing(context.Background(), listingID, queries.ListOptions{Limit: 10})
		s.Require().NoError(err)
		s.Require().Len(page.Items, 10)
		s.Require().NotNil(page.NextCursor)

		last := page.Items[9]
		gotStart, gotID, decodeErr := queries.DecodeAfterCursor(*page.NextCursor)
		s.Require().NoError(decodeErr)
		s.True(gotStart.Equal(last.StartDate))
		s.Equal(last.ID, gotID)
	})

	s.Run("cursor routes to the keyset query", func() {
		s.SetupTest()
		afterStart := time.Date(2026, 10, 8, 0, 0, 0, 0, time.UTC)
		afterID := uuid.New()
		cursor := queries.EncodeAfterCursor(afterStart, afterID)

		s.store.EXPECT().
			FindByListingKeyset(gomock.Any(), listingID, gomock.Nil(), gomock.Nil(), afterStart, afterID, int32(51)).
			Return(s.items(2), nil)

		page, err := s.sut.ListForListing(context.Background(), listingID, queries.ListOptions{After: &cursor})
		s.Require().NoError(err)
		s.Len(page.Items, 2)
	})

	s.Run("invalid cursor", func() {
		s.SetupTest()
		bad := "not-a-cursor"

		_, err := s.sut.ListForListing(context.Background(), listingID, queries.ListOptions{After: &bad})
		s.Error(err)
	})
}
