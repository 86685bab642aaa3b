//go:build unit

package booking_test

import (
	"testing"

	"stayhub/internal/domain/booking"
	"stayhub/tests/common/builder"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewGuestBooking(t *testing.T) {
	t.Run("basic success case", func(t *testing.T) {
		actual, err := builder.NewBookingBuilder().BuildDomain()
		require.NoError(t, err)
		require.NotNil(t, actual)

		assert.NotEqual(t, uuid.Nil, actual.ID())
		assert.Equal(t, booking.KindGuestBooking, actual.Kind())
		assert.False(t, actual.IsBlocked())
		require.NotNil(t, actual.Guest())
		require.NotNil(t, actual.Quote())
		assert.Equal(t, 3, actual.Nights())
		assert.True(t, actual.Reference().IsZero())
	})

	t.Run("quote must cover the stay", func(t *testing.T) {
		b := builder.NewBookingBuilder()
		guest, err := b.BuildGuestDetails()
		require.NoError(t, err)
		quote, err := b.BuildQuote()
		require.NoError(t, err)

		shorter := builder.NewBookingBuilder()
		shorter.CheckOut = shorter.CheckIn.AddDate(0, 0, 1)

		_, err = booking.NewGuestBooking(b.ListingID, nil, shorter.BuildStay(), guest, quote)
		assert.ErrorIs(t, err, booking.ErrQuoteStayMismatch)
	})

	t.Run("IDs are unique", func(t *testing.T) {
		r1, err1 := builder.NewBookingBuilder().BuildDomain()
		r2, err2 := builder.NewBookingBuilder().BuildDomain()
		require.NoError(t, err1)
		require.NoError(t, err2)
		assert.NotEqual(t, r1.ID(), r2.ID())
	})
}

func TestNewAdminBlock(t *testing.T) {
	actual, err := builder.NewBookingBuilder().AsAdminBlock().BuildDomain()
	require.NoError(t, err)
	require.NotNil(t, actual)

	assert.Equal(t, booking.KindAdminBlock, actual.Kind())
	assert.True(t, actual.IsBlocked())
	assert.Nil(t, actual.Guest())
	assert.Nil(t, actual.Quote())
	assert.Nil(t, actual.UserID())
}

func TestReferenceAssignment(t *testing.T) {
	newRef := func(t *testing.T, raw string) booking.Reference {
		t.Helper()
		ref, err := booking.NewReference(raw)
		require.NoError(t, err)
		return ref
	}

	t.Run("assign exactly once", func(t *testing.T) {
		res, err := builder.NewBookingBuilder().BuildDomain()
		require.NoError(t, err)

		require.NoError(t, res.AssignReference(newRef(t, "RES-AAAA1111")))
		assert.Equal(t, "RES-AAAA1111", res.Reference().String())

		err = res.AssignReference(newRef(t, "RES-BBBB2222"))
		assert.ErrorIs(t, err, booking.ErrAlreadyReferenced)
		assert.Equal(t, "RES-AAAA1111", res.Reference().String())
	})

	t.Run("assign rejects zero reference", func(t *testing.T) {
		res, err := builder.NewBookingBuilder().BuildDomain()
		require.NoError(t, err)

		err = res.AssignReference(booking.Reference(""))
		assert.ErrorIs(t, err, booking.ErrInvalidReference)
	})

	t.Run("replace swaps a colliding candidate", func(t *testing.T) {
		res, err := builder.NewBookingBuilder().BuildDomain()
		require.NoError(t, err)

		require.NoError(t, res.ReplaceReference(newRef(t, "RES-AAAA1111")))
		require.NoError(t, res.ReplaceReference(newRef(t, "RES-BBBB2222")))
		assert.Equal(t, "RES-BBBB2222", res.Reference().String())

		err = res.ReplaceReference(booking.Reference(""))
		assert.ErrorIs(t, err, booking.ErrInvalidReference)
	})
}
