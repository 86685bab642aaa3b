//go:build unit

package queries_test

import (
	"encoding/base64"
	"testing"
	"time"

	"stayhub/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAfterCursorRoundTrip(t *testing.T) {
	start := time.Date(2026, 10, 1, 0, 0, 0, 0, time.UTC)
	id := uuid.New()

	cursor := queries.EncodeAfterCursor(start, id)
	gotStart, gotID, err := queries.DecodeAfterCursor(cursor)
	require.NoError(t, err)

	assert.True(t, gotStart.Equal(start))
	assert.Equal(t, id, gotID)
}

func TestDecodeAfterCursorRejectsGarbage(t *testing.T) {
	encode := func(payload string) string {
		return base64.URLEncoding.EncodeToString([]byte(payload))
	}

	id := "deadbeef-0000-4000-8000-000000000000"
	cases := []struct {
		name   string
		cursor string
	}{
		{"empty", ""},
		{"not base64", "!!not-base64!!"},
		{"wrong version", encode("v2:1234-" + id)},
		{"missing separator", encode("v1:1234" + id)},
		{"bad timestamp", encode("v1:abc-" + id)},
		{"bad uuid", encode("v1:1234-not-a-uuid")},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, _, err := queries.DecodeAfterCursor(tc.cursor)
			assert.Error(t, err)
		})
	}
}

func TestValidateLimit(t *testing.T) {
	assert.Equal(t, int32(queries.DefaultListLimit), queries.ValidateLimit(0))
	assert.Equal(t, int32(queries.DefaultListLimit), queries.ValidateLimit(-5))
	assert.Equal(t, int32(25), queries.ValidateLimit(25))
	assert.Equal(t, int32(queries.MaxListLimit), queries.ValidateLimit(queries.MaxListLimit))
	assert.Equal(t, int32(queries.MaxListLimit), queries.ValidateLimit(queries.MaxListLimit+1))
}
