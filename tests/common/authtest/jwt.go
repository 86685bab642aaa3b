//go:build unit || e2e

package authtest

import (
	"testing"
	"time"

	"stayhub/internal/pkg/config"
	stayjwt "stayhub/internal/pkg/jwt"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

// JWTHelper signs tokens the way the external auth service would; the engine
// itself only verifies them.
type JWTHelper struct {
	cfg config.JWTConfig
}

func NewJWTHelper(cfg config.JWTConfig) *JWTHelper {
	return &JWTHelper{cfg: cfg}
}

func (h *JWTHelper) GenerateToken(t *testing.T, userID uuid.UUID, role string) string {
	t.Helper()
	return h.signToken(t, userID, role, time.Now().Add(15*time.Minute))
}

func (h *JWTHelper) CreateExpiredToken(t *testing.T, userID uuid.UUID, role string) string {
	t.Helper()
	return h.signToken(t, userID, role, time.Now().Add(-1*time.Minute))
}

func (h *JWTHelper) signToken(t *testing.T, userID uuid.UUID, role string, expiresAt time.Time) string {
	t.Helper()

	claims := stayjwt.Claims{
		UserID: userID,
		Role:   role,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(time.Now().Add(-2 * time.Minute)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(h.cfg.Secret))
	require.NoError(t, err)
	return signed
}
