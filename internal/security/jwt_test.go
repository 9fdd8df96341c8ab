package security

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const key = "0123456789abcdef0123456789abcdef"

func TestIssueAndParse(t *testing.T) {
	m := NewJWTManager(key, time.Minute, time.Hour)
	uid := uuid.New()

	tokens, refresh, err := m.Issue("admin", uid)
	require.NoError(t, err)
	assert.Equal(t, "Bearer", tokens.TokenType)
	assert.EqualValues(t, 60, tokens.ExpiresIn)
	assert.NotEmpty(t, refresh.ID)

	gotID, role, err := m.ParseAccess(tokens.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, uid, gotID)
	assert.Equal(t, "admin", role)

	claims, err := m.ParseRefresh(tokens.RefreshToken)
	require.NoError(t, err)
	assert.Equal(t, refresh.ID, claims.ID)
	refreshUID, err := claims.UserID()
	require.NoError(t, err)
	assert.Equal(t, uid, refreshUID)
}

func TestParseRejectsExpired(t *testing.T) {
	m := NewJWTManager(key, time.Minute, time.Hour)
	past := time.Now().Add(-2 * time.Hour)
	m.now = func() time.Time { return past }
	tokens, _, err := m.Issue("member", uuid.New())
	require.NoError(t, err)

	m.now = time.Now
	_, _, err = m.ParseAccess(tokens.AccessToken)
	assert.ErrorIs(t, err, ErrInvalidToken)
	_, err = m.ParseRefresh(tokens.RefreshToken)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestParseRejectsForeignKey(t *testing.T) {
	a := NewJWTManager(key, time.Minute, time.Hour)
	b := NewJWTManager("ffffffffffffffffffffffffffffffff", time.Minute, time.Hour)
	tokens, _, err := a.Issue("member", uuid.New())
	require.NoError(t, err)

	_, _, err = b.ParseAccess(tokens.AccessToken)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestParseRejectsOtherAlgorithms(t *testing.T) {
	m := NewJWTManager(key, time.Minute, time.Hour)
	claims := AccessClaims{RegisteredClaims: jwt.RegisteredClaims{
		Issuer:    issuer,
		Subject:   uuid.NewString(),
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Minute)),
	}}
	raw, err := jwt.NewWithClaims(jwt.SigningMethodHS512, claims).SignedString([]byte(key))
	require.NoError(t, err)

	_, _, err = m.ParseAccess(raw)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestAccessTokenIsNotARefreshToken(t *testing.T) {
	m := NewJWTManager(key, time.Minute, time.Hour)
	tokens, _, err := m.Issue("member", uuid.New())
	require.NoError(t, err)

	_, err = m.ParseRefresh(tokens.AccessToken)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestRefreshTokenIsNotAnAccessToken(t *testing.T) {
	m := NewJWTManager(key, time.Minute, time.Hour)
	tokens, _, err := m.Issue("member", uuid.New())
	require.NoError(t, err)

	_, _, err = m.ParseAccess(tokens.RefreshToken)
	assert.ErrorIs(t, err, ErrInvalidToken)
}
