package security

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const issuer = "saassyadmin"

var ErrInvalidToken = errors.New("invalid token")

type Tokens struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	TokenType    string `json:"token_type"`
	ExpiresIn    int64  `json:"expires_in"` // access token seconds
}

type JWTManager struct {
	signingKey []byte
	accessTTL  time.Duration
	refreshTTL time.Duration
	now        func() time.Time
}

func NewJWTManager(signingKey string, accessTTL, refreshTTL time.Duration) *JWTManager {
	return &JWTManager{
		signingKey: []byte(signingKey),
		accessTTL:  accessTTL,
		refreshTTL: refreshTTL,
		now:        time.Now,
	}
}

func (m *JWTManager) RefreshTTL() time.Duration { return m.refreshTTL }

type AccessClaims struct {
	jwt.RegisteredClaims
	Role string `json:"role"` // admin | member
}

type RefreshClaims struct {
	jwt.RegisteredClaims
	Role string `json:"role"`
}

// UserID returns the subject as a UUID.
func (c RefreshClaims) UserID() (uuid.UUID, error) {
	return uuid.Parse(c.Subject)
}

// Issue signs a fresh access/refresh pair. The refresh claims are returned so
// the caller can register the refresh token id.
func (m *JWTManager) Issue(role string, userID uuid.UUID) (Tokens, RefreshClaims, error) {
	now := m.now()

	accessClaims := AccessClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			Subject:   userID.String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(m.accessTTL)),
		},
		Role: role,
	}
	accessToken, err := jwt.NewWithClaims(jwt.SigningMethodHS256, accessClaims).SignedString(m.signingKey)
	if err != nil {
		return Tokens{}, RefreshClaims{}, err
	}

	refreshClaims := RefreshClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			Subject:   userID.String(),
			ID:        uuid.NewString(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(m.refreshTTL)),
		},
		Role: role,
	}
	refreshToken, err := jwt.NewWithClaims(jwt.SigningMethodHS256, refreshClaims).SignedString(m.signingKey)
	if err != nil {
		return Tokens{}, RefreshClaims{}, err
	}

	return Tokens{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		TokenType:    "Bearer",
		ExpiresIn:    int64(m.accessTTL.Seconds()),
	}, refreshClaims, nil
}

func (m *JWTManager) ParseAccess(tokenStr string) (userID uuid.UUID, role string, err error) {
	var claims AccessClaims
	if err := m.parse(tokenStr, &claims); err != nil {
		return uuid.Nil, "", err
	}
	if claims.ID != "" {
		// only refresh tokens carry a jti
		return uuid.Nil, "", ErrInvalidToken
	}
	uid, err := uuid.Parse(claims.Subject)
	if err != nil {
		return uuid.Nil, "", ErrInvalidToken
	}
	return uid, claims.Role, nil
}

func (m *JWTManager) ParseRefresh(tokenStr string) (RefreshClaims, error) {
	var claims RefreshClaims
	if err := m.parse(tokenStr, &claims); err != nil {
		return RefreshClaims{}, err
	}
	if claims.ID == "" {
		// an access token presented as a refresh token
		return RefreshClaims{}, ErrInvalidToken
	}
	if _, err := claims.UserID(); err != nil {
		return RefreshClaims{}, ErrInvalidToken
	}
	return claims, nil
}

func (m *JWTManager) parse(tokenStr string, claims jwt.Claims) error {
	tok, err := jwt.ParseWithClaims(tokenStr, claims, func(token *jwt.Token) (any, error) {
		if token.Method != jwt.SigningMethodHS256 {
			return nil, fmt.Errorf("unexpected signing method %v", token.Header["alg"])
		}
		return m.signingKey, nil
	},
		jwt.WithIssuer(issuer),
		jwt.WithTimeFunc(m.now),
	)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	if !tok.Valid {
		return ErrInvalidToken
	}
	return nil
}
