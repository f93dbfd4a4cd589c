package security

import (
	"errors"
	"time"

	"github.com/go-chi/jwtauth/v5"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const (
	claimUserID  = "user_id"
	claimTokenID = "jti"
	claimExpiry  = "exp"
	claimIssued  = "iat"
)

// Session is the authenticated identity carried by a verified bearer token.
type Session struct {
	UserID    string
	TokenID   string
	ExpiresAt time.Time
}

// TokenManager issues HS256 bearer tokens with a fixed lifetime.
type TokenManager struct {
	auth *jwtauth.JWTAuth
	ttl  time.Duration
	now  func() time.Time
}

func NewTokenManager(key []byte, ttl time.Duration) *TokenManager {
	return &TokenManager{
		auth: jwtauth.New("HS256", key, nil),
		ttl:  ttl,
		now:  time.Now,
	}
}

// JWTAuth exposes the underlying verifier for jwtauth.Verifier.
func (m *TokenManager) JWTAuth() *jwtauth.JWTAuth {
	return m.auth
}

func (m *TokenManager) GenerateToken(userID string) (string, error) {
	now := m.now()
	claims := jwt.MapClaims{
		claimUserID:  userID,
		claimTokenID: uuid.NewString(),
		claimExpiry:  now.Add(m.ttl).Unix(),
		claimIssued:  now.Unix(),
	}
	_, tokenString, err := m.auth.Encode(claims)
	return tokenString, err
}

// SessionFromClaims extracts the session fields from verified token claims.
func SessionFromClaims(claims jwt.MapClaims) (Session, error) {
	userID, err := GetUserIDFromClaims(claims)
	if err != nil {
		return Session{}, err
	}
	tokenID, ok := claims[claimTokenID].(string)
	if !ok || tokenID == "" {
		return Session{}, errors.New("jti claim is missing or not a string")
	}
	expiresAt, err := getTimeClaim(claims, claimExpiry)
	if err != nil {
		return Session{}, err
	}
	return Session{UserID: userID, TokenID: tokenID, ExpiresAt: expiresAt}, nil
}

func GetUserIDFromClaims(claims jwt.MapClaims) (string, error) {
	id, ok := claims[claimUserID].(string)
	if !ok || id == "" {
		return "", errors.New("user_id claim is missing or not a string")
	}
	return id, nil
}

func getTimeClaim(claims jwt.MapClaims, name string) (time.Time, error) {
	switch v := claims[name].(type) {
	case time.Time:
		return v, nil
	case float64:
		return time.Unix(int64(v), 0), nil
	case int64:
		return time.Unix(v, 0), nil
	default:
		return time.Time{}, errors.New(name + " claim is missing or not a timestamp")
	}
}
