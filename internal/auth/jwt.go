package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

var (
	ErrInvalidToken  = errors.New("invalid token")
	ErrInvalidClaims = errors.New("invalid claims")
)

// Claims identify one login session of one user.
type Claims struct {
	UserID    uuid.UUID
	SessionID string
	ExpiresAt time.Time
}

// TokenManager signs and verifies HS256 session tokens.
type TokenManager struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

func NewTokenManager(secret string, ttl time.Duration) *TokenManager {
	return &TokenManager{secret: []byte(secret), ttl: ttl, now: time.Now}
}

func (m *TokenManager) TTL() time.Duration {
	return m.ttl
}

// Generate issues a token for a fresh session of userID.
func (m *TokenManager) Generate(userID uuid.UUID) (string, Claims, error) {
	claims := Claims{
		UserID:    userID,
		SessionID: uuid.NewString(),
		ExpiresAt: m.now().Add(m.ttl),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id": claims.UserID.String(),
		"sid":     claims.SessionID,
		"exp":     claims.ExpiresAt.Unix(),
	})
	signed, err := token.SignedString(m.secret)
	if err != nil {
		return "", Claims{}, err
	}
	return signed, claims, nil
}

func (m *TokenManager) Parse(tokenStr string) (Claims, error) {
	token, err := jwt.Parse(tokenStr, func(token *jwt.Token) (interface{}, error) {
		return m.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithExpirationRequired())
	if err != nil || !token.Valid {
		return Claims{}, ErrInvalidToken
	}

	mc, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return Claims{}, ErrInvalidClaims
	}

	rawUserID, _ := mc["user_id"].(string)
	userID, err := uuid.Parse(rawUserID)
	if err != nil {
		return Claims{}, ErrInvalidClaims
	}
	sid, _ := mc["sid"].(string)
	if sid == "" {
		return Claims{}, ErrInvalidClaims
	}
	exp, err := mc.GetExpirationTime()
	if err != nil || exp == nil {
		return Claims{}, ErrInvalidClaims
	}

	return Claims{UserID: userID, SessionID: sid, ExpiresAt: exp.Time}, nil
}
