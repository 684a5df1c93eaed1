package services

import (
	"errors"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/vnkhanh/quizmaster-backend/models"
)

var ErrInvalidToken = errors.New("invalid or expired token")

// Claims is the token payload. The registered "jti" claim carries the session id.
type Claims struct {
	UserID uint   `json:"user_id"`
	Role   string `json:"role"`
	jwt.RegisteredClaims
}

// Tokens signs and verifies HS256 bearer tokens.
type Tokens struct {
	secret []byte
}

func NewTokens(secret string) *Tokens {
	return &Tokens{secret: []byte(secret)}
}

func (t *Tokens) Issue(user models.User, session models.Session) (string, error) {
	role := RoleUser
	if user.IsAdmin {
		role = RoleAdmin
	}
	claims := Claims{
		UserID: user.ID,
		Role:   role.String(),
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        session.ID.String(),
			Subject:   strconv.FormatUint(uint64(user.ID), 10),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			ExpiresAt: jwt.NewNumericDate(session.ExpiresAt),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(t.secret)
}

// Parse verifies the signature and expiry and returns the claims with the
// session id decoded.
func (t *Tokens) Parse(tokenString string) (*Claims, uuid.UUID, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(*jwt.Token) (interface{}, error) {
		return t.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil || !token.Valid {
		return nil, uuid.Nil, ErrInvalidToken
	}
	sid, err := uuid.Parse(claims.ID)
	if err != nil {
		return nil, uuid.Nil, ErrInvalidToken
	}
	return claims, sid, nil
}
