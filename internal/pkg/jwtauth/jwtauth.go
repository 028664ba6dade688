package jwtauth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt"
)

// Token purposes. A token minted for one purpose must not be accepted
// for another.
const (
	PurposeConfirm = "confirm"
)

var ErrInvalidToken = errors.New("invalid token")

type claims struct {
	UserID  int64  `json:"uid"`
	Purpose string `json:"purpose"`
	jwt.StandardClaims
}

// NewToken issues an HS256 token bound to a user id and purpose.
func NewToken(userID int64, purpose string, ttl time.Duration, secret string) (string, error) {
	c := claims{
		UserID:  userID,
		Purpose: purpose,
		StandardClaims: jwt.StandardClaims{
			IssuedAt:  time.Now().Unix(),
			ExpiresAt: time.Now().Add(ttl).Unix(),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, c)

	signed, err := token.SignedString([]byte(secret))
	if err != nil {
		return "", fmt.Errorf("sign token error: %w", err)
	}

	return signed, nil
}

// ParseToken validates a token and returns the user id it was issued for.
func ParseToken(tokenString, purpose, secret string) (int64, error) {
	var c claims

	token, err := jwt.ParseWithClaims(tokenString, &c, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}

		return []byte(secret), nil
	})
	if err != nil {
		return 0, fmt.Errorf("parse token error: %w", err)
	}

	if !token.Valid || c.Purpose != purpose {
		return 0, ErrInvalidToken
	}

	return c.UserID, nil
}
