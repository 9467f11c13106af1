package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var ErrInvalidToken = errors.New("invalid or expired token")

type Claims struct {
	UserID  string
	IsAdmin bool
}

func Sign(c Claims, secret []byte, ttl time.Duration) (string, error) {
	now := time.Now()
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":   c.UserID,
		"admin": c.IsAdmin,
		"iat":   now.Unix(),
		"exp":   now.Add(ttl).Unix(),
	})
	return tok.SignedString(secret)
}

func Parse(tokenString string, secret []byte) (Claims, error) {
	tok, err := jwt.Parse(tokenString, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return secret, nil
	})
	if err != nil || !tok.Valid {
		return Claims{}, ErrInvalidToken
	}
	mc, ok := tok.Claims.(jwt.MapClaims)
	if !ok {
		return Claims{}, ErrInvalidToken
	}
	sub, _ := mc["sub"].(string)
	if sub == "" {
		return Claims{}, ErrInvalidToken
	}
	admin, _ := mc["admin"].(bool)
	return Claims{UserID: sub, IsAdmin: admin}, nil
}
