package utils

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// GenerateToken mints an HS256 session token bound to a user id.
func GenerateToken(secret string, userID int, duration time.Duration, tokenType string) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"user_id":    userID,
		"exp":        now.Add(duration).Unix(),
		"iat":        now.Unix(),
		"token_type": tokenType,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}
