package services

import (
	"context"
	"time"

	"inkwell/internal/logger"
	"inkwell/internal/models"

	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"
)

// UserLookup is the one repository call token verification needs: proof that
// the identity bound into a token still exists.
type UserLookup interface {
	GetUserByID(ctx context.Context, id int) (*models.User, error)
}

// ResetTokenService issues and verifies stateless password-reset tokens.
// A token is an HS256 JWT carrying the user id and its own expiry; validity
// is purely signature + expiry + user existence, with no server-side token
// storage and therefore no revocation before natural expiry.
type ResetTokenService struct {
	users  UserLookup
	secret string
	ttl    time.Duration
	now    func() time.Time
}

func NewResetTokenService(users UserLookup, secret string, ttl time.Duration) *ResetTokenService {
	if ttl <= 0 {
		ttl = 30 * time.Minute
	}
	return &ResetTokenService{
		users:  users,
		secret: secret,
		ttl:    ttl,
		now:    time.Now,
	}
}

// Issue seals {user_id, iat, exp} with the app secret. No side effects;
// delivering the token (by mail or otherwise) is the caller's concern.
func (s *ResetTokenService) Issue(user *models.User) (string, error) {
	now := s.now()
	claims := jwt.MapClaims{
		"user_id":    user.ID,
		"iat":        now.Unix(),
		"exp":        now.Add(s.ttl).Unix(),
		"token_type": "password_reset",
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(s.secret))
	if err != nil {
		logger.Log.Error("reset token signing failed", zap.Error(err))
		return "", err
	}
	return signed, nil
}

// Verify unseals a token and returns the bound user. Malformed input, a bad
// signature, expiry and a vanished user all collapse into the one
// ErrInvalidResetToken; the reason only shows up in logs.
func (s *ResetTokenService) Verify(ctx context.Context, tokenString string) (*models.User, error) {
	claims := jwt.MapClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims,
		func(*jwt.Token) (interface{}, error) { return []byte(s.secret), nil },
		jwt.WithValidMethods([]string{"HS256"}),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil || !token.Valid {
		logger.Log.Warn("reset token rejected", zap.Error(err))
		return nil, ErrInvalidResetToken
	}

	if typ, _ := claims["token_type"].(string); typ != "password_reset" {
		logger.Log.Warn("reset token rejected: wrong token type")
		return nil, ErrInvalidResetToken
	}

	userID, ok := claims["user_id"].(float64)
	if !ok {
		logger.Log.Warn("reset token rejected: bad payload", zap.Any("claims", claims))
		return nil, ErrInvalidResetToken
	}

	user, err := s.users.GetUserByID(ctx, int(userID))
	if err != nil {
		logger.Log.Warn("reset token rejected: user no longer exists", zap.Int("user_id", int(userID)))
		return nil, ErrInvalidResetToken
	}
	return user, nil
}

// TTL reports the configured token lifetime.
func (s *ResetTokenService) TTL() time.Duration {
	return s.ttl
}
