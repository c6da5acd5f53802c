package services

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"inkwell/internal/logger"
	"inkwell/internal/utils"

	"go.uber.org/zap"
)

// PasswordService drives the forgot/reset flow on top of the stateless
// token service.
type PasswordService struct {
	users  UserRepo
	tokens *ResetTokenService
	appURL string
}

func NewPasswordService(users UserRepo, tokens *ResetTokenService, appURL string) *PasswordService {
	return &PasswordService{
		users:  users,
		tokens: tokens,
		appURL: strings.TrimRight(appURL, "/"),
	}
}

// RequestReset issues a token for the account behind the email and queues
// the reset mail. Always returns nil: the caller's response must not reveal
// whether the email exists.
func (s *PasswordService) RequestReset(ctx context.Context, email string) error {
	email = strings.TrimSpace(strings.ToLower(email))
	logger.Log.Info("password reset requested", zap.String("email", email))

	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		// Logged for us, invisible to the requester.
		logger.Log.Warn("reset requested for unknown email", zap.String("email", email), zap.Error(err))
		return nil
	}

	token, err := s.tokens.Issue(user)
	if err != nil {
		logger.Log.Error("reset token issuance failed", zap.Int("user_id", user.ID), zap.Error(err))
		return nil
	}

	resetLink := fmt.Sprintf("%s/reset_password?token=%s", s.appURL, url.QueryEscape(token))
	body := fmt.Sprintf(`To reset your password, visit the following link:
%s

If you did not make this request then simply ignore this email and no changes will be made.
`, resetLink)

	// Fire-and-forget through the email worker; delivery is not retried.
	EmailQueue <- EmailJob{
		To:      []string{user.Email},
		Subject: "Password Reset Request",
		Body:    body,
	}

	logger.Log.Info("password reset email queued",
		zap.Int("user_id", user.ID),
		zap.Duration("token_ttl", s.tokens.TTL()),
	)
	return nil
}

// ResetPassword redeems a token and installs the new credential. A used
// token stays valid until it expires; that exposure window is an accepted
// property of the stateless design.
func (s *PasswordService) ResetPassword(ctx context.Context, token, newPassword string) error {
	logger.Log.Info("password reset attempt")

	if len(newPassword) < 8 {
		return ErrPasswordTooShort
	}

	user, err := s.tokens.Verify(ctx, token)
	if err != nil {
		return err
	}

	hash, err := utils.HashPassword(newPassword)
	if err != nil {
		logger.Log.Error("password hashing failed", zap.Error(err), zap.Int("user_id", user.ID))
		return err
	}

	if err := s.users.UpdatePassword(ctx, user.ID, hash); err != nil {
		logger.Log.Error("password update failed", zap.Int("user_id", user.ID), zap.Error(err))
		return err
	}

	logger.Log.Info("password reset completed", zap.Int("user_id", user.ID))
	return nil
}
