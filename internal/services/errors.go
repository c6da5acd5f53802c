package services

import "errors"

var (
	// ErrInvalidCredentials is the single answer for every login failure.
	// Unknown email and wrong password must be indistinguishable to callers.
	ErrInvalidCredentials = errors.New("invalid email or password")

	// ErrInvalidResetToken is the single answer for every reset-token
	// failure: malformed, tampered, expired or bound to a missing user.
	ErrInvalidResetToken = errors.New("invalid or expired token")

	ErrUsernameTaken    = errors.New("username is already taken")
	ErrEmailTaken       = errors.New("email is already registered")
	ErrUserNotFound     = errors.New("user not found")
	ErrPostNotFound     = errors.New("post not found")
	ErrForbidden        = errors.New("not the author of this post")
	ErrPasswordTooShort = errors.New("password must be at least 8 characters")
	ErrInvalidPost      = errors.New("title and content are required")
)
