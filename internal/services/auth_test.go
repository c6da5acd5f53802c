package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"inkwell/internal/models"
	"inkwell/internal/utils"
)

func TestRegisterUser(t *testing.T) {
	repo := newMockUserRepo()
	service := NewAuthService(repo)

	user := &models.User{
		Username: "alice",
		Email:    "alice@example.com",
	}

	if err := service.RegisterUser(context.Background(), user, "secret123"); err != nil {
		t.Fatalf("registration failed: %v", err)
	}

	if repo.lastUser == nil || repo.lastUser.PasswordHash == "" {
		t.Fatal("password not hashed or user not stored")
	}
	if repo.lastUser.PasswordHash == "secret123" {
		t.Fatal("plaintext stored as credential")
	}
	if repo.lastUser.ImageFile != models.DefaultImageFile {
		t.Fatalf("new user image = %q, want %q", repo.lastUser.ImageFile, models.DefaultImageFile)
	}
}

func TestRegisterUser_DuplicateUsername(t *testing.T) {
	repo := newMockUserRepo()
	service := NewAuthService(repo)

	repo.add(&models.User{Username: "alice", Email: "alice@example.com"})

	err := service.RegisterUser(context.Background(), &models.User{
		Username: "alice",
		Email:    "other@example.com",
	}, "secret123")
	if !errors.Is(err, ErrUsernameTaken) {
		t.Fatalf("err = %v, want ErrUsernameTaken", err)
	}
}

func TestLogin_Success(t *testing.T) {
	repo := newMockUserRepo()
	service := NewAuthService(repo)

	hashed, _ := utils.HashPassword("secret123")
	repo.add(&models.User{
		Username:     "alice",
		Email:        "alice@example.com",
		PasswordHash: hashed,
	})

	access, refresh, user, err := service.Login(
		context.Background(),
		"alice@example.com", "secret123",
		testSecret, 15*time.Minute, 7*24*time.Hour,
	)
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}
	if access == "" || refresh == "" {
		t.Fatal("tokens not generated")
	}
	if user.Username != "alice" {
		t.Fatalf("session bound to %q, want alice", user.Username)
	}
}

// A wrong password and an unregistered email must be indistinguishable.
func TestLogin_UniformFailure(t *testing.T) {
	repo := newMockUserRepo()
	service := NewAuthService(repo)

	hashed, _ := utils.HashPassword("secret123")
	repo.add(&models.User{
		Username:     "alice",
		Email:        "alice@example.com",
		PasswordHash: hashed,
	})

	_, _, _, wrongPass := service.Login(
		context.Background(), "alice@example.com", "wrong-password",
		testSecret, time.Minute, time.Hour,
	)
	_, _, _, noSuchUser := service.Login(
		context.Background(), "nobody@example.com", "anything",
		testSecret, time.Minute, time.Hour,
	)

	if !errors.Is(wrongPass, ErrInvalidCredentials) {
		t.Fatalf("wrong password err = %v, want ErrInvalidCredentials", wrongPass)
	}
	if !errors.Is(noSuchUser, ErrInvalidCredentials) {
		t.Fatalf("unknown email err = %v, want ErrInvalidCredentials", noSuchUser)
	}
	if wrongPass.Error() != noSuchUser.Error() {
		t.Fatalf("failure shapes differ: %q vs %q", wrongPass, noSuchUser)
	}
}

func TestUpdateAccount_UsernameConflict(t *testing.T) {
	repo := newMockUserRepo()
	service := NewAuthService(repo)

	alice := repo.add(&models.User{Username: "alice", Email: "alice@example.com"})
	repo.add(&models.User{Username: "bob", Email: "bob@example.com"})

	taken := "bob"
	err := service.UpdateAccount(context.Background(), alice.ID, &models.UpdateAccountRequest{Username: &taken})
	if !errors.Is(err, ErrUsernameTaken) {
		t.Fatalf("err = %v, want ErrUsernameTaken", err)
	}

	// Re-submitting your own current username is not a conflict.
	same := "alice"
	if err := service.UpdateAccount(context.Background(), alice.ID, &models.UpdateAccountRequest{Username: &same}); err != nil {
		t.Fatalf("unchanged username rejected: %v", err)
	}
}
