package services

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"inkwell/internal/models"
	"inkwell/internal/utils"
)

func newPasswordFixture() (*PasswordService, *ResetTokenService, *mockUserRepo, *models.User) {
	repo := newMockUserRepo()
	hashed, _ := utils.HashPassword("oldpassword")
	user := repo.add(&models.User{
		Username:     "alice",
		Email:        "alice@example.com",
		PasswordHash: hashed,
	})
	tokens := NewResetTokenService(repo, testSecret, 1800*time.Second)
	svc := NewPasswordService(repo, tokens, "https://blog.example.com")
	return svc, tokens, repo, user
}

func drainEmailQueue(t *testing.T) []EmailJob {
	t.Helper()
	var jobs []EmailJob
	for {
		select {
		case job := <-EmailQueue:
			jobs = append(jobs, job)
		default:
			return jobs
		}
	}
}

func TestRequestReset_QueuesEmailWithLink(t *testing.T) {
	svc, _, _, user := newPasswordFixture()
	drainEmailQueue(t)

	if err := svc.RequestReset(context.Background(), "alice@example.com"); err != nil {
		t.Fatalf("request reset failed: %v", err)
	}

	jobs := drainEmailQueue(t)
	if len(jobs) != 1 {
		t.Fatalf("queued %d emails, want 1", len(jobs))
	}
	if jobs[0].To[0] != user.Email {
		t.Fatalf("email addressed to %v, want %s", jobs[0].To, user.Email)
	}
	if !strings.Contains(jobs[0].Body, "https://blog.example.com/reset_password?token=") {
		t.Fatalf("email body has no reset link:\n%s", jobs[0].Body)
	}
}

// The response contract: an unknown email behaves exactly like a known one.
func TestRequestReset_UnknownEmailSilent(t *testing.T) {
	svc, _, _, _ := newPasswordFixture()
	drainEmailQueue(t)

	if err := svc.RequestReset(context.Background(), "nobody@example.com"); err != nil {
		t.Fatalf("err = %v, want nil for unknown email", err)
	}
	if jobs := drainEmailQueue(t); len(jobs) != 0 {
		t.Fatalf("queued %d emails for unknown address, want 0", len(jobs))
	}
}

func TestResetPassword_RoundTrip(t *testing.T) {
	svc, tokens, repo, user := newPasswordFixture()

	token, err := tokens.Issue(user)
	if err != nil {
		t.Fatalf("issue failed: %v", err)
	}

	oldHash := user.PasswordHash
	if err := svc.ResetPassword(context.Background(), token, "brand-new-password"); err != nil {
		t.Fatalf("reset failed: %v", err)
	}

	updated := repo.users[user.ID]
	if updated.PasswordHash == oldHash {
		t.Fatal("credential unchanged after reset")
	}
	if !utils.CheckPasswordHash("brand-new-password", updated.PasswordHash) {
		t.Fatal("new password does not verify against stored hash")
	}
}

func TestResetPassword_Rejections(t *testing.T) {
	svc, tokens, _, user := newPasswordFixture()

	token, err := tokens.Issue(user)
	if err != nil {
		t.Fatalf("issue failed: %v", err)
	}

	if err := svc.ResetPassword(context.Background(), token, "short"); !errors.Is(err, ErrPasswordTooShort) {
		t.Fatalf("short password err = %v, want ErrPasswordTooShort", err)
	}
	if err := svc.ResetPassword(context.Background(), "not-a-token", "brand-new-password"); !errors.Is(err, ErrInvalidResetToken) {
		t.Fatalf("bad token err = %v, want ErrInvalidResetToken", err)
	}
}
