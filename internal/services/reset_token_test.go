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

func issueSessionToken(t *testing.T, userID int) string {
	t.Helper()
	token, err := utils.GenerateToken(testSecret, userID, time.Hour, "access")
	if err != nil {
		t.Fatalf("session token generation failed: %v", err)
	}
	return token
}

const testSecret = "test-secret-key"

func newResetFixture(t *testing.T) (*ResetTokenService, *mockUserRepo, *models.User) {
	t.Helper()
	repo := newMockUserRepo()
	user := repo.add(&models.User{
		Username:     "alice",
		Email:        "alice@example.com",
		PasswordHash: "irrelevant",
	})
	svc := NewResetTokenService(repo, testSecret, 1800*time.Second)
	return svc, repo, user
}

func TestResetToken_RoundTrip(t *testing.T) {
	svc, _, user := newResetFixture(t)

	token, err := svc.Issue(user)
	if err != nil {
		t.Fatalf("issue failed: %v", err)
	}

	got, err := svc.Verify(context.Background(), token)
	if err != nil {
		t.Fatalf("verify failed: %v", err)
	}
	if got.ID != user.ID {
		t.Fatalf("verify returned user %d, want %d", got.ID, user.ID)
	}
}

func TestResetToken_ExpiresAfterTTL(t *testing.T) {
	svc, _, user := newResetFixture(t)

	issuedAt := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return issuedAt }

	token, err := svc.Issue(user)
	if err != nil {
		t.Fatalf("issue failed: %v", err)
	}

	// Within the TTL the token verifies.
	svc.now = func() time.Time { return issuedAt.Add(1799 * time.Second) }
	if _, err := svc.Verify(context.Background(), token); err != nil {
		t.Fatalf("verify inside TTL failed: %v", err)
	}

	// One second past the TTL it does not.
	svc.now = func() time.Time { return issuedAt.Add(1801 * time.Second) }
	if _, err := svc.Verify(context.Background(), token); !errors.Is(err, ErrInvalidResetToken) {
		t.Fatalf("verify past TTL = %v, want ErrInvalidResetToken", err)
	}
}

func TestResetToken_TamperedRejected(t *testing.T) {
	svc, _, user := newResetFixture(t)

	token, err := svc.Issue(user)
	if err != nil {
		t.Fatalf("issue failed: %v", err)
	}

	parts := strings.Split(token, ".")
	if len(parts) != 3 {
		t.Fatalf("unexpected token shape: %q", token)
	}

	// Flip a character in the payload; the signature no longer matches.
	payload := []byte(parts[1])
	if payload[0] == 'A' {
		payload[0] = 'B'
	} else {
		payload[0] = 'A'
	}
	tampered := parts[0] + "." + string(payload) + "." + parts[2]

	if _, err := svc.Verify(context.Background(), tampered); !errors.Is(err, ErrInvalidResetToken) {
		t.Fatalf("verify of tampered token = %v, want ErrInvalidResetToken", err)
	}
}

func TestResetToken_WrongSecretRejected(t *testing.T) {
	svc, repo, user := newResetFixture(t)

	token, err := svc.Issue(user)
	if err != nil {
		t.Fatalf("issue failed: %v", err)
	}

	other := NewResetTokenService(repo, "a-different-secret", 1800*time.Second)
	if _, err := other.Verify(context.Background(), token); !errors.Is(err, ErrInvalidResetToken) {
		t.Fatalf("verify with wrong secret = %v, want ErrInvalidResetToken", err)
	}
}

func TestResetToken_DeletedUserRejected(t *testing.T) {
	svc, repo, user := newResetFixture(t)

	token, err := svc.Issue(user)
	if err != nil {
		t.Fatalf("issue failed: %v", err)
	}

	delete(repo.users, user.ID)

	if _, err := svc.Verify(context.Background(), token); !errors.Is(err, ErrInvalidResetToken) {
		t.Fatalf("verify for deleted user = %v, want ErrInvalidResetToken", err)
	}
}

func TestResetToken_MalformedRejected(t *testing.T) {
	svc, _, _ := newResetFixture(t)

	for _, token := range []string{"", "garbage", "a.b", "a.b.c.d"} {
		if _, err := svc.Verify(context.Background(), token); !errors.Is(err, ErrInvalidResetToken) {
			t.Fatalf("verify(%q) = %v, want ErrInvalidResetToken", token, err)
		}
	}
}

func TestResetToken_SessionTokenRejected(t *testing.T) {
	svc, _, user := newResetFixture(t)

	// A session token signed with the same secret must not pass as a
	// reset token.
	sessionToken := issueSessionToken(t, user.ID)
	if _, err := svc.Verify(context.Background(), sessionToken); !errors.Is(err, ErrInvalidResetToken) {
		t.Fatalf("verify of session token = %v, want ErrInvalidResetToken", err)
	}
}
