package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"inkwell/internal/logger"
	"inkwell/internal/utils"

	"go.uber.org/zap"
)

func TestMain(m *testing.M) {
	logger.Log = zap.NewNop()
	os.Exit(m.Run())
}

const testSecret = "test-secret"

func protectedEcho(t *testing.T) http.Handler {
	t.Helper()
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		userID, ok := UserIDFromContext(r.Context())
		if !ok {
			t.Error("no user id in context behind the gate")
		}
		_ = json.NewEncoder(w).Encode(map[string]int{"user_id": userID})
	})
}

func TestJWTAuth_MissingTokenRedirectsToLogin(t *testing.T) {
	gate := JWTAuth(testSecret)(protectedEcho(t))

	req := httptest.NewRequest(http.MethodGet, "/api/account?tab=profile", nil)
	rec := httptest.NewRecorder()
	gate.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", rec.Code)
	}

	var body map[string]string
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatalf("bad response body: %v", err)
	}
	want := "/api/login?next=" + "%2Fapi%2Faccount%3Ftab%3Dprofile"
	if body["login_url"] != want {
		t.Fatalf("login_url = %q, want %q", body["login_url"], want)
	}
}

func TestJWTAuth_ValidTokenPasses(t *testing.T) {
	gate := JWTAuth(testSecret)(protectedEcho(t))

	token, err := utils.GenerateToken(testSecret, 7, time.Hour, "access")
	if err != nil {
		t.Fatalf("token generation failed: %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/api/account", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	gate.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}

	var body map[string]int
	_ = json.NewDecoder(rec.Body).Decode(&body)
	if body["user_id"] != 7 {
		t.Fatalf("user_id = %d, want 7", body["user_id"])
	}
}

func TestJWTAuth_RejectsExpiredAndWrongType(t *testing.T) {
	gate := JWTAuth(testSecret)(protectedEcho(t))

	expired, _ := utils.GenerateToken(testSecret, 7, -time.Minute, "access")
	refresh, _ := utils.GenerateToken(testSecret, 7, time.Hour, "refresh")

	for name, token := range map[string]string{
		"expired":       expired,
		"refresh token": refresh,
		"garbage":       "not.a.token",
	} {
		req := httptest.NewRequest(http.MethodGet, "/api/account", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		rec := httptest.NewRecorder()
		gate.ServeHTTP(rec, req)

		if rec.Code != http.StatusUnauthorized {
			t.Errorf("%s: status = %d, want 401", name, rec.Code)
		}
	}
}
