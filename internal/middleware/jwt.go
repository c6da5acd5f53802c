package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"
	"strings"

	"inkwell/internal/logger"
	"inkwell/internal/utils"

	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"
)

const loginPath = "/api/login"

// JWTAuth gates protected routes. A request without a valid access token is
// refused with 401 and a login URL that carries the originally requested
// path as ?next=, so the client can resume navigation after authenticating.
// The next target is validated as a same-origin relative path before use.
func JWTAuth(secret string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Method == http.MethodOptions {
				w.WriteHeader(http.StatusNoContent)
				return
			}

			authHeader := r.Header.Get("Authorization")
			if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
				logger.WithCtx(r.Context()).Warn("JWTAuth: missing access token", zap.String("path", r.URL.Path))
				rejectUnauthenticated(w, r)
				return
			}

			tokenString := strings.TrimPrefix(authHeader, "Bearer ")

			claims := jwt.MapClaims{}
			token, err := jwt.ParseWithClaims(tokenString, claims,
				func(*jwt.Token) (interface{}, error) { return []byte(secret), nil },
				jwt.WithValidMethods([]string{"HS256"}),
			)
			if err != nil || !token.Valid {
				logger.WithCtx(r.Context()).Warn("JWTAuth: invalid or expired token", zap.Error(err))
				rejectUnauthenticated(w, r)
				return
			}

			if typ, _ := claims["token_type"].(string); typ != "access" {
				logger.WithCtx(r.Context()).Warn("JWTAuth: wrong token type")
				rejectUnauthenticated(w, r)
				return
			}

			userID, ok := claims["user_id"].(float64)
			if !ok {
				logger.WithCtx(r.Context()).Warn("JWTAuth: bad payload", zap.Any("claims", claims))
				rejectUnauthenticated(w, r)
				return
			}

			ctx := context.WithValue(r.Context(), ContextUserID, int(userID))
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func rejectUnauthenticated(w http.ResponseWriter, r *http.Request) {
	loginURL := loginPath
	if next := utils.SafeNext(r.URL.RequestURI()); next != "" {
		loginURL += "?next=" + url.QueryEscape(next)
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	_ = json.NewEncoder(w).Encode(map[string]string{
		"error":     "authentication required",
		"login_url": loginURL,
	})
}
