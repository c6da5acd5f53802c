package handlers

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"inkwell/internal/config"
	"inkwell/internal/logger"
	"inkwell/internal/models"
	"inkwell/internal/services"
	"inkwell/internal/utils"
	"inkwell/internal/utils/helpers"

	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"
)

type AuthHandler struct {
	authService *services.AuthService
	cfg         *config.Config
}

func NewAuthHandler(authService *services.AuthService, cfg *config.Config) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		cfg:         cfg,
	}
}

type registerRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Remember bool   `json:"remember"`
}

type loginResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	Username     string `json:"username"`
	RedirectTo   string `json:"redirect_to,omitempty"`
}

// Register godoc
// @Summary Register a new account
// @Tags auth
// @Accept json
// @Produce json
// @Param input body registerRequest true "Registration data"
// @Success 201 {string} string "Account created"
// @Failure 400 {string} string "Validation error"
// @Router /api/register [post]
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logger.WithCtx(r.Context()).Warn("invalid JSON in Register", zap.Error(err))
		helpers.Error(w, http.StatusBadRequest, "invalid JSON")
		return
	}

	if fieldErrs := validateRegister(&req); len(fieldErrs) > 0 {
		helpers.JSON(w, http.StatusBadRequest, map[string]any{"field_errors": fieldErrs})
		return
	}

	user := &models.User{
		Username: req.Username,
		Email:    req.Email,
	}

	if err := h.authService.RegisterUser(r.Context(), user, req.Password); err != nil {
		logger.WithCtx(r.Context()).Warn("registration failed", zap.Error(err))
		helpers.Error(w, http.StatusBadRequest, err.Error())
		return
	}

	helpers.JSON(w, http.StatusCreated, map[string]string{
		"message": "Account created for " + user.Username + "!",
	})
}

// validateRegister returns per-field validation messages.
func validateRegister(req *registerRequest) map[string]string {
	errs := map[string]string{}
	username := strings.TrimSpace(req.Username)
	if l := len(username); l < 2 || l > 20 {
		errs["username"] = "username must be between 2 and 20 characters"
	}
	email := strings.TrimSpace(req.Email)
	if !strings.Contains(email, "@") || len(email) > 120 {
		errs["email"] = "a valid email address is required"
	}
	if len(req.Password) < 8 {
		errs["password"] = "password must be at least 8 characters"
	}
	return errs
}

// Login godoc
// @Summary Authenticate and establish a session
// @Tags auth
// @Accept json
// @Produce json
// @Param input body loginRequest true "Credentials"
// @Param next query string false "Relative path to resume after login"
// @Success 200 {object} loginResponse
// @Failure 401 {string} string "Invalid email or password"
// @Router /api/login [post]
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logger.WithCtx(r.Context()).Warn("invalid JSON in Login", zap.Error(err))
		helpers.Error(w, http.StatusBadRequest, "invalid JSON")
		return
	}

	accessTTL, _ := time.ParseDuration(h.cfg.AccessTokenTTL)
	refreshTTL, _ := time.ParseDuration(h.cfg.SessionTokenTTL)
	if req.Remember {
		refreshTTL, _ = time.ParseDuration(h.cfg.RefreshTokenTTL)
	}

	access, refresh, user, err := h.authService.Login(
		r.Context(),
		req.Email,
		req.Password,
		h.cfg.JWTSecret,
		accessTTL,
		refreshTTL,
	)
	if err != nil {
		// One message for every failure shape.
		logger.WithCtx(r.Context()).Warn("login rejected", zap.Error(err))
		helpers.Error(w, http.StatusUnauthorized, services.ErrInvalidCredentials.Error())
		return
	}

	resp := loginResponse{
		AccessToken:  access,
		RefreshToken: refresh,
		Username:     user.Username,
		RedirectTo:   utils.SafeNext(r.URL.Query().Get("next")),
	}

	helpers.JSON(w, http.StatusOK, resp)
}

// Refresh godoc
// @Summary Exchange a refresh token for a new access token
// @Tags auth
// @Produce json
// @Success 200 {object} map[string]string
// @Failure 401 {string} string "Invalid refresh token"
// @Router /api/refresh [post]
func (h *AuthHandler) Refresh(w http.ResponseWriter, r *http.Request) {
	userID, tokenString, ok := h.parseRefreshToken(r)
	if !ok {
		helpers.Error(w, http.StatusUnauthorized, "invalid refresh token")
		return
	}

	isValid, err := h.authService.ValidateRefreshToken(r.Context(), userID, tokenString)
	if err != nil || !isValid {
		logger.WithCtx(r.Context()).Warn("refresh token not recognized", zap.Error(err))
		helpers.Error(w, http.StatusUnauthorized, "invalid refresh token")
		return
	}

	accessTTL, _ := time.ParseDuration(h.cfg.AccessTokenTTL)
	access, err := utils.GenerateToken(h.cfg.JWTSecret, userID, accessTTL, "access")
	if err != nil {
		logger.WithCtx(r.Context()).Error("access token generation failed", zap.Error(err))
		helpers.Error(w, http.StatusInternalServerError, "internal error")
		return
	}

	helpers.JSON(w, http.StatusOK, map[string]string{"access_token": access})
}

// Logout godoc
// @Summary Terminate the session
// @Tags auth
// @Produce json
// @Success 200 {object} map[string]string
// @Failure 401 {string} string "Invalid refresh token"
// @Router /api/logout [post]
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	userID, tokenString, ok := h.parseRefreshToken(r)
	if !ok {
		helpers.Error(w, http.StatusUnauthorized, "invalid refresh token")
		return
	}

	if err := h.authService.Logout(r.Context(), userID, tokenString); err != nil {
		logger.WithCtx(r.Context()).Error("logout failed", zap.Int("user_id", userID), zap.Error(err))
		helpers.Error(w, http.StatusInternalServerError, "internal error")
		return
	}

	helpers.JSON(w, http.StatusOK, map[string]string{"message": "logged out"})
}

func (h *AuthHandler) parseRefreshToken(r *http.Request) (int, string, bool) {
	authHeader := r.Header.Get("Authorization")
	if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
		return 0, "", false
	}
	tokenString := strings.TrimPrefix(authHeader, "Bearer ")

	claims := jwt.MapClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims,
		func(*jwt.Token) (interface{}, error) { return []byte(h.cfg.JWTSecret), nil },
		jwt.WithValidMethods([]string{"HS256"}),
	)
	if err != nil || !token.Valid {
		logger.WithCtx(r.Context()).Warn("invalid refresh token", zap.Error(err))
		return 0, "", false
	}

	if typ, _ := claims["token_type"].(string); typ != "refresh" {
		return 0, "", false
	}
	userID, ok := claims["user_id"].(float64)
	if !ok {
		return 0, "", false
	}
	return int(userID), tokenString, true
}
