package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"inkwell/internal/logger"
	"inkwell/internal/services"
	"inkwell/internal/utils/helpers"

	"go.uber.org/zap"
)

type PasswordHandler struct {
	svc *services.PasswordService
}

func NewPasswordHandler(svc *services.PasswordService) *PasswordHandler {
	return &PasswordHandler{svc: svc}
}

type forgotReq struct {
	Email string `json:"email"`
}

// Forgot godoc
// @Summary Request a password reset email
// @Description Sends a reset link. The response is identical whether or not the email is registered.
// @Tags password
// @Accept json
// @Produce json
// @Param input body forgotReq true "Account email"
// @Success 200 {object} map[string]string
// @Failure 400 {object} map[string]string
// @Router /api/password/forgot [post]
func (h *PasswordHandler) Forgot(w http.ResponseWriter, r *http.Request) {
	log := logger.WithCtx(r.Context())

	var req forgotReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || strings.TrimSpace(req.Email) == "" {
		log.Warn("invalid payload in Forgot")
		helpers.Error(w, http.StatusBadRequest, "invalid payload")
		return
	}

	// Always the same answer, so existence of the email cannot be probed.
	if err := h.svc.RequestReset(r.Context(), req.Email); err != nil {
		log.Error("reset request failed", zap.String("email_masked", maskEmail(req.Email)), zap.Error(err))
	} else {
		log.Info("password reset requested", zap.String("email_masked", maskEmail(req.Email)))
	}

	helpers.JSON(w, http.StatusOK, map[string]string{
		"message": "If the email exists, a reset link has been sent.",
	})
}

type resetReq struct {
	Token       string `json:"token"`
	NewPassword string `json:"new_password"`
}

// Reset godoc
// @Summary Set a new password with a reset token
// @Tags password
// @Accept json
// @Produce json
// @Param input body resetReq true "Token and new password"
// @Success 200 {object} map[string]string
// @Failure 400 {object} map[string]string
// @Router /api/password/reset [post]
func (h *PasswordHandler) Reset(w http.ResponseWriter, r *http.Request) {
	log := logger.WithCtx(r.Context())

	var req resetReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || strings.TrimSpace(req.Token) == "" || req.NewPassword == "" {
		log.Warn("invalid payload in Reset")
		helpers.Error(w, http.StatusBadRequest, "invalid payload")
		return
	}

	if err := h.svc.ResetPassword(r.Context(), req.Token, req.NewPassword); err != nil {
		log.Warn("password reset rejected", zap.Error(err))
		if errors.Is(err, services.ErrPasswordTooShort) {
			helpers.Error(w, http.StatusBadRequest, err.Error())
			return
		}
		helpers.Error(w, http.StatusBadRequest, services.ErrInvalidResetToken.Error())
		return
	}

	log.Info("password reset completed")
	helpers.JSON(w, http.StatusOK, map[string]string{"message": "Password has been reset."})
}

func maskEmail(email string) string {
	at := strings.Index(email, "@")
	if at <= 1 {
		return "***"
	}
	return email[:1] + "***" + email[at:]
}
