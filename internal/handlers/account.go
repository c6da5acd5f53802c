package handlers

import (
	"net/http"
	"strings"

	"inkwell/internal/logger"
	"inkwell/internal/middleware"
	"inkwell/internal/models"
	"inkwell/internal/services"
	"inkwell/internal/utils/helpers"

	"go.uber.org/zap"
)

type AccountHandler struct {
	authService *services.AuthService
	pictures    *services.PictureService
}

func NewAccountHandler(authService *services.AuthService, pictures *services.PictureService) *AccountHandler {
	return &AccountHandler{authService: authService, pictures: pictures}
}

// Get godoc
// @Summary Get the authenticated user's profile
// @Tags account
// @Security ApiKeyAuth
// @Produce json
// @Success 200 {object} models.User
// @Failure 401 {string} string "Not authenticated"
// @Router /api/account [get]
func (h *AccountHandler) Get(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		helpers.Error(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	user, err := h.authService.GetUserByID(r.Context(), userID)
	if err != nil {
		helpers.Error(w, http.StatusNotFound, "user not found")
		return
	}

	helpers.JSON(w, http.StatusOK, user)
}

// Update godoc
// @Summary Update username, email and/or profile picture
// @Description Multipart form: optional fields username, email and file field picture.
// @Tags account
// @Security ApiKeyAuth
// @Accept mpfd
// @Produce json
// @Success 200 {object} models.User
// @Failure 400 {string} string "Validation error"
// @Router /api/account [patch]
func (h *AccountHandler) Update(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		helpers.Error(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	// 10 MB is plenty for a profile picture upload.
	if err := r.ParseMultipartForm(10 << 20); err != nil {
		logger.WithCtx(r.Context()).Warn("invalid multipart form", zap.Error(err))
		helpers.Error(w, http.StatusBadRequest, "invalid multipart form")
		return
	}

	var input models.UpdateAccountRequest
	if v := strings.TrimSpace(r.FormValue("username")); v != "" {
		if l := len(v); l < 2 || l > 20 {
			helpers.Error(w, http.StatusBadRequest, "username must be between 2 and 20 characters")
			return
		}
		input.Username = &v
	}
	if v := strings.TrimSpace(r.FormValue("email")); v != "" {
		if !strings.Contains(v, "@") || len(v) > 120 {
			helpers.Error(w, http.StatusBadRequest, "a valid email address is required")
			return
		}
		input.Email = &v
	}

	if file, header, err := r.FormFile("picture"); err == nil {
		defer file.Close()
		filename, err := h.pictures.Save(file, header.Filename)
		if err != nil {
			logger.WithCtx(r.Context()).Warn("picture upload rejected", zap.Error(err))
			helpers.Error(w, http.StatusBadRequest, err.Error())
			return
		}
		input.ImageFile = &filename
	}

	if input.Username == nil && input.Email == nil && input.ImageFile == nil {
		helpers.Error(w, http.StatusBadRequest, "nothing to update")
		return
	}

	if err := h.authService.UpdateAccount(r.Context(), userID, &input); err != nil {
		logger.WithCtx(r.Context()).Warn("account update failed", zap.Int("user_id", userID), zap.Error(err))
		helpers.Error(w, http.StatusBadRequest, err.Error())
		return
	}

	user, err := h.authService.GetUserByID(r.Context(), userID)
	if err != nil {
		helpers.Error(w, http.StatusInternalServerError, "internal error")
		return
	}
	helpers.JSON(w, http.StatusOK, user)
}
