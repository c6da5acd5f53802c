package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"inkwell/internal/logger"
	"inkwell/internal/middleware"
	"inkwell/internal/services"
	"inkwell/internal/utils/helpers"

	"github.com/gorilla/mux"
	"go.uber.org/zap"
)

type PostHandler struct {
	postService *services.PostService
}

func NewPostHandler(postService *services.PostService) *PostHandler {
	return &PostHandler{postService: postService}
}

type postRequest struct {
	Title   string `json:"title"`
	Content string `json:"content"`
}

// Create godoc
// @Summary Create a post
// @Tags posts
// @Security ApiKeyAuth
// @Accept json
// @Produce json
// @Param input body postRequest true "Post data"
// @Success 201 {object} models.Post
// @Failure 400 {string} string "Validation error"
// @Router /api/posts [post]
func (h *PostHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		helpers.Error(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	var req postRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		helpers.Error(w, http.StatusBadRequest, "invalid JSON")
		return
	}

	post, err := h.postService.Create(r.Context(), userID, req.Title, req.Content)
	if err != nil {
		logger.WithCtx(r.Context()).Warn("post creation rejected", zap.Error(err))
		helpers.Error(w, http.StatusBadRequest, err.Error())
		return
	}

	helpers.JSON(w, http.StatusCreated, post)
}

// Get godoc
// @Summary Get a single post
// @Tags posts
// @Produce json
// @Param id path int true "Post id"
// @Success 200 {object} models.Post
// @Failure 404 {string} string "Post not found"
// @Router /api/posts/{id} [get]
func (h *PostHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		helpers.Error(w, http.StatusBadRequest, "invalid post id")
		return
	}

	post, err := h.postService.Get(r.Context(), id)
	if err != nil {
		helpers.Error(w, http.StatusNotFound, services.ErrPostNotFound.Error())
		return
	}

	helpers.JSON(w, http.StatusOK, post)
}

// Update godoc
// @Summary Update an owned post
// @Tags posts
// @Security ApiKeyAuth
// @Accept json
// @Produce json
// @Param id path int true "Post id"
// @Param input body postRequest true "New post data"
// @Success 200 {object} models.Post
// @Failure 403 {string} string "Not the author"
// @Failure 404 {string} string "Post not found"
// @Router /api/posts/{id} [patch]
func (h *PostHandler) Update(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		helpers.Error(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		helpers.Error(w, http.StatusBadRequest, "invalid post id")
		return
	}

	var req postRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		helpers.Error(w, http.StatusBadRequest, "invalid JSON")
		return
	}

	post, err := h.postService.Update(r.Context(), id, userID, req.Title, req.Content)
	if err != nil {
		writePostError(w, r, err)
		return
	}

	helpers.JSON(w, http.StatusOK, post)
}

// Delete godoc
// @Summary Delete an owned post
// @Tags posts
// @Security ApiKeyAuth
// @Produce json
// @Param id path int true "Post id"
// @Success 200 {object} map[string]string
// @Failure 403 {string} string "Not the author"
// @Failure 404 {string} string "Post not found"
// @Router /api/posts/{id} [delete]
func (h *PostHandler) Delete(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		helpers.Error(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		helpers.Error(w, http.StatusBadRequest, "invalid post id")
		return
	}

	if err := h.postService.Delete(r.Context(), id, userID); err != nil {
		writePostError(w, r, err)
		return
	}

	helpers.JSON(w, http.StatusOK, map[string]string{"message": "post deleted"})
}

// ListAll godoc
// @Summary Paginated feed of all posts, newest first
// @Tags posts
// @Produce json
// @Param page query int false "Page (1-indexed)"
// @Param page_size query int false "Page size (default 4)"
// @Success 200 {object} models.PostPage
// @Router /api/posts [get]
func (h *PostHandler) ListAll(w http.ResponseWriter, r *http.Request) {
	page, pageSize := pageParams(r)

	result, err := h.postService.ListAll(r.Context(), page, pageSize)
	if err != nil {
		logger.WithCtx(r.Context()).Error("feed listing failed", zap.Error(err))
		helpers.Error(w, http.StatusInternalServerError, "internal error")
		return
	}

	helpers.JSON(w, http.StatusOK, result)
}

// ListByAuthor godoc
// @Summary Paginated posts of one user, newest first
// @Tags posts
// @Produce json
// @Param username path string true "Author username"
// @Param page query int false "Page (1-indexed)"
// @Param page_size query int false "Page size (default 4)"
// @Success 200 {object} models.PostPage
// @Failure 404 {string} string "User not found"
// @Router /api/users/{username}/posts [get]
func (h *PostHandler) ListByAuthor(w http.ResponseWriter, r *http.Request) {
	username := mux.Vars(r)["username"]
	page, pageSize := pageParams(r)

	result, err := h.postService.ListByAuthor(r.Context(), username, page, pageSize)
	if err != nil {
		if errors.Is(err, services.ErrUserNotFound) {
			helpers.Error(w, http.StatusNotFound, services.ErrUserNotFound.Error())
			return
		}
		logger.WithCtx(r.Context()).Error("author listing failed", zap.String("username", username), zap.Error(err))
		helpers.Error(w, http.StatusInternalServerError, "internal error")
		return
	}

	helpers.JSON(w, http.StatusOK, result)
}

func pageParams(r *http.Request) (int, int) {
	page, _ := strconv.Atoi(r.URL.Query().Get("page"))
	if page < 1 {
		page = 1
	}
	pageSize, _ := strconv.Atoi(r.URL.Query().Get("page_size"))
	if pageSize < 1 {
		pageSize = services.DefaultPageSize
	}
	return page, pageSize
}

func writePostError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, services.ErrPostNotFound):
		helpers.Error(w, http.StatusNotFound, err.Error())
	case errors.Is(err, services.ErrForbidden):
		helpers.Error(w, http.StatusForbidden, err.Error())
	case errors.Is(err, services.ErrInvalidPost):
		helpers.Error(w, http.StatusBadRequest, err.Error())
	default:
		logger.WithCtx(r.Context()).Error("post operation failed", zap.Error(err))
		helpers.Error(w, http.StatusInternalServerError, "internal error")
	}
}
