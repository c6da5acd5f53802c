package services

import (
	"context"
	"strings"
	"unicode/utf8"

	"inkwell/internal/logger"
	"inkwell/internal/models"

	"go.uber.org/zap"
)

const (
	DefaultPageSize = 4
	maxPageSize     = 50
	maxTitleLength  = 100
)

type PostRepo interface {
	Create(ctx context.Context, post *models.Post) error
	GetByID(ctx context.Context, id int) (*models.Post, error)
	Update(ctx context.Context, id int, title, content string) error
	Delete(ctx context.Context, id int) error
	ListAll(ctx context.Context, limit, offset int) ([]*models.Post, int, error)
	ListByAuthor(ctx context.Context, authorID, limit, offset int) ([]*models.Post, int, error)
}

type PostService struct {
	posts PostRepo
	users UserRepo
}

func NewPostService(posts PostRepo, users UserRepo) *PostService {
	return &PostService{posts: posts, users: users}
}

func (s *PostService) Create(ctx context.Context, authorID int, title, content string) (*models.Post, error) {
	title = strings.TrimSpace(title)
	if title == "" || strings.TrimSpace(content) == "" || utf8.RuneCountInString(title) > maxTitleLength {
		return nil, ErrInvalidPost
	}

	post := &models.Post{
		Title:    title,
		Content:  content,
		AuthorID: authorID,
	}
	if err := s.posts.Create(ctx, post); err != nil {
		return nil, err
	}
	logger.Log.Info("post created (service)", zap.Int("post_id", post.ID), zap.Int("author_id", authorID))
	return post, nil
}

func (s *PostService) Get(ctx context.Context, id int) (*models.Post, error) {
	post, err := s.posts.GetByID(ctx, id)
	if err != nil {
		return nil, ErrPostNotFound
	}
	return post, nil
}

func (s *PostService) Update(ctx context.Context, id, userID int, title, content string) (*models.Post, error) {
	title = strings.TrimSpace(title)
	if title == "" || strings.TrimSpace(content) == "" || utf8.RuneCountInString(title) > maxTitleLength {
		return nil, ErrInvalidPost
	}

	post, err := s.posts.GetByID(ctx, id)
	if err != nil {
		return nil, ErrPostNotFound
	}
	if post.AuthorID != userID {
		logger.Log.Warn("post update refused: not the author",
			zap.Int("post_id", id), zap.Int("user_id", userID), zap.Int("author_id", post.AuthorID))
		return nil, ErrForbidden
	}

	if err := s.posts.Update(ctx, id, title, content); err != nil {
		return nil, err
	}
	post.Title = title
	post.Content = content
	return post, nil
}

func (s *PostService) Delete(ctx context.Context, id, userID int) error {
	post, err := s.posts.GetByID(ctx, id)
	if err != nil {
		return ErrPostNotFound
	}
	if post.AuthorID != userID {
		logger.Log.Warn("post delete refused: not the author",
			zap.Int("post_id", id), zap.Int("user_id", userID), zap.Int("author_id", post.AuthorID))
		return ErrForbidden
	}
	return s.posts.Delete(ctx, id)
}

// ListAll returns one page of the global feed, newest first.
func (s *PostService) ListAll(ctx context.Context, page, pageSize int) (*models.PostPage, error) {
	page, pageSize = clampPage(page, pageSize)
	posts, total, err := s.posts.ListAll(ctx, pageSize, (page-1)*pageSize)
	if err != nil {
		return nil, err
	}
	return &models.PostPage{Posts: posts, Page: page, PageSize: pageSize, Total: total}, nil
}

// ListByAuthor pages one user's posts. An unknown username is a not-found
// condition, distinct from a known author with an empty page.
func (s *PostService) ListByAuthor(ctx context.Context, username string, page, pageSize int) (*models.PostPage, error) {
	user, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		return nil, ErrUserNotFound
	}

	page, pageSize = clampPage(page, pageSize)
	posts, total, err := s.posts.ListByAuthor(ctx, user.ID, pageSize, (page-1)*pageSize)
	if err != nil {
		return nil, err
	}
	return &models.PostPage{Posts: posts, Page: page, PageSize: pageSize, Total: total}, nil
}

func clampPage(page, pageSize int) (int, int) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = DefaultPageSize
	}
	if pageSize > maxPageSize {
		pageSize = maxPageSize
	}
	return page, pageSize
}
