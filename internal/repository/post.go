package repository

import (
	"context"

	"inkwell/internal/logger"
	"inkwell/internal/models"

	"go.uber.org/zap"
)

type PostRepository struct {
	db DB
}

func NewPostRepository(db DB) *PostRepository {
	return &PostRepository{db: db}
}

func (r *PostRepository) Create(ctx context.Context, post *models.Post) error {
	logger.Log.Info("creating post (repo)", zap.Int("author_id", post.AuthorID))
	query := `
	INSERT INTO posts (title, content, author_id)
	VALUES ($1, $2, $3)
	RETURNING id, created_at`
	err := r.db.QueryRow(ctx, query, post.Title, post.Content, post.AuthorID).
		Scan(&post.ID, &post.CreatedAt)
	if err != nil {
		logger.Log.Error("failed to create post (repo)", zap.Error(err))
	}
	return err
}

func (r *PostRepository) GetByID(ctx context.Context, id int) (*models.Post, error) {
	query := `
	SELECT p.id, p.title, p.content, p.created_at, p.author_id, u.username
	FROM posts p
	JOIN users u ON u.id = p.author_id
	WHERE p.id = $1`

	var p models.Post
	err := r.db.QueryRow(ctx, query, id).Scan(
		&p.ID, &p.Title, &p.Content, &p.CreatedAt, &p.AuthorID, &p.Author,
	)
	if err != nil {
		return nil, notFoundOr(err)
	}
	return &p, nil
}

func (r *PostRepository) Update(ctx context.Context, id int, title, content string) error {
	tag, err := r.db.Exec(ctx,
		`UPDATE posts SET title = $2, content = $3 WHERE id = $1`,
		id, title, content,
	)
	if err != nil {
		logger.Log.Error("failed to update post (repo)", zap.Int("post_id", id), zap.Error(err))
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *PostRepository) Delete(ctx context.Context, id int) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM posts WHERE id = $1`, id)
	if err != nil {
		logger.Log.Error("failed to delete post (repo)", zap.Int("post_id", id), zap.Error(err))
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// ListAll returns one feed page plus the total post count. Ordering is
// creation-descending with id as the tie breaker so pages never shift
// between requests against the same data.
func (r *PostRepository) ListAll(ctx context.Context, limit, offset int) ([]*models.Post, int, error) {
	query := `
	SELECT p.id, p.title, p.content, p.created_at, p.author_id, u.username
	FROM posts p
	JOIN users u ON u.id = p.author_id
	ORDER BY p.created_at DESC, p.id DESC
	LIMIT $1 OFFSET $2`

	rows, err := r.db.Query(ctx, query, limit, offset)
	if err != nil {
		logger.Log.Error("failed to list posts (repo)", zap.Error(err))
		return nil, 0, err
	}
	defer rows.Close()

	var posts []*models.Post
	for rows.Next() {
		var p models.Post
		if err := rows.Scan(&p.ID, &p.Title, &p.Content, &p.CreatedAt, &p.AuthorID, &p.Author); err != nil {
			return nil, 0, err
		}
		posts = append(posts, &p)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	var total int
	if err := r.db.QueryRow(ctx, `SELECT count(*) FROM posts`).Scan(&total); err != nil {
		return nil, 0, err
	}
	return posts, total, nil
}

func (r *PostRepository) ListByAuthor(ctx context.Context, authorID, limit, offset int) ([]*models.Post, int, error) {
	query := `
	SELECT p.id, p.title, p.content, p.created_at, p.author_id, u.username
	FROM posts p
	JOIN users u ON u.id = p.author_id
	WHERE p.author_id = $1
	ORDER BY p.created_at DESC, p.id DESC
	LIMIT $2 OFFSET $3`

	rows, err := r.db.Query(ctx, query, authorID, limit, offset)
	if err != nil {
		logger.Log.Error("failed to list posts by author (repo)", zap.Int("author_id", authorID), zap.Error(err))
		return nil, 0, err
	}
	defer rows.Close()

	var posts []*models.Post
	for rows.Next() {
		var p models.Post
		if err := rows.Scan(&p.ID, &p.Title, &p.Content, &p.CreatedAt, &p.AuthorID, &p.Author); err != nil {
			return nil, 0, err
		}
		posts = append(posts, &p)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	var total int
	if err := r.db.QueryRow(ctx, `SELECT count(*) FROM posts WHERE author_id = $1`, authorID).Scan(&total); err != nil {
		return nil, 0, err
	}
	return posts, total, nil
}
