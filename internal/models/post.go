package models

import "time"

type Post struct {
	ID        int       `json:"id"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
	AuthorID  int       `json:"author_id"`
	Author    string    `json:"author"`
}

// PostPage is one page of the creation-descending feed. Page is 1-indexed.
type PostPage struct {
	Posts    []*Post `json:"posts"`
	Page     int     `json:"page"`
	PageSize int     `json:"page_size"`
	Total    int     `json:"total"`
}
