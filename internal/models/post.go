package models

import (
	"time"
)

// Post represents a post published by a user.
// AuthorName, LikeCount and CommentCount are read-model fields populated
// by joined queries and are never written back to the posts table.
type Post struct {
	ID           int64     `json:"id" db:"id"`
	AuthorID     int64     `json:"author_id" db:"author_id"`
	Title        string    `json:"title" db:"title" validate:"required,min=4,max=150"`
	Body         string    `json:"body" db:"body" validate:"required,min=4,max=2000"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
	UpdatedAt    time.Time `json:"updated_at" db:"updated_at"`
	AuthorName   string    `json:"author_name,omitempty" db:"author_name"`
	LikeCount    int64     `json:"like_count" db:"like_count"`
	CommentCount int64     `json:"comment_count" db:"comment_count"`
}

// NewPost creates a new Post instance for the given author.
func NewPost(authorID int64, title, body string) *Post {
	now := time.Now()
	return &Post{
		AuthorID:  authorID,
		Title:     title,
		Body:      body,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// TableName returns the database table name for the Post model.
func (p *Post) TableName() string {
	return "posts"
}

// PostCreate represents the data required to publish a post.
type PostCreate struct {
	Title string `json:"title" validate:"required,min=4,max=150"`
	Body  string `json:"body" validate:"required,min=4,max=2000"`
}

// PostUpdate represents the post fields an author is allowed to change.
// Empty fields are left untouched.
type PostUpdate struct {
	Title string `json:"title" validate:"omitempty,min=4,max=150"`
	Body  string `json:"body" validate:"omitempty,min=4,max=2000"`
}
