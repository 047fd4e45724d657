package models

import (
	"time"
)

// Comment represents a comment left on a post.
// AuthorName is a read-model field populated by joined queries.
type Comment struct {
	ID         int64     `json:"id" db:"id"`
	PostID     int64     `json:"post_id" db:"post_id"`
	AuthorID   int64     `json:"author_id" db:"author_id"`
	Text       string    `json:"text" db:"text" validate:"required,max=300"`
	CreatedAt  time.Time `json:"created_at" db:"created_at"`
	UpdatedAt  time.Time `json:"updated_at" db:"updated_at"`
	AuthorName string    `json:"author_name,omitempty" db:"author_name"`
}

// NewComment creates a new Comment instance on the given post.
func NewComment(postID, authorID int64, text string) *Comment {
	now := time.Now()
	return &Comment{
		PostID:    postID,
		AuthorID:  authorID,
		Text:      text,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// TableName returns the database table name for the Comment model.
func (c *Comment) TableName() string {
	return "comments"
}

// CommentCreate represents the data required to add a comment to a post.
type CommentCreate struct {
	Text string `json:"text" validate:"required,max=300"`
}
