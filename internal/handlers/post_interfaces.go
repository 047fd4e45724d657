// post_interfaces.go

// This file defines the service interface consumed by the post handlers.
package handlers

import (
	"context"

	"github.com/openfeed/openfeed-backend/internal/models"
)

// PostServiceInterface defines the methods required from PostService.
// It covers publishing, browsing, likes and comments.
type PostServiceInterface interface {
	// CreatePost publishes a new post for the given author.
	CreatePost(ctx context.Context, authorID int64, create *models.PostCreate) (*models.Post, error)

	// GetPostByID retrieves a post with its author name and counters.
	GetPostByID(ctx context.Context, id int64) (*models.Post, error)

	// ListPosts retrieves a page of all posts, newest first.
	ListPosts(ctx context.Context, page, pageSize int) ([]*models.Post, int, error)

	// ListPostsByAuthor retrieves a page of posts written by one user.
	ListPostsByAuthor(ctx context.Context, authorID int64, page, pageSize int) ([]*models.Post, int, error)

	// GetFeed retrieves a page of posts from the user and the users they
	// follow.
	GetFeed(ctx context.Context, userID int64, page, pageSize int) ([]*models.Post, int, error)

	// UpdatePost updates a post's title and body. Only the author or an
	// admin may modify it.
	UpdatePost(ctx context.Context, id, userID int64, role string, update *models.PostUpdate) (*models.Post, error)

	// DeletePost removes a post. Only the author or an admin may delete it.
	DeletePost(ctx context.Context, id, userID int64, role string) error

	// LikePost records that a user liked a post.
	LikePost(ctx context.Context, postID, userID int64) error

	// UnlikePost removes a user's like.
	UnlikePost(ctx context.Context, postID, userID int64) error

	// GetPhoto retrieves a post's photo bytes and content type.
	GetPhoto(ctx context.Context, id int64) ([]byte, string, error)

	// UpdatePhoto stores a post's photo. Only the author or an admin may
	// attach one.
	UpdatePhoto(ctx context.Context, id, userID int64, role string, photo []byte, contentType string) error

	// AddComment adds a comment to a post.
	AddComment(ctx context.Context, postID, authorID int64, create *models.CommentCreate) (*models.Comment, error)

	// ListComments retrieves the comments on a post, oldest first.
	ListComments(ctx context.Context, postID int64) ([]*models.Comment, error)

	// DeleteComment removes a comment. Only the comment's author or an
	// admin may delete it.
	DeleteComment(ctx context.Context, commentID, userID int64, role string) error
}
