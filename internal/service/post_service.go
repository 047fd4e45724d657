package service

import (
	"context"

	"github.com/rs/zerolog/log"

	"github.com/openfeed/openfeed-backend/internal/constants"
	"github.com/openfeed/openfeed-backend/internal/models"
	"github.com/openfeed/openfeed-backend/internal/repository"
	"github.com/openfeed/openfeed-backend/internal/utils"
)

// PostService handles post, like and comment operations
type PostService struct {
	postRepo    repository.PostRepository
	commentRepo repository.CommentRepository
}

// NewPostService creates a new PostService
func NewPostService(
	postRepo repository.PostRepository,
	commentRepo repository.CommentRepository,
) *PostService {
	return &PostService{
		postRepo:    postRepo,
		commentRepo: commentRepo,
	}
}

// CreatePost publishes a new post for the given author
func (s *PostService) CreatePost(ctx context.Context, authorID int64, create *models.PostCreate) (*models.Post, error) {
	post := models.NewPost(authorID, create.Title, create.Body)
	if err := s.postRepo.Create(ctx, post); err != nil {
		return nil, err
	}
	return post, nil
}

// GetPostByID retrieves a post by ID
func (s *PostService) GetPostByID(ctx context.Context, id int64) (*models.Post, error) {
	return s.postRepo.GetByID(ctx, id)
}

// ListPosts retrieves a page of all posts
func (s *PostService) ListPosts(ctx context.Context, page, pageSize int) ([]*models.Post, int, error) {
	return s.postRepo.List(ctx, page, pageSize)
}

// ListPostsByAuthor retrieves a page of posts written by the given user
func (s *PostService) ListPostsByAuthor(ctx context.Context, authorID int64, page, pageSize int) ([]*models.Post, int, error) {
	return s.postRepo.ListByAuthor(ctx, authorID, page, pageSize)
}

// GetFeed retrieves a page of posts from users the given user follows,
// including the user's own posts.
func (s *PostService) GetFeed(ctx context.Context, userID int64, page, pageSize int) ([]*models.Post, int, error) {
	return s.postRepo.Feed(ctx, userID, page, pageSize)
}

// UpdatePost updates a post's title and body. Only the post's author or an
// admin may modify it; empty fields are ignored.
func (s *PostService) UpdatePost(ctx context.Context, id, userID int64, role string, update *models.PostUpdate) (*models.Post, error) {
	post, err := s.postRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := s.authorizePostChange(post, userID, role); err != nil {
		return nil, err
	}

	changes := false

	if update.Title != "" && update.Title != post.Title {
		post.Title = update.Title
		changes = true
	}

	if update.Body != "" && update.Body != post.Body {
		post.Body = update.Body
		changes = true
	}

	if changes {
		if err := s.postRepo.Update(ctx, post); err != nil {
			return nil, err
		}
		log.Info().
			Int64("post_id", post.ID).
			Msg("Post updated")
	}

	return post, nil
}

// DeletePost removes a post. Only the post's author or an admin may delete it.
func (s *PostService) DeletePost(ctx context.Context, id, userID int64, role string) error {
	post, err := s.postRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if err := s.authorizePostChange(post, userID, role); err != nil {
		return err
	}

	return s.postRepo.Delete(ctx, id)
}

// authorizePostChange checks that the acting user owns the post or is an admin
func (s *PostService) authorizePostChange(post *models.Post, userID int64, role string) error {
	if post.AuthorID != userID && role != constants.RoleAdmin {
		return utils.NewForbiddenError("You do not have permission to modify this post")
	}
	return nil
}

// LikePost records that a user liked a post. Liking a post twice is an error.
func (s *PostService) LikePost(ctx context.Context, postID, userID int64) error {
	return s.postRepo.Like(ctx, postID, userID)
}

// UnlikePost removes a user's like. Unliking a post that was never liked
// is a no-op.
func (s *PostService) UnlikePost(ctx context.Context, postID, userID int64) error {
	return s.postRepo.Unlike(ctx, postID, userID)
}

// GetPhoto retrieves a post's photo bytes and content type
func (s *PostService) GetPhoto(ctx context.Context, id int64) ([]byte, string, error) {
	return s.postRepo.GetPhoto(ctx, id)
}

// UpdatePhoto stores a post's photo. Only the post's author or an admin
// may attach a photo.
func (s *PostService) UpdatePhoto(ctx context.Context, id, userID int64, role string, photo []byte, contentType string) error {
	post, err := s.postRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if err := s.authorizePostChange(post, userID, role); err != nil {
		return err
	}

	return s.postRepo.UpdatePhoto(ctx, id, photo, contentType)
}

// AddComment adds a comment to a post
func (s *PostService) AddComment(ctx context.Context, postID, authorID int64, create *models.CommentCreate) (*models.Comment, error) {
	comment := models.NewComment(postID, authorID, create.Text)
	if err := s.commentRepo.Create(ctx, comment); err != nil {
		return nil, err
	}
	return comment, nil
}

// ListComments retrieves the comments on a post, oldest first
func (s *PostService) ListComments(ctx context.Context, postID int64) ([]*models.Comment, error) {
	// Verify the post exists so a missing post yields a 404
	if _, err := s.postRepo.GetByID(ctx, postID); err != nil {
		return nil, err
	}
	return s.commentRepo.ListByPost(ctx, postID)
}

// DeleteComment removes a comment. The comment's author, the owner of the
// commented post, and admins may delete it.
func (s *PostService) DeleteComment(ctx context.Context, commentID, userID int64, role string) error {
	comment, err := s.commentRepo.GetByID(ctx, commentID)
	if err != nil {
		return err
	}

	if comment.AuthorID != userID && role != constants.RoleAdmin {
		post, err := s.postRepo.GetByID(ctx, comment.PostID)
		if err != nil {
			return err
		}
		if post.AuthorID != userID {
			return utils.NewForbiddenError("You do not have permission to delete this comment")
		}
	}

	return s.commentRepo.Delete(ctx, commentID)
}
