package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/lib/pq"
	"github.com/rs/zerolog/log"

	"github.com/openfeed/openfeed-backend/internal/constants"
	"github.com/openfeed/openfeed-backend/internal/database"
	"github.com/openfeed/openfeed-backend/internal/models"
	"github.com/openfeed/openfeed-backend/internal/utils"
)

// PostRepository defines methods for interacting with post data
type PostRepository interface {
	Create(ctx context.Context, post *models.Post) error
	GetByID(ctx context.Context, id int64) (*models.Post, error)
	List(ctx context.Context, page, pageSize int) ([]*models.Post, int, error)
	ListByAuthor(ctx context.Context, authorID int64, page, pageSize int) ([]*models.Post, int, error)
	Feed(ctx context.Context, userID int64, page, pageSize int) ([]*models.Post, int, error)
	Update(ctx context.Context, post *models.Post) error
	Delete(ctx context.Context, id int64) error
	Like(ctx context.Context, postID, userID int64) error
	Unlike(ctx context.Context, postID, userID int64) error
	GetPhoto(ctx context.Context, id int64) ([]byte, string, error)
	UpdatePhoto(ctx context.Context, id int64, photo []byte, contentType string) error
}

// PostgresPostRepository is a PostgreSQL implementation of PostRepository
type PostgresPostRepository struct {
	db *database.Pool
}

// NewPostRepository creates a new PostRepository
func NewPostRepository(db *database.Pool) PostRepository {
	return &PostgresPostRepository{
		db: db,
	}
}

// postColumns selects post rows together with the author name and the
// like and comment counts. Photo bytes are loaded through GetPhoto only.
const postColumns = `
        p.id, p.author_id, p.title, p.body, p.created_at, p.updated_at,
        u.name AS author_name,
        (SELECT COUNT(*) FROM post_likes pl WHERE pl.post_id = p.id) AS like_count,
        (SELECT COUNT(*) FROM comments c WHERE c.post_id = p.id) AS comment_count`

// scanPost scans a joined post row into a model
func scanPost(scan func(dest ...interface{}) error) (*models.Post, error) {
	post := &models.Post{}
	err := scan(
		&post.ID,
		&post.AuthorID,
		&post.Title,
		&post.Body,
		&post.CreatedAt,
		&post.UpdatedAt,
		&post.AuthorName,
		&post.LikeCount,
		&post.CommentCount,
	)
	if err != nil {
		return nil, err
	}
	return post, nil
}

// Create adds a new post to the database
func (r *PostgresPostRepository) Create(ctx context.Context, post *models.Post) error {
	// Start query timer
	startTime := time.Now()

	// Set created/updated timestamps
	now := time.Now()
	post.CreatedAt = now
	post.UpdatedAt = now

	// Define the query with RETURNING for PostgreSQL
	query := `
        INSERT INTO posts (author_id, title, body, created_at, updated_at)
        VALUES ($1, $2, $3, $4, $5)
        RETURNING id
    `

	// Execute the query
	err := r.db.QueryRowContext(
		ctx,
		query,
		post.AuthorID,
		post.Title,
		post.Body,
		post.CreatedAt,
		post.UpdatedAt,
	).Scan(&post.ID)

	// Log the query execution
	utils.LogDBQuery(
		query,
		[]interface{}{post.AuthorID, post.Title, post.Body, post.CreatedAt, post.UpdatedAt},
		time.Since(startTime),
		err,
	)

	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok {
			if pqErr.Code == constants.PGErrorForeignKeyConstraint {
				return utils.NewNotFoundError("User", post.AuthorID)
			}
		}
		return fmt.Errorf("failed to create post: %w", err)
	}

	log.Info().
		Int64("post_id", post.ID).
		Int64("author_id", post.AuthorID).
		Msg("Post created")

	return nil
}

// GetByID retrieves a post by ID
func (r *PostgresPostRepository) GetByID(ctx context.Context, id int64) (*models.Post, error) {
	// Start query timer
	startTime := time.Now()

	// Define the query
	query := `
        SELECT ` + postColumns + `
        FROM posts p
        JOIN users u ON u.id = p.author_id
        WHERE p.id = $1
    `

	// Execute the query
	row := r.db.QueryRowContext(ctx, query, id)
	post, err := scanPost(row.Scan)

	// Log the query execution
	utils.LogDBQuery(
		query,
		[]interface{}{id},
		time.Since(startTime),
		err,
	)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, utils.NewNotFoundError("Post", id)
		}
		return nil, fmt.Errorf("failed to get post by ID: %w", err)
	}

	return post, nil
}

// List retrieves a page of all posts, newest first
func (r *PostgresPostRepository) List(ctx context.Context, page, pageSize int) ([]*models.Post, int, error) {
	countQuery := `SELECT COUNT(*) FROM posts`
	query := `
        SELECT ` + postColumns + `
        FROM posts p
        JOIN users u ON u.id = p.author_id
        ORDER BY p.created_at DESC
        LIMIT $1 OFFSET $2
    `
	return r.pagedPosts(ctx, countQuery, nil, query, page, pageSize)
}

// ListByAuthor retrieves a page of posts written by the given user
func (r *PostgresPostRepository) ListByAuthor(ctx context.Context, authorID int64, page, pageSize int) ([]*models.Post, int, error) {
	countQuery := `SELECT COUNT(*) FROM posts WHERE author_id = $1`
	query := `
        SELECT ` + postColumns + `
        FROM posts p
        JOIN users u ON u.id = p.author_id
        WHERE p.author_id = $1
        ORDER BY p.created_at DESC
        LIMIT $2 OFFSET $3
    `
	return r.pagedPosts(ctx, countQuery, []interface{}{authorID}, query, page, pageSize, authorID)
}

// Feed retrieves a page of posts from users the given user follows,
// including the user's own posts, newest first.
func (r *PostgresPostRepository) Feed(ctx context.Context, userID int64, page, pageSize int) ([]*models.Post, int, error) {
	countQuery := `
        SELECT COUNT(*)
        FROM posts p
        WHERE p.author_id = $1
           OR p.author_id IN (SELECT followee_id FROM follows WHERE follower_id = $1)
    `
	query := `
        SELECT ` + postColumns + `
        FROM posts p
        JOIN users u ON u.id = p.author_id
        WHERE p.author_id = $1
           OR p.author_id IN (SELECT followee_id FROM follows WHERE follower_id = $1)
        ORDER BY p.created_at DESC
        LIMIT $2 OFFSET $3
    `
	return r.pagedPosts(ctx, countQuery, []interface{}{userID}, query, page, pageSize, userID)
}

// pagedPosts runs a count query and a paged select sharing leading args
func (r *PostgresPostRepository) pagedPosts(ctx context.Context, countQuery string, countArgs []interface{}, query string, page, pageSize int, args ...interface{}) ([]*models.Post, int, error) {
	// Start query timer
	startTime := time.Now()

	var total int
	if err := r.db.QueryRowContext(ctx, countQuery, countArgs...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count posts: %w", err)
	}

	offset := (page - 1) * pageSize
	queryArgs := append(args, pageSize, offset)
	rows, err := r.db.QueryContext(ctx, query, queryArgs...)

	// Log the query execution
	utils.LogDBQuery(
		query,
		queryArgs,
		time.Since(startTime),
		err,
	)

	if err != nil {
		return nil, 0, fmt.Errorf("failed to list posts: %w", err)
	}
	defer func() {
		if err := rows.Close(); err != nil {
			log.Error().Err(err).Msg("Failed to close rows")
		}
	}()

	posts := make([]*models.Post, 0, pageSize)
	for rows.Next() {
		post, err := scanPost(rows.Scan)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan post row: %w", err)
		}
		posts = append(posts, post)
	}

	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("error iterating post rows: %w", err)
	}

	return posts, total, nil
}

// Update updates a post's title and body in the database
func (r *PostgresPostRepository) Update(ctx context.Context, post *models.Post) error {
	// Start query timer
	startTime := time.Now()

	// Update the updated_at timestamp
	post.UpdatedAt = time.Now()

	// Define the query
	query := `
        UPDATE posts
        SET title = $1, body = $2, updated_at = $3
        WHERE id = $4
    `

	// Execute the query
	result, err := r.db.ExecContext(
		ctx,
		query,
		post.Title,
		post.Body,
		post.UpdatedAt,
		post.ID,
	)

	// Log the query execution
	utils.LogDBQuery(
		query,
		[]interface{}{post.Title, post.Body, post.UpdatedAt, post.ID},
		time.Since(startTime),
		err,
	)

	if err != nil {
		return fmt.Errorf("failed to update post: %w", err)
	}

	// Check if any rows were affected
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return utils.NewNotFoundError("Post", post.ID)
	}

	log.Info().
		Int64("post_id", post.ID).
		Msg("Post updated")

	return nil
}

// Delete removes a post from the database.
// Likes and comments are removed by foreign key cascades.
func (r *PostgresPostRepository) Delete(ctx context.Context, id int64) error {
	// Start query timer
	startTime := time.Now()

	query := "DELETE FROM posts WHERE id = $1"
	result, err := r.db.ExecContext(ctx, query, id)

	// Log the query execution
	utils.LogDBQuery(
		query,
		[]interface{}{id},
		time.Since(startTime),
		err,
	)

	if err != nil {
		return fmt.Errorf("failed to delete post: %w", err)
	}

	// Check if any rows were affected
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return utils.NewNotFoundError("Post", id)
	}

	log.Info().
		Int64("post_id", id).
		Msg("Post deleted")

	return nil
}

// Like records that a user liked a post. Liking a post twice violates the
// composite primary key and is reported as a duplicate.
func (r *PostgresPostRepository) Like(ctx context.Context, postID, userID int64) error {
	// Start query timer
	startTime := time.Now()

	query := `
        INSERT INTO post_likes (post_id, user_id, created_at)
        VALUES ($1, $2, $3)
    `

	now := time.Now()
	_, err := r.db.ExecContext(ctx, query, postID, userID, now)

	// Log the query execution
	utils.LogDBQuery(
		query,
		[]interface{}{postID, userID, now},
		time.Since(startTime),
		err,
	)

	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok {
			switch pqErr.Code {
			case constants.PGErrorDuplicateConstraint:
				return utils.NewDuplicateError("Like", "post_id", postID)
			case constants.PGErrorForeignKeyConstraint:
				return utils.NewNotFoundError("Post", postID)
			}
		}
		return fmt.Errorf("failed to like post: %w", err)
	}

	log.Info().
		Int64("post_id", postID).
		Int64("user_id", userID).
		Msg("Post liked")

	return nil
}

// Unlike removes a user's like from a post. Removing a like that does not
// exist is treated as a no-op.
func (r *PostgresPostRepository) Unlike(ctx context.Context, postID, userID int64) error {
	// Start query timer
	startTime := time.Now()

	query := `DELETE FROM post_likes WHERE post_id = $1 AND user_id = $2`

	_, err := r.db.ExecContext(ctx, query, postID, userID)

	// Log the query execution
	utils.LogDBQuery(
		query,
		[]interface{}{postID, userID},
		time.Since(startTime),
		err,
	)

	if err != nil {
		return fmt.Errorf("failed to unlike post: %w", err)
	}

	log.Info().
		Int64("post_id", postID).
		Int64("user_id", userID).
		Msg("Post unliked")

	return nil
}

// GetPhoto retrieves a post's photo bytes and content type
func (r *PostgresPostRepository) GetPhoto(ctx context.Context, id int64) ([]byte, string, error) {
	// Start query timer
	startTime := time.Now()

	query := `
        SELECT photo, photo_content_type
        FROM posts
        WHERE id = $1
    `

	var photo []byte
	var contentType sql.NullString
	err := r.db.QueryRowContext(ctx, query, id).Scan(&photo, &contentType)

	// Log the query execution
	utils.LogDBQuery(
		query,
		[]interface{}{id},
		time.Since(startTime),
		err,
	)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, "", utils.NewNotFoundError("Post", id)
		}
		return nil, "", fmt.Errorf("failed to get post photo: %w", err)
	}

	if len(photo) == 0 {
		return nil, "", utils.NewNotFoundError("PostPhoto", id)
	}

	return photo, contentType.String, nil
}

// UpdatePhoto stores a post's photo bytes and content type
func (r *PostgresPostRepository) UpdatePhoto(ctx context.Context, id int64, photo []byte, contentType string) error {
	// Start query timer
	startTime := time.Now()

	query := `
        UPDATE posts
        SET photo = $1, photo_content_type = $2, updated_at = $3
        WHERE id = $4
    `

	now := time.Now()
	result, err := r.db.ExecContext(ctx, query, photo, contentType, now, id)

	// Log the query execution (photo bytes elided)
	utils.LogDBQuery(
		query,
		[]interface{}{fmt.Sprintf("[%d bytes]", len(photo)), contentType, now, id},
		time.Since(startTime),
		err,
	)

	if err != nil {
		return fmt.Errorf("failed to update post photo: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return utils.NewNotFoundError("Post", id)
	}

	log.Info().
		Int64("post_id", id).
		Str("content_type", contentType).
		Int("size", len(photo)).
		Msg("Post photo updated")

	return nil
}
