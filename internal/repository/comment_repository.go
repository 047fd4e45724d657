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

// CommentRepository defines methods for interacting with comment data
type CommentRepository interface {
	Create(ctx context.Context, comment *models.Comment) error
	GetByID(ctx context.Context, id int64) (*models.Comment, error)
	ListByPost(ctx context.Context, postID int64) ([]*models.Comment, error)
	Update(ctx context.Context, comment *models.Comment) error
	Delete(ctx context.Context, id int64) error
}

// PostgresCommentRepository is a PostgreSQL implementation of CommentRepository
type PostgresCommentRepository struct {
	db *database.Pool
}

// NewCommentRepository creates a new CommentRepository
func NewCommentRepository(db *database.Pool) CommentRepository {
	return &PostgresCommentRepository{
		db: db,
	}
}

// Create adds a new comment to the database
func (r *PostgresCommentRepository) Create(ctx context.Context, comment *models.Comment) error {
	// Start query timer
	startTime := time.Now()

	// Set created/updated timestamps
	now := time.Now()
	comment.CreatedAt = now
	comment.UpdatedAt = now

	// Define the query with RETURNING for PostgreSQL
	query := `
        INSERT INTO comments (post_id, author_id, text, created_at, updated_at)
        VALUES ($1, $2, $3, $4, $5)
        RETURNING id
    `

	// Execute the query
	err := r.db.QueryRowContext(
		ctx,
		query,
		comment.PostID,
		comment.AuthorID,
		comment.Text,
		comment.CreatedAt,
		comment.UpdatedAt,
	).Scan(&comment.ID)

	// Log the query execution
	utils.LogDBQuery(
		query,
		[]interface{}{comment.PostID, comment.AuthorID, comment.Text, comment.CreatedAt, comment.UpdatedAt},
		time.Since(startTime),
		err,
	)

	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok {
			if pqErr.Code == constants.PGErrorForeignKeyConstraint {
				return utils.NewNotFoundError("Post", comment.PostID)
			}
		}
		return fmt.Errorf("failed to create comment: %w", err)
	}

	log.Info().
		Int64("comment_id", comment.ID).
		Int64("post_id", comment.PostID).
		Int64("author_id", comment.AuthorID).
		Msg("Comment created")

	return nil
}

// GetByID retrieves a comment by ID
func (r *PostgresCommentRepository) GetByID(ctx context.Context, id int64) (*models.Comment, error) {
	// Start query timer
	startTime := time.Now()

	// Define the query
	query := `
        SELECT c.id, c.post_id, c.author_id, c.text, c.created_at, c.updated_at, u.name AS author_name
        FROM comments c
        JOIN users u ON u.id = c.author_id
        WHERE c.id = $1
    `

	// Execute the query
	comment := &models.Comment{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&comment.ID,
		&comment.PostID,
		&comment.AuthorID,
		&comment.Text,
		&comment.CreatedAt,
		&comment.UpdatedAt,
		&comment.AuthorName,
	)

	// Log the query execution
	utils.LogDBQuery(
		query,
		[]interface{}{id},
		time.Since(startTime),
		err,
	)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, utils.NewNotFoundError("Comment", id)
		}
		return nil, fmt.Errorf("failed to get comment by ID: %w", err)
	}

	return comment, nil
}

// ListByPost retrieves the comments on a post, oldest first
func (r *PostgresCommentRepository) ListByPost(ctx context.Context, postID int64) ([]*models.Comment, error) {
	// Start query timer
	startTime := time.Now()

	// Define the query
	query := `
        SELECT c.id, c.post_id, c.author_id, c.text, c.created_at, c.updated_at, u.name AS author_name
        FROM comments c
        JOIN users u ON u.id = c.author_id
        WHERE c.post_id = $1
        ORDER BY c.created_at ASC
    `

	rows, err := r.db.QueryContext(ctx, query, postID)

	// Log the query execution
	utils.LogDBQuery(
		query,
		[]interface{}{postID},
		time.Since(startTime),
		err,
	)

	if err != nil {
		return nil, fmt.Errorf("failed to list comments: %w", err)
	}
	defer func() {
		if err := rows.Close(); err != nil {
			log.Error().Err(err).Msg("Failed to close rows")
		}
	}()

	comments := make([]*models.Comment, 0)
	for rows.Next() {
		comment := &models.Comment{}
		err := rows.Scan(
			&comment.ID,
			&comment.PostID,
			&comment.AuthorID,
			&comment.Text,
			&comment.CreatedAt,
			&comment.UpdatedAt,
			&comment.AuthorName,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan comment row: %w", err)
		}
		comments = append(comments, comment)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating comment rows: %w", err)
	}

	return comments, nil
}

// Update updates a comment's text in the database
func (r *PostgresCommentRepository) Update(ctx context.Context, comment *models.Comment) error {
	// Start query timer
	startTime := time.Now()

	// Update the updated_at timestamp
	comment.UpdatedAt = time.Now()

	// Define the query
	query := `
        UPDATE comments
        SET text = $1, updated_at = $2
        WHERE id = $3
    `

	// Execute the query
	result, err := r.db.ExecContext(
		ctx,
		query,
		comment.Text,
		comment.UpdatedAt,
		comment.ID,
	)

	// Log the query execution
	utils.LogDBQuery(
		query,
		[]interface{}{comment.Text, comment.UpdatedAt, comment.ID},
		time.Since(startTime),
		err,
	)

	if err != nil {
		return fmt.Errorf("failed to update comment: %w", err)
	}

	// Check if any rows were affected
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return utils.NewNotFoundError("Comment", comment.ID)
	}

	log.Info().
		Int64("comment_id", comment.ID).
		Msg("Comment updated")

	return nil
}

// Delete removes a comment from the database
func (r *PostgresCommentRepository) Delete(ctx context.Context, id int64) error {
	// Start query timer
	startTime := time.Now()

	query := "DELETE FROM comments WHERE id = $1"
	result, err := r.db.ExecContext(ctx, query, id)

	// Log the query execution
	utils.LogDBQuery(
		query,
		[]interface{}{id},
		time.Since(startTime),
		err,
	)

	if err != nil {
		return fmt.Errorf("failed to delete comment: %w", err)
	}

	// Check if any rows were affected
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return utils.NewNotFoundError("Comment", id)
	}

	log.Info().
		Int64("comment_id", id).
		Msg("Comment deleted")

	return nil
}
