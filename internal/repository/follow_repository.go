package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/lib/pq"
	"github.com/rs/zerolog/log"

	"github.com/openfeed/openfeed-backend/internal/constants"
	"github.com/openfeed/openfeed-backend/internal/database"
	"github.com/openfeed/openfeed-backend/internal/models"
	"github.com/openfeed/openfeed-backend/internal/utils"
)

// FollowRepository defines methods for interacting with follow edges
type FollowRepository interface {
	Follow(ctx context.Context, followerID, followeeID int64) error
	Unfollow(ctx context.Context, followerID, followeeID int64) error
	IsFollowing(ctx context.Context, followerID, followeeID int64) (bool, error)
	Followers(ctx context.Context, userID int64) ([]*models.UserSuggestion, error)
	Following(ctx context.Context, userID int64) ([]*models.UserSuggestion, error)
	Suggestions(ctx context.Context, userID int64, limit int) ([]*models.UserSuggestion, error)
}

// PostgresFollowRepository is a PostgreSQL implementation of FollowRepository
type PostgresFollowRepository struct {
	db *database.Pool
}

// NewFollowRepository creates a new FollowRepository
func NewFollowRepository(db *database.Pool) FollowRepository {
	return &PostgresFollowRepository{
		db: db,
	}
}

// Follow creates a follow edge from follower to followee.
// The follows table carries a check constraint rejecting self-follows and
// a composite primary key rejecting duplicate edges.
func (r *PostgresFollowRepository) Follow(ctx context.Context, followerID, followeeID int64) error {
	// Start query timer
	startTime := time.Now()

	query := `
        INSERT INTO follows (follower_id, followee_id, created_at)
        VALUES ($1, $2, $3)
    `

	now := time.Now()
	_, err := r.db.ExecContext(ctx, query, followerID, followeeID, now)

	// Log the query execution
	utils.LogDBQuery(
		query,
		[]interface{}{followerID, followeeID, now},
		time.Since(startTime),
		err,
	)

	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok {
			switch pqErr.Code {
			case constants.PGErrorDuplicateConstraint:
				return utils.NewDuplicateError("Follow", "followee_id", followeeID)
			case constants.PGErrorCheckConstraint:
				return utils.NewBadRequestError(constants.MsgCannotFollowSelf)
			case constants.PGErrorForeignKeyConstraint:
				return utils.NewNotFoundError("User", followeeID)
			}
		}
		return fmt.Errorf("failed to create follow: %w", err)
	}

	log.Info().
		Int64("follower_id", followerID).
		Int64("followee_id", followeeID).
		Msg("Follow created")

	return nil
}

// Unfollow removes a follow edge. Removing an edge that does not exist
// is treated as a no-op.
func (r *PostgresFollowRepository) Unfollow(ctx context.Context, followerID, followeeID int64) error {
	// Start query timer
	startTime := time.Now()

	query := `DELETE FROM follows WHERE follower_id = $1 AND followee_id = $2`

	_, err := r.db.ExecContext(ctx, query, followerID, followeeID)

	// Log the query execution
	utils.LogDBQuery(
		query,
		[]interface{}{followerID, followeeID},
		time.Since(startTime),
		err,
	)

	if err != nil {
		return fmt.Errorf("failed to delete follow: %w", err)
	}

	log.Info().
		Int64("follower_id", followerID).
		Int64("followee_id", followeeID).
		Msg("Follow removed")

	return nil
}

// IsFollowing checks whether a follow edge exists
func (r *PostgresFollowRepository) IsFollowing(ctx context.Context, followerID, followeeID int64) (bool, error) {
	// Start query timer
	startTime := time.Now()

	query := `SELECT EXISTS(SELECT 1 FROM follows WHERE follower_id = $1 AND followee_id = $2)`

	var exists bool
	err := r.db.QueryRowContext(ctx, query, followerID, followeeID).Scan(&exists)

	// Log the query execution
	utils.LogDBQuery(
		query,
		[]interface{}{followerID, followeeID},
		time.Since(startTime),
		err,
	)

	if err != nil {
		return false, fmt.Errorf("failed to check follow: %w", err)
	}

	return exists, nil
}

// Followers returns the users who follow the given user
func (r *PostgresFollowRepository) Followers(ctx context.Context, userID int64) ([]*models.UserSuggestion, error) {
	query := `
        SELECT u.id, u.name, u.email
        FROM follows f
        JOIN users u ON u.id = f.follower_id
        WHERE f.followee_id = $1
        ORDER BY f.created_at DESC
    `
	return r.queryUsers(ctx, query, userID)
}

// Following returns the users the given user follows
func (r *PostgresFollowRepository) Following(ctx context.Context, userID int64) ([]*models.UserSuggestion, error) {
	query := `
        SELECT u.id, u.name, u.email
        FROM follows f
        JOIN users u ON u.id = f.followee_id
        WHERE f.follower_id = $1
        ORDER BY f.created_at DESC
    `
	return r.queryUsers(ctx, query, userID)
}

// Suggestions returns users the given user does not follow yet, newest
// accounts first. The user themselves is excluded.
func (r *PostgresFollowRepository) Suggestions(ctx context.Context, userID int64, limit int) ([]*models.UserSuggestion, error) {
	// Start query timer
	startTime := time.Now()

	query := `
        SELECT u.id, u.name, u.email
        FROM users u
        WHERE u.id <> $1
          AND NOT EXISTS (
            SELECT 1 FROM follows f
            WHERE f.follower_id = $1 AND f.followee_id = u.id
          )
        ORDER BY u.created_at DESC
        LIMIT $2
    `

	rows, err := r.db.QueryContext(ctx, query, userID, limit)

	// Log the query execution
	utils.LogDBQuery(
		query,
		[]interface{}{userID, limit},
		time.Since(startTime),
		err,
	)

	if err != nil {
		return nil, fmt.Errorf("failed to get suggestions: %w", err)
	}
	return collectUsers(rows)
}

// queryUsers runs a query returning (id, name, email) rows
func (r *PostgresFollowRepository) queryUsers(ctx context.Context, query string, args ...interface{}) ([]*models.UserSuggestion, error) {
	// Start query timer
	startTime := time.Now()

	rows, err := r.db.QueryContext(ctx, query, args...)

	// Log the query execution
	utils.LogDBQuery(
		query,
		args,
		time.Since(startTime),
		err,
	)

	if err != nil {
		return nil, fmt.Errorf("failed to query follow users: %w", err)
	}
	return collectUsers(rows)
}

// collectUsers scans (id, name, email) rows into user suggestions
func collectUsers(rows *sql.Rows) ([]*models.UserSuggestion, error) {
	defer func() {
		if err := rows.Close(); err != nil {
			log.Error().Err(err).Msg("Failed to close rows")
		}
	}()

	users := make([]*models.UserSuggestion, 0)
	for rows.Next() {
		user := &models.UserSuggestion{}
		if err := rows.Scan(&user.ID, &user.Name, &user.Email); err != nil {
			return nil, fmt.Errorf("failed to scan user row: %w", err)
		}
		users = append(users, user)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating user rows: %w", err)
	}

	return users, nil
}
