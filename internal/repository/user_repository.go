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

// UserRepository defines methods for interacting with user data
type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, id int64) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	List(ctx context.Context, page, pageSize int) ([]*models.User, int, error)
	Update(ctx context.Context, user *models.User) error
	Delete(ctx context.Context, id int64) error
	ChangePassword(ctx context.Context, id int64, passwordHash, salt string) error
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	UpsertSocialUser(ctx context.Context, name, email string) (*models.User, bool, error)
	SetResetTokenHash(ctx context.Context, id int64, tokenHash string) error
	RedeemResetToken(ctx context.Context, tokenHash, passwordHash, salt string) error
	GetPhoto(ctx context.Context, id int64) ([]byte, string, error)
	UpdatePhoto(ctx context.Context, id int64, photo []byte, contentType string) error
}

// PostgresUserRepository is a PostgreSQL implementation of UserRepository
type PostgresUserRepository struct {
	db *database.Pool
}

// NewUserRepository creates a new UserRepository
func NewUserRepository(db *database.Pool) UserRepository {
	return &PostgresUserRepository{
		db: db,
	}
}

// userColumns lists the profile columns selected by read queries.
// Photo bytes are excluded and loaded through GetPhoto only.
const userColumns = "id, name, email, role, about, password_hash, salt, reset_token_hash, created_at, updated_at"

// scanUser scans a user row into a model, mapping nullable columns.
func scanUser(scan func(dest ...interface{}) error) (*models.User, error) {
	user := &models.User{}
	var about, resetTokenHash sql.NullString
	err := scan(
		&user.ID,
		&user.Name,
		&user.Email,
		&user.Role,
		&about,
		&user.PasswordHash,
		&user.Salt,
		&resetTokenHash,
		&user.CreatedAt,
		&user.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	user.About = about.String
	user.ResetTokenHash = resetTokenHash.String
	return user, nil
}

// Create adds a new user to the database
func (r *PostgresUserRepository) Create(ctx context.Context, user *models.User) error {
	// Start query timer
	startTime := time.Now()

	// Set created/updated timestamps
	now := time.Now()
	user.CreatedAt = now
	user.UpdatedAt = now

	if user.Role == "" {
		user.Role = constants.RoleSubscriber
	}

	// Define the query with RETURNING for PostgreSQL
	query := `
        INSERT INTO users (name, email, role, about, password_hash, salt, created_at, updated_at)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
        RETURNING id
    `

	// Execute the query
	err := r.db.QueryRowContext(
		ctx,
		query,
		user.Name,
		user.Email,
		user.Role,
		user.About,
		user.PasswordHash,
		user.Salt,
		user.CreatedAt,
		user.UpdatedAt,
	).Scan(&user.ID)

	// Log the query execution
	utils.LogDBQuery(
		query,
		[]interface{}{user.Name, user.Email, user.Role, user.About, "[REDACTED]", "[REDACTED]", user.CreatedAt, user.UpdatedAt},
		time.Since(startTime),
		err,
	)

	if err != nil {
		// Check for unique constraint violations using PostgreSQL error handling
		if pqErr, ok := err.(*pq.Error); ok {
			if pqErr.Code == constants.PGErrorDuplicateConstraint {
				return utils.NewDuplicateError("User", "email", user.Email)
			}
		}
		return fmt.Errorf("failed to create user: %w", err)
	}

	log.Info().
		Int64("user_id", user.ID).
		Str("email", user.Email).
		Msg("User created")

	return nil
}

// GetByID retrieves a user by ID
func (r *PostgresUserRepository) GetByID(ctx context.Context, id int64) (*models.User, error) {
	// Start query timer
	startTime := time.Now()

	// Define the query
	query := `
        SELECT ` + userColumns + `
        FROM users
        WHERE id = $1
    `

	// Execute the query
	row := r.db.QueryRowContext(ctx, query, id)
	user, err := scanUser(row.Scan)

	// Log the query execution
	utils.LogDBQuery(
		query,
		[]interface{}{id},
		time.Since(startTime),
		err,
	)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, utils.NewNotFoundError("User", id)
		}
		return nil, fmt.Errorf("failed to get user by ID: %w", err)
	}

	return user, nil
}

// GetByEmail retrieves a user by email
func (r *PostgresUserRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	// Start query timer
	startTime := time.Now()

	// Define the query with case-insensitive comparison for PostgreSQL
	query := `
        SELECT ` + userColumns + `
        FROM users
        WHERE LOWER(email) = LOWER($1)
    `

	// Execute the query
	row := r.db.QueryRowContext(ctx, query, email)
	user, err := scanUser(row.Scan)

	// Log the query execution
	utils.LogDBQuery(
		query,
		[]interface{}{email},
		time.Since(startTime),
		err,
	)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, utils.NewNotFoundError("User", fmt.Sprintf("email=%s", email))
		}
		return nil, fmt.Errorf("failed to get user by email: %w", err)
	}

	return user, nil
}

// List retrieves a page of users ordered by newest first.
// It returns the users and the total number of users.
func (r *PostgresUserRepository) List(ctx context.Context, page, pageSize int) ([]*models.User, int, error) {
	// Start query timer
	startTime := time.Now()

	// Get the total count first
	var total int
	countQuery := `SELECT COUNT(*) FROM users`
	if err := r.db.QueryRowContext(ctx, countQuery).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count users: %w", err)
	}

	// Define the paged query
	query := `
        SELECT ` + userColumns + `
        FROM users
        ORDER BY created_at DESC
        LIMIT $1 OFFSET $2
    `

	offset := (page - 1) * pageSize
	rows, err := r.db.QueryContext(ctx, query, pageSize, offset)

	// Log the query execution
	utils.LogDBQuery(
		query,
		[]interface{}{pageSize, offset},
		time.Since(startTime),
		err,
	)

	if err != nil {
		return nil, 0, fmt.Errorf("failed to list users: %w", err)
	}
	defer func() {
		if err := rows.Close(); err != nil {
			log.Error().Err(err).Msg("Failed to close rows")
		}
	}()

	users := make([]*models.User, 0, pageSize)
	for rows.Next() {
		user, err := scanUser(rows.Scan)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan user row: %w", err)
		}
		users = append(users, user)
	}

	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("error iterating user rows: %w", err)
	}

	return users, total, nil
}

// Update updates a user's profile fields in the database
func (r *PostgresUserRepository) Update(ctx context.Context, user *models.User) error {
	// Start query timer
	startTime := time.Now()

	// Update the updated_at timestamp
	user.UpdatedAt = time.Now()

	// Define the query
	query := `
        UPDATE users
        SET name = $1, email = $2, about = $3, updated_at = $4
        WHERE id = $5
    `

	// Execute the query
	result, err := r.db.ExecContext(
		ctx,
		query,
		user.Name,
		user.Email,
		user.About,
		user.UpdatedAt,
		user.ID,
	)

	// Log the query execution
	utils.LogDBQuery(
		query,
		[]interface{}{user.Name, user.Email, user.About, user.UpdatedAt, user.ID},
		time.Since(startTime),
		err,
	)

	if err != nil {
		// Check for unique constraint violations using PostgreSQL error handling
		if pqErr, ok := err.(*pq.Error); ok {
			if pqErr.Code == constants.PGErrorDuplicateConstraint {
				return utils.NewDuplicateError("User", "email", user.Email)
			}
		}
		return fmt.Errorf("failed to update user: %w", err)
	}

	// Check if any rows were affected
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return utils.NewNotFoundError("User", user.ID)
	}

	log.Info().
		Int64("user_id", user.ID).
		Str("email", user.Email).
		Msg("User updated")

	return nil
}

// Delete removes a user from the database.
// Posts, likes, comments and follow edges are removed by foreign key cascades.
func (r *PostgresUserRepository) Delete(ctx context.Context, id int64) error {
	// Start query timer
	startTime := time.Now()

	query := "DELETE FROM users WHERE id = $1"
	result, err := r.db.ExecContext(ctx, query, id)

	// Log the query execution
	utils.LogDBQuery(
		query,
		[]interface{}{id},
		time.Since(startTime),
		err,
	)

	if err != nil {
		return fmt.Errorf("failed to delete user: %w", err)
	}

	// Check if any rows were affected
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return utils.NewNotFoundError("User", id)
	}

	log.Info().
		Int64("user_id", id).
		Msg("User deleted")

	return nil
}

// ChangePassword updates a user's password
func (r *PostgresUserRepository) ChangePassword(ctx context.Context, id int64, passwordHash, salt string) error {
	// Start query timer
	startTime := time.Now()

	// Define the query
	query := `
        UPDATE users
        SET password_hash = $1, salt = $2, updated_at = $3
        WHERE id = $4
    `

	// Execute the query
	now := time.Now()
	result, err := r.db.ExecContext(
		ctx,
		query,
		passwordHash,
		salt,
		now,
		id,
	)

	// Log the query execution (without sensitive data)
	utils.LogDBQuery(
		query,
		[]interface{}{"[REDACTED]", "[REDACTED]", now, id},
		time.Since(startTime),
		err,
	)

	if err != nil {
		return fmt.Errorf("failed to update password: %w", err)
	}

	// Check if any rows were affected
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return utils.NewNotFoundError("User", id)
	}

	log.Info().
		Int64("user_id", id).
		Msg("User password changed")

	return nil
}

// ExistsByEmail checks if a user with the given email exists
func (r *PostgresUserRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	// Start query timer
	startTime := time.Now()

	// Define the query for PostgreSQL
	query := `SELECT EXISTS(SELECT 1 FROM users WHERE LOWER(email) = LOWER($1))`

	// Execute the query
	var exists bool
	err := r.db.QueryRowContext(ctx, query, email).Scan(&exists)

	// Log the query execution
	utils.LogDBQuery(
		query,
		[]interface{}{email},
		time.Since(startTime),
		err,
	)

	if err != nil {
		return false, fmt.Errorf("failed to check if email exists: %w", err)
	}

	return exists, nil
}

// UpsertSocialUser inserts or updates a user record keyed on email in a
// single statement. It returns the resulting user and whether a new
// account was created. xmax is zero only for freshly inserted rows, which
// distinguishes the insert and update arms of the upsert.
func (r *PostgresUserRepository) UpsertSocialUser(ctx context.Context, name, email string) (*models.User, bool, error) {
	// Start query timer
	startTime := time.Now()

	query := `
        INSERT INTO users (name, email, role, about, password_hash, salt, created_at, updated_at)
        VALUES ($1, $2, $3, '', '', '', $4, $4)
        ON CONFLICT (email) DO UPDATE
        SET updated_at = EXCLUDED.updated_at
        RETURNING ` + userColumns + `, (xmax = 0) AS created
    `

	now := time.Now()
	user := &models.User{}
	var about, resetTokenHash sql.NullString
	var created bool
	err := r.db.QueryRowContext(ctx, query, name, email, constants.RoleSubscriber, now).Scan(
		&user.ID,
		&user.Name,
		&user.Email,
		&user.Role,
		&about,
		&user.PasswordHash,
		&user.Salt,
		&resetTokenHash,
		&user.CreatedAt,
		&user.UpdatedAt,
		&created,
	)

	// Log the query execution
	utils.LogDBQuery(
		query,
		[]interface{}{name, email, constants.RoleSubscriber, now},
		time.Since(startTime),
		err,
	)

	if err != nil {
		return nil, false, fmt.Errorf("failed to upsert social user: %w", err)
	}
	user.About = about.String
	user.ResetTokenHash = resetTokenHash.String

	log.Info().
		Int64("user_id", user.ID).
		Str("email", user.Email).
		Bool("created", created).
		Msg("Social user upserted")

	return user, created, nil
}

// SetResetTokenHash stores the hash of an outstanding reset token on the
// user's account, replacing any previous one.
func (r *PostgresUserRepository) SetResetTokenHash(ctx context.Context, id int64, tokenHash string) error {
	// Start query timer
	startTime := time.Now()

	query := `
        UPDATE users
        SET reset_token_hash = $1, updated_at = $2
        WHERE id = $3
    `

	now := time.Now()
	result, err := r.db.ExecContext(ctx, query, tokenHash, now, id)

	// Log the query execution (without sensitive data)
	utils.LogDBQuery(
		query,
		[]interface{}{"[REDACTED]", now, id},
		time.Since(startTime),
		err,
	)

	if err != nil {
		return fmt.Errorf("failed to set reset token: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return utils.NewNotFoundError("User", id)
	}

	return nil
}

// RedeemResetToken atomically consumes a reset token: the password is
// updated and the stored token hash cleared in one statement guarded by a
// compare on the hash. A token that was never issued or was already
// redeemed matches no row, so a second redemption can never succeed.
func (r *PostgresUserRepository) RedeemResetToken(ctx context.Context, tokenHash, passwordHash, salt string) error {
	// Start query timer
	startTime := time.Now()

	query := `
        UPDATE users
        SET password_hash = $1, salt = $2, reset_token_hash = NULL, updated_at = $3
        WHERE reset_token_hash = $4
    `

	now := time.Now()
	result, err := r.db.ExecContext(ctx, query, passwordHash, salt, now, tokenHash)

	// Log the query execution (without sensitive data)
	utils.LogDBQuery(
		query,
		[]interface{}{"[REDACTED]", "[REDACTED]", now, "[REDACTED]"},
		time.Since(startTime),
		err,
	)

	if err != nil {
		return fmt.Errorf("failed to redeem reset token: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return utils.NewInvalidResetTokenError()
	}

	log.Info().
		Msg("Password reset token redeemed")

	return nil
}

// GetPhoto retrieves a user's photo bytes and content type
func (r *PostgresUserRepository) GetPhoto(ctx context.Context, id int64) ([]byte, string, error) {
	// Start query timer
	startTime := time.Now()

	query := `
        SELECT photo, photo_content_type
        FROM users
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
			return nil, "", utils.NewNotFoundError("User", id)
		}
		return nil, "", fmt.Errorf("failed to get user photo: %w", err)
	}

	if len(photo) == 0 {
		return nil, "", utils.NewNotFoundError("UserPhoto", id)
	}

	return photo, contentType.String, nil
}

// UpdatePhoto stores a user's photo bytes and content type
func (r *PostgresUserRepository) UpdatePhoto(ctx context.Context, id int64, photo []byte, contentType string) error {
	// Start query timer
	startTime := time.Now()

	query := `
        UPDATE users
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
		return fmt.Errorf("failed to update user photo: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return utils.NewNotFoundError("User", id)
	}

	log.Info().
		Int64("user_id", id).
		Str("content_type", contentType).
		Int("size", len(photo)).
		Msg("User photo updated")

	return nil
}
