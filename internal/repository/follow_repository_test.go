package repository_test

import (
	"context"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/openfeed/openfeed-backend/internal/database"
	"github.com/openfeed/openfeed-backend/internal/repository"
	"github.com/openfeed/openfeed-backend/internal/utils"
)

// setupFollowRepositoryTest creates a new test database connection and mock
func setupFollowRepositoryTest(t *testing.T) (*repository.PostgresFollowRepository, sqlmock.Sqlmock, func()) {
	// Create a new SQL mock database
	db, mock, err := sqlmock.New()
	require.NoError(t, err)

	// Create a database pool with the mock database
	dbPool := &database.Pool{DB: db}

	// Create a new repository with the mocked database
	repo := repository.NewFollowRepository(dbPool).(*repository.PostgresFollowRepository)

	// Return the repository, mock and a cleanup function
	return repo, mock, func() {
		db.Close()
	}
}

func TestFollowRepository_Follow(t *testing.T) {
	// Set up the test
	repo, mock, cleanup := setupFollowRepositoryTest(t)
	defer cleanup()

	mock.ExpectExec("INSERT INTO follows").
		WithArgs(int64(1), int64(2), sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))

	// Execute the method being tested
	err := repo.Follow(context.Background(), 1, 2)

	// Assert the results
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestFollowRepository_Follow_Duplicate(t *testing.T) {
	// Set up the test
	repo, mock, cleanup := setupFollowRepositoryTest(t)
	defer cleanup()

	// Following the same user twice violates the composite primary key
	pqErr := &pq.Error{
		Code:       "23505",
		Constraint: "follows_pkey",
	}
	mock.ExpectExec("INSERT INTO follows").
		WithArgs(int64(1), int64(2), sqlmock.AnyArg()).
		WillReturnError(pqErr)

	// Execute the method being tested
	err := repo.Follow(context.Background(), 1, 2)

	// Assert the results
	assert.Error(t, err)
	assert.True(t, utils.IsDuplicateError(err))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestFollowRepository_Follow_Self(t *testing.T) {
	// Set up the test
	repo, mock, cleanup := setupFollowRepositoryTest(t)
	defer cleanup()

	// A self-follow violates the table check constraint
	pqErr := &pq.Error{
		Code:       "23514",
		Constraint: "follows_no_self_follow",
	}
	mock.ExpectExec("INSERT INTO follows").
		WithArgs(int64(1), int64(1), sqlmock.AnyArg()).
		WillReturnError(pqErr)

	// Execute the method being tested
	err := repo.Follow(context.Background(), 1, 1)

	// Assert the results
	assert.Error(t, err)

	var appErr *utils.AppError
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, 400, appErr.StatusCode)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestFollowRepository_Unfollow_NoOp(t *testing.T) {
	// Set up the test
	repo, mock, cleanup := setupFollowRepositoryTest(t)
	defer cleanup()

	// Removing an edge that does not exist affects no rows and succeeds
	mock.ExpectExec("DELETE FROM follows").
		WithArgs(int64(1), int64(2)).
		WillReturnResult(sqlmock.NewResult(0, 0))

	// Execute the method being tested
	err := repo.Unfollow(context.Background(), 1, 2)

	// Assert the results
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestFollowRepository_IsFollowing(t *testing.T) {
	// Set up the test
	repo, mock, cleanup := setupFollowRepositoryTest(t)
	defer cleanup()

	mock.ExpectQuery("SELECT EXISTS").
		WithArgs(int64(1), int64(2)).
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))

	// Execute the method being tested
	following, err := repo.IsFollowing(context.Background(), 1, 2)

	// Assert the results
	assert.NoError(t, err)
	assert.True(t, following)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestFollowRepository_Followers(t *testing.T) {
	// Set up the test
	repo, mock, cleanup := setupFollowRepositoryTest(t)
	defer cleanup()

	rows := sqlmock.NewRows([]string{"id", "name", "email"}).
		AddRow(2, "Second User", "second@example.com").
		AddRow(3, "Third User", "third@example.com")

	mock.ExpectQuery("SELECT (.+) FROM follows").
		WithArgs(int64(1)).
		WillReturnRows(rows)

	// Execute the method being tested
	followers, err := repo.Followers(context.Background(), 1)

	// Assert the results
	assert.NoError(t, err)
	require.Len(t, followers, 2)
	assert.Equal(t, "Second User", followers[0].Name)
	assert.Equal(t, int64(3), followers[1].ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestFollowRepository_Following(t *testing.T) {
	// Set up the test
	repo, mock, cleanup := setupFollowRepositoryTest(t)
	defer cleanup()

	rows := sqlmock.NewRows([]string{"id", "name", "email"}).
		AddRow(4, "Fourth User", "fourth@example.com")

	mock.ExpectQuery("SELECT (.+) FROM follows").
		WithArgs(int64(1)).
		WillReturnRows(rows)

	// Execute the method being tested
	following, err := repo.Following(context.Background(), 1)

	// Assert the results
	assert.NoError(t, err)
	require.Len(t, following, 1)
	assert.Equal(t, "Fourth User", following[0].Name)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestFollowRepository_Suggestions(t *testing.T) {
	// Set up the test
	repo, mock, cleanup := setupFollowRepositoryTest(t)
	defer cleanup()

	rows := sqlmock.NewRows([]string{"id", "name", "email"}).
		AddRow(5, "New User", "new@example.com")

	mock.ExpectQuery("SELECT (.+) FROM users").
		WithArgs(int64(1), 10).
		WillReturnRows(rows)

	// Execute the method being tested
	suggestions, err := repo.Suggestions(context.Background(), 1, 10)

	// Assert the results
	assert.NoError(t, err)
	require.Len(t, suggestions, 1)
	assert.Equal(t, "New User", suggestions[0].Name)
	assert.NoError(t, mock.ExpectationsWereMet())
}
