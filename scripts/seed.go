// Package scripts provides utility scripts for database and system management.
//
// This package implements database seeding functionality to populate initial data
// required for the application to function properly. The seeding system works
// similarly to migrations, tracking executed seeds to ensure they only run once,
// making the process idempotent and safe to run on both new and existing databases.
package scripts

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/openfeed/openfeed-backend/internal/auth"
	"github.com/openfeed/openfeed-backend/internal/constants"
	"github.com/openfeed/openfeed-backend/internal/database"
)

// Seeder handles database seeding.
// It provides methods to run seeds that populate the database
// with initial required data.
type Seeder struct {
	db *database.Pool
}

// NewSeeder creates a new seeder.
//
// Parameters:
//   - db: A database connection pool to use for seeding
//
// Returns:
//   - *Seeder: A configured seeder
func NewSeeder(db *database.Pool) *Seeder {
	return &Seeder{
		db: db,
	}
}

// SeedDatabase seeds the database with initial data.
// It creates the seeds tracking table if it doesn't exist, then runs
// all seed functions that haven't been executed yet.
//
// Parameters:
//   - ctx: Context for database operations and cancellation
//
// Returns:
//   - error: Any error encountered during seeding, nil if successful
func (s *Seeder) SeedDatabase(ctx context.Context) error {
	log.Info().Msg("Seeding database")
	startTime := time.Now()

	// Create seeds table if it doesn't exist
	if err := s.createSeedsTable(ctx); err != nil {
		return fmt.Errorf("failed to create seeds table: %w", err)
	}

	// Get executed seeds
	executedSeeds, err := s.getExecutedSeeds(ctx)
	if err != nil {
		return fmt.Errorf("failed to get executed seeds: %w", err)
	}

	// Run seeds that haven't been executed yet
	seeds := []struct {
		Name     string
		SeedFunc func(ctx context.Context, tx *sql.Tx) error
	}{
		{"admin_user", s.seedAdminUser},
		// Add more seeds here if needed
	}

	for _, seed := range seeds {
		if !executedSeeds[seed.Name] {
			log.Info().Str("seed", seed.Name).Msg("Running seed")
			if err := s.runSeed(ctx, seed.Name, seed.SeedFunc); err != nil {
				return err
			}
		} else {
			log.Debug().Str("seed", seed.Name).Msg("Seed already executed")
		}
	}

	log.Info().
		Dur("duration", time.Since(startTime)).
		Msg("Database seeding completed")

	return nil
}

// createSeedsTable creates the seeds table if it doesn't exist.
// This table tracks which seed operations have been executed.
//
// Parameters:
//   - ctx: Context for database operations and cancellation
//
// Returns:
//   - error: Any error encountered during table creation, nil if successful
func (s *Seeder) createSeedsTable(ctx context.Context) error {
	query := `
		DROP TABLE IF EXISTS seeds;
		CREATE TABLE  seeds (
			name VARCHAR(255) PRIMARY KEY,
			executed_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
		)
	`
	_, err := s.db.ExecContext(ctx, query)
	return err
}

// getExecutedSeeds returns a map of executed seeds.
// The map keys are seed names and values are always true.
//
// Parameters:
//   - ctx: Context for database operations and cancellation
//
// Returns:
//   - map[string]bool: A map containing names of executed seeds
//   - error: Any error encountered while retrieving seeds, nil if successful
func (s *Seeder) getExecutedSeeds(ctx context.Context) (map[string]bool, error) {
	query := `SELECT name FROM seeds`
	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer func() {
		if closeErr := rows.Close(); closeErr != nil {
			log.Error().Err(closeErr).Msg("failed to close rows")
		}
	}()

	seeds := make(map[string]bool)
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, err
		}
		seeds[name] = true
	}

	return seeds, rows.Err()
}

// runSeed runs a seed function within a transaction.
// If the seed operation fails, the transaction is rolled back.
//
// Parameters:
//   - ctx: Context for database operations and cancellation
//   - name: The name of the seed operation
//   - seedFunc: The function that performs the seeding
//
// Returns:
//   - error: Any error encountered during seeding, nil if successful
func (s *Seeder) runSeed(ctx context.Context, name string, seedFunc func(ctx context.Context, tx *sql.Tx) error) error {
	return s.db.Transaction(ctx, func(tx *sql.Tx) error {
		// Run the seed
		if err := seedFunc(ctx, tx); err != nil {
			return fmt.Errorf("seed %s failed: %w", name, err)
		}

		// Record the seed
		query := `INSERT INTO seeds (name) VALUES ($1)` // PostgreSQL syntax
		_, err := tx.ExecContext(ctx, query, name)
		if err != nil {
			return fmt.Errorf("failed to record seed: %w", err)
		}

		return nil
	})
}

// seedAdminUser creates the initial admin account if no admin exists yet.
// The admin credentials come from the ADMIN_EMAIL and ADMIN_PASSWORD
// environment variables. When ADMIN_PASSWORD is unset the seed is skipped,
// so production deployments never end up with a well-known default login.
//
// Parameters:
//   - ctx: Context for database operations and cancellation
//   - tx: The SQL transaction to use for the operation
//
// Returns:
//   - error: Any error encountered during seeding, nil if successful
func (s *Seeder) seedAdminUser(ctx context.Context, tx *sql.Tx) error {
	adminPassword := os.Getenv("ADMIN_PASSWORD")
	if adminPassword == "" {
		log.Info().Msg("ADMIN_PASSWORD not set, skipping admin user seed")
		return nil
	}

	adminEmail := os.Getenv("ADMIN_EMAIL")
	if adminEmail == "" {
		adminEmail = "admin@openfeed.example"
	}

	// First, verify if an admin account already exists
	var adminCount int
	countQuery := `SELECT COUNT(*) FROM users WHERE role = $1`
	err := tx.QueryRowContext(ctx, countQuery, constants.RoleAdmin).Scan(&adminCount)
	if err != nil {
		return fmt.Errorf("failed to count admin users: %w", err)
	}

	if adminCount > 0 {
		log.Info().
			Int("existing_admins", adminCount).
			Msg("Admin account already exists, skipping admin user seed")
		return nil
	}

	hash, salt, err := auth.HashPassword(adminPassword, auth.DefaultPasswordConfig())
	if err != nil {
		return fmt.Errorf("failed to hash admin password: %w", err)
	}

	query := `
        INSERT INTO users (name, email, role, password_hash, salt, created_at, updated_at)
        VALUES ($1, $2, $3, $4, $5, $6, $6)
    `
	now := time.Now()
	_, err = tx.ExecContext(ctx, query, "Administrator", adminEmail, constants.RoleAdmin, hash, salt, now)
	if err != nil {
		return fmt.Errorf("failed to insert admin user: %w", err)
	}

	log.Info().
		Str("email", adminEmail).
		Msg("Admin user seeding completed")

	return nil
}
