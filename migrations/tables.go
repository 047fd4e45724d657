package migrations

import (
	"context"
	"database/sql"
)

// createUsersTable creates the users table
func createUsersTable() Migration {
	return Migration{
		Name:        "create_users_table",
		Description: "Creates the users table",
		TableName:   "users",
		RunSQL: func(ctx context.Context, tx *sql.Tx) error {
			query := `
				CREATE TABLE IF NOT EXISTS users (
					id BIGSERIAL PRIMARY KEY,
					name VARCHAR(100) NOT NULL,
					email VARCHAR(255) NOT NULL,
					role VARCHAR(20) NOT NULL DEFAULT 'subscriber',
					about TEXT,
					password_hash VARCHAR(255) NOT NULL,
					salt VARCHAR(255) NOT NULL,
					reset_token_hash VARCHAR(255),
					photo BYTEA,
					photo_content_type VARCHAR(100),
					created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
					updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
					CONSTRAINT idx_email UNIQUE (email)
				)
			`
			_, err := tx.ExecContext(ctx, query)
			return err
		},
	}
}

// createFollowsTable creates the follows table
func createFollowsTable() Migration {
	return Migration{
		Name:        "create_follows_table",
		Description: "Creates the follows table",
		TableName:   "follows",
		RunSQL: func(ctx context.Context, tx *sql.Tx) error {
			query := `
				CREATE TABLE IF NOT EXISTS follows (
					follower_id BIGINT NOT NULL,
					followee_id BIGINT NOT NULL,
					created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
					PRIMARY KEY (follower_id, followee_id),
					CONSTRAINT fk_follower FOREIGN KEY (follower_id) REFERENCES users(id) ON DELETE CASCADE,
					CONSTRAINT fk_followee FOREIGN KEY (followee_id) REFERENCES users(id) ON DELETE CASCADE,
					CONSTRAINT follows_no_self_follow CHECK (follower_id <> followee_id)
				);
				CREATE INDEX IF NOT EXISTS idx_follows_followee_id ON follows(followee_id);
			`
			_, err := tx.ExecContext(ctx, query)
			return err
		},
	}
}

// createPostsTable creates the posts table
func createPostsTable() Migration {
	return Migration{
		Name:        "create_posts_table",
		Description: "Creates the posts table",
		TableName:   "posts",
		RunSQL: func(ctx context.Context, tx *sql.Tx) error {
			query := `
				CREATE TABLE IF NOT EXISTS posts (
					id BIGSERIAL PRIMARY KEY,
					author_id BIGINT NOT NULL,
					title VARCHAR(150) NOT NULL,
					body TEXT NOT NULL,
					photo BYTEA,
					photo_content_type VARCHAR(100),
					created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
					updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
					CONSTRAINT fk_author FOREIGN KEY (author_id) REFERENCES users(id) ON DELETE CASCADE
				);
				CREATE INDEX IF NOT EXISTS idx_posts_author_id ON posts(author_id);
				CREATE INDEX IF NOT EXISTS idx_posts_created_at ON posts(created_at);
			`
			_, err := tx.ExecContext(ctx, query)
			return err
		},
	}
}

// createPostLikesTable creates the post_likes table
func createPostLikesTable() Migration {
	return Migration{
		Name:        "create_post_likes_table",
		Description: "Creates the post_likes table",
		TableName:   "post_likes",
		RunSQL: func(ctx context.Context, tx *sql.Tx) error {
			query := `
				CREATE TABLE IF NOT EXISTS post_likes (
					post_id BIGINT NOT NULL,
					user_id BIGINT NOT NULL,
					created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
					PRIMARY KEY (post_id, user_id),
					CONSTRAINT fk_post FOREIGN KEY (post_id) REFERENCES posts(id) ON DELETE CASCADE,
					CONSTRAINT fk_user FOREIGN KEY (user_id) REFERENCES users(id) ON DELETE CASCADE
				);
				CREATE INDEX IF NOT EXISTS idx_post_likes_user_id ON post_likes(user_id);
			`
			_, err := tx.ExecContext(ctx, query)
			return err
		},
	}
}

// createCommentsTable creates the comments table
func createCommentsTable() Migration {
	return Migration{
		Name:        "create_comments_table",
		Description: "Creates the comments table",
		TableName:   "comments",
		RunSQL: func(ctx context.Context, tx *sql.Tx) error {
			query := `
				CREATE TABLE IF NOT EXISTS comments (
					id BIGSERIAL PRIMARY KEY,
					post_id BIGINT NOT NULL,
					author_id BIGINT NOT NULL,
					text VARCHAR(500) NOT NULL,
					created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
					updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
					CONSTRAINT fk_post FOREIGN KEY (post_id) REFERENCES posts(id) ON DELETE CASCADE,
					CONSTRAINT fk_author FOREIGN KEY (author_id) REFERENCES users(id) ON DELETE CASCADE
				);
				CREATE INDEX IF NOT EXISTS idx_comments_post_id ON comments(post_id);
			`
			_, err := tx.ExecContext(ctx, query)
			return err
		},
	}
}
