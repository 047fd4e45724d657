// Package constants provides shared constant values used throughout the application.
//
// The database_const.go file defines constants related to database structures,
// including table names, column names, and schema references. These constants
// ensure consistent and correct database access patterns throughout the application,
// reducing the risk of SQL errors and simplifying database schema changes.
package constants

// Table Names define the names of database tables used in the application.
// Using these constants instead of string literals ensures consistency
// and makes database schema changes easier to implement.
const (
	// TableUsers is the name of the table storing user account information.
	TableUsers = "users"

	// TableFollows is the name of the table storing follower relationships.
	TableFollows = "follows"

	// TablePosts is the name of the table storing posts.
	TablePosts = "posts"

	// TablePostLikes is the name of the table storing post likes.
	TablePostLikes = "post_likes"

	// TableComments is the name of the table storing post comments.
	TableComments = "comments"
)

// Common Column Names define frequently used database column names.
// These constants ensure consistent column name usage in SQL queries.
const (
	// ColumnID is the generic primary key column name.
	ColumnID = "id"

	// ColumnUserID is the column name for user identifier foreign keys.
	ColumnUserID = "user_id"

	// ColumnPostID is the column name for post identifier foreign keys.
	ColumnPostID = "post_id"

	// ColumnAuthorID is the column name for content author foreign keys.
	ColumnAuthorID = "author_id"

	// ColumnFollowerID is the column name for the following side of a follow edge.
	ColumnFollowerID = "follower_id"

	// ColumnFolloweeID is the column name for the followed side of a follow edge.
	ColumnFolloweeID = "followee_id"

	// ColumnCreatedAt is the column name for creation timestamps.
	ColumnCreatedAt = "created_at"

	// ColumnUpdatedAt is the column name for modification timestamps.
	ColumnUpdatedAt = "updated_at"

	// ColumnName is the column name for user display names.
	ColumnName = "name"

	// ColumnEmail is the column name for user email addresses.
	ColumnEmail = "email"

	// ColumnRole is the column name for user roles.
	ColumnRole = "role"

	// ColumnPasswordHash is the column name for hashed passwords.
	ColumnPasswordHash = "password_hash"

	// ColumnSalt is the column name for password salt values.
	ColumnSalt = "salt"

	// ColumnResetTokenHash is the column name for outstanding password reset token hashes.
	ColumnResetTokenHash = "reset_token_hash"

	// ColumnPhoto is the column name for stored photo bytes.
	ColumnPhoto = "photo"

	// ColumnPhotoContentType is the column name for stored photo media types.
	ColumnPhotoContentType = "photo_content_type"

	// ColumnTitle is the column name for post titles.
	ColumnTitle = "title"

	// ColumnBody is the column name for post bodies.
	ColumnBody = "body"

	// ColumnText is the column name for comment text.
	ColumnText = "text"
)

// Database Schema Names define the names of database schemas.
// These constants are used when querying database metadata.
const (
	// SchemaInformation is the name of the PostgreSQL information schema.
	SchemaInformation = "information_schema"
)

// PostgreSQL SSL connection string parameters
const (
	PostgresSSLParams  = "sslmode=verify-ca sslrootcert=internal/database/certs/server-ca.pem sslcert=internal/database/certs/client-cert.pem sslkey=internal/database/certs/client-key.pem connect_timeout=15"
	PostgresSSLDisable = "sslmode=disable connect_timeout=15"
)
