// Package constants provides shared constant values used throughout the application.
//
// The general_const.go file defines general-purpose constants related to user
// roles and content limits. These constants keep validation rules and domain
// vocabulary consistent between handlers, services, and migrations.
package constants

// User Roles define the recognized account roles.
// Every account carries exactly one role; new accounts default to subscriber.
const (
	// RoleSubscriber is the default role assigned to new accounts.
	RoleSubscriber = "subscriber"

	// RoleAdmin grants moderation rights over other users' content.
	RoleAdmin = "admin"
)

// Content Limits define the allowed sizes for user-generated text.
// These bounds are enforced by request validation and mirrored in the schema.
const (
	// MinPostTitleLength is the minimum number of characters in a post title.
	MinPostTitleLength = 4

	// MaxPostTitleLength is the maximum number of characters in a post title.
	MaxPostTitleLength = 150

	// MinPostBodyLength is the minimum number of characters in a post body.
	MinPostBodyLength = 4

	// MaxPostBodyLength is the maximum number of characters in a post body.
	MaxPostBodyLength = 2000

	// MaxCommentLength is the maximum number of characters in a comment.
	MaxCommentLength = 300

	// MaxAboutLength is the maximum number of characters in a profile's about text.
	MaxAboutLength = 500
)
