package models

import (
	"time"
)

// Follow represents a directed follower relationship between two users.
// The pair of IDs forms the primary key; a user can never follow themselves.
type Follow struct {
	FollowerID int64     `json:"follower_id" db:"follower_id"`
	FolloweeID int64     `json:"followee_id" db:"followee_id"`
	CreatedAt  time.Time `json:"created_at" db:"created_at"`
}

// NewFollow creates a new Follow edge from follower to followee.
func NewFollow(followerID, followeeID int64) *Follow {
	return &Follow{
		FollowerID: followerID,
		FolloweeID: followeeID,
		CreatedAt:  time.Now(),
	}
}

// TableName returns the database table name for the Follow model.
func (f *Follow) TableName() string {
	return "follows"
}

// FollowRequest identifies the user to follow or unfollow.
type FollowRequest struct {
	UserID int64 `json:"user_id" validate:"required,gt=0"`
}
