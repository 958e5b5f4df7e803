package domain

import (
	"context"
	"time"
)

// User represents a registered account.
type User struct {
	ID             int64
	UUID           string
	Username       string
	HashedPassword string
	Nickname       string
	IsActive       bool
	IsAdmin        bool
	CreatedAt      time.Time
}

// Attempt links a user and a problem with a grading outcome.
// No operation writes or reads attempts yet; the entity exists so the
// schema can accumulate history for future mastery computation.
type Attempt struct {
	ID          int64
	UserID      int64
	ProblemID   int64
	Correct     *bool
	Score       *float64
	SubmittedAt time.Time
}

// TopicMastery is a per-(user, topic) mastery score in [0.0, 1.0].
type TopicMastery struct {
	ID      int64
	UserID  int64
	Topic   string
	Mastery float64
}

// UserRepository defines the interface for user data persistence.
// Lookups return (nil, nil) when no row matches.
type UserRepository interface {
	CreateUser(ctx context.Context, user *User) error
	GetUserByUsername(ctx context.Context, username string) (*User, error)
	GetUserByID(ctx context.Context, userID int64) (*User, error)
	ListUsers(ctx context.Context, offset, limit int) ([]User, error)
	SetUserActive(ctx context.Context, userID int64, active bool) (*User, error)
}

// MasteryRepository defines the read-only interface for mastery rows.
type MasteryRepository interface {
	GetMasteryByUserID(ctx context.Context, userID int64) ([]TopicMastery, error)
}
