package models

import (
	"database/sql"
	"time"
)

// User represents a row of the users table.
type User struct {
	ID             int64          `db:"ID"`              // Sequence-assigned numeric ID
	UUID           string         `db:"UUID"`            // Stable external identifier
	Username       string         `db:"USERNAME"`        // Unique login name
	HashedPassword string         `db:"HASHED_PASSWORD"` // Salted PBKDF2 digest in modular crypt format
	Nickname       sql.NullString `db:"NICKNAME"`        // Optional display name
	IsActive       bool           `db:"IS_ACTIVE"`       // Cleared when an admin bans the account
	IsAdmin        bool           `db:"IS_ADMIN"`        // Grants access to /admin routes
	CreatedAt      time.Time      `db:"CREATED_AT"`      // Timestamp of registration
}

// Attempt represents a user's recorded attempt at a problem.
type Attempt struct {
	ID          int64           `db:"ID"`           // Sequence-assigned numeric ID
	UserID      int64           `db:"USER_ID"`      // Foreign key to users table
	ProblemID   int64           `db:"PROBLEM_ID"`   // Foreign key to problems table
	Correct     sql.NullBool    `db:"CORRECT"`      // NULL until the attempt is graded
	Score       sql.NullFloat64 `db:"SCORE"`        // Optional numeric grade
	SubmittedAt time.Time       `db:"SUBMITTED_AT"` // Timestamp of submission
}

// TopicMastery represents one topic's mastery estimate for a user.
type TopicMastery struct {
	ID      int64   `db:"ID"`      // Sequence-assigned numeric ID
	UserID  int64   `db:"USER_ID"` // Foreign key to users table
	Topic   string  `db:"TOPIC"`   // Knowledge tag the estimate applies to
	Mastery float64 `db:"MASTERY"` // Estimate in [0, 1]
}
