package models

import (
	"database/sql"
	"time"
)

// Problem represents a row of the problems table. Tag columns are JSON
// text handled by StringSlice; free-text columns that may be absent use
// sql.Null* so partial rows scan cleanly.
type Problem struct {
	ID            int64          `db:"ID"`             // Sequence-assigned numeric ID
	OwnerID       sql.NullInt64  `db:"OWNER_ID"`       // NULL for legacy ownerless rows
	SourceType    string         `db:"SOURCE_TYPE"`    // text, image or latex
	Raw           sql.NullString `db:"RAW_CONTENT"`    // Raw text, or FILE:<name> marker for uploads; RAW is an Oracle reserved word
	FileContent   sql.NullString `db:"FILE_CONTENT"`   // Base64 payload of an uploaded file
	Parsed        sql.NullString `db:"PARSED"`         // Normalized problem statement
	Subject       sql.NullString `db:"SUBJECT"`        // e.g. math, physics
	Course        sql.NullString `db:"COURSE"`         // Course or textbook the problem is from
	ProblemType   sql.NullString `db:"PROBLEM_TYPE"`   // e.g. proof, calculation
	KnowledgeTags StringSlice    `db:"KNOWLEDGE_TAGS"` // JSON array of knowledge point tags
	Difficulty    sql.NullInt64  `db:"DIFFICULTY"`     // Optional 1-5 rating
	IsBookmarked  bool           `db:"IS_BOOKMARKED"`  // User bookmark flag
	Tags          StringSlice    `db:"TAGS"`           // JSON array of free-form tags
	Notes         sql.NullString `db:"NOTES"`          // User notes
	CreatedAt     time.Time      `db:"CREATED_AT"`     // Timestamp of upload
	UpdatedAt     time.Time      `db:"UPDATED_AT"`     // Timestamp of last update
}
