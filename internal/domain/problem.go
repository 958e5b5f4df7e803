package domain

import (
	"context"
	"time"
)

// Source types for uploaded problems. The set is open: unknown values are
// stored as-is so new clients can introduce kinds without a schema change.
const (
	SourceTypeText  = "text"
	SourceTypeImage = "image"
	SourceTypeLatex = "latex"
)

// Problem is a study item uploaded by a user (or pre-seeded without an owner).
type Problem struct {
	ID            int64
	OwnerID       *int64 // nil means system-owned
	SourceType    string
	Raw           string // literal text or a "FILE:<name>" marker
	FileContent   string // base64 of the uploaded file, empty otherwise
	Parsed        string // AI-parsed structured form, unpopulated for now
	Subject       string
	Course        string
	ProblemType   string
	KnowledgeTags []string
	Difficulty    *int
	IsBookmarked  bool
	Tags          []string
	Notes         string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// OwnedBy reports whether the problem belongs to the given user.
// Ownerless problems belong to nobody.
func (p *Problem) OwnedBy(userID int64) bool {
	return p.OwnerID != nil && *p.OwnerID == userID
}

// ProblemUpdate carries a partial update. A nil field means "not provided,
// leave untouched"; a non-nil field overwrites the stored value. This keeps
// "omitted" distinct from "set to zero value".
type ProblemUpdate struct {
	Subject       *string
	Course        *string
	ProblemType   *string
	KnowledgeTags *[]string
	Difficulty    *int
	IsBookmarked  *bool
	Tags          *[]string
	Notes         *string
}

// IsEmpty reports whether no field was provided.
func (u *ProblemUpdate) IsEmpty() bool {
	return u.Subject == nil && u.Course == nil && u.ProblemType == nil &&
		u.KnowledgeTags == nil && u.Difficulty == nil && u.IsBookmarked == nil &&
		u.Tags == nil && u.Notes == nil
}

// ProblemFilters narrows an owner-scoped listing. Zero values mean no filter.
type ProblemFilters struct {
	Subject        string
	Course         string
	BookmarkedOnly bool
}

// ProblemRepository defines the interface for problem data persistence.
// Lookups return (nil, nil) when no row matches.
type ProblemRepository interface {
	CreateProblem(ctx context.Context, problem *Problem) error
	GetProblemByID(ctx context.Context, problemID int64) (*Problem, error)
	UpdateProblem(ctx context.Context, problemID int64, update *ProblemUpdate) (*Problem, error)
	ListProblemsByOwner(ctx context.Context, ownerID int64, filters ProblemFilters) ([]Problem, error)
}
