package dto

import (
	"time"

	"study-helper/internal/domain"
)

// ProblemResponse is a stored problem as exposed over HTTP.
type ProblemResponse struct {
	ID            int64     `json:"id"`
	OwnerID       *int64    `json:"owner_id"`
	SourceType    string    `json:"source_type"`
	Raw           string    `json:"raw,omitempty"`
	FileContent   string    `json:"file_content,omitempty"`
	Parsed        string    `json:"parsed,omitempty"`
	Subject       string    `json:"subject,omitempty"`
	Course        string    `json:"course,omitempty"`
	ProblemType   string    `json:"problem_type,omitempty"`
	KnowledgeTags []string  `json:"knowledge_tags"`
	Difficulty    *int      `json:"difficulty"`
	IsBookmarked  bool      `json:"is_bookmarked"`
	Tags          []string  `json:"tags"`
	Notes         string    `json:"notes,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// NewProblemResponse maps a domain problem onto the HTTP shape. Absent tag
// lists are rendered as empty arrays rather than null.
func NewProblemResponse(problem *domain.Problem) *ProblemResponse {
	knowledgeTags := problem.KnowledgeTags
	if knowledgeTags == nil {
		knowledgeTags = []string{}
	}
	tags := problem.Tags
	if tags == nil {
		tags = []string{}
	}
	return &ProblemResponse{
		ID:            problem.ID,
		OwnerID:       problem.OwnerID,
		SourceType:    problem.SourceType,
		Raw:           problem.Raw,
		FileContent:   problem.FileContent,
		Parsed:        problem.Parsed,
		Subject:       problem.Subject,
		Course:        problem.Course,
		ProblemType:   problem.ProblemType,
		KnowledgeTags: knowledgeTags,
		Difficulty:    problem.Difficulty,
		IsBookmarked:  problem.IsBookmarked,
		Tags:          tags,
		Notes:         problem.Notes,
		CreatedAt:     problem.CreatedAt,
		UpdatedAt:     problem.UpdatedAt,
	}
}

// NewProblemListResponse maps a slice of domain problems.
func NewProblemListResponse(problems []domain.Problem) []ProblemResponse {
	out := make([]ProblemResponse, 0, len(problems))
	for i := range problems {
		out = append(out, *NewProblemResponse(&problems[i]))
	}
	return out
}

// ProblemUploadRequest carries the parsed multipart fields of
// POST /problems/upload. Tag fields arrive as JSON array strings.
type ProblemUploadRequest struct {
	Raw           string // literal problem text, empty when a file is sent
	FileName      string // original filename of the upload, if any
	FileBytes     []byte // raw upload bytes, base64-encoded before storage
	SourceType    string // defaults to "text"
	Subject       string
	Course        string
	ProblemType   string
	KnowledgeTags string // JSON array string, e.g. `["derivatives"]`
	Difficulty    string // decimal string, optional
	Tags          string // JSON array string
	Notes         string
}

// ProblemUpdateRequest is the JSON patch body of PATCH /problems/:id.
// nil means the field was omitted and must stay untouched.
type ProblemUpdateRequest struct {
	Subject       *string   `json:"subject"`
	Course        *string   `json:"course"`
	ProblemType   *string   `json:"problem_type"`
	KnowledgeTags *[]string `json:"knowledge_tags"`
	Difficulty    *int      `json:"difficulty"`
	IsBookmarked  *bool     `json:"is_bookmarked"`
	Tags          *[]string `json:"tags"`
	Notes         *string   `json:"notes"`
}

// ToDomain converts the patch body to the domain update struct.
func (r *ProblemUpdateRequest) ToDomain() *domain.ProblemUpdate {
	return &domain.ProblemUpdate{
		Subject:       r.Subject,
		Course:        r.Course,
		ProblemType:   r.ProblemType,
		KnowledgeTags: r.KnowledgeTags,
		Difficulty:    r.Difficulty,
		IsBookmarked:  r.IsBookmarked,
		Tags:          r.Tags,
		Notes:         r.Notes,
	}
}

// ProblemListFilters defines the query parameters of GET /problems.
type ProblemListFilters struct {
	Subject        string `query:"subject"`
	Course         string `query:"course"`
	BookmarkedOnly bool   `query:"bookmarked_only"`
}
