package dto

// SolveRequest is the body of POST /solve. Either a stored problem is
// referenced by ID or raw text is sent inline.
type SolveRequest struct {
	ProblemID *int64 `json:"problem_id"`
	Raw       string `json:"raw"`
	Mode      string `json:"mode"` // e.g. "full", "hint"; free-form for now
}

// SolveResponse is the placeholder solver output.
type SolveResponse struct {
	ProblemID *int64   `json:"problem_id,omitempty"`
	Thoughts  string   `json:"thoughts"`
	Steps     []string `json:"steps"`
	Answer    string   `json:"answer"`
}

// LearningProfileResponse is the body of GET /profile. Trend stays empty
// until mastery history is computed.
type LearningProfileResponse struct {
	UserID  int64              `json:"user_id"`
	Mastery map[string]float64 `json:"mastery"`
	Trend   []float64          `json:"trend"`
}
