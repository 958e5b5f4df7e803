package validation

import (
	"encoding/json"
	"regexp"
	"strconv"
	"strings"

	"study-helper/internal/domain"
	"study-helper/internal/dto"
)

// Validator provides request validation functionality
type Validator struct{}

// NewValidator creates a new validator instance
func NewValidator() *Validator {
	return &Validator{}
}

// ValidateRegisterRequest validates the register request body.
func (v *Validator) ValidateRegisterRequest(req *dto.RegisterRequest) domain.ValidationErrors {
	var errors domain.ValidationErrors

	if strings.TrimSpace(req.Username) == "" {
		errors = append(errors, domain.NewMissingFieldError("username"))
	} else if !isValidUsername(req.Username) {
		errors = append(errors, domain.NewInvalidFormatError("username", req.Username))
	}

	if req.Password == "" {
		errors = append(errors, domain.NewMissingFieldError("password"))
	} else if len(req.Password) > 256 {
		errors = append(errors, domain.NewOutOfRangeError("password", len(req.Password), 1, 256))
	}

	if len(req.Nickname) > 128 {
		errors = append(errors, domain.NewOutOfRangeError("nickname", len(req.Nickname), 0, 128))
	}

	return errors
}

// ValidateLoginRequest validates the login form fields.
func (v *Validator) ValidateLoginRequest(username, password string) domain.ValidationErrors {
	var errors domain.ValidationErrors

	if strings.TrimSpace(username) == "" {
		errors = append(errors, domain.NewMissingFieldError("username"))
	}
	if password == "" {
		errors = append(errors, domain.NewMissingFieldError("password"))
	}

	return errors
}

// ValidateProblemUpload validates the multipart upload fields and returns
// the decoded tag lists and difficulty alongside any failures. Tag fields
// must be JSON array strings when present.
func (v *Validator) ValidateProblemUpload(req *dto.ProblemUploadRequest) ([]string, []string, *int, domain.ValidationErrors) {
	var errors domain.ValidationErrors

	if strings.TrimSpace(req.Raw) == "" && len(req.FileBytes) == 0 {
		errors = append(errors, domain.NewMissingFieldError("raw"))
	}

	knowledgeTags, ok := parseTagArray(req.KnowledgeTags)
	if !ok {
		errors = append(errors, domain.NewInvalidFormatError("knowledge_tags", req.KnowledgeTags))
	}

	tags, ok := parseTagArray(req.Tags)
	if !ok {
		errors = append(errors, domain.NewInvalidFormatError("tags", req.Tags))
	}

	var difficulty *int
	if strings.TrimSpace(req.Difficulty) != "" {
		d, err := strconv.Atoi(strings.TrimSpace(req.Difficulty))
		if err != nil {
			errors = append(errors, domain.NewInvalidFormatError("difficulty", req.Difficulty))
		} else {
			difficulty = &d
		}
	}

	return knowledgeTags, tags, difficulty, errors
}

// ValidatePagination normalizes skip/limit query parameters.
func (v *Validator) ValidatePagination(skip, limit int) (int, int, domain.ValidationErrors) {
	var errors domain.ValidationErrors

	if skip < 0 {
		errors = append(errors, domain.NewOutOfRangeError("skip", skip, 0, 1<<31-1))
	}
	if limit < 0 || limit > 500 {
		errors = append(errors, domain.NewOutOfRangeError("limit", limit, 0, 500))
	}
	if limit == 0 {
		limit = 100
	}

	return skip, limit, errors
}

// parseTagArray decodes a JSON array string. Empty input is valid and
// yields no tags; anything that is not a JSON array of strings is invalid.
func parseTagArray(raw string) ([]string, bool) {
	if strings.TrimSpace(raw) == "" {
		return nil, true
	}
	var tags []string
	if err := json.Unmarshal([]byte(raw), &tags); err != nil {
		return nil, false
	}
	return tags, true
}

// isValidUsername checks the username format (alphanumeric plus . _ -,
// 1-128 characters).
func isValidUsername(s string) bool {
	if len(s) == 0 || len(s) > 128 {
		return false
	}
	validUsername := regexp.MustCompile(`^[a-zA-Z0-9._-]+$`)
	return validUsername.MatchString(s)
}
