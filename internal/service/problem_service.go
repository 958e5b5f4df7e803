package service

import (
	"context"
	"encoding/base64"
	"fmt"

	"study-helper/internal/domain"
	"study-helper/internal/dto"
	"study-helper/internal/logger"

	"go.uber.org/zap"
)

// ProblemService defines the ownership-scoped problem store operations.
type ProblemService interface {
	Upload(ctx context.Context, ownerID int64, req *dto.ProblemUploadRequest, knowledgeTags, tags []string, difficulty *int) (*domain.Problem, error)
	// GetProblem enforces the read policy: foreign-owned problems are
	// forbidden, ownerless ones are readable by everyone.
	GetProblem(ctx context.Context, userID, problemID int64) (*domain.Problem, error)
	// UpdateProblem requires an exact owner match; ownerless problems are
	// never updatable.
	UpdateProblem(ctx context.Context, userID, problemID int64, update *domain.ProblemUpdate) (*domain.Problem, error)
	ListProblems(ctx context.Context, ownerID int64, filters domain.ProblemFilters) ([]domain.Problem, error)
}

type problemServiceImpl struct {
	problemRepo domain.ProblemRepository
}

// NewProblemService creates a new instance of ProblemService.
func NewProblemService(problemRepo domain.ProblemRepository) ProblemService {
	return &problemServiceImpl{problemRepo: problemRepo}
}

// Upload stores a new problem for the caller. A file upload is inlined as
// base64 and its raw column becomes a FILE:<name> marker; validation has
// already decoded the tag lists and difficulty.
func (s *problemServiceImpl) Upload(ctx context.Context, ownerID int64, req *dto.ProblemUploadRequest, knowledgeTags, tags []string, difficulty *int) (*domain.Problem, error) {
	sourceType := req.SourceType
	if sourceType == "" {
		sourceType = domain.SourceTypeText
	}

	raw := req.Raw
	var fileContent string
	if len(req.FileBytes) > 0 {
		raw = fmt.Sprintf("FILE:%s", req.FileName)
		fileContent = base64.StdEncoding.EncodeToString(req.FileBytes)
	}

	problem := &domain.Problem{
		OwnerID:       &ownerID,
		SourceType:    sourceType,
		Raw:           raw,
		FileContent:   fileContent,
		Subject:       req.Subject,
		Course:        req.Course,
		ProblemType:   req.ProblemType,
		KnowledgeTags: knowledgeTags,
		Difficulty:    difficulty,
		Tags:          tags,
		Notes:         req.Notes,
	}
	if err := s.problemRepo.CreateProblem(ctx, problem); err != nil {
		return nil, domain.NewInternalError("failed to store problem", err)
	}

	logger.Get().Info("Problem uploaded",
		zap.Int64("problemID", problem.ID),
		zap.Int64("ownerID", ownerID),
		zap.String("sourceType", sourceType))
	return problem, nil
}

func (s *problemServiceImpl) GetProblem(ctx context.Context, userID, problemID int64) (*domain.Problem, error) {
	problem, err := s.problemRepo.GetProblemByID(ctx, problemID)
	if err != nil {
		return nil, domain.NewInternalError("failed to get problem", err)
	}
	if problem == nil {
		return nil, domain.NewProblemNotFoundError(problemID)
	}
	if problem.OwnerID != nil && !problem.OwnedBy(userID) {
		return nil, domain.NewForbiddenError("Not allowed to access this problem")
	}
	return problem, nil
}

func (s *problemServiceImpl) UpdateProblem(ctx context.Context, userID, problemID int64, update *domain.ProblemUpdate) (*domain.Problem, error) {
	problem, err := s.problemRepo.GetProblemByID(ctx, problemID)
	if err != nil {
		return nil, domain.NewInternalError("failed to get problem", err)
	}
	if problem == nil {
		return nil, domain.NewProblemNotFoundError(problemID)
	}
	if !problem.OwnedBy(userID) {
		return nil, domain.NewForbiddenError("Not allowed to modify this problem")
	}

	if update.IsEmpty() {
		return problem, nil
	}

	updated, err := s.problemRepo.UpdateProblem(ctx, problemID, update)
	if err != nil {
		return nil, domain.NewInternalError("failed to update problem", err)
	}
	if updated == nil {
		// Deleted between the ownership check and the update.
		return nil, domain.NewProblemNotFoundError(problemID)
	}
	return updated, nil
}

func (s *problemServiceImpl) ListProblems(ctx context.Context, ownerID int64, filters domain.ProblemFilters) ([]domain.Problem, error) {
	problems, err := s.problemRepo.ListProblemsByOwner(ctx, ownerID, filters)
	if err != nil {
		return nil, domain.NewInternalError("failed to list problems", err)
	}
	return problems, nil
}
