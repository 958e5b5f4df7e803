package service

import (
	"context"
	"strings"

	"study-helper/internal/domain"
	"study-helper/internal/dto"
)

// Placeholder solver output until a real solving backend is wired in.
const (
	solveThoughts = "This problem has not been analyzed yet. Automated solving is not available."
	solveAnswer   = "Solution pending. Please solve manually or check back later."
)

var solveSteps = []string{
	"Read the problem statement carefully.",
	"Identify the knowledge points involved.",
	"Work through the solution step by step.",
}

// SolveService produces solve results for stored or inline problems.
type SolveService interface {
	Solve(ctx context.Context, userID int64, req *dto.SolveRequest) (*dto.SolveResponse, error)
}

type solveServiceImpl struct {
	problemService ProblemService
}

// NewSolveService creates a new instance of SolveService.
func NewSolveService(problemService ProblemService) SolveService {
	return &solveServiceImpl{problemService: problemService}
}

// Solve returns the fixed placeholder result. When a problem ID is given
// the problem is resolved first so missing or foreign problems surface the
// usual 404/403 instead of a fake answer.
func (s *solveServiceImpl) Solve(ctx context.Context, userID int64, req *dto.SolveRequest) (*dto.SolveResponse, error) {
	raw := req.Raw
	if req.ProblemID != nil {
		problem, err := s.problemService.GetProblem(ctx, userID, *req.ProblemID)
		if err != nil {
			return nil, err
		}
		if strings.TrimSpace(problem.Raw) != "" {
			raw = problem.Raw
		}
	}

	if strings.TrimSpace(raw) == "" {
		return nil, domain.ValidationErrors{domain.NewMissingFieldError("raw")}
	}

	return &dto.SolveResponse{
		ProblemID: req.ProblemID,
		Thoughts:  solveThoughts,
		Steps:     solveSteps,
		Answer:    solveAnswer,
	}, nil
}
