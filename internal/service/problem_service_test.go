package service

import (
	"context"
	"encoding/base64"
	"errors"
	"testing"

	"study-helper/internal/domain"
	"study-helper/internal/dto"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func ownedProblem(id, ownerID int64) *domain.Problem {
	return &domain.Problem{ID: id, OwnerID: &ownerID, SourceType: domain.SourceTypeText, Raw: "Integrate x^2 dx"}
}

func domainCode(t *testing.T, err error) domain.ErrorCode {
	t.Helper()
	var domainErr *domain.DomainError
	require.True(t, errors.As(err, &domainErr), "expected DomainError, got %v", err)
	return domainErr.Code
}

func TestProblemService_Upload_RawText(t *testing.T) {
	problemRepo := new(MockProblemRepository)
	svc := NewProblemService(problemRepo)

	problemRepo.On("CreateProblem", mock.Anything, mock.AnythingOfType("*domain.Problem")).
		Run(func(args mock.Arguments) {
			args.Get(1).(*domain.Problem).ID = 10
		}).
		Return(nil)

	difficulty := 3
	problem, err := svc.Upload(context.Background(), 1, &dto.ProblemUploadRequest{
		Raw:     "Integrate x^2 dx",
		Subject: "math",
	}, []string{"integration"}, []string{"exam"}, &difficulty)
	require.NoError(t, err)

	assert.Equal(t, int64(10), problem.ID)
	require.NotNil(t, problem.OwnerID)
	assert.Equal(t, int64(1), *problem.OwnerID)
	assert.Equal(t, domain.SourceTypeText, problem.SourceType) // defaulted
	assert.Equal(t, "Integrate x^2 dx", problem.Raw)
	assert.Empty(t, problem.FileContent)
	assert.Equal(t, []string{"integration"}, problem.KnowledgeTags)
	assert.False(t, problem.IsBookmarked)
	problemRepo.AssertExpectations(t)
}

func TestProblemService_Upload_File(t *testing.T) {
	problemRepo := new(MockProblemRepository)
	svc := NewProblemService(problemRepo)

	problemRepo.On("CreateProblem", mock.Anything, mock.AnythingOfType("*domain.Problem")).Return(nil)

	fileBytes := []byte{0x89, 0x50, 0x4e, 0x47}
	problem, err := svc.Upload(context.Background(), 1, &dto.ProblemUploadRequest{
		FileName:   "scan.png",
		FileBytes:  fileBytes,
		SourceType: domain.SourceTypeImage,
	}, nil, nil, nil)
	require.NoError(t, err)

	assert.Equal(t, "FILE:scan.png", problem.Raw)
	assert.Equal(t, base64.StdEncoding.EncodeToString(fileBytes), problem.FileContent)
	assert.Equal(t, domain.SourceTypeImage, problem.SourceType)
	assert.Nil(t, problem.Difficulty)
	assert.Nil(t, problem.Tags)
}

func TestProblemService_GetProblem_OwnershipPolicy(t *testing.T) {
	t.Run("owner can read", func(t *testing.T) {
		problemRepo := new(MockProblemRepository)
		svc := NewProblemService(problemRepo)
		problemRepo.On("GetProblemByID", mock.Anything, int64(10)).Return(ownedProblem(10, 1), nil)

		problem, err := svc.GetProblem(context.Background(), 1, 10)
		require.NoError(t, err)
		assert.Equal(t, int64(10), problem.ID)
	})

	t.Run("foreign-owned read is forbidden", func(t *testing.T) {
		problemRepo := new(MockProblemRepository)
		svc := NewProblemService(problemRepo)
		problemRepo.On("GetProblemByID", mock.Anything, int64(10)).Return(ownedProblem(10, 2), nil)

		_, err := svc.GetProblem(context.Background(), 1, 10)
		assert.Equal(t, domain.CodeForbidden, domainCode(t, err))
	})

	t.Run("ownerless problem is readable by anyone", func(t *testing.T) {
		problemRepo := new(MockProblemRepository)
		svc := NewProblemService(problemRepo)
		problemRepo.On("GetProblemByID", mock.Anything, int64(10)).
			Return(&domain.Problem{ID: 10, SourceType: domain.SourceTypeText, Raw: "seed"}, nil)

		problem, err := svc.GetProblem(context.Background(), 1, 10)
		require.NoError(t, err)
		assert.Nil(t, problem.OwnerID)
	})

	t.Run("missing problem is not found", func(t *testing.T) {
		problemRepo := new(MockProblemRepository)
		svc := NewProblemService(problemRepo)
		problemRepo.On("GetProblemByID", mock.Anything, int64(404)).Return(nil, nil)

		_, err := svc.GetProblem(context.Background(), 1, 404)
		assert.Equal(t, domain.CodeProblemNotFound, domainCode(t, err))
	})
}

func TestProblemService_UpdateProblem(t *testing.T) {
	subject := "physics"

	t.Run("owner updates provided fields", func(t *testing.T) {
		problemRepo := new(MockProblemRepository)
		svc := NewProblemService(problemRepo)
		update := &domain.ProblemUpdate{Subject: &subject}
		updated := ownedProblem(10, 1)
		updated.Subject = "physics"

		problemRepo.On("GetProblemByID", mock.Anything, int64(10)).Return(ownedProblem(10, 1), nil)
		problemRepo.On("UpdateProblem", mock.Anything, int64(10), update).Return(updated, nil)

		problem, err := svc.UpdateProblem(context.Background(), 1, 10, update)
		require.NoError(t, err)
		assert.Equal(t, "physics", problem.Subject)
		problemRepo.AssertExpectations(t)
	})

	t.Run("foreign-owned update is forbidden", func(t *testing.T) {
		problemRepo := new(MockProblemRepository)
		svc := NewProblemService(problemRepo)
		problemRepo.On("GetProblemByID", mock.Anything, int64(10)).Return(ownedProblem(10, 2), nil)

		_, err := svc.UpdateProblem(context.Background(), 1, 10, &domain.ProblemUpdate{Subject: &subject})
		assert.Equal(t, domain.CodeForbidden, domainCode(t, err))
		problemRepo.AssertNotCalled(t, "UpdateProblem", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("ownerless problem is never updatable", func(t *testing.T) {
		problemRepo := new(MockProblemRepository)
		svc := NewProblemService(problemRepo)
		problemRepo.On("GetProblemByID", mock.Anything, int64(10)).
			Return(&domain.Problem{ID: 10, SourceType: domain.SourceTypeText}, nil)

		_, err := svc.UpdateProblem(context.Background(), 1, 10, &domain.ProblemUpdate{Subject: &subject})
		assert.Equal(t, domain.CodeForbidden, domainCode(t, err))
	})

	t.Run("empty patch returns the problem unchanged", func(t *testing.T) {
		problemRepo := new(MockProblemRepository)
		svc := NewProblemService(problemRepo)
		problemRepo.On("GetProblemByID", mock.Anything, int64(10)).Return(ownedProblem(10, 1), nil)

		problem, err := svc.UpdateProblem(context.Background(), 1, 10, &domain.ProblemUpdate{})
		require.NoError(t, err)
		assert.Equal(t, int64(10), problem.ID)
		problemRepo.AssertNotCalled(t, "UpdateProblem", mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestProblemService_ListProblems(t *testing.T) {
	problemRepo := new(MockProblemRepository)
	svc := NewProblemService(problemRepo)

	filters := domain.ProblemFilters{Subject: "math", BookmarkedOnly: true}
	problemRepo.On("ListProblemsByOwner", mock.Anything, int64(1), filters).
		Return([]domain.Problem{*ownedProblem(12, 1), *ownedProblem(10, 1)}, nil)

	problems, err := svc.ListProblems(context.Background(), 1, filters)
	require.NoError(t, err)
	assert.Len(t, problems, 2)
	problemRepo.AssertExpectations(t)
}
