package handler

import (
	"context"
	"os"
	"testing"
	"time"

	"study-helper/internal/config"
	"study-helper/internal/domain"
	"study-helper/internal/dto"
	"study-helper/internal/logger"
	"study-helper/internal/middleware"
	"study-helper/internal/validation"

	"github.com/gofiber/fiber/v2"
)

func TestMain(m *testing.M) {
	if err := logger.Initialize(config.LoggerConfig{Level: "debug", Env: "test"}); err != nil {
		panic(err)
	}
	os.Exit(m.Run())
}

// Mock services with overridable funcs, one per interface.

type mockAuthService struct {
	registerFunc    func(ctx context.Context, username, password, nickname string) (*domain.User, error)
	loginFunc       func(ctx context.Context, username, password string) (*dto.TokenResponse, error)
	validateJWTFunc func(ctx context.Context, tokenString string) (*dto.AuthClaims, error)
}

func (m *mockAuthService) Register(ctx context.Context, username, password, nickname string) (*domain.User, error) {
	return m.registerFunc(ctx, username, password, nickname)
}

func (m *mockAuthService) Authenticate(ctx context.Context, username, password string) (*domain.User, error) {
	return nil, nil
}

func (m *mockAuthService) Login(ctx context.Context, username, password string) (*dto.TokenResponse, error) {
	return m.loginFunc(ctx, username, password)
}

func (m *mockAuthService) CreateJWT(ctx context.Context, user *domain.User, ttl time.Duration) (string, error) {
	return "", nil
}

func (m *mockAuthService) ValidateJWT(ctx context.Context, tokenString string) (*dto.AuthClaims, error) {
	return m.validateJWTFunc(ctx, tokenString)
}

type mockUserService struct {
	getUserByUsernameFunc func(ctx context.Context, username string) (*domain.User, error)
	listUsersFunc         func(ctx context.Context, skip, limit int) ([]domain.User, error)
	banUserFunc           func(ctx context.Context, userID int64) (*domain.User, error)
}

func (m *mockUserService) GetUserByUsername(ctx context.Context, username string) (*domain.User, error) {
	return m.getUserByUsernameFunc(ctx, username)
}

func (m *mockUserService) GetUserByID(ctx context.Context, userID int64) (*domain.User, error) {
	return nil, nil
}

func (m *mockUserService) ListUsers(ctx context.Context, skip, limit int) ([]domain.User, error) {
	return m.listUsersFunc(ctx, skip, limit)
}

func (m *mockUserService) BanUser(ctx context.Context, userID int64) (*domain.User, error) {
	return m.banUserFunc(ctx, userID)
}

type mockProblemService struct {
	uploadFunc func(ctx context.Context, ownerID int64, req *dto.ProblemUploadRequest, knowledgeTags, tags []string, difficulty *int) (*domain.Problem, error)
	getFunc    func(ctx context.Context, userID, problemID int64) (*domain.Problem, error)
	updateFunc func(ctx context.Context, userID, problemID int64, update *domain.ProblemUpdate) (*domain.Problem, error)
	listFunc   func(ctx context.Context, ownerID int64, filters domain.ProblemFilters) ([]domain.Problem, error)
}

func (m *mockProblemService) Upload(ctx context.Context, ownerID int64, req *dto.ProblemUploadRequest, knowledgeTags, tags []string, difficulty *int) (*domain.Problem, error) {
	return m.uploadFunc(ctx, ownerID, req, knowledgeTags, tags, difficulty)
}

func (m *mockProblemService) GetProblem(ctx context.Context, userID, problemID int64) (*domain.Problem, error) {
	return m.getFunc(ctx, userID, problemID)
}

func (m *mockProblemService) UpdateProblem(ctx context.Context, userID, problemID int64, update *domain.ProblemUpdate) (*domain.Problem, error) {
	return m.updateFunc(ctx, userID, problemID, update)
}

func (m *mockProblemService) ListProblems(ctx context.Context, ownerID int64, filters domain.ProblemFilters) ([]domain.Problem, error) {
	return m.listFunc(ctx, ownerID, filters)
}

type mockProfileService struct {
	getProfileFunc func(ctx context.Context, userID int64) (*dto.LearningProfileResponse, error)
}

func (m *mockProfileService) GetLearningProfile(ctx context.Context, userID int64) (*dto.LearningProfileResponse, error) {
	return m.getProfileFunc(ctx, userID)
}

// newTestApp builds a fiber app with the central error handler, no auth.
func newTestApp() *fiber.App {
	return fiber.New(fiber.Config{ErrorHandler: middleware.ErrorHandler()})
}

// authedApp builds a fiber app whose routes run behind Protected with a
// fixed authenticated user.
func authedApp(user *domain.User) (*fiber.App, fiber.Handler) {
	authSvc := &mockAuthService{
		validateJWTFunc: func(ctx context.Context, tokenString string) (*dto.AuthClaims, error) {
			claims := &dto.AuthClaims{UUID: user.UUID}
			claims.Subject = user.Username
			return claims, nil
		},
	}
	userSvc := &mockUserService{
		getUserByUsernameFunc: func(ctx context.Context, username string) (*domain.User, error) {
			return user, nil
		},
	}
	return newTestApp(), middleware.Protected(authSvc, userSvc)
}

func testValidator() *validation.Validator {
	return validation.NewValidator()
}
