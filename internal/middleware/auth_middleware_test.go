package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"study-helper/internal/config"
	"study-helper/internal/domain"
	"study-helper/internal/dto"
	"study-helper/internal/logger"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	if err := logger.Initialize(config.LoggerConfig{Level: "debug", Env: "test"}); err != nil {
		panic(err)
	}
	os.Exit(m.Run())
}

// mockAuthService implements service.AuthService with overridable funcs.
type mockAuthService struct {
	validateJWTFunc func(ctx context.Context, tokenString string) (*dto.AuthClaims, error)
}

func (m *mockAuthService) Register(ctx context.Context, username, password, nickname string) (*domain.User, error) {
	return nil, nil
}

func (m *mockAuthService) Authenticate(ctx context.Context, username, password string) (*domain.User, error) {
	return nil, nil
}

func (m *mockAuthService) Login(ctx context.Context, username, password string) (*dto.TokenResponse, error) {
	return nil, nil
}

func (m *mockAuthService) CreateJWT(ctx context.Context, user *domain.User, ttl time.Duration) (string, error) {
	return "", nil
}

func (m *mockAuthService) ValidateJWT(ctx context.Context, tokenString string) (*dto.AuthClaims, error) {
	return m.validateJWTFunc(ctx, tokenString)
}

// mockUserService implements service.UserService with overridable funcs.
type mockUserService struct {
	getUserByUsernameFunc func(ctx context.Context, username string) (*domain.User, error)
}

func (m *mockUserService) GetUserByUsername(ctx context.Context, username string) (*domain.User, error) {
	return m.getUserByUsernameFunc(ctx, username)
}

func (m *mockUserService) GetUserByID(ctx context.Context, userID int64) (*domain.User, error) {
	return nil, nil
}

func (m *mockUserService) ListUsers(ctx context.Context, skip, limit int) ([]domain.User, error) {
	return nil, nil
}

func (m *mockUserService) BanUser(ctx context.Context, userID int64) (*domain.User, error) {
	return nil, nil
}

func claimsFor(subject string) *dto.AuthClaims {
	claims := &dto.AuthClaims{UUID: "uuid-1"}
	claims.Subject = subject
	return claims
}

func setupProtectedApp(authSvc *mockAuthService, userSvc *mockUserService, extra ...fiber.Handler) *fiber.App {
	app := fiber.New(fiber.Config{ErrorHandler: ErrorHandler()})
	handlers := []fiber.Handler{Protected(authSvc, userSvc)}
	handlers = append(handlers, extra...)
	handlers = append(handlers, func(c *fiber.Ctx) error {
		user := CurrentUser(c)
		return c.JSON(fiber.Map{"username": user.Username})
	})
	app.Get("/secret", handlers...)
	return app
}

func TestProtected_ValidToken(t *testing.T) {
	authSvc := &mockAuthService{
		validateJWTFunc: func(ctx context.Context, tokenString string) (*dto.AuthClaims, error) {
			assert.Equal(t, "good-token", tokenString)
			return claimsFor("alice"), nil
		},
	}
	userSvc := &mockUserService{
		getUserByUsernameFunc: func(ctx context.Context, username string) (*domain.User, error) {
			assert.Equal(t, "alice", username)
			return &domain.User{ID: 1, Username: "alice", IsActive: true}, nil
		},
	}
	app := setupProtectedApp(authSvc, userSvc)

	req := httptest.NewRequest(http.MethodGet, "/secret", nil)
	req.Header.Set("Authorization", "Bearer good-token")
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestProtected_MissingAndMalformedHeaders(t *testing.T) {
	authSvc := &mockAuthService{
		validateJWTFunc: func(ctx context.Context, tokenString string) (*dto.AuthClaims, error) {
			t.Fatal("ValidateJWT must not be called")
			return nil, nil
		},
	}
	userSvc := &mockUserService{}
	app := setupProtectedApp(authSvc, userSvc)

	cases := []struct {
		name   string
		header string
	}{
		{"no header", ""},
		{"wrong scheme", "Basic abc"},
		{"empty token", "Bearer "},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/secret", nil)
			if tc.header != "" {
				req.Header.Set("Authorization", tc.header)
			}
			resp, err := app.Test(req)
			require.NoError(t, err)
			assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
			assert.Equal(t, "Bearer", resp.Header.Get("WWW-Authenticate"))
		})
	}
}

func TestProtected_InvalidToken(t *testing.T) {
	authSvc := &mockAuthService{
		validateJWTFunc: func(ctx context.Context, tokenString string) (*dto.AuthClaims, error) {
			return nil, assert.AnError
		},
	}
	userSvc := &mockUserService{}
	app := setupProtectedApp(authSvc, userSvc)

	req := httptest.NewRequest(http.MethodGet, "/secret", nil)
	req.Header.Set("Authorization", "Bearer bad-token")
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestProtected_SubjectNoLongerExists(t *testing.T) {
	authSvc := &mockAuthService{
		validateJWTFunc: func(ctx context.Context, tokenString string) (*dto.AuthClaims, error) {
			return claimsFor("ghost"), nil
		},
	}
	userSvc := &mockUserService{
		getUserByUsernameFunc: func(ctx context.Context, username string) (*domain.User, error) {
			return nil, nil
		},
	}
	app := setupProtectedApp(authSvc, userSvc)

	req := httptest.NewRequest(http.MethodGet, "/secret", nil)
	req.Header.Set("Authorization", "Bearer orphan-token")
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestAdminOnly(t *testing.T) {
	makeApp := func(isAdmin bool) *fiber.App {
		authSvc := &mockAuthService{
			validateJWTFunc: func(ctx context.Context, tokenString string) (*dto.AuthClaims, error) {
				return claimsFor("alice"), nil
			},
		}
		userSvc := &mockUserService{
			getUserByUsernameFunc: func(ctx context.Context, username string) (*domain.User, error) {
				return &domain.User{ID: 1, Username: "alice", IsActive: true, IsAdmin: isAdmin}, nil
			},
		}
		return setupProtectedApp(authSvc, userSvc, AdminOnly())
	}

	t.Run("admin passes", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/secret", nil)
		req.Header.Set("Authorization", "Bearer token")
		resp, err := makeApp(true).Test(req)
		require.NoError(t, err)
		assert.Equal(t, http.StatusOK, resp.StatusCode)
	})

	t.Run("non-admin is forbidden", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/secret", nil)
		req.Header.Set("Authorization", "Bearer token")
		resp, err := makeApp(false).Test(req)
		require.NoError(t, err)
		assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	})
}
