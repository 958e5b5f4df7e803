package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"study-helper/internal/config"
	"study-helper/internal/domain"
	"study-helper/internal/dto"
	"study-helper/internal/logger"
	"study-helper/internal/security"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const tokenTypeBearer = "bearer"

var ErrInvalidJWTToken = errors.New("invalid jwt token")

// AuthService defines the interface for registration, credential checks
// and JWT lifecycle.
type AuthService interface {
	Register(ctx context.Context, username, password, nickname string) (*domain.User, error)
	// Authenticate returns (nil, nil) for unknown username and for a wrong
	// password alike; callers cannot tell the two apart.
	Authenticate(ctx context.Context, username, password string) (*domain.User, error)
	Login(ctx context.Context, username, password string) (*dto.TokenResponse, error)
	CreateJWT(ctx context.Context, user *domain.User, ttl time.Duration) (string, error)
	ValidateJWT(ctx context.Context, tokenString string) (*dto.AuthClaims, error)
}

type authServiceImpl struct {
	userRepo  domain.UserRepository
	appConfig *config.Config
	now       func() time.Time // injectable clock for expiry boundary tests
}

// NewAuthService creates a new instance of AuthService.
func NewAuthService(userRepo domain.UserRepository, appConfig *config.Config) (AuthService, error) {
	if len(appConfig.JWT.SecretKey) == 0 {
		return nil, errors.New("jwt secret key is not configured")
	}
	return &authServiceImpl{
		userRepo:  userRepo,
		appConfig: appConfig,
		now:       time.Now,
	}, nil
}

// Register creates a new account with a freshly salted password hash.
// Usernames are matched exactly (case-sensitive).
func (s *authServiceImpl) Register(ctx context.Context, username, password, nickname string) (*domain.User, error) {
	existing, err := s.userRepo.GetUserByUsername(ctx, username)
	if err != nil {
		return nil, domain.NewInternalError("failed to check username availability", err)
	}
	if existing != nil {
		return nil, domain.NewDuplicateUsernameError(username)
	}

	hashed, err := security.HashPassword(password)
	if err != nil {
		return nil, domain.NewInternalError("failed to hash password", err)
	}

	user := &domain.User{
		UUID:           uuid.NewString(),
		Username:       username,
		HashedPassword: hashed,
		Nickname:       nickname,
		IsActive:       true,
	}
	if err := s.userRepo.CreateUser(ctx, user); err != nil {
		return nil, domain.NewInternalError("failed to create user", err)
	}

	logger.Get().Info("User registered",
		zap.Int64("userID", user.ID),
		zap.String("username", user.Username))
	return user, nil
}

// Authenticate verifies the credentials without consulting the active flag.
func (s *authServiceImpl) Authenticate(ctx context.Context, username, password string) (*domain.User, error) {
	user, err := s.userRepo.GetUserByUsername(ctx, username)
	if err != nil {
		return nil, domain.NewInternalError("failed to look up user", err)
	}
	if user == nil {
		return nil, nil
	}
	if !security.VerifyPassword(password, user.HashedPassword) {
		return nil, nil
	}
	return user, nil
}

// Login exchanges valid credentials for a bearer token. Unknown usernames,
// wrong passwords and banned accounts all produce the same answer so the
// response does not leak which one it was.
func (s *authServiceImpl) Login(ctx context.Context, username, password string) (*dto.TokenResponse, error) {
	user, err := s.Authenticate(ctx, username, password)
	if err != nil {
		return nil, err
	}
	if user == nil || !user.IsActive {
		return nil, domain.NewInvalidCredentialsError()
	}

	token, err := s.CreateJWT(ctx, user, s.appConfig.JWT.AccessTokenTTL)
	if err != nil {
		return nil, domain.NewInternalError("failed to create access token", err)
	}
	return &dto.TokenResponse{AccessToken: token, TokenType: tokenTypeBearer}, nil
}

// CreateJWT signs an HS256 token whose subject is the username.
func (s *authServiceImpl) CreateJWT(ctx context.Context, user *domain.User, ttl time.Duration) (string, error) {
	now := s.now()
	claims := dto.AuthClaims{
		UUID: user.UUID,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.Username,
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.appConfig.JWT.SecretKey))
}

// ValidateJWT parses and verifies a token. Expired tokens are rejected,
// including exactly at the expiry instant.
func (s *authServiceImpl) ValidateJWT(ctx context.Context, tokenString string) (*dto.AuthClaims, error) {
	appLogger := logger.Get()
	token, err := jwt.ParseWithClaims(tokenString, &dto.AuthClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(s.appConfig.JWT.SecretKey), nil
	}, jwt.WithTimeFunc(s.now))

	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			appLogger.Warn("JWT token expired", zap.Error(err))
		} else {
			appLogger.Warn("JWT validation failed", zap.Error(err))
		}
		return nil, fmt.Errorf("%w: %v", ErrInvalidJWTToken, err)
	}

	if claims, ok := token.Claims.(*dto.AuthClaims); ok && token.Valid {
		return claims, nil
	}
	return nil, ErrInvalidJWTToken
}
