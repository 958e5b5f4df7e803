package dto

import (
	"time"

	"study-helper/internal/domain"

	"github.com/golang-jwt/jwt/v5"
)

// RegisterRequest is the body of POST /register.
type RegisterRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
	Nickname string `json:"nickname"`
}

// AuthClaims defines the custom claims for JWT. The registered subject
// carries the username.
type AuthClaims struct {
	UUID string `json:"uuid"`
	jwt.RegisteredClaims
}

// TokenResponse is the body of a successful POST /login.
type TokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"` // always "bearer"
}

// UserResponse is a user record as exposed to its own caller. The password
// hash never leaves the service layer, and operational flags (active, admin)
// stay off the public shape.
type UserResponse struct {
	ID       int64  `json:"id"`
	UUID     string `json:"uuid"`
	Username string `json:"username"`
	Nickname string `json:"nickname,omitempty"`
}

// NewUserResponse maps a domain user onto the public HTTP shape.
func NewUserResponse(user *domain.User) *UserResponse {
	return &UserResponse{
		ID:       user.ID,
		UUID:     user.UUID,
		Username: user.Username,
		Nickname: user.Nickname,
	}
}

// AdminUserResponse is the user record as exposed on the admin surface,
// including the flags an operator acts on.
type AdminUserResponse struct {
	ID        int64     `json:"id"`
	UUID      string    `json:"uuid"`
	Username  string    `json:"username"`
	Nickname  string    `json:"nickname,omitempty"`
	IsActive  bool      `json:"is_active"`
	IsAdmin   bool      `json:"is_admin"`
	CreatedAt time.Time `json:"created_at"`
}

// NewAdminUserResponse maps a domain user onto the admin HTTP shape.
func NewAdminUserResponse(user *domain.User) *AdminUserResponse {
	return &AdminUserResponse{
		ID:        user.ID,
		UUID:      user.UUID,
		Username:  user.Username,
		Nickname:  user.Nickname,
		IsActive:  user.IsActive,
		IsAdmin:   user.IsAdmin,
		CreatedAt: user.CreatedAt,
	}
}

// MessageResponse represents a generic message response.
type MessageResponse struct {
	Message string `json:"message"`
}

// Pagination defines parameters for paginated requests.
// These are typically query parameters.
type Pagination struct {
	Skip  int `query:"skip"`  // Number of items to skip
	Limit int `query:"limit"` // Number of items per page
}
