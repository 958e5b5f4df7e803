package handler

import (
	"strconv"

	"study-helper/internal/domain"
	"study-helper/internal/dto"
	"study-helper/internal/middleware"
	"study-helper/internal/service"
	"study-helper/internal/validation"

	"github.com/gofiber/fiber/v2"
)

type UserHandler struct {
	userService    service.UserService
	profileService service.ProfileService
	validator      *validation.Validator
}

func NewUserHandler(userService service.UserService, profileService service.ProfileService, validator *validation.Validator) *UserHandler {
	return &UserHandler{
		userService:    userService,
		profileService: profileService,
		validator:      validator,
	}
}

// GetMe handles GET /users/me for the authenticated user.
// @Summary Get my account
// @Description Returns the authenticated user's record.
// @Tags users
// @Security ApiKeyAuth
// @Produce json
// @Success 200 {object} dto.UserResponse
// @Failure 401 {object} middleware.ErrorResponse "Unauthorized"
// @Router /users/me [get]
func (h *UserHandler) GetMe(c *fiber.Ctx) error {
	user := middleware.CurrentUser(c)
	if user == nil {
		return domain.NewUnauthorizedError("Could not validate credentials")
	}
	return c.JSON(dto.NewUserResponse(user))
}

// GetLearningProfile handles GET /profile.
// @Summary Get my learning profile
// @Description Returns the per-topic mastery map for the authenticated user.
// @Tags users
// @Security ApiKeyAuth
// @Produce json
// @Success 200 {object} dto.LearningProfileResponse
// @Failure 401 {object} middleware.ErrorResponse "Unauthorized"
// @Router /profile [get]
func (h *UserHandler) GetLearningProfile(c *fiber.Ctx) error {
	user := middleware.CurrentUser(c)
	if user == nil {
		return domain.NewUnauthorizedError("Could not validate credentials")
	}

	profile, err := h.profileService.GetLearningProfile(c.Context(), user.ID)
	if err != nil {
		return err
	}
	return c.JSON(profile)
}

// ListUsers handles GET /admin/users. The admin gate runs in middleware.
// @Summary List users
// @Description Returns all users. Admin only.
// @Tags admin
// @Security ApiKeyAuth
// @Produce json
// @Param skip query int false "Rows to skip" default(0)
// @Param limit query int false "Page size" default(100)
// @Success 200 {array} dto.AdminUserResponse
// @Failure 403 {object} middleware.ErrorResponse "Admin privileges required"
// @Router /admin/users [get]
func (h *UserHandler) ListUsers(c *fiber.Ctx) error {
	skip := c.QueryInt("skip", 0)
	limit := c.QueryInt("limit", 100)

	skip, limit, errs := h.validator.ValidatePagination(skip, limit)
	if len(errs) > 0 {
		return errs
	}

	users, err := h.userService.ListUsers(c.Context(), skip, limit)
	if err != nil {
		return err
	}

	out := make([]dto.AdminUserResponse, 0, len(users))
	for i := range users {
		out = append(out, *dto.NewAdminUserResponse(&users[i]))
	}
	return c.JSON(out)
}

// BanUser handles POST /admin/users/:id/ban.
// @Summary Ban a user
// @Description Marks the user inactive, blocking future logins. Admin only.
// @Tags admin
// @Security ApiKeyAuth
// @Produce json
// @Param id path int true "User ID"
// @Success 200 {object} dto.AdminUserResponse
// @Failure 403 {object} middleware.ErrorResponse "Admin privileges required"
// @Failure 404 {object} middleware.ErrorResponse "User not found"
// @Router /admin/users/{id}/ban [post]
func (h *UserHandler) BanUser(c *fiber.Ctx) error {
	userID, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil {
		return domain.ValidationErrors{domain.NewInvalidFormatError("id", c.Params("id"))}
	}

	user, banErr := h.userService.BanUser(c.Context(), userID)
	if banErr != nil {
		return banErr
	}
	return c.JSON(dto.NewAdminUserResponse(user))
}
