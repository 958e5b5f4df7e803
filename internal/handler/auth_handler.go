package handler

import (
	"study-helper/internal/domain"
	"study-helper/internal/dto"
	"study-helper/internal/service"
	"study-helper/internal/validation"

	"github.com/gofiber/fiber/v2"
)

type AuthHandler struct {
	authService service.AuthService
	validator   *validation.Validator
}

func NewAuthHandler(authService service.AuthService, validator *validation.Validator) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		validator:   validator,
	}
}

// Register handles POST /register. The body is JSON; the password never
// appears in the response.
// @Summary Register a new account
// @Description Creates a user with a salted password hash.
// @Tags auth
// @Accept json
// @Produce json
// @Param request body dto.RegisterRequest true "Registration payload"
// @Success 201 {object} dto.UserResponse
// @Failure 400 {object} middleware.ValidationErrorResponse "Invalid input or username taken"
// @Router /register [post]
func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var req dto.RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return domain.ValidationErrors{domain.NewInvalidFormatError("body", "invalid JSON")}
	}

	if errs := h.validator.ValidateRegisterRequest(&req); len(errs) > 0 {
		return errs
	}

	user, err := h.authService.Register(c.Context(), req.Username, req.Password, req.Nickname)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(dto.NewUserResponse(user))
}

// Login handles POST /login. Credentials arrive as form fields, matching
// the password-grant request shape.
// @Summary Log in
// @Description Exchanges username/password form fields for a bearer token.
// @Tags auth
// @Accept x-www-form-urlencoded
// @Produce json
// @Param username formData string true "Username"
// @Param password formData string true "Password"
// @Success 200 {object} dto.TokenResponse
// @Failure 400 {object} middleware.ErrorResponse "Invalid credentials"
// @Router /login [post]
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	username := c.FormValue("username")
	password := c.FormValue("password")

	if errs := h.validator.ValidateLoginRequest(username, password); len(errs) > 0 {
		return errs
	}

	token, err := h.authService.Login(c.Context(), username, password)
	if err != nil {
		return err
	}
	return c.JSON(token)
}
