package handler

import (
	"study-helper/internal/domain"
	"study-helper/internal/dto"
	"study-helper/internal/middleware"
	"study-helper/internal/service"

	"github.com/gofiber/fiber/v2"
)

type SolveHandler struct {
	solveService service.SolveService
}

func NewSolveHandler(solveService service.SolveService) *SolveHandler {
	return &SolveHandler{solveService: solveService}
}

// Solve handles POST /solve.
// @Summary Solve a problem
// @Description Returns a solution outline for a stored problem or ad-hoc text.
// @Tags solve
// @Security ApiKeyAuth
// @Accept json
// @Produce json
// @Param request body dto.SolveRequest true "Problem reference or raw text"
// @Success 200 {object} dto.SolveResponse
// @Failure 404 {object} middleware.ErrorResponse "Problem not found"
// @Router /solve [post]
func (h *SolveHandler) Solve(c *fiber.Ctx) error {
	user := middleware.CurrentUser(c)
	if user == nil {
		return domain.NewUnauthorizedError("Could not validate credentials")
	}

	var req dto.SolveRequest
	if err := c.BodyParser(&req); err != nil {
		return domain.ValidationErrors{domain.NewInvalidFormatError("body", "invalid JSON")}
	}

	result, err := h.solveService.Solve(c.Context(), user.ID, &req)
	if err != nil {
		return err
	}
	return c.JSON(result)
}
