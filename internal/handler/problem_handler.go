package handler

import (
	"io"
	"strconv"

	"study-helper/internal/domain"
	"study-helper/internal/dto"
	"study-helper/internal/middleware"
	"study-helper/internal/service"
	"study-helper/internal/validation"

	"github.com/gofiber/fiber/v2"
)

type ProblemHandler struct {
	problemService service.ProblemService
	validator      *validation.Validator
}

func NewProblemHandler(problemService service.ProblemService, validator *validation.Validator) *ProblemHandler {
	return &ProblemHandler{
		problemService: problemService,
		validator:      validator,
	}
}

// Upload handles POST /problems/upload (multipart form). Either a raw text
// field or a file part must be present; tag fields are JSON array strings.
// @Summary Upload a problem
// @Description Stores a problem from raw text or an uploaded file (kept inline, base64).
// @Tags problems
// @Security ApiKeyAuth
// @Accept multipart/form-data
// @Produce json
// @Param raw formData string false "Problem text"
// @Param file formData file false "Problem file"
// @Param source_type formData string false "text, image or latex" default(text)
// @Param subject formData string false "Subject"
// @Param course formData string false "Course"
// @Param problem_type formData string false "Problem type"
// @Param knowledge_tags formData string false "JSON array of tags"
// @Param difficulty formData int false "Difficulty 1-5"
// @Param tags formData string false "JSON array of tags"
// @Param notes formData string false "Notes"
// @Success 201 {object} dto.ProblemResponse
// @Failure 400 {object} middleware.ValidationErrorResponse "Missing content or malformed tags"
// @Router /problems/upload [post]
func (h *ProblemHandler) Upload(c *fiber.Ctx) error {
	user := middleware.CurrentUser(c)
	if user == nil {
		return domain.NewUnauthorizedError("Could not validate credentials")
	}

	req := dto.ProblemUploadRequest{
		Raw:           c.FormValue("raw"),
		SourceType:    c.FormValue("source_type"),
		Subject:       c.FormValue("subject"),
		Course:        c.FormValue("course"),
		ProblemType:   c.FormValue("problem_type"),
		KnowledgeTags: c.FormValue("knowledge_tags"),
		Difficulty:    c.FormValue("difficulty"),
		Tags:          c.FormValue("tags"),
		Notes:         c.FormValue("notes"),
	}

	if fileHeader, err := c.FormFile("file"); err == nil && fileHeader != nil {
		file, err := fileHeader.Open()
		if err != nil {
			return domain.NewInternalError("failed to open uploaded file", err)
		}
		defer file.Close()

		fileBytes, err := io.ReadAll(file)
		if err != nil {
			return domain.NewInternalError("failed to read uploaded file", err)
		}
		req.FileName = fileHeader.Filename
		req.FileBytes = fileBytes
	}

	knowledgeTags, tags, difficulty, errs := h.validator.ValidateProblemUpload(&req)
	if len(errs) > 0 {
		return errs
	}

	problem, err := h.problemService.Upload(c.Context(), user.ID, &req, knowledgeTags, tags, difficulty)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(dto.NewProblemResponse(problem))
}

// GetProblem handles GET /problems/:id.
// @Summary Get a problem
// @Description Returns one problem. Foreign-owned problems are forbidden.
// @Tags problems
// @Security ApiKeyAuth
// @Produce json
// @Param id path int true "Problem ID"
// @Success 200 {object} dto.ProblemResponse
// @Failure 403 {object} middleware.ErrorResponse "Owned by another user"
// @Failure 404 {object} middleware.ErrorResponse "Problem not found"
// @Router /problems/{id} [get]
func (h *ProblemHandler) GetProblem(c *fiber.Ctx) error {
	user := middleware.CurrentUser(c)
	if user == nil {
		return domain.NewUnauthorizedError("Could not validate credentials")
	}

	problemID, err := parseProblemID(c)
	if err != nil {
		return err
	}

	problem, getErr := h.problemService.GetProblem(c.Context(), user.ID, problemID)
	if getErr != nil {
		return getErr
	}
	return c.JSON(dto.NewProblemResponse(problem))
}

// UpdateProblem handles PATCH /problems/:id with a partial JSON body.
// @Summary Update a problem
// @Description Applies the provided fields only. Requires exact ownership.
// @Tags problems
// @Security ApiKeyAuth
// @Accept json
// @Produce json
// @Param id path int true "Problem ID"
// @Param request body dto.ProblemUpdateRequest true "Fields to change"
// @Success 200 {object} dto.ProblemResponse
// @Failure 403 {object} middleware.ErrorResponse "Not the owner"
// @Failure 404 {object} middleware.ErrorResponse "Problem not found"
// @Router /problems/{id} [patch]
func (h *ProblemHandler) UpdateProblem(c *fiber.Ctx) error {
	user := middleware.CurrentUser(c)
	if user == nil {
		return domain.NewUnauthorizedError("Could not validate credentials")
	}

	problemID, err := parseProblemID(c)
	if err != nil {
		return err
	}

	var req dto.ProblemUpdateRequest
	if parseErr := c.BodyParser(&req); parseErr != nil {
		return domain.ValidationErrors{domain.NewInvalidFormatError("body", "invalid JSON")}
	}

	problem, updateErr := h.problemService.UpdateProblem(c.Context(), user.ID, problemID, req.ToDomain())
	if updateErr != nil {
		return updateErr
	}
	return c.JSON(dto.NewProblemResponse(problem))
}

// ListProblems handles GET /problems with optional filters.
// @Summary List my problems
// @Description Returns the caller's problems, newest first.
// @Tags problems
// @Security ApiKeyAuth
// @Produce json
// @Param subject query string false "Filter by subject"
// @Param course query string false "Filter by course"
// @Param bookmarked_only query bool false "Bookmarked problems only"
// @Success 200 {array} dto.ProblemResponse
// @Failure 401 {object} middleware.ErrorResponse "Unauthorized"
// @Router /problems [get]
func (h *ProblemHandler) ListProblems(c *fiber.Ctx) error {
	user := middleware.CurrentUser(c)
	if user == nil {
		return domain.NewUnauthorizedError("Could not validate credentials")
	}

	var filters dto.ProblemListFilters
	if err := c.QueryParser(&filters); err != nil {
		return domain.ValidationErrors{domain.NewInvalidFormatError("query", err.Error())}
	}

	problems, err := h.problemService.ListProblems(c.Context(), user.ID, domain.ProblemFilters{
		Subject:        filters.Subject,
		Course:         filters.Course,
		BookmarkedOnly: filters.BookmarkedOnly,
	})
	if err != nil {
		return err
	}
	return c.JSON(dto.NewProblemListResponse(problems))
}

func parseProblemID(c *fiber.Ctx) (int64, error) {
	problemID, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil {
		return 0, domain.ValidationErrors{domain.NewInvalidFormatError("id", c.Params("id"))}
	}
	return problemID, nil
}
