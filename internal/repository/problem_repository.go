package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"study-helper/internal/domain"
	"study-helper/internal/repository/models"
	"study-helper/internal/util"

	"github.com/jmoiron/sqlx"
)

func toDomainProblem(modelProblem *models.Problem) *domain.Problem {
	if modelProblem == nil {
		return nil
	}

	var difficulty *int
	if modelProblem.Difficulty.Valid {
		d := int(modelProblem.Difficulty.Int64)
		difficulty = &d
	}

	return &domain.Problem{
		ID:            modelProblem.ID,
		OwnerID:       util.NullInt64ToPtr(modelProblem.OwnerID),
		SourceType:    modelProblem.SourceType,
		Raw:           modelProblem.Raw.String,
		FileContent:   modelProblem.FileContent.String,
		Parsed:        modelProblem.Parsed.String,
		Subject:       modelProblem.Subject.String,
		Course:        modelProblem.Course.String,
		ProblemType:   modelProblem.ProblemType.String,
		KnowledgeTags: modelProblem.KnowledgeTags,
		Difficulty:    difficulty,
		IsBookmarked:  modelProblem.IsBookmarked,
		Tags:          modelProblem.Tags,
		Notes:         modelProblem.Notes.String,
		CreatedAt:     modelProblem.CreatedAt,
		UpdatedAt:     modelProblem.UpdatedAt,
	}
}

func fromDomainProblem(domainProblem *domain.Problem) *models.Problem {
	if domainProblem == nil {
		return nil
	}

	var difficulty sql.NullInt64
	if domainProblem.Difficulty != nil {
		difficulty = sql.NullInt64{Int64: int64(*domainProblem.Difficulty), Valid: true}
	}

	return &models.Problem{
		ID:            domainProblem.ID,
		OwnerID:       util.Int64ToNullInt64(domainProblem.OwnerID),
		SourceType:    domainProblem.SourceType,
		Raw:           util.StringToNullString(domainProblem.Raw),
		FileContent:   util.StringToNullString(domainProblem.FileContent),
		Parsed:        util.StringToNullString(domainProblem.Parsed),
		Subject:       util.StringToNullString(domainProblem.Subject),
		Course:        util.StringToNullString(domainProblem.Course),
		ProblemType:   util.StringToNullString(domainProblem.ProblemType),
		KnowledgeTags: domainProblem.KnowledgeTags,
		Difficulty:    difficulty,
		IsBookmarked:  domainProblem.IsBookmarked,
		Tags:          domainProblem.Tags,
		Notes:         util.StringToNullString(domainProblem.Notes),
		CreatedAt:     domainProblem.CreatedAt,
		UpdatedAt:     domainProblem.UpdatedAt,
	}
}

// sqlxProblemRepository implements domain.ProblemRepository using sqlx.
type sqlxProblemRepository struct {
	db *sqlx.DB
}

// NewSQLXProblemRepository creates a new instance of sqlxProblemRepository.
func NewSQLXProblemRepository(db *sqlx.DB) domain.ProblemRepository {
	return &sqlxProblemRepository{db: db}
}

const problemColumns = `ID, OWNER_ID, SOURCE_TYPE, RAW_CONTENT, FILE_CONTENT, PARSED, SUBJECT, COURSE, PROBLEM_TYPE, KNOWLEDGE_TAGS, DIFFICULTY, IS_BOOKMARKED, TAGS, NOTES, CREATED_AT, UPDATED_AT`

func (r *sqlxProblemRepository) nextProblemID(ctx context.Context) (int64, error) {
	var id int64
	if err := r.db.GetContext(ctx, &id, `SELECT problems_seq.NEXTVAL FROM dual`); err != nil {
		return 0, fmt.Errorf("failed to fetch next problem id: %w", err)
	}
	return id, nil
}

// CreateProblem inserts a new problem and fills in the assigned ID and
// timestamps on the passed domain object.
func (r *sqlxProblemRepository) CreateProblem(ctx context.Context, problem *domain.Problem) error {
	id, err := r.nextProblemID(ctx)
	if err != nil {
		return err
	}

	modelProblem := fromDomainProblem(problem)
	modelProblem.ID = id
	now := time.Now()
	modelProblem.CreatedAt = now
	modelProblem.UpdatedAt = now

	// go-ora cannot bind a driver.Valuer slice directly, so JSON columns
	// are converted to their string form up front.
	knowledgeTags, err := modelProblem.KnowledgeTags.Value()
	if err != nil {
		return fmt.Errorf("failed to serialize knowledge tags: %w", err)
	}
	tags, err := modelProblem.Tags.Value()
	if err != nil {
		return fmt.Errorf("failed to serialize tags: %w", err)
	}

	query := `INSERT INTO problems (ID, OWNER_ID, SOURCE_TYPE, RAW_CONTENT, FILE_CONTENT, PARSED, SUBJECT, COURSE, PROBLEM_TYPE, KNOWLEDGE_TAGS, DIFFICULTY, IS_BOOKMARKED, TAGS, NOTES, CREATED_AT, UPDATED_AT)
	          VALUES (:1, :2, :3, :4, :5, :6, :7, :8, :9, :10, :11, :12, :13, :14, :15, :16)`

	_, err = r.db.ExecContext(ctx, query,
		modelProblem.ID,
		modelProblem.OwnerID,
		modelProblem.SourceType,
		modelProblem.Raw,
		modelProblem.FileContent,
		modelProblem.Parsed,
		modelProblem.Subject,
		modelProblem.Course,
		modelProblem.ProblemType,
		knowledgeTags,
		modelProblem.Difficulty,
		modelProblem.IsBookmarked,
		tags,
		modelProblem.Notes,
		modelProblem.CreatedAt,
		modelProblem.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create problem: %w", err)
	}

	problem.ID = modelProblem.ID
	problem.CreatedAt = modelProblem.CreatedAt
	problem.UpdatedAt = modelProblem.UpdatedAt
	return nil
}

// GetProblemByID retrieves a problem by ID.
func (r *sqlxProblemRepository) GetProblemByID(ctx context.Context, problemID int64) (*domain.Problem, error) {
	var modelProblem models.Problem
	query := `SELECT ` + problemColumns + ` FROM problems WHERE id = :1`

	err := r.db.GetContext(ctx, &modelProblem, query, problemID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get problem by id: %w", err)
	}
	return toDomainProblem(&modelProblem), nil
}

// UpdateProblem applies the provided fields of a partial update and returns
// the resulting row. Returns (nil, nil) when the problem does not exist.
// The update and the read-back share a transaction so the returned row is
// exactly what was written.
func (r *sqlxProblemRepository) UpdateProblem(ctx context.Context, problemID int64, update *domain.ProblemUpdate) (*domain.Problem, error) {
	setClauses, args, err := buildProblemUpdateSet(update)
	if err != nil {
		return nil, err
	}

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	args = append(args, problemID)
	query := fmt.Sprintf(`UPDATE problems SET %s WHERE id = :%d`, strings.Join(setClauses, ", "), len(args))

	result, err := tx.ExecContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to update problem: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return nil, nil
	}

	var modelProblem models.Problem
	readQuery := `SELECT ` + problemColumns + ` FROM problems WHERE id = :1`
	if err := tx.GetContext(ctx, &modelProblem, readQuery, problemID); err != nil {
		return nil, fmt.Errorf("failed to read back updated problem: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit problem update: %w", err)
	}
	return toDomainProblem(&modelProblem), nil
}

// buildProblemUpdateSet turns the non-nil fields of a ProblemUpdate into
// positional SET clauses. UPDATED_AT is always touched.
func buildProblemUpdateSet(update *domain.ProblemUpdate) ([]string, []interface{}, error) {
	var setClauses []string
	var args []interface{}

	add := func(column string, value interface{}) {
		args = append(args, value)
		setClauses = append(setClauses, fmt.Sprintf("%s = :%d", column, len(args)))
	}

	if update.Subject != nil {
		add("subject", util.StringToNullString(*update.Subject))
	}
	if update.Course != nil {
		add("course", util.StringToNullString(*update.Course))
	}
	if update.ProblemType != nil {
		add("problem_type", util.StringToNullString(*update.ProblemType))
	}
	if update.KnowledgeTags != nil {
		v, err := models.StringSlice(*update.KnowledgeTags).Value()
		if err != nil {
			return nil, nil, fmt.Errorf("failed to serialize knowledge tags: %w", err)
		}
		add("knowledge_tags", v)
	}
	if update.Difficulty != nil {
		add("difficulty", int64(*update.Difficulty))
	}
	if update.IsBookmarked != nil {
		add("is_bookmarked", *update.IsBookmarked)
	}
	if update.Tags != nil {
		v, err := models.StringSlice(*update.Tags).Value()
		if err != nil {
			return nil, nil, fmt.Errorf("failed to serialize tags: %w", err)
		}
		add("tags", v)
	}
	if update.Notes != nil {
		add("notes", util.StringToNullString(*update.Notes))
	}

	add("updated_at", time.Now())
	return setClauses, args, nil
}

// ListProblemsByOwner returns the caller's problems, newest first, narrowed
// by the optional filters.
func (r *sqlxProblemRepository) ListProblemsByOwner(ctx context.Context, ownerID int64, filters domain.ProblemFilters) ([]domain.Problem, error) {
	args := []interface{}{ownerID}
	conditions := []string{"owner_id = :1"}

	if filters.Subject != "" {
		args = append(args, filters.Subject)
		conditions = append(conditions, fmt.Sprintf("subject = :%d", len(args)))
	}
	if filters.Course != "" {
		args = append(args, filters.Course)
		conditions = append(conditions, fmt.Sprintf("course = :%d", len(args)))
	}
	if filters.BookmarkedOnly {
		conditions = append(conditions, "is_bookmarked = 1")
	}

	query := `SELECT ` + problemColumns + ` FROM problems WHERE ` +
		strings.Join(conditions, " AND ") + ` ORDER BY id DESC`

	var modelProblems []models.Problem
	if err := r.db.SelectContext(ctx, &modelProblems, query, args...); err != nil {
		return nil, fmt.Errorf("failed to list problems: %w", err)
	}

	problems := make([]domain.Problem, 0, len(modelProblems))
	for i := range modelProblems {
		problems = append(problems, *toDomainProblem(&modelProblems[i]))
	}
	return problems, nil
}
