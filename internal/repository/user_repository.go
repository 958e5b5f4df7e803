package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"study-helper/internal/domain"
	"study-helper/internal/repository/models"
	"study-helper/internal/util"

	"github.com/jmoiron/sqlx"
)

func toDomainUser(modelUser *models.User) *domain.User {
	if modelUser == nil {
		return nil
	}
	return &domain.User{
		ID:             modelUser.ID,
		UUID:           modelUser.UUID,
		Username:       modelUser.Username,
		HashedPassword: modelUser.HashedPassword,
		Nickname:       modelUser.Nickname.String,
		IsActive:       modelUser.IsActive,
		IsAdmin:        modelUser.IsAdmin,
		CreatedAt:      modelUser.CreatedAt,
	}
}

func fromDomainUser(domainUser *domain.User) *models.User {
	if domainUser == nil {
		return nil
	}
	return &models.User{
		ID:             domainUser.ID,
		UUID:           domainUser.UUID,
		Username:       domainUser.Username,
		HashedPassword: domainUser.HashedPassword,
		Nickname:       util.StringToNullString(domainUser.Nickname),
		IsActive:       domainUser.IsActive,
		IsAdmin:        domainUser.IsAdmin,
		CreatedAt:      domainUser.CreatedAt,
	}
}

// sqlxUserRepository implements domain.UserRepository using sqlx.
type sqlxUserRepository struct {
	db *sqlx.DB
}

// NewSQLXUserRepository creates a new instance of sqlxUserRepository.
func NewSQLXUserRepository(db *sqlx.DB) domain.UserRepository {
	return &sqlxUserRepository{db: db}
}

const userColumns = `ID, UUID, USERNAME, HASHED_PASSWORD, NICKNAME, IS_ACTIVE, IS_ADMIN, CREATED_AT`

// nextUserID fetches the next value of the users sequence. Oracle has no
// portable RETURNING support through database/sql, so IDs are assigned
// app-side before the INSERT.
func (r *sqlxUserRepository) nextUserID(ctx context.Context) (int64, error) {
	var id int64
	if err := r.db.GetContext(ctx, &id, `SELECT users_seq.NEXTVAL FROM dual`); err != nil {
		return 0, fmt.Errorf("failed to fetch next user id: %w", err)
	}
	return id, nil
}

// CreateUser inserts a new user and fills in the assigned ID and timestamp.
func (r *sqlxUserRepository) CreateUser(ctx context.Context, user *domain.User) error {
	id, err := r.nextUserID(ctx)
	if err != nil {
		return err
	}

	modelUser := fromDomainUser(user)
	modelUser.ID = id
	if modelUser.CreatedAt.IsZero() {
		modelUser.CreatedAt = time.Now()
	}

	query := `INSERT INTO users (ID, UUID, USERNAME, HASHED_PASSWORD, NICKNAME, IS_ACTIVE, IS_ADMIN, CREATED_AT)
	          VALUES (:1, :2, :3, :4, :5, :6, :7, :8)`

	_, err = r.db.ExecContext(ctx, query,
		modelUser.ID,
		modelUser.UUID,
		modelUser.Username,
		modelUser.HashedPassword,
		modelUser.Nickname,
		modelUser.IsActive,
		modelUser.IsAdmin,
		modelUser.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create user: %w", err)
	}

	user.ID = modelUser.ID
	user.CreatedAt = modelUser.CreatedAt
	return nil
}

// GetUserByUsername retrieves a user by login name.
func (r *sqlxUserRepository) GetUserByUsername(ctx context.Context, username string) (*domain.User, error) {
	var modelUser models.User
	query := `SELECT ` + userColumns + ` FROM users WHERE username = :1`

	err := r.db.GetContext(ctx, &modelUser, query, username)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil // Not found is not an error, services decide
		}
		return nil, fmt.Errorf("failed to get user by username: %w", err)
	}
	return toDomainUser(&modelUser), nil
}

// GetUserByID retrieves a user by internal ID.
func (r *sqlxUserRepository) GetUserByID(ctx context.Context, userID int64) (*domain.User, error) {
	var modelUser models.User
	query := `SELECT ` + userColumns + ` FROM users WHERE id = :1`

	err := r.db.GetContext(ctx, &modelUser, query, userID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get user by id: %w", err)
	}
	return toDomainUser(&modelUser), nil
}

// ListUsers returns a page of users ordered by ID.
func (r *sqlxUserRepository) ListUsers(ctx context.Context, offset, limit int) ([]domain.User, error) {
	var modelUsers []models.User
	query := `SELECT ` + userColumns + ` FROM users ORDER BY id OFFSET :1 ROWS FETCH NEXT :2 ROWS ONLY`

	if err := r.db.SelectContext(ctx, &modelUsers, query, offset, limit); err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}

	users := make([]domain.User, 0, len(modelUsers))
	for i := range modelUsers {
		users = append(users, *toDomainUser(&modelUsers[i]))
	}
	return users, nil
}

// SetUserActive flips the is_active flag and returns the updated user.
// Returns (nil, nil) when no such user exists.
func (r *sqlxUserRepository) SetUserActive(ctx context.Context, userID int64, active bool) (*domain.User, error) {
	query := `UPDATE users SET is_active = :1 WHERE id = :2`

	result, err := r.db.ExecContext(ctx, query, active, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to set user active flag: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return nil, nil
	}

	return r.GetUserByID(ctx, userID)
}
