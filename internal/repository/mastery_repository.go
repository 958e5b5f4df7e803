package repository

import (
	"context"
	"fmt"

	"study-helper/internal/domain"
	"study-helper/internal/repository/models"

	"github.com/jmoiron/sqlx"
)

func toDomainTopicMastery(modelMastery *models.TopicMastery) *domain.TopicMastery {
	if modelMastery == nil {
		return nil
	}
	return &domain.TopicMastery{
		ID:      modelMastery.ID,
		UserID:  modelMastery.UserID,
		Topic:   modelMastery.Topic,
		Mastery: modelMastery.Mastery,
	}
}

// sqlxMasteryRepository implements domain.MasteryRepository using sqlx.
type sqlxMasteryRepository struct {
	db *sqlx.DB
}

// NewSQLXMasteryRepository creates a new instance of sqlxMasteryRepository.
func NewSQLXMasteryRepository(db *sqlx.DB) domain.MasteryRepository {
	return &sqlxMasteryRepository{db: db}
}

// GetMasteryByUserID returns all mastery rows for a user, ordered by topic
// for stable output. An empty result is not an error.
func (r *sqlxMasteryRepository) GetMasteryByUserID(ctx context.Context, userID int64) ([]domain.TopicMastery, error) {
	var modelRows []models.TopicMastery
	query := `SELECT ID, USER_ID, TOPIC, MASTERY FROM topic_mastery WHERE user_id = :1 ORDER BY topic`

	if err := r.db.SelectContext(ctx, &modelRows, query, userID); err != nil {
		return nil, fmt.Errorf("failed to get mastery for user: %w", err)
	}

	rows := make([]domain.TopicMastery, 0, len(modelRows))
	for i := range modelRows {
		rows = append(rows, *toDomainTopicMastery(&modelRows[i]))
	}
	return rows, nil
}
