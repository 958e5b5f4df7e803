package repository

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupMasteryTestDB(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock) {
	mockDB, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("Failed to create sqlmock: %v", err)
	}
	sqlxDB := sqlx.NewDb(mockDB, "sqlmock")
	return sqlxDB, mock
}

func TestSQLXMasteryRepository_GetMasteryByUserID(t *testing.T) {
	db, mock := setupMasteryTestDB(t)
	repo := NewSQLXMasteryRepository(db)
	defer db.Close()

	rows := sqlmock.NewRows([]string{"ID", "USER_ID", "TOPIC", "MASTERY"}).
		AddRow(int64(1), int64(3), "derivatives", 0.82).
		AddRow(int64(2), int64(3), "integration", 0.45)

	mock.ExpectQuery(`SELECT .+ FROM topic_mastery WHERE user_id = :1 ORDER BY topic`).
		WithArgs(int64(3)).
		WillReturnRows(rows)

	mastery, err := repo.GetMasteryByUserID(context.Background(), 3)
	require.NoError(t, err)
	require.Len(t, mastery, 2)
	assert.Equal(t, "derivatives", mastery[0].Topic)
	assert.InDelta(t, 0.82, mastery[0].Mastery, 1e-9)
	assert.Equal(t, "integration", mastery[1].Topic)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSQLXMasteryRepository_GetMasteryByUserID_Empty(t *testing.T) {
	db, mock := setupMasteryTestDB(t)
	repo := NewSQLXMasteryRepository(db)
	defer db.Close()

	mock.ExpectQuery(`SELECT .+ FROM topic_mastery WHERE user_id = :1 ORDER BY topic`).
		WithArgs(int64(9)).
		WillReturnRows(sqlmock.NewRows([]string{"ID", "USER_ID", "TOPIC", "MASTERY"}))

	mastery, err := repo.GetMasteryByUserID(context.Background(), 9)
	require.NoError(t, err)
	assert.Empty(t, mastery)
	assert.NoError(t, mock.ExpectationsWereMet())
}
