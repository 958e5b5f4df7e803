package service

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"study-helper/internal/adapter"
	"study-helper/internal/domain"
	"study-helper/internal/dto"

	"github.com/go-redis/redismock/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestProfileService_CacheMissThenFill(t *testing.T) {
	client, redisMock := redismock.NewClientMock()
	masteryRepo := new(MockMasteryRepository)
	svc := NewProfileService(masteryRepo, adapter.NewRedisCacheAdapter(client), time.Minute)

	masteryRepo.On("GetMasteryByUserID", mock.Anything, int64(42)).Return([]domain.TopicMastery{
		{ID: 1, UserID: 42, Topic: "derivatives", Mastery: 0.82},
		{ID: 2, UserID: 42, Topic: "integration", Mastery: 0.45},
	}, nil)

	expected := &dto.LearningProfileResponse{
		UserID:  42,
		Mastery: map[string]float64{"derivatives": 0.82, "integration": 0.45},
		Trend:   []float64{},
	}
	payload, err := json.Marshal(expected)
	require.NoError(t, err)

	key := profileCacheKey(42)
	redisMock.ExpectGet(key).RedisNil()
	redisMock.ExpectSet(key, string(payload), time.Minute).SetVal("OK")

	profile, err := svc.GetLearningProfile(context.Background(), 42)
	require.NoError(t, err)
	assert.Equal(t, expected, profile)
	assert.NoError(t, redisMock.ExpectationsWereMet())
	masteryRepo.AssertExpectations(t)
}

func TestProfileService_CacheHitSkipsDB(t *testing.T) {
	client, redisMock := redismock.NewClientMock()
	masteryRepo := new(MockMasteryRepository)
	svc := NewProfileService(masteryRepo, adapter.NewRedisCacheAdapter(client), time.Minute)

	cached := `{"user_id":42,"mastery":{"derivatives":0.82},"trend":[]}`
	redisMock.ExpectGet(profileCacheKey(42)).SetVal(cached)

	profile, err := svc.GetLearningProfile(context.Background(), 42)
	require.NoError(t, err)
	assert.Equal(t, int64(42), profile.UserID)
	assert.Equal(t, 0.82, profile.Mastery["derivatives"])
	masteryRepo.AssertNotCalled(t, "GetMasteryByUserID", mock.Anything, mock.Anything)
	assert.NoError(t, redisMock.ExpectationsWereMet())
}

func TestProfileService_CacheFailureDegradesToDB(t *testing.T) {
	cacheMock := new(MockCache)
	masteryRepo := new(MockMasteryRepository)
	svc := NewProfileService(masteryRepo, cacheMock, time.Minute)

	cacheMock.On("Get", mock.Anything, mock.Anything).Return("", errors.New("redis down"))
	cacheMock.On("Set", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(errors.New("redis down"))
	masteryRepo.On("GetMasteryByUserID", mock.Anything, int64(7)).Return([]domain.TopicMastery{}, nil)

	profile, err := svc.GetLearningProfile(context.Background(), 7)
	require.NoError(t, err)
	assert.Equal(t, int64(7), profile.UserID)
	assert.Empty(t, profile.Mastery)
	assert.NotNil(t, profile.Trend)
	assert.Empty(t, profile.Trend)
}

func TestProfileService_NoCacheConfigured(t *testing.T) {
	masteryRepo := new(MockMasteryRepository)
	svc := NewProfileService(masteryRepo, nil, 0)

	masteryRepo.On("GetMasteryByUserID", mock.Anything, int64(7)).Return([]domain.TopicMastery{
		{ID: 1, UserID: 7, Topic: "limits", Mastery: 0.5},
	}, nil)

	profile, err := svc.GetLearningProfile(context.Background(), 7)
	require.NoError(t, err)
	assert.Equal(t, map[string]float64{"limits": 0.5}, profile.Mastery)
}
