package service

import (
	"context"
	"encoding/json"
	"strconv"
	"time"

	"study-helper/internal/cache"
	"study-helper/internal/domain"
	"study-helper/internal/dto"
	"study-helper/internal/logger"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

// ProfileService serves per-user learning profiles.
type ProfileService interface {
	GetLearningProfile(ctx context.Context, userID int64) (*dto.LearningProfileResponse, error)
}

type profileServiceImpl struct {
	masteryRepo domain.MasteryRepository
	cache       domain.Cache
	cacheTTL    time.Duration
	group       singleflight.Group
}

// NewProfileService creates a new instance of ProfileService. cache may be
// nil, in which case every read goes to the database.
func NewProfileService(masteryRepo domain.MasteryRepository, cacheClient domain.Cache, cacheTTL time.Duration) ProfileService {
	return &profileServiceImpl{
		masteryRepo: masteryRepo,
		cache:       cacheClient,
		cacheTTL:    cacheTTL,
	}
}

func profileCacheKey(userID int64) string {
	return cache.GenerateCacheKey("profile", "mastery", strconv.FormatInt(userID, 10))
}

// GetLearningProfile returns the mastery map for a user. Results are cached
// with a TTL; concurrent fills for the same user are deduplicated. Cache
// failures fall through to the database and never fail the request.
func (s *profileServiceImpl) GetLearningProfile(ctx context.Context, userID int64) (*dto.LearningProfileResponse, error) {
	appLogger := logger.Get()

	if s.cache != nil {
		cached, err := s.cache.Get(ctx, profileCacheKey(userID))
		if err == nil {
			var profile dto.LearningProfileResponse
			if jsonErr := json.Unmarshal([]byte(cached), &profile); jsonErr == nil {
				return &profile, nil
			}
			// Corrupt entry, drop it and rebuild.
			_ = s.cache.Delete(ctx, profileCacheKey(userID))
		} else if err != domain.ErrCacheMiss {
			appLogger.Warn("Profile cache read failed, falling back to DB",
				zap.Int64("userID", userID), zap.Error(err))
		}
	}

	result, err, _ := s.group.Do(profileCacheKey(userID), func() (interface{}, error) {
		return s.buildProfile(ctx, userID)
	})
	if err != nil {
		return nil, err
	}
	return result.(*dto.LearningProfileResponse), nil
}

func (s *profileServiceImpl) buildProfile(ctx context.Context, userID int64) (*dto.LearningProfileResponse, error) {
	rows, err := s.masteryRepo.GetMasteryByUserID(ctx, userID)
	if err != nil {
		return nil, domain.NewInternalError("failed to load mastery", err)
	}

	mastery := make(map[string]float64, len(rows))
	for _, row := range rows {
		mastery[row.Topic] = row.Mastery
	}

	profile := &dto.LearningProfileResponse{
		UserID:  userID,
		Mastery: mastery,
		Trend:   []float64{}, // no history computation yet
	}

	if s.cache != nil {
		if payload, jsonErr := json.Marshal(profile); jsonErr == nil {
			if cacheErr := s.cache.Set(ctx, profileCacheKey(userID), string(payload), s.cacheTTL); cacheErr != nil {
				logger.Get().Warn("Profile cache write failed",
					zap.Int64("userID", userID), zap.Error(cacheErr))
			}
		}
	}
	return profile, nil
}
