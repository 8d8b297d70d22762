package service

import (
	"context"
	"encoding/json"
	"jeeprep_backend/internal/repository"
	"time"

	"github.com/go-redis/redis/v8"
)

const (
	// LeaderboardSize is both the default and the maximum page size.
	LeaderboardSize = 20

	leaderboardCacheKey = "leaderboard:top"
	leaderboardCacheTTL = 10 * time.Second
)

type LeaderboardEntry struct {
	Rank       int    `json:"rank"`
	UserID     uint   `json:"userId"`
	Name       string `json:"name"`
	XP         int    `json:"xp"`
	StreakDays int    `json:"streakDays"`
}

// LeaderboardService is a read-only ranked view over all profiles,
// ordered by experience descending. A short-lived Redis snapshot keeps
// it close to live; ledger writes invalidate the snapshot.
type LeaderboardService struct {
	UserRepo *repository.UserRepository
	Redis    *redis.Client
}

func NewLeaderboardService(userRepo *repository.UserRepository, rdb *redis.Client) *LeaderboardService {
	return &LeaderboardService{
		UserRepo: userRepo,
		Redis:    rdb,
	}
}

func (s *LeaderboardService) TopN(ctx context.Context, n int) ([]LeaderboardEntry, error) {
	if n <= 0 || n > LeaderboardSize {
		n = LeaderboardSize
	}

	entries, err := s.cached(ctx)
	if err != nil {
		entries, err = s.rebuild(ctx)
		if err != nil {
			return nil, err
		}
	}

	if len(entries) > n {
		entries = entries[:n]
	}
	return entries, nil
}

func (s *LeaderboardService) Invalidate(ctx context.Context) error {
	return s.Redis.Del(ctx, leaderboardCacheKey).Err()
}

func (s *LeaderboardService) cached(ctx context.Context) ([]LeaderboardEntry, error) {
	raw, err := s.Redis.Get(ctx, leaderboardCacheKey).Bytes()
	if err != nil {
		return nil, err
	}
	var entries []LeaderboardEntry
	if err := json.Unmarshal(raw, &entries); err != nil {
		return nil, err
	}
	return entries, nil
}

func (s *LeaderboardService) rebuild(ctx context.Context) ([]LeaderboardEntry, error) {
	users, err := s.UserRepo.FindTopByXP(LeaderboardSize)
	if err != nil {
		return nil, err
	}

	entries := make([]LeaderboardEntry, 0, len(users))
	for i, u := range users {
		entries = append(entries, LeaderboardEntry{
			Rank:       i + 1,
			UserID:     u.ID,
			Name:       u.Name,
			XP:         u.XP,
			StreakDays: u.StreakDays,
		})
	}

	if raw, err := json.Marshal(entries); err == nil {
		s.Redis.Set(ctx, leaderboardCacheKey, raw, leaderboardCacheTTL)
	}
	return entries, nil
}
