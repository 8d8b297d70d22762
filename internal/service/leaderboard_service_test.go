package service

import (
	"context"
	"fmt"
	"testing"

	"jeeprep_backend/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTopN_OrdersByXPDescending(t *testing.T) {
	db := newTestDB(t)
	rdb := newTestRedis(t)
	userRepo := repository.NewUserRepository(db)
	svc := NewLeaderboardService(userRepo, rdb)

	createTestUser(t, db, "Low", 50, 100)
	createTestUser(t, db, "High", 200, 100)
	createTestUser(t, db, "Mid", 75, 100)

	entries, err := svc.TopN(context.Background(), 10)
	require.NoError(t, err)
	require.Len(t, entries, 3)

	assert.Equal(t, []string{"High", "Mid", "Low"}, []string{entries[0].Name, entries[1].Name, entries[2].Name})
	assert.Equal(t, []int{200, 75, 50}, []int{entries[0].XP, entries[1].XP, entries[2].XP})
	assert.Equal(t, []int{1, 2, 3}, []int{entries[0].Rank, entries[1].Rank, entries[2].Rank})
}

func TestTopN_CapsAtLeaderboardSize(t *testing.T) {
	db := newTestDB(t)
	rdb := newTestRedis(t)
	svc := NewLeaderboardService(repository.NewUserRepository(db), rdb)

	for i := 0; i < LeaderboardSize+5; i++ {
		createTestUser(t, db, fmt.Sprintf("Player%02d", i), i*10, 100)
	}

	entries, err := svc.TopN(context.Background(), 0)
	require.NoError(t, err)
	assert.Len(t, entries, LeaderboardSize)

	entries, err = svc.TopN(context.Background(), LeaderboardSize+100)
	require.NoError(t, err)
	assert.Len(t, entries, LeaderboardSize)
}

func TestTopN_SnapshotRefreshesAfterInvalidate(t *testing.T) {
	db := newTestDB(t)
	rdb := newTestRedis(t)
	userRepo := repository.NewUserRepository(db)
	svc := NewLeaderboardService(userRepo, rdb)

	leader := createTestUser(t, db, "Leader", 100, 100)
	rival := createTestUser(t, db, "Rival", 90, 100)

	ctx := context.Background()
	entries, err := svc.TopN(ctx, 2)
	require.NoError(t, err)
	assert.Equal(t, leader.ID, entries[0].UserID)

	// The overtake only shows once the snapshot is invalidated.
	require.NoError(t, userRepo.IncrementBalances(db, rival.ID, 50, 0))

	entries, err = svc.TopN(ctx, 2)
	require.NoError(t, err)
	assert.Equal(t, leader.ID, entries[0].UserID)

	require.NoError(t, svc.Invalidate(ctx))

	entries, err = svc.TopN(ctx, 2)
	require.NoError(t, err)
	assert.Equal(t, rival.ID, entries[0].UserID)
	assert.Equal(t, 140, entries[0].XP)
}
