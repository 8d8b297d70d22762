package service

import (
	"fmt"
	"strings"
	"testing"

	"jeeprep_backend/internal/model"
	"jeeprep_backend/internal/repository"
	"jeeprep_backend/pkg/database"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// newTestDB opens an in-memory sqlite database named after the test so
// parallel tests do not share state, runs the real migration and seeds.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	// A second connection to a shared in-memory DB can race table
	// creation, so keep the pool at one.
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, database.Migrate(db))
	return db
}

func newTestRedis(t *testing.T) *redis.Client {
	t.Helper()
	mr := miniredis.RunT(t)
	return redis.NewClient(&redis.Options{Addr: mr.Addr()})
}

func createTestUser(t *testing.T, db *gorm.DB, name string, xp, coins int) *model.User {
	t.Helper()
	user := &model.User{
		Name:  name,
		Email: fmt.Sprintf("%s@example.com", strings.ToLower(name)),
		Role:  model.RoleUser,
		XP:    xp,
		Coins: coins,
	}
	require.NoError(t, db.Create(user).Error)
	return user
}

func createTestQuestion(t *testing.T, db *gorm.DB, q model.Question) *model.Question {
	t.Helper()
	require.NoError(t, db.Create(&q).Error)
	return &q
}

func newPracticeService(t *testing.T, db *gorm.DB, rdb *redis.Client) *PracticeService {
	t.Helper()
	userRepo := repository.NewUserRepository(db)
	questionRepo := repository.NewQuestionRepository(db)
	attemptRepo := repository.NewAttemptRepository(db)
	leaderboard := NewLeaderboardService(userRepo, rdb)
	return NewPracticeService(userRepo, questionRepo, attemptRepo, leaderboard, rdb, db)
}
