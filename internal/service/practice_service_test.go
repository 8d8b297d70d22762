package service

import (
	"context"
	"testing"
	"time"

	"jeeprep_backend/internal/model"
	"jeeprep_backend/internal/util"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRewardDeltas(t *testing.T) {
	tests := []struct {
		name       string
		difficulty model.Difficulty
		correct    bool
		wantXP     int
		wantCoins  int
	}{
		{"easy correct", model.Easy, true, 10, 1},
		{"medium correct", model.Medium, true, 15, 2},
		{"hard correct", model.Hard, true, 20, 2},
		{"easy incorrect", model.Easy, false, -5, 0},
		{"medium incorrect", model.Medium, false, -8, 0},
		{"hard incorrect", model.Hard, false, -10, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			xp, coins := rewardDeltas(tt.difficulty, tt.correct)
			assert.Equal(t, tt.wantXP, xp)
			assert.Equal(t, tt.wantCoins, coins)
		})
	}
}

func TestSubmitAttempt_CorrectEasyMCQ(t *testing.T) {
	db := newTestDB(t)
	rdb := newTestRedis(t)
	svc := newPracticeService(t, db, rdb)

	user := createTestUser(t, db, "Asha", 0, 100)
	question := createTestQuestion(t, db, model.Question{
		Subject:      "Physics",
		Chapter:      "Units",
		Year:         2020,
		QuestionText: "SI unit of force?",
		Options:      []string{"Newton", "Joule", "Watt", "Pascal"},
		CorrectAns:   "Newton",
		QuestionType: model.MCQ,
		Difficulty:   model.Easy,
	})

	result, err := svc.SubmitAttempt(context.Background(), user.ID, SubmitRequest{
		QuestionID:     question.ID,
		SelectedAnswer: "Newton",
		TimeTakenSec:   12,
	})
	require.NoError(t, err)

	assert.True(t, result.Correct)
	assert.Equal(t, 10, result.XPDelta)
	assert.Equal(t, 1, result.CoinDelta)
	assert.Equal(t, "Newton", result.CorrectAns)
	assert.Equal(t, 10, result.Profile.XP)
	assert.Equal(t, 101, result.Profile.Coins)
	assert.Equal(t, 1, result.Profile.StreakDays)

	var attempts []model.Attempt
	require.NoError(t, db.Where("user_id = ?", user.ID).Find(&attempts).Error)
	require.Len(t, attempts, 1)
	assert.True(t, attempts[0].IsCorrect)
	assert.Equal(t, question.ID, attempts[0].QuestionID)
	assert.Equal(t, 12, attempts[0].TimeTakenSec)
}

func TestSubmitAttempt_IncorrectHard(t *testing.T) {
	db := newTestDB(t)
	rdb := newTestRedis(t)
	svc := newPracticeService(t, db, rdb)

	user := createTestUser(t, db, "Ravi", 50, 100)
	question := createTestQuestion(t, db, model.Question{
		Subject:      "Maths",
		Chapter:      "Limits",
		Year:         2021,
		QuestionText: "lim x->0 sin(x)/x?",
		Options:      []string{"0", "1", "Infinity", "Does not exist"},
		CorrectAns:   "1",
		QuestionType: model.MCQ,
		Difficulty:   model.Hard,
	})

	result, err := svc.SubmitAttempt(context.Background(), user.ID, SubmitRequest{
		QuestionID:     question.ID,
		SelectedAnswer: "0",
	})
	require.NoError(t, err)

	assert.False(t, result.Correct)
	assert.Equal(t, -10, result.XPDelta)
	assert.Equal(t, 0, result.CoinDelta)
	assert.Equal(t, 40, result.Profile.XP)
	assert.Equal(t, 100, result.Profile.Coins)

	var attempt model.Attempt
	require.NoError(t, db.Where("user_id = ?", user.ID).First(&attempt).Error)
	assert.False(t, attempt.IsCorrect)
}

func TestSubmitAttempt_NumericExactStringMatch(t *testing.T) {
	db := newTestDB(t)
	rdb := newTestRedis(t)
	svc := newPracticeService(t, db, rdb)

	user := createTestUser(t, db, "Meera", 0, 100)
	question := createTestQuestion(t, db, model.Question{
		Subject:      "Maths",
		Chapter:      "Definite Integration",
		Year:         2023,
		QuestionText: "Integral of 2x from 0 to 3?",
		Options:      []string{},
		CorrectAns:   "9",
		QuestionType: model.Numeric,
		Difficulty:   model.Easy,
	})

	// Answers are compared as entered, so "9.0" is not "9".
	result, err := svc.SubmitAttempt(context.Background(), user.ID, SubmitRequest{
		QuestionID:     question.ID,
		SelectedAnswer: "9.0",
	})
	require.NoError(t, err)
	assert.False(t, result.Correct)

	result, err = svc.SubmitAttempt(context.Background(), user.ID, SubmitRequest{
		QuestionID:     question.ID,
		SelectedAnswer: "9",
	})
	require.NoError(t, err)
	assert.True(t, result.Correct)
}

func TestSubmitAttempt_UnknownQuestion(t *testing.T) {
	db := newTestDB(t)
	rdb := newTestRedis(t)
	svc := newPracticeService(t, db, rdb)

	user := createTestUser(t, db, "Kiran", 0, 100)

	_, err := svc.SubmitAttempt(context.Background(), user.ID, SubmitRequest{
		QuestionID:     "no-such-id",
		SelectedAnswer: "42",
	})
	assert.ErrorIs(t, err, util.ErrQuestionNotFound)
}

func TestSubmitAttempt_DoubleSubmitGuard(t *testing.T) {
	db := newTestDB(t)
	rdb := newTestRedis(t)
	svc := newPracticeService(t, db, rdb)

	user := createTestUser(t, db, "Dev", 0, 100)
	question := createTestQuestion(t, db, model.Question{
		Subject:      "Physics",
		Chapter:      "Optics",
		Year:         2019,
		QuestionText: "Focal length of a plane mirror?",
		Options:      []string{"Zero", "Infinity", "1 m", "Undefined"},
		CorrectAns:   "Infinity",
		QuestionType: model.MCQ,
		Difficulty:   model.Easy,
	})

	ctx := context.Background()
	// Simulate a grading already in flight for this user/question pair.
	require.NoError(t, rdb.SetNX(ctx, inFlightKey(user.ID, question.ID), 1, time.Minute).Err())

	_, err := svc.SubmitAttempt(ctx, user.ID, SubmitRequest{
		QuestionID:     question.ID,
		SelectedAnswer: "Infinity",
	})
	assert.ErrorIs(t, err, util.ErrAttemptInFlight)

	// The guard is released once the first grading finishes.
	require.NoError(t, rdb.Del(ctx, inFlightKey(user.ID, question.ID)).Err())
	_, err = svc.SubmitAttempt(ctx, user.ID, SubmitRequest{
		QuestionID:     question.ID,
		SelectedAnswer: "Infinity",
	})
	assert.NoError(t, err)
}

func TestNextStreak(t *testing.T) {
	now := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)

	tests := []struct {
		name         string
		current      int
		lastPractice time.Time
		want         int
	}{
		{"first ever attempt", 0, time.Time{}, 1},
		{"second attempt same day", 3, now.Add(-2 * time.Hour), 3},
		{"consecutive day", 3, now.AddDate(0, 0, -1), 4},
		{"missed a day", 7, now.AddDate(0, 0, -2), 1},
		{"long gap", 30, now.AddDate(0, -1, 0), 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, nextStreak(tt.current, tt.lastPractice, now))
		})
	}
}

func TestUsePowerUp_NeverRemovesCorrectOption(t *testing.T) {
	db := newTestDB(t)
	rdb := newTestRedis(t)
	svc := newPracticeService(t, db, rdb)

	question := createTestQuestion(t, db, model.Question{
		Subject:      "Chemistry",
		Chapter:      "Periodic Table",
		Year:         2022,
		QuestionText: "Most electronegative element?",
		Options:      []string{"Oxygen", "Fluorine", "Chlorine", "Nitrogen"},
		CorrectAns:   "Fluorine",
		QuestionType: model.MCQ,
		Difficulty:   model.Medium,
	})

	// The removed index is random; check the invariant across fresh users.
	for i := 0; i < 20; i++ {
		user := createTestUser(t, db, "Player"+string(rune('A'+i)), 0, 100)

		result, err := svc.UsePowerUp(context.Background(), user.ID, question.ID)
		require.NoError(t, err)
		require.True(t, result.Applied)
		require.GreaterOrEqual(t, result.RemovedIndex, 0)
		require.Less(t, result.RemovedIndex, len(question.Options))
		assert.NotEqual(t, "Fluorine", question.Options[result.RemovedIndex])
		assert.Equal(t, 100-PowerUpCost, result.Profile.Coins)
	}
}

func TestUsePowerUp_InsufficientCoins(t *testing.T) {
	db := newTestDB(t)
	rdb := newTestRedis(t)
	svc := newPracticeService(t, db, rdb)

	user := createTestUser(t, db, "Broke", 0, PowerUpCost-1)
	question := createTestQuestion(t, db, model.Question{
		Subject:      "Physics",
		Chapter:      "Waves",
		Year:         2021,
		QuestionText: "Speed of sound in air at 20 C?",
		Options:      []string{"343 m/s", "300 m/s", "340 km/h", "3x10^8 m/s"},
		CorrectAns:   "343 m/s",
		QuestionType: model.MCQ,
		Difficulty:   model.Easy,
	})

	_, err := svc.UsePowerUp(context.Background(), user.ID, question.ID)
	assert.ErrorIs(t, err, util.ErrInsufficientCoins)

	fresh, dbErr := svc.UserRepo.FindByID(user.ID)
	require.NoError(t, dbErr)
	assert.Equal(t, PowerUpCost-1, fresh.Coins)
}

func TestUsePowerUp_OncePerQuestion(t *testing.T) {
	db := newTestDB(t)
	rdb := newTestRedis(t)
	svc := newPracticeService(t, db, rdb)

	user := createTestUser(t, db, "Twice", 0, 100)
	question := createTestQuestion(t, db, model.Question{
		Subject:      "Maths",
		Chapter:      "Probability",
		Year:         2020,
		QuestionText: "Probability of heads on a fair coin?",
		Options:      []string{"1/2", "1/3", "1/4", "1"},
		CorrectAns:   "1/2",
		QuestionType: model.MCQ,
		Difficulty:   model.Easy,
	})

	ctx := context.Background()
	_, err := svc.UsePowerUp(ctx, user.ID, question.ID)
	require.NoError(t, err)

	_, err = svc.UsePowerUp(ctx, user.ID, question.ID)
	assert.ErrorIs(t, err, util.ErrPowerUpAlreadyUsed)

	fresh, dbErr := svc.UserRepo.FindByID(user.ID)
	require.NoError(t, dbErr)
	assert.Equal(t, 100-PowerUpCost, fresh.Coins)
}

func TestUsePowerUp_NumericRejected(t *testing.T) {
	db := newTestDB(t)
	rdb := newTestRedis(t)
	svc := newPracticeService(t, db, rdb)

	user := createTestUser(t, db, "Numeric", 0, 100)
	question := createTestQuestion(t, db, model.Question{
		Subject:      "Maths",
		Chapter:      "Algebra",
		Year:         2022,
		QuestionText: "Solve x + 1 = 3.",
		Options:      []string{},
		CorrectAns:   "2",
		QuestionType: model.Numeric,
		Difficulty:   model.Easy,
	})

	_, err := svc.UsePowerUp(context.Background(), user.ID, question.ID)
	assert.ErrorIs(t, err, util.ErrNotMCQ)
}

func TestUsePowerUp_RefundWhenNoIncorrectOption(t *testing.T) {
	db := newTestDB(t)
	rdb := newTestRedis(t)
	svc := newPracticeService(t, db, rdb)

	user := createTestUser(t, db, "Refund", 0, 100)
	question := createTestQuestion(t, db, model.Question{
		Subject:      "Physics",
		Chapter:      "Broken",
		Year:         2018,
		QuestionText: "Malformed import where every option is the answer.",
		Options:      []string{"42", "42"},
		CorrectAns:   "42",
		QuestionType: model.MCQ,
		Difficulty:   model.Easy,
	})

	result, err := svc.UsePowerUp(context.Background(), user.ID, question.ID)
	require.NoError(t, err)

	assert.False(t, result.Applied)
	assert.True(t, result.Refunded)
	assert.Equal(t, -1, result.RemovedIndex)
	assert.Equal(t, 100, result.Profile.Coins)
}
