package service

import (
	"context"
	"errors"
	"fmt"
	"jeeprep_backend/internal/model"
	"jeeprep_backend/internal/repository"
	"jeeprep_backend/internal/util"
	"jeeprep_backend/pkg/logger"
	"jeeprep_backend/pkg/monitoring"
	"math"
	"math/rand"
	"time"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const (
	// PowerUpCost is the coin price of the remove-one-wrong-option aid.
	PowerUpCost = 20

	baseRewardXP  = 10
	basePenaltyXP = 5

	inFlightTTL = 10 * time.Second
	powerUpTTL  = 24 * time.Hour
)

// PracticeService grades answer submissions server-side: correctness,
// reward arithmetic, the profile delta and the attempt log all happen
// here, never in the client.
type PracticeService struct {
	UserRepo     *repository.UserRepository
	QuestionRepo *repository.QuestionRepository
	AttemptRepo  *repository.AttemptRepository
	Leaderboard  *LeaderboardService
	Redis        *redis.Client
	DB           *gorm.DB
}

func NewPracticeService(
	userRepo *repository.UserRepository,
	questionRepo *repository.QuestionRepository,
	attemptRepo *repository.AttemptRepository,
	leaderboard *LeaderboardService,
	rdb *redis.Client,
	db *gorm.DB,
) *PracticeService {
	return &PracticeService{
		UserRepo:     userRepo,
		QuestionRepo: questionRepo,
		AttemptRepo:  attemptRepo,
		Leaderboard:  leaderboard,
		Redis:        rdb,
		DB:           db,
	}
}

type SubmitRequest struct {
	QuestionID     string `json:"questionId" binding:"required"`
	SelectedAnswer string `json:"selectedAnswer" binding:"required"`
	TimeTakenSec   int    `json:"timeTakenSec" binding:"gte=0"`
	Flagged        bool   `json:"flagged"`
}

type GradeResult struct {
	AttemptID      string      `json:"attemptId"`
	Correct        bool        `json:"correct"`
	CorrectAns     string      `json:"correctAns"`
	Explanation    string      `json:"explanation"`
	ExplanationURL string      `json:"explanationUrl,omitempty"`
	XPDelta        int         `json:"xpDelta"`
	CoinDelta      int         `json:"coinDelta"`
	Profile        *model.User `json:"profile"`
}

type PowerUpResult struct {
	Applied      bool        `json:"applied"`
	RemovedIndex int         `json:"removedIndex"`
	Refunded     bool        `json:"refunded"`
	Profile      *model.User `json:"profile"`
}

// rewardDeltas computes the xp/coin change for one graded attempt.
// Correct: +10*multiplier XP and round(xp/10) coins. Incorrect:
// -5*multiplier XP, no coins. XP is rounded half away from zero to an
// integer column.
func rewardDeltas(difficulty model.Difficulty, correct bool) (xpDelta, coinDelta int) {
	m := difficulty.Multiplier()
	if correct {
		xp := baseRewardXP * m
		return int(math.Round(xp)), int(math.Round(xp / 10))
	}
	return -int(math.Round(basePenaltyXP * m)), 0
}

// SubmitAttempt grades one answer by exact string comparison against the
// stored correct answer (Numeric answers included: they are compared as
// entered, not parsed), then applies the profile delta and appends the
// attempt record in a single transaction.
func (s *PracticeService) SubmitAttempt(ctx context.Context, userID uint, req SubmitRequest) (*GradeResult, error) {
	question, err := s.QuestionRepo.FindByID(req.QuestionID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrQuestionNotFound
		}
		return nil, err
	}

	// Double-submit guard: one grading per (user, question) at a time.
	guardKey := inFlightKey(userID, req.QuestionID)
	ok, err := s.Redis.SetNX(ctx, guardKey, 1, inFlightTTL).Result()
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, util.ErrAttemptInFlight
	}
	defer s.Redis.Del(ctx, guardKey)

	user, err := s.UserRepo.FindByID(userID)
	if err != nil {
		return nil, err
	}

	correct := req.SelectedAnswer == question.CorrectAns
	xpDelta, coinDelta := rewardDeltas(question.Difficulty, correct)

	now := time.Now()
	streak := nextStreak(user.StreakDays, user.LastPracticeAt, now)

	attempt := &model.Attempt{
		UserID:         userID,
		QuestionID:     question.ID,
		SelectedAnswer: req.SelectedAnswer,
		IsCorrect:      correct,
		TimeTakenSec:   req.TimeTakenSec,
		Flagged:        req.Flagged,
	}

	err = s.DB.Transaction(func(tx *gorm.DB) error {
		if err := s.UserRepo.IncrementBalances(tx, userID, xpDelta, coinDelta); err != nil {
			return err
		}
		if err := s.UserRepo.UpdateStreak(tx, userID, streak, now); err != nil {
			return err
		}
		return s.AttemptRepo.Create(tx, attempt)
	})
	if err != nil {
		return nil, err
	}

	outcome := "incorrect"
	if correct {
		outcome = "correct"
	}
	monitoring.AttemptsGraded.WithLabelValues(outcome).Inc()

	if err := s.Leaderboard.Invalidate(ctx); err != nil {
		// The stale snapshot expires on its own; nothing to surface.
		logger.Log.Warn("leaderboard invalidation failed", zap.Error(err))
	}

	fresh, err := s.UserRepo.FindByID(userID)
	if err != nil {
		return nil, err
	}

	return &GradeResult{
		AttemptID:      attempt.ID,
		Correct:        correct,
		CorrectAns:     question.CorrectAns,
		Explanation:    question.Explanation,
		ExplanationURL: question.ExplanationURL,
		XPDelta:        xpDelta,
		CoinDelta:      coinDelta,
		Profile:        fresh,
	}, nil
}

// UsePowerUp removes one incorrect option from an MCQ for a fixed coin
// cost, once per question per user. The cost is deducted first; if no
// incorrect option exists it is refunded and the call reports a no-op.
func (s *PracticeService) UsePowerUp(ctx context.Context, userID uint, questionID string) (*PowerUpResult, error) {
	question, err := s.QuestionRepo.FindByID(questionID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrQuestionNotFound
		}
		return nil, err
	}
	if question.QuestionType != model.MCQ {
		return nil, util.ErrNotMCQ
	}

	user, err := s.UserRepo.FindByID(userID)
	if err != nil {
		return nil, err
	}
	if user.Coins < PowerUpCost {
		return nil, util.ErrInsufficientCoins
	}

	markerKey := powerUpKey(userID, questionID)
	ok, err := s.Redis.SetNX(ctx, markerKey, 1, powerUpTTL).Result()
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, util.ErrPowerUpAlreadyUsed
	}

	if err := s.UserRepo.IncrementBalances(s.DB, userID, 0, -PowerUpCost); err != nil {
		s.Redis.Del(ctx, markerKey)
		return nil, err
	}

	var incorrect []int
	for i, opt := range question.Options {
		if opt != question.CorrectAns {
			incorrect = append(incorrect, i)
		}
	}

	if len(incorrect) == 0 {
		// Malformed question; give the coins back and release the marker.
		if err := s.UserRepo.IncrementBalances(s.DB, userID, 0, PowerUpCost); err != nil {
			return nil, err
		}
		s.Redis.Del(ctx, markerKey)
		fresh, err := s.UserRepo.FindByID(userID)
		if err != nil {
			return nil, err
		}
		return &PowerUpResult{Applied: false, RemovedIndex: -1, Refunded: true, Profile: fresh}, nil
	}

	removed := incorrect[rand.Intn(len(incorrect))]

	fresh, err := s.UserRepo.FindByID(userID)
	if err != nil {
		return nil, err
	}
	return &PowerUpResult{Applied: true, RemovedIndex: removed, Profile: fresh}, nil
}

// nextStreak advances the streak-day counter on the first graded attempt
// of a calendar day: consecutive days extend it, a gap resets it to 1.
func nextStreak(current int, lastPractice, now time.Time) int {
	if lastPractice.IsZero() {
		return 1
	}
	if sameDay(lastPractice, now) {
		return current
	}
	if sameDay(lastPractice.AddDate(0, 0, 1), now) {
		return current + 1
	}
	return 1
}

func sameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

func inFlightKey(userID uint, questionID string) string {
	return fmt.Sprintf("practice:inflight:%d:%s", userID, questionID)
}

func powerUpKey(userID uint, questionID string) string {
	return fmt.Sprintf("practice:powerup:%d:%s", userID, questionID)
}
