package service

import (
	"jeeprep_backend/internal/model"
	"jeeprep_backend/internal/repository"
	"time"
)

const recentAttemptLimit = 5

type RecentAttempt struct {
	ID           string    `json:"id"`
	QuestionText string    `json:"questionText"`
	Subject      string    `json:"subject"`
	IsCorrect    bool      `json:"isCorrect"`
	TimeTakenSec int       `json:"timeTakenSec"`
	AttemptedAt  time.Time `json:"attemptedAt"`
}

type DashboardOverview struct {
	Profile         *model.User     `json:"profile"`
	TotalAttempts   int64           `json:"totalAttempts"`
	CorrectAttempts int64           `json:"correctAttempts"`
	RecentAttempts  []RecentAttempt `json:"recentAttempts"`
}

// DashboardService assembles the signed-in user's home view: profile
// stats plus recent practice activity.
type DashboardService struct {
	UserRepo     *repository.UserRepository
	AttemptRepo  *repository.AttemptRepository
	QuestionRepo *repository.QuestionRepository
}

func NewDashboardService(
	userRepo *repository.UserRepository,
	attemptRepo *repository.AttemptRepository,
	questionRepo *repository.QuestionRepository,
) *DashboardService {
	return &DashboardService{
		UserRepo:     userRepo,
		AttemptRepo:  attemptRepo,
		QuestionRepo: questionRepo,
	}
}

func (s *DashboardService) GetOverview(userID uint) (*DashboardOverview, error) {
	user, err := s.UserRepo.FindByID(userID)
	if err != nil {
		return nil, err
	}

	total, correct, err := s.AttemptRepo.CountByUser(userID)
	if err != nil {
		return nil, err
	}

	attempts, err := s.AttemptRepo.FindRecentByUser(userID, recentAttemptLimit)
	if err != nil {
		return nil, err
	}

	recent := make([]RecentAttempt, 0, len(attempts))
	for _, a := range attempts {
		item := RecentAttempt{
			ID:           a.ID,
			IsCorrect:    a.IsCorrect,
			TimeTakenSec: a.TimeTakenSec,
			AttemptedAt:  a.CreatedAt,
		}
		if q, err := s.QuestionRepo.FindByID(a.QuestionID); err == nil {
			item.QuestionText = q.QuestionText
			item.Subject = q.Subject
		}
		recent = append(recent, item)
	}

	return &DashboardOverview{
		Profile:         user,
		TotalAttempts:   total,
		CorrectAttempts: correct,
		RecentAttempts:  recent,
	}, nil
}
