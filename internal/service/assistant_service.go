package service

import (
	"errors"
	"fmt"
	"jeeprep_backend/internal/model"
	"jeeprep_backend/internal/repository"
	"jeeprep_backend/internal/util"

	"gorm.io/gorm"
)

const assistantSystemPrompt = "You are a tutor helping JEE aspirants. Be concise and do not stray from the question at hand."

// AssistantService is a stateless pass-through to the generative-text
// API for hints and deeper explanations. A failed call is not a fault:
// the user-visible text embeds the error instead.
type AssistantService struct {
	AI           *AIService
	QuestionRepo *repository.QuestionRepository
}

func NewAssistantService(ai *AIService, questionRepo *repository.QuestionRepository) *AssistantService {
	return &AssistantService{
		AI:           ai,
		QuestionRepo: questionRepo,
	}
}

// Hint returns a short hint for the question without revealing the
// answer.
func (s *AssistantService) Hint(questionID string) (string, error) {
	question, err := s.QuestionRepo.FindByID(questionID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", util.ErrQuestionNotFound
		}
		return "", err
	}

	prompt := fmt.Sprintf("Give a short hint for this JEE question without revealing the answer: %q", question.QuestionText)
	text, err := s.AI.Chat(assistantSystemPrompt, prompt)
	if err != nil {
		return fmt.Sprintf("Hint failed: %v", err), nil
	}
	return text, nil
}

// DeeperExplanation expands on the stored explanation, seeded with the
// correct answer.
func (s *AssistantService) DeeperExplanation(questionID string) (string, error) {
	question, err := s.QuestionRepo.FindByID(questionID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", util.ErrQuestionNotFound
		}
		return "", err
	}

	explanation := question.Explanation
	if explanation == "" {
		explanation = "N/A"
	}
	prompt := fmt.Sprintf(
		"Give a deeper explanation for this JEE question: %q. Original explanation: %q. Correct answer: %q.",
		question.QuestionText, explanation, question.CorrectAns)
	text, err := s.AI.Chat(assistantSystemPrompt, prompt)
	if err != nil {
		return fmt.Sprintf("Explanation failed: %v", err), nil
	}
	return text, nil
}

// StudyFocus suggests a study focus from the profile's current stats.
func (s *AssistantService) StudyFocus(user *model.User) (string, error) {
	prompt := fmt.Sprintf(
		"Based on a JEE aspirant's profile (XP: %d, Coins: %d, Streak: %d days), suggest a brief study focus for today. Keep it concise and motivational.",
		user.XP, user.Coins, user.StreakDays)
	text, err := s.AI.Chat(assistantSystemPrompt, prompt)
	if err != nil {
		return fmt.Sprintf("Suggestion failed: %v", err), nil
	}
	return text, nil
}
