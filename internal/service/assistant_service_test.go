package service

import (
	"net/http"
	"testing"

	"jeeprep_backend/internal/config"
	"jeeprep_backend/internal/model"
	"jeeprep_backend/internal/repository"
	"jeeprep_backend/internal/util"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newAssistantService(t *testing.T, aiStatus int, aiContent string) (*AssistantService, *repository.QuestionRepository) {
	t.Helper()
	db := newTestDB(t)
	srv := fakeChatServer(t, aiStatus, aiContent)
	ai := NewAIService(config.AIConfig{BaseURL: srv.URL, Model: "test-model"})
	repo := repository.NewQuestionRepository(db)
	return NewAssistantService(ai, repo), repo
}

func seedAssistantQuestion(t *testing.T, repo *repository.QuestionRepository) *model.Question {
	t.Helper()
	q := &model.Question{
		Subject:      "Physics",
		Chapter:      "Gravitation",
		Year:         2023,
		QuestionText: "Escape velocity from Earth's surface?",
		Options:      []string{"11.2 km/s", "9.8 km/s", "7.9 km/s", "42 km/s"},
		CorrectAns:   "11.2 km/s",
		Explanation:  "v = sqrt(2gR) with g = 9.8 and R = 6371 km.",
		QuestionType: model.MCQ,
		Difficulty:   model.Medium,
	}
	require.NoError(t, repo.Create(q))
	return q
}

func TestHint(t *testing.T) {
	t.Run("returns the AI text", func(t *testing.T) {
		svc, repo := newAssistantService(t, http.StatusOK, "Think about energy conservation.")
		q := seedAssistantQuestion(t, repo)

		text, err := svc.Hint(q.ID)
		require.NoError(t, err)
		assert.Equal(t, "Think about energy conservation.", text)
	})

	t.Run("unknown question", func(t *testing.T) {
		svc, _ := newAssistantService(t, http.StatusOK, "irrelevant")

		_, err := svc.Hint("no-such-id")
		assert.ErrorIs(t, err, util.ErrQuestionNotFound)
	})

	t.Run("AI failure embeds the error in the text", func(t *testing.T) {
		svc, repo := newAssistantService(t, http.StatusInternalServerError, "")
		q := seedAssistantQuestion(t, repo)

		text, err := svc.Hint(q.ID)
		require.NoError(t, err)
		assert.Contains(t, text, "Hint failed")
	})
}

func TestDeeperExplanation(t *testing.T) {
	t.Run("returns the AI text", func(t *testing.T) {
		svc, repo := newAssistantService(t, http.StatusOK, "In more depth: ...")
		q := seedAssistantQuestion(t, repo)

		text, err := svc.DeeperExplanation(q.ID)
		require.NoError(t, err)
		assert.Equal(t, "In more depth: ...", text)
	})

	t.Run("AI failure embeds the error in the text", func(t *testing.T) {
		svc, repo := newAssistantService(t, http.StatusBadGateway, "")
		q := seedAssistantQuestion(t, repo)

		text, err := svc.DeeperExplanation(q.ID)
		require.NoError(t, err)
		assert.Contains(t, text, "Explanation failed")
	})
}

func TestStudyFocus(t *testing.T) {
	svc, _ := newAssistantService(t, http.StatusOK, "Revise rotational mechanics today.")

	user := &model.User{XP: 120, Coins: 85, StreakDays: 4}
	text, err := svc.StudyFocus(user)
	require.NoError(t, err)
	assert.Equal(t, "Revise rotational mechanics today.", text)
}
