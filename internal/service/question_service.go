package service

import (
	"jeeprep_backend/internal/model"
	"jeeprep_backend/internal/repository"
	"math/rand"
	"strconv"
	"strings"
)

// SampleSize caps the number of questions served per practice set.
const SampleSize = 10

// QuestionFilter carries the optional practice filters. Empty fields
// match everything.
type QuestionFilter struct {
	Subject string
	Chapter string
	Year    string
}

// QuestionService serves randomized practice sets over the full question
// collection.
type QuestionService struct {
	QuestionRepo *repository.QuestionRepository
}

func NewQuestionService(questionRepo *repository.QuestionRepository) *QuestionService {
	return &QuestionService{QuestionRepo: questionRepo}
}

// Filter applies subject exact match, chapter case-insensitive substring
// match and year exact match (string-compared), then returns a uniform
// unseeded sample of at most SampleSize questions. Re-filtering
// reshuffles. No match yields an empty set, not an error.
func (s *QuestionService) Filter(f QuestionFilter) ([]model.Question, error) {
	all, err := s.QuestionRepo.FindAll()
	if err != nil {
		return nil, err
	}

	matched := make([]model.Question, 0, len(all))
	chapter := strings.ToLower(strings.TrimSpace(f.Chapter))
	for _, q := range all {
		if f.Subject != "" && q.Subject != f.Subject {
			continue
		}
		if chapter != "" && !strings.Contains(strings.ToLower(q.Chapter), chapter) {
			continue
		}
		if f.Year != "" && strconv.Itoa(q.Year) != f.Year {
			continue
		}
		matched = append(matched, q)
	}

	rand.Shuffle(len(matched), func(i, j int) {
		matched[i], matched[j] = matched[j], matched[i]
	})

	if len(matched) > SampleSize {
		matched = matched[:SampleSize]
	}
	return matched, nil
}

func (s *QuestionService) Get(id string) (*model.Question, error) {
	return s.QuestionRepo.FindByID(id)
}
