package repository

import (
	"jeeprep_backend/internal/model"

	"gorm.io/gorm"
)

type QuestionRepository struct {
	DB *gorm.DB
}

func NewQuestionRepository(db *gorm.DB) *QuestionRepository {
	return &QuestionRepository{DB: db}
}

func (r *QuestionRepository) Create(q *model.Question) error {
	return r.DB.Create(q).Error
}

// FindAll loads the entire question collection. The bank is small by
// design; filtering happens in memory, not in SQL.
func (r *QuestionRepository) FindAll() ([]model.Question, error) {
	var questions []model.Question
	err := r.DB.Find(&questions).Error
	return questions, err
}

func (r *QuestionRepository) FindAllNewestFirst() ([]model.Question, error) {
	var questions []model.Question
	err := r.DB.Order("created_at DESC").Find(&questions).Error
	return questions, err
}

func (r *QuestionRepository) FindByID(id string) (*model.Question, error) {
	var question model.Question
	err := r.DB.Where("id = ?", id).First(&question).Error
	return &question, err
}
