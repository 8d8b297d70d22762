package repository

import (
	"jeeprep_backend/internal/model"

	"gorm.io/gorm"
)

type AttemptRepository struct {
	DB *gorm.DB
}

func NewAttemptRepository(db *gorm.DB) *AttemptRepository {
	return &AttemptRepository{DB: db}
}

// Create appends an attempt row. Attempts are immutable; there is no
// update or delete path anywhere in the codebase.
func (r *AttemptRepository) Create(db *gorm.DB, attempt *model.Attempt) error {
	return db.Create(attempt).Error
}

func (r *AttemptRepository) FindRecentByUser(userID uint, limit int) ([]model.Attempt, error) {
	var attempts []model.Attempt
	err := r.DB.Where("user_id = ?", userID).
		Order("created_at DESC").
		Limit(limit).
		Find(&attempts).Error
	return attempts, err
}

func (r *AttemptRepository) CountByUser(userID uint) (total int64, correct int64, err error) {
	if err = r.DB.Model(&model.Attempt{}).Where("user_id = ?", userID).Count(&total).Error; err != nil {
		return
	}
	err = r.DB.Model(&model.Attempt{}).Where("user_id = ? AND is_correct = ?", userID, true).Count(&correct).Error
	return
}
