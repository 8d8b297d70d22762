package repository

import (
	"jeeprep_backend/internal/model"
	"time"

	"gorm.io/gorm"
)

type UserRepository struct {
	DB *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{DB: db}
}

func (r *UserRepository) Create(user *model.User) error {
	return r.DB.Create(user).Error
}

func (r *UserRepository) FindByID(id uint) (*model.User, error) {
	var user model.User
	err := r.DB.First(&user, id).Error
	return &user, err
}

func (r *UserRepository) FindByEmail(email string) (*model.User, error) {
	var user model.User
	err := r.DB.Where("email = ?", email).First(&user).Error
	return &user, err
}

func (r *UserRepository) FindByProviderSubject(provider, subject string) (*model.User, error) {
	var user model.User
	err := r.DB.Where("provider = ? AND provider_subject = ?", provider, subject).First(&user).Error
	return &user, err
}

func (r *UserRepository) Update(user *model.User) error {
	return r.DB.Save(user).Error
}

func (r *UserRepository) UpdateName(userID uint, name string) error {
	return r.DB.Model(&model.User{}).
		Where("id = ?", userID).
		Update("name", name).
		Error
}

// IncrementBalances applies xp/coins deltas atomically in the store.
// Negative balances are allowed (no floor at zero).
func (r *UserRepository) IncrementBalances(db *gorm.DB, userID uint, xpDelta, coinDelta int) error {
	return db.Model(&model.User{}).
		Where("id = ?", userID).
		Updates(map[string]interface{}{
			"xp":    gorm.Expr("xp + ?", xpDelta),
			"coins": gorm.Expr("coins + ?", coinDelta),
		}).
		Error
}

func (r *UserRepository) UpdateStreak(db *gorm.DB, userID uint, streakDays int, practicedAt time.Time) error {
	return db.Model(&model.User{}).
		Where("id = ?", userID).
		Updates(map[string]interface{}{
			"streak_days":      streakDays,
			"last_practice_at": practicedAt,
		}).
		Error
}

func (r *UserRepository) UpdateLastLogin(userID uint, at time.Time) error {
	return r.DB.Model(&model.User{}).
		Where("id = ?", userID).
		Update("last_login", at).
		Error
}

// FindTopByXP returns profiles ordered by xp descending; ties keep
// creation order, so re-reads are stable.
func (r *UserRepository) FindTopByXP(limit int) ([]model.User, error) {
	var users []model.User
	err := r.DB.Order("xp DESC, id ASC").Limit(limit).Find(&users).Error
	return users, err
}
