package service

import (
	"errors"

	"jeeprep_backend/internal/model"
	"jeeprep_backend/internal/repository"
	"jeeprep_backend/internal/util"
	"jeeprep_backend/pkg/logger"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// UserService owns the profile ledger: reward/penalty deltas merged into
// the profile record, and profile edits.
type UserService struct {
	UserRepo *repository.UserRepository
	DB       *gorm.DB
}

func NewUserService(userRepo *repository.UserRepository, db *gorm.DB) *UserService {
	return &UserService{
		UserRepo: userRepo,
		DB:       db,
	}
}

func (s *UserService) GetProfile(userID uint) (*model.User, error) {
	user, err := s.UserRepo.FindByID(userID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, util.ErrUserNotFound
	}
	return user, err
}

// ApplyDelta merges xp/coin deltas into the profile and returns the
// authoritative record. On write failure the row is still re-read so the
// caller can reconcile to the store's view (last writer wins).
func (s *UserService) ApplyDelta(userID uint, xpDelta, coinDelta int) (*model.User, error) {
	writeErr := s.UserRepo.IncrementBalances(s.DB, userID, xpDelta, coinDelta)
	if writeErr != nil {
		logger.Log.Error("profile delta write failed",
			zap.Uint("userID", userID),
			zap.Int("xpDelta", xpDelta),
			zap.Int("coinDelta", coinDelta),
			zap.Error(writeErr))
	}

	user, readErr := s.UserRepo.FindByID(userID)
	if readErr != nil {
		if writeErr != nil {
			return nil, writeErr
		}
		return nil, readErr
	}
	if writeErr != nil {
		return user, writeErr
	}
	return user, nil
}

// UpdateName edits the display name. Email is immutable.
func (s *UserService) UpdateName(userID uint, name string) (*model.User, error) {
	if err := s.UserRepo.UpdateName(userID, name); err != nil {
		return nil, err
	}
	return s.GetProfile(userID)
}
