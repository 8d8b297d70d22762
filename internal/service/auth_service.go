package service

import (
	"errors"
	"fmt"
	"jeeprep_backend/internal/config"
	"jeeprep_backend/internal/model"
	"jeeprep_backend/internal/repository"
	"jeeprep_backend/internal/util"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type AuthService struct {
	UserRepo *repository.UserRepository
	Cfg      *config.Config
}

func NewAuthService(userRepo *repository.UserRepository, cfg *config.Config) *AuthService {
	return &AuthService{
		UserRepo: userRepo,
		Cfg:      cfg,
	}
}

// Register creates a profile with the sign-up defaults. The role is
// always "user"; admin accounts are promoted out of band.
func (s *AuthService) Register(user *model.User) error {
	_, err := s.UserRepo.FindByEmail(user.Email)
	if err == nil {
		return util.ErrEmailRegistered
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(user.Password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	user.Password = string(hashedPassword)
	user.Role = model.RoleUser
	user.XP = model.DefaultXP
	user.Coins = model.DefaultCoins
	user.StreakDays = model.DefaultStreakDays
	user.LastLogin = time.Now()
	return s.UserRepo.Create(user)
}

// Login verifies credentials and issues a JWT. A failed login mutates
// nothing.
func (s *AuthService) Login(email, password string) (string, *model.User, error) {
	user, err := s.UserRepo.FindByEmail(email)
	if err != nil {
		return "", nil, util.ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return "", nil, util.ErrInvalidCredentials
	}

	_ = s.UserRepo.UpdateLastLogin(user.ID, time.Now())

	token, err := util.GenerateJWT(user, s.Cfg.JWT.Secret, s.Cfg.JWT.ExpireTime)
	if err != nil {
		return "", nil, err
	}
	return token, user, nil
}

// LoginWithProvider signs in a principal vouched for by an external
// identity provider. The profile is created lazily on first sign-in,
// with the sign-up defaults and a display name derived from the
// identity id when the provider supplies none.
func (s *AuthService) LoginWithProvider(provider, subject, email, name string) (string, *model.User, error) {
	user, err := s.UserRepo.FindByProviderSubject(provider, subject)
	if errors.Is(err, gorm.ErrRecordNotFound) && email != "" {
		// Same email may already exist from password registration;
		// a principal gets exactly one profile.
		if existing, emailErr := s.UserRepo.FindByEmail(email); emailErr == nil {
			existing.Provider = provider
			existing.ProviderSubject = subject
			if updateErr := s.UserRepo.Update(existing); updateErr != nil {
				return "", nil, updateErr
			}
			user, err = existing, nil
		}
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		user = &model.User{
			Name:            name,
			Email:           email,
			Provider:        provider,
			ProviderSubject: subject,
			Role:            model.RoleUser,
			XP:              model.DefaultXP,
			Coins:           model.DefaultCoins,
			StreakDays:      model.DefaultStreakDays,
			LastLogin:       time.Now(),
		}
		if user.Name == "" {
			user.Name = generatedDisplayName(subject)
		}
		if createErr := s.UserRepo.Create(user); createErr != nil {
			return "", nil, createErr
		}
	} else if err != nil {
		return "", nil, err
	}

	_ = s.UserRepo.UpdateLastLogin(user.ID, time.Now())

	token, err := util.GenerateJWT(user, s.Cfg.JWT.Secret, s.Cfg.JWT.ExpireTime)
	if err != nil {
		return "", nil, err
	}
	return token, user, nil
}

func generatedDisplayName(subject string) string {
	if len(subject) > 8 {
		subject = subject[:8]
	}
	return fmt.Sprintf("user-%s", subject)
}

func (s *AuthService) GetCurrentUser(c *gin.Context) *model.User {
	claims := util.GetUserFromContext(c)
	if claims == nil {
		return nil
	}

	user, err := s.UserRepo.FindByID(claims.UserID)
	if err != nil {
		return nil
	}
	return user
}
