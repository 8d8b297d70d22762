package model

import (
	"time"
)

type UserRole string

const (
	RoleUser  UserRole = "user"
	RoleAdmin UserRole = "admin"
)

// Gamification defaults applied when a profile is created, either through
// registration or lazily on the first provider sign-in.
const (
	DefaultCoins      = 100
	DefaultXP         = 0
	DefaultStreakDays = 0
)

// swagger:model User
type User struct {
	BaseModel
	Name            string    `gorm:"size:100;not null" json:"name"`
	Email           string    `gorm:"size:100;unique;not null" json:"email"`
	Password        string    `gorm:"size:100" json:"-"` // empty for provider-only accounts
	Provider        string    `gorm:"size:50" json:"-"`
	ProviderSubject string    `gorm:"size:100;index" json:"-"`
	Role            UserRole  `gorm:"size:20;default:'user'" json:"role"`
	XP              int       `gorm:"default:0" json:"xp"`
	Coins           int       `gorm:"default:100" json:"coins"`
	StreakDays      int       `gorm:"default:0" json:"streakDays"`
	LastLogin       time.Time `json:"lastLogin"`
	LastPracticeAt  time.Time `json:"lastPracticeAt"`
}

func (User) TableName() string {
	return "users"
}
