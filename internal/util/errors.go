package util

import "errors"

var (
	ErrUserNotFound       = errors.New("user not found")
	ErrEmailRegistered    = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrQuestionNotFound   = errors.New("question not found")
	ErrAttemptInFlight    = errors.New("attempt already in flight for this question")
	ErrInsufficientCoins  = errors.New("not enough coins")
	ErrPowerUpAlreadyUsed = errors.New("power-up already used on this question")
	ErrNotMCQ             = errors.New("power-up applies to MCQ questions only")
)
