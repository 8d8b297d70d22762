package model

// Attempt is an append-only log entry of one graded answer submission.
// Rows are never updated or deleted.
//
// swagger:model Attempt
type Attempt struct {
	UUIDBase
	UserID         uint   `gorm:"index;not null" json:"userId"`
	QuestionID     string `gorm:"size:36;index;not null" json:"questionId"`
	SelectedAnswer string `gorm:"size:255" json:"selectedAnswer"`
	IsCorrect      bool   `json:"isCorrect"`
	TimeTakenSec   int    `json:"timeTakenSec"`
	Flagged        bool   `json:"flagged"`
}

func (Attempt) TableName() string {
	return "attempts"
}
