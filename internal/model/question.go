package model

type QuestionType string

const (
	MCQ     QuestionType = "MCQ"
	Numeric QuestionType = "Numeric"
)

type Difficulty string

const (
	Easy   Difficulty = "Easy"
	Medium Difficulty = "Medium"
	Hard   Difficulty = "Hard"
)

// Multiplier scales the base XP reward/penalty for a graded attempt.
func (d Difficulty) Multiplier() float64 {
	switch d {
	case Medium:
		return 1.5
	case Hard:
		return 2
	default:
		return 1
	}
}

// swagger:model Question
type Question struct {
	UUIDBase
	Subject        string       `gorm:"size:50;index" json:"subject"`
	Chapter        string       `gorm:"size:100;index" json:"chapter"`
	Year           int          `gorm:"index" json:"year"`
	QuestionText   string       `gorm:"type:text;not null" json:"questionText"`
	Options        []string     `gorm:"serializer:json;type:json" json:"options"` // empty for Numeric
	CorrectAns     string       `gorm:"size:255;not null" json:"correctAns"`
	Explanation    string       `gorm:"type:text" json:"explanation"`
	ExplanationURL string       `gorm:"size:255" json:"explanationUrl"`
	QuestionType   QuestionType `gorm:"size:20;default:'MCQ'" json:"questionType"`
	Difficulty     Difficulty   `gorm:"size:20;default:'Medium'" json:"difficulty"`
}

func (Question) TableName() string {
	return "questions"
}
