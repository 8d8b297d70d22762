package database

import (
	"fmt"
	"jeeprep_backend/internal/config"
	"jeeprep_backend/internal/model"
	"log"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func InitDB(cfg *config.DatabaseConfig) (*gorm.DB, error) {
	dsn := fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?charset=%s&parseTime=%t&loc=Local",
		cfg.User,
		cfg.Password,
		cfg.Host,
		cfg.Port,
		cfg.DBName,
		cfg.Charset,
		cfg.ParseTime,
	)

	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Info),
	})

	if err != nil {
		return nil, err
	}

	log.Println("Database connection established")

	return db, nil
}

// Migrate runs schema migration and seeds the question bank when empty.
// Shared with the sqlite-backed test harness.
func Migrate(db *gorm.DB) error {
	err := db.AutoMigrate(
		&model.User{},
		&model.Question{},
		&model.Attempt{},
	)
	if err != nil {
		return err
	}

	var count int64
	db.Model(&model.Question{}).Count(&count)
	if count == 0 {
		for _, q := range seedQuestions() {
			db.Create(&q)
		}
	}

	return nil
}

func seedQuestions() []model.Question {
	return []model.Question{
		{
			Subject:      "Physics",
			Chapter:      "Kinematics",
			Year:         2022,
			QuestionText: "A particle starts from rest and accelerates uniformly at 2 m/s^2. What is its speed after 5 s?",
			Options:      []string{"5 m/s", "10 m/s", "15 m/s", "20 m/s"},
			CorrectAns:   "10 m/s",
			Explanation:  "v = u + at = 0 + 2*5 = 10 m/s.",
			QuestionType: model.MCQ,
			Difficulty:   model.Easy,
		},
		{
			Subject:      "Chemistry",
			Chapter:      "Chemical Bonding",
			Year:         2021,
			QuestionText: "Which molecule has a linear geometry?",
			Options:      []string{"H2O", "CO2", "NH3", "CH4"},
			CorrectAns:   "CO2",
			Explanation:  "CO2 has two bonding domains and no lone pairs on carbon, hence linear.",
			QuestionType: model.MCQ,
			Difficulty:   model.Medium,
		},
		{
			Subject:      "Maths",
			Chapter:      "Definite Integration",
			Year:         2023,
			QuestionText: "Evaluate the integral of 2x from 0 to 3.",
			Options:      []string{},
			CorrectAns:   "9",
			Explanation:  "The antiderivative is x^2; 3^2 - 0^2 = 9.",
			QuestionType: model.Numeric,
			Difficulty:   model.Easy,
		},
	}
}
