// Bulk question-bank import.
//
// Reads a YAML file of questions and inserts any that are not already
// present. Intended for first deployment or after curating a new batch
// of past-year papers.
//
// Usage: go run scripts/import_questions.go questions.yaml

package main

import (
	"log"
	"os"

	"jeeprep_backend/internal/config"
	"jeeprep_backend/internal/model"
	"jeeprep_backend/pkg/database"
	"jeeprep_backend/pkg/logger"

	"gopkg.in/yaml.v3"
)

type questionFile struct {
	Questions []struct {
		Subject      string   `yaml:"subject"`
		Chapter      string   `yaml:"chapter"`
		Year         int      `yaml:"year"`
		QuestionText string   `yaml:"question_text"`
		Options      []string `yaml:"options"`
		CorrectAns   string   `yaml:"correct_ans"`
		Explanation  string   `yaml:"explanation"`
		QuestionType string   `yaml:"question_type"`
		Difficulty   string   `yaml:"difficulty"`
	} `yaml:"questions"`
}

func main() {
	if len(os.Args) < 2 {
		log.Fatal("Usage: go run scripts/import_questions.go <questions.yaml>")
	}

	cfg, err := config.LoadConfig("configs")
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger.InitLogger(cfg.Server.Mode)

	db, err := database.InitDB(&cfg.Database)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	if err := database.Migrate(db); err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}

	data, err := os.ReadFile(os.Args[1])
	if err != nil {
		log.Fatalf("Failed to read question file: %v", err)
	}

	var file questionFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		log.Fatalf("Failed to parse question file: %v", err)
	}

	imported, skipped := 0, 0
	for _, q := range file.Questions {
		var count int64
		db.Model(&model.Question{}).
			Where("subject = ? AND question_text = ?", q.Subject, q.QuestionText).
			Count(&count)
		if count > 0 {
			skipped++
			continue
		}

		question := model.Question{
			Subject:      q.Subject,
			Chapter:      q.Chapter,
			Year:         q.Year,
			QuestionText: q.QuestionText,
			Options:      q.Options,
			CorrectAns:   q.CorrectAns,
			Explanation:  q.Explanation,
			QuestionType: model.QuestionType(q.QuestionType),
			Difficulty:   model.Difficulty(q.Difficulty),
		}
		if err := db.Create(&question).Error; err != nil {
			log.Fatalf("Failed to insert question %q: %v", q.QuestionText, err)
		}
		imported++
	}

	log.Printf("Import complete: %d inserted, %d already present", imported, skipped)
}
