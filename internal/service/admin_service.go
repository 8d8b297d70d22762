package service

import (
	"encoding/json"
	"errors"
	"fmt"
	"jeeprep_backend/internal/model"
	"jeeprep_backend/internal/repository"
	"strings"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

var (
	ErrQuestionTextRequired = errors.New("question text and correct answer are required")
	ErrTooFewOptions        = errors.New("MCQ questions must have at least 2 filled options")
	ErrTopicRequired        = errors.New("a topic or subject is required")
)

// AdminService owns question authoring: listing, validated creation and
// AI-assisted drafting. Questions are never updated or deleted.
type AdminService struct {
	QuestionRepo *repository.QuestionRepository
	AI           *AIService
}

func NewAdminService(questionRepo *repository.QuestionRepository, ai *AIService) *AdminService {
	return &AdminService{
		QuestionRepo: questionRepo,
		AI:           ai,
	}
}

func (s *AdminService) ListQuestions() ([]model.Question, error) {
	return s.QuestionRepo.FindAllNewestFirst()
}

// CreateQuestion validates and persists a question draft. Empty options
// are stripped before the MCQ minimum is checked; Numeric questions
// always store an empty option list.
func (s *AdminService) CreateQuestion(q *model.Question) error {
	q.QuestionText = strings.TrimSpace(q.QuestionText)
	q.CorrectAns = strings.TrimSpace(q.CorrectAns)
	if q.QuestionText == "" || q.CorrectAns == "" {
		return ErrQuestionTextRequired
	}

	if q.QuestionType == model.MCQ {
		filled := make([]string, 0, len(q.Options))
		for _, opt := range q.Options {
			if strings.TrimSpace(opt) != "" {
				filled = append(filled, opt)
			}
		}
		if len(filled) < 2 {
			return ErrTooFewOptions
		}
		q.Options = filled
	} else {
		q.Options = []string{}
	}

	return s.QuestionRepo.Create(q)
}

// QuestionDraft is the structured output of AI question generation.
type QuestionDraft struct {
	QuestionText string           `json:"question_text"`
	Options      []string         `json:"options"`
	CorrectAns   string           `json:"correct_ans"`
	Explanation  string           `json:"explanation"`
	Difficulty   model.Difficulty `json:"difficulty"`
}

// draftSchema pins the shape of a generated draft: four string options
// and an enumerated difficulty.
const draftSchema = `{
	"type": "object",
	"properties": {
		"question_text": {"type": "string", "minLength": 1},
		"options": {
			"type": "array",
			"items": {"type": "string"},
			"minItems": 4,
			"maxItems": 4
		},
		"correct_ans": {"type": "string", "minLength": 1},
		"explanation": {"type": "string"},
		"difficulty": {"type": "string", "enum": ["Easy", "Medium", "Hard"]}
	},
	"required": ["question_text", "options", "correct_ans", "explanation", "difficulty"],
	"additionalProperties": false
}`

var (
	draftSchemaOnce     sync.Once
	draftSchemaCompiled *jsonschema.Schema
	draftSchemaErr      error
)

func compiledDraftSchema() (*jsonschema.Schema, error) {
	draftSchemaOnce.Do(func() {
		doc, err := jsonschema.UnmarshalJSON(strings.NewReader(draftSchema))
		if err != nil {
			draftSchemaErr = err
			return
		}
		c := jsonschema.NewCompiler()
		if err := c.AddResource("schema://question-draft.json", doc); err != nil {
			draftSchemaErr = err
			return
		}
		draftSchemaCompiled, draftSchemaErr = c.Compile("schema://question-draft.json")
	})
	return draftSchemaCompiled, draftSchemaErr
}

// GenerateDraft asks the AI for an MCQ draft on the given topic and
// validates the response against the fixed schema. On any failure the
// raw error text is returned and nothing is persisted or prefilled.
func (s *AdminService) GenerateDraft(topic, subject string) (*QuestionDraft, error) {
	if topic == "" {
		topic = subject
	}
	if topic == "" {
		return nil, ErrTopicRequired
	}

	prompt := fmt.Sprintf(
		`Generate a new JEE exam practice question (MCQ type with 4 options) for the topic %q in %s. `+
			`Respond with a JSON object with keys: "question_text", "options" (array of exactly 4 strings), `+
			`"correct_ans" (the text of the correct option), "explanation" and "difficulty" `+
			`("Easy", "Medium" or "Hard").`,
		topic, subject)

	content, err := s.AI.ChatJSON("You author JEE practice questions.", prompt)
	if err != nil {
		return nil, err
	}

	parsed, err := jsonschema.UnmarshalJSON(strings.NewReader(content))
	if err != nil {
		return nil, fmt.Errorf("AI returned invalid JSON: %w", err)
	}

	sch, err := compiledDraftSchema()
	if err != nil {
		return nil, err
	}
	if err := sch.Validate(parsed); err != nil {
		return nil, fmt.Errorf("AI draft failed schema validation: %w", err)
	}

	var draft QuestionDraft
	if err := json.Unmarshal([]byte(content), &draft); err != nil {
		return nil, err
	}
	return &draft, nil
}
