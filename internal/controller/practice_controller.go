package controller

import (
	"errors"
	"jeeprep_backend/internal/model"
	"jeeprep_backend/internal/service"
	"jeeprep_backend/internal/util"
	"net/http"

	"github.com/gin-gonic/gin"
)

type PracticeController struct {
	QuestionService *service.QuestionService
	PracticeService *service.PracticeService
}

func NewPracticeController(questionService *service.QuestionService, practiceService *service.PracticeService) *PracticeController {
	return &PracticeController{
		QuestionService: questionService,
		PracticeService: practiceService,
	}
}

// PracticeQuestion is the question payload served to practice clients.
// The correct answer and explanation stay server-side until grading.
//
// swagger:model PracticeQuestion
type PracticeQuestion struct {
	ID           string             `json:"id"`
	Subject      string             `json:"subject"`
	Chapter      string             `json:"chapter"`
	Year         int                `json:"year"`
	QuestionText string             `json:"questionText"`
	Options      []string           `json:"options"`
	QuestionType model.QuestionType `json:"questionType"`
	Difficulty   model.Difficulty   `json:"difficulty"`
}

func toPracticeQuestion(q model.Question) PracticeQuestion {
	return PracticeQuestion{
		ID:           q.ID,
		Subject:      q.Subject,
		Chapter:      q.Chapter,
		Year:         q.Year,
		QuestionText: q.QuestionText,
		Options:      q.Options,
		QuestionType: q.QuestionType,
		Difficulty:   q.Difficulty,
	}
}

// GetQuestions godoc
// @Summary Get a randomized practice set
// @Description Filters by subject (exact), chapter (case-insensitive substring) and year (exact), then samples up to 10 questions
// @Tags practice
// @Produce  json
// @Security ApiKeyAuth
// @Param   subject query string false "subject filter"
// @Param   chapter query string false "chapter filter"
// @Param   year    query string false "year filter"
// @Success 200 {object} util.Response{data=[]PracticeQuestion}
// @Router /api/practice/questions [get]
func (c *PracticeController) GetQuestions(ctx *gin.Context) {
	filter := service.QuestionFilter{
		Subject: ctx.Query("subject"),
		Chapter: ctx.Query("chapter"),
		Year:    ctx.Query("year"),
	}

	questions, err := c.QuestionService.Filter(filter)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	payload := make([]PracticeQuestion, 0, len(questions))
	for _, q := range questions {
		payload = append(payload, toPracticeQuestion(q))
	}

	util.Success(ctx, payload)
}

// SubmitAttempt godoc
// @Summary Submit an answer for grading
// @Description Grades server-side, applies the profile delta and appends the attempt log in one transaction
// @Tags practice
// @Accept  json
// @Produce  json
// @Security ApiKeyAuth
// @Param   body body service.SubmitRequest true "answer submission"
// @Success 200 {object} util.Response{data=service.GradeResult}
// @Failure 400 {object} util.Response
// @Failure 404 {object} util.Response
// @Failure 409 {object} util.Response "attempt already in flight"
// @Router /api/practice/attempts [post]
func (c *PracticeController) SubmitAttempt(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	var req service.SubmitRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	result, err := c.PracticeService.SubmitAttempt(ctx.Request.Context(), claims.UserID, req)
	if err != nil {
		switch {
		case errors.Is(err, util.ErrQuestionNotFound):
			util.NotFound(ctx)
		case errors.Is(err, util.ErrAttemptInFlight):
			util.Error(ctx, http.StatusConflict, err.Error())
		default:
			util.LogInternalError(ctx, err)
		}
		return
	}

	util.Success(ctx, result)
}

// UsePowerUp godoc
// @Summary Remove one incorrect option from an MCQ
// @Description Costs 20 coins, once per question; refunds when no incorrect option exists
// @Tags practice
// @Produce  json
// @Security ApiKeyAuth
// @Param   id path string true "question id"
// @Success 200 {object} util.Response{data=service.PowerUpResult}
// @Failure 400 {object} util.Response
// @Failure 402 {object} util.Response "not enough coins"
// @Failure 404 {object} util.Response
// @Failure 409 {object} util.Response "already used on this question"
// @Router /api/practice/questions/{id}/powerup [post]
func (c *PracticeController) UsePowerUp(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	result, err := c.PracticeService.UsePowerUp(ctx.Request.Context(), claims.UserID, ctx.Param("id"))
	if err != nil {
		switch {
		case errors.Is(err, util.ErrQuestionNotFound):
			util.NotFound(ctx)
		case errors.Is(err, util.ErrNotMCQ):
			util.BadRequest(ctx, err.Error())
		case errors.Is(err, util.ErrInsufficientCoins):
			util.Error(ctx, http.StatusPaymentRequired, err.Error())
		case errors.Is(err, util.ErrPowerUpAlreadyUsed):
			util.Error(ctx, http.StatusConflict, err.Error())
		default:
			util.LogInternalError(ctx, err)
		}
		return
	}

	util.Success(ctx, result)
}
