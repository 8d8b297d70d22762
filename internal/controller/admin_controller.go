package controller

import (
	"errors"
	"jeeprep_backend/internal/model"
	"jeeprep_backend/internal/service"
	"jeeprep_backend/internal/util"
	"net/http"

	"github.com/gin-gonic/gin"
)

type AdminController struct {
	AdminService *service.AdminService
}

func NewAdminController(adminService *service.AdminService) *AdminController {
	return &AdminController{AdminService: adminService}
}

// ListQuestions godoc
// @Summary List all questions, newest first
// @Tags admin
// @Produce  json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response{data=[]model.Question}
// @Failure 403 {object} util.Response
// @Router /api/admin/questions [get]
func (c *AdminController) ListQuestions(ctx *gin.Context) {
	questions, err := c.AdminService.ListQuestions()
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, questions)
}

// swagger:model CreateQuestionRequest
type CreateQuestionRequest struct {
	Subject        string             `json:"subject" binding:"required"`
	Chapter        string             `json:"chapter"`
	Year           int                `json:"year"`
	QuestionText   string             `json:"questionText" binding:"required"`
	Options        []string           `json:"options"`
	CorrectAns     string             `json:"correctAns" binding:"required"`
	Explanation    string             `json:"explanation"`
	ExplanationURL string             `json:"explanationUrl"`
	QuestionType   model.QuestionType `json:"questionType" binding:"required,oneof=MCQ Numeric"`
	Difficulty     model.Difficulty   `json:"difficulty" binding:"required,oneof=Easy Medium Hard"`
}

// CreateQuestion godoc
// @Summary Create a question
// @Description MCQ questions need at least 2 non-empty options; empty options are stripped
// @Tags admin
// @Accept  json
// @Produce  json
// @Security ApiKeyAuth
// @Param   body body CreateQuestionRequest true "question draft"
// @Success 201 {object} util.Response{data=model.Question}
// @Failure 400 {object} util.Response
// @Failure 403 {object} util.Response
// @Router /api/admin/questions [post]
func (c *AdminController) CreateQuestion(ctx *gin.Context) {
	var req CreateQuestionRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	question := &model.Question{
		Subject:        req.Subject,
		Chapter:        req.Chapter,
		Year:           req.Year,
		QuestionText:   req.QuestionText,
		Options:        req.Options,
		CorrectAns:     req.CorrectAns,
		Explanation:    req.Explanation,
		ExplanationURL: req.ExplanationURL,
		QuestionType:   req.QuestionType,
		Difficulty:     req.Difficulty,
	}

	if err := c.AdminService.CreateQuestion(question); err != nil {
		if errors.Is(err, service.ErrQuestionTextRequired) || errors.Is(err, service.ErrTooFewOptions) {
			util.BadRequest(ctx, err.Error())
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}

	util.Created(ctx, question)
}

// swagger:model GenerateQuestionRequest
type GenerateQuestionRequest struct {
	Topic   string `json:"topic"`
	Subject string `json:"subject"`
}

// GenerateQuestion godoc
// @Summary Generate a question draft with AI
// @Description Returns a schema-validated draft for the authoring form; nothing is persisted
// @Tags admin
// @Accept  json
// @Produce  json
// @Security ApiKeyAuth
// @Param   body body GenerateQuestionRequest true "generation hints"
// @Success 200 {object} util.Response{data=service.QuestionDraft}
// @Failure 400 {object} util.Response
// @Failure 502 {object} util.Response "generation or validation failed; message carries the raw error text"
// @Router /api/admin/questions/generate [post]
func (c *AdminController) GenerateQuestion(ctx *gin.Context) {
	var req GenerateQuestionRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	draft, err := c.AdminService.GenerateDraft(req.Topic, req.Subject)
	if err != nil {
		if errors.Is(err, service.ErrTopicRequired) {
			util.BadRequest(ctx, err.Error())
		} else {
			util.Error(ctx, http.StatusBadGateway, err.Error())
		}
		return
	}

	util.Success(ctx, draft)
}
